package notifications

import (
	"context"
	"io"
	"net/http"
	"time"
)

// defaultProbeURL returns 204 without a body, which keeps the probe cheap.
const defaultProbeURL = "http://connectivitycheck.gstatic.com/generate_204"

// Prober checks whether the host can reach the internet before the workflow
// attempts to deliver notifications. Being offline is an expected condition,
// not an error.
type Prober struct {
	URL    string
	Client *http.Client
}

// NewProber builds a connectivity prober with the given timeout.
func NewProber(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Prober{
		URL:    defaultProbeURL,
		Client: &http.Client{Timeout: timeout},
	}
}

// Online reports whether the probe endpoint responded at all.
func (p *Prober) Online(ctx context.Context) bool {
	if p == nil || p.Client == nil {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.URL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return true
}
