package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"culler/internal/config"
)

const userAgent = "culler/0.1.0"

// RunSummary carries the facts a notification needs about one completed run.
type RunSummary struct {
	RunID        string
	StartedAt    time.Time
	Duration     time.Duration
	FilesScanned int
	FilesDeleted int
	Failures     int
	Bytes        int64
	DryRun       bool
	ReportPath   string
}

// Service defines the notification surface exposed to the workflow.
type Service interface {
	NotifyRunCompleted(ctx context.Context, run RunSummary) error
	NotifyError(ctx context.Context, err error, contextLabel string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service from configuration. Every enabled
// transport receives every event; with none enabled a noop implementation is
// returned.
func NewService(cfg *config.Config) Service {
	var services []Service
	if cfg != nil && cfg.Ntfy.Topic != "" {
		services = append(services, newNtfyService(cfg.Ntfy))
	}
	if cfg != nil && cfg.Email.Enabled {
		services = append(services, newEmailService(cfg.Email))
	}
	switch len(services) {
	case 0:
		return noopService{}
	case 1:
		return services[0]
	default:
		return multiService(services)
	}
}

// Enabled reports whether svc would actually deliver anything.
func Enabled(svc Service) bool {
	_, noop := svc.(noopService)
	return !noop
}

type multiService []Service

func (m multiService) NotifyRunCompleted(ctx context.Context, run RunSummary) error {
	var errs []error
	for _, svc := range m {
		errs = append(errs, svc.NotifyRunCompleted(ctx, run))
	}
	return errors.Join(errs...)
}

func (m multiService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	var errs []error
	for _, svc := range m {
		errs = append(errs, svc.NotifyError(ctx, err, contextLabel))
	}
	return errors.Join(errs...)
}

func (m multiService) TestNotification(ctx context.Context) error {
	var errs []error
	for _, svc := range m {
		errs = append(errs, svc.TestNotification(ctx))
	}
	return errors.Join(errs...)
}

type noopService struct{}

func (noopService) NotifyRunCompleted(context.Context, RunSummary) error { return nil }
func (noopService) NotifyError(context.Context, error, string) error     { return nil }
func (noopService) TestNotification(context.Context) error               { return nil }

func runMessage(run RunSummary) string {
	verb := "removed"
	if run.DryRun {
		verb = "would remove"
	}
	return fmt.Sprintf("Scanned %d files, %s %d duplicates (%s) in %s",
		run.FilesScanned, verb, run.FilesDeleted,
		humanize.Bytes(uint64(run.Bytes)),
		run.Duration.Round(time.Second))
}
