package sweep

import (
	"context"
	"log/slog"
	"os"
	"time"

	"culler/internal/logging"
	"culler/internal/scanner"
)

// Deletion records one removed duplicate.
type Deletion struct {
	Path      string
	KeptPath  string
	Digest    string
	Size      int64
	DeletedAt time.Time
	DryRun    bool
}

// Outcome summarizes a cull pass over one scan result.
type Outcome struct {
	Deletions      []Deletion
	Failures       int
	BytesReclaimed int64
}

// Culler removes every duplicate after the first occurrence of each digest.
type Culler struct {
	dryRun bool
	logger *slog.Logger
}

// New builds a Culler. In dry-run mode deletions are recorded but no file is
// touched.
func New(dryRun bool, logger *slog.Logger) *Culler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Culler{dryRun: dryRun, logger: logger.With("component", "sweep")}
}

// DryRun reports whether the culler is in dry-run mode.
func (c *Culler) DryRun() bool {
	return c.dryRun
}

// Cull deletes the later occurrences in each duplicate group. The first path
// of a group is always retained. A failed delete is logged and counted; it
// never aborts the pass and never promotes a different path to "kept".
func (c *Culler) Cull(ctx context.Context, groups []scanner.Group) (*Outcome, error) {
	outcome := &Outcome{}

	for _, group := range groups {
		if len(group.Paths) < 2 {
			continue
		}
		kept := group.Paths[0]
		for _, path := range group.Paths[1:] {
			if err := ctx.Err(); err != nil {
				return outcome, err
			}

			if !c.dryRun {
				if err := os.Remove(path); err != nil {
					if os.IsNotExist(err) {
						c.logger.Warn("duplicate vanished before delete", "path", path)
					} else {
						c.logger.Warn("delete failed; file remains", "path", path, "error", err)
						outcome.Failures++
					}
					continue
				}
			}

			outcome.Deletions = append(outcome.Deletions, Deletion{
				Path:      path,
				KeptPath:  kept,
				Digest:    group.Digest,
				Size:      group.Size,
				DeletedAt: time.Now().UTC(),
				DryRun:    c.dryRun,
			})
			outcome.BytesReclaimed += group.Size
			c.logger.Info("duplicate removed", "path", path, "kept", kept, "dry_run", c.dryRun)
		}
	}
	return outcome, nil
}
