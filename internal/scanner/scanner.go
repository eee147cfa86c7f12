package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"culler/internal/config"
	"culler/internal/fileutil"
	"culler/internal/logging"
)

// Group collects the paths sharing one content digest, in traversal order.
// Paths[0] is the first occurrence and is never deleted.
type Group struct {
	Digest string
	Size   int64
	Paths  []string
}

// Result summarizes a completed scan.
type Result struct {
	Roots        []string
	Algorithm    string
	StartedAt    time.Time
	Duration     time.Duration
	FilesScanned int
	FilesSkipped int
	BytesScanned int64
	// Duplicates holds only groups with more than one path, ordered by the
	// first occurrence of each digest.
	Duplicates []Group
}

// DuplicateCount returns the number of files eligible for removal.
func (r *Result) DuplicateCount() int {
	count := 0
	for _, group := range r.Duplicates {
		count += len(group.Paths) - 1
	}
	return count
}

// Scanner walks configured roots and indexes files by content digest.
type Scanner struct {
	cfg      config.Scanner
	roots    []string
	digester *Digester
	logger   *slog.Logger
}

// New builds a Scanner from configuration.
func New(cfg config.Scanner, roots []string, logger *slog.Logger) (*Scanner, error) {
	if len(roots) == 0 {
		return nil, errors.New("scanner requires at least one root")
	}
	digester, err := NewDigester(cfg.Algorithm, cfg.ChunkSize)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scanner{
		cfg:      cfg,
		roots:    roots,
		digester: digester,
		logger:   logger.With("component", "scanner"),
	}, nil
}

// Scan walks every root in order and returns the duplicate groups found.
// WalkDir visits entries in lexical order, so the first occurrence for a
// digest is stable across runs.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{
		Roots:     s.roots,
		Algorithm: s.digester.Algorithm(),
		StartedAt: start,
	}

	groups := make(map[string]*Group)
	var order []string
	// Overlapping roots must not index the same file twice; a file is never
	// a duplicate of itself.
	visited := make(map[string]struct{})

	for _, root := range s.roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat scan root: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("scan root %s is not a directory", root)
		}

		err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if walkErr != nil {
				s.logger.Warn("walk error; subtree skipped", "path", path, "error", walkErr)
				result.FilesSkipped++
				if entry != nil && entry.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if entry.IsDir() {
				if path != root && !s.cfg.IncludeHidden && fileutil.IsHidden(entry.Name()) {
					return fs.SkipDir
				}
				return nil
			}
			if skip, reason := s.shouldSkip(entry); skip {
				s.logger.Debug("file skipped", "path", path, "reason", reason)
				result.FilesSkipped++
				return nil
			}
			if _, seen := visited[path]; seen {
				return nil
			}
			visited[path] = struct{}{}

			info, err := entry.Info()
			if err != nil {
				s.logger.Warn("file vanished before stat", "path", path, "error", err)
				result.FilesSkipped++
				return nil
			}

			digest, err := s.digester.HashFile(path)
			if err != nil {
				s.logger.Warn("file unreadable; skipped", "path", path, "error", err)
				result.FilesSkipped++
				return nil
			}

			result.FilesScanned++
			result.BytesScanned += info.Size()

			group, ok := groups[digest]
			if !ok {
				group = &Group{Digest: digest, Size: info.Size()}
				groups[digest] = group
				order = append(order, digest)
			}
			group.Paths = append(group.Paths, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	for _, digest := range order {
		if group := groups[digest]; len(group.Paths) > 1 {
			result.Duplicates = append(result.Duplicates, *group)
		}
	}
	result.Duration = time.Since(start)

	s.logger.Info("scan complete",
		"files", result.FilesScanned,
		"skipped", result.FilesSkipped,
		"duplicate_groups", len(result.Duplicates),
		"duplicates", result.DuplicateCount(),
		"elapsed", result.Duration.Round(time.Millisecond),
	)
	return result, nil
}

func (s *Scanner) shouldSkip(entry fs.DirEntry) (bool, string) {
	name := entry.Name()
	// Symlinks are skipped entirely: deleting one member of a hardlink or
	// symlink pair through a digest match would be destructive.
	if entry.Type()&fs.ModeType != 0 {
		return true, "not a regular file"
	}
	if !s.cfg.IncludeHidden && fileutil.IsHidden(name) {
		return true, "hidden"
	}
	for _, pattern := range s.cfg.Exclude {
		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			return true, "excluded by pattern"
		}
	}
	if s.cfg.MinSizeBytes > 0 {
		if info, err := entry.Info(); err == nil && info.Size() < s.cfg.MinSizeBytes {
			return true, "below min size"
		}
	}
	return false, ""
}
