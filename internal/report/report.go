package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"culler/internal/fileutil"
	"culler/internal/scanner"
	"culler/internal/sweep"
)

// FilePattern matches report files for retention pruning.
const FilePattern = "culler-*.log"

const separator = "--------------------------------------------------------------------------------"

// Summary carries everything a report or notification needs about one run.
type Summary struct {
	RunID     string
	Result    *scanner.Result
	Outcome   *sweep.Outcome
	DryRun    bool
	FreeBytes int64 // -1 when unknown
}

// Write renders a timestamped report file into dir and returns its path.
// Exactly one line is written per deletion.
func Write(dir string, summary Summary) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	// The short run id keeps names unique when two runs start within a second.
	name := fmt.Sprintf("culler-%s-%s.log",
		summary.Result.StartedAt.UTC().Format("20060102150405"), shortRunID(summary.RunID))
	path := filepath.Join(dir, name)

	var b strings.Builder
	b.WriteString("culler duplicate removal report\n")
	fmt.Fprintf(&b, "run:        %s\n", summary.RunID)
	fmt.Fprintf(&b, "created:    %s\n", time.Now().UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "roots:      %s\n", strings.Join(summary.Result.Roots, ", "))
	fmt.Fprintf(&b, "algorithm:  %s\n", summary.Result.Algorithm)
	fmt.Fprintf(&b, "dry run:    %t\n", summary.DryRun)
	b.WriteString(separator + "\n")

	verb := "deleted"
	if summary.DryRun {
		verb = "would delete"
	}
	for _, deletion := range summary.Outcome.Deletions {
		fmt.Fprintf(&b, "%s %s (kept %s, digest %s, %s)\n",
			verb, deletion.Path, deletion.KeptPath, deletion.Digest,
			humanize.Bytes(uint64(deletion.Size)))
	}

	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "started:            %s\n", summary.Result.StartedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "elapsed:            %s\n", summary.Result.Duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "files scanned:      %d\n", summary.Result.FilesScanned)
	fmt.Fprintf(&b, "files skipped:      %d\n", summary.Result.FilesSkipped)
	fmt.Fprintf(&b, "duplicates removed: %d\n", len(summary.Outcome.Deletions))
	fmt.Fprintf(&b, "delete failures:    %d\n", summary.Outcome.Failures)
	fmt.Fprintf(&b, "bytes reclaimed:    %s\n", humanize.Bytes(uint64(summary.Outcome.BytesReclaimed)))
	if summary.FreeBytes >= 0 {
		fmt.Fprintf(&b, "free space:         %s\n", humanize.Bytes(uint64(summary.FreeBytes)))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ProbeFreeBytes returns available space on the filesystem holding the first
// root, or -1 when it cannot be determined.
func ProbeFreeBytes(roots []string) int64 {
	if len(roots) == 0 {
		return -1
	}
	free, err := fileutil.DiskFreeBytes(roots[0])
	if err != nil {
		return -1
	}
	return free
}
