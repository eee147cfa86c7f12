package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"culler/internal/config"
)

// ErrNotFound indicates no run matched the requested identifier.
var ErrNotFound = errors.New("run not found")

const rootsSeparator = "\x1f"

// Store persists run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database beneath the data dir.
func Open(cfg *config.Config) (*Store, error) {
	if err := os.MkdirAll(cfg.Paths.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure data directory: %w", err)
	}
	return OpenPath(filepath.Join(cfg.Paths.DataDir, "history.db"))
}

// OpenPath opens the history database at an explicit location.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// RecordRun persists a run and its deletions in one transaction.
func (s *Store) RecordRun(ctx context.Context, run Run, deletions []Deletion) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (
            id, started_at, finished_at, roots, algorithm,
            files_scanned, files_skipped, duplicate_groups,
            files_deleted, delete_failures, bytes_reclaimed,
            dry_run, report_path
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		strings.Join(run.Roots, rootsSeparator),
		run.Algorithm,
		run.FilesScanned,
		run.FilesSkipped,
		run.DuplicateGroups,
		run.FilesDeleted,
		run.DeleteFailures,
		run.BytesReclaimed,
		boolToInt(run.DryRun),
		nullableString(run.ReportPath),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, deletion := range deletions {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO deletions (run_id, path, kept_path, digest, size_bytes, deleted_at)
             VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID,
			deletion.Path,
			deletion.KeptPath,
			deletion.Digest,
			deletion.SizeBytes,
			deletion.DeletedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("insert deletion: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. A limit of 0 returns
// everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, started_at, finished_at, roots, algorithm,
        files_scanned, files_skipped, duplicate_groups,
        files_deleted, delete_failures, bytes_reclaimed, dry_run, report_path
        FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns the run with the given ID. Unambiguous ID prefixes are
// accepted so `culler runs show 4f5c` works.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, roots, algorithm,
            files_scanned, files_skipped, duplicate_groups,
            files_deleted, delete_failures, bytes_reclaimed, dry_run, report_path
         FROM runs WHERE id LIKE ? ORDER BY started_at DESC LIMIT 2`,
		id+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("run id prefix %q is ambiguous", id)
	}
}

// LastRun returns the most recent run, or nil when the history is empty.
func (s *Store) LastRun(ctx context.Context) (*Run, error) {
	runs, err := s.ListRuns(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// Deletions returns every deletion recorded for the given run.
func (s *Store) Deletions(ctx context.Context, runID string) ([]Deletion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, path, kept_path, digest, size_bytes, deleted_at
         FROM deletions WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list deletions: %w", err)
	}
	defer rows.Close()

	var deletions []Deletion
	for rows.Next() {
		var d Deletion
		var deletedAt string
		if err := rows.Scan(&d.RunID, &d.Path, &d.KeptPath, &d.Digest, &d.SizeBytes, &deletedAt); err != nil {
			return nil, fmt.Errorf("scan deletion: %w", err)
		}
		d.DeletedAt = parseTimestamp(deletedAt)
		deletions = append(deletions, d)
	}
	return deletions, rows.Err()
}

// Clear removes all runs and their deletions, returning the run count.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM runs")
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	return res.RowsAffected()
}

func scanRun(rows *sql.Rows) (Run, error) {
	var run Run
	var startedAt, finishedAt, roots string
	var dryRun int
	var reportPath sql.NullString

	err := rows.Scan(
		&run.ID, &startedAt, &finishedAt, &roots, &run.Algorithm,
		&run.FilesScanned, &run.FilesSkipped, &run.DuplicateGroups,
		&run.FilesDeleted, &run.DeleteFailures, &run.BytesReclaimed,
		&dryRun, &reportPath,
	)
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.StartedAt = parseTimestamp(startedAt)
	run.FinishedAt = parseTimestamp(finishedAt)
	if roots != "" {
		run.Roots = strings.Split(roots, rootsSeparator)
	}
	run.DryRun = dryRun != 0
	run.ReportPath = reportPath.String
	return run, nil
}

func parseTimestamp(value string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
