package history

import "time"

// Run records the outcome of one scan/cull cycle.
type Run struct {
	ID              string
	StartedAt       time.Time
	FinishedAt      time.Time
	Roots           []string
	Algorithm       string
	FilesScanned    int
	FilesSkipped    int
	DuplicateGroups int
	FilesDeleted    int
	DeleteFailures  int
	BytesReclaimed  int64
	DryRun          bool
	ReportPath      string
}

// Deletion is one removed duplicate as persisted for a run.
type Deletion struct {
	RunID     string
	Path      string
	KeptPath  string
	Digest    string
	SizeBytes int64
	DeletedAt time.Time
}
