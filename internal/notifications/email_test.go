package notifications

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"culler/internal/config"
)

func sampleRun(t *testing.T) RunSummary {
	t.Helper()
	return RunSummary{
		RunID:        "4f5c0de2-9f2a-4f3e-9b2e-0f1a2b3c4d5e",
		StartedAt:    time.Date(2026, 8, 26, 10, 30, 0, 0, time.UTC),
		Duration:     90 * time.Second,
		FilesScanned: 12,
		FilesDeleted: 3,
		Failures:     1,
		Bytes:        4096,
	}
}

func TestRunEmailSubjectAndBody(t *testing.T) {
	run := sampleRun(t)

	subject, body, attachments := runEmail(run)

	wantTime := run.StartedAt.Format(time.RFC1123)
	if !strings.Contains(subject, wantTime) {
		t.Errorf("subject = %q, want start time %q", subject, wantTime)
	}
	for _, want := range []string{
		"Run id:                     " + run.RunID,
		"Starting time of scanning:  " + wantTime,
		"Total files scanned:        12",
		"Duplicate files removed:    3",
		"Delete failures:            1",
		"removed 3 duplicates",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
	if len(attachments) != 0 {
		t.Errorf("attachments = %v, want none without a report", attachments)
	}
}

func TestRunEmailDryRunVerb(t *testing.T) {
	run := sampleRun(t)
	run.DryRun = true

	_, body, _ := runEmail(run)
	if !strings.Contains(body, "would remove 3 duplicates") {
		t.Errorf("dry-run body should say would remove:\n%s", body)
	}
}

func TestRunEmailAttachesOnlyExistingReport(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "culler-20260826103000.log")
	if err := os.WriteFile(reportPath, []byte("report"), 0o644); err != nil {
		t.Fatalf("write report: %v", err)
	}

	tests := []struct {
		name       string
		reportPath string
		want       int
	}{
		{"existing report", reportPath, 1},
		{"vanished report", filepath.Join(dir, "missing.log"), 0},
		{"no report recorded", "", 0},
	}
	for _, tc := range tests {
		run := sampleRun(t)
		run.ReportPath = tc.reportPath
		_, _, attachments := runEmail(run)
		if len(attachments) != tc.want {
			t.Errorf("%s: attachments = %v, want %d", tc.name, attachments, tc.want)
		}
		if tc.want == 1 && attachments[0] != tc.reportPath {
			t.Errorf("%s: attached %q, want %q", tc.name, attachments[0], tc.reportPath)
		}
	}
}

func TestErrorEmail(t *testing.T) {
	subject, body := errorEmail(errors.New("disk full"), "scan cycle")
	if subject != "Culler error: scan cycle" {
		t.Errorf("subject = %q", subject)
	}
	if !strings.Contains(body, "scan cycle: disk full") {
		t.Errorf("body missing error detail:\n%s", body)
	}

	subject, body = errorEmail(nil, "  ")
	if subject != "Culler error: culler" {
		t.Errorf("fallback subject = %q", subject)
	}
	if !strings.Contains(body, "unknown") {
		t.Errorf("nil error should render as unknown:\n%s", body)
	}
}

func TestNewServiceSelectsEmail(t *testing.T) {
	cfg := config.Default()
	cfg.Email.Enabled = true
	cfg.Email.Host = "smtp.example.com"
	cfg.Email.From = "culler@example.com"
	cfg.Email.To = []string{"ops@example.com"}

	svc := NewService(&cfg)
	if _, ok := svc.(*emailService); !ok {
		t.Fatalf("NewService = %T, want *emailService", svc)
	}
	if !Enabled(svc) {
		t.Error("email service should report enabled")
	}
}
