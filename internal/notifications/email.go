package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"culler/internal/config"
	"culler/internal/fileutil"
)

type emailService struct {
	cfg config.Email
}

func newEmailService(cfg config.Email) *emailService {
	return &emailService{cfg: cfg}
}

func (e *emailService) NotifyRunCompleted(ctx context.Context, run RunSummary) error {
	subject, body, attachments := runEmail(run)
	return e.send(ctx, subject, body, attachments)
}

func (e *emailService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	subject, body := errorEmail(err, contextLabel)
	return e.send(ctx, subject, body, nil)
}

// runEmail builds the subject, body, and attachment list for a completed run.
// The report is attached only when it exists on disk.
func runEmail(run RunSummary) (subject, body string, attachments []string) {
	subject = fmt.Sprintf("Duplicate file removal report - %s", run.StartedAt.Format(time.RFC1123))
	body = fmt.Sprintf(`Hello,

%s.

Run id:                     %s
Starting time of scanning:  %s
Total files scanned:        %d
Duplicate files removed:    %d
Delete failures:            %d

The full report is attached.

This is an auto-generated mail.
`,
		runMessage(run),
		run.RunID,
		run.StartedAt.Format(time.RFC1123),
		run.FilesScanned,
		run.FilesDeleted,
		run.Failures,
	)

	if strings.TrimSpace(run.ReportPath) != "" && fileutil.FileExists(run.ReportPath) {
		attachments = append(attachments, run.ReportPath)
	}
	return subject, body, attachments
}

func errorEmail(err error, contextLabel string) (subject, body string) {
	detail := "unknown"
	if err != nil {
		detail = err.Error()
	}
	label := strings.TrimSpace(contextLabel)
	if label == "" {
		label = "culler"
	}
	body = fmt.Sprintf("Hello,\n\nculler hit an error with %s: %s\n\nThis is an auto-generated mail.\n", label, detail)
	return "Culler error: " + label, body
}

func (e *emailService) TestNotification(ctx context.Context) error {
	return e.send(ctx, "Culler test notification",
		"Hello,\n\nThis is a culler notification test.\n", nil)
}

func (e *emailService) send(ctx context.Context, subject, body string, attachments []string) error {
	msg := mail.NewMsg()
	if err := msg.From(e.cfg.From); err != nil {
		return fmt.Errorf("set mail sender: %w", err)
	}
	if err := msg.To(e.cfg.To...); err != nil {
		return fmt.Errorf("set mail recipients: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	for _, path := range attachments {
		msg.AttachFile(path)
	}

	client, err := e.newClient()
	if err != nil {
		return err
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func (e *emailService) newClient() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(e.cfg.Port),
		mail.WithTimeout(time.Duration(e.cfg.RequestTimeout) * time.Second),
	}
	if e.cfg.StartTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if e.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(e.cfg.Username),
			mail.WithPassword(e.cfg.Password),
		)
	}

	client, err := mail.NewClient(e.cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("build mail client: %w", err)
	}
	return client, nil
}
