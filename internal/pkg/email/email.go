package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/megamart/hr-backend-go/internal/config"
	"github.com/megamart/hr-backend-go/internal/domain/notification"
	"github.com/megamart/hr-backend-go/internal/pkg/validator"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// ReminderSubject is the subject line of the forgotten-checkout reminder.
const ReminderSubject = "Action Required: Forgot to Checkout?"

// EmailService sends attendance notifications over SMTP. It satisfies
// notification.Sender for raw sends and adds the templated reminder.
type EmailService interface {
	notification.Sender
	SendCheckoutReminder(ctx context.Context, to, name string, shiftEnd time.Time) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type reminderEmailData struct {
	Name     string
	ShiftEnd string
}

// SendCheckoutReminder sends the forgotten-checkout reminder to the user.
func (s *emailServiceImpl) SendCheckoutReminder(ctx context.Context, to, name string, shiftEnd time.Time) error {
	if !validator.IsValidEmail(to) {
		return fmt.Errorf("invalid recipient address %q", to)
	}

	data := reminderEmailData{
		Name:     name,
		ShiftEnd: shiftEnd.Format("15:04"),
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "checkout_reminder.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.Send(ctx, to, ReminderSubject, body.String())
}

// Send implements notification.Sender.
func (s *emailServiceImpl) Send(_ context.Context, to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
