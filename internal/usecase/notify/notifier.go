package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/orbitmeetai/orbitmeet/internal/domain/entities"
	"github.com/orbitmeetai/orbitmeet/internal/domain/repositories"
	"github.com/orbitmeetai/orbitmeet/pkg/config"
)

// Notification carries everything the mailer needs for one meeting.
type Notification struct {
	ProjectKey         string
	ProjectName        string
	MeetingName        string
	Participants       []string
	SummaryPoints      []string
	ParticipantRecords []entities.ParticipantSummary
	GlobalSummary      string
}

// MailSender dispatches a single rendered message. Satisfied by gomail's
// Dialer; tests substitute a recording fake.
type MailSender interface {
	Send(to, subject, htmlBody string) error
}

// gomailSender sends over an authenticated implicit-TLS SMTP connection.
type gomailSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailSender creates the SMTP-backed sender from config.
func NewMailSender(cfg *config.SMTPConfig) MailSender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Email, cfg.Password)
	d.SSL = cfg.Port == 465
	return &gomailSender{dialer: d, from: cfg.Email}
}

func (s *gomailSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return s.dialer.DialAndSend(m)
}

// noopSender drops messages. Used when SMTP is disabled so the pipeline's
// notify stage still completes.
type noopSender struct {
	logger *zap.Logger
}

// NewNoopSender creates a sender that logs instead of dialing SMTP.
func NewNoopSender(logger *zap.Logger) MailSender {
	return &noopSender{logger: logger}
}

func (s *noopSender) Send(to, subject, _ string) error {
	if s.logger != nil {
		s.logger.Info("mail delivery disabled, dropping message",
			zap.String("to", to),
			zap.String("subject", subject),
		)
	}
	return nil
}

// Notifier renders role-differentiated email content and dispatches one
// message per matched recipient. A sent-log keyed by (project, meeting,
// recipient) is consulted before every dispatch so a retried pipeline run
// never emails the same recipient twice.
type Notifier struct {
	sender     MailSender
	sentLog    repositories.SentLogRepository
	rosterPath string
	logger     *zap.Logger
}

// NewNotifier creates a new Notifier
func NewNotifier(sender MailSender, sentLog repositories.SentLogRepository, rosterPath string, logger *zap.Logger) *Notifier {
	return &Notifier{
		sender:     sender,
		sentLog:    sentLog,
		rosterPath: rosterPath,
		logger:     logger,
	}
}

// Send mails every roster entry that attended the meeting. Executives receive
// the global summary variant, contributors the participant highlights
// variant.
func (n *Notifier) Send(ctx context.Context, notification Notification) error {
	recipients, err := LoadRoster(n.rosterPath, notification.Participants)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}

	subject := fmt.Sprintf("Meeting Summary: %s", notification.MeetingName)

	for _, r := range recipients {
		sent, err := n.sentLog.WasSent(ctx, notification.ProjectKey, notification.MeetingName, r.Email)
		if err != nil {
			return fmt.Errorf("failed to check sent log for %s: %w", r.Email, err)
		}
		if sent {
			if n.logger != nil {
				n.logger.Info("notification already sent, skipping",
					zap.String("meeting", notification.MeetingName),
					zap.String("recipient", r.Email),
				)
			}
			continue
		}

		body, err := renderBody(notification, r.IsExecutive())
		if err != nil {
			return err
		}

		if err := n.sender.Send(r.Email, subject, body); err != nil {
			return fmt.Errorf("failed to send notification to %s: %w", r.Email, err)
		}

		if err := n.sentLog.MarkSent(ctx, notification.ProjectKey, notification.MeetingName, r.Email); err != nil {
			return fmt.Errorf("failed to record sent notification for %s: %w", r.Email, err)
		}

		if n.logger != nil {
			n.logger.Info("notification sent",
				zap.String("meeting", notification.MeetingName),
				zap.String("recipient", r.Email),
				zap.Bool("executive", r.IsExecutive()),
			)
		}
	}

	return nil
}
