package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"

	"pubwatch/internal/domain/entity"
)

// SMTPConfig contains configuration for the SMTP notifier.
type SMTPConfig struct {
	// Host is the SMTP server hostname (e.g. smtp.gmail.com).
	Host string

	// Port is the submission port; 587 for STARTTLS.
	Port int

	// Username authenticates the session; for Gmail this is the
	// account address.
	Username string

	// Password is the account application password.
	Password string

	// From is the sender address.
	From string

	// To is the single configured recipient.
	To string

	// Timeout applies to the dial and to each send.
	Timeout time.Duration
}

// SMTPNotifier sends publication emails through one authenticated
// SMTP-over-STARTTLS session per batch.
type SMTPNotifier struct {
	config SMTPConfig
}

// NewSMTPNotifier creates an SMTP notifier with the given configuration.
func NewSMTPNotifier(config SMTPConfig) *SMTPNotifier {
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &SMTPNotifier{config: config}
}

// NotifyPublications sends one HTML email per publication over a single
// session. Dial and authentication happen once up front; failure there
// aborts the whole phase with zero messages sent. Individual send
// failures are logged and do not stop the remaining messages. The
// session is closed in all cases.
func (n *SMTPNotifier) NotifyPublications(ctx context.Context, pubs []*entity.EnrichedPublication) (int, error) {
	if len(pubs) == 0 {
		return 0, nil
	}

	client, err := mail.NewClient(n.config.Host,
		mail.WithPort(n.config.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.config.Username),
		mail.WithPassword(n.config.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(n.config.Timeout),
	)
	if err != nil {
		return 0, fmt.Errorf("create mail client: %w", err)
	}

	sessionID := uuid.New().String()
	if err := client.DialWithContext(ctx); err != nil {
		return 0, fmt.Errorf("mail session dial/auth failed: %w", err)
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			slog.Warn("failed to close mail session",
				slog.String("session_id", sessionID),
				slog.Any("error", cerr))
		}
	}()

	slog.Info("mail session established",
		slog.String("session_id", sessionID),
		slog.String("host", n.config.Host),
		slog.Int("publications", len(pubs)))

	sent := 0
	for _, ep := range pubs {
		msg, err := n.buildMessage(ep)
		if err != nil {
			slog.Warn("failed to build notification message",
				slog.String("session_id", sessionID),
				slog.Int64("publication_id", ep.Publication.ID),
				slog.Any("error", err))
			continue
		}

		if err := client.Send(msg); err != nil {
			slog.Warn("failed to send notification",
				slog.String("session_id", sessionID),
				slog.Int64("publication_id", ep.Publication.ID),
				slog.String("title", ep.Publication.Title),
				slog.Any("error", err))
			continue
		}

		sent++
		slog.Info("notification sent",
			slog.String("session_id", sessionID),
			slog.Int64("publication_id", ep.Publication.ID),
			slog.String("title", ep.Publication.Title))
	}

	return sent, nil
}

func (n *SMTPNotifier) buildMessage(ep *entity.EnrichedPublication) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(n.config.From); err != nil {
		return nil, fmt.Errorf("set sender %s: %w", n.config.From, err)
	}
	if err := msg.To(n.config.To); err != nil {
		return nil, fmt.Errorf("set recipient %s: %w", n.config.To, err)
	}
	msg.Subject(Subject(ep.Publication))
	msg.SetBodyString(mail.TypeTextHTML, BuildHTMLBody(ep))
	return msg, nil
}
