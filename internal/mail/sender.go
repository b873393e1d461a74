package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gomail "github.com/wneessen/go-mail"

	"airmail/internal/config"
	"airmail/internal/logging"
)

// Message is a composed notification ready for dispatch.
type Message struct {
	Subject string
	HTML    string
}

// Sender delivers composed messages. The SMTP implementation is the only
// production transport; tests substitute fakes.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender sends HTML mail over SMTP with mandatory STARTTLS and
// username/password auth.
type SMTPSender struct {
	client     *gomail.Client
	from       string
	recipients []string
	logger     *slog.Logger
}

var _ Sender = (*SMTPSender)(nil)

// NewSMTPSender builds a sender from the [smtp] config section.
func NewSMTPSender(cfg config.SMTP, logger *slog.Logger) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host required")
	}
	if len(cfg.To) == 0 {
		return nil, errors.New("smtp recipient list required")
	}

	timeout := time.Duration(cfg.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPortPolicy(gomail.TLSMandatory),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
		gomail.WithTimeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("build smtp client: %w", err)
	}

	return &SMTPSender{
		client:     client,
		from:       cfg.From,
		recipients: append([]string{}, cfg.To...),
		logger:     logging.WithComponent(logger, "mail"),
	}, nil
}

// Send delivers one message to the configured recipient list. A failure at
// any point means the notification did not go out and state must not be
// persisted for it.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := m.To(s.recipients...); err != nil {
		return fmt.Errorf("set recipients: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTML)

	sendStart := time.Now()
	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send mail (latency=%v): %w", time.Since(sendStart), err)
	}

	s.logger.Info("mail sent",
		slog.String("subject", msg.Subject),
		slog.Int("recipients", len(s.recipients)),
		slog.Duration("latency", time.Since(sendStart)))
	return nil
}
