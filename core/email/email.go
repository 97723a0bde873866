package email

import (
	"fmt"

	"gatherly/core/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Sender delivers transactional email.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// NewSender picks a Sender implementation from config. An empty provider
// yields a no-op sender so callers never need nil checks.
func NewSender(cfg *config.Config) (Sender, error) {
	switch cfg.EmailProvider {
	case "sendgrid":
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("sendgrid provider requires SENDGRID_API_KEY")
		}
		return &sendGridSender{
			client: sendgrid.NewSendClient(cfg.SendGridAPIKey),
			from:   cfg.EmailFrom,
		}, nil
	case "":
		return &noopSender{}, nil
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", cfg.EmailProvider)
	}
}

type sendGridSender struct {
	client *sendgrid.Client
	from   string
}

func (s *sendGridSender) Send(to, subject, htmlBody string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail("", s.from),
		subject,
		mail.NewEmail("", to),
		"",
		htmlBody,
	)

	resp, err := s.client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// NewNoopSender returns a Sender that silently drops mail. Used as the
// fallback when no provider is configured or configuration is invalid.
func NewNoopSender() Sender {
	return &noopSender{}
}

type noopSender struct{}

func (*noopSender) Send(to, subject, htmlBody string) error {
	return nil
}
