// Package mail disponibiliza os adapters de envio de e-mail.
package mail

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/justinrm/gathered-roots-forms/internal/core/domain"
	"github.com/justinrm/gathered-roots-forms/internal/core/ports"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPMailer envia mensagens via SMTP autenticado usando go-mail.
type SMTPMailer struct {
	client *gomail.Client
}

var _ ports.Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer valida as credenciais no startup: configuração incompleta
// retorna domain.ErrMailerNotConfigured em vez de falhar só no primeiro envio.
func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	if cfg.Host == "" || cfg.Username == "" || cfg.Password == "" {
		return nil, domain.ErrMailerNotConfigured
	}

	opts := []gomail.Option{
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPortPolicy(gomail.TLSMandatory),
		gomail.WithTimeout(10 * time.Second),
	}
	if cfg.Port > 0 {
		opts = append(opts, gomail.WithPort(cfg.Port))
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return &SMTPMailer{client: client}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg domain.Message) error {
	mm := gomail.NewMsg()
	if err := mm.From(msg.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := mm.To(msg.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := mm.ReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("invalid reply-to address: %w", err)
		}
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(gomail.TypeTextHTML, msg.Body)

	return m.client.DialAndSendWithContext(ctx, mm)
}
