package mail

import (
	"context"

	"github.com/justinrm/gathered-roots-forms/internal/core/domain"
	"github.com/justinrm/gathered-roots-forms/internal/core/ports"
)

// Disabled substitui o mailer quando as credenciais SMTP não foram
// configuradas: todo envio falha imediatamente, sem tocar a rede, com o
// mesmo erro para toda requisição até a configuração ser corrigida.
type Disabled struct{}

var _ ports.Mailer = Disabled{}

func (Disabled) Send(context.Context, domain.Message) error {
	return domain.ErrMailerNotConfigured
}
