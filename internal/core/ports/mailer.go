// Package ports define contratos que conectam o domínio a implementações externas.
package ports

import (
	"context"

	"github.com/justinrm/gathered-roots-forms/internal/core/domain"
)

type Mailer interface {
	Send(ctx context.Context, msg domain.Message) error
}
