// Package ports define contratos que conectam o domínio a implementações externas.
package ports

import (
	"context"
	"time"

	"github.com/justinrm/gathered-roots-forms/internal/core/domain"
)

type RateLimiter interface {
	Admit(ctx context.Context, clientKey string, now time.Time) domain.RateDecision
}
