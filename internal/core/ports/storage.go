// Package ports define contratos que conectam o domínio a implementações externas.
package ports

import (
	"context"
	"time"
)

// WindowStore guarda o histórico de timestamps (em milissegundos) de cada
// cliente. Get devolve (nil, nil) quando a chave não existe. O ttl passado em
// Set limita a vida de registros ociosos; a poda de timestamps vencidos é
// responsabilidade do limiter, não do storage.
type WindowStore interface {
	Get(ctx context.Context, key string) ([]int64, error)
	Set(ctx context.Context, key string, stamps []int64, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
