// Package domain concentra entidades e estruturas centrais do pipeline de submissões.
package domain

import "time"

// Valores aplicados quando o ambiente não define limites próprios.
const (
	DefaultRateLimit     = 5
	DefaultRateWindow    = time.Minute
	DefaultStoreCapacity = 500
)

// RateRule descreve o limite de admissão aplicado a um formulário.
type RateRule struct {
	Limit  int
	Window time.Duration
}

// RateDecision é o resultado de uma verificação de admissão. Os campos
// Limit, Remaining e ResetSeconds alimentam os headers X-RateLimit-*.
type RateDecision struct {
	Allowed      bool
	Limit        int
	Remaining    int
	ResetSeconds int
}
