package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/justinrm/gathered-roots-forms/internal/core/domain"
	"github.com/justinrm/gathered-roots-forms/internal/core/ports"
)

// LimiterConfig agrega os parâmetros da janela deslizante de um formulário.
// KeyPrefix isola as cotas de cada formulário dentro do mesmo WindowStore:
// sem ele, limiters com janelas diferentes corromperiam os registros uns dos
// outros ao compartilhar a chave do cliente.
type LimiterConfig struct {
	Limit     int
	Window    time.Duration
	KeyPrefix string
}

// RateLimiterService implementa a admissão por janela deslizante. Cada chave
// de cliente mantém um log de timestamps no WindowStore; contar o log dentro
// da janela evita o estouro de borda dos buckets fixos.
type RateLimiterService struct {
	store     ports.WindowStore
	limit     int
	window    time.Duration
	keyPrefix string
}

var _ ports.RateLimiter = (*RateLimiterService)(nil)

// NewRateLimiterService cria uma nova instância do serviço.
func NewRateLimiterService(store ports.WindowStore, cfg LimiterConfig) (*RateLimiterService, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Limit <= 0 {
		cfg.Limit = domain.DefaultRateLimit
	}
	if cfg.Window <= 0 {
		cfg.Window = domain.DefaultRateWindow
	}

	return &RateLimiterService{
		store:     store,
		limit:     cfg.Limit,
		window:    cfg.Window,
		keyPrefix: cfg.KeyPrefix,
	}, nil
}

// Admit avalia se a requisição pode prosseguir. O timestamp da própria
// requisição é registrado antes da decisão, então tentativas rejeitadas
// também consomem a cota. Nunca retorna erro: falhas do storage liberam a
// requisição (fail open) e são apenas registradas.
func (s *RateLimiterService) Admit(ctx context.Context, clientKey string, now time.Time) domain.RateDecision {
	nowMs := now.UnixMilli()
	windowMs := s.window.Milliseconds()
	storeKey := s.keyPrefix + clientKey

	stamps, err := s.store.Get(ctx, storeKey)
	if err != nil {
		log.Printf("rate limit store read failed for %q: %v", storeKey, err)
		stamps = nil
	}

	cutoff := nowMs - windowMs
	kept := make([]int64, 0, len(stamps)+1)
	for _, ts := range stamps {
		if ts > cutoff {
			kept = append(kept, ts)
		}
	}
	kept = append(kept, nowMs)

	if err := s.store.Set(ctx, storeKey, kept, s.window); err != nil {
		log.Printf("rate limit store write failed for %q: %v", storeKey, err)
	}

	count := len(kept)
	remaining := s.limit - count
	if remaining < 0 {
		remaining = 0
	}

	reset := int((windowMs - (nowMs - kept[0]) + 999) / 1000)
	if reset < 0 {
		reset = 0
	}

	return domain.RateDecision{
		Allowed:      count <= s.limit,
		Limit:        s.limit,
		Remaining:    remaining,
		ResetSeconds: reset,
	}
}
