// Package middleware disponibiliza middlewares HTTP específicos da aplicação.
package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/justinrm/gathered-roots-forms/internal/core/ports"
)

const (
	rateLimitExceededMessage = "Too many requests. Please try again later."
	// Chave usada quando nem os headers de proxy nem o RemoteAddr rendem
	// um endereço utilizável.
	fallbackClientKey = "unknown"
)

// NewRateLimiterMiddleware aplica o limiter informado a todas as requisições
// da rota. Os headers X-RateLimit-* são preenchidos em toda resposta, não só
// nas rejeitadas.
func NewRateLimiterMiddleware(limiter ports.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			decision := limiter.Admit(r.Context(), clientKey(r), time.Now())

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.Itoa(decision.ResetSeconds))

			if !decision.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(decision.ResetSeconds))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"message":    rateLimitExceededMessage,
					"retryAfter": decision.ResetSeconds,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey deriva a chave de particionamento do cliente. O valor vem de
// headers de proxy não autenticados e é forjável; limitação por IP aqui é
// controle de abuso, não segurança.
func clientKey(r *http.Request) string {
	xForwardedFor := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if xForwardedFor != "" {
		parts := strings.Split(xForwardedFor, ",")
		if len(parts) > 0 && strings.TrimSpace(parts[0]) != "" {
			return strings.TrimSpace(parts[0])
		}
	}

	xRealIP := strings.TrimSpace(r.Header.Get("X-Real-IP"))
	if xRealIP != "" {
		return xRealIP
	}

	remoteAddr := strings.TrimSpace(r.RemoteAddr)
	host, _, err := net.SplitHostPort(remoteAddr)
	if err == nil && host != "" {
		return host
	}
	if remoteAddr != "" {
		return remoteAddr
	}

	return fallbackClientKey
}
