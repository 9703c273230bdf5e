package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	httpHandlers "github.com/justinrm/gathered-roots-forms/internal/adapters/http/handlers"
	httpMiddleware "github.com/justinrm/gathered-roots-forms/internal/adapters/http/middleware"
	mailadapter "github.com/justinrm/gathered-roots-forms/internal/adapters/mail"
	memorystorage "github.com/justinrm/gathered-roots-forms/internal/adapters/storage/memory"
	redisstorage "github.com/justinrm/gathered-roots-forms/internal/adapters/storage/redis"
	"github.com/justinrm/gathered-roots-forms/internal/config"
	"github.com/justinrm/gathered-roots-forms/internal/core/domain"
	"github.com/justinrm/gathered-roots-forms/internal/core/ports"
	"github.com/justinrm/gathered-roots-forms/internal/core/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	store, closeFn, err := initStore(cfg.Storage)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}
	defer closeFn()

	dispatcher, err := services.NewDispatcherService(initMailer(cfg.Mail), services.DispatcherConfig{
		From:       cfg.Mail.From,
		BusinessTo: cfg.Mail.BusinessTo,
	})
	if err != nil {
		log.Fatalf("failed to create dispatcher: %v", err)
	}

	handler := httpHandlers.NewSubmissionHandler(services.NewValidatorService(), dispatcher, !cfg.IsProduction())

	r := chi.NewRouter()
	r.MethodNotAllowed(httpHandlers.MethodNotAllowed)
	r.Get("/healthz", httpHandlers.HealthHandler)

	routes := []struct {
		pattern string
		form    domain.FormType
		rule    domain.RateRule
		handler http.HandlerFunc
	}{
		{"/api/forms/contact", domain.FormContact, cfg.Forms.Contact, handler.Contact},
		{"/api/forms/quote", domain.FormQuote, cfg.Forms.Quote, handler.Quote},
		{"/api/forms/booking", domain.FormBooking, cfg.Forms.Booking, handler.Booking},
	}

	for _, route := range routes {
		limiter, err := services.NewRateLimiterService(store, services.LimiterConfig{
			Limit:     route.rule.Limit,
			Window:    route.rule.Window,
			KeyPrefix: string(route.form) + ":",
		})
		if err != nil {
			log.Fatalf("failed to create limiter for %s: %v", route.pattern, err)
		}

		r.Route(route.pattern, func(r chi.Router) {
			r.Use(httpMiddleware.NewRateLimiterMiddleware(limiter))
			r.Post("/", route.handler)
		})
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("shutdown signal received")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

func initStore(cfg config.StorageConfig) (ports.WindowStore, func(), error) {
	switch cfg.Type {
	case "memory":
		return memorystorage.New(cfg.Capacity), func() {}, nil
	case "redis":
		storage, err := redisstorage.New(redisstorage.Config{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return storage, func() {
			if err := storage.Close(); err != nil {
				log.Printf("failed to close redis storage: %v", err)
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// initMailer nunca derruba o processo: sem credenciais SMTP o site continua
// servindo e cada despacho responde o mesmo erro de configuração.
func initMailer(cfg config.MailConfig) ports.Mailer {
	mailer, err := mailadapter.NewSMTPMailer(mailadapter.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
	})
	if err != nil {
		log.Printf("mail sending disabled: %v", err)
		return mailadapter.Disabled{}
	}
	return mailer
}
