// Package redis disponibiliza a implementação do storage baseada em Redis,
// para deployments com mais de uma instância compartilhando a mesma cota.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/justinrm/gathered-roots-forms/internal/core/ports"
)

type Storage struct {
	client *redis.Client
}

var _ ports.WindowStore = (*Storage)(nil)

type Config struct {
	Addr     string
	Password string
	DB       int
}

func New(cfg Config) (*Storage, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Storage{client: client}, nil
}

func (s *Storage) Close() error {
	return s.client.Close()
}

func (s *Storage) Get(ctx context.Context, key string) ([]int64, error) {
	raw, err := s.client.Get(ctx, windowKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var stamps []int64
	if err := json.Unmarshal([]byte(raw), &stamps); err != nil {
		return nil, fmt.Errorf("corrupt window record for %q: %w", key, err)
	}
	return stamps, nil
}

func (s *Storage) Set(ctx context.Context, key string, stamps []int64, ttl time.Duration) error {
	payload, err := json.Marshal(stamps)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, windowKey(key), payload, ttl).Err()
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, windowKey(key)).Err()
}

func windowKey(clientKey string) string {
	return "ratelimit:window:" + clientKey
}
