// Package memory disponibiliza a implementação do storage em memória,
// adequada ao deployment de processo único.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/justinrm/gathered-roots-forms/internal/core/domain"
	"github.com/justinrm/gathered-roots-forms/internal/core/ports"
)

type entry struct {
	stamps    []int64
	touchedAt time.Time
	expiresAt time.Time
}

// Storage guarda as janelas de timestamps por cliente com limite de
// capacidade e expiração por inatividade. A remoção acontece de forma
// oportunista na escrita; não há worker de limpeza em background.
type Storage struct {
	mu       sync.Mutex
	entries  map[string]*entry
	capacity int
	now      func() time.Time
}

var _ ports.WindowStore = (*Storage)(nil)

func New(capacity int) *Storage {
	if capacity <= 0 {
		capacity = domain.DefaultStoreCapacity
	}
	return &Storage{
		entries:  make(map[string]*entry),
		capacity: capacity,
		now:      time.Now,
	}
}

func (s *Storage) Get(_ context.Context, key string) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, key)
		return nil, nil
	}

	e.touchedAt = s.now()
	out := make([]int64, len(e.stamps))
	copy(out, e.stamps)
	return out, nil
}

func (s *Storage) Set(_ context.Context, key string, stamps []int64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if _, ok := s.entries[key]; !ok && len(s.entries) >= s.capacity {
		s.evictLocked(now)
	}

	cp := make([]int64, len(stamps))
	copy(cp, stamps)
	s.entries[key] = &entry{stamps: cp, touchedAt: now, expiresAt: now.Add(ttl)}
	return nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// Len informa quantas chaves estão registradas no momento.
func (s *Storage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// evictLocked descarta primeiro as entradas expiradas e, se a capacidade
// continuar estourada, a entrada menos recentemente usada.
func (s *Storage) evictLocked(now time.Time) {
	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
		}
	}

	for len(s.entries) >= s.capacity {
		var oldestKey string
		var oldestAt time.Time
		for key, e := range s.entries {
			if oldestKey == "" || e.touchedAt.Before(oldestAt) {
				oldestKey = key
				oldestAt = e.touchedAt
			}
		}
		delete(s.entries, oldestKey)
	}
}
