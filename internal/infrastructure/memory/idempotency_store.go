// Package memory contiene adaptadores en memoria para despliegues de un solo proceso.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/inventario-obra/internal/application/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore mapa de claves con expiración. Las vencidas se purgan en cada Claim.
type IdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

// NewIdempotencyStore construye el almacén. ttl <= 0 usa 24 h.
func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyStore{keys: make(map[string]time.Time), ttl: ttl, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (s *IdempotencyStore) WithClock(now func() time.Time) *IdempotencyStore {
	s.now = now
	return s
}

// Claim implementa ports.IdempotencyStore.
func (s *IdempotencyStore) Claim(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, exp := range s.keys {
		if !now.Before(exp) {
			delete(s.keys, k)
		}
	}
	if _, ok := s.keys[key]; ok {
		return false, nil
	}
	s.keys[key] = now.Add(s.ttl)
	return true, nil
}

// Release implementa ports.IdempotencyStore.
func (s *IdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	return nil
}
