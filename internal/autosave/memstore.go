package autosave

import (
	"context"
	"sync"

	"github.com/park285/chess-rules/internal/domain"
)

// MemoryStore is an in-process store used when no Redis is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	snap *domain.GameSnapshot
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Save(ctx context.Context, snap domain.GameSnapshot) error {
	m.mu.Lock()
	m.snap = &snap
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Load(ctx context.Context) (*domain.GameSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snap == nil {
		return nil, nil
	}
	cp := *m.snap
	return &cp, nil
}

func (m *MemoryStore) Exists(ctx context.Context) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap != nil, nil
}

func (m *MemoryStore) Delete(ctx context.Context) error {
	m.mu.Lock()
	m.snap = nil
	m.mu.Unlock()
	return nil
}
