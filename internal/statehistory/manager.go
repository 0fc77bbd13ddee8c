// Package statehistory keeps the bounded undo list of game snapshots, the
// redo stack, and forwards each recorded state to an optional autosave store.
package statehistory

import (
	"context"
	"fmt"
	"sync"

	"github.com/park285/chess-rules/internal/domain"
	"github.com/park285/chess-rules/internal/obslog"
	"go.uber.org/zap"
)

// DefaultLimit is the number of snapshots kept for undo.
const DefaultLimit = 10

// Autosaver persists the latest snapshot. File or database I/O lives behind it.
type Autosaver interface {
	Save(ctx context.Context, s domain.GameSnapshot) error
	Load(ctx context.Context) (*domain.GameSnapshot, error)
	Exists(ctx context.Context) (bool, error)
	Delete(ctx context.Context) error
}

type Manager struct {
	mu     sync.Mutex
	limit  int
	states []domain.GameSnapshot
	redo   []domain.GameSnapshot
	store  Autosaver
	logger *zap.Logger
}

// New returns a manager keeping at most limit snapshots. limit <= 0 selects
// DefaultLimit. store and logger may be nil.
func New(limit int, store Autosaver, logger *zap.Logger) *Manager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{limit: limit, store: store, logger: logger}
}

// RecordState appends s, evicting the oldest snapshot beyond the limit, and
// drops the redo stack. The state is kept even when autosave fails; the
// autosave error is returned.
func (m *Manager) RecordState(ctx context.Context, s domain.GameSnapshot) error {
	m.mu.Lock()
	m.states = append(m.states, s)
	if over := len(m.states) - m.limit; over > 0 {
		m.states = append([]domain.GameSnapshot(nil), m.states[over:]...)
	}
	m.redo = nil
	m.mu.Unlock()

	if m.store == nil {
		return nil
	}
	if err := m.store.Save(ctx, s); err != nil {
		m.logger.Warn("autosave_error", zap.String(obslog.KeyGameID, s.Context().GameID), zap.Error(err))
		return fmt.Errorf("autosave: %w", err)
	}
	return nil
}

// Rollback moves the current snapshot onto the redo stack and returns the
// one before it. It reports false when fewer than two snapshots exist.
func (m *Manager) Rollback() (domain.GameSnapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.states)
	if n < 2 {
		return domain.GameSnapshot{}, false
	}
	m.redo = append(m.redo, m.states[n-1])
	m.states = m.states[:n-1]
	return m.states[n-2], true
}

// Redo re-applies the most recently rolled back snapshot.
func (m *Manager) Redo() (domain.GameSnapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.redo)
	if n == 0 {
		return domain.GameSnapshot{}, false
	}
	s := m.redo[n-1]
	m.redo = m.redo[:n-1]
	m.states = append(m.states, s)
	return s, true
}

// ClearRedoStack drops every pending redo.
func (m *Manager) ClearRedoStack() {
	m.mu.Lock()
	m.redo = nil
	m.mu.Unlock()
}

// CleanupAutosave removes the persisted autosave, if any.
func (m *Manager) CleanupAutosave(ctx context.Context) error {
	if m.store == nil {
		return nil
	}
	if err := m.store.Delete(ctx); err != nil {
		return fmt.Errorf("cleanup autosave: %w", err)
	}
	return nil
}

// LoadAutosave returns the persisted snapshot, or nil when there is none.
func (m *Manager) LoadAutosave(ctx context.Context) (*domain.GameSnapshot, error) {
	if m.store == nil {
		return nil, nil
	}
	ok, err := m.store.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("autosave exists: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return m.store.Load(ctx)
}

// Reset replaces every snapshot with s without touching the autosave store.
func (m *Manager) Reset(s domain.GameSnapshot) {
	m.mu.Lock()
	m.states = []domain.GameSnapshot{s}
	m.redo = nil
	m.mu.Unlock()
}

// ClearAll forgets every snapshot and pending redo.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	m.states = nil
	m.redo = nil
	m.mu.Unlock()
}

func (m *Manager) CanRollback() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.states) >= 2
}

func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redo) > 0
}

func (m *Manager) GetStateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.states)
}

// GetCurrentState returns the newest snapshot.
func (m *Manager) GetCurrentState() (domain.GameSnapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.states) == 0 {
		return domain.GameSnapshot{}, false
	}
	return m.states[len(m.states)-1], true
}
