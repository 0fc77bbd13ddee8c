package archive

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/park285/chess-rules/internal/domain"
)

// memrepo is an in-memory Repository used when no database is configured.
type memrepo struct {
	mu sync.RWMutex

	nextID int64

	gamesByID   map[int64]*domain.GameRecord
	gamesByUUID map[string]*domain.GameRecord
}

func NewMemoryRepository() Repository {
	return &memrepo{
		gamesByID:   make(map[int64]*domain.GameRecord),
		gamesByUUID: make(map[string]*domain.GameRecord),
	}
}

func (m *memrepo) InsertGame(ctx context.Context, game *domain.GameRecord) (int64, error) {
	if game == nil {
		return 0, ErrDuplicateGame
	}
	key := strings.TrimSpace(game.GameID)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.gamesByUUID[key]; exists {
		return 0, ErrDuplicateGame
	}

	m.nextID++
	stored := cloneRecord(game)
	stored.ID = m.nextID
	m.gamesByID[stored.ID] = stored
	m.gamesByUUID[key] = stored
	return stored.ID, nil
}

func (m *memrepo) GetRecentGames(ctx context.Context, limit int) ([]*domain.GameRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]*domain.GameRecord, 0, len(m.gamesByID))
	for _, g := range m.gamesByID {
		items = append(items, cloneRecord(g))
	}
	// EndedAt desc, then ID desc
	sort.Slice(items, func(i, j int) bool {
		if !items[i].EndedAt.Equal(items[j].EndedAt) {
			return items[i].EndedAt.After(items[j].EndedAt)
		}
		return items[i].ID > items[j].ID
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (m *memrepo) GetGameByUUID(ctx context.Context, gameID string) (*domain.GameRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.gamesByUUID[strings.TrimSpace(gameID)]; ok && g != nil {
		return cloneRecord(g), nil
	}
	return nil, nil
}

func cloneRecord(g *domain.GameRecord) *domain.GameRecord {
	cp := *g
	cp.Moves = append([]string(nil), g.Moves...)
	return &cp
}
