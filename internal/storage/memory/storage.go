package memory

import (
	"context"
	"sync"

	"github.com/mcoot/memorygame-go/internal/model"
	"github.com/mcoot/memorygame-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Tables are cloned on the way in and out so callers never share state.
type Storage struct {
	mu sync.RWMutex

	tables map[model.TableID]*model.Table
	scores map[model.TableID][]model.ScoreRecord
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		tables: make(map[model.TableID]*model.Table),
		scores: make(map[model.TableID][]model.ScoreRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Table operations

func (s *Storage) SaveTable(ctx context.Context, table *model.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stored int64
	if existing, ok := s.tables[table.ID]; ok {
		stored = existing.Version
	}
	if stored != table.Version {
		return model.ErrTableConflict
	}

	table.Version++
	s.tables[table.ID] = table.Clone()
	return nil
}

func (s *Storage) GetTable(ctx context.Context, id model.TableID) (*model.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	table, ok := s.tables[id]
	if !ok {
		return nil, model.ErrTableNotFound
	}
	return table.Clone(), nil
}

func (s *Storage) DeleteTable(ctx context.Context, id model.TableID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, id)
	delete(s.scores, id)
	return nil
}

// Ranking operations

func (s *Storage) AppendScore(ctx context.Context, id model.TableID, record model.ScoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[id] = append(s.scores[id], record)
	return nil
}

func (s *Storage) ListScores(ctx context.Context, id model.TableID) ([]model.ScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scores := s.scores[id]
	result := make([]model.ScoreRecord, len(scores))
	copy(result, scores)
	return result, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return nil
}
