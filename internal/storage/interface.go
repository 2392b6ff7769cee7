package storage

import (
	"context"

	"github.com/mcoot/memorygame-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Table operations. SaveTable fails with model.ErrTableConflict unless
	// the stored version equals table.Version, and bumps table.Version on
	// success. A new table starts at version 0.
	SaveTable(ctx context.Context, table *model.Table) error
	GetTable(ctx context.Context, id model.TableID) (*model.Table, error)
	DeleteTable(ctx context.Context, id model.TableID) error

	// Ranking operations. Scores are kept in insertion order and are
	// removed together with their table.
	AppendScore(ctx context.Context, id model.TableID, record model.ScoreRecord) error
	ListScores(ctx context.Context, id model.TableID) ([]model.ScoreRecord, error)

	// Ping reports whether the backend is reachable
	Ping(ctx context.Context) error
}
