package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/memorygame-go/internal/dependencies/clock"
	"github.com/mcoot/memorygame-go/internal/dependencies/random"
	"github.com/mcoot/memorygame-go/internal/model"
	"github.com/mcoot/memorygame-go/internal/storage"
)

// Service manages the lifecycle of tables, the per-browser container for a
// player session, its round and its ranking
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	tableTTL time.Duration
}

// Config holds configuration for the session service
type Config struct {
	// TableTTL is how long an untouched table survives
	TableTTL time.Duration
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		TableTTL: 24 * time.Hour,
	}
}

// New creates a new session Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger, cfg Config) *Service {
	if cfg.TableTTL == 0 {
		cfg.TableTTL = DefaultConfig().TableTTL
	}
	return &Service{
		storage:  storage,
		clock:    clock,
		random:   random,
		logger:   logger.With(slog.String("component", "session")),
		tableTTL: cfg.TableTTL,
	}
}

// CreateTable creates an empty table with no player session
func (s *Service) CreateTable(ctx context.Context) (*model.Table, error) {
	now := s.clock.Now()
	table := &model.Table{
		ID:        model.TableID(s.random.UUID()),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.SaveTable(ctx, table); err != nil {
		return nil, fmt.Errorf("save table: %w", err)
	}

	s.logger.Info("table created", slog.String("table_id", string(table.ID)))
	return table, nil
}

// GetTable returns a live table. A table idle for longer than the TTL is
// deleted along with its ranking and reported as not found.
func (s *Service) GetTable(ctx context.Context, id model.TableID) (*model.Table, error) {
	if id == "" {
		return nil, model.ErrTableNotFound
	}

	table, err := s.storage.GetTable(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.clock.Now().After(table.UpdatedAt.Add(s.tableTTL)) {
		if err := s.storage.DeleteTable(ctx, id); err != nil {
			return nil, fmt.Errorf("delete expired table: %w", err)
		}
		s.logger.Info("table expired", slog.String("table_id", string(id)))
		return nil, model.ErrTableNotFound
	}

	return table, nil
}

// EnsureTable returns the table for id, creating a new one if it is missing
// or expired. created reports whether a new table was made.
func (s *Service) EnsureTable(ctx context.Context, id model.TableID) (table *model.Table, created bool, err error) {
	table, err = s.GetTable(ctx, id)
	if err == nil {
		return table, false, nil
	}
	if !errors.Is(err, model.ErrTableNotFound) {
		return nil, false, err
	}

	table, err = s.CreateTable(ctx)
	if err != nil {
		return nil, false, err
	}
	return table, true, nil
}

// TTL returns the idle lifetime of a table
func (s *Service) TTL() time.Duration {
	return s.tableTTL
}
