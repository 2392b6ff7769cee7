package ranking

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcoot/memorygame-go/internal/model"
	"github.com/mcoot/memorygame-go/internal/storage"
)

// Service is the append-only score log for each table
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new ranking Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger.With(slog.String("component", "ranking")),
	}
}

// Append adds a completed round to the end of the table's ranking
func (s *Service) Append(ctx context.Context, tableID model.TableID, record model.ScoreRecord) error {
	if strings.TrimSpace(record.PlayerName) == "" {
		return model.ErrBlankName
	}

	if err := s.storage.AppendScore(ctx, tableID, record); err != nil {
		return fmt.Errorf("append score: %w", err)
	}

	s.logger.Info("score recorded",
		slog.String("table_id", string(tableID)),
		slog.String("player_name", record.PlayerName),
		slog.Int("move_count", record.MoveCount),
	)
	return nil
}

// List returns the table's scores in the order they were recorded
func (s *Service) List(ctx context.Context, tableID model.TableID) ([]model.ScoreRecord, error) {
	return s.storage.ListScores(ctx, tableID)
}
