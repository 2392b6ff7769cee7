package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/memorygame-go/internal/model"
	"github.com/mcoot/memorygame-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Table operations

func (s *Storage) SaveTable(ctx context.Context, table *model.Table) error {
	next := *table
	next.Version = table.Version + 1
	data, err := json.Marshal(&next)
	if err != nil {
		return err
	}

	key := tableKey(table.ID)
	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := storedVersion(ctx, tx, key)
		if err != nil {
			return err
		}
		if stored != table.Version {
			return model.ErrTableConflict
		}

		// Save the table and keep the ranking list alive alongside it
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.cfg.TableTTL)
			pipe.Expire(ctx, scoresKey(table.ID), s.cfg.TableTTL)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return model.ErrTableConflict
	}
	if err != nil {
		return err
	}

	table.Version = next.Version
	return nil
}

// storedVersion reads the version of the table at key, 0 if there is none
func storedVersion(ctx context.Context, tx *redis.Tx, key string) (int64, error) {
	data, err := tx.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var stored struct{ Version int64 }
	if err := json.Unmarshal(data, &stored); err != nil {
		return 0, fmt.Errorf("decode table version: %w", err)
	}
	return stored.Version, nil
}

func (s *Storage) GetTable(ctx context.Context, id model.TableID) (*model.Table, error) {
	data, err := s.client.Get(ctx, tableKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrTableNotFound
		}
		return nil, err
	}

	var table model.Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("decode table %s: %w", id, err)
	}
	if table.Round != nil && table.Round.Matched == nil {
		table.Round.Matched = make(map[int]bool)
	}
	return &table, nil
}

func (s *Storage) DeleteTable(ctx context.Context, id model.TableID) error {
	return s.client.Del(ctx, tableKey(id), scoresKey(id)).Err()
}

// Ranking operations

func (s *Storage) AppendScore(ctx context.Context, id model.TableID, record model.ScoreRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	key := scoresKey(id)
	pipe := s.client.Pipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, s.cfg.TableTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListScores(ctx context.Context, id model.TableID) ([]model.ScoreRecord, error) {
	values, err := s.client.LRange(ctx, scoresKey(id), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	scores := make([]model.ScoreRecord, 0, len(values))
	for _, val := range values {
		var record model.ScoreRecord
		if err := json.Unmarshal([]byte(val), &record); err != nil {
			continue // Skip invalid data
		}
		scores = append(scores, record)
	}
	return scores, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
