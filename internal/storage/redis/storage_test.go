package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/memorygame-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.TableTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func newTable() *model.Table {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &model.Table{
		ID:     "table-1",
		Player: &model.PlayerSession{PlayerName: "Alice", Started: true, StartedAt: now},
		Round: &model.RoundState{
			ID: "round-1",
			Cards: []model.Card{
				{ID: 0, Symbol: "water", Decoration: "star", FaceUp: true},
				{ID: 1, Symbol: "soil", Decoration: "square"},
				{ID: 2, Symbol: "water", Decoration: "star", FaceUp: true},
				{ID: 3, Symbol: "soil", Decoration: "triangle"},
			},
			Selected:  []int{},
			Matched:   map[int]bool{0: true, 2: true},
			MoveCount: 3,
			StartedAt: now,
		},
		Banner:    &model.Banner{Message: "hello", ExpiresAt: now.Add(3 * time.Second)},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Table tests

func (s *StorageSuite) TestSaveAndGetTable() {
	table := newTable()

	err := s.storage.SaveTable(s.ctx, table)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetTable(s.ctx, "table-1")
	s.Require().NoError(err)
	s.Equal(table.ID, retrieved.ID)
	s.Equal("Alice", retrieved.Player.PlayerName)
	s.Require().NotNil(retrieved.Round)
	s.Equal(table.Round.Cards, retrieved.Round.Cards)
	s.True(retrieved.Round.IsMatched(0))
	s.True(retrieved.Round.IsMatched(2))
	s.False(retrieved.Round.IsMatched(1))
	s.Equal(3, retrieved.Round.MoveCount)
	s.True(table.CreatedAt.Equal(retrieved.CreatedAt))
	s.Require().NotNil(retrieved.Banner)
	s.Equal("hello", retrieved.Banner.Message)
}

func (s *StorageSuite) TestSaveTableWithoutRound() {
	table := &model.Table{ID: "table-2"}

	s.Require().NoError(s.storage.SaveTable(s.ctx, table))

	retrieved, err := s.storage.GetTable(s.ctx, "table-2")
	s.Require().NoError(err)
	s.Nil(retrieved.Player)
	s.Nil(retrieved.Round)
	s.False(retrieved.HasSession())
}

func (s *StorageSuite) TestGetTableNotFound() {
	_, err := s.storage.GetTable(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrTableNotFound)
}

func (s *StorageSuite) TestSaveTableBumpsVersion() {
	table := newTable()

	s.Require().NoError(s.storage.SaveTable(s.ctx, table))
	s.Equal(int64(1), table.Version)
	s.Require().NoError(s.storage.SaveTable(s.ctx, table))
	s.Equal(int64(2), table.Version)

	retrieved, err := s.storage.GetTable(s.ctx, "table-1")
	s.Require().NoError(err)
	s.Equal(int64(2), retrieved.Version)
}

func (s *StorageSuite) TestSaveTableRejectsStaleCopy() {
	s.Require().NoError(s.storage.SaveTable(s.ctx, newTable()))

	first, _ := s.storage.GetTable(s.ctx, "table-1")
	second, _ := s.storage.GetTable(s.ctx, "table-1")

	first.Round.MoveCount = 4
	s.Require().NoError(s.storage.SaveTable(s.ctx, first))

	// second was read before first was saved
	second.Round.Cards[1].FaceUp = true
	err := s.storage.SaveTable(s.ctx, second)
	s.ErrorIs(err, model.ErrTableConflict)
	s.Equal(int64(1), second.Version)

	retrieved, _ := s.storage.GetTable(s.ctx, "table-1")
	s.Equal(4, retrieved.Round.MoveCount)
	s.False(retrieved.Round.Cards[1].FaceUp)
}

func (s *StorageSuite) TestSaveTableRejectsDeletedTable() {
	table := newTable()
	s.Require().NoError(s.storage.SaveTable(s.ctx, table))
	s.Require().NoError(s.storage.DeleteTable(s.ctx, "table-1"))

	err := s.storage.SaveTable(s.ctx, table)
	s.ErrorIs(err, model.ErrTableConflict)
}

func (s *StorageSuite) TestDeleteTableRemovesScores() {
	_ = s.storage.SaveTable(s.ctx, newTable())
	_ = s.storage.AppendScore(s.ctx, "table-1", model.ScoreRecord{PlayerName: "Alice", MoveCount: 8})

	err := s.storage.DeleteTable(s.ctx, "table-1")
	s.Require().NoError(err)

	_, err = s.storage.GetTable(s.ctx, "table-1")
	s.ErrorIs(err, model.ErrTableNotFound)

	scores, err := s.storage.ListScores(s.ctx, "table-1")
	s.Require().NoError(err)
	s.Empty(scores)
}

func (s *StorageSuite) TestTableExpires() {
	_ = s.storage.SaveTable(s.ctx, newTable())
	_ = s.storage.AppendScore(s.ctx, "table-1", model.ScoreRecord{PlayerName: "Alice", MoveCount: 8})

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetTable(s.ctx, "table-1")
	s.ErrorIs(err, model.ErrTableNotFound)
	s.False(s.mini.Exists(scoresKey("table-1")))
}

func (s *StorageSuite) TestSaveTableRefreshesScoresTTL() {
	_ = s.storage.AppendScore(s.ctx, "table-1", model.ScoreRecord{PlayerName: "Alice", MoveCount: 8})
	s.mini.FastForward(50 * time.Minute)

	_ = s.storage.SaveTable(s.ctx, newTable())
	s.mini.FastForward(50 * time.Minute)

	scores, err := s.storage.ListScores(s.ctx, "table-1")
	s.Require().NoError(err)
	s.Len(scores, 1)
}

// Ranking tests

func (s *StorageSuite) TestScoresKeepInsertionOrder() {
	records := []model.ScoreRecord{
		{PlayerName: "Alice", MoveCount: 12},
		{PlayerName: "Bob", MoveCount: 7},
		{PlayerName: "Carol", MoveCount: 9},
	}
	for _, r := range records {
		s.Require().NoError(s.storage.AppendScore(s.ctx, "table-1", r))
	}

	scores, err := s.storage.ListScores(s.ctx, "table-1")
	s.Require().NoError(err)
	s.Require().Len(scores, 3)
	for i, r := range records {
		s.Equal(r.PlayerName, scores[i].PlayerName)
		s.Equal(r.MoveCount, scores[i].MoveCount)
	}
}

func (s *StorageSuite) TestListScoresEmpty() {
	scores, err := s.storage.ListScores(s.ctx, "table-1")
	s.Require().NoError(err)
	s.NotNil(scores)
	s.Empty(scores)
}

func (s *StorageSuite) TestPing() {
	s.NoError(s.storage.Ping(s.ctx))
}
