package memory

import (
	"context"
	"testing"
	"time"

	"github.com/mcoot/memorygame-go/internal/model"
	"github.com/stretchr/testify/suite"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func newTable() *model.Table {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &model.Table{
		ID:     "table-1",
		Player: &model.PlayerSession{PlayerName: "Alice", Started: true, StartedAt: now},
		Round: &model.RoundState{
			ID:       "round-1",
			Cards:    []model.Card{{ID: 0, Symbol: "water"}, {ID: 1, Symbol: "water"}},
			Selected: []int{},
			Matched:  map[int]bool{},
		},
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
	s.Equal(table, retrieved)
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

func (s *StorageSuite) TestSavedTableIsIsolatedFromCaller() {
	table := newTable()
	_ = s.storage.SaveTable(s.ctx, table)

	table.Round.Cards[0].FaceUp = true
	table.Player.PlayerName = "Mallory"

	retrieved, err := s.storage.GetTable(s.ctx, "table-1")
	s.Require().NoError(err)
	s.False(retrieved.Round.Cards[0].FaceUp)
	s.Equal("Alice", retrieved.Player.PlayerName)

	retrieved.Round.Matched[0] = true
	again, _ := s.storage.GetTable(s.ctx, "table-1")
	s.False(again.Round.IsMatched(0))
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
	s.Equal(records, scores)
}

func (s *StorageSuite) TestScoresAreScopedToTable() {
	_ = s.storage.AppendScore(s.ctx, "table-1", model.ScoreRecord{PlayerName: "Alice", MoveCount: 6})
	_ = s.storage.AppendScore(s.ctx, "table-2", model.ScoreRecord{PlayerName: "Bob", MoveCount: 9})

	scores, err := s.storage.ListScores(s.ctx, "table-2")
	s.Require().NoError(err)
	s.Require().Len(scores, 1)
	s.Equal("Bob", scores[0].PlayerName)
}

func (s *StorageSuite) TestListScoresReturnsCopy() {
	_ = s.storage.AppendScore(s.ctx, "table-1", model.ScoreRecord{PlayerName: "Alice", MoveCount: 6})

	scores, _ := s.storage.ListScores(s.ctx, "table-1")
	scores[0].PlayerName = "Mallory"

	again, _ := s.storage.ListScores(s.ctx, "table-1")
	s.Equal("Alice", again[0].PlayerName)
}
