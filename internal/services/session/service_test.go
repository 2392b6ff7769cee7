package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/memorygame-go/internal/dependencies/mocks"
	"github.com/mcoot/memorygame-go/internal/model"
	"github.com/mcoot/memorygame-go/internal/storage/memory"
	"github.com/mcoot/memorygame-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.clock, s.random, testutil.NopLogger(), Config{TableTTL: time.Hour})
	s.ctx = context.Background()
}

// CreateTable tests

func (s *ServiceSuite) TestCreateTableSucceeds() {
	s.random.QueueUUID("table-abc")

	table, err := s.service.CreateTable(s.ctx)
	s.Require().NoError(err)

	s.Equal(model.TableID("table-abc"), table.ID)
	s.False(table.HasSession())
	s.Nil(table.Round)
	s.False(table.ShowRanking)
}

func (s *ServiceSuite) TestCreateTablePersistsTable() {
	table, _ := s.service.CreateTable(s.ctx)

	stored, err := s.storage.GetTable(s.ctx, table.ID)
	s.Require().NoError(err)
	s.Equal(table.ID, stored.ID)
}

// GetTable tests

func (s *ServiceSuite) TestGetTableReturnsLiveTable() {
	table, _ := s.service.CreateTable(s.ctx)
	s.clock.Advance(30 * time.Minute)

	got, err := s.service.GetTable(s.ctx, table.ID)
	s.Require().NoError(err)
	s.Equal(table.ID, got.ID)
}

func (s *ServiceSuite) TestGetTableEmptyID() {
	_, err := s.service.GetTable(s.ctx, "")
	s.ErrorIs(err, model.ErrTableNotFound)
}

func (s *ServiceSuite) TestGetTableExpiresIdleTable() {
	table, _ := s.service.CreateTable(s.ctx)
	_ = s.storage.AppendScore(s.ctx, table.ID, model.ScoreRecord{PlayerName: "Alice", MoveCount: 6})
	s.clock.Advance(2 * time.Hour)

	_, err := s.service.GetTable(s.ctx, table.ID)
	s.ErrorIs(err, model.ErrTableNotFound)

	_, err = s.storage.GetTable(s.ctx, table.ID)
	s.ErrorIs(err, model.ErrTableNotFound)
	scores, _ := s.storage.ListScores(s.ctx, table.ID)
	s.Empty(scores)
}

// EnsureTable tests

func (s *ServiceSuite) TestEnsureTableReturnsExisting() {
	table, _ := s.service.CreateTable(s.ctx)

	got, created, err := s.service.EnsureTable(s.ctx, table.ID)
	s.Require().NoError(err)
	s.False(created)
	s.Equal(table.ID, got.ID)
}

func (s *ServiceSuite) TestEnsureTableCreatesWhenMissing() {
	s.random.QueueUUID("fresh")

	got, created, err := s.service.EnsureTable(s.ctx, "unknown")
	s.Require().NoError(err)
	s.True(created)
	s.Equal(model.TableID("fresh"), got.ID)
}
