package factory

import (
	"time"

	"github.com/mcoot/memorygame-go/internal/dependencies/mocks"
	"github.com/mcoot/memorygame-go/internal/services/game"
	"github.com/mcoot/memorygame-go/internal/services/session"
	"github.com/mcoot/memorygame-go/internal/storage/memory"
	"github.com/mcoot/memorygame-go/internal/testutil"
)

// TestStartTime is the mock clock's initial time
var TestStartTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// With no queued random values every round is dealt unshuffled, so card i
// pairs with card i+len(catalog.Symbols).
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(TestStartTime)
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, session.DefaultConfig(), game.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// PairOffset is the distance between the two cards of a pair in an
// unshuffled round
func (t *TestApp) PairOffset() int {
	return len(t.GameController.Catalog().Symbols)
}
