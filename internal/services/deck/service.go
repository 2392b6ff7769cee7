package deck

import (
	"github.com/mcoot/memorygame-go/internal/dependencies/clock"
	"github.com/mcoot/memorygame-go/internal/dependencies/random"
	"github.com/mcoot/memorygame-go/internal/model"
)

// Service builds shuffled rounds from a catalog
type Service struct {
	clock  clock.Clock
	random random.Random
}

// New creates a new deck Service
func New(clock clock.Clock, random random.Random) *Service {
	return &Service{
		clock:  clock,
		random: random,
	}
}

// BuildRound creates a fresh round with two cards per catalog symbol.
// Each card gets an independently drawn back decoration and the sequence
// is shuffled with Fisher-Yates. Card IDs are assigned after shuffling.
func (s *Service) BuildRound(catalog model.Catalog) (*model.RoundState, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	n := len(catalog.Symbols)
	cards := make([]model.Card, 0, 2*n)
	for copyIdx := 0; copyIdx < 2; copyIdx++ {
		for _, sym := range catalog.Symbols {
			cards = append(cards, model.Card{
				Symbol:     sym.ID,
				Decoration: catalog.Decorations[s.random.Intn(len(catalog.Decorations))].ID,
			})
		}
	}

	s.shuffle(cards)

	for i := range cards {
		cards[i].ID = i
	}

	return &model.RoundState{
		ID:        model.RoundID(s.random.UUID()),
		Cards:     cards,
		Selected:  []int{},
		Matched:   make(map[int]bool),
		MoveCount: 0,
		StartedAt: s.clock.Now(),
	}, nil
}

// shuffle applies an in-place Fisher-Yates permutation
func (s *Service) shuffle(cards []model.Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := s.random.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Interface for dependency injection
type ServiceInterface interface {
	BuildRound(catalog model.Catalog) (*model.RoundState, error)
}

var _ ServiceInterface = (*Service)(nil)
