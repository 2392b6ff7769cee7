package model

import "time"

// RoundID identifies one playthrough from deck build to completion
type RoundID string

// RoundState is the complete state of a single round
type RoundState struct {
	ID        RoundID
	Cards     []Card
	Selected  []int        // Face-up cards awaiting resolution, at most 2
	Matched   map[int]bool // Card IDs permanently matched this round
	MoveCount int          // Incremented once per resolved pair
	Completed bool         // Set once when every card is matched
	StartedAt time.Time
}

// MaxSelected is the number of cards that form one resolution
const MaxSelected = 2

// TotalCards returns the number of cards in the round
func (r *RoundState) TotalCards() int {
	return len(r.Cards)
}

// IsValidCard returns true if id refers to a card in this round
func (r *RoundState) IsValidCard(id int) bool {
	return id >= 0 && id < len(r.Cards)
}

// IsSelected returns true if the card is one of the live selections
func (r *RoundState) IsSelected(id int) bool {
	for _, s := range r.Selected {
		if s == id {
			return true
		}
	}
	return false
}

// IsMatched returns true if the card has been matched
func (r *RoundState) IsMatched(id int) bool {
	return r.Matched[id]
}

// MatchedCount returns the number of matched cards
func (r *RoundState) MatchedCount() int {
	return len(r.Matched)
}

// Clone returns a deep copy so transitions never share backing arrays
func (r RoundState) Clone() RoundState {
	cards := make([]Card, len(r.Cards))
	copy(cards, r.Cards)

	selected := make([]int, len(r.Selected))
	copy(selected, r.Selected)

	matched := make(map[int]bool, len(r.Matched))
	for id, ok := range r.Matched {
		if ok {
			matched[id] = true
		}
	}

	r.Cards = cards
	r.Selected = selected
	r.Matched = matched
	return r
}
