package match

import (
	"github.com/mcoot/memorygame-go/internal/model"
)

// RequestFlip validates a flip and, if legal, turns the card face up and
// records it as selected. Illegal flips return the unchanged state and false.
// An id outside the round is a caller error.
func RequestFlip(state model.RoundState, cardID int) (model.RoundState, bool, error) {
	if !state.IsValidCard(cardID) {
		return state, false, model.ErrInvalidCard
	}
	if len(state.Selected) >= model.MaxSelected {
		return state, false, nil
	}
	if state.IsMatched(cardID) || state.IsSelected(cardID) {
		return state, false, nil
	}

	next := state.Clone()
	next.Cards[cardID].FaceUp = true
	next.Selected = append(next.Selected, cardID)
	return next, true, nil
}
