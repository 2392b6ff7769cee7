package match

import (
	"github.com/mcoot/memorygame-go/internal/model"
)

// DetectCompletion latches the round as completed the first time every card
// is matched. The bool is true only on that first observation.
func DetectCompletion(state model.RoundState) (model.RoundState, bool) {
	if state.Completed || len(state.Cards) == 0 {
		return state, false
	}
	if state.MatchedCount() < state.TotalCards() {
		return state, false
	}

	next := state.Clone()
	next.Completed = true
	return next, true
}
