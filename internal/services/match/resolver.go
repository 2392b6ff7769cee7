package match

import (
	"time"

	"github.com/mcoot/memorygame-go/internal/model"
)

// MismatchRevertDelay is how long a mismatched pair stays face up
const MismatchRevertDelay = 1000 * time.Millisecond

// Outcome describes how a pair was resolved
type Outcome string

const (
	OutcomeNone     Outcome = "none"
	OutcomeMatch    Outcome = "match"
	OutcomeMismatch Outcome = "mismatch"
)

// RevertIntent asks the caller to turn CardIDs face down after the revert
// delay, provided the round is still RoundID
type RevertIntent struct {
	RoundID model.RoundID
	CardIDs [2]int
}

// Resolution is the result of resolving the live selection
type Resolution struct {
	Outcome Outcome
	CardIDs [2]int
	Revert  *RevertIntent
}

// Resolve settles a full selection. With fewer than two selected cards it
// returns the state unchanged and OutcomeNone.
func Resolve(state model.RoundState) (model.RoundState, Resolution) {
	if len(state.Selected) < model.MaxSelected {
		return state, Resolution{Outcome: OutcomeNone}
	}

	next := state.Clone()
	first, second := next.Selected[0], next.Selected[1]
	pair := [2]int{first, second}

	next.Selected = []int{}
	next.MoveCount++

	if next.Cards[first].Symbol == next.Cards[second].Symbol {
		next.Matched[first] = true
		next.Matched[second] = true
		return next, Resolution{Outcome: OutcomeMatch, CardIDs: pair}
	}

	// Both stay face up until the revert intent is applied
	return next, Resolution{
		Outcome: OutcomeMismatch,
		CardIDs: pair,
		Revert:  &RevertIntent{RoundID: next.ID, CardIDs: pair},
	}
}

// Revert applies a fired revert intent. It is a no-op for a different round,
// and skips cards that have since been matched or selected again.
// Returns the ids that were turned face down.
func Revert(state model.RoundState, intent RevertIntent) (model.RoundState, []int) {
	return RevertCards(state, intent.RoundID, intent.CardIDs[:])
}

// RevertCards is Revert for an arbitrary subset of card ids
func RevertCards(state model.RoundState, roundID model.RoundID, cardIDs []int) (model.RoundState, []int) {
	if state.ID != roundID {
		return state, nil
	}

	next := state.Clone()
	var reverted []int
	for _, id := range cardIDs {
		if !next.IsValidCard(id) || next.IsMatched(id) || next.IsSelected(id) {
			continue
		}
		if !next.Cards[id].FaceUp {
			continue
		}
		next.Cards[id].FaceUp = false
		reverted = append(reverted, id)
	}
	if len(reverted) == 0 {
		return state, nil
	}
	return next, reverted
}
