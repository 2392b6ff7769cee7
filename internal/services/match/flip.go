package match

import (
	"github.com/mcoot/memorygame-go/internal/model"
)

// Step summarises everything a single flip caused
type Step struct {
	Accepted   bool
	CardID     int
	Resolution Resolution
	Completed  bool
}

// Flip runs a flip through selection, resolution and completion detection
func Flip(state model.RoundState, cardID int) (model.RoundState, Step, error) {
	step := Step{CardID: cardID, Resolution: Resolution{Outcome: OutcomeNone}}

	next, accepted, err := RequestFlip(state, cardID)
	if err != nil {
		return state, step, err
	}
	if !accepted {
		return state, step, nil
	}
	step.Accepted = true

	next, step.Resolution = Resolve(next)
	if step.Resolution.Outcome == OutcomeMatch {
		next, step.Completed = DetectCompletion(next)
	}

	return next, step, nil
}
