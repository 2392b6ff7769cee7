package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	// Session events
	EventSessionStarted EventType = "session_started"
	EventSessionEnded   EventType = "session_ended"

	// Round events
	EventRoundStarted   EventType = "round_started"
	EventCardFlipped    EventType = "card_flipped"
	EventPairMatched    EventType = "pair_matched"
	EventPairMismatched EventType = "pair_mismatched"
	EventCardsReverted  EventType = "cards_reverted"
	EventRoundComplete  EventType = "round_complete"

	// View events
	EventBannerDismissed EventType = "banner_dismissed"
	EventRankingToggled  EventType = "ranking_toggled"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType
	Timestamp time.Time
	TableID   TableID
	RoundID   RoundID // Empty for session-only events
	Payload   any     // Type-specific data
}

// CardFlippedPayload contains data for card flipped events
type CardFlippedPayload struct {
	CardID int
}

// PairResolvedPayload contains data for matched and mismatched pair events
type PairResolvedPayload struct {
	CardIDs   [2]int
	MoveCount int
}

// CardsRevertedPayload contains data for cards reverted events
type CardsRevertedPayload struct {
	CardIDs []int
}

// RoundCompletePayload contains data for round complete events
type RoundCompletePayload struct {
	Score ScoreRecord
}
