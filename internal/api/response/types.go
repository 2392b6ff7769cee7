package response

import (
	"time"

	"github.com/mcoot/memorygame-go/internal/model"
	"github.com/mcoot/memorygame-go/internal/services/game"
)

// Card represents a card in API responses. Symbol is empty while the card is face down.
type Card struct {
	ID         int    `json:"id"`
	FaceUp     bool   `json:"face_up"`
	Matched    bool   `json:"matched"`
	Symbol     string `json:"symbol,omitempty"`
	Decoration string `json:"decoration"`
}

// Round represents the current round
type Round struct {
	ID        string    `json:"id"`
	Cards     []Card    `json:"cards"`
	Selected  []int     `json:"selected"`
	MoveCount int       `json:"move_count"`
	Completed bool      `json:"completed"`
	StartedAt time.Time `json:"started_at"`
}

// RoundFromModel converts a model.RoundState, hiding face-down symbols
func RoundFromModel(r *model.RoundState) *Round {
	if r == nil {
		return nil
	}

	cards := make([]Card, len(r.Cards))
	for i, c := range r.Cards {
		cards[i] = Card{
			ID:         c.ID,
			FaceUp:     c.FaceUp,
			Matched:    r.IsMatched(c.ID),
			Decoration: string(c.Decoration),
		}
		if c.FaceUp {
			cards[i].Symbol = string(c.Symbol)
		}
	}

	selected := make([]int, len(r.Selected))
	copy(selected, r.Selected)

	return &Round{
		ID:        string(r.ID),
		Cards:     cards,
		Selected:  selected,
		MoveCount: r.MoveCount,
		Completed: r.Completed,
		StartedAt: r.StartedAt,
	}
}

// Banner represents the completion banner
type Banner struct {
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Table represents a table in API responses
type Table struct {
	ID            string  `json:"table_id"`
	PlayerName    string  `json:"player_name,omitempty"`
	SessionActive bool    `json:"session_active"`
	ShowRanking   bool    `json:"show_ranking"`
	Banner        *Banner `json:"banner,omitempty"`
	Round         *Round  `json:"round,omitempty"`
}

// TableFromModel converts a model.Table. Expired banners are omitted.
func TableFromModel(t *model.Table, now time.Time) Table {
	resp := Table{
		ID:            string(t.ID),
		SessionActive: t.HasSession(),
		ShowRanking:   t.ShowRanking,
		Round:         RoundFromModel(t.Round),
	}
	if t.Player != nil {
		resp.PlayerName = t.Player.PlayerName
	}
	if b := t.ActiveBanner(now); b != nil {
		resp.Banner = &Banner{Message: b.Message, ExpiresAt: b.ExpiresAt}
	}
	return resp
}

// CreateTableResponse is the response for creating a table
type CreateTableResponse struct {
	TableID string `json:"table_id"`
}

// FlipResponse is the response for flipping a card
type FlipResponse struct {
	Accepted  bool   `json:"accepted"`
	Outcome   string `json:"outcome"`
	Completed bool   `json:"completed"`
	Table     Table  `json:"table"`
}

// FlipResponseFromResult converts a game.FlipResult
func FlipResponseFromResult(result *game.FlipResult, now time.Time) FlipResponse {
	return FlipResponse{
		Accepted:  result.Step.Accepted,
		Outcome:   string(result.Step.Resolution.Outcome),
		Completed: result.Step.Completed,
		Table:     TableFromModel(result.Table, now),
	}
}

// RankingEntry is one line of the ranking
type RankingEntry struct {
	Rank        int       `json:"rank"`
	PlayerName  string    `json:"player_name"`
	MoveCount   int       `json:"move_count"`
	CompletedAt time.Time `json:"completed_at"`
}

// RankingResponse lists completed rounds in the order they finished
type RankingResponse struct {
	Visible bool           `json:"visible"`
	Entries []RankingEntry `json:"entries"`
}

// RankingFromModel converts score records, numbering them from 1
func RankingFromModel(records []model.ScoreRecord, visible bool) RankingResponse {
	entries := make([]RankingEntry, len(records))
	for i, r := range records {
		entries[i] = RankingEntry{
			Rank:        i + 1,
			PlayerName:  r.PlayerName,
			MoveCount:   r.MoveCount,
			CompletedAt: r.CompletedAt,
		}
	}
	return RankingResponse{Visible: visible, Entries: entries}
}

// HealthResponse is the response for the health check
type HealthResponse struct {
	Status string `json:"status"`
}
