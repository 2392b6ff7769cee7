package request

// StartSessionRequest is the request body for entering a player name
type StartSessionRequest struct {
	PlayerName string `json:"player_name"`
}

// FlipRequest is the request body for flipping a card
type FlipRequest struct {
	CardID *int `json:"card_id"`
}

// SetRankingRequest is the request body for opening or closing the ranking view
type SetRankingRequest struct {
	Visible bool `json:"visible"`
}
