package components

import (
	"strconv"
	"time"

	"github.com/mcoot/memorygame-go/internal/model"
)

// CardView is what the grid needs to draw one card
type CardView struct {
	ID        int
	FaceUp    bool
	Matched   bool
	Clickable bool
	Glyph     string // face symbol, only set when face up
	Label     string
	BackGlyph string
}

// FlipURL is where a click on the card is posted
func (c CardView) FlipURL() string {
	return "/flip/" + strconv.Itoa(c.ID)
}

// BoardView is the render model for a table with an active session
type BoardView struct {
	PlayerName  string
	Cards       []CardView
	MoveCount   int
	Banner      string
	ShowRanking bool
	Ranking     []model.ScoreRecord
}

// NewBoardView derives the render model from a table. Face symbols of
// face-down cards are never exposed.
func NewBoardView(table *model.Table, catalog model.Catalog, ranking []model.ScoreRecord, now time.Time) BoardView {
	view := BoardView{
		ShowRanking: table.ShowRanking,
		Ranking:     ranking,
	}
	if table.Player != nil {
		view.PlayerName = table.Player.PlayerName
	}
	if banner := table.ActiveBanner(now); banner != nil {
		view.Banner = banner.Message
	}

	round := table.Round
	if round == nil {
		return view
	}
	view.MoveCount = round.MoveCount

	selectionFull := len(round.Selected) >= model.MaxSelected
	view.Cards = make([]CardView, 0, len(round.Cards))
	for _, card := range round.Cards {
		cv := CardView{
			ID:      card.ID,
			FaceUp:  card.FaceUp,
			Matched: round.IsMatched(card.ID),
		}
		cv.Clickable = !cv.Matched && !round.IsSelected(card.ID) && !selectionFull && !round.Completed
		if d, ok := catalog.Decoration(card.Decoration); ok {
			cv.BackGlyph = d.Glyph
		}
		if card.FaceUp {
			if s, ok := catalog.Symbol(card.Symbol); ok {
				cv.Glyph = s.Glyph
				cv.Label = s.Label
			} else {
				cv.Label = string(card.Symbol)
			}
		}
		view.Cards = append(view.Cards, cv)
	}
	return view
}
