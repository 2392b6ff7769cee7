package pages

import (
	"github.com/mcoot/memorygame-go/internal/web/templates/components"
	"github.com/mcoot/memorygame-go/internal/web/templates/layout"
)

// GameData holds data for the game page
type GameData struct {
	layout.PageData
	Board components.BoardView
}

// NameEntryData holds data for the name entry page
type NameEntryData struct {
	layout.PageData
}

// ServerErrorData holds data for the error page
type ServerErrorData struct {
	layout.PageData
	RequestID string // quoted so a report can be matched to the server log
}
