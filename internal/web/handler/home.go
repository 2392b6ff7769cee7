package handler

import (
	"net/http"

	"github.com/mcoot/memorygame-go/internal/dependencies/clock"
	"github.com/mcoot/memorygame-go/internal/services/game"
	"github.com/mcoot/memorygame-go/internal/web/middleware"
	"github.com/mcoot/memorygame-go/internal/web/templates/components"
	"github.com/mcoot/memorygame-go/internal/web/templates/layout"
	"github.com/mcoot/memorygame-go/internal/web/templates/pages"
)

// HomeHandler serves the single page: name entry or the game board
type HomeHandler struct {
	controller game.ControllerInterface
	clock      clock.Clock
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(controller game.ControllerInterface, clock clock.Clock) *HomeHandler {
	return &HomeHandler{
		controller: controller,
		clock:      clock,
	}
}

// Home renders the name entry page or the game page depending on the session
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	tableID := middleware.GetTableID(r.Context())
	flash := middleware.GetFlash(r.Context())

	table, err := h.controller.GetTable(r.Context(), tableID)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if !table.HasSession() {
		data := pages.NameEntryData{
			PageData: layout.PageData{
				Title: "Welcome",
				Flash: flash,
			},
		}
		if err := pages.NameEntry(data).Render(r.Context(), w); err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	ranking, err := h.controller.Ranking(r.Context(), tableID)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := pages.GameData{
		PageData: layout.PageData{
			Title:      "Game",
			PlayerName: table.Player.PlayerName,
			Flash:      flash,
		},
		Board: components.NewBoardView(table, h.controller.Catalog(), ranking, h.clock.Now()),
	}
	if err := pages.Game(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
