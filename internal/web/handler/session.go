package handler

import (
	"errors"
	"net/http"

	"github.com/mcoot/memorygame-go/internal/model"
	"github.com/mcoot/memorygame-go/internal/services/game"
	"github.com/mcoot/memorygame-go/internal/web/middleware"
	"github.com/mcoot/memorygame-go/internal/web/templates/layout"
)

// SessionHandler handles name entry
type SessionHandler struct {
	controller game.ControllerInterface
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(controller game.ControllerInterface) *SessionHandler {
	return &SessionHandler{controller: controller}
}

// Start submits the player's name and deals the first round
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	tableID := middleware.GetTableID(r.Context())

	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, layout.FlashError, "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	_, err := h.controller.SubmitName(r.Context(), tableID, r.FormValue("player_name"))
	switch {
	case err == nil, errors.Is(err, model.ErrSessionActive):
		// Already playing: show the board
	case errors.Is(err, model.ErrBlankName):
		middleware.SetFlash(w, layout.FlashError, "Please enter your name")
	default:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
