package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mcoot/memorygame-go/internal/dependencies/clock"
	"github.com/mcoot/memorygame-go/internal/model"
	"github.com/mcoot/memorygame-go/internal/services/game"
	"github.com/mcoot/memorygame-go/internal/web/middleware"
	"github.com/mcoot/memorygame-go/internal/web/sse"
	"github.com/mcoot/memorygame-go/internal/web/templates/components"
	"github.com/mcoot/memorygame-go/internal/web/templates/layout"
)

// GameHandler handles board actions and the board's event stream
type GameHandler struct {
	controller game.ControllerInterface
	clock      clock.Clock
	hubManager *sse.HubManager
	logger     *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(controller game.ControllerInterface, clock clock.Clock, hubManager *sse.HubManager, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		controller: controller,
		clock:      clock,
		hubManager: hubManager,
		logger:     logger,
	}
}

// Board renders the board fragment. htmx fetches it on every table-update event.
func (h *GameHandler) Board(w http.ResponseWriter, r *http.Request) {
	tableID := middleware.GetTableID(r.Context())

	table, err := h.controller.GetTable(r.Context(), tableID)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !table.HasSession() {
		// The session ended elsewhere; reload into name entry
		redirect(w, r, "/")
		return
	}

	h.renderBoard(w, r, table)
}

// Flip turns the card named in the path face up
func (h *GameHandler) Flip(w http.ResponseWriter, r *http.Request) {
	tableID := middleware.GetTableID(r.Context())

	cardID, err := strconv.Atoi(mux.Vars(r)["card"])
	if err != nil {
		h.fail(w, r, "Invalid card")
		return
	}

	result, err := h.controller.Flip(r.Context(), tableID, cardID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respond(w, r, result.Table)
}

// Reset deals a new round for the same player
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	table, err := h.controller.Reset(r.Context(), middleware.GetTableID(r.Context()))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respond(w, r, table)
}

// NewGame ends the session and returns to name entry
func (h *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	if _, err := h.controller.NewGame(r.Context(), middleware.GetTableID(r.Context())); err != nil {
		h.handleError(w, r, err)
		return
	}

	redirect(w, r, "/")
}

// ShowRanking opens the ranking modal
func (h *GameHandler) ShowRanking(w http.ResponseWriter, r *http.Request) {
	h.setRanking(w, r, true)
}

// CloseRanking closes the ranking modal
func (h *GameHandler) CloseRanking(w http.ResponseWriter, r *http.Request) {
	h.setRanking(w, r, false)
}

func (h *GameHandler) setRanking(w http.ResponseWriter, r *http.Request, visible bool) {
	table, err := h.controller.SetRankingVisible(r.Context(), middleware.GetTableID(r.Context()), visible)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respond(w, r, table)
}

// Events streams table-update events for the browser's table
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	tableID := middleware.GetTableID(r.Context())
	hub := h.hubManager.GetOrCreateHub(tableID)
	sse.ServeSSE(w, r, hub, uuid.NewString())
}

// respond renders the board for htmx requests and redirects plain form posts
func (h *GameHandler) respond(w http.ResponseWriter, r *http.Request, table *model.Table) {
	if !isHTMX(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if !table.HasSession() {
		redirect(w, r, "/")
		return
	}
	h.renderBoard(w, r, table)
}

func (h *GameHandler) renderBoard(w http.ResponseWriter, r *http.Request, table *model.Table) {
	ranking, err := h.controller.Ranking(r.Context(), table.ID)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view := components.NewBoardView(table, h.controller.Catalog(), ranking, h.clock.Now())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := components.Board(view).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *GameHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidCard):
		h.fail(w, r, "That card does not exist")
	case errors.Is(err, model.ErrNoActiveSession):
		h.fail(w, r, "Enter your name to start playing")
	case errors.Is(err, model.ErrTableConflict):
		h.fail(w, r, "The game changed in another window, please try again")
	default:
		h.logger.Error("game action failed",
			slog.String("table_id", string(middleware.GetTableID(r.Context()))),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *GameHandler) fail(w http.ResponseWriter, r *http.Request, message string) {
	middleware.SetFlash(w, layout.FlashError, message)
	redirect(w, r, "/")
}

// redirect uses HX-Redirect for htmx so the whole page navigates
func redirect(w http.ResponseWriter, r *http.Request, url string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
