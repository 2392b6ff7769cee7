package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/mcoot/memorygame-go/internal/api/apierr"
	"github.com/mcoot/memorygame-go/internal/api/middleware"
	"github.com/mcoot/memorygame-go/internal/api/request"
	"github.com/mcoot/memorygame-go/internal/api/response"
	"github.com/mcoot/memorygame-go/internal/dependencies/clock"
	"github.com/mcoot/memorygame-go/internal/services/game"
	"github.com/mcoot/memorygame-go/internal/services/session"
	"github.com/mcoot/memorygame-go/internal/web/sse"
)

// TableHandler handles table endpoints
type TableHandler struct {
	sessions   *session.Service
	controller game.ControllerInterface
	clock      clock.Clock
	hubManager *sse.HubManager
}

// NewTableHandler creates a new table handler
func NewTableHandler(sessions *session.Service, controller game.ControllerInterface, clock clock.Clock, hubManager *sse.HubManager) *TableHandler {
	return &TableHandler{
		sessions:   sessions,
		controller: controller,
		clock:      clock,
		hubManager: hubManager,
	}
}

// Create handles POST /api/v1/tables
func (h *TableHandler) Create(w http.ResponseWriter, r *http.Request) {
	table, err := h.sessions.CreateTable(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.CreateTableResponse{TableID: string(table.ID)})
}

// Get handles GET /api/v1/table
func (h *TableHandler) Get(w http.ResponseWriter, r *http.Request) {
	table, err := h.controller.GetTable(r.Context(), middleware.MustGetTableID(r.Context()))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TableFromModel(table, h.clock.Now()))
}

// StartSession handles POST /api/v1/table/session
func (h *TableHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req request.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid request body"))
		return
	}

	table, err := h.controller.SubmitName(r.Context(), middleware.MustGetTableID(r.Context()), req.PlayerName)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.TableFromModel(table, h.clock.Now()))
}

// EndSession handles DELETE /api/v1/table/session (New Game)
func (h *TableHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	table, err := h.controller.NewGame(r.Context(), middleware.MustGetTableID(r.Context()))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TableFromModel(table, h.clock.Now()))
}

// Flip handles POST /api/v1/table/flip
func (h *TableHandler) Flip(w http.ResponseWriter, r *http.Request) {
	var req request.FlipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CardID == nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("card_id is required"))
		return
	}

	result, err := h.controller.Flip(r.Context(), middleware.MustGetTableID(r.Context()), *req.CardID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.FlipResponseFromResult(result, h.clock.Now()))
}

// Reset handles POST /api/v1/table/reset
func (h *TableHandler) Reset(w http.ResponseWriter, r *http.Request) {
	table, err := h.controller.Reset(r.Context(), middleware.MustGetTableID(r.Context()))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TableFromModel(table, h.clock.Now()))
}

// GetRanking handles GET /api/v1/table/ranking
func (h *TableHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	tableID := middleware.MustGetTableID(r.Context())

	table, err := h.controller.GetTable(r.Context(), tableID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	records, err := h.controller.Ranking(r.Context(), tableID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RankingFromModel(records, table.ShowRanking))
}

// SetRanking handles PUT /api/v1/table/ranking
func (h *TableHandler) SetRanking(w http.ResponseWriter, r *http.Request) {
	tableID := middleware.MustGetTableID(r.Context())

	var req request.SetRankingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid request body"))
		return
	}

	table, err := h.controller.SetRankingVisible(r.Context(), tableID, req.Visible)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	records, err := h.controller.Ranking(r.Context(), tableID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RankingFromModel(records, table.ShowRanking))
}

// Events handles GET /api/v1/table/events
func (h *TableHandler) Events(w http.ResponseWriter, r *http.Request) {
	hub := h.hubManager.GetOrCreateHub(middleware.MustGetTableID(r.Context()))
	sse.ServeSSE(w, r, hub, uuid.NewString())
}
