package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/memorygame-go/internal/api/handler"
	"github.com/mcoot/memorygame-go/internal/api/middleware"
	"github.com/mcoot/memorygame-go/internal/dependencies/clock"
	"github.com/mcoot/memorygame-go/internal/services/game"
	"github.com/mcoot/memorygame-go/internal/services/session"
	"github.com/mcoot/memorygame-go/internal/storage"
	"github.com/mcoot/memorygame-go/internal/web/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	Clock          clock.Clock
	Storage        storage.Storage // pinged by the health check
	SessionService *session.Service
	GameController game.ControllerInterface
	HubManager     *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = sse.NewHubManager(cfg.Logger)
	}

	tableHandler := handler.NewTableHandler(cfg.SessionService, cfg.GameController, cfg.Clock, hubManager)
	healthHandler := handler.NewHealthHandler(cfg.Storage, cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Logging(cfg.Logger))
	api.Use(middleware.Recovery(cfg.Logger))

	api.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	api.HandleFunc("/tables", tableHandler.Create).Methods(http.MethodPost)

	// Everything under /table acts on the bearer token's table
	table := api.PathPrefix("/table").Subrouter()
	table.Use(middleware.TableAuth(cfg.SessionService))
	table.HandleFunc("", tableHandler.Get).Methods(http.MethodGet)
	table.HandleFunc("/session", tableHandler.StartSession).Methods(http.MethodPost)
	table.HandleFunc("/session", tableHandler.EndSession).Methods(http.MethodDelete)
	table.HandleFunc("/flip", tableHandler.Flip).Methods(http.MethodPost)
	table.HandleFunc("/reset", tableHandler.Reset).Methods(http.MethodPost)
	table.HandleFunc("/ranking", tableHandler.GetRanking).Methods(http.MethodGet)
	table.HandleFunc("/ranking", tableHandler.SetRanking).Methods(http.MethodPut)
	table.HandleFunc("/events", tableHandler.Events).Methods(http.MethodGet)

	return r
}
