package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/memorygame-go/internal/dependencies/clock"
	"github.com/mcoot/memorygame-go/internal/services/game"
	"github.com/mcoot/memorygame-go/internal/services/session"
	"github.com/mcoot/memorygame-go/internal/web/handler"
	"github.com/mcoot/memorygame-go/internal/web/middleware"
	"github.com/mcoot/memorygame-go/internal/web/sse"
	"github.com/mcoot/memorygame-go/internal/web/static"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	Clock          clock.Clock
	SessionService *session.Service
	GameController game.ControllerInterface
	HubManager     *sse.HubManager
	StaticDir      string // Serve static files from disk instead of the embedded copy
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))

	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = sse.NewHubManager(cfg.Logger)
	}

	homeHandler := handler.NewHomeHandler(cfg.GameController, cfg.Clock)
	sessionHandler := handler.NewSessionHandler(cfg.GameController)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.Clock, hubManager, cfg.Logger)

	staticFS := http.FS(static.FS)
	if cfg.StaticDir != "" {
		staticFS = http.Dir(cfg.StaticDir)
	}
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(staticFS)))

	// Every page and action belongs to the browser's table
	tables := r.NewRoute().Subrouter()
	tables.Use(middleware.Flash())
	tables.Use(middleware.Table(cfg.SessionService, cfg.Logger))

	tables.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	tables.HandleFunc("/session", sessionHandler.Start).Methods(http.MethodPost)

	tables.HandleFunc("/board", gameHandler.Board).Methods(http.MethodGet)
	tables.HandleFunc("/events", gameHandler.Events).Methods(http.MethodGet)
	tables.HandleFunc("/flip/{card:[0-9]+}", gameHandler.Flip).Methods(http.MethodPost)
	tables.HandleFunc("/reset", gameHandler.Reset).Methods(http.MethodPost)
	tables.HandleFunc("/new-game", gameHandler.NewGame).Methods(http.MethodPost)
	tables.HandleFunc("/ranking/show", gameHandler.ShowRanking).Methods(http.MethodPost)
	tables.HandleFunc("/ranking/close", gameHandler.CloseRanking).Methods(http.MethodPost)

	return r
}
