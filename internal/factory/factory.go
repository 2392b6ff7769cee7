package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/memorygame-go/internal/dependencies/clock"
	"github.com/mcoot/memorygame-go/internal/dependencies/random"
	"github.com/mcoot/memorygame-go/internal/services/deck"
	"github.com/mcoot/memorygame-go/internal/services/game"
	"github.com/mcoot/memorygame-go/internal/services/ranking"
	"github.com/mcoot/memorygame-go/internal/services/session"
	"github.com/mcoot/memorygame-go/internal/storage"
	"github.com/mcoot/memorygame-go/internal/storage/memory"
	redisstorage "github.com/mcoot/memorygame-go/internal/storage/redis"
	"github.com/mcoot/memorygame-go/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DeckService    *deck.Service
	RankingService *ranking.Service
	SessionService *session.Service
	GameController *game.Controller
	HubManager     *sse.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SessionConfig controls table lifetime. Zero value means session.DefaultConfig()
	SessionConfig session.Config
	// GameConfig holds timings and the catalog. Zero fields take game defaults
	GameConfig game.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// An empty catalog falls back to the built-in one
	if len(cfg.GameConfig.Catalog.Symbols) > 0 {
		if err := cfg.GameConfig.Catalog.Validate(); err != nil {
			return nil, err
		}
	}

	return newWithDependencies(store, clock.New(), random.New(), cfg.SessionConfig, cfg.GameConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	sessionCfg session.Config,
	gameCfg game.Config,
	logger *slog.Logger,
) *App {
	if sessionCfg.TableTTL <= 0 {
		sessionCfg = session.DefaultConfig()
	}

	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)

	deckService := deck.New(clk, rnd)
	rankingService := ranking.New(store, logger)
	sessionService := session.New(store, clk, rnd, logger, sessionCfg)
	gameController := game.NewController(store, deckService, rankingService, clk, broadcaster, logger, gameCfg)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		DeckService:    deckService,
		RankingService: rankingService,
		SessionService: sessionService,
		GameController: gameController,
		HubManager:     hubManager,
	}
}

// Close stops pending timers, disconnects event streams and releases the
// storage connection if it holds one
func (a *App) Close() {
	a.GameController.Close()
	a.HubManager.CloseAll()
	if closer, ok := a.Storage.(io.Closer); ok {
		_ = closer.Close()
	}
}
