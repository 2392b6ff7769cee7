package game

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mcoot/memorygame-go/internal/dependencies/clock"
	"github.com/mcoot/memorygame-go/internal/model"
	"github.com/mcoot/memorygame-go/internal/services/deck"
	"github.com/mcoot/memorygame-go/internal/services/match"
	"github.com/mcoot/memorygame-go/internal/services/ranking"
	"github.com/mcoot/memorygame-go/internal/storage"
)

// Config holds the timing and content settings for the controller
type Config struct {
	RevertDelay    time.Duration
	BannerDuration time.Duration
	Catalog        model.Catalog
}

// DefaultConfig returns the default controller configuration
func DefaultConfig() Config {
	return Config{
		RevertDelay:    match.MismatchRevertDelay,
		BannerDuration: 3 * time.Second,
		Catalog:        model.DefaultCatalog(),
	}
}

// FlipResult is the outcome of a flip command
type FlipResult struct {
	Table *model.Table
	Step  match.Step
}

// pendingRevert is the single outstanding revert for a table
type pendingRevert struct {
	timer  clock.Timer
	intent match.RevertIntent
}

// pendingBanner is the outstanding banner dismissal for a table
type pendingBanner struct {
	timer clock.Timer
}

// Controller is the only place that mutates tables. Commands and timer
// callbacks all take mu, so each table sees one transition at a time.
type Controller struct {
	storage  storage.Storage
	deck     deck.ServiceInterface
	ranking  *ranking.Service
	clock    clock.Clock
	notifier Notifier
	logger   *slog.Logger
	cfg      Config

	mu      sync.Mutex
	reverts map[model.TableID]*pendingRevert
	banners map[model.TableID]*pendingBanner
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	deckService deck.ServiceInterface,
	rankingService *ranking.Service,
	clock clock.Clock,
	notifier Notifier,
	logger *slog.Logger,
	cfg Config,
) *Controller {
	defaults := DefaultConfig()
	if cfg.RevertDelay <= 0 {
		cfg.RevertDelay = defaults.RevertDelay
	}
	if cfg.BannerDuration <= 0 {
		cfg.BannerDuration = defaults.BannerDuration
	}
	if len(cfg.Catalog.Symbols) == 0 {
		cfg.Catalog = defaults.Catalog
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Controller{
		storage:  storage,
		deck:     deckService,
		ranking:  rankingService,
		clock:    clock,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "game")),
		cfg:      cfg,
		reverts:  make(map[model.TableID]*pendingRevert),
		banners:  make(map[model.TableID]*pendingBanner),
	}
}

// Catalog returns the catalog rounds are built from
func (c *Controller) Catalog() model.Catalog {
	return c.cfg.Catalog
}

// GetTable retrieves a table by ID
func (c *Controller) GetTable(ctx context.Context, tableID model.TableID) (*model.Table, error) {
	return c.storage.GetTable(ctx, tableID)
}

// Ranking returns the table's ranking in insertion order
func (c *Controller) Ranking(ctx context.Context, tableID model.TableID) ([]model.ScoreRecord, error) {
	return c.ranking.List(ctx, tableID)
}

// SubmitName starts a player session and deals the first round
func (c *Controller) SubmitName(ctx context.Context, tableID model.TableID, name string) (*model.Table, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrBlankName
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	table, err := c.storage.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if table.HasSession() {
		return nil, model.ErrSessionActive
	}

	round, err := c.deck.BuildRound(c.cfg.Catalog)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	table.Player = &model.PlayerSession{
		PlayerName: name,
		Started:    true,
		StartedAt:  now,
	}
	table.Round = round
	table.Banner = nil
	table.ShowRanking = false
	table.UpdatedAt = now

	if err := c.save(ctx, table); err != nil {
		return nil, err
	}

	c.logger.Info("session started",
		slog.String("table_id", string(tableID)),
		slog.String("player_name", name),
		slog.String("round_id", string(round.ID)),
	)

	c.publish(ctx, table, model.EventSessionStarted, nil)
	c.publish(ctx, table, model.EventRoundStarted, nil)
	return table, nil
}

// Flip turns a card over and resolves the selection when it reaches two.
// Illegal flips leave the table unchanged and report Accepted=false.
func (c *Controller) Flip(ctx context.Context, tableID model.TableID, cardID int) (*FlipResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	table, err := c.storage.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if !table.HasSession() || table.Round == nil {
		return nil, model.ErrNoActiveSession
	}

	next, step, err := match.Flip(*table.Round, cardID)
	if err != nil {
		return nil, err
	}
	if !step.Accepted {
		c.logger.Debug("flip ignored",
			slog.String("table_id", string(tableID)),
			slog.Int("card_id", cardID),
		)
		return &FlipResult{Table: table, Step: step}, nil
	}

	now := c.clock.Now()
	table.Round = &next
	table.UpdatedAt = now

	// Timers and the ranking only change once the new state is stored
	intent := step.Resolution.Revert
	var reverted []int
	if intent != nil {
		reverted = c.revertPending(tableID, table, *intent)
	}

	var score model.ScoreRecord
	if step.Completed {
		score = model.ScoreRecord{
			PlayerName:  table.Player.PlayerName,
			MoveCount:   table.Round.MoveCount,
			CompletedAt: now,
		}
		table.Banner = &model.Banner{
			Message:   congratulations(score),
			ExpiresAt: now.Add(c.cfg.BannerDuration),
		}
		table.ShowRanking = true
	}

	if err := c.save(ctx, table); err != nil {
		return nil, err
	}

	if intent != nil {
		c.scheduleRevert(tableID, *intent)
	}
	if step.Completed {
		c.scheduleBannerDismiss(tableID)
		if err := c.ranking.Append(ctx, tableID, score); err != nil {
			return nil, fmt.Errorf("record score: %w", err)
		}
	}

	if len(reverted) > 0 {
		c.publish(ctx, table, model.EventCardsReverted, model.CardsRevertedPayload{CardIDs: reverted})
	}
	c.publish(ctx, table, model.EventCardFlipped, model.CardFlippedPayload{CardID: cardID})

	switch step.Resolution.Outcome {
	case match.OutcomeMatch:
		c.publish(ctx, table, model.EventPairMatched, model.PairResolvedPayload{
			CardIDs:   step.Resolution.CardIDs,
			MoveCount: table.Round.MoveCount,
		})
	case match.OutcomeMismatch:
		c.publish(ctx, table, model.EventPairMismatched, model.PairResolvedPayload{
			CardIDs:   step.Resolution.CardIDs,
			MoveCount: table.Round.MoveCount,
		})
	}

	if step.Completed {
		c.logger.Info("round complete",
			slog.String("table_id", string(tableID)),
			slog.String("round_id", string(table.Round.ID)),
			slog.String("player_name", score.PlayerName),
			slog.Int("move_count", score.MoveCount),
		)
		c.publish(ctx, table, model.EventRoundComplete, model.RoundCompletePayload{Score: score})
	}

	return &FlipResult{Table: table, Step: step}, nil
}

// Reset deals a fresh round for the same player. The ranking is kept.
func (c *Controller) Reset(ctx context.Context, tableID model.TableID) (*model.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	table, err := c.storage.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if !table.HasSession() {
		return nil, model.ErrNoActiveSession
	}

	round, err := c.deck.BuildRound(c.cfg.Catalog)
	if err != nil {
		return nil, err
	}

	table.Round = round
	table.Banner = nil
	table.UpdatedAt = c.clock.Now()

	if err := c.save(ctx, table); err != nil {
		return nil, err
	}
	c.cancelTimers(tableID)

	c.logger.Info("round reset",
		slog.String("table_id", string(tableID)),
		slog.String("round_id", string(round.ID)),
	)

	c.publish(ctx, table, model.EventRoundStarted, nil)
	return table, nil
}

// NewGame ends the player session and returns the table to name entry.
// The ranking is kept.
func (c *Controller) NewGame(ctx context.Context, tableID model.TableID) (*model.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	table, err := c.storage.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}

	hadSession := table.HasSession()
	table.Player = nil
	table.Round = nil
	table.Banner = nil
	table.ShowRanking = false
	table.UpdatedAt = c.clock.Now()

	if err := c.save(ctx, table); err != nil {
		return nil, err
	}
	c.cancelTimers(tableID)

	if hadSession {
		c.logger.Info("session ended", slog.String("table_id", string(tableID)))
		c.publish(ctx, table, model.EventSessionEnded, nil)
	}
	return table, nil
}

// SetRankingVisible opens or closes the ranking view
func (c *Controller) SetRankingVisible(ctx context.Context, tableID model.TableID, visible bool) (*model.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	table, err := c.storage.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if table.ShowRanking == visible {
		return table, nil
	}

	table.ShowRanking = visible
	table.UpdatedAt = c.clock.Now()

	if err := c.save(ctx, table); err != nil {
		return nil, err
	}

	c.publish(ctx, table, model.EventRankingToggled, nil)
	return table, nil
}

// Close stops every pending timer
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id := range c.reverts {
		c.cancelTimers(id)
	}
	for id := range c.banners {
		c.cancelTimers(id)
	}
}

// PendingReverts returns the number of tables waiting on a revert timer
func (c *Controller) PendingReverts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.reverts)
}

// revertPending applies the table's pending revert to table ahead of its
// timer, except for cards the new intent covers. The timer itself is left
// alone. Returns the ids turned face down. Caller must hold mu.
func (c *Controller) revertPending(tableID model.TableID, table *model.Table, intent match.RevertIntent) []int {
	prev, ok := c.reverts[tableID]
	if !ok {
		return nil
	}

	ids := make([]int, 0, 2)
	for _, id := range prev.intent.CardIDs {
		if id != intent.CardIDs[0] && id != intent.CardIDs[1] {
			ids = append(ids, id)
		}
	}
	round, reverted := match.RevertCards(*table.Round, prev.intent.RoundID, ids)
	table.Round = &round
	return reverted
}

// scheduleRevert replaces the table's pending revert with intent.
// Caller must hold mu.
func (c *Controller) scheduleRevert(tableID model.TableID, intent match.RevertIntent) {
	if prev, ok := c.reverts[tableID]; ok {
		prev.timer.Stop()
	}

	pending := &pendingRevert{intent: intent}
	pending.timer = c.clock.AfterFunc(c.cfg.RevertDelay, func() {
		c.applyRevert(tableID, pending)
	})
	c.reverts[tableID] = pending
}

// applyRevert runs when a revert timer fires
func (c *Controller) applyRevert(tableID model.TableID, pending *pendingRevert) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.reverts[tableID] != pending {
		c.logger.Debug("stale revert timer discarded", slog.String("table_id", string(tableID)))
		return
	}
	delete(c.reverts, tableID)

	ctx := context.Background()
	table, err := c.storage.GetTable(ctx, tableID)
	if err != nil {
		c.logger.Warn("revert skipped, table unavailable",
			slog.String("table_id", string(tableID)),
			slog.Any("error", err),
		)
		return
	}
	if table.Round == nil || table.Round.ID != pending.intent.RoundID {
		c.logger.Debug("stale revert timer discarded",
			slog.String("table_id", string(tableID)),
			slog.String("round_id", string(pending.intent.RoundID)),
		)
		return
	}

	round, reverted := match.Revert(*table.Round, pending.intent)
	if len(reverted) == 0 {
		return
	}
	table.Round = &round
	table.UpdatedAt = c.clock.Now()

	if err := c.save(ctx, table); err != nil {
		c.logger.Error("failed to save reverted cards",
			slog.String("table_id", string(tableID)),
			slog.Any("error", err),
		)
		return
	}

	c.publish(ctx, table, model.EventCardsReverted, model.CardsRevertedPayload{CardIDs: reverted})
}

// scheduleBannerDismiss clears the banner once it expires. Caller must hold mu.
func (c *Controller) scheduleBannerDismiss(tableID model.TableID) {
	if prev, ok := c.banners[tableID]; ok {
		prev.timer.Stop()
	}

	pending := &pendingBanner{}
	pending.timer = c.clock.AfterFunc(c.cfg.BannerDuration, func() {
		c.dismissBanner(tableID, pending)
	})
	c.banners[tableID] = pending
}

// dismissBanner runs when a banner timer fires
func (c *Controller) dismissBanner(tableID model.TableID, pending *pendingBanner) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.banners[tableID] != pending {
		return
	}
	delete(c.banners, tableID)

	ctx := context.Background()
	table, err := c.storage.GetTable(ctx, tableID)
	if err != nil || table.Banner == nil {
		return
	}

	table.Banner = nil
	table.UpdatedAt = c.clock.Now()
	if err := c.save(ctx, table); err != nil {
		c.logger.Error("failed to dismiss banner",
			slog.String("table_id", string(tableID)),
			slog.Any("error", err),
		)
		return
	}

	c.publish(ctx, table, model.EventBannerDismissed, nil)
}

// cancelTimers stops all pending timers for a table. Caller must hold mu.
func (c *Controller) cancelTimers(tableID model.TableID) {
	if prev, ok := c.reverts[tableID]; ok {
		prev.timer.Stop()
		delete(c.reverts, tableID)
	}
	if prev, ok := c.banners[tableID]; ok {
		prev.timer.Stop()
		delete(c.banners, tableID)
	}
}

func (c *Controller) save(ctx context.Context, table *model.Table) error {
	if err := c.storage.SaveTable(ctx, table); err != nil {
		c.logger.Error("failed to save table",
			slog.String("table_id", string(table.ID)),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("save table: %w", err)
	}
	return nil
}

func (c *Controller) publish(ctx context.Context, table *model.Table, eventType model.EventType, payload any) {
	event := model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		TableID:   table.ID,
		Payload:   payload,
	}
	if table.Round != nil {
		event.RoundID = table.Round.ID
	}
	c.notifier.Publish(ctx, event)
}

// congratulations formats the completion banner text
func congratulations(score model.ScoreRecord) string {
	return fmt.Sprintf("Congratulations, %s! You completed the game in %d moves!", score.PlayerName, score.MoveCount)
}

// Interface for dependency injection
type ControllerInterface interface {
	Catalog() model.Catalog
	GetTable(ctx context.Context, tableID model.TableID) (*model.Table, error)
	Ranking(ctx context.Context, tableID model.TableID) ([]model.ScoreRecord, error)
	SubmitName(ctx context.Context, tableID model.TableID, name string) (*model.Table, error)
	Flip(ctx context.Context, tableID model.TableID, cardID int) (*FlipResult, error)
	Reset(ctx context.Context, tableID model.TableID) (*model.Table, error)
	NewGame(ctx context.Context, tableID model.TableID) (*model.Table, error)
	SetRankingVisible(ctx context.Context, tableID model.TableID, visible bool) (*model.Table, error)
}

var _ ControllerInterface = (*Controller)(nil)
