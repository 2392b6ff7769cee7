package sse

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mcoot/memorygame-go/internal/model"
)

// EventTableUpdate is the SSE event name sent for every table change.
// Browsers re-fetch the board when they see it.
const EventTableUpdate = "table-update"

// EventData is the JSON body of a table-update event
type EventData struct {
	Type      string    `json:"type"`
	TableID   string    `json:"table_id"`
	RoundID   string    `json:"round_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// Broadcaster forwards controller events to the table's SSE hub
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Publish sends event to everyone watching its table. Tables without
// listeners are skipped.
func (b *Broadcaster) Publish(ctx context.Context, event model.Event) {
	hub := b.hubManager.GetHub(event.TableID)
	if hub == nil {
		return
	}

	data, err := EncodeEvent(event)
	if err != nil {
		b.logger.Error("sse failed to encode event",
			slog.String("table_id", string(event.TableID)),
			slog.String("type", string(event.Type)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(EventTableUpdate, data)
}

// EncodeEvent renders an event as single-line JSON
func EncodeEvent(event model.Event) (string, error) {
	data, err := json.Marshal(EventData{
		Type:      string(event.Type),
		TableID:   string(event.TableID),
		RoundID:   string(event.RoundID),
		Timestamp: event.Timestamp,
		Payload:   event.Payload,
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}
