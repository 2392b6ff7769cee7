package game

import (
	"context"
	"sync"

	"github.com/mcoot/memorygame-go/internal/model"
)

// Notifier receives every event the controller produces
type Notifier interface {
	Publish(ctx context.Context, event model.Event)
}

// NopNotifier discards events
type NopNotifier struct{}

func (NopNotifier) Publish(ctx context.Context, event model.Event) {}

// RecordingNotifier keeps published events in memory, for tests
type RecordingNotifier struct {
	mu     sync.Mutex
	events []model.Event
}

// Publish records the event
func (n *RecordingNotifier) Publish(ctx context.Context, event model.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

// Events returns a copy of everything published so far
func (n *RecordingNotifier) Events() []model.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]model.Event, len(n.events))
	copy(out, n.events)
	return out
}

// Types returns the type of every published event in order
func (n *RecordingNotifier) Types() []model.EventType {
	events := n.Events()
	types := make([]model.EventType, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

// Reset forgets recorded events
func (n *RecordingNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = nil
}
