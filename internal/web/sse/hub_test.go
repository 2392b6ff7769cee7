package sse

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/memorygame-go/internal/model"
	"github.com/mcoot/memorygame-go/internal/testutil"
)

func receive(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case msg := <-client.send:
		return string(msg)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("client did not receive message")
		return ""
	}
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, time.Second, 5*time.Millisecond)
}

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{"single line data", "table-update", "hello world", "event: table-update\ndata: hello world\n\n"},
		{"multi-line data", "table-update", "<div>\n  <p>a</p>\n</div>", "event: table-update\ndata: <div>\ndata:   <p>a</p>\ndata: </div>\n\n"},
		{"empty data", "ping", "", "event: ping\ndata: \n\n"},
		{"trailing newline", "x", "line1\n", "event: x\ndata: line1\n\n"},
		{"carriage returns", "test", "line1\r\nline2", "event: test\ndata: line1\ndata: line2\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(formatSSEMessage(tt.eventName, tt.data)))
		})
	}
}

func TestHubRegisterAndBroadcast(t *testing.T) {
	hub := NewHub("table-1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "c1")
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.BroadcastEvent("table-update", "data")

	assert.Equal(t, "event: table-update\ndata: data\n\n", receive(t, client))
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub("table-1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "c1")
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.Unregister(client)
	waitForClients(t, hub, 0)

	_, open := <-client.send
	assert.False(t, open)
}

func TestHubBroadcastToMultipleClients(t *testing.T) {
	hub := NewHub("table-1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	clients := []*Client{NewClient(hub, "a"), NewClient(hub, "b"), NewClient(hub, "c")}
	for _, c := range clients {
		hub.Register(c)
	}
	waitForClients(t, hub, 3)

	hub.BroadcastEvent("update", "x")

	for _, c := range clients {
		assert.Equal(t, "event: update\ndata: x\n\n", receive(t, c))
	}
}

func TestHubCloseIsIdempotent(t *testing.T) {
	hub := NewHub("table-1", testutil.NopLogger())
	go hub.Run()

	hub.Close()
	hub.Close()

	// Registering on a closed hub closes the client immediately
	client := NewClient(hub, "late")
	hub.Register(client)
	_, open := <-client.send
	assert.False(t, open)
}

func TestHubManagerGetOrCreateHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.CloseAll()

	hub1 := manager.GetOrCreateHub("table-1")
	require.NotNil(t, hub1)
	assert.Same(t, hub1, manager.GetOrCreateHub("table-1"))
	assert.NotSame(t, hub1, manager.GetOrCreateHub("table-2"))
	assert.Same(t, hub1, manager.GetHub("table-1"))
	assert.Nil(t, manager.GetHub("missing"))
}

func TestHubManagerRemoveHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	manager.GetOrCreateHub("table-1")
	manager.RemoveHub("table-1")
	assert.Nil(t, manager.GetHub("table-1"))

	// Removing a missing hub is a no-op
	manager.RemoveHub("missing")
}

func TestHubManagerCleanupEmptyHubs(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.CloseAll()

	manager.GetOrCreateHub("empty")
	active := manager.GetOrCreateHub("active")
	active.Register(NewClient(active, "c1"))
	waitForClients(t, active, 1)

	assert.Equal(t, 1, manager.CleanupEmptyHubs())
	assert.Nil(t, manager.GetHub("empty"))
	assert.NotNil(t, manager.GetHub("active"))
}

func TestBroadcasterPublish(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.CloseAll()
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	hub := manager.GetOrCreateHub("table-1")
	client := NewClient(hub, "c1")
	hub.Register(client)
	waitForClients(t, hub, 1)

	broadcaster.Publish(context.Background(), model.Event{
		Type:      model.EventPairMatched,
		TableID:   "table-1",
		RoundID:   "round-1",
		Timestamp: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Payload:   model.PairResolvedPayload{CardIDs: [2]int{0, 6}, MoveCount: 1},
	})

	msg := receive(t, client)
	require.True(t, strings.HasPrefix(msg, "event: table-update\ndata: "))

	raw := strings.TrimSuffix(strings.TrimPrefix(msg, "event: table-update\ndata: "), "\n\n")
	var data EventData
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	assert.Equal(t, "pair_matched", data.Type)
	assert.Equal(t, "table-1", data.TableID)
	assert.Equal(t, "round-1", data.RoundID)
}

func TestBroadcasterSkipsTablesWithoutHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	broadcaster.Publish(context.Background(), model.Event{Type: model.EventCardFlipped, TableID: "nobody"})

	assert.Nil(t, manager.GetHub("nobody"))
}
