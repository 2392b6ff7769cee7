package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/memorygame-go/internal/api/response"
)

func newTestOutput(format string) (*Output, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Output{format: format, w: &buf}, &buf
}

func TestPrintTableWithoutSession(t *testing.T) {
	out, buf := newTestOutput("text")

	out.Print(response.Table{ID: "table-1"})

	assert.Contains(t, buf.String(), "Table: table-1")
	assert.Contains(t, buf.String(), "memgame start <name>")
}

func TestPrintTableGrid(t *testing.T) {
	out, buf := newTestOutput("text")

	cards := make([]response.Card, 6)
	for i := range cards {
		cards[i] = response.Card{ID: i}
	}
	cards[1] = response.Card{ID: 1, FaceUp: true, Symbol: "sun"}
	cards[4] = response.Card{ID: 4, FaceUp: true, Matched: true, Symbol: "tree"}

	out.Print(response.Table{
		ID:            "table-1",
		PlayerName:    "Alice",
		SessionActive: true,
		Banner:        &response.Banner{Message: "Well done"},
		Round:         &response.Round{Cards: cards, MoveCount: 3},
	})

	text := buf.String()
	assert.Contains(t, text, "Welcome, Alice!")
	assert.Contains(t, text, "🎉 Well done 🎉")
	assert.Contains(t, text, "Moves: 3")

	lines := strings.Split(strings.TrimSpace(text), "\n")
	var grid []string
	for _, line := range lines {
		if strings.Contains(line, "??") || strings.Contains(line, "sun") || strings.Contains(line, "*tree") {
			grid = append(grid, line)
		}
	}
	require.Len(t, grid, 2, "six cards make one full row of four and a row of two")
	assert.Contains(t, grid[0], "sun")
	assert.Contains(t, grid[1], "*tree")
}

func TestPrintFlipOutcome(t *testing.T) {
	out, buf := newTestOutput("text")

	out.Print(response.FlipResponse{Accepted: true, Outcome: "mismatch", Table: response.Table{ID: "t"}})
	assert.Contains(t, buf.String(), "Outcome: mismatch")

	buf.Reset()
	out.Print(response.FlipResponse{Accepted: false, Outcome: "none", Table: response.Table{ID: "t"}})
	assert.Contains(t, buf.String(), "Flip ignored")
	assert.NotContains(t, buf.String(), "Outcome")
}

func TestPrintRanking(t *testing.T) {
	out, buf := newTestOutput("text")

	out.Print(response.RankingResponse{})
	assert.Equal(t, "No completed games yet.\n", buf.String())

	buf.Reset()
	out.Print(response.RankingResponse{Entries: []response.RankingEntry{
		{Rank: 1, PlayerName: "Alice", MoveCount: 8},
		{Rank: 2, PlayerName: "Bob", MoveCount: 6},
	}})
	assert.Equal(t, "1. Alice: 8 moves\n2. Bob: 6 moves\n", buf.String())
}

func TestPrintJSON(t *testing.T) {
	out, buf := newTestOutput("json")

	out.Print(response.HealthResponse{Status: "ok"})

	assert.JSONEq(t, `{"status":"ok"}`, buf.String())
}

func TestReadEvents(t *testing.T) {
	stream := "retry: 3000\n\n" +
		"event: connected\ndata: {\"status\":\"connected\"}\n\n" +
		": keepalive\n\n" +
		"event: table-update\ndata: {\"type\":\"card_flipped\"}\n\n"

	type seen struct{ event, data string }
	var events []seen
	count, err := readEvents(strings.NewReader(stream), func(event, data string) {
		events = append(events, seen{event, data})
	})

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, []seen{
		{"connected", `{"status":"connected"}`},
		{"table-update", `{"type":"card_flipped"}`},
	}, events)
}

func TestPrintEventShowsType(t *testing.T) {
	var buf bytes.Buffer

	printEvent(&buf, "table-update", `{"type":"pair_matched","table_id":"t"}`, false)

	assert.True(t, strings.HasSuffix(buf.String(), "table-update: pair_matched\n"))
}
