package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcoot/memorygame-go/internal/api/response"
)

// gridColumns matches the board layout of the web page
const gridColumns = 4

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to stdout
func NewOutput(format string) *Output {
	return &Output{format: format, w: os.Stdout}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		_, _ = fmt.Fprintln(os.Stderr, string(data))
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.CreateTableResponse:
		_, _ = fmt.Fprintf(o.w, "Table: %s\n", v.TableID)
	case response.Table:
		o.printTable(v)
	case response.FlipResponse:
		o.printFlip(v)
	case response.RankingResponse:
		o.printRanking(v)
	case response.HealthResponse:
		_, _ = fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		o.printJSON(data)
	}
}

func (o *Output) printTable(t response.Table) {
	_, _ = fmt.Fprintf(o.w, "Table: %s\n", t.ID)
	if !t.SessionActive {
		_, _ = fmt.Fprintln(o.w, "No player yet. Start with: memgame start <name>")
		return
	}

	_, _ = fmt.Fprintf(o.w, "Welcome, %s!\n", t.PlayerName)
	if t.Banner != nil {
		_, _ = fmt.Fprintf(o.w, "🎉 %s 🎉\n", t.Banner.Message)
	}
	if t.Round != nil {
		o.printRound(*t.Round)
	}
}

func (o *Output) printRound(r response.Round) {
	for i, card := range r.Cards {
		cell := "??"
		switch {
		case card.Matched:
			cell = "*" + card.Symbol
		case card.FaceUp:
			cell = card.Symbol
		}
		_, _ = fmt.Fprintf(o.w, "%3d %-16s", card.ID, cell)
		if (i+1)%gridColumns == 0 || i == len(r.Cards)-1 {
			_, _ = fmt.Fprintln(o.w)
		}
	}
	_, _ = fmt.Fprintf(o.w, "Moves: %d\n", r.MoveCount)
	if r.Completed {
		_, _ = fmt.Fprintln(o.w, "Round complete")
	}
}

func (o *Output) printFlip(f response.FlipResponse) {
	if !f.Accepted {
		_, _ = fmt.Fprintln(o.w, "Flip ignored")
	} else if f.Outcome != "none" {
		_, _ = fmt.Fprintf(o.w, "Outcome: %s\n", f.Outcome)
	}
	o.printTable(f.Table)
}

func (o *Output) printRanking(r response.RankingResponse) {
	if len(r.Entries) == 0 {
		_, _ = fmt.Fprintln(o.w, "No completed games yet.")
		return
	}
	lines := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		lines[i] = fmt.Sprintf("%d. %s: %d moves", e.Rank, e.PlayerName, e.MoveCount)
	}
	_, _ = fmt.Fprintln(o.w, strings.Join(lines, "\n"))
}
