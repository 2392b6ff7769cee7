package pages

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/memorygame-go/internal/web/templates/components"
	"github.com/mcoot/memorygame-go/internal/web/templates/layout"
)

func renderPage(t *testing.T, page templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, page.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestNameEntryPage(t *testing.T) {
	doc := renderPage(t, NameEntry(NameEntryData{PageData: layout.PageData{
		Title: "Welcome",
		Flash: &layout.FlashMessage{Type: layout.FlashError, Message: "Please enter your name"},
	}}))

	assert.Equal(t, "Welcome - Memory Game", doc.Find("title").Text())
	assert.Equal(t, "Please enter your name", doc.Find("main.container .flash.flash-error").Text())

	input := doc.Find(`form[action="/session"] input[name="player_name"]`)
	require.Equal(t, 1, input.Length())
	_, required := input.Attr("required")
	assert.True(t, required)
}

func TestGamePageConnectsEventStream(t *testing.T) {
	doc := renderPage(t, Game(GameData{
		Board: components.BoardView{PlayerName: "Alice"},
	}))

	assert.Equal(t, "Memory Game", doc.Find("title").Text())
	assert.Equal(t, 0, doc.Find(".flash").Length())
	section := doc.Find("section.game")
	assert.Equal(t, "/events", section.AttrOr("sse-connect", ""))
	assert.Equal(t, 1, section.Find("#board").Length())
}

func TestServerErrorPageWithoutRequestID(t *testing.T) {
	doc := renderPage(t, ServerError(ServerErrorData{}))

	assert.Equal(t, 1, doc.Find("section.server-error").Length())
	assert.Equal(t, 0, doc.Find(".reference").Length())
}
