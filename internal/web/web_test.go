package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/memorygame-go/internal/factory"
	"github.com/mcoot/memorygame-go/internal/testutil"
	"github.com/mcoot/memorygame-go/internal/web"
	"github.com/mcoot/memorygame-go/internal/web/middleware"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	cookies *cookieJar
}

// newWebTestServer creates a new test server with mocked clock and an
// unshuffled deck
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	app := factory.NewTestApp()
	t.Cleanup(app.Close)

	return &webTestServer{
		t:       t,
		handler: newRouter(app),
		app:     app,
		cookies: newCookieJar(),
	}
}

func newRouter(app *factory.TestApp) http.Handler {
	return web.NewRouter(web.RouterConfig{
		Logger:         testutil.NopLogger(),
		Clock:          app.Clock,
		SessionService: app.SessionService,
		GameController: app.GameController,
		HubManager:     app.HubManager,
		StaticDir:      "",
	})
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}

	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	ts.cookies.extract(rr)

	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil, false)
}

// post makes a POST request with form data (non-HTMX)
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form, false)
}

// postHTMX makes a POST request as an HTMX request
func (ts *webTestServer) postHTMX(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form, true)
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// tableID returns the table bound to this browser
func (j *cookieJar) tableID() string {
	if c, ok := j.cookies[middleware.TableCookieName]; ok {
		return c.Value
	}
	return ""
}

// Helper functions for common test operations

// startGame submits a name and returns the game page
func (ts *webTestServer) startGame(name string) *goquery.Document {
	ts.t.Helper()
	ts.get("/")
	rr := ts.post("/session", url.Values{"player_name": {name}})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after name entry")

	rr = ts.followRedirect(rr)
	require.Equal(ts.t, http.StatusOK, rr.Code)
	return parseHTML(rr.Body)
}

// flip flips a card through htmx and returns the board fragment
func (ts *webTestServer) flip(cardID int) *goquery.Document {
	ts.t.Helper()
	rr := ts.postHTMX("/flip/"+strconv.Itoa(cardID), nil)
	require.Equal(ts.t, http.StatusOK, rr.Code, "Expected board fragment after flip")
	return parseHTML(rr.Body)
}

// playPerfectRound flips every pair in order and returns the final board
func (ts *webTestServer) playPerfectRound() *goquery.Document {
	ts.t.Helper()
	offset := ts.app.PairOffset()
	var doc *goquery.Document
	for i := 0; i < offset; i++ {
		ts.flip(i)
		doc = ts.flip(i + offset)
	}
	return doc
}

// followRedirect follows a redirect and returns the response
// Works with both traditional Location headers and HTMX HX-Redirect headers
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("HX-Redirect")
	if location == "" {
		location = rr.Header().Get("Location")
	}
	require.NotEmpty(ts.t, location, "Expected Location or HX-Redirect header for redirect")
	return ts.get(location)
}

// cardSelector selects a card button by ID
func cardSelector(id int) string {
	return `button.card[data-card-id="` + strconv.Itoa(id) + `"]`
}

// Assertion helpers

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertNotContainsElement asserts that the document does not contain an element matching the selector
func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, doc.Find(selector).Length())
	}
}

// assertContainsText asserts that the element matching the selector contains the text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}

func TestHomeShowsNameEntry(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "h1", "Enter your name:")
	assertContainsElement(t, doc, `form[action="/session"] input[name="player_name"][required]`)
	assertContainsText(t, doc, "button.start", "Start Game")
	assertNotContainsElement(t, doc, "#board")
}

func TestHomeIssuesTableCookieOnce(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	require.Equal(t, http.StatusOK, rr.Code)
	tableID := ts.cookies.tableID()
	require.NotEmpty(t, tableID)

	rr = ts.get("/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Result().Cookies(), "Expected no new cookie for a known table")
	assert.Equal(t, tableID, ts.cookies.tableID())
}

func TestUnknownTableCookieIsReplaced(t *testing.T) {
	ts := newWebTestServer(t)
	ts.cookies.cookies[middleware.TableCookieName] = &http.Cookie{Name: middleware.TableCookieName, Value: "forged"}

	rr := ts.get("/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEqual(t, "forged", ts.cookies.tableID())
}

func TestStartGameShowsBoard(t *testing.T) {
	ts := newWebTestServer(t)

	doc := ts.startGame("Alice")

	assertContainsText(t, doc, "h1.welcome", "Welcome, Alice!")
	assert.Equal(t, 12, doc.Find("button.card").Length())
	assert.Equal(t, 12, doc.Find("button.card.face-down").Length())
	assertContainsText(t, doc, "#move-count", "0")
	assertContainsElement(t, doc, `section.game[sse-connect="/events"]`)
	assertContainsElement(t, doc, `#board[hx-trigger="sse:table-update"]`)
	assertContainsText(t, doc, "button.new-game", "New Game")
	assertContainsText(t, doc, "button.reset", "Reset")
	assertContainsText(t, doc, "button.show-ranking", "Show Ranking")
	assertNotContainsElement(t, doc, ".ranking-modal")
	assertNotContainsElement(t, doc, ".banner")
}

func TestStartGameTrimsName(t *testing.T) {
	ts := newWebTestServer(t)

	doc := ts.startGame("  Alice  ")

	assertContainsText(t, doc, "h1.welcome", "Welcome, Alice!")
}

func TestStaticFilesServed(t *testing.T) {
	app := factory.NewTestApp()
	t.Cleanup(app.Close)

	router := web.NewRouter(web.RouterConfig{
		Logger:         testutil.NopLogger(),
		Clock:          app.Clock,
		SessionService: app.SessionService,
		GameController: app.GameController,
		HubManager:     app.HubManager,
		StaticDir:      "static",
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), ".card")
}

func TestEmbeddedStaticFilesServed(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/static/style.css")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), ".card")
}
