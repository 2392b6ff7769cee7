package layout

// FlashType selects how a flash notice is styled
type FlashType string

const (
	// FlashInfo is a neutral notice, also used for unrecognised levels
	FlashInfo FlashType = "info"
	// FlashError reports a rejected action, such as flipping a card that is not in play
	FlashError FlashType = "error"
)

// FlashMessage is a one-shot notice shown at the top of the next page
type FlashMessage struct {
	Type    FlashType
	Message string
}

// PageData holds the fields every page shares
type PageData struct {
	Title      string
	PlayerName string // empty on the name entry screen
	Flash      *FlashMessage
}

const siteTitle = "Memory Game"

// DocumentTitle is the text of the page's <title> element
func (d PageData) DocumentTitle() string {
	if d.Title == "" {
		return siteTitle
	}
	return d.Title + " - " + siteTitle
}
