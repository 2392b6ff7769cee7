// Package static holds the stylesheet served under /static/.
package static

import "embed"

// FS contains the bundled static files
//
//go:embed style.css
var FS embed.FS
