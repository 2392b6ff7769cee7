package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/memorygame-go/internal/middleware"
)

// Logging logs browser requests. Static assets are served without a log
// line since every page load fetches them.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	logged := middleware.Logging(logger.With(slog.String("component", "web")))
	return func(next http.Handler) http.Handler {
		withLog := logged(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/static/") {
				next.ServeHTTP(w, r)
				return
			}
			withLog.ServeHTTP(w, r)
		})
	}
}
