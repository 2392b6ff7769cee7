package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/memorygame-go/internal/middleware"
	"github.com/mcoot/memorygame-go/internal/web/templates/layout"
	"github.com/mcoot/memorygame-go/internal/web/templates/pages"
)

// Recovery turns a panic into the game's error page. It must run inside
// Logging so the page can quote the request ID.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger.With(slog.String("component", "web")), renderPanicPage)
}

func renderPanicPage(w http.ResponseWriter, r *http.Request, _ any) {
	data := pages.ServerErrorData{
		PageData: layout.PageData{
			Title: "Something went wrong",
			Flash: &layout.FlashMessage{
				Type:    layout.FlashError,
				Message: "Your last action may not have been applied.",
			},
		},
		RequestID: middleware.GetRequestID(r.Context()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_ = pages.ServerError(data).Render(r.Context(), w)
}
