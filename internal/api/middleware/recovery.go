package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/memorygame-go/internal/api/apierr"
	"github.com/mcoot/memorygame-go/internal/middleware"
)

// Recovery answers a panicking API request with a JSON INTERNAL_ERROR.
// Clients should re-read the table before retrying since the action may
// already have been saved.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger.With(slog.String("component", "api")), writePanicResponse)
}

func writePanicResponse(w http.ResponseWriter, _ *http.Request, _ any) {
	w.Header().Set("Cache-Control", "no-store")
	apierr.WriteError(w, apierr.NewInternalError())
}
