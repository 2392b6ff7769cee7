package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mcoot/memorygame-go/internal/model"
	"github.com/mcoot/memorygame-go/internal/services/session"
)

type contextKey string

const (
	tableContextKey contextKey = "table"

	// TableCookieName holds the browser's table ID
	TableCookieName = "table"
)

// GetTableID retrieves the browser's table ID from the request context
func GetTableID(ctx context.Context) model.TableID {
	id, _ := ctx.Value(tableContextKey).(model.TableID)
	return id
}

// WithTableID returns a context carrying id. Used by tests that bypass the cookie.
func WithTableID(ctx context.Context, id model.TableID) context.Context {
	return context.WithValue(ctx, tableContextKey, id)
}

// Table returns middleware that binds each browser to a table through a
// cookie. Missing or expired tables are replaced with a fresh one.
func Table(sessions *session.Service, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id model.TableID
			if cookie, err := r.Cookie(TableCookieName); err == nil {
				id = model.TableID(cookie.Value)
			}

			table, created, err := sessions.EnsureTable(r.Context(), id)
			if err != nil {
				logger.Error("failed to load table",
					slog.String("table_id", string(id)),
					slog.Any("error", err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			if created {
				http.SetCookie(w, &http.Cookie{
					Name:     TableCookieName,
					Value:    string(table.ID),
					Path:     "/",
					MaxAge:   int(sessions.TTL().Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(WithTableID(r.Context(), table.ID)))
		})
	}
}
