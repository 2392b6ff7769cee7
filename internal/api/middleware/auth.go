package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcoot/memorygame-go/internal/api/apierr"
	"github.com/mcoot/memorygame-go/internal/model"
	"github.com/mcoot/memorygame-go/internal/services/session"
)

type contextKey string

const (
	tableContextKey contextKey = "table"
)

// TableAuth creates middleware that resolves the bearer token to a table.
// The token is the table ID returned by POST /tables.
func TableAuth(sessions *session.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			table, err := sessions.GetTable(r.Context(), model.TableID(token))
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), tableContextKey, table.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the table token from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// GetTableID returns the authenticated table from the request context
func GetTableID(ctx context.Context) model.TableID {
	id, _ := ctx.Value(tableContextKey).(model.TableID)
	return id
}

// MustGetTableID returns the authenticated table or panics
func MustGetTableID(ctx context.Context) model.TableID {
	id := GetTableID(ctx)
	if id == "" {
		panic("no table in context - auth middleware not applied?")
	}
	return id
}
