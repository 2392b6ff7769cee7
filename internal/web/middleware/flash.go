package middleware

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/mcoot/memorygame-go/internal/web/templates/layout"
)

const (
	// FlashCookieName carries a notice across the redirect after a rejected action
	FlashCookieName = "table_notice"

	flashContextKey contextKey = "flash"

	// seconds; one redirect is all a notice has to survive
	flashMaxAge = 60
)

// GetFlash returns the notice carried into this request, or nil
func GetFlash(ctx context.Context) *layout.FlashMessage {
	flash, _ := ctx.Value(flashContextKey).(*layout.FlashMessage)
	return flash
}

// SetFlash queues a notice for the next page the browser loads. The
// message is base64 encoded so any text stays a valid cookie value.
func SetFlash(w http.ResponseWriter, flashType layout.FlashType, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    encodeFlash(flashType, message),
		Path:     "/",
		MaxAge:   flashMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Flash reads the queued notice into the request context and clears the cookie
func Flash() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var flash *layout.FlashMessage

			if cookie, err := r.Cookie(FlashCookieName); err == nil && cookie.Value != "" {
				flash = decodeFlash(cookie.Value)
				http.SetCookie(w, &http.Cookie{
					Name:     FlashCookieName,
					Path:     "/",
					MaxAge:   -1,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), flashContextKey, flash)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func encodeFlash(flashType layout.FlashType, message string) string {
	return string(flashType) + "." + base64.RawURLEncoding.EncodeToString([]byte(message))
}

// decodeFlash returns nil for anything SetFlash could not have written
func decodeFlash(value string) *layout.FlashMessage {
	kind, encoded, ok := strings.Cut(value, ".")
	if !ok {
		return nil
	}
	message, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil || len(message) == 0 {
		return nil
	}

	flashType := layout.FlashType(kind)
	if flashType != layout.FlashError {
		flashType = layout.FlashInfo
	}
	return &layout.FlashMessage{Type: flashType, Message: string(message)}
}
