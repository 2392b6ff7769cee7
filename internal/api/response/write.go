package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mcoot/memorygame-go/internal/api/apierr"
)

// JSON writes data with the given status. Table state changes with every
// flip and timer, so responses are never cacheable. The body is encoded
// before the header is sent so an encoding failure still yields a clean 500.
func JSON(w http.ResponseWriter, status int, data any) {
	var body bytes.Buffer
	if data != nil {
		if err := json.NewEncoder(&body).Encode(data); err != nil {
			apierr.WriteError(w, fmt.Errorf("encode response: %w", err))
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(body.Bytes())
}
