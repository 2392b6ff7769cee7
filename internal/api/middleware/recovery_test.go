package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/memorygame-go/internal/api/apierr"
	"github.com/mcoot/memorygame-go/internal/testutil"
)

func TestRecoveryWritesInternalErrorWithRequestID(t *testing.T) {
	logger, logs := testutil.CaptureLogger()
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("deck exploded")
	})
	h := Logging(logger)(Recovery(logger)(panicking))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/table/flip", nil)
	req.Header.Set("X-Request-ID", "req-7")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))

	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, apierr.CodeInternalError, resp.Error.Code)
	assert.Equal(t, "req-7", resp.RequestID)

	entry := logs.Find("panic recovered")
	require.NotNil(t, entry)
	assert.Equal(t, "api", entry["component"])
	assert.Equal(t, "req-7", entry["request_id"])

	// The request line records the 500 rather than being lost to the panic
	request := logs.Find("http request")
	require.NotNil(t, request)
	assert.EqualValues(t, http.StatusInternalServerError, request["status"])
}
