package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/memorygame-go/internal/middleware"
	"github.com/mcoot/memorygame-go/internal/model"
)

func TestWriteErrorMapsModelErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"table not found", model.ErrTableNotFound, http.StatusNotFound, CodeTableNotFound},
		{"blank name", model.ErrBlankName, http.StatusBadRequest, CodeBlankName},
		{"invalid card", model.ErrInvalidCard, http.StatusBadRequest, CodeInvalidCard},
		{"session active", model.ErrSessionActive, http.StatusConflict, CodeSessionActive},
		{"no session", model.ErrNoActiveSession, http.StatusConflict, CodeNoActiveSession},
		{"table conflict", fmt.Errorf("save table: %w", model.ErrTableConflict), http.StatusConflict, CodeTableConflict},
		{"wrapped", fmt.Errorf("load: %w", model.ErrTableNotFound), http.StatusNotFound, CodeTableNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternalError},
		{"invalid request", NewInvalidRequestError("bad body"), http.StatusBadRequest, CodeInvalidRequest},
		{"unauthorized", NewUnauthorizedError(), http.StatusUnauthorized, CodeUnauthorized},
		{"unavailable", NewUnavailableError("storage down"), http.StatusServiceUnavailable, CodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tt.err)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.status, StatusCode(tt.err))
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestWriteErrorQuotesRequestID(t *testing.T) {
	rr := httptest.NewRecorder()
	rr.Header().Set(middleware.RequestIDHeader, "req-42")

	WriteError(rr, model.ErrTableConflict)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "req-42", resp.RequestID)
	assert.Equal(t, CodeTableConflict, resp.Error.Code)
}

func TestWriteErrorOmitsMissingRequestID(t *testing.T) {
	rr := httptest.NewRecorder()

	WriteError(rr, model.ErrTableNotFound)

	assert.NotContains(t, rr.Body.String(), "request_id")
}
