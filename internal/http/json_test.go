package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/aerolink/charter-ops/internal/errors"
)

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"id": "42"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"42"}`, rec.Body.String())
}

func TestWriteError_BodyShape(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: "no_token",
		Err:     errors.New("authorization token is required"),
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, "no_token", body["error"])
	assert.Equal(t, "authorization token is required", body["details"])
}

func TestWriteError_AppErrorDetailsOmitCause(t *testing.T) {
	rec := httptest.NewRecorder()
	err := apperrors.Wrap(errors.New("pq: secret internals"), apperrors.ErrCodeInternal, "query users")
	WriteError(rec, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal", Err: err})

	body := decodeErrorBody(t, rec)
	assert.Equal(t, "query users", body["details"])
	assert.NotContains(t, rec.Body.String(), "secret internals")
}

func TestWriteAppError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "validation", err: apperrors.Validation("bad input"), wantStatus: 400, wantCode: "validation"},
		{name: "unauthorized", err: apperrors.Unauthorized("nope"), wantStatus: 401, wantCode: "unauthorized"},
		{name: "forbidden", err: apperrors.Forbidden("no role"), wantStatus: 403, wantCode: "forbidden"},
		{name: "not found", err: apperrors.NotFound("gone"), wantStatus: 404, wantCode: "not_found"},
		{name: "conflict", err: apperrors.Conflict("dup"), wantStatus: 409, wantCode: "conflict"},
		{name: "timeout", err: &apperrors.AppError{Code: apperrors.ErrCodeTimeout, Message: "deadline"}, wantStatus: 503, wantCode: "timeout"},
		{name: "canceled", err: &apperrors.AppError{Code: apperrors.ErrCodeCanceled, Message: "canceled"}, wantStatus: 503, wantCode: "canceled"},
		{name: "internal", err: apperrors.Internal("boom"), wantStatus: 500, wantCode: "internal"},
		{name: "plain error treated as internal", err: errors.New("boom"), wantStatus: 500, wantCode: "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteAppError(rec, tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeErrorBody(t, rec)["error"])
		})
	}
}

func TestDecodeJSON_Invalid(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	var dst struct{}
	ok := DecodeJSON(rec, req, &dst)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_json", decodeErrorBody(t, rec)["error"])
}
