package core_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekeeper/core"
	"github.com/dmitrymomot/gatekeeper/pkg/validator"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) core.JSONResponse {
	t.Helper()

	var body core.JSONResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteSuccess(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	core.WriteSuccess(rec, http.StatusCreated, map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	assert.Equal(t, "success", body.Status)
	assert.NotNil(t, body.Data)
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	t.Run("http error keeps code and key", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		core.WriteError(rec, core.ErrUnauthorized, false)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "fail", body.Status)
		require.NotNil(t, body.Error)
		assert.Equal(t, "unauthorized", body.Error.Code)
	})

	t.Run("validation errors become 400 with details", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.Required("email", ""),
			validator.Required("password", ""),
		)
		require.Error(t, err)

		rec := httptest.NewRecorder()
		core.WriteError(rec, err, false)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode(t, rec)
		require.NotNil(t, body.Error)
		assert.Equal(t, "validation_error", body.Error.Code)
		assert.Contains(t, body.Error.Details, "email")
		assert.Contains(t, body.Error.Details, "password")
	})

	t.Run("unknown errors are opaque in production", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		core.WriteError(rec, errors.New("pq: connection refused"), false)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "error", body.Status)
		require.NotNil(t, body.Error)
		assert.Empty(t, body.Error.Debug)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})

	t.Run("development mode echoes the underlying error", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		core.WriteError(rec, errors.New("pq: connection refused"), true)

		body := decode(t, rec)
		require.NotNil(t, body.Error)
		assert.Contains(t, body.Error.Debug, "connection refused")
	})
}
