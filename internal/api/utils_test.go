package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponseIncludesRequestID(t *testing.T) {
	var rec *httptest.ResponseRecorder
	h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ErrorResponse(w, r, http.StatusInternalServerError, "boom")
	}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "boom", body["message"])
	assert.NotEmpty(t, body["request_id"])
	assert.NotContains(t, body, "debug")
}

func TestWriteRawJSONIsVerbatim(t *testing.T) {
	rec := httptest.NewRecorder()
	raw := []byte(`[{"mealName":"Tacos","extra":{"kept":true}}]`)
	WriteRawJSON(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, raw)
	assert.Equal(t, string(raw), rec.Body.String())
}

func TestReadBodyLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", MaxBodyBytes+1)))
	_, err := ReadBody(rec, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be larger")

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"dinnerCount":2}`))
	body, err := ReadBody(rec, req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dinnerCount":2}`, string(body))
}
