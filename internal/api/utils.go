package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/FACorreiaa/go-dinner-planner/internal/types"
)

// MaxBodyBytes caps every JSON request body read by the API.
const MaxBodyBytes = 1_048_576

// ErrorResponse writes the standard failure body including the request ID.
func ErrorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	WriteError(w, r, status, types.ErrorResponse{Message: message})
}

// WriteError fills in the discriminant and request ID before writing body.
func WriteError(w http.ResponseWriter, r *http.Request, status int, body types.ErrorResponse) {
	body.Success = false // Clients branch on this field
	body.RequestID = middleware.GetReqID(r.Context())
	WriteJSONResponse(w, r, status, body)
}

// WriteJSONResponse encodes the data to JSON and writes the response header and body.
func WriteJSONResponse(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	// No body for 204, just write the header
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	// Marshal payload
	js, err := json.Marshal(data)
	if err != nil {
		// Log the internal error and send a generic one to the client
		reqID := middleware.GetReqID(r.Context())
		slog.ErrorContext(r.Context(), "Failed to marshal JSON response",
			slog.Any("error", err),
			slog.String("request_id", reqID),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	WriteRawJSON(w, r, status, js)
}

// WriteRawJSON writes an already-encoded JSON document verbatim.
func WriteRawJSON(w http.ResponseWriter, r *http.Request, status int, js []byte) {
	// Headers must be set before the status is written
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(js); err != nil {
		// Client already received the status code
		reqID := middleware.GetReqID(r.Context())
		slog.ErrorContext(r.Context(), "Failed to write response body",
			slog.Any("error", err),
			slog.String("request_id", reqID),
		)
	}
}

// ReadBody reads a request body up to MaxBodyBytes. An empty body is returned
// as-is so schema validation can report it.
func ReadBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	// MaxBytesReader also tells the server to close the connection on overflow
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		// Report the limit rather than the raw reader error
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			return nil, fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
		}
		return nil, fmt.Errorf("error reading body: %w", err)
	}
	return body, nil
}
