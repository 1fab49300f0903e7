package logger

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/lmittmann/tint"
)

// New configures the application logger for the given mode. Development (or an
// unset mode) gets coloured tint output with source locations, everything else
// gets JSON.
func New(w io.Writer, mode string) *slog.Logger {
	if mode == "" || strings.EqualFold(mode, "development") {
		// Human-readable, coloured output for local runs
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}))
	}
	// Machine-readable output for log shippers
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// StructuredLogger logs the start and completion of every request with its
// request ID, status, size and latency.
func StructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Start timer
			start := time.Now()

			// Use Chi's WrapResponseWriter to capture status code
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			// RequestID middleware must run before this one
			reqID := middleware.GetReqID(r.Context())

			// Fields shared by the start and completion lines
			requestLogger := logger.With(
				slog.String("req_id", reqID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr), // Set by RealIP when behind a proxy
				slog.String("user_agent", r.UserAgent()),
				slog.String("proto", r.Proto),
			)

			// Start line at debug so production logs carry one line per request
			requestLogger.DebugContext(r.Context(), "Request started")

			next.ServeHTTP(ww, r)

			// Log completed request
			requestLogger.InfoContext(r.Context(), "Request completed",
				slog.Int("status", ww.Status()),              // Status from the wrapped writer
				slog.Int("bytes_written", ww.BytesWritten()), // Body bytes after compression
				slog.Duration("latency", time.Since(start)),
				slog.String("latency_human", time.Since(start).String()),
			)
		})
	}
}
