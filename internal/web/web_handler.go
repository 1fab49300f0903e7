// Package web serves the browser form and renders planned meals as cards.
package web

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/FACorreiaa/go-dinner-planner/internal/api"
	"github.com/FACorreiaa/go-dinner-planner/internal/api/planner"
	"github.com/FACorreiaa/go-dinner-planner/internal/presentation"
	"github.com/FACorreiaa/go-dinner-planner/internal/types"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const maxFormBytes = 64 << 10

type pageData struct {
	Options     []int
	DinnerCount int
	Preferences string
	Timestamp   string
	Violations  []types.FieldViolation
	Error       string
	Notice      string
	ShowResults bool
	Cards       []presentation.Card
	ResultSet   string
}

type HandlerImpl struct {
	service    planner.Service
	production bool
	logger     *slog.Logger
	now        func() time.Time
}

func NewHandlerImpl(service planner.Service, production bool, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		service:    service,
		production: production,
		logger:     logger,
		now:        time.Now,
	}
}

// Form renders the empty planner form.
func (h *HandlerImpl) Form(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, h.newPage())
}

// Submit validates the form through the same schema as the JSON API, relays it
// and renders the normalized result.
func (h *HandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("WebHandler").Start(r.Context(), "Submit")
	defer span.End()

	l := h.logger.With(slog.String("handler", "Submit"))
	page := h.newPage()

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		l.WarnContext(ctx, "Failed to parse form", slog.Any("error", err))
		page.Error = "Invalid request data"
		h.render(w, r, http.StatusBadRequest, page)
		return
	}

	page.Preferences = r.PostFormValue("preferences")
	if n, err := strconv.Atoi(r.PostFormValue("dinnerCount")); err == nil {
		page.DinnerCount = n
	}

	req, err := types.ParsePlanRequest(formToJSON(r))
	if err != nil {
		var ve *types.ValidationError
		if errors.As(err, &ve) {
			page.Violations = ve.Violations
		}
		l.InfoContext(ctx, "Rejected invalid form", slog.Any("error", err))
		page.Error = "Invalid request data"
		h.render(w, r.WithContext(ctx), http.StatusBadRequest, page)
		return
	}

	raw, err := h.service.PlanDinners(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Relay failed", slog.Any("error", err))
		page.Error = h.relayMessage(err)
		h.render(w, r.WithContext(ctx), http.StatusInternalServerError, page)
		return
	}

	meals, err := presentation.Normalize(raw)
	if err != nil {
		l.WarnContext(ctx, "Webhook reported failure", slog.Any("error", err))
		page.Error = err.Error()
		h.render(w, r.WithContext(ctx), http.StatusOK, page)
		return
	}

	page.ShowResults = true
	page.Cards = presentation.Cards(meals)
	// Like/dislike marks live in the browser; the id only ties them to this render.
	page.ResultSet = presentation.NewFeedback(len(page.Cards), l).ResultSetID().String()
	page.Notice = presentation.SuccessMessage(req.DinnerCount)
	l.InfoContext(ctx, "Rendered meal plan", slog.Int("meals", len(meals)), slog.String("result_set", page.ResultSet))
	h.render(w, r.WithContext(ctx), http.StatusOK, page)
}

func (h *HandlerImpl) newPage() pageData {
	return pageData{
		Options:   []int{1, 2, 3, 4, 5, 6, 7},
		Timestamp: h.now().UTC().Format(time.RFC3339),
	}
}

func (h *HandlerImpl) relayMessage(err error) string {
	re, ok := planner.AsRelayError(err)
	if !ok {
		return presentation.TransportFailureMessage
	}
	if h.production && re.Kind == planner.KindUpstreamNetwork {
		return presentation.TransportFailureMessage
	}
	return re.Message
}

func (h *HandlerImpl) render(w http.ResponseWriter, r *http.Request, status int, page pageData) {
	var buf strings.Builder
	if err := pageTemplate.ExecuteTemplate(&buf, "index", page); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render page", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}

// formToJSON maps form fields onto the JSON request shape. dinnerCount is sent
// as a number when it parses as one so the schema sees the same types a JSON
// client would send.
func formToJSON(r *http.Request) []byte {
	body := map[string]any{}
	if v := strings.TrimSpace(r.PostFormValue("dinnerCount")); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			body["dinnerCount"] = n
		} else {
			body["dinnerCount"] = v
		}
	}
	if _, ok := r.PostForm["preferences"]; ok {
		body["preferences"] = r.PostFormValue("preferences")
	}
	if v := r.PostFormValue("timestamp"); v != "" {
		body["timestamp"] = v
	}
	data, _ := json.Marshal(body)
	return data
}
