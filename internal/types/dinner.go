package types

import "strings"

// MealTypeDinner is the only meal type the planner ever asks the webhook for.
const MealTypeDinner = "dinner"

// PlanRequest is the body accepted by POST /api/plan-dinners.
type PlanRequest struct {
	DinnerCount int     `json:"dinnerCount" validate:"min=1,max=7" example:"3"`      // Number of dinners to plan (1-7).
	Preferences *string `json:"preferences,omitempty" example:"vegetarian, no nuts"` // Free-text dietary preferences.
	Timestamp   *string `json:"timestamp,omitempty" example:"2025-06-01T18:00:00Z"`  // Client submission time.
}

// PreferencesOrEmpty returns the preferences text, or "" when none were sent.
func (r PlanRequest) PreferencesOrEmpty() string {
	if r.Preferences == nil {
		return ""
	}
	return *r.Preferences
}

// UpstreamPayload is the body the automation webhook expects.
type UpstreamPayload struct {
	NumberOfMeals   int      `json:"number_of_meals"`
	Personalization string   `json:"personalization"`
	MealTypes       []string `json:"mealTypes"`
}

// NewUpstreamPayload renames the planner fields to the webhook's vocabulary.
func NewUpstreamPayload(req PlanRequest) UpstreamPayload {
	return UpstreamPayload{
		NumberOfMeals:   req.DinnerCount,
		Personalization: req.PreferencesOrEmpty(),
		MealTypes:       []string{MealTypeDinner},
	}
}

// Meal is a single suggestion produced by the webhook. Name is the legacy
// spelling of MealName and is still sent by older workflows.
type Meal struct {
	MealName    string   `json:"mealName,omitempty" example:"Chicken Tikka Masala"`
	Name        string   `json:"name,omitempty"`
	MealLink    string   `json:"mealLink,omitempty" example:"https://recipes.example.com/tikka"`
	Cuisine     string   `json:"cuisine,omitempty" example:"Indian"`
	CookTime    string   `json:"cookTime,omitempty" example:"45 minutes"`
	Reason      string   `json:"reason,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// DisplayName prefers mealName and falls back to the legacy name.
func (m Meal) DisplayName() string {
	if name := strings.TrimSpace(m.MealName); name != "" {
		return name
	}
	return strings.TrimSpace(m.Name)
}

// Body is the card text: the reason when present, else the description.
func (m Meal) Body() string {
	if m.Reason != "" {
		return m.Reason
	}
	return m.Description
}

// PlanResponse documents the successful webhook shape. The relay passes the
// upstream body through untouched, so this type is only used for docs and clients.
type PlanResponse struct {
	Meals []Meal `json:"meals"`
}

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Success   bool             `json:"success" example:"false"`
	Message   string           `json:"message" example:"Invalid request data"`
	Errors    []FieldViolation `json:"errors,omitempty"`
	Debug     string           `json:"debug,omitempty"`
	RequestID string           `json:"request_id,omitempty"`
}

// WebhookProbeResult is returned by POST /api/test-webhook when the webhook answered.
type WebhookProbeResult struct {
	Success         bool   `json:"success"`
	Status          int    `json:"status" example:"200"`
	StatusText      string `json:"statusText" example:"OK"`
	URL             string `json:"url"`
	ResponsePreview string `json:"responsePreview"`
}

// WebhookProbeFailure is returned by POST /api/test-webhook when no answer was received.
type WebhookProbeFailure struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error"`
	Type    string `json:"type" example:"timeout"`
	URL     string `json:"url"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status            string `json:"status" example:"ok"`
	Timestamp         string `json:"timestamp"`
	Environment       string `json:"environment" example:"development"`
	WebhookConfigured bool   `json:"webhookConfigured"`
	DeploymentType    string `json:"deploymentType" example:"standalone"`
	ServerRunning     bool   `json:"serverRunning"`
}
