package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldViolation describes one rejected field of a request.
type FieldViolation struct {
	Field   string `json:"field" example:"dinnerCount"`
	Code    string `json:"code" example:"too_big"`
	Message string `json:"message" example:"Number must be less than or equal to 7"`
}

// ValidationError is returned when a request does not match the plan schema.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "invalid plan request: " + strings.Join(parts, "; ")
}

// IsValidationError reports whether err carries field violations.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

const (
	CodeInvalidJSON = "invalid_json"
	CodeRequired    = "required"
	CodeInvalidType = "invalid_type"
	CodeTooSmall    = "too_small"
	CodeTooBig      = "too_big"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the value constraints of an already-typed request.
func (r PlanRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating plan request: %w", err)
	}
	ve := &ValidationError{}
	for _, fe := range fieldErrs {
		ve.Violations = append(ve.Violations, violationFromFieldError(fe))
	}
	return ve
}

func violationFromFieldError(fe validator.FieldError) FieldViolation {
	switch fe.Tag() {
	case "min":
		return FieldViolation{Field: fe.Field(), Code: CodeTooSmall,
			Message: fmt.Sprintf("Number must be greater than or equal to %s", fe.Param())}
	case "max":
		return FieldViolation{Field: fe.Field(), Code: CodeTooBig,
			Message: fmt.Sprintf("Number must be less than or equal to %s", fe.Param())}
	default:
		return FieldViolation{Field: fe.Field(), Code: fe.Tag(), Message: fe.Error()}
	}
}

// ParsePlanRequest decodes an arbitrary JSON body and accepts it only if it is
// a valid plan request. Unknown keys are ignored. Every violation found is
// reported, not just the first.
func ParsePlanRequest(body []byte) (PlanRequest, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return PlanRequest{}, &ValidationError{Violations: []FieldViolation{{
			Field: "body", Code: CodeInvalidJSON, Message: "Request body must be a JSON object",
		}}}
	}

	var (
		req        PlanRequest
		violations []FieldViolation
		countOK    bool
	)

	count, ok := raw["dinnerCount"]
	switch {
	case !ok || isJSONNull(count):
		violations = append(violations, FieldViolation{Field: "dinnerCount", Code: CodeRequired, Message: "Required"})
	default:
		var n float64
		if err := json.Unmarshal(count, &n); err != nil {
			violations = append(violations, FieldViolation{Field: "dinnerCount", Code: CodeInvalidType, Message: "Expected number"})
		} else if n != math.Trunc(n) {
			violations = append(violations, FieldViolation{Field: "dinnerCount", Code: CodeInvalidType, Message: "Expected integer, received float"})
		} else {
			// Clamp before converting so huge values still fail the range check.
			req.DinnerCount = int(math.Max(math.Min(n, math.MaxInt32), math.MinInt32))
			countOK = true
		}
	}

	req.Preferences, violations = optionalString(raw, "preferences", violations)
	req.Timestamp, violations = optionalString(raw, "timestamp", violations)

	if countOK {
		if err := req.Validate(); err != nil {
			var ve *ValidationError
			if !errors.As(err, &ve) {
				return PlanRequest{}, err
			}
			violations = append(violations, ve.Violations...)
		}
	}

	if len(violations) > 0 {
		return PlanRequest{}, &ValidationError{Violations: violations}
	}
	return req, nil
}

func optionalString(raw map[string]json.RawMessage, field string, violations []FieldViolation) (*string, []FieldViolation) {
	value, ok := raw[field]
	if !ok {
		return nil, violations
	}
	// Present means string; an explicit null is a type error, not an omission.
	if isJSONNull(value) {
		return nil, append(violations, FieldViolation{Field: field, Code: CodeInvalidType, Message: "Expected string, received null"})
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return nil, append(violations, FieldViolation{Field: field, Code: CodeInvalidType, Message: "Expected string"})
	}
	return &s, violations
}

func isJSONNull(value json.RawMessage) bool {
	return strings.TrimSpace(string(value)) == "null"
}
