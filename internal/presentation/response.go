// Package presentation turns relay responses into something a person can read:
// it normalizes the several shapes the webhook may answer with, builds meal
// cards and tracks like/dislike feedback for the current result set.
package presentation

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/FACorreiaa/go-dinner-planner/internal/types"
)

const (
	// FailureFallbackMessage is shown when a failure body carries no message.
	FailureFallbackMessage = "Failed to plan your dinners. Please try again."
	// TransportFailureMessage is shown when the relay itself could not be reached
	// or answered with an error status.
	TransportFailureMessage = "Sorry, we encountered an error planning your dinners. Please try again."
)

// PlanResponse is one of MealList, MealEnvelope, Failure or Unrecognized.
type PlanResponse interface {
	planResponse()
}

// MealList is a bare JSON array of meals.
type MealList []types.Meal

// MealEnvelope is an object whose "meals" field is an array.
type MealEnvelope struct {
	Meals []types.Meal
}

// Failure is an object with "success": false.
type Failure struct {
	Message string
}

// Unrecognized is anything else, including bodies that are not JSON.
type Unrecognized struct{}

func (MealList) planResponse()     {}
func (MealEnvelope) planResponse() {}
func (Failure) planResponse()      {}
func (Unrecognized) planResponse() {}

// FailureError is returned by Normalize for a Failure response. The caller
// keeps whatever it was displaying before.
type FailureError struct {
	Message string
}

func (e *FailureError) Error() string {
	return e.Message
}

// Decode classifies a relay success body. It never fails: shapes it does not
// know are reported as Unrecognized.
func Decode(raw []byte) PlanResponse {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Unrecognized{}
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Unrecognized{}
		}
		return MealList(decodeMeals(items))
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return Unrecognized{}
		}
		if rawMeals, ok := obj["meals"]; ok {
			var items []json.RawMessage
			if err := json.Unmarshal(rawMeals, &items); err == nil && items != nil {
				return MealEnvelope{Meals: decodeMeals(items)}
			}
		}
		if rawSuccess, ok := obj["success"]; ok {
			var success bool
			if err := json.Unmarshal(rawSuccess, &success); err == nil && !success {
				return Failure{Message: lenientString(obj["message"])}
			}
		}
	}
	return Unrecognized{}
}

// Normalize reduces a relay success body to the meals to display. A Failure
// response yields a *FailureError and no meals; the caller must not replace
// its current list in that case. Unrecognized shapes yield an empty list.
func Normalize(raw []byte) ([]types.Meal, error) {
	switch resp := Decode(raw).(type) {
	case MealList:
		return []types.Meal(resp), nil
	case MealEnvelope:
		return resp.Meals, nil
	case Failure:
		msg := resp.Message
		if msg == "" {
			msg = FailureFallbackMessage
		}
		return nil, &FailureError{Message: msg}
	default:
		return []types.Meal{}, nil
	}
}

// SuccessMessage is the notice shown after count dinners were planned.
func SuccessMessage(count int) string {
	plural := "s"
	if count == 1 {
		plural = ""
	}
	return fmt.Sprintf("Successfully planned %d delicious dinner%s!", count, plural)
}

// decodeMeals skips entries that are not objects.
func decodeMeals(items []json.RawMessage) []types.Meal {
	meals := make([]types.Meal, 0, len(items))
	for _, item := range items {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil || obj == nil {
			continue
		}
		meals = append(meals, decodeMeal(obj))
	}
	return meals
}

// decodeMeal ignores fields of the wrong type rather than dropping the meal.
func decodeMeal(obj map[string]json.RawMessage) types.Meal {
	return types.Meal{
		MealName:    lenientString(obj["mealName"]),
		Name:        lenientString(obj["name"]),
		MealLink:    lenientString(obj["mealLink"]),
		Cuisine:     lenientString(obj["cuisine"]),
		CookTime:    lenientString(obj["cookTime"]),
		Reason:      lenientString(obj["reason"]),
		Description: lenientString(obj["description"]),
		Tags:        lenientStrings(obj["tags"]),
	}
}

func lenientString(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func lenientStrings(raw json.RawMessage) []string {
	if raw == nil {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	var out []string
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil && s != "" {
			out = append(out, s)
		}
	}
	return out
}
