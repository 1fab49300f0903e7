package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlanRequest(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		req, err := ParsePlanRequest([]byte(`{"dinnerCount":3,"preferences":"vegetarian","timestamp":"2025-06-01T18:00:00Z","extra":true}`))
		require.NoError(t, err)
		assert.Equal(t, 3, req.DinnerCount)
		require.NotNil(t, req.Preferences)
		assert.Equal(t, "vegetarian", *req.Preferences)
		require.NotNil(t, req.Timestamp)
		assert.Equal(t, "2025-06-01T18:00:00Z", *req.Timestamp)
	})

	t.Run("OptionalFieldsAbsent", func(t *testing.T) {
		req, err := ParsePlanRequest([]byte(`{"dinnerCount":1}`))
		require.NoError(t, err)
		assert.Nil(t, req.Preferences)
		assert.Nil(t, req.Timestamp)
		assert.Equal(t, "", req.PreferencesOrEmpty())
	})

	t.Run("Bounds", func(t *testing.T) {
		for _, n := range []string{"1", "7", "4.0"} {
			_, err := ParsePlanRequest([]byte(`{"dinnerCount":` + n + `}`))
			assert.NoError(t, err, n)
		}
	})

	cases := []struct {
		name  string
		body  string
		field string
		code  string
	}{
		{"Zero", `{"dinnerCount":0}`, "dinnerCount", CodeTooSmall},
		{"Negative", `{"dinnerCount":-2}`, "dinnerCount", CodeTooSmall},
		{"Eight", `{"dinnerCount":8}`, "dinnerCount", CodeTooBig},
		{"Huge", `{"dinnerCount":1e12}`, "dinnerCount", CodeTooBig},
		{"Fraction", `{"dinnerCount":2.5}`, "dinnerCount", CodeInvalidType},
		{"String", `{"dinnerCount":"3"}`, "dinnerCount", CodeInvalidType},
		{"Missing", `{"preferences":"x"}`, "dinnerCount", CodeRequired},
		{"Null", `{"dinnerCount":null}`, "dinnerCount", CodeRequired},
		{"PreferencesNotString", `{"dinnerCount":2,"preferences":42}`, "preferences", CodeInvalidType},
		{"TimestampNotString", `{"dinnerCount":2,"timestamp":{}}`, "timestamp", CodeInvalidType},
		{"PreferencesNull", `{"dinnerCount":3,"preferences":null}`, "preferences", CodeInvalidType},
		{"TimestampNull", `{"dinnerCount":3,"timestamp":null}`, "timestamp", CodeInvalidType},
		{"NotJSON", `dinnerCount=3`, "body", CodeInvalidJSON},
		{"Array", `[{"dinnerCount":3}]`, "body", CodeInvalidJSON},
		{"JSONNull", `null`, "body", CodeInvalidJSON},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParsePlanRequest([]byte(tc.body))
			require.Error(t, err)
			require.True(t, IsValidationError(err))

			ve := err.(*ValidationError)
			require.Len(t, ve.Violations, 1)
			assert.Equal(t, tc.field, ve.Violations[0].Field)
			assert.Equal(t, tc.code, ve.Violations[0].Code)
			assert.NotEmpty(t, ve.Violations[0].Message)
		})
	}

	t.Run("ReportsEveryViolation", func(t *testing.T) {
		_, err := ParsePlanRequest([]byte(`{"dinnerCount":9,"preferences":1,"timestamp":2}`))
		require.Error(t, err)
		ve := err.(*ValidationError)
		fields := make([]string, 0, len(ve.Violations))
		for _, v := range ve.Violations {
			fields = append(fields, v.Field)
		}
		assert.ElementsMatch(t, []string{"dinnerCount", "preferences", "timestamp"}, fields)
		assert.Contains(t, ve.Error(), "dinnerCount")
	})
}

func TestNewUpstreamPayload(t *testing.T) {
	prefs := "no mushrooms"
	payload := NewUpstreamPayload(PlanRequest{DinnerCount: 4, Preferences: &prefs})
	assert.Equal(t, UpstreamPayload{NumberOfMeals: 4, Personalization: "no mushrooms", MealTypes: []string{"dinner"}}, payload)

	payload = NewUpstreamPayload(PlanRequest{DinnerCount: 2})
	assert.Equal(t, "", payload.Personalization)
	assert.Equal(t, []string{"dinner"}, payload.MealTypes)
}

func TestMealDisplay(t *testing.T) {
	assert.Equal(t, "Tacos", Meal{MealName: "Tacos", Name: "Old"}.DisplayName())
	assert.Equal(t, "Soup", Meal{Name: "Soup"}.DisplayName())
	assert.Equal(t, "", Meal{}.DisplayName())

	assert.Equal(t, "because", Meal{Reason: "because", Description: "desc"}.Body())
	assert.Equal(t, "desc", Meal{Description: "desc"}.Body())
	assert.Equal(t, "", Meal{}.Body())
}
