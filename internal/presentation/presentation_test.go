package presentation

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-dinner-planner/internal/types"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want PlanResponse
	}{
		{name: "BareArray", raw: `[{"mealName":"Tacos"}]`, want: MealList{{MealName: "Tacos"}}},
		{name: "Envelope", raw: `{"meals":[{"name":"Soup"}]}`, want: MealEnvelope{Meals: []types.Meal{{Name: "Soup"}}}},
		{name: "Failure", raw: `{"success":false,"message":"x"}`, want: Failure{Message: "x"}},
		{name: "SuccessTrueWithoutMeals", raw: `{"success":true}`, want: Unrecognized{}},
		{name: "MealsNotArray", raw: `{"meals":"soon"}`, want: Unrecognized{}},
		{name: "EmptyObject", raw: `{}`, want: Unrecognized{}},
		{name: "NotJSON", raw: `<html>`, want: Unrecognized{}},
		{name: "Empty", raw: ``, want: Unrecognized{}},
		{name: "Scalar", raw: `42`, want: Unrecognized{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decode([]byte(tc.raw)))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Run("BareArray", func(t *testing.T) {
		meals, err := Normalize([]byte(`[{"mealName":"Tacos"}]`))
		require.NoError(t, err)
		require.Len(t, meals, 1)
		assert.Equal(t, "Tacos", meals[0].DisplayName())
	})

	t.Run("LegacyName", func(t *testing.T) {
		meals, err := Normalize([]byte(`{"meals":[{"name":"Soup"}]}`))
		require.NoError(t, err)
		require.Len(t, meals, 1)
		assert.Equal(t, "Soup", meals[0].DisplayName())
	})

	t.Run("Failure", func(t *testing.T) {
		meals, err := Normalize([]byte(`{"success":false,"message":"x"}`))
		require.Error(t, err)
		assert.Empty(t, meals)
		var fe *FailureError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "x", fe.Message)
	})

	t.Run("FailureWithoutMessage", func(t *testing.T) {
		_, err := Normalize([]byte(`{"success":false}`))
		require.Error(t, err)
		assert.Equal(t, FailureFallbackMessage, err.Error())
	})

	t.Run("Unrecognized", func(t *testing.T) {
		meals, err := Normalize([]byte(`{}`))
		require.NoError(t, err)
		assert.NotNil(t, meals)
		assert.Empty(t, meals)
	})

	t.Run("LenientEntries", func(t *testing.T) {
		meals, err := Normalize([]byte(`[
			"not a meal",
			null,
			{"mealName":"Curry","cookTime":45,"tags":["spicy",3,"vegan"]},
			7
		]`))
		require.NoError(t, err)
		require.Len(t, meals, 1)
		assert.Equal(t, "Curry", meals[0].MealName)
		assert.Empty(t, meals[0].CookTime)
		assert.Equal(t, []string{"spicy", "vegan"}, meals[0].Tags)
	})
}

func TestCards(t *testing.T) {
	cards := Cards([]types.Meal{
		{MealName: "Tacos", Name: "ignored", Reason: "Quick", Description: "Corn tortillas", MealLink: "https://recipes.example.test/tacos", CookTime: "20 min"},
		{Name: "Soup", Description: "Warm"},
		{Cuisine: "Thai", MealLink: "javascript:alert(1)"},
	})

	require.Len(t, cards, 3)

	assert.Equal(t, 1, cards[0].Index)
	assert.Equal(t, "Tacos", cards[0].Title)
	assert.Equal(t, "Quick", cards[0].Body)
	assert.Equal(t, "https://recipes.example.test/tacos", cards[0].Link)
	assert.Equal(t, "20 min", cards[0].CookTime)

	assert.Equal(t, "Soup", cards[1].Title)
	assert.Equal(t, "Warm", cards[1].Body)

	assert.Equal(t, UntitledMeal, cards[2].Title)
	assert.Empty(t, cards[2].Body)
	assert.Empty(t, cards[2].Link)
	assert.Equal(t, "Thai", cards[2].Cuisine)
}

func TestSuccessMessage(t *testing.T) {
	assert.Equal(t, "Successfully planned 1 delicious dinner!", SuccessMessage(1))
	assert.Equal(t, "Successfully planned 4 delicious dinners!", SuccessMessage(4))
}

func TestFeedback(t *testing.T) {
	t.Run("LikeThenDislike", func(t *testing.T) {
		f := NewFeedback(3, nil)

		require.NoError(t, f.Like(2))
		require.NoError(t, f.RequestDislike(2))
		require.NoError(t, f.ConfirmDislike(""))

		assert.Equal(t, Disliked, f.State(2))
		assert.Empty(t, f.LikedIndices())
		assert.Equal(t, []int{2}, f.DislikedIndices())
	})

	t.Run("DislikeThenLike", func(t *testing.T) {
		f := NewFeedback(3, nil)

		require.NoError(t, f.RequestDislike(0))
		require.NoError(t, f.ConfirmDislike("too spicy"))
		require.NoError(t, f.Like(0))

		assert.Equal(t, Liked, f.State(0))
		assert.Equal(t, []int{0}, f.LikedIndices())
		assert.Empty(t, f.DislikedIndices())
	})

	t.Run("CancelKeepsPriorState", func(t *testing.T) {
		f := NewFeedback(3, nil)

		require.NoError(t, f.Like(1))
		require.NoError(t, f.RequestDislike(1))
		_, pending := f.Pending()
		assert.True(t, pending)
		assert.Equal(t, Liked, f.State(1))

		f.CancelDislike()

		_, pending = f.Pending()
		assert.False(t, pending)
		assert.Equal(t, Liked, f.State(1))
		assert.ErrorIs(t, f.ConfirmDislike("late"), ErrNoPendingDislike)
		assert.Equal(t, Liked, f.State(1))
	})

	t.Run("OutOfRange", func(t *testing.T) {
		f := NewFeedback(2, nil)
		var ie *IndexError
		assert.ErrorAs(t, f.Like(2), &ie)
		assert.ErrorAs(t, f.RequestDislike(-1), &ie)
		assert.ErrorAs(t, f.Regenerate(5), &ie)
	})

	t.Run("ResetForgetsEverything", func(t *testing.T) {
		f := NewFeedback(3, nil)
		first := f.ResultSetID()
		require.NoError(t, f.Like(0))
		require.NoError(t, f.RequestDislike(1))

		f.Reset(1)

		assert.NotEqual(t, first, f.ResultSetID())
		assert.Equal(t, 1, f.Size())
		assert.Equal(t, Neutral, f.State(0))
		_, pending := f.Pending()
		assert.False(t, pending)
	})

	t.Run("RegenerateOnlyLogs", func(t *testing.T) {
		var buf bytes.Buffer
		f := NewFeedback(2, slog.New(slog.NewJSONHandler(&buf, nil)))

		require.NoError(t, f.Regenerate(1))

		assert.Equal(t, Neutral, f.State(1))
		assert.Contains(t, buf.String(), `"msg":"Meal regeneration requested"`)
		assert.Contains(t, buf.String(), f.ResultSetID().String())
	})
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "neutral", Neutral.String())
	assert.Equal(t, "liked", Liked.String())
	assert.Equal(t, "disliked", Disliked.String())
}
