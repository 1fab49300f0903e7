package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-dinner-planner/internal/types"
)

func TestPlanDinners(t *testing.T) {
	t.Run("PostsExactBody", func(t *testing.T) {
		var (
			gotBody   string
			gotPath   string
			gotMethod string
			gotType   string
		)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b, _ := io.ReadAll(r.Body)
			gotBody, gotPath, gotMethod = string(b), r.URL.Path, r.Method
			gotType = r.Header.Get("Content-Type")
			_, _ = w.Write([]byte(`{"meals":[{"mealName":"Tacos"}]}`))
		}))
		defer srv.Close()

		prefs := "no nuts"
		raw, err := New(srv.URL+"/", nil).PlanDinners(context.Background(), types.PlanRequest{DinnerCount: 2, Preferences: &prefs})
		require.NoError(t, err)

		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "/api/plan-dinners", gotPath)
		assert.Equal(t, "application/json", gotType)
		assert.JSONEq(t, `{"dinnerCount":2,"preferences":"no nuts"}`, gotBody)
		assert.JSONEq(t, `{"meals":[{"mealName":"Tacos"}]}`, string(raw))
	})

	t.Run("ErrorStatus", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success":false,"message":"Webhook request failed with status 503"}`))
		}))
		defer srv.Close()

		_, err := New(srv.URL, nil).PlanDinners(context.Background(), types.PlanRequest{DinnerCount: 2})
		require.Error(t, err)
		assert.True(t, IsAPIError(err))

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.Equal(t, "Webhook request failed with status 503", apiErr.Body.Message)
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("Unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, err := New(url, nil).PlanDinners(context.Background(), types.PlanRequest{DinnerCount: 1})
		require.Error(t, err)
		assert.False(t, IsAPIError(err))
	})
}
