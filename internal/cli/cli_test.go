package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-dinner-planner/config"
	"github.com/FACorreiaa/go-dinner-planner/internal/types"
)

func TestBuildPlanRequest(t *testing.T) {
	req, err := buildPlanRequest(planOptions{dinners: 4, preferences: "no fish"})
	require.NoError(t, err)
	assert.Equal(t, 4, req.DinnerCount)
	assert.Equal(t, "no fish", req.PreferencesOrEmpty())

	_, err = buildPlanRequest(planOptions{dinners: 9})
	require.Error(t, err)
	assert.True(t, types.IsValidationError(err))
}

func TestPlanCommandPlain(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`[{"mealName":"Shakshuka","cookTime":"25 min"},{"name":"Dal"}]`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"plan", "--dinners", "2", "--preferences", "vegetarian", "--plain", "--server", srv.URL})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, Execute())

	assert.JSONEq(t, `{"dinnerCount":2,"preferences":"vegetarian"}`, string(gotBody))
	assert.Contains(t, out.String(), "Successfully planned 2 delicious dinners!")
	assert.Contains(t, out.String(), "1. Shakshuka")
	assert.Contains(t, out.String(), "2. Dal")
}

func TestPrintPlanSurfacesRelayMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"message":"Webhook request failed with status 503"}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"plan", "--dinners", "1", "--plain", "--server", srv.URL})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := Execute()
	require.Error(t, err)
	assert.Equal(t, "Webhook request failed with status 503", err.Error())
	assert.NotContains(t, out.String(), "Successfully")
}

func TestServeListenersShutsDownOnCancel(t *testing.T) {
	appLn, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	metricsLn, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	app := chi.NewMux()
	app.Get("/ping", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("pong")) })
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("# metrics")) })

	var cfg config.Config
	cfg.Webhook.Timeout = time.Second
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serveListeners(ctx, appLn, metricsLn, app, metricsHandler, cfg, logger)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + appLn.Addr().String() + "/ping")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	resp, err := http.Get("http://" + metricsLn.Addr().String() + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "# metrics", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("servers did not shut down")
	}
}
