package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/FACorreiaa/go-dinner-planner/internal/client"
	"github.com/FACorreiaa/go-dinner-planner/internal/presentation"
	"github.com/FACorreiaa/go-dinner-planner/internal/tui"
	"github.com/FACorreiaa/go-dinner-planner/internal/types"
)

type planOptions struct {
	dinners     int
	preferences string
	server      string
	plain       bool
	logFile     string
}

var planOpts planOptions

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan dinners from the terminal",
	Long: `Sends a plan request to a running dinner planner server and shows the
suggested meals. In the interactive view use j/k to move, l to like, d to
dislike, r to regenerate and q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlan(cmd, planOpts)
	},
}

func init() {
	planCmd.Flags().IntVarP(&planOpts.dinners, "dinners", "n", 0, "number of dinners to plan (1-7)")
	planCmd.Flags().StringVarP(&planOpts.preferences, "preferences", "p", "", "dietary preferences, cuisines, time constraints")
	planCmd.Flags().StringVar(&planOpts.server, "server", "http://localhost:8000", "base URL of the dinner planner server")
	planCmd.Flags().BoolVar(&planOpts.plain, "plain", false, "print the cards and exit instead of opening the interactive view")
	planCmd.Flags().StringVar(&planOpts.logFile, "log-file", "", "write feedback logs to this file")
	_ = planCmd.MarkFlagRequired("dinners")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, opts planOptions) error {
	req, err := buildPlanRequest(opts)
	if err != nil {
		return err
	}

	logger, closeLog, err := planLogger(opts.logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	c := client.New(opts.server, nil)
	out := cmd.OutOrStdout()

	if opts.plain {
		return printPlan(cmd, c, req, out)
	}

	p := tea.NewProgram(tui.New(cmd.Context(), c, req, logger), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running planner UI: %w", err)
	}
	return nil
}

// buildPlanRequest runs flag values through the same schema as the API.
func buildPlanRequest(opts planOptions) (types.PlanRequest, error) {
	body := map[string]any{"dinnerCount": opts.dinners}
	if opts.preferences != "" {
		body["preferences"] = opts.preferences
	}
	data, err := json.Marshal(body)
	if err != nil {
		return types.PlanRequest{}, fmt.Errorf("encoding plan request: %w", err)
	}
	return types.ParsePlanRequest(data)
}

func printPlan(cmd *cobra.Command, c *client.Client, req types.PlanRequest, out io.Writer) error {
	raw, err := c.PlanDinners(cmd.Context(), req)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Body.Message != "" {
			return errors.New(apiErr.Body.Message)
		}
		return fmt.Errorf("%s: %w", presentation.TransportFailureMessage, err)
	}

	meals, err := presentation.Normalize(raw)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, presentation.SuccessMessage(req.DinnerCount))
	if len(meals) == 0 {
		fmt.Fprintln(out, "No meals were suggested this time.")
		return nil
	}
	fmt.Fprintln(out, tui.RenderCards(presentation.Cards(meals)))
	return nil
}

func planLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, nil)), func() { _ = f.Close() }, nil
}
