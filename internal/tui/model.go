// Package tui is the interactive terminal client for the dinner planner.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/FACorreiaa/go-dinner-planner/internal/client"
	"github.com/FACorreiaa/go-dinner-planner/internal/presentation"
	"github.com/FACorreiaa/go-dinner-planner/internal/types"
)

const regenerateNotice = "Regeneration is not available yet"

// Planner sends a plan request and returns the raw success body.
type Planner interface {
	PlanDinners(ctx context.Context, req types.PlanRequest) ([]byte, error)
}

// planResultMsg carries the outcome of the single plan request.
type planResultMsg struct {
	raw []byte
	err error
}

// Model is the Bubbletea model for one planning session.
type Model struct {
	ctx      context.Context
	planner  Planner
	request  types.PlanRequest
	logger   *slog.Logger
	spinner  spinner.Model
	input    textinput.Model
	feedback *presentation.Feedback

	loading  bool
	dialog   bool
	cards    []presentation.Card
	cursor   int
	notice   string
	errorMsg string
	width    int
	quitting bool
}

// New creates a model that will submit req once started.
func New(ctx context.Context, planner Planner, req types.PlanRequest, logger *slog.Logger) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Header

	ti := textinput.New()
	ti.Placeholder = "What didn't you like? (optional)"
	ti.CharLimit = 200
	ti.Width = 40

	return Model{
		ctx:      ctx,
		planner:  planner,
		request:  req,
		logger:   logger,
		spinner:  s,
		input:    ti,
		feedback: presentation.NewFeedback(0, logger),
		loading:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m Model) fetch() tea.Cmd {
	planner, ctx, req := m.planner, m.ctx, m.request
	return func() tea.Msg {
		raw, err := planner.PlanDinners(ctx, req)
		return planResultMsg{raw: raw, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case planResultMsg:
		return m.handleResult(msg), nil

	case tea.KeyMsg:
		if m.dialog {
			return m.handleDialogKeypress(msg)
		}
		return m.handleKeypress(msg)
	}
	return m, nil
}

// handleResult always clears the loading state.
func (m Model) handleResult(msg planResultMsg) Model {
	m.loading = false

	if msg.err != nil {
		m.logger.Error("Plan request failed", slog.Any("error", msg.err))
		var apiErr *client.APIError
		if errors.As(msg.err, &apiErr) && apiErr.Body.Message != "" {
			m.errorMsg = apiErr.Body.Message
		} else {
			m.errorMsg = presentation.TransportFailureMessage
		}
		return m
	}

	meals, err := presentation.Normalize(msg.raw)
	if err != nil {
		// Keep whatever was displayed before.
		m.errorMsg = err.Error()
		return m
	}

	m.cards = presentation.Cards(meals)
	m.cursor = 0
	m.feedback.Reset(len(meals))
	m.errorMsg = ""
	m.notice = presentation.SuccessMessage(m.request.DinnerCount)
	return m
}

func (m Model) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	}

	if m.loading || len(m.cards) == 0 {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.cards)-1 {
			m.cursor++
		}
	case "l":
		if err := m.feedback.Like(m.cursor); err == nil {
			m.notice = "Glad you like " + m.cards[m.cursor].Title
		}
	case "d":
		if err := m.feedback.RequestDislike(m.cursor); err == nil {
			m.dialog = true
			m.input.SetValue("")
			cmd := m.input.Focus()
			return m, cmd
		}
	case "r":
		if err := m.feedback.Regenerate(m.cursor); err == nil {
			m.notice = regenerateNotice
		}
	}
	return m, nil
}

func (m Model) handleDialogKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if err := m.feedback.ConfirmDislike(strings.TrimSpace(m.input.Value())); err == nil {
			m.notice = "Thanks for the feedback"
		}
		m.closeDialog()
		return m, nil
	case tea.KeyEsc:
		m.feedback.CancelDislike()
		m.closeDialog()
		return m, nil
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closeDialog() {
	m.dialog = false
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(Header.Render("Your Personal Dinner Planner"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View() + " Planning your dinners...\n")
		return b.String()
	}

	if m.errorMsg != "" {
		b.WriteString(Error.Render(m.errorMsg) + "\n\n")
	} else if m.notice != "" {
		b.WriteString(Notice.Render(m.notice) + "\n\n")
	}

	if len(m.cards) == 0 {
		b.WriteString(Muted.Render("No meals to show.") + "\n")
	}
	for i, c := range m.cards {
		b.WriteString(RenderCard(c, m.feedback.State(i), i == m.cursor))
		b.WriteString("\n")
	}

	if m.dialog {
		idx, _ := m.feedback.Pending()
		content := "Why don't you want " + m.cards[idx].Title + "?\n\n" +
			m.input.View() + "\n\n" +
			Muted.Render("enter to confirm, esc to cancel")
		b.WriteString("\n" + DialogStyle.Render(content) + "\n")
	}

	b.WriteString("\n" + m.renderHelp())
	return b.String()
}

func (m Model) renderHelp() string {
	if m.dialog {
		return Muted.Render(HelpKey.Render("enter") + " confirm  " + HelpKey.Render("esc") + " cancel")
	}
	return Muted.Render(
		HelpKey.Render("j/k") + " navigate  " +
			HelpKey.Render("l") + " like  " +
			HelpKey.Render("d") + " dislike  " +
			HelpKey.Render("r") + " regenerate  " +
			HelpKey.Render("q") + " quit",
	)
}

// Feedback exposes the feedback state of the current result set.
func (m Model) Feedback() *presentation.Feedback {
	return m.feedback
}

// Loading reports whether the plan request is still pending.
func (m Model) Loading() bool {
	return m.loading
}

// Cards returns the cards currently displayed.
func (m Model) Cards() []presentation.Card {
	return m.cards
}

// Err returns the error currently shown, if any.
func (m Model) Err() string {
	return m.errorMsg
}
