package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/FACorreiaa/go-dinner-planner/internal/presentation"
)

var (
	BrandColor = lipgloss.Color("#E03C31")
	MutedColor = lipgloss.Color("#6B7280")
	LikeColor  = lipgloss.Color("#16A34A")
	ErrorColor = lipgloss.Color("#DC2626")

	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(BrandColor).
		Padding(0, 1)

	Muted  = lipgloss.NewStyle().Foreground(MutedColor)
	Notice = lipgloss.NewStyle().Foreground(LikeColor)
	Error  = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(MutedColor).
			Padding(0, 1).
			Width(64)

	SelectedCardStyle = CardStyle.BorderForeground(BrandColor)

	TagStyle = lipgloss.NewStyle().Foreground(MutedColor).Italic(true)

	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BrandColor).
			Padding(1, 2).
			Width(50)

	HelpKey = lipgloss.NewStyle().Foreground(BrandColor).Bold(true)
)

// RenderCard draws one meal card. state is rendered as a marker next to the title.
func RenderCard(c presentation.Card, state presentation.State, selected bool) string {
	var b strings.Builder

	title := fmt.Sprintf("%d. %s", c.Index, c.Title)
	switch state {
	case presentation.Liked:
		title += " " + Notice.Render("[liked]")
	case presentation.Disliked:
		title += " " + Error.Render("[disliked]")
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))

	var meta []string
	if c.Cuisine != "" {
		meta = append(meta, c.Cuisine)
	}
	if c.CookTime != "" {
		meta = append(meta, c.CookTime)
	}
	if len(meta) > 0 {
		b.WriteString("\n" + Muted.Render(strings.Join(meta, " · ")))
	}
	if c.Body != "" {
		b.WriteString("\n" + c.Body)
	}
	if c.Link != "" {
		b.WriteString("\n" + Muted.Render(c.Link))
	}
	if len(c.Tags) > 0 {
		b.WriteString("\n" + TagStyle.Render("#"+strings.Join(c.Tags, " #")))
	}

	if selected {
		return SelectedCardStyle.Render(b.String())
	}
	return CardStyle.Render(b.String())
}

// RenderCards draws every card without selection or feedback markers.
func RenderCards(cards []presentation.Card) string {
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		rendered = append(rendered, RenderCard(c, presentation.Neutral, false))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}
