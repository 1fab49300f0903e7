package presentation

import (
	"net/url"
	"strings"

	"github.com/FACorreiaa/go-dinner-planner/internal/types"
)

// UntitledMeal is displayed for a meal that has neither mealName nor name.
const UntitledMeal = "Untitled meal"

// Card is the display form of one meal. Empty fields are not rendered.
type Card struct {
	Index    int // 1-based position in the result set
	Title    string
	Link     string
	Cuisine  string
	CookTime string
	Body     string
	Tags     []string
}

// Cards builds one card per meal, in order.
func Cards(meals []types.Meal) []Card {
	cards := make([]Card, 0, len(meals))
	for i, m := range meals {
		cards = append(cards, NewCard(i, m))
	}
	return cards
}

func NewCard(i int, m types.Meal) Card {
	title := m.DisplayName()
	if title == "" {
		title = UntitledMeal
	}
	return Card{
		Index:    i + 1,
		Title:    title,
		Link:     safeLink(m.MealLink),
		Cuisine:  strings.TrimSpace(m.Cuisine),
		CookTime: strings.TrimSpace(m.CookTime),
		Body:     strings.TrimSpace(m.Body()),
		Tags:     m.Tags,
	}
}

// safeLink keeps only absolute http(s) links.
func safeLink(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return u.String()
}
