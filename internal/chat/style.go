package chat

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	userLabelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // bright blue
	assistantLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // bright yellow
)

func userPrompt() string {
	return userLabelStyle.Render("You") + ": "
}

func assistantLabel() string {
	return assistantLabelStyle.Render("Claude")
}

// MarkdownRenderer renders replies as terminal markdown wrapped at width.
func MarkdownRenderer(width int) (Renderer, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return r.Render, nil
}
