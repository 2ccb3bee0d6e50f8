package reminders

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	pendingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	whenStyle = lipgloss.NewStyle().
			Bold(true)

	authorStyle = lipgloss.NewStyle().
			Italic(true)

	descriptionStyle = lipgloss.NewStyle().
				Faint(true).
				PaddingLeft(4)
)
