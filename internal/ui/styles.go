package ui

import (
	"github.com/charmbracelet/lipgloss"

	"taskm/internal/task"
)

type palette struct {
	title   lipgloss.Style
	done    lipgloss.Style
	due     lipgloss.Style
	overdue lipgloss.Style
	streak  lipgloss.Style
	dim     lipgloss.Style
}

func newPalette(theme task.Theme) palette {
	if theme == task.ThemeDark {
		return palette{
			title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
			done:    lipgloss.NewStyle().Faint(true).Strikethrough(true),
			due:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			overdue: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
			streak:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			dim:     lipgloss.NewStyle().Faint(true),
		}
	}
	return palette{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		done:    lipgloss.NewStyle().Faint(true).Strikethrough(true),
		due:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		overdue: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		streak:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		dim:     lipgloss.NewStyle().Faint(true),
	}
}
