package tui

import (
	"github.com/charmbracelet/lipgloss"

	"habitgrid/internal/models"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	docStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	todayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Bold(true)
)

// themeColors maps habit themes to terminal colors for completed cells.
var themeColors = map[models.Theme]lipgloss.Color{
	models.ThemeRed:   lipgloss.Color("196"),
	models.ThemeBlue:  lipgloss.Color("39"),
	models.ThemeGreen: lipgloss.Color("40"),
}

func themeStyle(theme models.Theme) lipgloss.Style {
	color, ok := themeColors[theme]
	if !ok {
		color = themeColors[models.DefaultTheme]
	}
	return lipgloss.NewStyle().Foreground(color)
}
