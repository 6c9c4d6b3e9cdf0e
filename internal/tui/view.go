package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"habitgrid/internal/calendar"
)

const (
	doneCell  = "■"
	emptyCell = "·"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateGrid:
		content = m.viewGrid()
	case StateWeek:
		content = m.viewWeek()
	case StateAddHabit:
		if m.form != nil {
			content = m.form.View()
		}
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	sections := []string{m.viewTabs(), content}
	if m.storeErr != nil {
		sections = append(sections, dangerStyle.Render("⚠ "+m.storeErr.Error()))
	}
	sections = append(sections, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Grid", "Week"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// viewGrid renders every habit as one row of recent days, most recent last.
func (m Model) viewGrid() string {
	if len(m.habits) == 0 {
		return docStyle.Render("No habits yet. Press 'a' to add one.")
	}

	days := m.gridDays()
	now := time.Now()

	var rows []string
	for i, habit := range m.habits {
		name := fmt.Sprintf("%-20.20s", habit.Name)
		if i == m.selected {
			name = selectedStyle.Render(name)
		}

		var cells strings.Builder
		style := themeStyle(habit.Theme)
		for offset := days - 1; offset >= 0; offset-- {
			day := now.AddDate(0, 0, -offset)
			key := calendar.DayKey(day)
			switch {
			case habit.CompletedOn(key) && calendar.IsToday(day, now):
				cells.WriteString(todayStyle.Render(doneCell))
			case habit.CompletedOn(key):
				cells.WriteString(style.Render(doneCell))
			case calendar.IsToday(day, now):
				cells.WriteString(todayStyle.Render(emptyCell))
			default:
				cells.WriteString(dimStyle.Render(emptyCell))
			}
		}

		streak := m.calc.CurrentStreak(habit.Completions, now)
		rows = append(rows, fmt.Sprintf("%s %s %s", name, cells.String(),
			dimStyle.Render(fmt.Sprintf("%3d", streak))))
	}

	return docStyle.Render(strings.Join(rows, "\n"))
}

// gridDays returns how many trailing days fit in the current width, capped
// by the configured window.
func (m Model) gridDays() int {
	days := m.width - 28
	if days < 7 {
		days = 7
	}
	if limit := m.gridWeeks * 7; days > limit {
		days = limit
	}
	return days
}

// viewWeek renders the selected habit's current week and statistics.
func (m Model) viewWeek() string {
	habit, ok := m.selectedHabit()
	if !ok {
		return docStyle.Render("No habits yet. Press 'a' to add one.")
	}

	now := time.Now()
	week := calendar.WeekOf(now)

	var names, cells []string
	style := themeStyle(habit.Theme)
	for _, day := range week {
		label := calendar.ShortDayName(day)
		if calendar.IsToday(day, now) {
			label = todayStyle.Render(label)
		} else {
			label = dimStyle.Render(label)
		}
		names = append(names, label)

		cell := emptyCell
		if habit.CompletedOn(calendar.DayKey(day)) {
			cell = style.Render(doneCell)
		} else {
			cell = dimStyle.Render(cell)
		}
		cells = append(cells, " "+cell+" ")
	}

	stats := fmt.Sprintf(
		"streak: %d   longest: %d   this week: %d%%   overall: %d%%",
		m.calc.CurrentStreak(habit.Completions, now),
		m.calc.LongestStreak(habit.Completions),
		m.calc.WeeklyCompletionRate(habit.Completions, now),
		m.calc.OverallCompletionRate(habit, now),
	)

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(habit.Name)+"  "+dimStyle.Render(string(habit.Theme)),
		"",
		strings.Join(names, " "),
		strings.Join(cells, " "),
		"",
		stats,
	))
}

func (m Model) viewConfirmDelete() string {
	habit, _ := m.selectedHabit()
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete habit %q and its history?", habit.Name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
