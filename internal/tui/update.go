package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"habitgrid/internal/calendar"
	"habitgrid/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch m.state {
		case StateAddHabit:
			return m.updateAddHabit(msg)
		case StateConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateTabs(msg)
		}
	}

	if m.state == StateAddHabit && m.form != nil {
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		return m, cmd
	}

	return m, nil
}

func (m Model) updateTabs(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Tab):
		m.state = (m.state + 1) % tabCount
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = (m.state - 1 + tabCount) % tabCount
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.habits)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.toggleToday()
	case key.Matches(msg, m.keys.Add):
		m.habitForm = &HabitFormModel{Theme: models.DefaultTheme}
		m.form = newHabitForm(m.habitForm)
		m.state = StateAddHabit
		return m, m.form.Init()
	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.selectedHabit(); ok {
			m.state = StateConfirmDelete
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) toggleToday() {
	habit, ok := m.selectedHabit()
	if !ok {
		return
	}
	today := calendar.Today(time.Now())
	done := !habit.CompletedOn(today)
	if err := m.store.SetCompletion(habit.ID, today, done); err != nil {
		m.storeErr = err
		return
	}
	m.reloadHabits()
}

func (m Model) updateAddHabit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.state = StateGrid
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.addHabit()
		m.state = StateGrid
		m.form = nil
	} else if m.form.State == huh.StateAborted {
		m.state = StateGrid
		m.form = nil
	}

	return m, cmd
}

func (m *Model) addHabit() {
	if m.habitForm == nil {
		return
	}
	if err := models.ValidateName(m.habitForm.Name); err != nil {
		m.storeErr = err
		return
	}
	habit := models.Habit{
		ID:          uuid.New().String(),
		Name:        m.habitForm.Name,
		Theme:       m.habitForm.Theme,
		CreatedAt:   time.Now(),
		Completions: make(map[string]bool),
		Order:       len(m.habits),
	}
	if err := m.store.AddHabit(habit); err != nil {
		m.storeErr = err
		return
	}
	m.reloadHabits()
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		if habit, ok := m.selectedHabit(); ok {
			if err := m.store.DeleteHabit(habit.ID); err != nil {
				m.storeErr = err
			}
			m.reloadHabits()
		}
		m.state = StateGrid
	case "n", "esc", "q":
		m.state = StateGrid
	}
	return m, nil
}
