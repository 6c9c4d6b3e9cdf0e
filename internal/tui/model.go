package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"habitgrid/internal/analytics"
	"habitgrid/internal/models"
	"habitgrid/internal/storage"
)

type SessionState int

const (
	StateGrid SessionState = iota
	StateWeek
	StateAddHabit
	StateConfirmDelete
)

// tabCount is the number of cycle-able tab views (Grid, Week).
const tabCount = 2

type HabitFormModel struct {
	Name  string
	Theme models.Theme
}

// defaultGridWeeks bounds the grid rows when no window is configured.
const defaultGridWeeks = 16

type Model struct {
	store     storage.Provider
	calc      *analytics.Calculator
	state     SessionState
	keys      KeyMap
	help      help.Model
	habits    []models.Habit
	selected  int
	form      *huh.Form
	habitForm *HabitFormModel
	storeErr  error
	quitting  bool
	width     int
	height    int
	gridWeeks int
}

// NewModel builds the TUI root model. windowWeeks caps how far back the grid
// view reaches; non-positive values use the default.
func NewModel(store storage.Provider, calc *analytics.Calculator, windowWeeks int) Model {
	if windowWeeks <= 0 {
		windowWeeks = defaultGridWeeks
	}
	m := Model{
		store:     store,
		calc:      calc,
		state:     StateGrid,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		gridWeeks: windowWeeks,
	}
	m.reloadHabits()
	return m
}

func (m *Model) reloadHabits() {
	habits, err := m.store.GetAllHabits()
	if err != nil {
		m.storeErr = err
		return
	}
	m.storeErr = nil
	m.habits = habits
	if m.selected >= len(m.habits) {
		m.selected = len(m.habits) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m Model) selectedHabit() (models.Habit, bool) {
	if len(m.habits) == 0 || m.selected >= len(m.habits) {
		return models.Habit{}, false
	}
	return m.habits[m.selected], true
}

func newHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit name").
				Value(&fm.Name),
			huh.NewSelect[models.Theme]().
				Title("Theme").
				Options(
					huh.NewOption("Red", models.ThemeRed),
					huh.NewOption("Blue", models.ThemeBlue),
					huh.NewOption("Green", models.ThemeGreen),
				).
				Value(&fm.Theme),
		),
	)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Up, m.keys.Down, m.keys.Toggle}
	if m.state == StateGrid {
		keys = append(keys, m.keys.Add, m.keys.Delete)
	}
	return append(keys, m.keys.Quit, m.keys.Help)
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help},
		{m.keys.Up, m.keys.Down, m.keys.Toggle, m.keys.Add, m.keys.Delete},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}
