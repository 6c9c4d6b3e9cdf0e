package storage

import "habitgrid/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(name string) (models.Habit, error)
	GetAllHabits() ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	DeleteHabit(id string) error

	// SetCompletion marks or clears one day. Clearing removes the entry so
	// the stored map stays sparse.
	SetCompletion(habitID, day string, done bool) error

	// Utils
	GetConfigPath() string
}
