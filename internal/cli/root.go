package cli

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"habitgrid/internal/analytics"
	"habitgrid/internal/clipboard"
	"habitgrid/internal/codec"
	"habitgrid/internal/config"
	"habitgrid/internal/models"
	"habitgrid/internal/storage"
)

type Context struct {
	Store     storage.Provider
	Analytics *analytics.Calculator
	Codec     *codec.Codec
	Clipboard clipboard.Clipboard
	Config    config.FileConfig
	Logger    *zap.Logger
}

// DefaultTheme returns the configured default theme, falling back to the
// built-in default when the config has none or an invalid one.
func (ctx *Context) DefaultTheme() models.Theme {
	if ctx.Config.Display.Theme != nil {
		if theme, err := models.ParseTheme(*ctx.Config.Display.Theme); err == nil {
			return theme
		}
		ctx.Logger.Warn("ignoring invalid theme in config",
			zap.String("theme", *ctx.Config.Display.Theme))
	}
	return models.DefaultTheme
}

// resolveHabit finds a habit by exact name, then by ID prefix.
func resolveHabit(ctx *Context, ref string) (models.Habit, error) {
	if habit, err := ctx.Store.GetHabitByName(ref); err == nil {
		return habit, nil
	}

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return models.Habit{}, err
	}

	var matches []models.Habit
	for _, habit := range habits {
		if strings.HasPrefix(habit.ID, ref) {
			matches = append(matches, habit)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Habit{}, fmt.Errorf("no habit matches %q", ref)
	default:
		return models.Habit{}, fmt.Errorf("habit reference %q is ambiguous (%d matches)", ref, len(matches))
	}
}
