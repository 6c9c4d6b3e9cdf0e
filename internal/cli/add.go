package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"habitgrid/internal/models"
)

type AddCmd struct {
	Name  string `arg:"" help:"Habit name (1-30 characters)."`
	Theme string `short:"t" help:"Habit theme (red|blue|green)." default:""`
}

func (c *AddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	name := strings.TrimSpace(c.Name)
	if err := models.ValidateName(name); err != nil {
		return err
	}

	theme := ctx.DefaultTheme()
	if c.Theme != "" {
		parsed, err := models.ParseTheme(c.Theme)
		if err != nil {
			return err
		}
		theme = parsed
	}

	if _, err := ctx.Store.GetHabitByName(name); err == nil {
		return fmt.Errorf("a habit named %q already exists", name)
	}

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}

	habit := models.Habit{
		ID:          uuid.New().String(),
		Name:        name,
		Theme:       theme,
		CreatedAt:   time.Now(),
		Completions: make(map[string]bool),
		Order:       len(habits),
	}

	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (ID: %s)\n", name, habit.ID)
	return nil
}
