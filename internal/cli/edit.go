package cli

import (
	"fmt"
	"strings"

	"habitgrid/internal/models"
)

type EditCmd struct {
	Habit string `arg:"" help:"Habit name or ID prefix."`
	Name  string `short:"n" help:"New habit name." default:""`
	Theme string `short:"t" help:"New theme (red|blue|green)." default:""`
	Order int    `short:"o" help:"New display position." default:"-1"`
}

func (c *EditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	changed := false
	if c.Name != "" {
		name := strings.TrimSpace(c.Name)
		if err := models.ValidateName(name); err != nil {
			return err
		}
		habit.Name = name
		changed = true
	}
	if c.Theme != "" {
		theme, err := models.ParseTheme(c.Theme)
		if err != nil {
			return err
		}
		habit.Theme = theme
		changed = true
	}
	if c.Order >= 0 {
		habit.Order = c.Order
		changed = true
	}

	if !changed {
		return fmt.Errorf("nothing to change; pass --name, --theme, or --order")
	}

	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Updated habit: %s\n", habit.Name)
	return nil
}

type RmCmd struct {
	Habit string `arg:"" help:"Habit name or ID prefix."`
}

func (c *RmCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}
