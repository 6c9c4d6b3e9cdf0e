package cli

import (
	"fmt"
	"time"
)

type ExportCmd struct {
	Habit  string `arg:"" optional:"" help:"Habit name or ID prefix (all habits when omitted)."`
	Format string `short:"f" help:"Export format (csv|json)." enum:"csv,json" default:"csv"`
	Stdout bool   `help:"Print the payload instead of copying it to the clipboard."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	now := time.Now()

	var payload string
	var label string

	if c.Habit != "" {
		habit, err := resolveHabit(ctx, c.Habit)
		if err != nil {
			return err
		}
		label = fmt.Sprintf("habit %q", habit.Name)

		switch c.Format {
		case "json":
			payload, err = ctx.Codec.HabitJSON(habit, now)
		default:
			payload, err = ctx.Codec.HabitClipboardPayload(habit, now)
		}
		if err != nil {
			return err
		}
	} else {
		habits, err := ctx.Store.GetAllHabits()
		if err != nil {
			return err
		}
		if len(habits) == 0 {
			return fmt.Errorf("there are no habits to export")
		}
		label = fmt.Sprintf("%d habits", len(habits))

		switch c.Format {
		case "json":
			payload, err = ctx.Codec.AllHabitsJSON(habits, now)
		default:
			payload, err = ctx.Codec.AllHabitsClipboardPayload(habits, now)
		}
		if err != nil {
			return err
		}
	}

	if c.Stdout {
		fmt.Print(payload)
		return nil
	}

	if err := ctx.Clipboard.Write(payload); err != nil {
		return fmt.Errorf("failed to copy export to clipboard (try --stdout): %w", err)
	}

	fmt.Printf("Copied %s export for %s to the clipboard.\n", c.Format, label)
	return nil
}
