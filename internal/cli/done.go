package cli

import (
	"fmt"
	"time"

	"habitgrid/internal/calendar"
)

type DoneCmd struct {
	Habit string `arg:"" help:"Habit name or ID prefix."`
	Date  string `short:"d" help:"Day to mark (YYYY-MM-DD)." default:""`
}

func (c *DoneCmd) Run(ctx *Context) error {
	return setCompletion(ctx, c.Habit, c.Date, true)
}

type UndoCmd struct {
	Habit string `arg:"" help:"Habit name or ID prefix."`
	Date  string `short:"d" help:"Day to clear (YYYY-MM-DD)." default:""`
}

func (c *UndoCmd) Run(ctx *Context) error {
	return setCompletion(ctx, c.Habit, c.Date, false)
}

func setCompletion(ctx *Context, ref, date string, done bool) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := resolveHabit(ctx, ref)
	if err != nil {
		return err
	}

	day := calendar.Today(time.Now())
	if date != "" {
		parsed, err := calendar.ParseDayKey(date)
		if err != nil {
			return fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", date, err)
		}
		day = calendar.DayKey(parsed)
	}

	if err := ctx.Store.SetCompletion(habit.ID, day, done); err != nil {
		return err
	}

	if done {
		fmt.Printf("Marked %s done on %s\n", habit.Name, day)
	} else {
		fmt.Printf("Cleared %s on %s\n", habit.Name, day)
	}
	return nil
}
