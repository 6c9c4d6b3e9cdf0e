package cli

import (
	"fmt"
	"time"

	"habitgrid/internal/models"
)

type StatsCmd struct {
	Habit string `arg:"" optional:"" help:"Habit name or ID prefix (all habits when omitted)."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var habits []models.Habit
	if c.Habit != "" {
		habit, err := resolveHabit(ctx, c.Habit)
		if err != nil {
			return err
		}
		habits = []models.Habit{habit}
	} else {
		all, err := ctx.Store.GetAllHabits()
		if err != nil {
			return err
		}
		habits = all
	}

	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'habitgrid add <name>'.")
		return nil
	}

	now := time.Now()
	for _, habit := range habits {
		fmt.Printf("%s\n", habit.Name)
		fmt.Printf("  current streak:  %d\n", ctx.Analytics.CurrentStreak(habit.Completions, now))
		fmt.Printf("  longest streak:  %d\n", ctx.Analytics.LongestStreak(habit.Completions))
		fmt.Printf("  this week:       %d%%\n", ctx.Analytics.WeeklyCompletionRate(habit.Completions, now))
		fmt.Printf("  overall:         %d%%\n", ctx.Analytics.OverallCompletionRate(habit, now))
	}

	return nil
}
