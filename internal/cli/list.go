package cli

import (
	"fmt"
	"time"
)

type ListCmd struct {
	Details bool `short:"d" help:"Show IDs and creation dates."`
}

func (c *ListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'habitgrid add <name>'.")
		return nil
	}

	now := time.Now()
	for _, habit := range habits {
		streak := ctx.Analytics.CurrentStreak(habit.Completions, now)
		fmt.Printf("%-30s  [%s]  streak: %d\n", habit.Name, habit.Theme, streak)
		if c.Details {
			fmt.Printf("  id: %s  created: %s  completions: %d\n",
				habit.ID, habit.CreatedAt.Format("2006-01-02"), habit.CompletedCount())
		}
	}

	return nil
}
