package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"habitgrid/internal/backup"
	"habitgrid/internal/codec"
	"habitgrid/internal/models"
)

type ImportCmd struct {
	Format string `short:"f" help:"Expected clipboard format (csv|json)." enum:"csv,json" default:"csv"`
	Theme  string `short:"t" help:"Theme for the imported habit (red|blue|green)." default:""`
}

func (c *ImportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
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

	text, err := ctx.Clipboard.Read()
	if err != nil {
		return fmt.Errorf("failed to read clipboard, please try again: %w", err)
	}

	now := time.Now()
	var result codec.Result
	switch c.Format {
	case "json":
		result, err = ctx.Codec.ImportJSONText(text, theme, now)
	default:
		result, err = ctx.Codec.ImportCSVText(text, theme, now)
	}
	if err != nil {
		if errors.Is(err, codec.ErrEmptyInput) {
			return fmt.Errorf("clipboard is empty; copy habit data first")
		}
		return err
	}

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}

	// Snapshot the store before writing imported data into it. A failed
	// snapshot does not block the import.
	if _, err := backup.NewManager(ctx.Store.GetConfigPath()).Create(now); err != nil {
		ctx.Logger.Warn("pre-import backup failed", zap.Error(err))
	}

	habit := models.Habit{
		ID:          uuid.New().String(),
		Name:        uniqueName(result.Data.Name, habits),
		Theme:       result.Data.Theme,
		CreatedAt:   now,
		Completions: result.Data.Completions,
		Order:       len(habits),
	}
	if err := models.ValidateName(habit.Name); err != nil {
		habit.Name = "Imported Habit"
	}

	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	if result.Outcome == codec.SampleData {
		fmt.Printf("Could not decode the clipboard contents; created %q with sample data instead.\n", habit.Name)
	} else {
		fmt.Printf("Imported habit %q with %d completions.\n", habit.Name, habit.CompletedCount())
	}
	return nil
}

// uniqueName appends a numeric suffix when the imported name collides with
// an existing habit.
func uniqueName(name string, habits []models.Habit) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Imported Habit"
	}

	taken := make(map[string]bool, len(habits))
	for _, h := range habits {
		taken[h.Name] = true
	}

	if !taken[name] {
		return name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s (%d)", name, i)
		if !taken[candidate] {
			return candidate
		}
	}
}
