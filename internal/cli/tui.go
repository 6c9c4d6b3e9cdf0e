package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"habitgrid/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	windowWeeks := 0
	if ctx.Config.Display.WindowWeeks != nil {
		windowWeeks = *ctx.Config.Display.WindowWeeks
	}
	model := tui.NewModel(ctx.Store, ctx.Analytics, windowWeeks)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
