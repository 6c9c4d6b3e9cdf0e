package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"habitgrid/internal/analytics"
	"habitgrid/internal/cli"
	"habitgrid/internal/clipboard"
	"habitgrid/internal/codec"
	"habitgrid/internal/config"
	"habitgrid/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Habit database path." type:"path" default:"${store_path}"`
	Verbose bool   `short:"v" help:"Enable debug logging."`

	Init   cli.InitCmd   `cmd:"" help:"Initialize habitgrid storage."`
	Tui    cli.TuiCmd    `cmd:"" help:"Launch the interactive habit grid." default:"1"`
	Add    cli.AddCmd    `cmd:"" help:"Add a new habit."`
	List   cli.ListCmd   `cmd:"" help:"List all habits."`
	Done   cli.DoneCmd   `cmd:"" help:"Mark a habit done for a day."`
	Undo   cli.UndoCmd   `cmd:"" help:"Clear a habit's completion for a day."`
	Edit   cli.EditCmd   `cmd:"" help:"Edit a habit's name, theme, or position."`
	Rm     cli.RmCmd     `cmd:"" help:"Delete a habit and its history."`
	Stats  cli.StatsCmd  `cmd:"" help:"Show streaks and completion rates."`
	Export cli.ExportCmd `cmd:"" help:"Copy habit data to the clipboard."`
	Import cli.ImportCmd `cmd:"" help:"Import habit data from the clipboard."`
	Backup cli.BackupCmd `cmd:"" help:"Snapshot, list, or restore the habit store."`
}

func parserOptions() []kong.Option {
	return []kong.Option{
		kong.Name("habitgrid"),
		kong.Description("Habit tracker with a rolling two-year grid"),
		kong.UsageOnError(),
		kong.Vars{
			"version":    "v0.1.0",
			"store_path": config.DefaultStorePath(),
		},
	}
}

func main() {
	ctx := kong.Parse(&CLI, parserOptions()...)

	logConfig := zap.NewProductionConfig()
	if CLI.Verbose {
		logConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := logConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	fileConfig, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		logger.Warn("failed to load config file", zap.Error(err))
	}

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	habitCodec := codec.New(logger)
	if fileConfig.Export.Weeks != nil {
		habitCodec.SetExportWeeks(*fileConfig.Export.Weeks)
	}

	appCtx := &cli.Context{
		Store:     store,
		Analytics: analytics.New(logger),
		Codec:     habitCodec,
		Clipboard: clipboard.NewSystem(),
		Config:    fileConfig,
		Logger:    logger,
	}

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("failed to close storage", zap.Error(closeErr))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
