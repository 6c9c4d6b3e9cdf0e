package cli

import (
	"fmt"
	"time"

	"habitgrid/internal/backup"
)

type BackupCmd struct {
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Create  BackupCreateCmd  `cmd:"" default:"1" help:"Snapshot the habit store."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore the habit store from a backup."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	manager := backup.NewManager(ctx.Store.GetConfigPath())
	path, err := manager.Create(time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Created backup: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	manager := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := manager.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}
	for _, b := range backups {
		fmt.Printf("%s  %8d bytes  %s\n", b.Timestamp.Format("2006-01-02 15:04:05"), b.Size, b.Path)
	}
	return nil
}

type BackupRestoreCmd struct {
	Path string `arg:"" help:"Backup file to restore."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	// The store must not hold the file open while it is replaced.
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	manager := backup.NewManager(ctx.Store.GetConfigPath())
	if err := manager.Restore(c.Path, time.Now()); err != nil {
		return err
	}
	fmt.Printf("Restored habit store from %s\n", c.Path)
	return nil
}
