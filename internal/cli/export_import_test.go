package cli

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"habitgrid/internal/analytics"
	"habitgrid/internal/backup"
	"habitgrid/internal/clipboard"
	"habitgrid/internal/codec"
	"habitgrid/internal/config"
	"habitgrid/internal/models"
	"habitgrid/internal/storage"
)

func newTestContext(t *testing.T, clip clipboard.Clipboard) *Context {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "habits.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return &Context{
		Store:     store,
		Analytics: analytics.New(zap.NewNop()),
		Codec:     codec.New(zap.NewNop()),
		Clipboard: clip,
		Config:    config.FileConfig{},
		Logger:    zap.NewNop(),
	}
}

func TestExportImport_ClipboardRoundTrip(t *testing.T) {
	clip := clipboard.NewMemory("")
	ctx := newTestContext(t, clip)

	habit := models.Habit{
		ID:        "id-1",
		Name:      "Morning Run",
		Theme:     models.ThemeGreen,
		CreatedAt: time.Now().AddDate(0, 0, -10),
		Completions: map[string]bool{
			"2024-06-03": true,
			"2024-06-05": true,
		},
	}
	if err := ctx.Store.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}

	export := &ExportCmd{Habit: "Morning Run", Format: "csv"}
	if err := export.Run(ctx); err != nil {
		t.Fatalf("export: %v", err)
	}
	text, err := clip.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !strings.HasPrefix(text, "HABIT_JSON_DATA:") {
		t.Fatalf("clipboard payload missing marker: %q", text[:40])
	}

	imp := &ImportCmd{Format: "csv"}
	if err := imp.Run(ctx); err != nil {
		t.Fatalf("import: %v", err)
	}

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		t.Fatalf("GetAllHabits: %v", err)
	}
	if len(habits) != 2 {
		t.Fatalf("got %d habits, want 2", len(habits))
	}
	imported := habits[1]
	if imported.Name != "Morning Run (2)" {
		t.Errorf("imported name = %q, want suffixed copy", imported.Name)
	}
	if imported.Theme != models.ThemeGreen {
		t.Errorf("imported theme = %q, want green", imported.Theme)
	}
	for day := range habit.Completions {
		if !imported.Completions[day] {
			t.Errorf("completion %s lost in round trip", day)
		}
	}
}

func TestImport_SnapshotsStoreFirst(t *testing.T) {
	clip := clipboard.NewMemory(`{"name":"Stretch","completions":{"2024-06-01":true}}`)
	ctx := newTestContext(t, clip)

	imp := &ImportCmd{Format: "json"}
	if err := imp.Run(ctx); err != nil {
		t.Fatalf("import: %v", err)
	}

	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(backups) == 0 {
		t.Fatal("import did not snapshot the store")
	}

	if _, err := ctx.Store.GetHabitByName("Stretch"); err != nil {
		t.Errorf("imported habit missing: %v", err)
	}
}

func TestImport_EmptyClipboard(t *testing.T) {
	ctx := newTestContext(t, clipboard.NewMemory(""))

	imp := &ImportCmd{Format: "csv"}
	err := imp.Run(ctx)
	if err == nil {
		t.Fatal("import of an empty clipboard should fail")
	}
	if !strings.Contains(err.Error(), "clipboard is empty") {
		t.Errorf("error should tell the user the clipboard is empty, got: %v", err)
	}

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		t.Fatalf("GetAllHabits: %v", err)
	}
	if len(habits) != 0 {
		t.Errorf("empty import must not create habits, got %d", len(habits))
	}
}

func TestImport_ClipboardReadFailure(t *testing.T) {
	readErr := errors.New("no clipboard available")
	ctx := newTestContext(t, clipboard.NewFailing(readErr))

	imp := &ImportCmd{Format: "csv"}
	err := imp.Run(ctx)
	if err == nil {
		t.Fatal("import should surface a clipboard read failure")
	}
	if !errors.Is(err, readErr) {
		t.Errorf("error should wrap the clipboard failure, got: %v", err)
	}
}

func TestExport_ClipboardWriteFailure(t *testing.T) {
	ctx := newTestContext(t, clipboard.NewFailing(errors.New("no clipboard available")))
	if err := ctx.Store.AddHabit(models.Habit{
		ID: "id-1", Name: "Read", Theme: models.ThemeBlue, CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}

	export := &ExportCmd{Habit: "Read", Format: "csv"}
	err := export.Run(ctx)
	if err == nil {
		t.Fatal("export should surface a clipboard write failure")
	}
	if !strings.Contains(err.Error(), "--stdout") {
		t.Errorf("error should point at --stdout, got: %v", err)
	}
}

func TestExport_NothingToExport(t *testing.T) {
	ctx := newTestContext(t, clipboard.NewMemory(""))
	export := &ExportCmd{Format: "csv"}
	if err := export.Run(ctx); err == nil {
		t.Fatal("exporting with no habits should fail")
	}
}
