package storage

import (
	"path/filepath"
	"testing"
	"time"

	"habitgrid/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "habits.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLite_Lifecycle(t *testing.T) {
	store := newTestSQLiteStore(t)
	habit := sampleHabit("id-1", "Read", 0)
	habit.Completions["2024-06-05"] = true

	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}

	got, err := store.GetHabit("id-1")
	if err != nil {
		t.Fatalf("GetHabit: %v", err)
	}
	if got.Name != "Read" || got.Theme != models.ThemeBlue {
		t.Errorf("got %q/%q", got.Name, got.Theme)
	}
	if !got.CreatedAt.Equal(habit.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, habit.CreatedAt)
	}
	if !got.Completions["2024-06-05"] {
		t.Error("completion not persisted")
	}

	habit.Name = "Read More"
	delete(habit.Completions, "2024-06-05")
	habit.Completions["2024-06-06"] = true
	if err := store.UpdateHabit(habit); err != nil {
		t.Fatalf("UpdateHabit: %v", err)
	}
	got, _ = store.GetHabit("id-1")
	if got.Name != "Read More" {
		t.Errorf("name after update = %q", got.Name)
	}
	if got.Completions["2024-06-05"] || !got.Completions["2024-06-06"] {
		t.Errorf("completion rows not rewritten: %v", got.Completions)
	}

	if err := store.DeleteHabit("id-1"); err != nil {
		t.Fatalf("DeleteHabit: %v", err)
	}
	if _, err := store.GetHabit("id-1"); err == nil {
		t.Error("GetHabit should fail after delete")
	}
	if err := store.DeleteHabit("id-1"); err == nil {
		t.Error("deleting twice should fail")
	}
}

func TestSQLite_GetAllHabitsOrder(t *testing.T) {
	store := newTestSQLiteStore(t)

	b := sampleHabit("id-b", "Second", 1)
	a := sampleHabit("id-a", "First", 0)
	c := sampleHabit("id-c", "Tied", 0)
	c.CreatedAt = a.CreatedAt.Add(time.Hour)

	for _, h := range []models.Habit{b, a, c} {
		if err := store.AddHabit(h); err != nil {
			t.Fatalf("AddHabit(%s): %v", h.Name, err)
		}
	}

	habits, err := store.GetAllHabits()
	if err != nil {
		t.Fatalf("GetAllHabits: %v", err)
	}
	want := []string{"id-a", "id-c", "id-b"}
	if len(habits) != len(want) {
		t.Fatalf("got %d habits, want %d", len(habits), len(want))
	}
	for i, id := range want {
		if habits[i].ID != id {
			t.Errorf("habits[%d].ID = %q, want %q", i, habits[i].ID, id)
		}
	}
}

func TestSQLite_SetCompletion(t *testing.T) {
	store := newTestSQLiteStore(t)
	if err := store.AddHabit(sampleHabit("id-1", "Read", 0)); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}

	if err := store.SetCompletion("id-1", "2024-06-05", true); err != nil {
		t.Fatalf("SetCompletion: %v", err)
	}
	// Marking the same day twice is a no-op.
	if err := store.SetCompletion("id-1", "2024-06-05", true); err != nil {
		t.Fatalf("SetCompletion repeat: %v", err)
	}
	habit, _ := store.GetHabit("id-1")
	if !habit.Completions["2024-06-05"] {
		t.Error("completion not recorded")
	}

	if err := store.SetCompletion("id-1", "2024-06-05", false); err != nil {
		t.Fatalf("SetCompletion(false): %v", err)
	}
	habit, _ = store.GetHabit("id-1")
	if _, ok := habit.Completions["2024-06-05"]; ok {
		t.Error("cleared completion should be absent")
	}

	if err := store.SetCompletion("missing", "2024-06-05", true); err == nil {
		t.Error("SetCompletion should fail for an unknown habit")
	}
}

func TestSQLite_LoadReopensExistingDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habits.db")
	store := NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := store.AddHabit(sampleHabit("id-1", "Read", 0)); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := NewSQLiteStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer reopened.Close()
	if _, err := reopened.GetHabit("id-1"); err != nil {
		t.Errorf("GetHabit after reopen: %v", err)
	}
}

func TestSQLite_LoadMissingFile(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "habits.db"))
	if err := store.Load(); err == nil {
		t.Fatal("Load should fail before Init")
	}
}
