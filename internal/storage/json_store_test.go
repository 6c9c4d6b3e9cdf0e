package storage

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"habitgrid/internal/models"
)

func newTestStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "habits.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return store
}

func sampleHabit(id, name string, order int) models.Habit {
	return models.Habit{
		ID:          id,
		Name:        name,
		Theme:       models.ThemeBlue,
		CreatedAt:   time.Date(2024, time.June, 1, 9, 0, 0, 0, time.Local),
		Completions: map[string]bool{},
		Order:       order,
	}
}

func TestInit_RefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habits.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("first Init: %v", err)
	}
	if err := NewJSONStore(path).Init(); err == nil {
		t.Fatal("second Init should fail on an existing file")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "habits.json"))
	err := store.Load()
	if err == nil {
		t.Fatal("Load should fail before Init")
	}
	if !strings.Contains(err.Error(), "habitgrid init") {
		t.Errorf("error should point at init, got: %v", err)
	}
}

func TestAddGetUpdateDelete(t *testing.T) {
	store := newTestStore(t)
	habit := sampleHabit("id-1", "Read", 0)

	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}

	got, err := store.GetHabit("id-1")
	if err != nil {
		t.Fatalf("GetHabit: %v", err)
	}
	if got.Name != "Read" {
		t.Errorf("name = %q, want Read", got.Name)
	}

	byName, err := store.GetHabitByName("Read")
	if err != nil {
		t.Fatalf("GetHabitByName: %v", err)
	}
	if byName.ID != "id-1" {
		t.Errorf("id = %q, want id-1", byName.ID)
	}

	habit.Name = "Read More"
	if err := store.UpdateHabit(habit); err != nil {
		t.Fatalf("UpdateHabit: %v", err)
	}
	got, _ = store.GetHabit("id-1")
	if got.Name != "Read More" {
		t.Errorf("name after update = %q", got.Name)
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

func TestUpdateHabit_UnknownID(t *testing.T) {
	store := newTestStore(t)
	if err := store.UpdateHabit(sampleHabit("nope", "Ghost", 0)); err == nil {
		t.Error("UpdateHabit should fail for an unknown habit")
	}
}

func TestGetAllHabits_Order(t *testing.T) {
	store := newTestStore(t)

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

func TestSetCompletion_SparseMap(t *testing.T) {
	store := newTestStore(t)
	if err := store.AddHabit(sampleHabit("id-1", "Read", 0)); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}

	if err := store.SetCompletion("id-1", "2024-06-05", true); err != nil {
		t.Fatalf("SetCompletion: %v", err)
	}
	habit, _ := store.GetHabit("id-1")
	if !habit.Completions["2024-06-05"] {
		t.Error("completion not recorded")
	}

	// Clearing removes the entry entirely rather than storing false.
	if err := store.SetCompletion("id-1", "2024-06-05", false); err != nil {
		t.Fatalf("SetCompletion(false): %v", err)
	}
	habit, _ = store.GetHabit("id-1")
	if _, ok := habit.Completions["2024-06-05"]; ok {
		t.Error("cleared completion should be absent from the map")
	}

	if err := store.SetCompletion("missing", "2024-06-05", true); err == nil {
		t.Error("SetCompletion should fail for an unknown habit")
	}
}

func TestPersistence_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habits.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	habit := sampleHabit("id-1", "Read", 0)
	habit.Completions["2024-06-05"] = true
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	got, err := reopened.GetHabit("id-1")
	if err != nil {
		t.Fatalf("GetHabit after reload: %v", err)
	}
	if !got.Completions["2024-06-05"] {
		t.Error("completion lost across reload")
	}
}
