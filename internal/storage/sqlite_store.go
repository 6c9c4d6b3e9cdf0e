package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"habitgrid/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS habits (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	theme      TEXT NOT NULL,
	created_at TEXT NOT NULL,
	position   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS completions (
	habit_id TEXT NOT NULL,
	day      TEXT NOT NULL,
	PRIMARY KEY (habit_id, day)
);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'habitgrid init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema creation is idempotent; running it on load covers databases
	// created by older versions.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to validate schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(
		"SELECT id, name, theme, created_at, position FROM habits WHERE id = ?", id)
	habit, err := s.scanHabit(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Habit{}, fmt.Errorf("habit not found: %s", id)
		}
		return models.Habit{}, err
	}
	return habit, nil
}

func (s *SQLiteStore) GetHabitByName(name string) (models.Habit, error) {
	row := s.db.QueryRow(
		"SELECT id, name, theme, created_at, position FROM habits WHERE name = ?", name)
	habit, err := s.scanHabit(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Habit{}, fmt.Errorf("habit not found: %s", name)
		}
		return models.Habit{}, err
	}
	return habit, nil
}

func (s *SQLiteStore) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(
		"SELECT id, name, theme, created_at, position FROM habits ORDER BY position, created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		habit, err := scanHabitRow(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	// Load completions after the habit cursor is closed.
	for i := range habits {
		if err := s.loadCompletions(&habits[i]); err != nil {
			return nil, err
		}
	}

	return habits, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanHabit(row rowScanner) (models.Habit, error) {
	habit, err := scanHabitRow(row)
	if err != nil {
		return models.Habit{}, err
	}
	if err := s.loadCompletions(&habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

func scanHabitRow(row rowScanner) (models.Habit, error) {
	var habit models.Habit
	var theme, createdAt string

	if err := row.Scan(&habit.ID, &habit.Name, &theme, &createdAt, &habit.Order); err != nil {
		return models.Habit{}, err
	}

	habit.Theme = models.Theme(theme)
	parsed, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("invalid created_at for habit %s: %w", habit.ID, err)
	}
	habit.CreatedAt = parsed

	return habit, nil
}

func (s *SQLiteStore) loadCompletions(habit *models.Habit) error {
	habit.Completions = make(map[string]bool)

	days, err := s.db.Query("SELECT day FROM completions WHERE habit_id = ?", habit.ID)
	if err != nil {
		return err
	}
	defer days.Close()
	for days.Next() {
		var day string
		if err := days.Scan(&day); err != nil {
			return err
		}
		habit.Completions[day] = true
	}
	return days.Err()
}

func (s *SQLiteStore) UpdateHabit(habit models.Habit) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT OR REPLACE INTO habits (id, name, theme, created_at, position) VALUES (?, ?, ?, ?, ?)",
		habit.ID, habit.Name, string(habit.Theme), habit.CreatedAt.Format(time.RFC3339), habit.Order,
	)
	if err != nil {
		return err
	}

	// Rewrite the completion rows to match the in-memory map.
	if _, err := tx.Exec("DELETE FROM completions WHERE habit_id = ?", habit.ID); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO completions (habit_id, day) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for day, done := range habit.Completions {
		if !done {
			continue
		}
		if _, err := stmt.Exec(habit.ID, day); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) DeleteHabit(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("habit not found: %s", id)
	}

	if _, err := tx.Exec("DELETE FROM completions WHERE habit_id = ?", id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) SetCompletion(habitID, day string, done bool) error {
	var exists int
	err := s.db.QueryRow("SELECT COUNT(*) FROM habits WHERE id = ?", habitID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("habit not found: %s", habitID)
	}

	if done {
		_, err = s.db.Exec(
			"INSERT OR REPLACE INTO completions (habit_id, day) VALUES (?, ?)", habitID, day)
	} else {
		_, err = s.db.Exec(
			"DELETE FROM completions WHERE habit_id = ? AND day = ?", habitID, day)
	}
	return err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
