package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Theme is the display color tag for a habit. It has no effect on any
// computation; it only travels through storage and interchange payloads.
type Theme string

const (
	ThemeRed   Theme = "red"
	ThemeBlue  Theme = "blue"
	ThemeGreen Theme = "green"
)

// DefaultTheme is used when an imported payload carries no theme.
const DefaultTheme = ThemeBlue

const (
	MinNameLength = 1
	MaxNameLength = 30
)

// Habit represents a tracked practice with its full completion history.
// Completions is a sparse map from day key (YYYY-MM-DD) to done flag:
// an absent key means "not completed", never "unknown".
type Habit struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Theme       Theme           `json:"theme"`
	CreatedAt   time.Time       `json:"created_at"`
	Completions map[string]bool `json:"completions"`
	Order       int             `json:"order"`
}

// CompletedOn reports whether the habit was done on the given day key.
func (h Habit) CompletedOn(day string) bool {
	return h.Completions[day]
}

// CompletedCount returns the number of days marked done.
func (h Habit) CompletedCount() int {
	count := 0
	for _, done := range h.Completions {
		if done {
			count++
		}
	}
	return count
}

// ImportedHabitData is the transient result of decoding interchange text.
// It carries no identity or order; the caller turns it into a Habit.
type ImportedHabitData struct {
	Name        string          `json:"name"`
	Theme       Theme           `json:"theme"`
	Completions map[string]bool `json:"completions"`
}

// ValidTheme reports whether t is one of the recognized theme tags.
func ValidTheme(t Theme) bool {
	switch t {
	case ThemeRed, ThemeBlue, ThemeGreen:
		return true
	}
	return false
}

// ParseTheme converts user input to a Theme, case-insensitively.
func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if !ValidTheme(t) {
		return "", fmt.Errorf("invalid theme %q (must be red, blue, or green)", s)
	}
	return t, nil
}

// ValidateName enforces the 1-30 character habit name constraint. Length is
// counted in runes so non-ASCII names are not penalized for their encoding.
func ValidateName(name string) error {
	length := utf8.RuneCountInString(strings.TrimSpace(name))
	if length < MinNameLength {
		return fmt.Errorf("habit name must not be empty")
	}
	if length > MaxNameLength {
		return fmt.Errorf("habit name must be at most %d characters", MaxNameLength)
	}
	return nil
}
