// Package codec converts habit completion histories to and from the two
// interchange formats (JSON and CSV) carried over the clipboard. Import is
// deliberately forgiving: text that did not originate from this application
// is decoded on a best-effort basis, and when nothing usable is found the
// result is tagged synthetic sample data rather than an error.
package codec

import (
	"errors"

	"go.uber.org/zap"

	"habitgrid/internal/models"
)

const (
	// singleMarker prefixes the machine-readable JSON embedded in a
	// single-habit clipboard export.
	singleMarker = "HABIT_JSON_DATA:"
	// allMarker prefixes the JSON array embedded in an all-habits export.
	allMarker = "ALL_HABITS_JSON_DATA:"

	// exportWeeks is the CSV export range. Narrower than the 104-week
	// display window on purpose: one year of rows keeps the CSV pasteable
	// into a spreadsheet.
	exportWeeks = 52

	typeSingleHabit = "single_habit"
	typeAllHabits   = "all_habits"

	defaultImportName = "Imported Habit"
)

// ErrEmptyInput is returned when the pasted text is empty or whitespace.
// It is the only terminal failure of an import; everything else degrades.
var ErrEmptyInput = errors.New("no data found in clipboard")

// Outcome distinguishes a real import from the sample-data fallback so
// callers can warn the user instead of silently inserting fabricated history.
type Outcome int

const (
	// Imported means at least one completion was decoded from the input.
	Imported Outcome = iota
	// SampleData means nothing was decodable and a synthetic completion
	// map was generated in place of real data.
	SampleData
)

func (o Outcome) String() string {
	if o == SampleData {
		return "sample_data"
	}
	return "imported"
}

// Result is the output of an import: the decoded habit data plus the
// outcome tag.
type Result struct {
	Data    models.ImportedHabitData
	Outcome Outcome
}

type Codec struct {
	logger *zap.Logger
	weeks  int
}

func New(logger *zap.Logger) *Codec {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Codec{logger: logger, weeks: exportWeeks}
}

// SetExportWeeks overrides the CSV export range. Non-positive values are
// ignored.
func (c *Codec) SetExportWeeks(n int) {
	if n > 0 {
		c.weeks = n
	}
}

// habitPayload is the habit fragment shared by all JSON export shapes.
type habitPayload struct {
	Name        string          `json:"name"`
	Theme       models.Theme    `json:"theme"`
	Completions map[string]bool `json:"completions"`
}

type singlePayload struct {
	Name        string          `json:"name"`
	Theme       models.Theme    `json:"theme"`
	Completions map[string]bool `json:"completions"`
	ExportDate  string          `json:"exportDate"`
	Type        string          `json:"type"`
}

type collectionPayload struct {
	Habits     []habitPayload `json:"habits"`
	ExportDate string         `json:"exportDate"`
	Type       string         `json:"type"`
}
