package codec

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"habitgrid/internal/calendar"
	"habitgrid/internal/models"
)

// csvHeader matches the column order of calendar.Week.
const csvHeader = "Week,Sunday,Monday,Tuesday,Wednesday,Thursday,Friday,Saturday"

// HabitCSV renders one habit's recent weeks (52 by default) as CSV, oldest
// week first. Each row starts with a quoted human-readable date range followed
// by seven 0/1 cells, Sunday through Saturday.
func (c *Codec) HabitCSV(habit models.Habit, now time.Time) string {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')

	weeks := calendar.Window(now, c.weeks)
	for i := len(weeks) - 1; i >= 0; i-- {
		week := weeks[i]
		b.WriteString(weekLabel(week))
		for _, day := range week {
			if habit.CompletedOn(calendar.DayKey(day)) {
				b.WriteString(",1")
			} else {
				b.WriteString(",0")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// HabitJSON renders the pure single-habit JSON export, pretty-printed for
// saving as a .json file.
func (c *Codec) HabitJSON(habit models.Habit, now time.Time) (string, error) {
	payload := singlePayload{
		Name:        habit.Name,
		Theme:       habit.Theme,
		Completions: habit.Completions,
		ExportDate:  now.Format(time.RFC3339),
		Type:        typeSingleHabit,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize habit: %w", err)
	}
	return string(data), nil
}

// AllHabitsJSON renders the pure collection JSON export.
func (c *Codec) AllHabitsJSON(habits []models.Habit, now time.Time) (string, error) {
	payload := collectionPayload{
		Habits:     habitPayloads(habits),
		ExportDate: now.Format(time.RFC3339),
		Type:       typeAllHabits,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize habits: %w", err)
	}
	return string(data), nil
}

// HabitClipboardPayload builds the combined export written to the clipboard:
// a compact machine-readable JSON line, a blank line, then the CSV. Import
// prefers the JSON for an exact round trip while the CSV stays readable.
func (c *Codec) HabitClipboardPayload(habit models.Habit, now time.Time) (string, error) {
	compact, err := json.Marshal(habitPayload{
		Name:        habit.Name,
		Theme:       habit.Theme,
		Completions: habit.Completions,
	})
	if err != nil {
		return "", fmt.Errorf("failed to serialize habit: %w", err)
	}
	return singleMarker + string(compact) + "\n\n" + c.HabitCSV(habit, now), nil
}

// AllHabitsClipboardPayload builds the combined multi-habit export: the
// marker line with a JSON array, then a named CSV block per habit.
func (c *Codec) AllHabitsClipboardPayload(habits []models.Habit, now time.Time) (string, error) {
	compact, err := json.Marshal(habitPayloads(habits))
	if err != nil {
		return "", fmt.Errorf("failed to serialize habits: %w", err)
	}

	var b strings.Builder
	b.WriteString(allMarker)
	b.Write(compact)
	b.WriteString("\n\n")
	for _, habit := range habits {
		b.WriteString(fmt.Sprintf("\n\n--- %s ---\n", habit.Name))
		b.WriteString(c.HabitCSV(habit, now))
	}
	return b.String(), nil
}

func habitPayloads(habits []models.Habit) []habitPayload {
	payloads := make([]habitPayload, 0, len(habits))
	for _, h := range habits {
		payloads = append(payloads, habitPayload{
			Name:        h.Name,
			Theme:       h.Theme,
			Completions: h.Completions,
		})
	}
	return payloads
}

// weekLabel formats a row label like `"4 May - 10 May"`.
func weekLabel(week calendar.Week) string {
	return fmt.Sprintf("%q", week.Sunday().Format("2 Jan")+" - "+week.Saturday().Format("2 Jan"))
}
