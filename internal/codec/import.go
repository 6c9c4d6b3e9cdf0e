package codec

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"habitgrid/internal/calendar"
	"habitgrid/internal/models"
)

// habitNameBlock matches the `--- name ---` separator written between CSV
// blocks in an all-habits export.
var habitNameBlock = regexp.MustCompile(`--- (.+) ---`)

var monthPrefixes = [...]string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// ImportCSVText decodes pasted text that is expected to be CSV-oriented,
// though an embedded JSON marker always wins when present. Strategies are
// tried in order: single-habit marker, all-habits marker (first habit only),
// free-text CSV heuristics, and finally synthetic sample data. Only empty
// input fails.
func (c *Codec) ImportCSVText(text string, defaultTheme models.Theme, now time.Time) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyInput
	}

	data := models.ImportedHabitData{
		Name:        defaultImportName,
		Theme:       defaultTheme,
		Completions: make(map[string]bool),
	}

	parsed := c.adoptMarkerJSON(text, &data)
	if !parsed {
		if m := habitNameBlock.FindStringSubmatch(text); m != nil {
			data.Name = m[1]
		}
		if strings.Contains(text, ",") {
			parsed = c.parseCSV(text, now, data.Completions)
		}
	}

	if !parsed {
		c.fillSampleData(data.Completions, now)
		return Result{Data: data, Outcome: SampleData}, nil
	}
	return Result{Data: data, Outcome: Imported}, nil
}

// ImportJSONText decodes pasted text that is expected to be JSON-oriented:
// embedded markers first, then the whole text as a bare export payload, then
// heuristic field lookup for foreign JSON shapes, then sample data.
func (c *Codec) ImportJSONText(text string, defaultTheme models.Theme, now time.Time) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyInput
	}

	data := models.ImportedHabitData{
		Name:        defaultImportName,
		Theme:       defaultTheme,
		Completions: make(map[string]bool),
	}

	parsed := c.adoptMarkerJSON(text, &data)
	if !parsed {
		parsed = c.adoptLooseJSON(text, &data)
	}

	if !parsed {
		c.fillSampleData(data.Completions, now)
		return Result{Data: data, Outcome: SampleData}, nil
	}
	return Result{Data: data, Outcome: Imported}, nil
}

// adoptMarkerJSON looks for the embedded export markers and, on a successful
// parse, adopts the payload verbatim for an exact round trip. Multi-habit
// payloads import the first habit only.
func (c *Codec) adoptMarkerJSON(text string, data *models.ImportedHabitData) bool {
	if raw, ok := extractMarker(text, singleMarker); ok {
		var habit habitPayload
		if err := json.Unmarshal([]byte(raw), &habit); err != nil {
			c.logger.Debug("embedded habit JSON did not parse", zap.Error(err))
		} else if c.adoptPayload(habit, data) {
			return true
		}
	}
	if raw, ok := extractMarker(text, allMarker); ok {
		var habits []habitPayload
		if err := json.Unmarshal([]byte(raw), &habits); err != nil {
			c.logger.Debug("embedded habit collection JSON did not parse", zap.Error(err))
		} else if len(habits) > 0 && c.adoptPayload(habits[0], data) {
			return true
		}
	}
	return false
}

// extractMarker returns the substring between the marker and the next blank
// line, which is where the export writer ends the machine-readable section.
func extractMarker(text, marker string) (string, bool) {
	idx := strings.Index(text, marker)
	if idx < 0 {
		return "", false
	}
	start := idx + len(marker)
	end := strings.Index(text[start:], "\n\n")
	if end <= 0 {
		return "", false
	}
	return text[start : start+end], true
}

// adoptPayload copies name, theme, and completions out of a parsed payload.
// It reports whether any completions were actually present; name and theme
// are adopted either way.
func (c *Codec) adoptPayload(payload habitPayload, data *models.ImportedHabitData) bool {
	if payload.Name != "" {
		data.Name = payload.Name
	}
	if models.ValidTheme(payload.Theme) {
		data.Theme = payload.Theme
	}
	if len(payload.Completions) == 0 {
		return false
	}
	for key, done := range payload.Completions {
		data.Completions[key] = done
	}
	return true
}

// adoptLooseJSON parses the whole text as JSON, recognizing the two export
// type discriminants, and falls back to probing the places other trackers
// tend to keep their completion maps.
func (c *Codec) adoptLooseJSON(text string, data *models.ImportedHabitData) bool {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		c.logger.Debug("input is not a JSON object", zap.Error(err))
		return false
	}

	var typ string
	if msg, ok := raw["type"]; ok {
		_ = json.Unmarshal(msg, &typ)
	}

	switch typ {
	case typeSingleHabit:
		var habit habitPayload
		if err := json.Unmarshal([]byte(text), &habit); err != nil {
			return false
		}
		return c.adoptPayload(habit, data)
	case typeAllHabits:
		var coll collectionPayload
		if err := json.Unmarshal([]byte(text), &coll); err != nil || len(coll.Habits) == 0 {
			return false
		}
		return c.adoptPayload(coll.Habits[0], data)
	}

	// Foreign JSON shape. Keep a name if one is present.
	if msg, ok := raw["name"]; ok {
		var name string
		if json.Unmarshal(msg, &name) == nil && name != "" {
			data.Name = name
		}
	}
	paths := [][]string{
		{"completions"},
		{"data", "completions"},
		{"habit", "completions"},
	}
	for _, path := range paths {
		comps, ok := completionsAt(raw, path)
		if !ok || len(comps) == 0 {
			continue
		}
		for key, done := range comps {
			data.Completions[key] = done
		}
		return true
	}
	return false
}

// completionsAt walks a field path through nested JSON objects and converts
// the terminal object to a completion map, keeping only boolean values.
func completionsAt(raw map[string]json.RawMessage, path []string) (map[string]bool, bool) {
	current := raw
	for i, key := range path {
		msg, ok := current[key]
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			var fields map[string]any
			if err := json.Unmarshal(msg, &fields); err != nil {
				return nil, false
			}
			comps := make(map[string]bool, len(fields))
			for day, value := range fields {
				if done, ok := value.(bool); ok {
					comps[day] = done
				}
			}
			return comps, true
		}
		next := make(map[string]json.RawMessage)
		if err := json.Unmarshal(msg, &next); err != nil {
			return nil, false
		}
		current = next
	}
	return nil, false
}

// parseCSV runs the free-text CSV heuristics: find a header line mentioning
// "week" and a weekday, then treat every following comma line with at least
// eight cells as one week of data. Reports whether any row produced a
// completion.
func (c *Codec) parseCSV(text string, now time.Time, completions map[string]bool) bool {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	headerIdx := -1
	for i, line := range lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "week") &&
			(strings.Contains(lower, "sun") || strings.Contains(lower, "mon")) &&
			strings.Contains(lower, ",") {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return false
	}

	parsedRows := 0
	for i := headerIdx + 1; i < len(lines); i++ {
		line := lines[i]
		if !strings.Contains(line, ",") {
			continue
		}
		cells := strings.Split(line, ",")
		if len(cells) < 8 {
			continue
		}

		weekStart, ok := parseWeekStart(cells[0], now)
		if !ok {
			// No recognizable date: place the row relative to today by its
			// distance from the end of the paste, so the history still lands
			// in roughly the right position.
			weekStart = now.AddDate(0, 0, -7*(len(lines)-i))
		}

		rowCompletions := 0
		for dayIdx := 0; dayIdx < 7; dayIdx++ {
			if completedCell(cells[dayIdx+1]) {
				completions[calendar.DayKey(weekStart.AddDate(0, 0, dayIdx))] = true
				rowCompletions++
			}
		}
		if rowCompletions > 0 {
			parsedRows++
		}
	}

	c.logger.Debug("parsed CSV rows", zap.Int("rows", parsedRows))
	return parsedRows > 0
}

// parseWeekStart extracts a week start date from a cell like
// `"4 May - 10 May"`. The CSV encodes no year, so the current one is assumed.
func parseWeekStart(cell string, now time.Time) (time.Time, bool) {
	label := strings.TrimSpace(strings.ReplaceAll(cell, `"`, ""))
	if !strings.Contains(label, "-") {
		return time.Time{}, false
	}
	datePart := strings.TrimSpace(strings.SplitN(label, "-", 2)[0])
	fields := strings.Fields(datePart)
	if len(fields) < 2 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(fields[0])
	if err != nil {
		return time.Time{}, false
	}
	monthTok := strings.ToLower(fields[1])
	for i, prefix := range monthPrefixes {
		if strings.HasPrefix(monthTok, prefix) {
			return time.Date(now.Year(), time.Month(i+1), day, 0, 0, 0, 0, time.Local), true
		}
	}
	return time.Time{}, false
}

// completedCell interprets a CSV cell as a done flag. Matching is exact and
// case-sensitive on purpose: these are the values our own exports and common
// spreadsheet conventions produce.
func completedCell(cell string) bool {
	switch strings.TrimSpace(cell) {
	case "1", "true", "yes", "y", "x":
		return true
	}
	return false
}

// fillSampleData marks a deterministic alternating pattern across the full
// display window (even-indexed weeks Sun/Tue/Thu/Sat, odd weeks Mon/Wed/Fri)
// plus yesterday, today, and tomorrow, so a paste that could not be decoded
// still renders a recognizable grid instead of an error.
func (c *Codec) fillSampleData(completions map[string]bool, now time.Time) {
	weeks := calendar.Window(now, calendar.DisplayWeeks)
	for weekIdx, week := range weeks {
		pattern := []int{1, 3, 5}
		if weekIdx%2 == 0 {
			pattern = []int{0, 2, 4, 6}
		}
		for _, dayIdx := range pattern {
			completions[calendar.DayKey(week[dayIdx])] = true
		}
	}

	completions[calendar.DayKey(now.AddDate(0, 0, -1))] = true
	completions[calendar.DayKey(now)] = true
	completions[calendar.DayKey(now.AddDate(0, 0, 1))] = true

	c.logger.Info("no importable data found, substituting sample completions",
		zap.Int("completions", len(completions)))
}
