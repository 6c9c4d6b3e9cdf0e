// Package analytics derives streak and completion-rate statistics from a
// habit's sparse completion map.
package analytics

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"habitgrid/internal/calendar"
	"habitgrid/internal/models"
)

type Calculator struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger}
}

// CurrentStreak returns the length of the unbroken run of completed days
// ending at today or, if today is not yet marked, at yesterday. Today being
// unmarked never breaks a streak that ended yesterday; it just leaves today
// out of the count.
func (c *Calculator) CurrentStreak(completions map[string]bool, now time.Time) int {
	start := now
	if !completions[calendar.DayKey(now)] {
		yesterday := now.AddDate(0, 0, -1)
		if !completions[calendar.DayKey(yesterday)] {
			return 0
		}
		start = yesterday
	}

	streak := 0
	for day := start; completions[calendar.DayKey(day)]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// LongestStreak returns the length of the longest run of consecutive
// completed days anywhere in the habit's history.
func (c *Calculator) LongestStreak(completions map[string]bool) int {
	days := completedDays(completions)
	if len(days) == 0 {
		return 0
	}
	if len(days) == 1 {
		return 1
	}

	longest := 0
	run := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			run++
		} else {
			if run > longest {
				longest = run
			}
			run = 1
		}
	}
	// The run in progress when the scan ends may be the longest.
	if run > longest {
		longest = run
	}
	return longest
}

// WeeklyCompletionRate returns the percentage of days completed so far this
// week, where "this week" is Sunday through today inclusive. The denominator
// is the number of elapsed days, not 7, so a habit done every day so far
// reads 100% even mid-week.
func (c *Calculator) WeeklyCompletionRate(completions map[string]bool, now time.Time) int {
	elapsed := int(now.Weekday()) + 1
	if elapsed <= 0 {
		return 0
	}

	sunday := now.AddDate(0, 0, -int(now.Weekday()))
	completed := 0
	for i := 0; i < elapsed; i++ {
		if completions[calendar.DayKey(sunday.AddDate(0, 0, i))] {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(elapsed) * 100))
}

// OverallCompletionRate returns completed days as a percentage of days since
// the habit was created, inclusive of both the creation day and today.
// A habit with a zero or future creation date counts at least one day.
func (c *Calculator) OverallCompletionRate(habit models.Habit, now time.Time) int {
	if habit.CreatedAt.IsZero() {
		c.logger.Warn("habit has no creation date",
			zap.String("habit", habit.Name))
		return 0
	}

	created := midnight(habit.CreatedAt)
	today := midnight(now)

	// Round so DST-shifted 23/25-hour days still count as one day.
	days := int(math.Round(today.Sub(created).Hours()/24)) + 1
	if days < 1 {
		days = 1
	}

	completed := habit.CompletedCount()
	if completed > days {
		// More completions than elapsed days means the map was corrupted or
		// imported from a foreign source; clamp and flag it.
		c.logger.Warn("completion count exceeds elapsed days",
			zap.String("habit", habit.Name),
			zap.Int("completed", completed),
			zap.Int("elapsed_days", days))
		completed = days
	}

	pct := int(math.Round(float64(completed) / float64(days) * 100))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}

// midnight truncates an instant to its local calendar date.
func midnight(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// completedDays extracts the dates marked true, sorted ascending.
func completedDays(completions map[string]bool) []time.Time {
	days := make([]time.Time, 0, len(completions))
	for key, done := range completions {
		if !done {
			continue
		}
		day, err := calendar.ParseDayKey(key)
		if err != nil {
			continue
		}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
