package store

import "time"

// streakLookback caps the backward walk of the streak calculation.
const streakLookback = 365

// Window days are named positionally, Sunday first: index 0 of a weekly
// window is reported as "Sunday" no matter which weekday the anchor
// actually falls on.
var weekDays = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

type dayCount struct {
	total     int
	completed int
}

func countByDay(tasks []Task) map[string]dayCount {
	counts := make(map[string]dayCount, len(tasks))
	for _, t := range tasks {
		c := counts[t.Date]
		c.total++
		if t.Completed {
			c.completed++
		}
		counts[t.Date] = c
	}
	return counts
}

// CurrentStreak walks backward from today and counts consecutive days
// satisfying the completion rule: in strict mode every task of the day
// must be completed, otherwise at least one. The walk stops at the first
// day without tasks — today having none yields 0 regardless of history —
// and a day that breaks the chain is never itself counted. A read failure
// degrades to 0.
func (s *Store) CurrentStreak() int {
	tasks, err := s.loadTasks()
	if err != nil {
		s.log.Error("current streak", "err", err)
		return 0
	}
	return streakLength(tasks, s.GetSettings().StrictStreakMode, time.Now())
}

func streakLength(tasks []Task, strict bool, today time.Time) int {
	counts := countByDay(tasks)

	streak := 0
	for offset := 0; offset < streakLookback; offset++ {
		day := today.AddDate(0, 0, -offset).Format(dayFormat)
		c := counts[day]
		if c.total == 0 {
			break
		}
		if strict {
			if c.completed != c.total {
				break
			}
		} else if c.completed == 0 {
			break
		}
		streak++
	}
	return streak
}

func zeroWeeklyStats() WeeklyStats {
	return WeeklyStats{
		DailyCompletions:  make([]int, 7),
		MostProductiveDay: "Monday",
	}
}

// WeeklyStats aggregates the 7 consecutive days starting at start. The
// most productive day is the first one with the strictly greatest
// completed count; with zero completions everywhere it falls back to
// "Monday". CurrentStreak is always as of today, independent of the
// queried window. A read failure degrades to the all-zero result.
func (s *Store) WeeklyStats(start time.Time) WeeklyStats {
	tasks, err := s.loadTasks()
	if err != nil {
		s.log.Error("weekly stats", "err", err)
		return zeroWeeklyStats()
	}

	counts := countByDay(tasks)
	stats := zeroWeeklyStats()
	best := 0

	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i).Format(dayFormat)
		c := counts[day]

		stats.DailyCompletions[i] = c.completed
		stats.TotalTasks += c.total
		stats.CompletedTasks += c.completed

		if c.completed > best {
			best = c.completed
			stats.MostProductiveDay = weekDays[i]
		}
	}

	stats.IncompleteTasks = stats.TotalTasks - stats.CompletedTasks
	stats.CurrentStreak = s.CurrentStreak()
	return stats
}
