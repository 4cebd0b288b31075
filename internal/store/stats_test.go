package store

import (
	"testing"
	"time"
)

// day returns today+offset as a "YYYY-MM-DD" string.
func day(offset int) string {
	return time.Now().AddDate(0, 0, offset).Format(dayFormat)
}

func seedTask(t *testing.T, s *Store, date string, completed bool) *Task {
	t.Helper()
	task := mustAddTask(t, s, NewTask{Title: "study block", Date: date, Subject: "math"})
	if completed {
		done := true
		if _, err := s.UpdateTask(task.ID, TaskPatch{Completed: &done}); err != nil {
			t.Fatalf("complete task: %v", err)
		}
	}
	return task
}

func setStrictMode(t *testing.T, s *Store, strict bool) {
	t.Helper()
	if _, err := s.UpdateSettings(SettingsPatch{StrictStreakMode: &strict}); err != nil {
		t.Fatalf("set strict mode: %v", err)
	}
}

// ============================================================
// Streak
// ============================================================

func TestStreakNormalMode(t *testing.T) {
	s := newTestStore(t)
	// Today: one task, completed. Yesterday: two tasks, one completed.
	// Day before: all completed. Normal mode counts all three days.
	seedTask(t, s, day(0), true)
	seedTask(t, s, day(-1), true)
	seedTask(t, s, day(-1), false)
	seedTask(t, s, day(-2), true)
	seedTask(t, s, day(-2), true)

	if got := s.CurrentStreak(); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}
}

func TestStreakStrictMode(t *testing.T) {
	s := newTestStore(t)
	seedTask(t, s, day(0), true)
	seedTask(t, s, day(-1), true)
	seedTask(t, s, day(-1), false)
	seedTask(t, s, day(-2), true)
	seedTask(t, s, day(-2), true)

	setStrictMode(t, s, true)

	// Yesterday has an incomplete task, so the walk stops there and the
	// fully-completed day before it is never reached.
	if got := s.CurrentStreak(); got != 1 {
		t.Fatalf("expected streak 1 in strict mode, got %d", got)
	}
}

func TestStreakEmptyTodayHaltsWalk(t *testing.T) {
	s := newTestStore(t)
	// Yesterday fully completed, but today has no tasks at all. The walk
	// never skips an empty day, so the streak is 0.
	seedTask(t, s, day(-1), true)
	seedTask(t, s, day(-2), true)

	if got := s.CurrentStreak(); got != 0 {
		t.Fatalf("expected streak 0 with empty today, got %d", got)
	}
}

func TestStreakIncompleteTodayNotCounted(t *testing.T) {
	s := newTestStore(t)
	seedTask(t, s, day(0), false)
	seedTask(t, s, day(-1), true)

	// Today breaks the chain and is not itself counted.
	if got := s.CurrentStreak(); got != 0 {
		t.Fatalf("expected streak 0, got %d", got)
	}
}

func TestStreakStopsAtGap(t *testing.T) {
	s := newTestStore(t)
	seedTask(t, s, day(0), true)
	seedTask(t, s, day(-1), true)
	// day(-2) empty
	seedTask(t, s, day(-3), true)

	if got := s.CurrentStreak(); got != 2 {
		t.Fatalf("expected streak 2, got %d", got)
	}
}

func TestStreakCappedAtLookback(t *testing.T) {
	tasks := make([]Task, 0, streakLookback+30)
	today := time.Now()
	for i := 0; i < streakLookback+30; i++ {
		tasks = append(tasks, Task{
			ID:        "t",
			Date:      today.AddDate(0, 0, -i).Format(dayFormat),
			Completed: true,
		})
	}

	if got := streakLength(tasks, false, today); got != streakLookback {
		t.Fatalf("expected streak capped at %d, got %d", streakLookback, got)
	}
}

func TestStreakCrossesMonthBoundary(t *testing.T) {
	// Anchor the walk on March 1st so day -1 is the last day of February.
	today := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	tasks := []Task{
		{ID: "1", Date: "2026-03-01", Completed: true},
		{ID: "2", Date: "2026-02-28", Completed: true},
		{ID: "3", Date: "2026-02-27", Completed: true},
	}

	if got := streakLength(tasks, false, today); got != 3 {
		t.Fatalf("expected streak 3 across month boundary, got %d", got)
	}
}

// ============================================================
// Weekly stats
// ============================================================

func TestWeeklyStatsCounts(t *testing.T) {
	s := newTestStore(t)
	// Use a window far in the past so today's streak is independent.
	start := time.Now().AddDate(0, 0, -60)
	d := func(offset int) string { return start.AddDate(0, 0, offset).Format(dayFormat) }

	seedTask(t, s, d(0), true)
	seedTask(t, s, d(0), false)
	seedTask(t, s, d(4), true)
	seedTask(t, s, d(4), true)
	seedTask(t, s, d(6), false)

	stats := s.WeeklyStats(start)
	if stats.TotalTasks != 5 || stats.CompletedTasks != 3 || stats.IncompleteTasks != 2 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	want := []int{1, 0, 0, 0, 2, 0, 0}
	for i, n := range want {
		if stats.DailyCompletions[i] != n {
			t.Fatalf("day %d: expected %d completions, got %d", i, n, stats.DailyCompletions[i])
		}
	}
	// Offset 4 has the strictly greatest count; Sunday-first naming.
	if stats.MostProductiveDay != "Thursday" {
		t.Fatalf("expected Thursday, got %s", stats.MostProductiveDay)
	}
	if stats.CurrentStreak != 0 {
		t.Fatalf("no tasks today, expected streak 0, got %d", stats.CurrentStreak)
	}
}

func TestWeeklyStatsTieKeepsEarliestDay(t *testing.T) {
	s := newTestStore(t)
	start := time.Now().AddDate(0, 0, -60)
	d := func(offset int) string { return start.AddDate(0, 0, offset).Format(dayFormat) }

	// Offsets 2 (Tuesday) and 3 (Wednesday) both have 3 completions.
	for i := 0; i < 3; i++ {
		seedTask(t, s, d(2), true)
		seedTask(t, s, d(3), true)
	}

	stats := s.WeeklyStats(start)
	if stats.MostProductiveDay != "Tuesday" {
		t.Fatalf("tie must keep the earliest day, got %s", stats.MostProductiveDay)
	}
}

func TestWeeklyStatsEmptyWindow(t *testing.T) {
	s := newTestStore(t)
	stats := s.WeeklyStats(time.Now().AddDate(0, 0, -60))

	if stats.TotalTasks != 0 || stats.CompletedTasks != 0 || stats.IncompleteTasks != 0 {
		t.Fatalf("expected all-zero counts: %+v", stats)
	}
	for i, n := range stats.DailyCompletions {
		if n != 0 {
			t.Fatalf("day %d: expected 0 completions, got %d", i, n)
		}
	}
	if stats.MostProductiveDay != "Monday" {
		t.Fatalf("expected Monday fallback, got %s", stats.MostProductiveDay)
	}
}

func TestWeeklyStatsStreakIsAlwaysToday(t *testing.T) {
	s := newTestStore(t)
	seedTask(t, s, day(0), true)
	seedTask(t, s, day(-1), true)

	// The queried window is in the past but the streak is still as of now.
	stats := s.WeeklyStats(time.Now().AddDate(0, 0, -60))
	if stats.CurrentStreak != 2 {
		t.Fatalf("expected streak 2 regardless of window, got %d", stats.CurrentStreak)
	}
}

func TestWeeklyStatsIgnoresTasksOutsideWindow(t *testing.T) {
	s := newTestStore(t)
	start := time.Now().AddDate(0, 0, -60)

	seedTask(t, s, start.AddDate(0, 0, -1).Format(dayFormat), true) // day before window
	seedTask(t, s, start.AddDate(0, 0, 7).Format(dayFormat), true)  // day after window

	stats := s.WeeklyStats(start)
	if stats.TotalTasks != 0 {
		t.Fatalf("tasks outside the window leaked in: %+v", stats)
	}
}
