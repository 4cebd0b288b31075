package store

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// corruptBlob overwrites a namespace with invalid JSON to exercise the
// read-failure paths.
func corruptBlob(t *testing.T, s *Store, key string) {
	t.Helper()
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, '{not json') ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key,
	)
	if err != nil {
		t.Fatalf("corrupt %s: %v", key, err)
	}
}

func mustAddTask(t *testing.T, s *Store, nt NewTask) *Task {
	t.Helper()
	task, err := s.AddTask(nt)
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	return task
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/planr.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}

	task := mustAddTask(t, s, NewTask{Title: "read ch. 4", Date: "2026-03-01", Subject: "math"})
	s.Close()

	// Reopen — data persists and migration does not rerun destructively.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	tasks := s2.ListTasks()
	if len(tasks) != 1 || tasks[0].ID != task.ID {
		t.Fatalf("expected reloaded task %s, got %+v", task.ID, tasks)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Tasks
// ============================================================

func TestAddTask(t *testing.T) {
	s := newTestStore(t)
	task := mustAddTask(t, s, NewTask{
		Title:   "flashcards",
		Date:    "2026-09-01",
		Time:    "14:30",
		Subject: "biology",
	})

	if task.ID == "" {
		t.Fatal("expected assigned id")
	}
	if !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Fatalf("createdAt %v != updatedAt %v at creation", task.CreatedAt, task.UpdatedAt)
	}
	if task.Priority != PriorityNone || task.Reminder != ReminderNone || task.Repeat != RepeatNone {
		t.Fatalf("expected enum defaults, got %+v", task)
	}
	if task.Completed {
		t.Fatal("new task should not be completed")
	}
}

func TestAddTaskIDsUnique(t *testing.T) {
	s := newTestStore(t)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		task := mustAddTask(t, s, NewTask{Title: "drill", Date: "2026-09-01"})
		if seen[task.ID] {
			t.Fatalf("duplicate id %s on iteration %d", task.ID, i)
		}
		seen[task.ID] = true
	}
	if len(s.ListTasks()) != 50 {
		t.Fatalf("expected 50 tasks, got %d", len(s.ListTasks()))
	}
}

func TestAddTaskValidation(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.AddTask(NewTask{Title: "", Date: "2026-09-01"}); err == nil {
		t.Fatal("expected error for empty title")
	}
	if _, err := s.AddTask(NewTask{Title: "x", Date: "not-a-day"}); err == nil {
		t.Fatal("expected error for malformed date")
	}
	if _, err := s.AddTask(NewTask{Title: "x", Date: "2026-09-01", Time: "25:99"}); err == nil {
		t.Fatal("expected error for malformed time")
	}
	if len(s.ListTasks()) != 0 {
		t.Fatal("rejected adds must not persist anything")
	}
}

func TestUpdateTaskMerges(t *testing.T) {
	s := newTestStore(t)
	task := mustAddTask(t, s, NewTask{
		Title:       "outline essay",
		Description: "intro only",
		Date:        "2026-09-02",
		Subject:     "history",
	})

	time.Sleep(5 * time.Millisecond)

	done := true
	prio := PriorityHigh
	updated, err := s.UpdateTask(task.ID, TaskPatch{Completed: &done, Priority: &prio})
	if err != nil {
		t.Fatal(err)
	}
	if updated == nil {
		t.Fatal("expected updated task, got not-found")
	}
	if !updated.Completed || updated.Priority != PriorityHigh {
		t.Fatalf("patched fields not applied: %+v", updated)
	}
	// Unspecified fields keep their prior value.
	if updated.Title != "outline essay" || updated.Description != "intro only" || updated.Subject != "history" {
		t.Fatalf("merge lost fields: %+v", updated)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Fatalf("updatedAt %v not refreshed past createdAt %v", updated.UpdatedAt, updated.CreatedAt)
	}
}

func TestUpdateTaskUnknownID(t *testing.T) {
	s := newTestStore(t)
	mustAddTask(t, s, NewTask{Title: "a", Date: "2026-09-01"})

	updated, err := s.UpdateTask("999", TaskPatch{})
	if err != nil {
		t.Fatal(err)
	}
	if updated != nil {
		t.Fatalf("expected nil for unknown id, got %+v", updated)
	}

	tasks := s.ListTasks()
	if len(tasks) != 1 || tasks[0].Title != "a" {
		t.Fatalf("store changed by not-found update: %+v", tasks)
	}
}

func TestUpdateTaskValidation(t *testing.T) {
	s := newTestStore(t)
	task := mustAddTask(t, s, NewTask{Title: "a", Date: "2026-09-01"})

	bad := ""
	if _, err := s.UpdateTask(task.ID, TaskPatch{Title: &bad}); err == nil {
		t.Fatal("expected error when patching title to empty")
	}
	if got := s.ListTasks()[0].Title; got != "a" {
		t.Fatalf("rejected patch persisted: title %q", got)
	}
}

func TestDeleteTask(t *testing.T) {
	s := newTestStore(t)
	task := mustAddTask(t, s, NewTask{Title: "a", Date: "2026-09-01"})
	mustAddTask(t, s, NewTask{Title: "b", Date: "2026-09-01"})

	ok, err := s.DeleteTask(task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected delete success")
	}
	tasks := s.ListTasks()
	if len(tasks) != 1 || tasks[0].Title != "b" {
		t.Fatalf("unexpected tasks after delete: %+v", tasks)
	}
}

func TestDeleteTaskUnknownID(t *testing.T) {
	s := newTestStore(t)
	mustAddTask(t, s, NewTask{Title: "a", Date: "2026-09-01"})

	ok, err := s.DeleteTask("does-not-exist")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("deleting an absent id still reports success")
	}
	if len(s.ListTasks()) != 1 {
		t.Fatal("task count changed by no-op delete")
	}
}

func TestTasksForDateFiltersAndSorts(t *testing.T) {
	s := newTestStore(t)
	mustAddTask(t, s, NewTask{Title: "untimed-1", Date: "2026-09-03"})
	mustAddTask(t, s, NewTask{Title: "late", Date: "2026-09-03", Time: "18:00"})
	mustAddTask(t, s, NewTask{Title: "other day", Date: "2026-09-04", Time: "08:00"})
	mustAddTask(t, s, NewTask{Title: "untimed-2", Date: "2026-09-03"})
	mustAddTask(t, s, NewTask{Title: "early", Date: "2026-09-03", Time: "07:15"})

	got := s.TasksForDate("2026-09-03")
	want := []string{"early", "late", "untimed-1", "untimed-2"}
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(got))
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Fatalf("position %d: expected %q, got %q", i, title, got[i].Title)
		}
	}
}

func TestListTasksIdempotent(t *testing.T) {
	s := newTestStore(t)
	mustAddTask(t, s, NewTask{Title: "a", Date: "2026-09-01"})
	mustAddTask(t, s, NewTask{Title: "b", Date: "2026-09-02"})

	first := s.ListTasks()
	second := s.ListTasks()
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("element %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestClearAllTasks(t *testing.T) {
	s := newTestStore(t)
	mustAddTask(t, s, NewTask{Title: "a", Date: "2026-09-01"})
	mustAddTask(t, s, NewTask{Title: "b", Date: "2026-09-02"})

	if err := s.ClearAllTasks(); err != nil {
		t.Fatal(err)
	}
	if got := s.ListTasks(); len(got) != 0 {
		t.Fatalf("expected empty store, got %+v", got)
	}
}

// ============================================================
// Error policy
// ============================================================

func TestReadsSoftFailOnCorruptBlob(t *testing.T) {
	s := newTestStore(t)
	corruptBlob(t, s, keyTasks)
	corruptBlob(t, s, keySettings)
	corruptBlob(t, s, keySessions)

	if got := s.ListTasks(); len(got) != 0 {
		t.Fatalf("ListTasks should degrade to empty, got %+v", got)
	}
	if got := s.TasksForDate("2026-09-01"); len(got) != 0 {
		t.Fatalf("TasksForDate should degrade to empty, got %+v", got)
	}
	if got := s.GetSettings(); got != DefaultSettings() {
		t.Fatalf("GetSettings should degrade to defaults, got %+v", got)
	}
	if got := s.ListSessions(); len(got) != 0 {
		t.Fatalf("ListSessions should degrade to empty, got %+v", got)
	}
	if got := s.CurrentStreak(); got != 0 {
		t.Fatalf("CurrentStreak should degrade to 0, got %d", got)
	}
	stats := s.WeeklyStats(time.Now())
	if stats.TotalTasks != 0 || stats.MostProductiveDay != "Monday" || stats.CurrentStreak != 0 {
		t.Fatalf("WeeklyStats should degrade to zero result, got %+v", stats)
	}
}

func TestWritesPropagateOnCorruptBlob(t *testing.T) {
	s := newTestStore(t)
	mustAddTask(t, s, NewTask{Title: "keep me", Date: "2026-09-01"})
	corruptBlob(t, s, keyTasks)

	if _, err := s.AddTask(NewTask{Title: "x", Date: "2026-09-01"}); err == nil {
		t.Fatal("AddTask must surface the failure")
	}
	if _, err := s.UpdateTask("1", TaskPatch{}); err == nil {
		t.Fatal("UpdateTask must surface the failure")
	}
	if ok, err := s.DeleteTask("1"); err == nil || ok {
		t.Fatal("DeleteTask must surface the failure instead of rewriting the blob")
	}
}

// ============================================================
// Settings
// ============================================================

func TestGetSettingsDefaults(t *testing.T) {
	s := newTestStore(t)
	cfg := s.GetSettings()
	if cfg.DailyReminderTime != "09:00" || cfg.StrictStreakMode || cfg.Theme != ThemeSystem {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestUpdateSettingsMerges(t *testing.T) {
	s := newTestStore(t)

	strict := true
	cfg, err := s.UpdateSettings(SettingsPatch{StrictStreakMode: &strict})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.StrictStreakMode {
		t.Fatal("strict mode not applied")
	}
	if cfg.DailyReminderTime != "09:00" || cfg.Theme != ThemeSystem {
		t.Fatalf("merge lost defaults: %+v", cfg)
	}

	theme := ThemeDark
	cfg, err = s.UpdateSettings(SettingsPatch{Theme: &theme})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.StrictStreakMode || cfg.Theme != ThemeDark {
		t.Fatalf("second merge dropped earlier update: %+v", cfg)
	}

	if got := s.GetSettings(); got != cfg {
		t.Fatalf("persisted settings %+v != returned %+v", got, cfg)
	}
}

// ============================================================
// Pomodoro sessions
// ============================================================

func TestAddSession(t *testing.T) {
	s := newTestStore(t)
	sess, err := s.AddSession(NewSession{Duration: 25, Type: SessionFocus})
	if err != nil {
		t.Fatal(err)
	}
	if sess.ID == "" {
		t.Fatal("expected assigned id")
	}
	if sess.CompletedAt.IsZero() {
		t.Fatal("expected completedAt to be set")
	}

	sessions := s.ListSessions()
	if len(sessions) != 1 || sessions[0].ID != sess.ID {
		t.Fatalf("unexpected sessions: %+v", sessions)
	}
}

func TestAddSessionValidation(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddSession(NewSession{Duration: 0, Type: SessionFocus}); err == nil {
		t.Fatal("expected error for non-positive duration")
	}
	if _, err := s.AddSession(NewSession{Duration: 25, Type: "nap"}); err == nil {
		t.Fatal("expected error for unknown type")
	}
	if len(s.ListSessions()) != 0 {
		t.Fatal("rejected sessions must not persist")
	}
}

func TestAddSessionDanglingTaskID(t *testing.T) {
	s := newTestStore(t)
	// A session may reference a task that no longer exists.
	sess, err := s.AddSession(NewSession{TaskID: "160000000", Duration: 5, Type: SessionBreak})
	if err != nil {
		t.Fatal(err)
	}
	if sess.TaskID != "160000000" {
		t.Fatalf("task link dropped: %+v", sess)
	}
}
