package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

const (
	dayFormat   = "2006-01-02"
	clockFormat = "15:04"
)

// nextID derives an id from the current time in milliseconds, bumped past
// the last issued id so rapid creations stay unique.
func (s *Store) nextID() string {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

func (s *Store) loadTasks() ([]Task, error) {
	data, err := s.readBlob(keyTasks)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}

// ListTasks returns every task in insertion order. On a read failure it
// logs and returns an empty collection rather than failing the caller.
func (s *Store) ListTasks() []Task {
	tasks, err := s.loadTasks()
	if err != nil {
		s.log.Error("list tasks", "err", err)
		return nil
	}
	return tasks
}

func validateTaskFields(title, date, clock string) error {
	if title == "" {
		return fmt.Errorf("task title must not be empty")
	}
	if _, err := time.Parse(dayFormat, date); err != nil {
		return fmt.Errorf("invalid task date %q: %w", date, err)
	}
	if clock != "" {
		if _, err := time.Parse(clockFormat, clock); err != nil {
			return fmt.Errorf("invalid task time %q: %w", clock, err)
		}
	}
	return nil
}

// AddTask assigns an id and timestamps, appends the task and persists the
// collection. Unlike the read operations, a failure here is returned to
// the caller: silently losing a create is not acceptable.
func (s *Store) AddTask(nt NewTask) (*Task, error) {
	if err := validateTaskFields(nt.Title, nt.Date, nt.Time); err != nil {
		return nil, err
	}

	tasks, err := s.loadTasks()
	if err != nil {
		return nil, fmt.Errorf("add task: %w", err)
	}

	now := time.Now().UTC()
	t := Task{
		ID:          s.nextID(),
		Title:       nt.Title,
		Description: nt.Description,
		Date:        nt.Date,
		Time:        nt.Time,
		Completed:   nt.Completed,
		Priority:    nt.Priority,
		Reminder:    nt.Reminder,
		Repeat:      nt.Repeat,
		Subject:     nt.Subject,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if t.Priority == "" {
		t.Priority = PriorityNone
	}
	if t.Reminder == "" {
		t.Reminder = ReminderNone
	}
	if t.Repeat == "" {
		t.Repeat = RepeatNone
	}

	tasks = append(tasks, t)
	if err := s.writeBlob(keyTasks, tasks); err != nil {
		return nil, fmt.Errorf("add task: %w", err)
	}
	return &t, nil
}

// UpdateTask merges patch over the task with the given id and refreshes
// updatedAt. An unknown id is a normal outcome and yields (nil, nil).
func (s *Store) UpdateTask(id string, patch TaskPatch) (*Task, error) {
	tasks, err := s.loadTasks()
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	idx := -1
	for i := range tasks {
		if tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, nil
	}

	t := tasks[idx]
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Date != nil {
		t.Date = *patch.Date
	}
	if patch.Time != nil {
		t.Time = *patch.Time
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Reminder != nil {
		t.Reminder = *patch.Reminder
	}
	if patch.Repeat != nil {
		t.Repeat = *patch.Repeat
	}
	if patch.Subject != nil {
		t.Subject = *patch.Subject
	}
	if err := validateTaskFields(t.Title, t.Date, t.Time); err != nil {
		return nil, err
	}
	t.UpdatedAt = time.Now().UTC()

	tasks[idx] = t
	if err := s.writeBlob(keyTasks, tasks); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return &t, nil
}

// DeleteTask removes the task with the given id. Deleting an id that does
// not exist still reports success.
func (s *Store) DeleteTask(id string) (bool, error) {
	tasks, err := s.loadTasks()
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}

	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if err := s.writeBlob(keyTasks, kept); err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return true, nil
}

// TasksForDate returns the tasks scheduled on the given "YYYY-MM-DD" day.
// Timed tasks come first in ascending time order; untimed tasks follow in
// their stored order. Soft-fails to an empty collection.
func (s *Store) TasksForDate(date string) []Task {
	tasks, err := s.loadTasks()
	if err != nil {
		s.log.Error("tasks for date", "date", date, "err", err)
		return nil
	}

	var day []Task
	for _, t := range tasks {
		if t.Date == date {
			day = append(day, t)
		}
	}
	sort.SliceStable(day, func(i, j int) bool {
		a, b := day[i].Time, day[j].Time
		if a == "" || b == "" {
			return a != "" && b == ""
		}
		return a < b
	})
	return day
}

// ClearAllTasks empties the task collection entirely.
func (s *Store) ClearAllTasks() error {
	if err := s.deleteBlob(keyTasks); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	return nil
}
