package tui

import (
	"time"

	"github.com/mkorkmaz/planr/internal/store"
)

// stopwatchState tracks the current state of the stopwatch.
type stopwatchState int

const (
	stopwatchStopped stopwatchState = iota
	stopwatchRunning
	stopwatchPaused
)

// stopwatchModel is a free-running study timer. Stopping it appends a
// focus session, optionally linked to a task, to the session log.
type stopwatchModel struct {
	store *store.Store

	state     stopwatchState
	startTime time.Time
	elapsed   time.Duration
	pausedAt  time.Time
	pauseGap  time.Duration

	taskID    string
	taskTitle string
}

func newStopwatchModel(s *store.Store) stopwatchModel {
	return stopwatchModel{
		store: s,
		state: stopwatchStopped,
	}
}

func (t *stopwatchModel) start(taskID, taskTitle string) {
	t.state = stopwatchRunning
	t.startTime = time.Now()
	t.elapsed = 0
	t.pauseGap = 0
	t.taskID = taskID
	t.taskTitle = taskTitle
}

// stop ends the run and records it as a focus session. A stop on an
// already-stopped watch returns nil without touching the log.
func (t *stopwatchModel) stop() (*store.PomodoroSession, error) {
	if t.state == stopwatchStopped {
		return nil, nil
	}
	elapsed := t.currentElapsed()
	t.state = stopwatchStopped
	t.elapsed = 0

	session, err := t.store.AddSession(store.NewSession{
		TaskID:   t.taskID,
		Duration: sessionMinutes(elapsed),
		Type:     store.SessionFocus,
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (t *stopwatchModel) pause() {
	if t.state != stopwatchRunning {
		return
	}
	t.state = stopwatchPaused
	t.pausedAt = time.Now()
}

func (t *stopwatchModel) resume() {
	if t.state != stopwatchPaused {
		return
	}
	t.pauseGap += time.Since(t.pausedAt)
	t.state = stopwatchRunning
}

func (t *stopwatchModel) toggle() {
	switch t.state {
	case stopwatchRunning:
		t.pause()
	case stopwatchPaused:
		t.resume()
	}
}

func (t *stopwatchModel) tick() {
	if t.state == stopwatchRunning {
		t.elapsed = time.Since(t.startTime) - t.pauseGap
	}
}

func (t stopwatchModel) running() bool {
	return t.state != stopwatchStopped
}

func (t stopwatchModel) paused() bool {
	return t.state == stopwatchPaused
}

func (t stopwatchModel) currentElapsed() time.Duration {
	if t.state == stopwatchStopped {
		return 0
	}
	if t.state == stopwatchPaused {
		return time.Since(t.startTime) - t.pauseGap - time.Since(t.pausedAt)
	}
	return time.Since(t.startTime) - t.pauseGap
}
