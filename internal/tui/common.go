package tui

import (
	"fmt"
	"time"

	"github.com/mkorkmaz/planr/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewTasks
	viewStats
	viewPomodoro
	viewSettings
)

var viewNames = []string{"Dashboard", "Tasks", "Stats", "Pomodoro", "Settings"}

const dayFormat = "2006-01-02"

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type taskSavedMsg struct {
	task *store.Task
}

type sessionLoggedMsg struct {
	session *store.PomodoroSession
}

type settingsSavedMsg struct {
	settings store.Settings
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}

func formatElapsed(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// sessionMinutes rounds an elapsed duration up to whole minutes, never
// below one: the session log only accepts positive minute counts.
func sessionMinutes(d time.Duration) int {
	mins := int((d + time.Minute - 1) / time.Minute)
	if mins < 1 {
		mins = 1
	}
	return mins
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
