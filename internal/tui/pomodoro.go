package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkorkmaz/planr/internal/store"
)

type pomodoroPhase int

const (
	pomodoroIdle pomodoroPhase = iota
	pomodoroFocus
	pomodoroShortBreak
	pomodoroLongBreak
	pomodoroDone
)

const (
	focusDuration      = 25 * time.Minute
	shortBreakDuration = 5 * time.Minute
	longBreakDuration  = 15 * time.Minute
	pomodoroTarget     = 4
)

type pomodoroModel struct {
	store  *store.Store
	width  int
	height int

	phase          pomodoroPhase
	completedCount int

	remaining time.Duration
	phaseEnd  time.Time

	// Optional linked task for recorded focus sessions
	taskID    string
	taskTitle string

	picking      bool
	pickerTasks  []store.Task
	pickerCursor int
}

func newPomodoroModel(s *store.Store) pomodoroModel {
	return pomodoroModel{
		store: s,
		phase: pomodoroIdle,
	}
}

func (p *pomodoroModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p pomodoroModel) update(msg tea.Msg) (pomodoroModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if p.phase == pomodoroFocus || p.phase == pomodoroShortBreak || p.phase == pomodoroLongBreak {
			p.remaining = time.Until(p.phaseEnd)
			if p.remaining <= 0 {
				return p.advancePhase()
			}
		}
		return p, nil

	case tea.KeyMsg:
		if p.picking {
			return p.updatePicker(msg)
		}

		switch {
		case key.Matches(msg, keys.Start):
			if p.phase == pomodoroIdle || p.phase == pomodoroDone {
				return p.beginPicking()
			}
		case key.Matches(msg, keys.Stop):
			if p.phase != pomodoroIdle {
				return p.cancel()
			}
		case key.Matches(msg, keys.Toggle):
			// Skip the rest of a break
			if p.phase == pomodoroShortBreak || p.phase == pomodoroLongBreak {
				return p.recordAndStartFocus(msg)
			}
		}
	}
	return p, nil
}

// beginPicking offers today's tasks as the session link before starting.
func (p pomodoroModel) beginPicking() (pomodoroModel, tea.Cmd) {
	p.pickerTasks = p.store.TasksForDate(time.Now().Format(dayFormat))
	if len(p.pickerTasks) == 0 {
		p.taskID, p.taskTitle = "", ""
		return p.startRound()
	}
	p.picking = true
	p.pickerCursor = 0
	return p, nil
}

func (p pomodoroModel) updatePicker(msg tea.KeyMsg) (pomodoroModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if p.pickerCursor > 0 {
			p.pickerCursor--
		}
	case key.Matches(msg, keys.Down):
		if p.pickerCursor < len(p.pickerTasks) {
			p.pickerCursor++
		}
	case key.Matches(msg, keys.Enter):
		p.picking = false
		if p.pickerCursor == 0 {
			p.taskID, p.taskTitle = "", ""
		} else {
			task := p.pickerTasks[p.pickerCursor-1]
			p.taskID, p.taskTitle = task.ID, task.Title
		}
		return p.startRound()
	case key.Matches(msg, keys.Back):
		p.picking = false
	}
	return p, nil
}

func (p pomodoroModel) startRound() (pomodoroModel, tea.Cmd) {
	p.completedCount = 0
	return p.startFocusPhase()
}

func (p pomodoroModel) startFocusPhase() (pomodoroModel, tea.Cmd) {
	p.phase = pomodoroFocus
	p.remaining = focusDuration
	p.phaseEnd = time.Now().Add(focusDuration)
	return p, nil
}

// logSession appends the finished interval to the session log and reports
// a status on failure. Write failures are surfaced, not swallowed.
func (p pomodoroModel) logSession(minutes int, kind store.SessionType) tea.Cmd {
	taskID := p.taskID
	if kind == store.SessionBreak {
		taskID = ""
	}
	return func() tea.Msg {
		session, err := p.store.AddSession(store.NewSession{
			TaskID:   taskID,
			Duration: minutes,
			Type:     kind,
		})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Session not saved: %v", err), isError: true}
		}
		return sessionLoggedMsg{session: session}
	}
}

func (p pomodoroModel) advancePhase() (pomodoroModel, tea.Cmd) {
	switch p.phase {
	case pomodoroFocus:
		p.completedCount++
		logCmd := p.logSession(int(focusDuration.Minutes()), store.SessionFocus)

		if p.completedCount >= pomodoroTarget {
			p.phase = pomodoroDone
			return p, tea.Batch(logCmd, func() tea.Msg {
				return statusMsg{text: "Pomodoro round complete! \a"}
			})
		}

		// The final focus interval of a round earns the long break.
		if p.completedCount%pomodoroTarget == 0 {
			p.phase = pomodoroLongBreak
			p.remaining = longBreakDuration
			p.phaseEnd = time.Now().Add(longBreakDuration)
		} else {
			p.phase = pomodoroShortBreak
			p.remaining = shortBreakDuration
			p.phaseEnd = time.Now().Add(shortBreakDuration)
		}
		return p, tea.Batch(logCmd, func() tea.Msg {
			return statusMsg{text: "Break time! \a"}
		})

	case pomodoroShortBreak, pomodoroLongBreak:
		full := shortBreakDuration
		if p.phase == pomodoroLongBreak {
			full = longBreakDuration
		}
		logCmd := p.logSession(int(full.Minutes()), store.SessionBreak)
		next, _ := p.startFocusPhase()
		return next, logCmd
	}
	return p, nil
}

// recordAndStartFocus ends a break early, logging only the minutes spent.
func (p pomodoroModel) recordAndStartFocus(_ tea.KeyMsg) (pomodoroModel, tea.Cmd) {
	full := shortBreakDuration
	if p.phase == pomodoroLongBreak {
		full = longBreakDuration
	}
	spent := full - p.remaining
	logCmd := p.logSession(sessionMinutes(spent), store.SessionBreak)
	next, _ := p.startFocusPhase()
	return next, logCmd
}

func (p pomodoroModel) cancel() (pomodoroModel, tea.Cmd) {
	p.phase = pomodoroIdle
	p.remaining = 0
	return p, func() tea.Msg {
		return statusMsg{text: "Pomodoro cancelled"}
	}
}

func (p pomodoroModel) view() string {
	w := p.width - 4

	if p.picking {
		return p.renderPicker(w)
	}

	title := titleStyle.Render("Pomodoro")

	var timeDisplay, phaseLabel, indicator string
	switch p.phase {
	case pomodoroIdle:
		timeDisplay = timerStyle.Width(w - 6).Render(formatCountdown(focusDuration))
		phaseLabel = mutedStyle.Render("Ready to focus")
		indicator = mutedStyle.Render("Press s to begin")
	case pomodoroFocus:
		timeDisplay = accentStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(formatCountdown(p.remaining))
		phaseLabel = accentStyle.Bold(true).Render("FOCUS")
		indicator = p.renderProgress()
	case pomodoroShortBreak:
		timeDisplay = successStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(formatCountdown(p.remaining))
		phaseLabel = successStyle.Bold(true).Render("SHORT BREAK")
		indicator = p.renderProgress()
	case pomodoroLongBreak:
		timeDisplay = highlightStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(formatCountdown(p.remaining))
		phaseLabel = highlightStyle.Bold(true).Render("LONG BREAK")
		indicator = p.renderProgress()
	case pomodoroDone:
		timeDisplay = successStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render("Done!")
		phaseLabel = successStyle.Bold(true).Render("ROUND COMPLETE")
		indicator = p.renderProgress()
	}

	taskLine := ""
	if p.taskTitle != "" && p.phase != pomodoroIdle {
		taskLine = highlightStyle.Render(p.taskTitle)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		timeDisplay,
		phaseLabel,
		taskLine,
		"",
		indicator,
	)

	var controls string
	switch p.phase {
	case pomodoroIdle, pomodoroDone:
		controls = mutedStyle.Render("s: start  q: quit")
	case pomodoroFocus:
		controls = mutedStyle.Render("x: cancel")
	case pomodoroShortBreak, pomodoroLongBreak:
		controls = mutedStyle.Render("space: skip break  x: cancel")
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}

func (p pomodoroModel) renderPicker(w int) string {
	title := titleStyle.Render("Focus on which task?")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	options := []string{"(no task)"}
	for _, t := range p.pickerTasks {
		options = append(options, t.Title)
	}
	for i, label := range options {
		cursor := "  "
		style := normalItemStyle
		if i == p.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+label))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: start  esc: cancel"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (p pomodoroModel) renderProgress() string {
	var parts []string
	for i := 0; i < pomodoroTarget; i++ {
		if i < p.completedCount {
			parts = append(parts, successStyle.Render("●"))
		} else if i == p.completedCount && p.phase == pomodoroFocus {
			parts = append(parts, accentStyle.Render("◐"))
		} else {
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	progress := strings.Join(parts, " ")
	counter := mutedStyle.Render(fmt.Sprintf("  %d/%d", p.completedCount, pomodoroTarget))
	return progress + counter
}
