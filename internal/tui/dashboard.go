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

type dashboardModel struct {
	store     *store.Store
	stopwatch stopwatchModel
	width     int
	height    int

	tasks      []store.Task
	streak     int
	focusToday int
	cursor     int

	// Task picker shown before starting the stopwatch
	picking      bool
	pickerCursor int
}

func newDashboardModel(s *store.Store) dashboardModel {
	return dashboardModel{
		store:     s,
		stopwatch: newStopwatchModel(s),
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) isRunning() bool { return d.stopwatch.running() }
func (d dashboardModel) isPaused() bool  { return d.stopwatch.paused() }
func (d dashboardModel) elapsed() time.Duration {
	return d.stopwatch.currentElapsed()
}

type dashboardDataMsg struct {
	tasks      []store.Task
	streak     int
	focusToday int
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		today := time.Now().Format(dayFormat)
		tasks := d.store.TasksForDate(today)
		streak := d.store.CurrentStreak()

		focusToday := 0
		for _, sess := range d.store.ListSessions() {
			if sess.Type == store.SessionFocus && sess.CompletedAt.Local().Format(dayFormat) == today {
				focusToday++
			}
		}

		return dashboardDataMsg{tasks: tasks, streak: streak, focusToday: focusToday}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.tasks = msg.tasks
		d.streak = msg.streak
		d.focusToday = msg.focusToday
		if d.cursor >= len(d.tasks) {
			d.cursor = max(0, len(d.tasks)-1)
		}
		return d, nil

	case tickMsg:
		d.stopwatch.tick()
		return d, nil

	case tea.KeyMsg:
		if d.picking {
			return d.updatePicker(msg)
		}

		switch {
		case key.Matches(msg, keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}
		case key.Matches(msg, keys.Down):
			if d.cursor < len(d.tasks)-1 {
				d.cursor++
			}
		case key.Matches(msg, keys.Toggle):
			return d.toggleSelected()
		case key.Matches(msg, keys.Delete):
			return d.deleteSelected()
		case key.Matches(msg, keys.Start):
			if d.stopwatch.running() {
				return d, nil
			}
			if len(d.tasks) == 0 {
				d.stopwatch.start("", "")
				return d, func() tea.Msg { return statusMsg{text: "Stopwatch started"} }
			}
			d.picking = true
			d.pickerCursor = 0
		case key.Matches(msg, keys.Stop):
			return d.stopStopwatch()
		case key.Matches(msg, keys.Pause):
			d.stopwatch.toggle()
		}
	}
	return d, nil
}

func (d dashboardModel) updatePicker(msg tea.KeyMsg) (dashboardModel, tea.Cmd) {
	// First picker row is "no task"; the rest map to today's tasks.
	switch {
	case key.Matches(msg, keys.Up):
		if d.pickerCursor > 0 {
			d.pickerCursor--
		}
	case key.Matches(msg, keys.Down):
		if d.pickerCursor < len(d.tasks) {
			d.pickerCursor++
		}
	case key.Matches(msg, keys.Enter):
		d.picking = false
		if d.pickerCursor == 0 {
			d.stopwatch.start("", "")
		} else {
			task := d.tasks[d.pickerCursor-1]
			d.stopwatch.start(task.ID, task.Title)
		}
		return d, func() tea.Msg { return statusMsg{text: "Stopwatch started"} }
	case key.Matches(msg, keys.Back):
		d.picking = false
	}
	return d, nil
}

func (d dashboardModel) toggleSelected() (dashboardModel, tea.Cmd) {
	if len(d.tasks) == 0 {
		return d, nil
	}
	task := d.tasks[d.cursor]
	completed := !task.Completed
	if _, err := d.store.UpdateTask(task.ID, store.TaskPatch{Completed: &completed}); err != nil {
		return d, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
	return d, d.loadData()
}

func (d dashboardModel) deleteSelected() (dashboardModel, tea.Cmd) {
	if len(d.tasks) == 0 {
		return d, nil
	}
	task := d.tasks[d.cursor]
	if _, err := d.store.DeleteTask(task.ID); err != nil {
		return d, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
	return d, tea.Batch(
		d.loadData(),
		func() tea.Msg { return statusMsg{text: "Task deleted"} },
	)
}

func (d dashboardModel) stopStopwatch() (dashboardModel, tea.Cmd) {
	session, err := d.stopwatch.stop()
	if err != nil {
		return d, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
	if session == nil {
		return d, nil
	}
	return d, tea.Batch(
		d.loadData(),
		func() tea.Msg { return sessionLoggedMsg{session: session} },
	)
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	stopwatchPanel := d.renderStopwatchPanel(contentWidth)
	summaryPanel := d.renderSummaryPanel(contentWidth)

	var bottomPanel string
	if d.picking {
		bottomPanel = d.renderTaskPicker(contentWidth)
	} else {
		bottomPanel = d.renderTodayPanel(contentWidth)
	}

	return lipgloss.JoinVertical(lipgloss.Left, stopwatchPanel, summaryPanel, bottomPanel)
}

func (d dashboardModel) renderStopwatchPanel(w int) string {
	if d.stopwatch.running() {
		elapsed := d.stopwatch.currentElapsed()
		timeStr := formatElapsed(elapsed)

		var timeDisplay, indicator string
		if d.stopwatch.paused() {
			timeDisplay = warningStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(timeStr)
			indicator = warningStyle.Render("⏸  PAUSED")
		} else {
			timeDisplay = timerRunningStyle.Width(w - 6).Render(timeStr)
			indicator = successStyle.Render("●  STUDYING")
		}

		taskLine := mutedStyle.Render("unlinked session")
		if d.stopwatch.taskTitle != "" {
			taskLine = highlightStyle.Render(d.stopwatch.taskTitle)
		}

		content := lipgloss.JoinVertical(lipgloss.Center, timeDisplay, indicator, taskLine)
		return activePanelStyle.Width(w).Render(content)
	}

	timeDisplay := timerStyle.Width(w - 6).Render("00:00:00")
	hint := mutedStyle.Render("Press s to start a study session")
	content := lipgloss.JoinVertical(lipgloss.Center, timeDisplay, hint)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderSummaryPanel(w int) string {
	completed := 0
	for _, t := range d.tasks {
		if t.Completed {
			completed++
		}
	}

	streak := accentStyle.Render(fmt.Sprintf("🔥 %d day streak", d.streak))
	tasksDone := highlightStyle.Render(fmt.Sprintf("%d/%d tasks done today", completed, len(d.tasks)))
	focus := successStyle.Render(fmt.Sprintf("%d focus sessions today", d.focusToday))

	row := fmt.Sprintf("%s   %s   %s", streak, tasksDone, focus)
	return panelStyle.Width(w).Render(row)
}

func (d dashboardModel) renderTodayPanel(w int) string {
	title := titleStyle.Render("Today — " + time.Now().Format("Mon, Jan 02"))

	if len(d.tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("Nothing planned today. Press 2 to add tasks."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for i, t := range d.tasks {
		rows = append(rows, renderTaskRow(t, i == d.cursor))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: toggle  d: delete  s: stopwatch"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderTaskPicker(w int) string {
	title := titleStyle.Render("Link session to a task")

	var rows []string
	rows = append(rows, title)

	options := []string{"(no task)"}
	for _, t := range d.tasks {
		options = append(options, t.Title)
	}
	for i, label := range options {
		cursor := "  "
		style := normalItemStyle
		if i == d.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+label))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: start  esc: cancel"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// renderTaskRow is shared by the dashboard and tasks views.
func renderTaskRow(t store.Task, selected bool) string {
	cursor := "  "
	style := normalItemStyle
	if selected {
		cursor = "> "
		style = selectedItemStyle
	}

	check := "[ ]"
	if t.Completed {
		check = successStyle.Render("[✓]")
	}

	clock := "     "
	if t.Time != "" {
		clock = t.Time
	}

	title := t.Title
	if t.Completed {
		title = doneStyle.Render(title)
	} else {
		title = style.Render(title)
	}

	subject := ""
	if t.Subject != "" {
		subject = mutedStyle.Render(" · " + t.Subject)
	}

	return fmt.Sprintf("%s%s %s %s %s%s", cursor, check, mutedStyle.Render(clock), priorityMark(t.Priority), title, subject)
}
