package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkorkmaz/planr/internal/store"
)

var priorityOptions = []huh.Option[string]{
	huh.NewOption("none", "none"),
	huh.NewOption("low", "low"),
	huh.NewOption("medium", "medium"),
	huh.NewOption("high", "high"),
}

var reminderOptions = []huh.Option[string]{
	huh.NewOption("no reminder", "none"),
	huh.NewOption("on the day", "on_day"),
	huh.NewOption("1 day early", "1_day_early"),
	huh.NewOption("1 week early", "1_week_early"),
	huh.NewOption("custom", "custom"),
}

var repeatOptions = []huh.Option[string]{
	huh.NewOption("no repeat", "none"),
	huh.NewOption("daily", "daily"),
	huh.NewOption("weekly", "weekly"),
	huh.NewOption("monthly", "monthly"),
	huh.NewOption("custom", "custom"),
}

type tasksModel struct {
	store  *store.Store
	width  int
	height int

	date   time.Time // day being browsed
	tasks  []store.Task
	cursor int

	formActive bool
	form       *huh.Form
	editingID  string // empty = creating

	// Form field pointers (survive value copies)
	formTitle    *string
	formDesc     *string
	formTime     *string
	formSubject  *string
	formPriority *string
	formReminder *string
	formRepeat   *string
}

func newTasksModel(s *store.Store) tasksModel {
	title, desc, clock, subject := "", "", "", ""
	prio, rem, rep := "none", "none", "none"
	return tasksModel{
		store:        s,
		date:         time.Now(),
		formTitle:    &title,
		formDesc:     &desc,
		formTime:     &clock,
		formSubject:  &subject,
		formPriority: &prio,
		formReminder: &rem,
		formRepeat:   &rep,
	}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type tasksDataMsg struct {
	tasks []store.Task
}

func (m tasksModel) refresh() tea.Cmd {
	date := m.date.Format(dayFormat)
	return func() tea.Msg {
		return tasksDataMsg{tasks: m.store.TasksForDate(date)}
	}
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tasksDataMsg:
		m.tasks = msg.tasks
		if m.cursor >= len(m.tasks) {
			m.cursor = max(0, len(m.tasks)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Left):
			m.date = m.date.AddDate(0, 0, -1)
			return m, m.refresh()
		case key.Matches(msg, keys.Right):
			m.date = m.date.AddDate(0, 0, 1)
			return m, m.refresh()
		case key.Matches(msg, keys.Today):
			m.date = time.Now()
			return m, m.refresh()
		case key.Matches(msg, keys.Toggle):
			return m.toggleSelected()
		case key.Matches(msg, keys.New):
			return m.showTaskForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(m.tasks) > 0 {
				task := m.tasks[m.cursor]
				return m.showTaskForm(&task)
			}
		case key.Matches(msg, keys.Delete):
			return m.deleteSelected()
		}
	}
	return m, nil
}

func (m tasksModel) toggleSelected() (tasksModel, tea.Cmd) {
	if len(m.tasks) == 0 {
		return m, nil
	}
	task := m.tasks[m.cursor]
	completed := !task.Completed
	if _, err := m.store.UpdateTask(task.ID, store.TaskPatch{Completed: &completed}); err != nil {
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
	return m, m.refresh()
}

func (m tasksModel) deleteSelected() (tasksModel, tea.Cmd) {
	if len(m.tasks) == 0 {
		return m, nil
	}
	task := m.tasks[m.cursor]
	if _, err := m.store.DeleteTask(task.ID); err != nil {
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
	return m, tea.Batch(
		m.refresh(),
		func() tea.Msg { return statusMsg{text: "Task deleted"} },
	)
}

// showTaskForm opens the task editor. A nil task means creating a new one
// on the browsed day.
func (m tasksModel) showTaskForm(task *store.Task) (tasksModel, tea.Cmd) {
	if task == nil {
		m.editingID = ""
		*m.formTitle = ""
		*m.formDesc = ""
		*m.formTime = ""
		*m.formSubject = ""
		*m.formPriority = "none"
		*m.formReminder = "none"
		*m.formRepeat = "none"
	} else {
		m.editingID = task.ID
		*m.formTitle = task.Title
		*m.formDesc = task.Description
		*m.formTime = task.Time
		*m.formSubject = task.Subject
		*m.formPriority = string(task.Priority)
		*m.formReminder = string(task.Reminder)
		*m.formRepeat = string(task.Repeat)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(m.formTitle),
			huh.NewInput().Title("Description").Value(m.formDesc),
			huh.NewInput().Title("Time (HH:MM, optional)").Value(m.formTime),
			huh.NewInput().Title("Subject").Value(m.formSubject),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Priority").Options(priorityOptions...).Value(m.formPriority),
			huh.NewSelect[string]().Title("Reminder").Options(reminderOptions...).Value(m.formReminder),
			huh.NewSelect[string]().Title("Repeat").Options(repeatOptions...).Value(m.formRepeat),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		result := m.saveForm()
		return m, tea.Batch(m.refresh(), func() tea.Msg { return result })
	}

	return m, cmd
}

// saveForm persists the form synchronously so the refresh that follows
// sees the new state.
func (m tasksModel) saveForm() tea.Msg {
	title := *m.formTitle
	clock := *m.formTime
	prio := store.Priority(*m.formPriority)
	rem := store.Reminder(*m.formReminder)
	rep := store.Repeat(*m.formRepeat)

	if m.editingID == "" {
		task, err := m.store.AddTask(store.NewTask{
			Title:       title,
			Description: *m.formDesc,
			Date:        m.date.Format(dayFormat),
			Time:        clock,
			Priority:    prio,
			Reminder:    rem,
			Repeat:      rep,
			Subject:     *m.formSubject,
		})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return taskSavedMsg{task: task}
	}

	task, err := m.store.UpdateTask(m.editingID, store.TaskPatch{
		Title:       &title,
		Description: m.formDesc,
		Time:        &clock,
		Priority:    &prio,
		Reminder:    &rem,
		Repeat:      &rep,
		Subject:     m.formSubject,
	})
	if err != nil {
		return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
	}
	if task == nil {
		return statusMsg{text: "Task no longer exists", isError: true}
	}
	return taskSavedMsg{task: task}
}

func (m tasksModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Task — " + m.date.Format("Mon, Jan 02"))
		if m.editingID != "" {
			title = titleStyle.Render("Edit Task")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	dayLabel := m.date.Format("Monday, Jan 02 2006")
	if m.date.Format(dayFormat) == time.Now().Format(dayFormat) {
		dayLabel += "  " + highlightStyle.Render("(today)")
	}
	title := titleStyle.Render("Tasks — " + dayLabel)

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	if len(m.tasks) == 0 {
		rows = append(rows, mutedStyle.Render("  No tasks on this day. Press n to add one."))
	} else {
		for i, t := range m.tasks {
			rows = append(rows, renderTaskRow(t, i == m.cursor))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  ←/→: day  t: today  n: new  e: edit  space: toggle  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
