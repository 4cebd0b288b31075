package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkorkmaz/planr/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings     store.Settings
	confirmClear bool
	formActive   bool
	form         *huh.Form

	// Form values as pointers (survive value copies)
	reminderTime *string
	strictStreak *bool
	theme        *string
}

func newSettingsModel(s *store.Store) settingsModel {
	rt, th := "", ""
	strict := false
	return settingsModel{
		store:        s,
		reminderTime: &rt,
		strictStreak: &strict,
		theme:        &th,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings store.Settings
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return settingsDataMsg{settings: s.store.GetSettings()}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		if s.confirmClear {
			switch {
			case key.Matches(msg, keys.Enter):
				s.confirmClear = false
				if err := s.store.ClearAllTasks(); err != nil {
					return s, func() tea.Msg {
						return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
					}
				}
				return s, func() tea.Msg { return statusMsg{text: "All tasks cleared"} }
			case key.Matches(msg, keys.Back):
				s.confirmClear = false
			}
			return s, nil
		}

		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		case key.Matches(msg, keys.Delete):
			s.confirmClear = true
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.reminderTime = s.settings.DailyReminderTime
	*s.strictStreak = s.settings.StrictStreakMode
	*s.theme = string(s.settings.Theme)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Daily reminder time (HH:MM)").
				Value(s.reminderTime).
				Validate(func(v string) error {
					if _, err := time.Parse("15:04", v); err != nil {
						return fmt.Errorf("use 24-hour HH:MM")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Strict streak mode").
				Description("Require every task of a day to be completed").
				Value(s.strictStreak),
			huh.NewSelect[string]().Title("Theme").
				Options(
					huh.NewOption("Light", "light"),
					huh.NewOption("Dark", "dark"),
					huh.NewOption("System", "system"),
				).Value(s.theme),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		result := s.save()
		return s, tea.Batch(s.refresh(), func() tea.Msg { return result })
	}

	return s, cmd
}

// save persists the form synchronously so the refresh that follows sees
// the merged record.
func (s settingsModel) save() tea.Msg {
	theme := store.Theme(*s.theme)
	saved, err := s.store.UpdateSettings(store.SettingsPatch{
		DailyReminderTime: s.reminderTime,
		StrictStreakMode:  s.strictStreak,
		Theme:             &theme,
	})
	if err != nil {
		return statusMsg{text: fmt.Sprintf("Settings not saved: %v", err), isError: true}
	}
	return settingsSavedMsg{settings: saved}
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	if s.confirmClear {
		rows := []string{
			warningStyle.Bold(true).Render("Delete ALL tasks?"),
			"",
			mutedStyle.Render("This cannot be undone."),
			"",
			mutedStyle.Render("  enter: delete everything  esc: cancel"),
		}
		return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	strictLabel := "at least one task per day"
	if s.settings.StrictStreakMode {
		strictLabel = "every task must be done"
	}

	rows := []string{
		titleStyle.Render("Settings"),
		"",
		fmt.Sprintf("  %-24s %s", "Daily reminder", highlightStyle.Render(s.settings.DailyReminderTime)),
		fmt.Sprintf("  %-24s %s", "Streak rule", highlightStyle.Render(strictLabel)),
		fmt.Sprintf("  %-24s %s", "Theme", highlightStyle.Render(string(s.settings.Theme))),
		"",
		mutedStyle.Render("Press enter to edit, d to clear all tasks"),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
