package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkorkmaz/planr/internal/store"
)

var barLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type statsModel struct {
	store  *store.Store
	width  int
	height int

	stats  store.WeeklyStats
	offset int // weeks back from the current week (0 = current)

	chart barchart.Model
}

func newStatsModel(s *store.Store) statsModel {
	return statsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// weekStart anchors the window on the most recent Sunday so the
// positional Sunday-first day naming lines up with real weekdays.
func (m statsModel) weekStart() time.Time {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -int(today.Weekday())-7*m.offset)
}

type statsDataMsg struct {
	stats store.WeeklyStats
}

func (m statsModel) refresh() tea.Cmd {
	start := m.weekStart()
	return func() tea.Msg {
		return statsDataMsg{stats: m.store.WeeklyStats(start)}
	}
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		m.stats = msg.stats
		m.buildChart()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.offset++
			return m, m.refresh()
		case key.Matches(msg, keys.Right):
			if m.offset > 0 {
				m.offset--
			}
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m *statsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if m.height > 28 {
		chartHeight = 14
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for i, n := range m.stats.DailyCompletions {
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if n == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: barLabels[i],
			Values: []barchart.BarValue{
				{Name: "completed", Value: float64(n), Style: style},
			},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m statsModel) view() string {
	w := m.width - 4

	start := m.weekStart()
	end := start.AddDate(0, 0, 6)
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s", start.Format("Jan 02"), end.Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Weekly Stats"), "  ", dateLabel,
	)

	chartView := m.chart.View()
	summary := m.renderSummary()
	nav := mutedStyle.Render("  ←/→: navigate weeks")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", summary, "", nav,
		),
	)
}

func (m statsModel) renderSummary() string {
	s := m.stats
	rows := []string{
		fmt.Sprintf("  %-22s %s", "Total tasks", highlightStyle.Render(fmt.Sprintf("%d", s.TotalTasks))),
		fmt.Sprintf("  %-22s %s", "Completed", successStyle.Render(fmt.Sprintf("%d", s.CompletedTasks))),
		fmt.Sprintf("  %-22s %s", "Incomplete", warningStyle.Render(fmt.Sprintf("%d", s.IncompleteTasks))),
		fmt.Sprintf("  %-22s %s", "Most productive day", highlightStyle.Render(s.MostProductiveDay)),
		fmt.Sprintf("  %-22s %s", "Current streak", accentStyle.Render(fmt.Sprintf("%d days", s.CurrentStreak))),
	}
	return strings.Join(rows, "\n")
}
