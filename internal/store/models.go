package store

import "time"

type Priority string

const (
	PriorityNone   Priority = "none"
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Reminder string

const (
	ReminderNone      Reminder = "none"
	ReminderOnDay     Reminder = "on_day"
	ReminderDayEarly  Reminder = "1_day_early"
	ReminderWeekEarly Reminder = "1_week_early"
	ReminderCustom    Reminder = "custom"
)

type Repeat string

const (
	RepeatNone    Repeat = "none"
	RepeatDaily   Repeat = "daily"
	RepeatWeekly  Repeat = "weekly"
	RepeatMonthly Repeat = "monthly"
	RepeatCustom  Repeat = "custom"
)

type SessionType string

const (
	SessionFocus SessionType = "focus"
	SessionBreak SessionType = "break"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Task is one unit of study work, pinned to a calendar day.
// Date is a plain "YYYY-MM-DD" string; Time, when set, is "HH:MM".
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"`
	Time        string    `json:"time,omitempty"`
	Completed   bool      `json:"completed"`
	Priority    Priority  `json:"priority"`
	Reminder    Reminder  `json:"reminder"`
	Repeat      Repeat    `json:"repeat"`
	Subject     string    `json:"subject"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewTask holds the caller-supplied fields of a task; the store assigns
// id and timestamps.
type NewTask struct {
	Title       string
	Description string
	Date        string
	Time        string
	Completed   bool
	Priority    Priority
	Reminder    Reminder
	Repeat      Repeat
	Subject     string
}

// TaskPatch is a partial update; nil fields keep their prior value.
type TaskPatch struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
	Completed   *bool
	Priority    *Priority
	Reminder    *Reminder
	Repeat      *Repeat
	Subject     *string
}

// Settings is the singleton preference record.
type Settings struct {
	DailyReminderTime string `json:"dailyReminderTime"`
	StrictStreakMode  bool   `json:"strictStreakMode"`
	Theme             Theme  `json:"theme"`
}

// DefaultSettings is what GetSettings returns before anything is persisted.
func DefaultSettings() Settings {
	return Settings{
		DailyReminderTime: "09:00",
		StrictStreakMode:  false,
		Theme:             ThemeSystem,
	}
}

type SettingsPatch struct {
	DailyReminderTime *string
	StrictStreakMode  *bool
	Theme             *Theme
}

// PomodoroSession records one completed focus or break interval.
// TaskID may dangle; the log does not enforce referential integrity.
type PomodoroSession struct {
	ID          string      `json:"id"`
	TaskID      string      `json:"taskId,omitempty"`
	Duration    int         `json:"duration"` // minutes
	Type        SessionType `json:"type"`
	CompletedAt time.Time   `json:"completedAt"`
}

type NewSession struct {
	TaskID   string
	Duration int
	Type     SessionType
}

// WeeklyStats covers the 7 consecutive days starting at the queried date.
// DailyCompletions is indexed by offset from the window start.
type WeeklyStats struct {
	DailyCompletions  []int  `json:"dailyCompletions"`
	TotalTasks        int    `json:"totalTasks"`
	CompletedTasks    int    `json:"completedTasks"`
	IncompleteTasks   int    `json:"incompleteTasks"`
	MostProductiveDay string `json:"mostProductiveDay"`
	CurrentStreak     int    `json:"currentStreak"`
}
