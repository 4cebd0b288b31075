package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mkorkmaz/planr/internal/store"
)

type jsonExport struct {
	ExportedAt string                  `json:"exported_at"`
	TaskCount  int                     `json:"task_count"`
	Tasks      []store.Task            `json:"tasks"`
	Sessions   []store.PomodoroSession `json:"sessions,omitempty"`
}

// ToJSON writes the full task collection and session log to path as one
// indented JSON document.
func ToJSON(tasks []store.Task, sessions []store.PomodoroSession, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		TaskCount:  len(tasks),
		Tasks:      tasks,
		Sessions:   sessions,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
