package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/mkorkmaz/planr/internal/store"
)

// ToCSV writes the task collection to path, one row per task.
func ToCSV(tasks []store.Task, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	header := []string{"ID", "Title", "Date", "Time", "Completed", "Priority", "Subject", "Created", "Updated"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, t := range tasks {
		completed := "no"
		if t.Completed {
			completed = "yes"
		}
		row := []string{
			t.ID,
			t.Title,
			t.Date,
			t.Time,
			completed,
			string(t.Priority),
			t.Subject,
			t.CreatedAt.Local().Format(time.RFC3339),
			t.UpdatedAt.Local().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
