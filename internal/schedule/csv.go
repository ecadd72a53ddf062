package schedule

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// DefaultOutputFile is where the editor saves snapshots.
const DefaultOutputFile = "updated_project_schedule.csv"

// CSVHeader is the snapshot column order.
var CSVHeader = []string{"Task Number", "Task Name", "Start Date", "End Date", "Status"}

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// FormatDate writes a date, including the time of day only when it is set.
func FormatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format(dateLayout)
	}
	return t.Format(dateTimeLayout)
}

// WriteCSV writes the table in table order with status derived at now.
// Names are written untruncated.
func WriteCSV(w io.Writer, t *Table, now time.Time) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range t.Records {
		record := []string{
			FormatNumber(r.Number),
			r.Name,
			FormatDate(r.Start),
			FormatDate(r.End),
			string(Classify(r, now)),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// SaveCSV writes the table to path, replacing any existing file.
func SaveCSV(path string, t *Table, now time.Time) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".ganttboard-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := WriteCSV(tmp, t, now); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("chmod snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
