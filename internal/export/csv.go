package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ekinsu/dersplan/internal/store"
)

func ToCSV(lessons []store.Lesson, results []store.ExamResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Lessons section
	if err := w.Write([]string{"Lesson", "Type", "Time", "Duration (min)", "Completed"}); err != nil {
		return err
	}
	for _, l := range lessons {
		row := []string{
			l.Name,
			l.Type,
			l.Time,
			fmt.Sprintf("%d", l.DurationMinutes),
			fmt.Sprintf("%t", l.Completed),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	// Results section
	if err := w.Write([]string{"Exam", "Date", "Track", "Total Net"}); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.ExamType,
			r.Date,
			r.Track,
			fmt.Sprintf("%.2f", r.TotalNet),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
