package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ekinsu/dersplan/internal/store"
)

type jsonExport struct {
	ExportedAt string       `json:"exported_at"`
	Lessons    []jsonLesson `json:"lessons"`
	Results    []jsonResult `json:"results"`
}

type jsonLesson struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration_minutes"`
	Completed       bool   `json:"completed"`
	Color           string `json:"color,omitempty"`
}

type jsonResult struct {
	ExamType string             `json:"exam_type"`
	Date     string             `json:"date"`
	Track    string             `json:"track,omitempty"`
	Nets     map[string]float64 `json:"nets"`
	TotalNet float64            `json:"total_net"`
}

func ToJSON(lessons []store.Lesson, results []store.ExamResult, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}

	for _, l := range lessons {
		export.Lessons = append(export.Lessons, jsonLesson{
			Name:            l.Name,
			Type:            l.Type,
			Time:            l.Time,
			DurationMinutes: l.DurationMinutes,
			Completed:       l.Completed,
			Color:           l.Color,
		})
	}
	for _, r := range results {
		export.Results = append(export.Results, jsonResult{
			ExamType: r.ExamType,
			Date:     r.Date,
			Track:    r.Track,
			Nets:     r.Nets,
			TotalNet: r.TotalNet,
		})
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
