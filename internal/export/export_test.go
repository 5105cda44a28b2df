package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ekinsu/dersplan/internal/store"
)

func sampleData() ([]store.Lesson, []store.ExamResult) {
	lessons := []store.Lesson{
		{Name: "Matematik", Type: store.TypeMath, Time: "2024-06-03T10:00:00", DurationMinutes: 50, Completed: true, Color: "#add8e6"},
		{Name: "Fen", Type: store.TypeScience, Time: "2024-06-04T14:00:00", DurationMinutes: 40},
	}
	results := []store.ExamResult{
		{ExamType: "tyt", Date: "2024-06-05", Nets: map[string]float64{"matematik": 34.5}, TotalNet: 94.25},
		{ExamType: "ayt", Date: "2024-06-06", Track: "quant", Nets: map[string]float64{"matematik": 29.5, "fen": 24}, TotalNet: 53.5},
	}
	return lessons, results
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	lessons, results := sampleData()
	path := filepath.Join(t.TempDir(), "out.csv")

	if err := ToCSV(lessons, results, path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	// 1 lesson header + 2 lessons + 1 result header + 2 results
	if len(rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(rows))
	}
	if rows[1][0] != "Matematik" || rows[1][4] != "true" {
		t.Fatalf("unexpected lesson row: %v", rows[1])
	}
	if rows[5][0] != "ayt" || rows[5][2] != "quant" || rows[5][3] != "53.50" {
		t.Fatalf("unexpected result row: %v", rows[5])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(nil, nil, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "Lesson") {
		t.Fatal("headers should be written even with no data")
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(nil, nil, "/nonexistent-dir/out.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	lessons, results := sampleData()
	path := filepath.Join(t.TempDir(), "out.json")

	if err := ToJSON(lessons, results, path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var out jsonExport
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.ExportedAt == "" {
		t.Fatal("exported_at missing")
	}
	if len(out.Lessons) != 2 || len(out.Results) != 2 {
		t.Fatalf("expected 2+2 records, got %d+%d", len(out.Lessons), len(out.Results))
	}
	if out.Lessons[0].Name != "Matematik" || !out.Lessons[0].Completed {
		t.Fatalf("unexpected lesson: %+v", out.Lessons[0])
	}
	if out.Results[1].Track != "quant" || out.Results[1].Nets["fen"] != 24 {
		t.Fatalf("unexpected result: %+v", out.Results[1])
	}
	// TYT result should omit the track field.
	if strings.Contains(string(data), `"track":""`) {
		t.Fatal("empty track should be omitted")
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(nil, nil, "/nonexistent-dir/out.json"); err == nil {
		t.Fatal("expected error for bad path")
	}
}
