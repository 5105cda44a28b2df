package store

import (
	"testing"
	"time"

	"github.com/ekinsu/dersplan/internal/week"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// addLesson is a test helper inserting a lesson at the given local time.
func addLesson(t *testing.T, s *Store, name, typ, at string, minutes int) *Lesson {
	t.Helper()
	l, err := s.AddLesson(Lesson{Name: name, Type: typ, DurationMinutes: minutes, Time: at})
	if err != nil {
		t.Fatalf("add lesson: %v", err)
	}
	return l
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/dersplan.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Lessons
// ============================================================

func TestAddAndGetLesson(t *testing.T) {
	s := newTestStore(t)
	l := addLesson(t, s, "Matematik", TypeMath, "2024-06-03T10:00:00", 50)

	if l.ID == 0 {
		t.Fatal("expected non-zero ID")
	}
	if l.Name != "Matematik" || l.Type != TypeMath || l.DurationMinutes != 50 {
		t.Fatalf("unexpected lesson: %+v", l)
	}
	if l.Completed {
		t.Fatal("new lesson should not be completed")
	}
	if l.Color != TypeColor(TypeMath) {
		t.Fatalf("expected default color for type, got %q", l.Color)
	}
}

func TestLessonStartsAt(t *testing.T) {
	s := newTestStore(t)
	l := addLesson(t, s, "Fen", TypeScience, "2024-06-03T10:00:00", 40)

	at, err := l.StartsAt()
	if err != nil {
		t.Fatal(err)
	}
	if at.Hour() != 10 || at.Day() != 3 {
		t.Fatalf("unexpected start: %v", at)
	}
	if l.Date() != "2024-06-03" {
		t.Fatalf("unexpected date prefix: %q", l.Date())
	}
}

func TestListLessonsForWeek(t *testing.T) {
	s := newTestStore(t)
	addLesson(t, s, "Matematik", TypeMath, "2024-06-03T10:00:00", 50)
	addLesson(t, s, "Fen", TypeScience, "2024-06-09T14:00:00", 40)
	addLesson(t, s, "Türkçe", TypeTurkish, "2024-06-10T09:00:00", 30) // next week

	win := week.WindowFor(time.Date(2024, time.June, 5, 0, 0, 0, 0, time.Local))
	lessons, err := s.ListLessonsForWeek(win)
	if err != nil {
		t.Fatal(err)
	}
	if len(lessons) != 2 {
		t.Fatalf("expected 2 lessons in week, got %d", len(lessons))
	}
	// Insertion order preserved.
	if lessons[0].Name != "Matematik" || lessons[1].Name != "Fen" {
		t.Fatalf("unexpected order: %s, %s", lessons[0].Name, lessons[1].Name)
	}
}

func TestListUpcomingLessons(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2024, time.June, 5, 12, 0, 0, 0, time.Local)

	addLesson(t, s, "Geçmiş", TypeOther, "2024-06-04T10:00:00", 30)      // past
	addLesson(t, s, "Bugün", TypeOther, "2024-06-05T12:00:00", 30)      // not strictly after now
	addLesson(t, s, "Yarın", TypeMath, "2024-06-06T09:00:00", 50)       // upcoming
	addLesson(t, s, "Bitti", TypeScience, "2024-06-07T09:00:00", 40)    // upcoming but completed
	addLesson(t, s, "Sonraki", TypeTurkish, "2024-06-08T09:00:00", 30)  // upcoming
	if err := s.AppendCompletion(CompletionRecord{LessonName: "Bitti", LessonTime: "2024-06-07T09:00:00"}); err != nil {
		t.Fatal(err)
	}

	upcoming, err := s.ListUpcomingLessons(now, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("expected 2 upcoming, got %d", len(upcoming))
	}
	if upcoming[0].Name != "Yarın" || upcoming[1].Name != "Sonraki" {
		t.Fatalf("unexpected order: %s, %s", upcoming[0].Name, upcoming[1].Name)
	}
}

func TestListUpcomingLessonsLimit(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < 8; i++ {
		at := time.Date(2024, time.June, 2+i, 10, 0, 0, 0, time.Local).Format(TimeLayout)
		addLesson(t, s, "L", TypeOther, at, 30)
	}

	upcoming, err := s.ListUpcomingLessons(now, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(upcoming) != 5 {
		t.Fatalf("expected 5, got %d", len(upcoming))
	}
}

func TestListUpcomingLessonsEmpty(t *testing.T) {
	s := newTestStore(t)
	upcoming, err := s.ListUpcomingLessons(time.Now(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(upcoming) != 0 {
		t.Fatalf("expected none, got %d", len(upcoming))
	}
}

func TestListIncompleteLessons(t *testing.T) {
	s := newTestStore(t)
	addLesson(t, s, "Dün", TypeMath, "2024-06-02T10:00:00", 50) // past but unstudied
	addLesson(t, s, "Yarın", TypeScience, "2024-06-06T10:00:00", 40)
	s.AppendCompletion(CompletionRecord{LessonName: "Yarın", LessonTime: "2024-06-06T10:00:00"})

	left, err := s.ListIncompleteLessons()
	if err != nil {
		t.Fatal(err)
	}
	// Past lessons stay selectable; completed ones drop out.
	if len(left) != 1 || left[0].Name != "Dün" {
		t.Fatalf("unexpected incomplete lessons: %+v", left)
	}
}

func TestMarkLessonCompleted(t *testing.T) {
	s := newTestStore(t)
	l := addLesson(t, s, "Matematik", TypeMath, "2024-06-03T10:00:00", 50)

	if err := s.MarkLessonCompleted("Matematik", "2024-06-03T10:00:00"); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetLesson(l.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Completed {
		t.Fatal("lesson should be completed")
	}

	// Unknown lesson is a no-op.
	if err := s.MarkLessonCompleted("Yok", "2024-06-03T10:00:00"); err != nil {
		t.Fatalf("missing lesson should not error: %v", err)
	}
}

func TestReconcileLessons(t *testing.T) {
	s := newTestStore(t)
	a := addLesson(t, s, "Matematik", TypeMath, "2024-06-03T10:00:00", 50)
	b := addLesson(t, s, "Fen", TypeScience, "2024-06-04T10:00:00", 40)

	if err := s.AppendCompletion(CompletionRecord{LessonName: "Matematik", LessonTime: "2024-06-03T10:00:00"}); err != nil {
		t.Fatal(err)
	}

	if err := s.ReconcileLessons(); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetLesson(a.ID)
	if !got.Completed {
		t.Fatal("lesson with completion record should be flagged")
	}
	other, _ := s.GetLesson(b.ID)
	if other.Completed {
		t.Fatal("lesson without completion record should stay incomplete")
	}
}

func TestReconcileIdempotent(t *testing.T) {
	s := newTestStore(t)
	addLesson(t, s, "Matematik", TypeMath, "2024-06-03T10:00:00", 50)
	s.AppendCompletion(CompletionRecord{LessonName: "Matematik", LessonTime: "2024-06-03T10:00:00"})

	if err := s.ReconcileLessons(); err != nil {
		t.Fatal(err)
	}
	first, _ := s.ListLessons()

	if err := s.ReconcileLessons(); err != nil {
		t.Fatal(err)
	}
	second, _ := s.ListLessons()

	if len(first) != len(second) {
		t.Fatal("reconcile changed the lesson count")
	}
	for i := range first {
		if first[i].Completed != second[i].Completed {
			t.Fatalf("lesson %d changed on second reconcile", first[i].ID)
		}
	}
}

func TestReconcileExactMatchOnly(t *testing.T) {
	s := newTestStore(t)
	l := addLesson(t, s, "Matematik", TypeMath, "2024-06-03T10:00:00", 50)

	// Same name, different time: must not match.
	s.AppendCompletion(CompletionRecord{LessonName: "Matematik", LessonTime: "2024-06-03T11:00:00"})
	if err := s.ReconcileLessons(); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetLesson(l.ID)
	if got.Completed {
		t.Fatal("completion at a different time must not reconcile the lesson")
	}
}

// ============================================================
// Completion ledger
// ============================================================

func TestAppendCompletionDuplicates(t *testing.T) {
	s := newTestStore(t)
	rec := CompletionRecord{LessonName: "Matematik", LessonTime: "2024-06-03T10:00:00"}

	if err := s.AppendCompletion(rec); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendCompletion(rec); err != nil {
		t.Fatalf("duplicate append should be tolerated: %v", err)
	}

	recs, err := s.ListCompletions()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
}

func TestCompletionExists(t *testing.T) {
	s := newTestStore(t)
	start := "2024-06-03T09:58:00Z"
	s.AppendCompletion(CompletionRecord{LessonName: "Fen", LessonTime: "2024-06-03T10:00:00", StartTime: &start})

	ok, err := s.CompletionExists("Fen", "2024-06-03T10:00:00")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected a match")
	}

	ok, _ = s.CompletionExists("Fen", "2024-06-03T10:00")
	if ok {
		t.Fatal("prefix of the time must not match")
	}
	ok, _ = s.CompletionExists("Matematik", "2024-06-03T10:00:00")
	if ok {
		t.Fatal("different name must not match")
	}
}

func TestCompletionOptionalStartTime(t *testing.T) {
	s := newTestStore(t)
	s.AppendCompletion(CompletionRecord{LessonName: "A", LessonTime: "2024-06-03T10:00:00"})
	start := "2024-06-03T10:00:00Z"
	s.AppendCompletion(CompletionRecord{LessonName: "B", LessonTime: "2024-06-04T10:00:00", StartTime: &start})

	recs, _ := s.ListCompletions()
	if recs[0].StartTime != nil {
		t.Fatal("first record should have no start time")
	}
	if recs[1].StartTime == nil || *recs[1].StartTime != start {
		t.Fatal("second record should carry its start time")
	}
}

// ============================================================
// Free session slot
// ============================================================

func TestFreeSessionTakeEmpty(t *testing.T) {
	s := newTestStore(t)
	fs, err := s.TakeFreeSession()
	if err != nil {
		t.Fatal(err)
	}
	if fs != nil {
		t.Fatal("empty slot should yield nil")
	}
}

func TestFreeSessionOverwrite(t *testing.T) {
	s := newTestStore(t)
	first := FreeSession{StartTime: "2024-06-03T09:00:00Z", EndTime: "2024-06-03T09:30:00Z", DurationSeconds: 1800, Topic: "Paragraf", Date: "2024-06-03"}
	second := FreeSession{StartTime: "2024-06-03T10:00:00Z", EndTime: "2024-06-03T10:20:00Z", DurationSeconds: 1200, Topic: "Geometri", Date: "2024-06-03"}

	if err := s.SaveFreeSession(first); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveFreeSession(second); err != nil {
		t.Fatal(err)
	}

	got, err := s.TakeFreeSession()
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Topic != "Geometri" || got.DurationSeconds != 1200 {
		t.Fatalf("expected the second session, got %+v", got)
	}
}

func TestFreeSessionConsumeOnce(t *testing.T) {
	s := newTestStore(t)
	s.SaveFreeSession(FreeSession{StartTime: "2024-06-03T09:00:00Z", EndTime: "2024-06-03T09:30:00Z", DurationSeconds: 1800, Date: "2024-06-03"})

	first, err := s.TakeFreeSession()
	if err != nil {
		t.Fatal(err)
	}
	if first == nil {
		t.Fatal("first take should return the session")
	}

	second, err := s.TakeFreeSession()
	if err != nil {
		t.Fatal(err)
	}
	if second != nil {
		t.Fatal("second take should find the slot empty")
	}
}

// ============================================================
// Exam results
// ============================================================

func TestAddAndGetExamResult(t *testing.T) {
	s := newTestStore(t)
	r, err := s.AddExamResult(ExamResult{
		ExamType: "tyt",
		Date:     "2024-06-03",
		Nets:     map[string]float64{"turkce": 27.75, "sosyal": 14.25, "matematik": 34.5, "fen": 17.75},
		TotalNet: 94.25,
	})
	if err != nil {
		t.Fatal(err)
	}
	if r.ID == 0 {
		t.Fatal("expected non-zero ID")
	}
	if r.Nets["matematik"] != 34.5 {
		t.Fatalf("nets not round-tripped: %+v", r.Nets)
	}
	if r.Track != "" {
		t.Fatalf("TYT result should have no track, got %q", r.Track)
	}
}

func TestExamResultTrack(t *testing.T) {
	s := newTestStore(t)
	r, err := s.AddExamResult(ExamResult{
		ExamType: "ayt",
		Date:     "2024-06-04",
		Track:    "quant",
		Nets:     map[string]float64{"matematik": 29.5, "fen": 24.0},
		TotalNet: 53.5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if r.Track != "quant" {
		t.Fatalf("track not round-tripped: %q", r.Track)
	}
	if len(r.Nets) != 2 {
		t.Fatalf("expected 2 subjects, got %d", len(r.Nets))
	}
}

func TestLastResultsChronological(t *testing.T) {
	s := newTestStore(t)
	for i := 1; i <= 7; i++ {
		s.AddExamResult(ExamResult{ExamType: "tyt", Date: "2024-06-03", TotalNet: float64(i)})
	}
	s.AddExamResult(ExamResult{ExamType: "ayt", Date: "2024-06-03", Track: "quant", TotalNet: 99})

	last, err := s.LastResults("tyt", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(last) != 5 {
		t.Fatalf("expected 5 results, got %d", len(last))
	}
	// Most recent five (3..7) in original chronological order.
	for i, r := range last {
		if r.TotalNet != float64(i+3) {
			t.Fatalf("result %d total = %v, want %v", i, r.TotalNet, float64(i+3))
		}
	}
}

func TestLastResultsFiltersType(t *testing.T) {
	s := newTestStore(t)
	s.AddExamResult(ExamResult{ExamType: "tyt", Date: "2024-06-03", TotalNet: 1})
	s.AddExamResult(ExamResult{ExamType: "ayt", Date: "2024-06-03", Track: "verbal", TotalNet: 2})

	last, _ := s.LastResults("ayt", 5)
	if len(last) != 1 || last[0].ExamType != "ayt" {
		t.Fatalf("unexpected results: %+v", last)
	}
}

func TestScanResultMalformedNets(t *testing.T) {
	s := newTestStore(t)
	res, err := s.db.Exec(
		`INSERT INTO exam_results (exam_type, date, nets, total_net) VALUES ('tyt', '2024-06-03', 'not json', 10)`,
	)
	if err != nil {
		t.Fatal(err)
	}
	id, _ := res.LastInsertId()

	r, err := s.GetExamResult(id)
	if err != nil {
		t.Fatal(err)
	}
	if r.Nets == nil || len(r.Nets) != 0 {
		t.Fatalf("malformed nets should default to empty map, got %+v", r.Nets)
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsSeeded(t *testing.T) {
	s := newTestStore(t)
	if got := s.GetSettingInt(SettingDefaultDuration, 0); got != 50 {
		t.Fatalf("default_duration = %d, want 50", got)
	}
	if got := s.GetSettingInt(SettingUpcomingLimit, 0); got != 5 {
		t.Fatalf("upcoming_limit = %d, want 5", got)
	}
	track, err := s.GetSetting(SettingAYTTrack)
	if err != nil || track != "quant" {
		t.Fatalf("ayt_track = %q, %v", track, err)
	}
}

func TestSettingsSetGet(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting(SettingUpcomingLimit, "3"); err != nil {
		t.Fatal(err)
	}
	if got := s.GetSettingInt(SettingUpcomingLimit, 0); got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
}

func TestGetSettingIntFallback(t *testing.T) {
	s := newTestStore(t)
	if got := s.GetSettingInt("missing", 7); got != 7 {
		t.Fatalf("missing key fallback = %d, want 7", got)
	}
	s.SetSetting("bad", "abc")
	if got := s.GetSettingInt("bad", 9); got != 9 {
		t.Fatalf("non-numeric fallback = %d, want 9", got)
	}
}
