package store

import "time"

// Layouts for the naive local timestamps the planner works in. Lexicographic
// order on these strings matches chronological order, which the queries rely
// on.
const (
	TimeLayout = "2006-01-02T15:04:05"
	DateLayout = "2006-01-02"
)

// Lesson types.
const (
	TypeMath    = "math"
	TypeScience = "science"
	TypeTurkish = "turkish"
	TypeSocial  = "social"
	TypeOther   = "other"
)

// LessonTypes lists the selectable lesson types.
var LessonTypes = []string{TypeMath, TypeScience, TypeTurkish, TypeSocial, TypeOther}

// TypeColor returns the board color for a lesson type.
func TypeColor(typ string) string {
	switch typ {
	case TypeMath:
		return "#add8e6"
	case TypeScience:
		return "#90ee90"
	case TypeTurkish:
		return "#ff6b6b"
	case TypeSocial:
		return "#ffd93d"
	}
	return "#e0e0e0"
}

// Lesson is one planned study slot. A lesson is identified by its (Name,
// Time) pair; the row id is a storage detail and never used for matching.
type Lesson struct {
	ID              int64
	Name            string
	Type            string
	DurationMinutes int
	Time            string // TimeLayout, local
	Completed       bool
	Color           string
	Day             string // weekday name, display only
	CreatedAt       time.Time
}

// StartsAt parses the lesson's planned start.
func (l Lesson) StartsAt() (time.Time, error) {
	return time.ParseInLocation(TimeLayout, l.Time, time.Local)
}

// Date returns the calendar-date prefix of the lesson time.
func (l Lesson) Date() string {
	if len(l.Time) < len(DateLayout) {
		return l.Time
	}
	return l.Time[:len(DateLayout)]
}

// CompletionRecord is one finished plan-linked session. Append-only;
// duplicates for the same lesson are tolerated.
type CompletionRecord struct {
	ID         int64
	LessonName string
	LessonTime string  // matches Lesson.Time exactly
	StartTime  *string // wall-clock start, when the producer recorded one
	CreatedAt  time.Time
}

// ExamResult is one mock-exam attempt with its computed nets.
type ExamResult struct {
	ID        int64
	ExamType  string // exam.TYT or exam.AYT
	Date      string // DateLayout
	Track     string // AYT track, empty for TYT
	Nets      map[string]float64
	TotalNet  float64
	CreatedAt time.Time
}

// FreeSession is the single-slot handoff from the free timer to the planner.
// Written on finish, consumed (and deleted) exactly once by the planner.
type FreeSession struct {
	StartTime       string // RFC3339
	EndTime         string // RFC3339
	DurationSeconds int64
	Topic           string
	Date            string // DateLayout
}

type Setting struct {
	Key   string
	Value string
}
