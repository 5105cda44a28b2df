package store

import (
	"fmt"
	"time"

	"github.com/ekinsu/dersplan/internal/week"
)

func (s *Store) AddLesson(l Lesson) (*Lesson, error) {
	if l.Color == "" {
		l.Color = TypeColor(l.Type)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO lessons (name, type, duration_minutes, time, completed, color, day, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.Name, l.Type, l.DurationMinutes, l.Time, boolToInt(l.Completed), l.Color, l.Day, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert lesson: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetLesson(id)
}

func (s *Store) GetLesson(id int64) (*Lesson, error) {
	row := s.db.QueryRow(
		`SELECT id, name, type, duration_minutes, time, completed, color, day, created_at
		 FROM lessons WHERE id = ?`, id,
	)
	l, err := scanLesson(row)
	if err != nil {
		return nil, fmt.Errorf("get lesson %d: %w", id, err)
	}
	return l, nil
}

// ListLessons returns every lesson in insertion order.
func (s *Store) ListLessons() ([]Lesson, error) {
	return s.queryLessons(
		`SELECT id, name, type, duration_minutes, time, completed, color, day, created_at
		 FROM lessons ORDER BY id`,
	)
}

// ListLessonsForWeek returns lessons whose date falls on one of the window's
// seven days, in insertion order. Membership is derived from the lesson time
// on every call, never stored.
func (s *Store) ListLessonsForWeek(win week.Window) ([]Lesson, error) {
	days := win.Days()
	args := make([]any, len(days))
	for i, d := range days {
		args[i] = d.Format(DateLayout)
	}
	return s.queryLessons(
		`SELECT id, name, type, duration_minutes, time, completed, color, day, created_at
		 FROM lessons
		 WHERE substr(time, 1, 10) IN (?, ?, ?, ?, ?, ?, ?)
		 ORDER BY id`, args...,
	)
}

// ListUpcomingLessons returns at most limit lessons starting strictly after
// now, skipping any with a matching completion record, ascending by time.
func (s *Store) ListUpcomingLessons(now time.Time, limit int) ([]Lesson, error) {
	return s.queryLessons(
		`SELECT l.id, l.name, l.type, l.duration_minutes, l.time, l.completed, l.color, l.day, l.created_at
		 FROM lessons l
		 WHERE l.time > ?
		   AND NOT EXISTS (
			SELECT 1 FROM completed_timers c
			WHERE c.lesson_name = l.name AND c.lesson_time = l.time
		   )
		 ORDER BY l.time ASC
		 LIMIT ?`,
		now.Format(TimeLayout), limit,
	)
}

// ListIncompleteLessons returns every lesson without a completion record, in
// insertion order. The plan-timer picker feeds from this list: any day, any
// week, as long as the lesson has not been studied yet.
func (s *Store) ListIncompleteLessons() ([]Lesson, error) {
	return s.queryLessons(
		`SELECT l.id, l.name, l.type, l.duration_minutes, l.time, l.completed, l.color, l.day, l.created_at
		 FROM lessons l
		 WHERE NOT EXISTS (
			SELECT 1 FROM completed_timers c
			WHERE c.lesson_name = l.name AND c.lesson_time = l.time
		 )
		 ORDER BY l.id`,
	)
}

// MarkLessonCompleted flags the lesson matching (name, time). A missing
// lesson is a no-op, not an error.
func (s *Store) MarkLessonCompleted(name, lessonTime string) error {
	_, err := s.db.Exec(
		`UPDATE lessons SET completed = 1 WHERE name = ? AND time = ?`,
		name, lessonTime,
	)
	if err != nil {
		return fmt.Errorf("mark lesson completed: %w", err)
	}
	return nil
}

// ReconcileLessons flags every lesson that has a completion record with the
// exact same (name, time). Safe to run on every load; running it twice
// changes nothing the first run didn't.
func (s *Store) ReconcileLessons() error {
	_, err := s.db.Exec(
		`UPDATE lessons SET completed = 1
		 WHERE completed = 0
		   AND EXISTS (
			SELECT 1 FROM completed_timers c
			WHERE c.lesson_name = lessons.name AND c.lesson_time = lessons.time
		   )`,
	)
	if err != nil {
		return fmt.Errorf("reconcile lessons: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLesson(row rowScanner) (*Lesson, error) {
	l := &Lesson{}
	var completed int
	var createdAt string
	if err := row.Scan(&l.ID, &l.Name, &l.Type, &l.DurationMinutes, &l.Time, &completed, &l.Color, &l.Day, &createdAt); err != nil {
		return nil, err
	}
	l.Completed = completed == 1
	l.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return l, nil
}

func (s *Store) queryLessons(query string, args ...any) ([]Lesson, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	var lessons []Lesson
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, *l)
	}
	return lessons, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
