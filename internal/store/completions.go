package store

import (
	"fmt"
	"time"
)

// AppendCompletion records a finished plan-linked session. The ledger is
// append-only: finishing the same lesson twice leaves two records, which the
// exact-match readers tolerate.
func (s *Store) AppendCompletion(rec CompletionRecord) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO completed_timers (lesson_name, lesson_time, start_time, created_at)
		 VALUES (?, ?, ?, ?)`,
		rec.LessonName, rec.LessonTime, rec.StartTime, now,
	)
	if err != nil {
		return fmt.Errorf("append completion: %w", err)
	}
	return nil
}

// CompletionExists reports whether a record matches (name, time) exactly.
func (s *Store) CompletionExists(name, lessonTime string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM completed_timers WHERE lesson_name = ? AND lesson_time = ?`,
		name, lessonTime,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("completion exists: %w", err)
	}
	return n > 0, nil
}

// ListCompletions returns the ledger in append order.
func (s *Store) ListCompletions() ([]CompletionRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, lesson_name, lesson_time, start_time, created_at FROM completed_timers ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer rows.Close()

	var recs []CompletionRecord
	for rows.Next() {
		var r CompletionRecord
		var startTime *string
		var createdAt string
		if err := rows.Scan(&r.ID, &r.LessonName, &r.LessonTime, &startTime, &createdAt); err != nil {
			return nil, err
		}
		r.StartTime = startTime
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		recs = append(recs, r)
	}
	return recs, rows.Err()
}
