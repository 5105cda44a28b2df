package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// SaveFreeSession writes the single handoff slot, overwriting any session
// the planner has not consumed yet.
func (s *Store) SaveFreeSession(fs FreeSession) error {
	_, err := s.db.Exec(
		`INSERT INTO free_session (id, start_time, end_time, duration_seconds, topic, date)
		 VALUES (1, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			duration_seconds = excluded.duration_seconds,
			topic = excluded.topic,
			date = excluded.date`,
		fs.StartTime, fs.EndTime, fs.DurationSeconds, fs.Topic, fs.Date,
	)
	if err != nil {
		return fmt.Errorf("save free session: %w", err)
	}
	return nil
}

// TakeFreeSession reads and clears the slot. Returns (nil, nil) when empty;
// a second call after a take always finds the slot empty.
func (s *Store) TakeFreeSession() (*FreeSession, error) {
	fs := &FreeSession{}
	err := s.db.QueryRow(
		`SELECT start_time, end_time, duration_seconds, topic, date FROM free_session WHERE id = 1`,
	).Scan(&fs.StartTime, &fs.EndTime, &fs.DurationSeconds, &fs.Topic, &fs.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("take free session: %w", err)
	}

	if _, err := s.db.Exec(`DELETE FROM free_session WHERE id = 1`); err != nil {
		return nil, fmt.Errorf("clear free session: %w", err)
	}
	return fs, nil
}
