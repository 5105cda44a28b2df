package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// AddExamResult appends one attempt. Nets arrive already computed (see
// internal/exam); the store only persists them.
func (s *Store) AddExamResult(r ExamResult) (*ExamResult, error) {
	netsJSON, err := json.Marshal(r.Nets)
	if err != nil {
		return nil, fmt.Errorf("encode nets: %w", err)
	}
	var track sql.NullString
	if r.Track != "" {
		track = sql.NullString{String: r.Track, Valid: true}
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO exam_results (exam_type, date, track, nets, total_net, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ExamType, r.Date, track, string(netsJSON), r.TotalNet, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert exam result: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetExamResult(id)
}

func (s *Store) GetExamResult(id int64) (*ExamResult, error) {
	row := s.db.QueryRow(
		`SELECT id, exam_type, date, track, nets, total_net, created_at
		 FROM exam_results WHERE id = ?`, id,
	)
	r, err := scanResult(row)
	if err != nil {
		return nil, fmt.Errorf("get exam result %d: %w", id, err)
	}
	return r, nil
}

// LastResults returns the most recent n attempts of the given type in
// chronological order (oldest of the n first, as charts expect).
func (s *Store) LastResults(examType string, n int) ([]ExamResult, error) {
	rows, err := s.db.Query(
		`SELECT id, exam_type, date, track, nets, total_net, created_at
		 FROM exam_results WHERE exam_type = ? ORDER BY id DESC LIMIT ?`,
		examType, n,
	)
	if err != nil {
		return nil, fmt.Errorf("last results: %w", err)
	}
	defer rows.Close()

	var results []ExamResult
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// The query walks newest-first; flip back to insertion order.
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	return results, nil
}

// ListExamResults returns every attempt in insertion order.
func (s *Store) ListExamResults() ([]ExamResult, error) {
	rows, err := s.db.Query(
		`SELECT id, exam_type, date, track, nets, total_net, created_at
		 FROM exam_results ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list exam results: %w", err)
	}
	defer rows.Close()

	var results []ExamResult
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *r)
	}
	return results, rows.Err()
}

func scanResult(row rowScanner) (*ExamResult, error) {
	r := &ExamResult{}
	var track sql.NullString
	var netsJSON, createdAt string
	if err := row.Scan(&r.ID, &r.ExamType, &r.Date, &track, &netsJSON, &r.TotalNet, &createdAt); err != nil {
		return nil, err
	}
	if track.Valid {
		r.Track = track.String
	}
	// Malformed nets degrade to an empty map rather than failing the read.
	if err := json.Unmarshal([]byte(netsJSON), &r.Nets); err != nil || r.Nets == nil {
		r.Nets = map[string]float64{}
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return r, nil
}
