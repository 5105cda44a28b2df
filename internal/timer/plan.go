package timer

import (
	"errors"
	"time"

	"github.com/ekinsu/dersplan/internal/store"
)

// ErrNoLesson is returned when a control is used before a lesson is picked.
var ErrNoLesson = errors.New("no lesson selected")

// PlanState is the plan-linked timer's state.
type PlanState int

const (
	PlanNoLesson PlanState = iota
	PlanReady
	PlanRunning
	PlanPaused
	PlanCompleted
)

// PlanTimer counts a selected lesson's budget down and, on completion,
// writes the completion ledger and flags the lesson — whether the budget ran
// out or the user finished early.
type PlanTimer struct {
	store *store.Store

	state     PlanState
	lesson    *store.Lesson
	remaining int // seconds
	startedAt time.Time
}

func NewPlanTimer(s *store.Store) *PlanTimer {
	return &PlanTimer{store: s}
}

func (p *PlanTimer) State() PlanState      { return p.state }
func (p *PlanTimer) Remaining() int        { return p.remaining }
func (p *PlanTimer) Lesson() *store.Lesson { return p.lesson }

// Select arms the timer for a lesson. A zero-duration lesson is accepted:
// the first running tick completes it.
func (p *PlanTimer) Select(l *store.Lesson) {
	p.lesson = l
	if l == nil {
		p.state = PlanNoLesson
		p.remaining = 0
		return
	}
	p.state = PlanReady
	p.remaining = l.DurationMinutes * 60
	p.startedAt = time.Time{}
}

// Clear drops the selection and returns to the no-lesson state.
func (p *PlanTimer) Clear() {
	p.Select(nil)
}

// Toggle is the single Running⇄Paused transition. Both UI controls call it,
// so they can never drift apart. From Ready it starts the countdown.
func (p *PlanTimer) Toggle() error {
	switch p.state {
	case PlanNoLesson, PlanCompleted:
		return ErrNoLesson
	case PlanReady:
		p.state = PlanRunning
		p.startedAt = time.Now()
	case PlanRunning:
		p.state = PlanPaused
	case PlanPaused:
		p.state = PlanRunning
	}
	return nil
}

// Tick decrements the budget by one second while running and reports whether
// this tick completed the session. Completion happens at most once per
// selection; the side effects run inside the Running→Completed transition.
func (p *PlanTimer) Tick() (bool, error) {
	if p.state != PlanRunning {
		return false, nil
	}
	p.remaining--
	if p.remaining > 0 {
		return false, nil
	}
	if p.remaining < 0 {
		p.remaining = 0
	}
	return true, p.complete()
}

// Finish completes the session immediately, regardless of remaining time.
func (p *PlanTimer) Finish() error {
	switch p.state {
	case PlanNoLesson, PlanCompleted:
		return ErrNoLesson
	}
	return p.complete()
}

// complete appends exactly one ledger record and flags the lesson.
func (p *PlanTimer) complete() error {
	p.state = PlanCompleted

	rec := store.CompletionRecord{
		LessonName: p.lesson.Name,
		LessonTime: p.lesson.Time,
	}
	if !p.startedAt.IsZero() {
		start := p.startedAt.Format(time.RFC3339)
		rec.StartTime = &start
	}
	if err := p.store.AppendCompletion(rec); err != nil {
		return err
	}
	return p.store.MarkLessonCompleted(p.lesson.Name, p.lesson.Time)
}
