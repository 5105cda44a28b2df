// Package timer holds the two study-timer state machines. Both are advanced
// by a one-second Tick from the UI loop; outside their running states Tick is
// a no-op, so a stale tick after a reset or view switch cannot double-count.
package timer

import (
	"errors"
	"time"

	"github.com/ekinsu/dersplan/internal/store"
)

// ErrDateRequired is returned by FreeTimer.Finish when no study date was
// chosen. The session stays unsaved; the caller may supply a date and retry.
var ErrDateRequired = errors.New("study date required")

// DefaultTopic labels free sessions finished without a topic.
const DefaultTopic = "Serbest Çalışma"

// FreeState is the free-study timer's state.
type FreeState int

const (
	FreeIdle FreeState = iota
	FreeRunning
	FreeStopped // halted with the elapsed count retained
)

// FreeTimer counts a free-form study session up, one second per Tick, and on
// Finish hands the session to the planner through the store's one-shot slot.
type FreeTimer struct {
	store *store.Store

	state     FreeState
	elapsed   int // seconds
	startedAt time.Time
}

func NewFreeTimer(s *store.Store) *FreeTimer {
	return &FreeTimer{store: s}
}

func (f *FreeTimer) State() FreeState { return f.state }
func (f *FreeTimer) Elapsed() int     { return f.elapsed }
func (f *FreeTimer) Running() bool    { return f.state == FreeRunning }

// Start begins counting and records the wall-clock start. Starting a stopped
// timer resumes the retained count without touching the original start.
func (f *FreeTimer) Start() {
	if f.state == FreeRunning {
		return
	}
	if f.state == FreeIdle {
		f.startedAt = time.Now()
	}
	f.state = FreeRunning
}

// Stop halts counting; the elapsed value is retained.
func (f *FreeTimer) Stop() {
	if f.state == FreeRunning {
		f.state = FreeStopped
	}
}

// Toggle flips between running and halted, the single transition behind the
// start/stop control.
func (f *FreeTimer) Toggle() {
	if f.state == FreeRunning {
		f.Stop()
	} else {
		f.Start()
	}
}

// Reset zeroes the counter and returns to Idle.
func (f *FreeTimer) Reset() {
	f.state = FreeIdle
	f.elapsed = 0
	f.startedAt = time.Time{}
}

// Tick advances the counter by one second while running.
func (f *FreeTimer) Tick() {
	if f.state == FreeRunning {
		f.elapsed++
	}
}

// Finish ends the session and writes the one-shot store slot, overwriting
// any unconsumed previous session. An empty date aborts with ErrDateRequired
// and leaves timer state and store untouched apart from stopping the count.
func (f *FreeTimer) Finish(topic, date string) (*store.FreeSession, error) {
	f.Stop()
	if date == "" {
		return nil, ErrDateRequired
	}
	if topic == "" {
		topic = DefaultTopic
	}

	start := f.startedAt
	if start.IsZero() {
		start = time.Now()
	}
	fs := store.FreeSession{
		StartTime:       start.Format(time.RFC3339),
		EndTime:         time.Now().Format(time.RFC3339),
		DurationSeconds: int64(f.elapsed),
		Topic:           topic,
		Date:            date,
	}
	if err := f.store.SaveFreeSession(fs); err != nil {
		return nil, err
	}
	f.Reset()
	return &fs, nil
}
