// Package stats times each maze and keeps a running average of solve times
// for the current session.
package stats

import (
	"fmt"
	"time"
)

// Tracker times the current maze. It is not safe for concurrent use.
type Tracker struct {
	now   func() time.Time
	limit time.Duration

	started time.Time
	running bool

	plays    int
	failures int
	average  time.Duration
	last     time.Duration
	best     time.Duration
}

// New creates a tracker with the given time limit (0 for none)
func New(limit time.Duration) *Tracker {
	return NewWithClock(limit, time.Now)
}

// NewWithClock creates a tracker that reads time from now
func NewWithClock(limit time.Duration, now func() time.Time) *Tracker {
	return &Tracker{now: now, limit: limit}
}

// Start begins timing a new maze
func (t *Tracker) Start() {
	t.started = t.now()
	t.running = true
}

// Running reports whether a maze is being timed
func (t *Tracker) Running() bool {
	return t.running
}

// Elapsed returns the time spent on the current maze, or the last solve time
// when not running
func (t *Tracker) Elapsed() time.Duration {
	if !t.running {
		return t.last
	}
	return t.now().Sub(t.started)
}

// Expired reports whether the current maze has run past the time limit
func (t *Tracker) Expired() bool {
	return t.running && t.limit > 0 && t.Elapsed() > t.limit
}

// Finish stops the timer and folds the solve time into the running average
func (t *Tracker) Finish() time.Duration {
	if !t.running {
		return 0
	}
	elapsed := t.Elapsed()
	t.running = false
	t.last = elapsed
	t.average = (t.average*time.Duration(t.plays) + elapsed) / time.Duration(t.plays+1)
	t.plays++
	if t.best == 0 || elapsed < t.best {
		t.best = elapsed
	}
	return elapsed
}

// Fail stops the timer without recording a time
func (t *Tracker) Fail() {
	if !t.running {
		return
	}
	t.running = false
	t.failures++
}

// Average returns the mean solve time; ok is false until a maze is solved
func (t *Tracker) Average() (avg time.Duration, ok bool) {
	return t.average, t.plays > 0
}

// Best returns the fastest solve time, 0 if none
func (t *Tracker) Best() time.Duration { return t.best }

// Last returns the most recent solve time, 0 if none
func (t *Tracker) Last() time.Duration { return t.last }

// Plays returns the number of solved mazes
func (t *Tracker) Plays() int { return t.plays }

// Failures returns the number of mazes abandoned at the time limit
func (t *Tracker) Failures() int { return t.failures }

// Limit returns the time limit
func (t *Tracker) Limit() time.Duration { return t.limit }

// Reset forgets all recorded times
func (t *Tracker) Reset() {
	*t = Tracker{now: t.now, limit: t.limit}
}

// FormatDuration renders d as mm:ss:mmm
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d:%03d", ms/60000, (ms/1000)%60, ms%1000)
}
