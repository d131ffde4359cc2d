// Package schedule paces generation requests against the external
// service's quota. The pacing is cooperative and single-threaded: requests
// are counted per window and the whole run sleeps out the remainder of the
// window once the quota is reached. Bursts at a window boundary are
// possible and acceptable.
package schedule

import "time"

// Window tracks request consumption within a fixed quota window.
type Window struct {
	max   int
	span  time.Duration
	count int
	start time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

func NewWindow(max int, span time.Duration) *Window {
	return newWindow(max, span, time.Now, time.Sleep)
}

func newWindow(max int, span time.Duration, now func() time.Time, sleep func(time.Duration)) *Window {
	if max < 1 {
		max = 1
	}
	return &Window{max: max, span: span, now: now, sleep: sleep}
}

// Record accounts for n requests just issued. When the window's quota is
// reached it blocks until the window has elapsed, then resets.
func (w *Window) Record(n int) {
	if w.start.IsZero() {
		w.start = w.now()
	}
	w.count += n
	if w.count < w.max {
		return
	}

	if remaining := w.span - w.now().Sub(w.start); remaining > 0 {
		w.sleep(remaining)
	}
	w.count = 0
	w.start = w.now()
}
