package hal

import (
	"sync"
	"time"
)

type hostTime struct {
	mu sync.Mutex

	start   time.Time
	virtual bool
	elapsed time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{}
}

func (t *hostTime) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsed
}

// step advances the clock: by d when the clock is virtual, to the wall clock otherwise.
func (t *hostTime) step(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.virtual {
		t.elapsed += d
		return
	}
	now := time.Now()
	if t.start.IsZero() {
		t.start = now
	}
	t.elapsed = now.Sub(t.start)
}
