package utils

import (
	"runtime"
	"testing"
	"time"
)

// LeakDetector fails a test when goroutines started during it are still
// running at the end. Batch decoding fans work out over goroutines, so its
// tests use this to prove every worker is joined.
type LeakDetector struct {
	tb       testing.TB
	baseline int
	slack    int
	settle   time.Duration
	samples  int
}

// LeakOption configures a LeakDetector
type LeakOption func(*LeakDetector)

// WithSlack allows n goroutines to outlive the test
func WithSlack(n int) LeakOption {
	return func(d *LeakDetector) {
		d.slack = n
	}
}

// WithSettleDelay sets how long to wait for goroutines to wind down
func WithSettleDelay(delay time.Duration) LeakOption {
	return func(d *LeakDetector) {
		d.settle = delay
	}
}

// NewLeakDetector records the current goroutine count as the baseline
func NewLeakDetector(tb testing.TB, opts ...LeakOption) *LeakDetector {
	d := &LeakDetector{
		tb:      tb,
		settle:  50 * time.Millisecond,
		samples: 3,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.baseline = runtime.NumGoroutine()
	return d
}

// Verify reports an error on the test if the goroutine count grew past the slack.
// The lowest of several samples is used since exiting goroutines linger briefly.
func (d *LeakDetector) Verify() {
	d.tb.Helper()

	lowest := -1
	for i := 0; i < d.samples; i++ {
		time.Sleep(d.settle)
		if n := runtime.NumGoroutine(); lowest < 0 || n < lowest {
			lowest = n
		}
	}

	if leaked := lowest - d.baseline; leaked > d.slack {
		buf := make([]byte, 1<<20)
		n := runtime.Stack(buf, true)
		d.tb.Errorf("goroutine leak: started with %d, ended with %d (allowed %d)\n%s",
			d.baseline, lowest, d.slack, buf[:n])
	}
}
