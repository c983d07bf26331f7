package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerCoalesces(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(30*time.Millisecond, func() { calls.Add(1) })
	defer d.Stop()

	for range 5 {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "one burst, one call")
}

func TestDebouncerTrailingEdge(t *testing.T) {
	var at atomic.Int64
	start := time.Now()
	d := NewDebouncer(40*time.Millisecond, func() { at.Store(int64(time.Since(start))) })
	defer d.Stop()

	d.Trigger()
	time.Sleep(20 * time.Millisecond)
	d.Trigger()

	assert.Eventually(t, func() bool { return at.Load() != 0 }, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, time.Duration(at.Load()), 60*time.Millisecond)
}

func TestDebouncerStop(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() { calls.Add(1) })
	d.Trigger()
	d.Stop()
	d.Trigger()

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestDebouncerDefaultDelay(t *testing.T) {
	d := NewDebouncer(0, func() {})
	assert.Equal(t, DefaultDelay, d.delay)
	assert.Equal(t, 80*time.Millisecond, DefaultDelay)
}
