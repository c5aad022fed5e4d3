package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewProfilerDefaultInterval(t *testing.T) {
	assert.Equal(t, DefaultInterval, NewProfiler(0).Interval())
	assert.Equal(t, 5*time.Second, NewProfiler(5*time.Second).Interval())
}

func TestTickLogsOncePerInterval(t *testing.T) {
	start := time.Unix(0, 0)
	clock := start
	p := NewProfiler(time.Second)
	p.lastTime = start
	p.now = func() time.Time { return clock }

	for range 29 {
		clock = clock.Add(time.Second / 60)
		assert.False(t, p.Tick())
	}
	clock = start.Add(time.Second)
	assert.True(t, p.Tick())
	assert.InDelta(t, 30, p.Last().FPS, 1e-9)

	// The counter restarts after a log line.
	clock = clock.Add(time.Second / 2)
	assert.False(t, p.Tick())
}
