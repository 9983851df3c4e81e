package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct {
	t time.Time
}

func (c *stepClock) now() time.Time { return c.t }

func TestTickReportsOncePerInterval(t *testing.T) {
	clock := &stepClock{t: time.Unix(1000, 0)}
	p := NewProfiler(WithClock(clock.now), WithInterval(time.Second))

	for range 49 {
		clock.t = clock.t.Add(20 * time.Millisecond)
		_, ok := p.Tick()
		require.False(t, ok)
	}

	clock.t = clock.t.Add(20 * time.Millisecond)
	st, ok := p.Tick()
	require.True(t, ok)
	assert.InDelta(t, 50, st.FPS, 1e-9)
	assert.InDelta(t, 20, st.FrameTimeMs, 1e-9)
	assert.Greater(t, st.SysMB, 0.0)

	_, ok = p.Tick()
	assert.False(t, ok)
}

func TestWithIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithInterval(0))
	assert.Equal(t, time.Second, p.updateInterval)
}
