package profiler

import (
	"log/slog"
	"runtime"
	"time"
)

// Stats is one interval's worth of frame and memory statistics.
type Stats struct {
	FPS         float64
	FrameTimeMs float64
	HeapMB      float64
	AllocRateMB float64
	SysMB       float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the default slog logger at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	now func() time.Time
}

// NewProfiler creates a new Profiler. Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per drawn frame.
// When the update interval has elapsed it collects and logs FPS, heap usage,
// allocation rate, GC count/pause times and total memory.
//
// Returns:
//   - Stats: the statistics for the interval, zero if none were collected
//   - bool: true if stats were collected this tick
func (p *Profiler) Tick() (Stats, bool) {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return Stats{}, false
	}

	st := Stats{
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		FrameTimeMs: float64(elapsed.Milliseconds()) / float64(p.frameCount),
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc is live heap, TotalAlloc grows forever and tracks churn, Sys is the process footprint.
	st.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	st.SysMB = float64(p.memStats.Sys) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	st.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	st.GCCount = p.memStats.NumGC
	if st.GCCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		st.LastPauseUs = p.memStats.PauseNs[(st.GCCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if st.GCCount-startIdx > 256 {
			startIdx = st.GCCount - 256
		}
		for i := startIdx; i < st.GCCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > st.MaxPauseUs {
				st.MaxPauseUs = pause
			}
		}
	}

	slog.Info("profiler",
		"fps", st.FPS,
		"frame_ms", st.FrameTimeMs,
		"heap_mb", st.HeapMB,
		"alloc_mb_s", st.AllocRateMB,
		"gc", st.GCCount,
		"gc_last_us", st.LastPauseUs,
		"gc_max_us", st.MaxPauseUs,
		"sys_mb", st.SysMB,
	)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = st.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return st, true
}
