package profiler

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-transform/engine/scene"
)

// Report is one interval's worth of frame and memory statistics.
type Report struct {
	FPS         float64
	Frames      int
	AvgDraws    float64 // draw commands per frame, children included
	AvgCulled   float64 // root objects rejected per frame
	MaxDepth    int     // deepest model-view stack seen in the interval
	HeapMB      float64
	AllocRateMB float64 // MB allocated per second
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
}

// Profiler tracks frame rate, scene render statistics and memory for performance monitoring.
// Outputs a Report to the logger at a configurable interval.
type Profiler struct {
	logger         *slog.Logger
	now            func() time.Time
	frameCount     int
	draws          int
	culled         int
	maxDepth       int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// ProfilerOption configures a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often a Report is produced. Non-positive values are ignored.
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// NewProfiler creates a new Profiler. Update interval defaults to 1 second.
//
// Parameters:
//   - logger: destination for reports; nil uses slog.Default()
//   - options: functional options
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(logger *slog.Logger, options ...ProfilerOption) *Profiler {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Profiler{
		logger:         logger,
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Record accumulates one scene's render statistics into the current interval.
func (p *Profiler) Record(stats scene.FrameStats) {
	p.draws += stats.Draws
	p.culled += stats.Culled
	p.maxDepth = max(p.maxDepth, stats.MaxDepth)
}

// Tick should be called once per frame to track frame timing.
// Logs a Report when the update interval has elapsed.
//
// Returns:
//   - Report: the report for the finished interval, zero when none was produced
//   - bool: true if a report was produced this tick
func (p *Profiler) Tick() (Report, bool) {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return Report{}, false
	}

	seconds := elapsed.Seconds()
	r := Report{
		FPS:       float64(p.frameCount) / seconds,
		Frames:    p.frameCount,
		AvgDraws:  float64(p.draws) / float64(p.frameCount),
		AvgCulled: float64(p.culled) / float64(p.frameCount),
		MaxDepth:  p.maxDepth,
	}

	runtime.ReadMemStats(&p.memStats)
	r.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	r.SysMB = float64(p.memStats.Sys) / 1024 / 1024
	r.AllocRateMB = float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / seconds

	// PauseNs is a circular buffer of the last 256 GC pauses.
	r.GCCount = p.memStats.NumGC
	if r.GCCount > 0 {
		r.LastPauseUs = p.memStats.PauseNs[(r.GCCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if r.GCCount-startIdx > 256 {
			startIdx = r.GCCount - 256
		}
		for i := startIdx; i < r.GCCount; i++ {
			r.MaxPauseUs = max(r.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.logger.Info("frame stats",
		slog.Float64("fps", r.FPS),
		slog.Float64("draws", r.AvgDraws),
		slog.Float64("culled", r.AvgCulled),
		slog.Int("max_depth", r.MaxDepth),
		slog.Float64("heap_mb", r.HeapMB),
		slog.Float64("alloc_rate_mb", r.AllocRateMB),
		slog.Uint64("gc", uint64(r.GCCount)),
		slog.Uint64("gc_last_us", r.LastPauseUs),
		slog.Uint64("gc_max_us", r.MaxPauseUs),
		slog.Float64("sys_mb", r.SysMB),
	)

	p.frameCount = 0
	p.draws = 0
	p.culled = 0
	p.maxDepth = 0
	p.lastTime = currentTime
	p.lastGCCount = r.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return r, true
}
