// Package monitor observes frame timing and resource counts for one match
// and raises advisory threshold alerts. It never blocks and never feeds
// back into combat outcomes; its only outputs are events and metrics.
package monitor

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nskoria/meme-arena/event"
	"github.com/nskoria/meme-arena/parameter"
	"github.com/nskoria/meme-arena/status"
)

// Clock is the time source alerts are debounced against.
// engine.SystemTime and engine.MockTimeProvider both satisfy it.
type Clock interface {
	Now() time.Time
}

// Alert categories, one debounce window per category
const (
	CategoryFPS        = "fps"
	CategoryMemory     = "memory"
	CategoryFrameTime  = "frame_time"
	CategoryUpdateTime = "update_time"
	CategoryRenderTime = "render_time"
	CategoryActions    = "queued_actions"
	CategoryEffects    = "active_effects"
)

// Sample is one tick's observations, fed by whoever drives the frame
type Sample struct {
	FrameTime  time.Duration
	UpdateTime time.Duration
	RenderTime time.Duration

	Entities      int
	Effects       int
	QueuedActions int
}

// Metrics is the point-in-time view for diagnostics output
type Metrics struct {
	FPS        float64       `json:"fps"`
	FrameTime  time.Duration `json:"frameTime"`
	UpdateTime time.Duration `json:"updateTime"`
	RenderTime time.Duration `json:"renderTime"`
	HeapBytes  uint64        `json:"heapBytes"`

	Entities      int `json:"entities"`
	Effects       int `json:"effects"`
	QueuedActions int `json:"queuedActions"`
}

// FrameStats are rolling percentiles over recent frame times
type FrameStats struct {
	P50 time.Duration `json:"p50"`
	P95 time.Duration `json:"p95"`
	P99 time.Duration `json:"p99"`
}

// Monitor accumulates samples from one observer goroutine; readers of
// Metrics and Percentiles may come from anywhere.
type Monitor struct {
	clock  Clock
	events *event.Queue

	mu         sync.Mutex
	frames     [parameter.MonitorFrameSamples]time.Duration
	frameIdx   int
	frameCount int

	windowStart  time.Time
	windowFrames int
	fps          float64

	sinceMemSample int
	heapBytes      uint64

	lastAlert map[string]time.Time
	last      Sample

	// Cached metric pointers
	statFPS     *status.AtomicFloat
	statFrameMs *status.AtomicFloat
	statHeap    *atomic.Int64
	statAlerts  *atomic.Int64
}

// New creates a monitor publishing alerts onto the given event queue and
// metrics into the registry
func New(clock Clock, events *event.Queue, reg *status.Registry) *Monitor {
	return &Monitor{
		clock:       clock,
		events:      events,
		windowStart: clock.Now(),
		lastAlert:   make(map[string]time.Time),
		statFPS:     reg.Floats.Get("monitor.fps"),
		statFrameMs: reg.Floats.Get("monitor.frame_ms"),
		statHeap:    reg.Ints.Get("monitor.heap_bytes"),
		statAlerts:  reg.Ints.Get("monitor.alerts"),
	}
}

// Observe ingests one tick's sample: rolls the FPS window, records the
// frame time, samples memory on its cadence and evaluates every alert
// threshold
func (m *Monitor) Observe(s Sample) {
	now := m.clock.Now()

	m.mu.Lock()
	m.last = s

	m.frames[m.frameIdx] = s.FrameTime
	m.frameIdx = (m.frameIdx + 1) % parameter.MonitorFrameSamples
	if m.frameCount < parameter.MonitorFrameSamples {
		m.frameCount++
	}
	m.statFrameMs.Set(float64(s.FrameTime) / float64(time.Millisecond))

	m.windowFrames++
	fpsKnown := false
	if elapsed := now.Sub(m.windowStart); elapsed >= parameter.MonitorFPSWindow {
		m.fps = float64(m.windowFrames) / elapsed.Seconds()
		m.statFPS.Set(m.fps)
		m.windowFrames = 0
		m.windowStart = now
		fpsKnown = true
	}

	m.sinceMemSample++
	memKnown := false
	if m.sinceMemSample >= parameter.MonitorMemSampleEvery {
		m.sinceMemSample = 0
		// ReadMemStats stops the world briefly, hence the cadence
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		m.heapBytes = ms.HeapAlloc
		m.statHeap.Store(int64(ms.HeapAlloc))
		memKnown = true
	}
	fps := m.fps
	heap := m.heapBytes
	m.mu.Unlock()

	if fpsKnown && fps < parameter.MonitorLowFPSThreshold {
		m.alert(now, CategoryFPS,
			fmt.Sprintf("frame rate %.1f below %.0f", fps, float64(parameter.MonitorLowFPSThreshold)),
			fps, parameter.MonitorLowFPSThreshold)
	}
	if memKnown && heap > parameter.MonitorHighMemoryBytes {
		m.alert(now, CategoryMemory,
			fmt.Sprintf("heap %d MiB above budget", heap>>20),
			float64(heap), float64(parameter.MonitorHighMemoryBytes))
	}
	if s.FrameTime > parameter.MonitorFrameTimeBudget {
		m.alert(now, CategoryFrameTime,
			fmt.Sprintf("frame took %s", s.FrameTime),
			s.FrameTime.Seconds(), parameter.MonitorFrameTimeBudget.Seconds())
	}
	if s.UpdateTime > parameter.MonitorUpdateTimeBudget {
		m.alert(now, CategoryUpdateTime,
			fmt.Sprintf("update took %s", s.UpdateTime),
			s.UpdateTime.Seconds(), parameter.MonitorUpdateTimeBudget.Seconds())
	}
	if s.RenderTime > parameter.MonitorRenderTimeBudget {
		m.alert(now, CategoryRenderTime,
			fmt.Sprintf("render took %s", s.RenderTime),
			s.RenderTime.Seconds(), parameter.MonitorRenderTimeBudget.Seconds())
	}
	if s.QueuedActions > parameter.MonitorMaxQueuedActions {
		m.alert(now, CategoryActions,
			fmt.Sprintf("%d actions queued", s.QueuedActions),
			float64(s.QueuedActions), parameter.MonitorMaxQueuedActions)
	}
	if s.Effects > parameter.MonitorMaxActiveEffects {
		m.alert(now, CategoryEffects,
			fmt.Sprintf("%d effects active", s.Effects),
			float64(s.Effects), parameter.MonitorMaxActiveEffects)
	}
}

// alert publishes a debounced threshold crossing, at most one per category
// per debounce window
func (m *Monitor) alert(now time.Time, category, msg string, value, threshold float64) {
	m.mu.Lock()
	if last, ok := m.lastAlert[category]; ok && now.Sub(last) < parameter.MonitorAlertDebounce {
		m.mu.Unlock()
		return
	}
	m.lastAlert[category] = now
	m.mu.Unlock()

	m.statAlerts.Add(1)
	m.events.Push(event.Event{Type: event.TypePerfAlert, Payload: &event.PerfAlertPayload{
		Category:  category,
		Message:   msg,
		Value:     value,
		Threshold: threshold,
	}})
}

// Metrics returns the point-in-time view of the most recent sample
func (m *Monitor) Metrics() Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Metrics{
		FPS:           m.fps,
		FrameTime:     m.last.FrameTime,
		UpdateTime:    m.last.UpdateTime,
		RenderTime:    m.last.RenderTime,
		HeapBytes:     m.heapBytes,
		Entities:      m.last.Entities,
		Effects:       m.last.Effects,
		QueuedActions: m.last.QueuedActions,
	}
}

// Percentiles computes p50/p95/p99 over the recorded frame-time ring
func (m *Monitor) Percentiles() FrameStats {
	m.mu.Lock()
	samples := make([]time.Duration, m.frameCount)
	copy(samples, m.frames[:m.frameCount])
	m.mu.Unlock()

	if len(samples) == 0 {
		return FrameStats{}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	pick := func(p float64) time.Duration {
		idx := int(p * float64(len(samples)-1))
		return samples[idx]
	}
	return FrameStats{
		P50: pick(0.50),
		P95: pick(0.95),
		P99: pick(0.99),
	}
}
