package parameter

import "time"

// Sampling
const (
	// MonitorFPSWindow is the rolling window over which FPS is counted
	MonitorFPSWindow = time.Second

	// MonitorFrameSamples is the ring capacity of recent frame times for percentile stats
	MonitorFrameSamples = 240

	// MonitorMemSampleEvery is the number of ticks between runtime memory reads,
	// ReadMemStats stops the world briefly so it is not taken every tick
	MonitorMemSampleEvery = 60
)

// Alert Thresholds
const (
	// MonitorAlertDebounce is the minimum interval between alerts of the same category
	MonitorAlertDebounce = time.Second

	// MonitorLowFPSThreshold raises a low-fps alert below this rate
	MonitorLowFPSThreshold = 30.0

	// MonitorFrameTimeBudget raises a frame-time alert above this duration
	MonitorFrameTimeBudget = 33 * time.Millisecond

	// MonitorUpdateTimeBudget raises an update-time alert above this duration
	MonitorUpdateTimeBudget = 8 * time.Millisecond

	// MonitorRenderTimeBudget raises a render-time alert above this duration
	MonitorRenderTimeBudget = 16 * time.Millisecond

	// MonitorHighMemoryBytes raises a memory alert above this heap size
	MonitorHighMemoryBytes = 256 << 20
)

// Soft Budgets
const (
	// MonitorMaxActiveEffects is the advisory ceiling on simultaneous status effects
	MonitorMaxActiveEffects = 64

	// MonitorMaxQueuedActions is the advisory ceiling on queue depth before a capacity alert
	MonitorMaxQueuedActions = 192
)
