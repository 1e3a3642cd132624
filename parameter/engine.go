package parameter

import "time"

// Loop Timing
const (
	// EngineTickRate is the default fixed-timestep rate in ticks per second
	EngineTickRate = 60

	// EngineTickInterval is the default loop interval derived from EngineTickRate
	EngineTickInterval = time.Second / EngineTickRate

	// EngineMaxBehindTicks caps drift correction when the loop falls behind the wall clock
	EngineMaxBehindTicks = 2
)

// Queues
const (
	// ActionQueueSize is the fixed capacity of the pending-action ring buffer
	ActionQueueSize = 256

	// ActionQueueMask is the bitmask for fast modulo operations (256 - 1)
	ActionQueueMask = 255

	// EventQueueSize is the fixed capacity of the outbound event ring buffer
	EventQueueSize = 1024

	// EventQueueMask is the bitmask for fast modulo operations (1024 - 1)
	EventQueueMask = 1023
)

// Arena Layout
const (
	// EngineArenaWidth is the arena x extent in arena units, sides deploy at opposite edges
	EngineArenaWidth = 20.0

	// EngineArenaRowSpacing is the vertical gap between deployed roster rows
	EngineArenaRowSpacing = 2.0
)

// Match Rules
const (
	// EngineRosterPerSide is the number of entities built from each deck at match start
	EngineRosterPerSide = 3

	// EngineRoundDuration is the default elapsed time at which a round is decided on health fraction
	EngineRoundDuration = 3 * time.Minute

	// EngineSuddenDeathTime is the default hard cutoff for a match
	EngineSuddenDeathTime = 4 * time.Minute

	// EngineTurnInterval is the default cadence of automated turn advancement
	EngineTurnInterval = 2 * time.Second
)
