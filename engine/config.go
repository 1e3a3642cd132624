package engine

import (
	"time"

	"github.com/nskoria/meme-arena/parameter"
	"github.com/nskoria/meme-arena/resolve"
)

// Config is the construction-time surface of one engine instance.
// Zero fields fall back to the parameter defaults; the struct is passed by
// value and owned by the engine after New.
type Config struct {
	// TickRate is the fixed-timestep rate in steps per second
	TickRate int

	// MaxQueuedActions caps the pending-action queue depth. Submissions
	// beyond it are rejected synchronously. Bounded above by the ring
	// capacity.
	MaxQueuedActions int

	// MaxActiveEffects is the advisory budget on simultaneous status
	// effects, reported to the monitor; it never blocks resolution
	MaxActiveEffects int

	// EnableResolutionLog populates human-readable summaries on results
	EnableResolutionLog bool

	// EnableEffectChaining derives elemental effects on SPECIAL hits too
	EnableEffectChaining bool

	// DamageMode selects the resolver pipeline variant
	DamageMode resolve.DamageMode

	// RoundDuration decides the match on aggregate health fraction once
	// elapsed, ties play on
	RoundDuration time.Duration

	// SuddenDeathTime is the hard cutoff; ties fall to the player side
	SuddenDeathTime time.Duration

	// TurnInterval is the cadence of turn alternation while active
	TurnInterval time.Duration

	// Seed drives the match RNG (crits, AI selection). Zero seeds from
	// the wall clock, any other value makes the match replayable.
	Seed uint64
}

// DefaultConfig returns the parameter-package defaults
func DefaultConfig() Config {
	return Config{
		TickRate:         parameter.EngineTickRate,
		MaxQueuedActions: parameter.ActionQueueSize,
		MaxActiveEffects: parameter.MonitorMaxActiveEffects,
		DamageMode:       resolve.ModeStandard,
		RoundDuration:    parameter.EngineRoundDuration,
		SuddenDeathTime:  parameter.EngineSuddenDeathTime,
		TurnInterval:     parameter.EngineTurnInterval,
	}
}

// withDefaults fills zero fields and clamps the queue cap to the ring size
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.TickRate <= 0 {
		c.TickRate = d.TickRate
	}
	if c.MaxQueuedActions <= 0 || c.MaxQueuedActions > parameter.ActionQueueSize {
		c.MaxQueuedActions = parameter.ActionQueueSize
	}
	if c.MaxActiveEffects <= 0 {
		c.MaxActiveEffects = d.MaxActiveEffects
	}
	if c.DamageMode == "" {
		c.DamageMode = d.DamageMode
	}
	if c.RoundDuration <= 0 {
		c.RoundDuration = d.RoundDuration
	}
	if c.SuddenDeathTime <= 0 {
		c.SuddenDeathTime = d.SuddenDeathTime
	}
	if c.SuddenDeathTime < c.RoundDuration {
		c.SuddenDeathTime = c.RoundDuration
	}
	if c.TurnInterval <= 0 {
		c.TurnInterval = d.TurnInterval
	}
	return c
}

// TickInterval is the loop interval derived from TickRate
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}
