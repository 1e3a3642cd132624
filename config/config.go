// Package config loads the engine configuration surface from a file.
// The engine itself only ever sees the resulting struct; no package-level
// configuration state exists.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/nskoria/meme-arena/engine"
	"github.com/nskoria/meme-arena/resolve"
)

// File mirrors the on-disk configuration shape
type File struct {
	TickRate             int           `mapstructure:"tick_rate"`
	MaxQueuedActions     int           `mapstructure:"max_queued_actions"`
	MaxActiveEffects     int           `mapstructure:"max_active_effects"`
	EnableResolutionLog  bool          `mapstructure:"enable_resolution_log"`
	EnableEffectChaining bool          `mapstructure:"enable_effect_chaining"`
	DamageMode           string        `mapstructure:"damage_mode"`
	RoundDuration        time.Duration `mapstructure:"round_duration"`
	SuddenDeathTime      time.Duration `mapstructure:"sudden_death_time"`
	TurnInterval         time.Duration `mapstructure:"turn_interval"`
	Seed                 uint64        `mapstructure:"seed"`
}

// Load reads an engine config from path, falling back to the built-in
// defaults for anything the file leaves out. An empty path returns the
// defaults without touching the filesystem.
func Load(path string) (engine.Config, error) {
	def := engine.DefaultConfig()
	if path == "" {
		return def, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("tick_rate", def.TickRate)
	v.SetDefault("max_queued_actions", def.MaxQueuedActions)
	v.SetDefault("max_active_effects", def.MaxActiveEffects)
	v.SetDefault("enable_resolution_log", def.EnableResolutionLog)
	v.SetDefault("enable_effect_chaining", def.EnableEffectChaining)
	v.SetDefault("damage_mode", string(def.DamageMode))
	v.SetDefault("round_duration", def.RoundDuration)
	v.SetDefault("sudden_death_time", def.SuddenDeathTime)
	v.SetDefault("turn_interval", def.TurnInterval)
	v.SetDefault("seed", def.Seed)

	if err := v.ReadInConfig(); err != nil {
		return engine.Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var f File
	if err := v.Unmarshal(&f); err != nil {
		return engine.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	mode := resolve.DamageMode(f.DamageMode)
	switch mode {
	case resolve.ModeStandard, resolve.ModeAdvanced:
	default:
		return engine.Config{}, fmt.Errorf("config %s: unknown damage_mode %q", path, f.DamageMode)
	}
	if f.TickRate <= 0 {
		return engine.Config{}, fmt.Errorf("config %s: tick_rate %d must be positive", path, f.TickRate)
	}

	return engine.Config{
		TickRate:             f.TickRate,
		MaxQueuedActions:     f.MaxQueuedActions,
		MaxActiveEffects:     f.MaxActiveEffects,
		EnableResolutionLog:  f.EnableResolutionLog,
		EnableEffectChaining: f.EnableEffectChaining,
		DamageMode:           mode,
		RoundDuration:        f.RoundDuration,
		SuddenDeathTime:      f.SuddenDeathTime,
		TurnInterval:         f.TurnInterval,
		Seed:                 f.Seed,
	}, nil
}
