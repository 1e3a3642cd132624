package combat

import (
	"github.com/google/uuid"

	"github.com/nskoria/meme-arena/parameter"
)

// EffectType is the closed set of status effect kinds. Card-declared effect
// strings are parsed against this set at entity construction; anything
// outside it is rejected there.
type EffectType string

const (
	EffectDamage  EffectType = "DAMAGE"
	EffectHealing EffectType = "HEALING"
	EffectShield  EffectType = "SHIELD"
	EffectBuff    EffectType = "BUFF"
	EffectDebuff  EffectType = "DEBUFF"
)

// ParseEffectType resolves a card-declared effect string, false for unknown values
func ParseEffectType(s string) (EffectType, bool) {
	switch t := EffectType(s); t {
	case EffectDamage, EffectHealing, EffectShield, EffectBuff, EffectDebuff:
		return t, true
	default:
		return "", false
	}
}

// Elemental effect names carried on Effect.Name for display and for the
// freeze speed penalty. The authoritative behavior is always Type.
const (
	EffectNameBurn   = "burn"
	EffectNameFreeze = "freeze"
	EffectNameStun   = "stun"
	EffectNameShield = "shield"
)

// Effect is a timed modifier attached to one entity.
// Duration and Remaining are wall seconds; TickRate is seconds between
// periodic DAMAGE/HEALING applications, 0 for effects that never tick.
// TickAccum carries fractional time toward the next periodic tick across
// updates so small frame deltas still tick at the declared rate.
type Effect struct {
	ID        string     `json:"id"`
	Type      EffectType `json:"type"`
	Name      string     `json:"name,omitempty"`
	Value     float64    `json:"value"`
	Duration  float64    `json:"duration"`
	TickRate  float64    `json:"tickRate,omitempty"`
	Remaining float64    `json:"remaining"`
	TickAccum float64    `json:"tickAccum,omitempty"`
}

// NewEffect builds an effect lasting the given number of standard ticks
func NewEffect(t EffectType, name string, value float64, ticks int) Effect {
	d := float64(ticks) * parameter.CombatEffectTickInterval
	return Effect{
		ID:        uuid.NewString(),
		Type:      t,
		Name:      name,
		Value:     value,
		Duration:  d,
		TickRate:  parameter.CombatEffectTickInterval,
		Remaining: d,
	}
}

// NewTimedEffect builds an effect with an explicit duration in seconds,
// used for card-declared effects whose declarations carry raw durations
func NewTimedEffect(t EffectType, value, duration float64) Effect {
	e := Effect{
		ID:        uuid.NewString(),
		Type:      t,
		Value:     value,
		Duration:  duration,
		Remaining: duration,
	}
	if t == EffectDamage || t == EffectHealing {
		e.TickRate = parameter.CombatEffectTickInterval
	}
	return e
}
