package combat

import (
	"github.com/nskoria/meme-arena/card"
	"github.com/nskoria/meme-arena/vmath"
)

// EntitySnapshot is the complete serializable state of one entity.
// Restoring a snapshot reproduces the entity exactly, identity and effect
// map included; derived stats are copied, not re-derived.
type EntitySnapshot struct {
	ID   string    `json:"id"`
	Side Side      `json:"side"`
	Card card.Card `json:"card"`

	Attack    int     `json:"attack"`
	Defense   int     `json:"defense"`
	MaxHealth int     `json:"maxHealth"`
	MaxEnergy float64 `json:"maxEnergy"`
	Speed     int     `json:"speed"`
	Range     int     `json:"range"`

	Health       int            `json:"health"`
	Energy       float64        `json:"energy"`
	Shield       int            `json:"shield"`
	Alive        bool           `json:"alive"`
	Anim         AnimationState `json:"anim"`
	AnimProgress float64        `json:"animProgress"`
	Pos          vmath.Vec2     `json:"pos"`

	Effects []Effect `json:"effects,omitempty"`
}

// Snapshot captures the entity's full state
func (e *Entity) Snapshot() EntitySnapshot {
	return EntitySnapshot{
		ID:           e.ID,
		Side:         e.Side,
		Card:         e.Card,
		Attack:       e.Attack,
		Defense:      e.Defense,
		MaxHealth:    e.MaxHealth,
		MaxEnergy:    e.MaxEnergy,
		Speed:        e.Speed,
		Range:        e.Range,
		Health:       e.Health,
		Energy:       e.Energy,
		Shield:       e.Shield,
		Alive:        e.Alive,
		Anim:         e.Anim,
		AnimProgress: e.AnimProgress,
		Pos:          e.Pos,
		Effects:      e.Effects(),
	}
}

// RestoreEntity rebuilds an entity from a snapshot
func RestoreEntity(s EntitySnapshot) *Entity {
	e := &Entity{
		ID:           s.ID,
		Side:         s.Side,
		Card:         s.Card,
		Attack:       s.Attack,
		Defense:      s.Defense,
		MaxHealth:    s.MaxHealth,
		MaxEnergy:    s.MaxEnergy,
		Speed:        s.Speed,
		Range:        s.Range,
		Health:       s.Health,
		Energy:       s.Energy,
		Shield:       s.Shield,
		Alive:        s.Alive,
		Anim:         s.Anim,
		AnimProgress: s.AnimProgress,
		Pos:          s.Pos,
		effects:      make(map[string]Effect, len(s.Effects)),
	}
	for _, eff := range s.Effects {
		e.effects[eff.ID] = eff
	}
	return e
}
