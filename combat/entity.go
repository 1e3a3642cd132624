package combat

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/nskoria/meme-arena/card"
	"github.com/nskoria/meme-arena/parameter"
	"github.com/nskoria/meme-arena/vmath"
)

// AnimationState is display-only; it never gates resolution outcomes.
// CanAct consults it so entities do not act mid-swing, which is the one
// behavioral touchpoint it has.
type AnimationState string

const (
	AnimIdle      AnimationState = "idle"
	AnimAttacking AnimationState = "attacking"
	AnimDefending AnimationState = "defending"
	AnimDamaged   AnimationState = "damaged"
	AnimDead      AnimationState = "dead"
)

// Entity is a single combatant built from a card. Derived stats are fixed at
// construction; runtime state mutates only through the methods below.
// Not safe for concurrent use; the engine owns all entities of a match on
// one goroutine.
type Entity struct {
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

	effects map[string]Effect
}

// NewEntity validates the card and derives combat stats from its base
// fields, rarity multiplier and level bonus. Derivation rounds to the
// nearest integer so the rarity/level table stays exact despite binary
// float scale factors like 3.0 * 1.2.
func NewEntity(c card.Card, side Side, pos vmath.Vec2) (*Entity, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	for _, d := range c.Effects {
		if _, ok := ParseEffectType(d.Type); !ok {
			return nil, fmt.Errorf("%w: card %s: unknown effect type %q", card.ErrInvalidCard, c.ID, d.Type)
		}
	}
	mult, _ := c.Rarity.Multiplier()
	scale := mult * card.LevelBonus(c.Level)

	e := &Entity{
		ID:        uuid.NewString(),
		Side:      side,
		Card:      c,
		Attack:    int(math.Round(float64(c.Stats.Attack) * scale)),
		Defense:   int(math.Round(float64(c.Stats.Defense) * scale)),
		MaxHealth: int(math.Round(float64(c.Stats.Health) * scale)),
		MaxEnergy: math.Round(float64(c.Stats.EnergyCost) * scale),
		Speed:     int(math.Round(float64(c.Stats.Speed) * scale)),
		Range:     int(math.Round(float64(c.Stats.Range) * scale)),
		Alive:     true,
		Anim:      AnimIdle,
		Pos:       pos,
		effects:   make(map[string]Effect),
	}
	e.Health = e.MaxHealth
	e.Energy = e.MaxEnergy
	return e, nil
}

// TakeDamage applies incoming damage and returns the amount actually
// absorbed by shield plus health. Shield absorbs first; the remainder is
// mitigated by defense with a floor of 1 so exhausted shields cannot stall
// a match. Dead entities take nothing.
func (e *Entity) TakeDamage(amount int, source *Entity) int {
	if !e.Alive || amount <= 0 {
		return 0
	}
	absorbed := amount
	if e.Shield < absorbed {
		absorbed = e.Shield
	}
	e.Shield -= absorbed
	applied := absorbed

	remaining := amount - absorbed
	if remaining > 0 {
		final := int(math.Floor(float64(remaining) * (1 - float64(e.Defense)/100)))
		if final < parameter.CombatDamageFloor {
			final = parameter.CombatDamageFloor
		}
		if final > e.Health {
			// overkill counts only the health that was there
			final = e.Health
		}
		e.Health -= final
		applied += final
		if e.Health <= 0 {
			e.die()
		} else {
			e.setAnim(AnimDamaged)
		}
	}
	return applied
}

// Heal restores health up to MaxHealth and returns the amount actually
// restored. Dead entities are never healed back.
func (e *Entity) Heal(amount int) int {
	if !e.Alive || amount <= 0 {
		return 0
	}
	missing := e.MaxHealth - e.Health
	if amount > missing {
		amount = missing
	}
	e.Health += amount
	return amount
}

// ApplyEffect stores the effect, replacing any existing effect of the same
// type. At most one effect per type is ever active. SHIELD effects grant
// their value immediately; the stored entry tracks duration for display.
func (e *Entity) ApplyEffect(eff Effect) {
	if !e.Alive {
		return
	}
	for id, old := range e.effects {
		if old.Type == eff.Type {
			delete(e.effects, id)
		}
	}
	e.effects[eff.ID] = eff
	if eff.Type == EffectShield {
		e.Shield += int(eff.Value)
	}
}

// RemoveEffect is idempotent
func (e *Entity) RemoveEffect(id string) {
	delete(e.effects, id)
}

// EffectByType returns the active effect of the given type, if any
func (e *Entity) EffectByType(t EffectType) (Effect, bool) {
	for _, eff := range e.effects {
		if eff.Type == t {
			return eff, true
		}
	}
	return Effect{}, false
}

// Effects returns active effects ordered by id for stable iteration
func (e *Entity) Effects() []Effect {
	out := make([]Effect, 0, len(e.effects))
	for _, eff := range e.effects {
		out = append(out, eff)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// EffectCount reports active effects without allocating
func (e *Entity) EffectCount() int {
	return len(e.effects)
}

// Update advances effects, animation and energy by dt seconds and returns
// the effects that expired this call. Periodic DAMAGE/HEALING effects tick
// floor(accumulated/tickRate) times, routed through TakeDamage/Heal so
// shield and mitigation rules hold for damage over time as well.
func (e *Entity) Update(dt float64) []Effect {
	if !e.Alive || dt <= 0 {
		return nil
	}

	var expired []Effect
	ids := make([]string, 0, len(e.effects))
	for id := range e.effects {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		eff, ok := e.effects[id]
		if !ok {
			continue
		}
		if eff.TickRate > 0 && (eff.Type == EffectDamage || eff.Type == EffectHealing) {
			eff.TickAccum += dt
			if ticks := int(math.Floor(eff.TickAccum / eff.TickRate)); ticks > 0 {
				eff.TickAccum -= float64(ticks) * eff.TickRate
				amount := int(math.Floor(eff.Value * float64(ticks)))
				if eff.Type == EffectDamage {
					e.TakeDamage(amount, nil)
				} else {
					e.Heal(amount)
				}
				if !e.Alive {
					// death cleared the effect map
					return expired
				}
			}
		}
		eff.Remaining -= dt
		if eff.Remaining <= 0 {
			delete(e.effects, id)
			expired = append(expired, eff)
		} else {
			e.effects[id] = eff
		}
	}

	if e.Anim != AnimIdle && e.Anim != AnimDead {
		e.AnimProgress += dt * parameter.CombatAnimationRate
		if e.AnimProgress >= 1.0 {
			e.Anim = AnimIdle
			e.AnimProgress = 0
		}
	}

	e.Energy = math.Min(e.MaxEnergy, e.Energy+parameter.CombatEnergyRegenPerSecond*dt)
	return expired
}

// AttackCost is the energy price of one direct attack
func (e *Entity) AttackCost() int {
	return e.Attack / parameter.CombatAttackEnergyDivisor
}

// AttackTarget performs a direct attack: deducts energy, rolls the entity
// crit chance and applies damage through the target's TakeDamage. Returns
// the damage actually applied and whether the roll was critical. A dead
// participant or insufficient energy yields (0, false) with no state change.
func (e *Entity) AttackTarget(target *Entity, rng *vmath.FastRand) (int, bool) {
	if !e.Alive || target == nil || !target.Alive {
		return 0, false
	}
	cost := e.AttackCost()
	if e.Energy < float64(cost) {
		return 0, false
	}
	e.Energy -= float64(cost)

	damage := e.Attack
	crit := rng != nil && rng.Chance(parameter.CombatAttackCritChance)
	if crit {
		damage *= parameter.CombatCritMultiplier
	}
	applied := target.TakeDamage(damage, e)
	e.setAnim(AnimAttacking)
	return applied, crit
}

// SpendEnergy deducts cost if available, false leaves energy untouched
func (e *Entity) SpendEnergy(cost int) bool {
	if !e.Alive || e.Energy < float64(cost) {
		return false
	}
	e.Energy -= float64(cost)
	return true
}

// SetAnimation switches display state and restarts its progress
func (e *Entity) SetAnimation(s AnimationState) {
	e.setAnim(s)
}

// CanAct reports whether the entity can initiate an action this tick
func (e *Entity) CanAct() bool {
	return e.Alive && e.Anim == AnimIdle && e.Energy > 0
}

// EffectiveSpeed is base speed with the freeze penalty applied
func (e *Entity) EffectiveSpeed() int {
	speed := e.Speed
	for _, eff := range e.effects {
		if eff.Type == EffectDebuff && eff.Name == EffectNameFreeze {
			speed = int(math.Floor(float64(speed) * (1 - eff.Value/100)))
		}
	}
	if speed < 0 {
		speed = 0
	}
	return speed
}

// HealthFraction is current health relative to max, used for timeout
// victory comparisons
func (e *Entity) HealthFraction() float64 {
	if e.MaxHealth == 0 {
		return 0
	}
	return float64(e.Health) / float64(e.MaxHealth)
}

func (e *Entity) setAnim(s AnimationState) {
	if !e.Alive {
		return
	}
	e.Anim = s
	e.AnimProgress = 0
}

// die is the single death path: health clamps to zero, the alive flag
// drops, every effect clears. Entities are never revived within a match.
func (e *Entity) die() {
	e.Health = 0
	e.Alive = false
	e.Anim = AnimDead
	e.AnimProgress = 0
	e.effects = make(map[string]Effect)
}
