// Package resolve turns one combat action into one result. The resolver is
// stateless per call: it operates only on the entities handed to it and
// never drives timing. Every call path returns a result; failures surface
// as INVALID or ERROR results, not as panics or errors.
package resolve

import (
	"fmt"
	"math"

	"github.com/nskoria/meme-arena/combat"
	"github.com/nskoria/meme-arena/parameter"
	"github.com/nskoria/meme-arena/vmath"
)

// DamageMode selects the attack pipeline variant
type DamageMode string

const (
	// ModeStandard is the plain buff/debuff/mitigation/crit pipeline
	ModeStandard DamageMode = "standard"

	// ModeAdvanced adds range falloff and a speed-based crit bonus
	ModeAdvanced DamageMode = "advanced"
)

// Options configure a resolver for the duration of a match
type Options struct {
	Mode DamageMode

	// EffectChaining also derives elemental effects on SPECIAL hits
	EffectChaining bool

	// SummaryLog populates Result.Summary with a human-readable line
	SummaryLog bool
}

// Context is the slice of the battle one resolution may touch. Enemies
// holds the living opponents of the source; the engine decides that set,
// which is how area damage distribution stays an engine concern.
type Context struct {
	Source  *combat.Entity
	Target  *combat.Entity
	Enemies []*combat.Entity
}

type Resolver struct {
	opts Options
}

func New(opts Options) *Resolver {
	if opts.Mode == "" {
		opts.Mode = ModeStandard
	}
	return &Resolver{opts: opts}
}

// Resolve computes the outcome of one action. The deferred recover turns
// any panic during computation into an ERROR result so a single bad action
// can never take down the match loop.
func (r *Resolver) Resolve(a combat.Action, ctx Context, rng *vmath.FastRand) (res combat.Result) {
	defer func() {
		if rec := recover(); rec != nil {
			res = combat.ErrorResult(a.ID, fmt.Sprintf("resolution panic: %v", rec))
		}
	}()

	if a.ID == "" {
		return combat.InvalidResult(a.ID, "missing action id")
	}
	if a.Type == "" {
		return combat.InvalidResult(a.ID, "missing action type")
	}
	if ctx.Source == nil {
		return combat.InvalidResult(a.ID, "missing source entity")
	}
	if !ctx.Source.Alive {
		return combat.InvalidResult(a.ID, "source entity is dead")
	}

	switch a.Type {
	case combat.ActionAttack:
		return r.resolveAttack(a, ctx, rng)
	case combat.ActionDefend:
		return r.resolveDefend(a, ctx)
	case combat.ActionSpecial:
		return r.resolveSpecial(a, ctx, rng)
	case combat.ActionPlayCard:
		return r.resolvePlayCard(a, ctx)
	default:
		return combat.ErrorResult(a.ID, fmt.Sprintf("unsupported action type %q", a.Type))
	}
}

// resolveDefend converts half the defender's defense into shield.
// Repeated defends stack without a cap.
func (r *Resolver) resolveDefend(a combat.Action, ctx Context) combat.Result {
	src := ctx.Source
	granted := int(math.Floor(float64(src.Defense) * parameter.CombatDefendShieldRatio))
	src.Shield += granted
	src.SetAnimation(combat.AnimDefending)

	res := combat.NewResult(a.ID, combat.ResultDefend, true, combat.ResultData{
		DefenderID:      src.ID,
		ShieldGranted:   granted,
		RemainingShield: src.Shield,
	})
	if r.opts.SummaryLog {
		res.Summary = fmt.Sprintf("%s braces, gaining %d shield (%d total)", src.Card.Name, granted, src.Shield)
	}
	return res
}

// resolvePlayCard deducts the card's energy cost from the playing entity
// and applies each declared effect to it. Declarations are checked before
// any energy moves so a malformed card cannot half-apply.
func (r *Resolver) resolvePlayCard(a combat.Action, ctx Context) combat.Result {
	src := ctx.Source
	if a.Card == nil {
		return combat.InvalidResult(a.ID, "play requires a card payload")
	}
	if err := a.Card.Validate(); err != nil {
		return combat.InvalidResult(a.ID, err.Error())
	}
	types := make([]combat.EffectType, len(a.Card.Effects))
	for i, decl := range a.Card.Effects {
		t, ok := combat.ParseEffectType(decl.Type)
		if !ok {
			return combat.InvalidResult(a.ID, fmt.Sprintf("card %s: unknown effect type %q", a.Card.ID, decl.Type))
		}
		types[i] = t
	}

	cost := a.Card.Stats.EnergyCost
	if !src.SpendEnergy(cost) {
		return combat.InvalidResult(a.ID, "insufficient energy to play card")
	}

	applied := make([]combat.Effect, 0, len(a.Card.Effects))
	for i, decl := range a.Card.Effects {
		eff := combat.NewTimedEffect(types[i], decl.Value, decl.Duration)
		src.ApplyEffect(eff)
		applied = append(applied, eff)
	}

	res := combat.NewResult(a.ID, combat.ResultPlayCard, true, combat.ResultData{
		DefenderID:      src.ID,
		EnergySpent:     cost,
		Effects:         applied,
		RemainingHealth: src.Health,
		RemainingShield: src.Shield,
	})
	if r.opts.SummaryLog {
		res.Summary = fmt.Sprintf("%s plays %s for %d energy (%d effects)", src.Card.Name, a.Card.Name, cost, len(applied))
	}
	return res
}
