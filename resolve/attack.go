package resolve

import (
	"fmt"
	"math"

	"github.com/nskoria/meme-arena/card"
	"github.com/nskoria/meme-arena/combat"
	"github.com/nskoria/meme-arena/parameter"
	"github.com/nskoria/meme-arena/vmath"
)

// resolveAttack runs the damage pipeline: buffs, debuffs, range falloff and
// crit, then application through the defender's TakeDamage, which owns the
// shield-first contract, defense mitigation and the damage floor. Elemental
// effects from the attacker's card emoji land after the hit.
func (r *Resolver) resolveAttack(a combat.Action, ctx Context, rng *vmath.FastRand) combat.Result {
	src, tgt := ctx.Source, ctx.Target
	if tgt == nil {
		return combat.InvalidResult(a.ID, "attack requires a target")
	}
	if !tgt.Alive {
		return combat.InvalidResult(a.ID, "target entity is dead")
	}

	cost := src.AttackCost()
	if !src.SpendEnergy(cost) {
		return combat.InvalidResult(a.ID, "insufficient energy to attack")
	}

	final, crit := r.damageAgainst(src, tgt, rng)
	actual := tgt.TakeDamage(final, src)
	src.SetAnimation(combat.AnimAttacking)

	applied := r.applyElemental(src, tgt)

	res := combat.NewResult(a.ID, combat.ResultAttack, true, combat.ResultData{
		AttackerID:      src.ID,
		DefenderID:      tgt.ID,
		Damage:          actual,
		Critical:        crit,
		EnergySpent:     cost,
		Effects:         applied,
		RemainingHealth: tgt.Health,
		RemainingShield: tgt.Shield,
	})
	if r.opts.SummaryLog {
		res.Summary = attackSummary(src, tgt, actual, crit)
	}
	return res
}

// damageAgainst computes the pre-application damage and the crit outcome.
// Defense is not consulted here; TakeDamage mitigates the post-shield
// remainder exactly once.
func (r *Resolver) damageAgainst(src, tgt *combat.Entity, rng *vmath.FastRand) (int, bool) {
	base := float64(src.Attack)
	if buff, ok := src.EffectByType(combat.EffectBuff); ok && buff.Value > 0 {
		base *= 1 + buff.Value/100
	}
	if debuff, ok := tgt.EffectByType(combat.EffectDebuff); ok && debuff.Value < 0 {
		base *= 1 + debuff.Value/100
	}

	critChance := parameter.CombatResolveCritChance
	if r.opts.Mode == ModeAdvanced {
		if src.Range > 0 && src.Pos.DistanceTo(tgt.Pos) > float64(src.Range) {
			base *= parameter.CombatRangeFalloff
		}
		if src.EffectiveSpeed() > tgt.EffectiveSpeed() {
			critChance += parameter.CombatSpeedCritBonus
		}
	}

	final := int(math.Floor(base))
	if final < parameter.CombatDamageFloor {
		final = parameter.CombatDamageFloor
	}
	crit := rng != nil && rng.Chance(critChance)
	if crit {
		final *= parameter.CombatCritMultiplier
	}
	return final, crit
}

// resolveSpecial handles ability actions. AOE damage carries the caster's
// attack value split evenly across the living enemies the engine passed in.
func (r *Resolver) resolveSpecial(a combat.Action, ctx Context, rng *vmath.FastRand) combat.Result {
	src := ctx.Source
	ability := a.Ability
	if ability == nil {
		ability = src.Card.Ability
	}
	if ability == nil {
		return combat.InvalidResult(a.ID, "special requires an ability payload")
	}

	switch ability.Type {
	case card.AbilityAOEDamage:
		return r.resolveAOE(a, ctx, rng)
	default:
		return combat.ErrorResult(a.ID, fmt.Sprintf("unsupported ability type %q", ability.Type))
	}
}

func (r *Resolver) resolveAOE(a combat.Action, ctx Context, rng *vmath.FastRand) combat.Result {
	src := ctx.Source
	targets := make([]*combat.Entity, 0, len(ctx.Enemies))
	for _, e := range ctx.Enemies {
		if e != nil && e.Alive {
			targets = append(targets, e)
		}
	}
	if len(targets) == 0 {
		return combat.InvalidResult(a.ID, "no living targets for area damage")
	}

	cost := src.AttackCost()
	if !src.SpendEnergy(cost) {
		return combat.InvalidResult(a.ID, "insufficient energy for special")
	}

	share := src.Attack / len(targets)
	hits := make([]combat.TargetDamage, 0, len(targets))
	var applied []combat.Effect
	for _, tgt := range targets {
		dealt := tgt.TakeDamage(share, src)
		hits = append(hits, combat.TargetDamage{
			TargetID:        tgt.ID,
			Damage:          dealt,
			RemainingHealth: tgt.Health,
		})
		if r.opts.EffectChaining {
			applied = append(applied, r.applyElemental(src, tgt)...)
		}
	}
	src.SetAnimation(combat.AnimAttacking)

	res := combat.NewResult(a.ID, combat.ResultSpecial, true, combat.ResultData{
		AttackerID:  src.ID,
		Damage:      share,
		EnergySpent: cost,
		AOE:         hits,
		Effects:     applied,
	})
	if r.opts.SummaryLog {
		res.Summary = fmt.Sprintf("%s unleashes area damage, %d to each of %d targets", src.Card.Name, share, len(targets))
	}
	return res
}

func attackSummary(src, tgt *combat.Entity, damage int, crit bool) string {
	if crit {
		return fmt.Sprintf("%s crits %s for %d damage (%d hp left)", src.Card.Name, tgt.Card.Name, damage, tgt.Health)
	}
	return fmt.Sprintf("%s hits %s for %d damage (%d hp left)", src.Card.Name, tgt.Card.Name, damage, tgt.Health)
}
