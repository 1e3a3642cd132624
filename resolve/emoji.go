package resolve

import (
	"math"

	"github.com/nskoria/meme-arena/combat"
	"github.com/nskoria/meme-arena/parameter"
)

// element identifies the attacker-card emoji families that carry a
// secondary effect. Cards may declare either the word or the glyph.
type element int

const (
	elementNone element = iota
	elementFire
	elementIce
	elementLightning
	elementShield
)

var emojiElements = map[string]element{
	"fire":      elementFire,
	"🔥":        elementFire,
	"ice":       elementIce,
	"🧊":        elementIce,
	"❄️":        elementIce,
	"lightning": elementLightning,
	"⚡":        elementLightning,
	"shield":    elementShield,
	"🛡️":       elementShield,
}

// applyElemental derives the secondary effect of the attacker's card emoji
// and attaches it: burn, freeze and stun land on the defender, the shield
// element shields the attacker itself. Returns whatever was applied; a card
// without a matching emoji applies nothing.
func (r *Resolver) applyElemental(src, tgt *combat.Entity) []combat.Effect {
	elem := emojiElements[src.Card.Emoji]
	if elem != elementShield && !tgt.Alive {
		// nothing sticks to a corpse
		return nil
	}
	switch elem {
	case elementFire:
		burn := math.Floor(float64(src.Attack) * parameter.CombatBurnRatio)
		eff := combat.NewEffect(combat.EffectDamage, combat.EffectNameBurn, burn, parameter.CombatBurnTicks)
		tgt.ApplyEffect(eff)
		return []combat.Effect{eff}

	case elementIce:
		eff := combat.NewEffect(combat.EffectDebuff, combat.EffectNameFreeze, parameter.CombatFreezeValue, parameter.CombatFreezeTicks)
		tgt.ApplyEffect(eff)
		return []combat.Effect{eff}

	case elementLightning:
		eff := combat.NewEffect(combat.EffectDebuff, combat.EffectNameStun, parameter.CombatStunValue, parameter.CombatStunTicks)
		tgt.ApplyEffect(eff)
		return []combat.Effect{eff}

	case elementShield:
		value := math.Floor(float64(src.Defense) * parameter.CombatShieldEmojiRatio)
		eff := combat.NewEffect(combat.EffectShield, combat.EffectNameShield, value, parameter.CombatShieldEmojiTicks)
		src.ApplyEffect(eff)
		return []combat.Effect{eff}

	default:
		return nil
	}
}
