package combat

import (
	"math"
	"testing"

	"github.com/nskoria/meme-arena/card"
	"github.com/nskoria/meme-arena/vmath"
)

// Roll sequences verified against the xorshift64 algorithm:
// seedNoCrit yields six opening rolls all >= 0.29, seedCritFirst opens
// with a roll below 0.001.
const (
	seedNoCrit    = 0x11d3b88d81332876
	seedCritFirst = 0xdeadbeef
)

func mkCard(id string, stats card.Stats) card.Card {
	return card.Card{
		ID:     id,
		Name:   "test-" + id,
		Rarity: card.RarityCommon,
		Level:  1,
		Stats:  stats,
	}
}

func mkEntity(t *testing.T, stats card.Stats, side Side) *Entity {
	t.Helper()
	e, err := NewEntity(mkCard("c-"+t.Name(), stats), side, vmath.Vec2{})
	if err != nil {
		t.Fatalf("NewEntity: %v", err)
	}
	return e
}

func TestDerivedStats(t *testing.T) {
	tests := []struct {
		name       string
		rarity     card.Rarity
		level      int
		baseAttack int
		wantAttack int
		wantEnergy float64
	}{
		{"common level 1", card.RarityCommon, 1, 50, 50, 10},
		{"common level 2", card.RarityCommon, 2, 50, 55, 11},
		{"rare level 1", card.RarityRare, 1, 50, 100, 20},
		// epic at level 3 scales by 3.0 * 1.2, which is 3.5999... in
		// binary floats; rounding keeps the table exact
		{"epic level 3", card.RarityEpic, 3, 50, 180, 36},
		{"cosmic level 1", card.RarityCosmic, 1, 50, 300, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mkCard("d", card.Stats{Attack: tt.baseAttack, Defense: 10, Health: 100, EnergyCost: 10})
			c.Rarity = tt.rarity
			c.Level = tt.level
			e, err := NewEntity(c, SidePlayer, vmath.Vec2{})
			if err != nil {
				t.Fatalf("NewEntity: %v", err)
			}
			if e.Attack != tt.wantAttack {
				t.Errorf("attack = %d, want %d", e.Attack, tt.wantAttack)
			}
			if e.MaxEnergy != tt.wantEnergy {
				t.Errorf("max energy = %v, want %v", e.MaxEnergy, tt.wantEnergy)
			}
			if e.Health != e.MaxHealth {
				t.Errorf("entity must start at full health")
			}
			if e.Energy != e.MaxEnergy {
				t.Errorf("entity must start at full energy")
			}
		})
	}
}

func TestNewEntityRejectsBadCards(t *testing.T) {
	c := mkCard("bad", card.Stats{Attack: 10, Health: 100})
	c.Rarity = "shiny"
	if _, err := NewEntity(c, SidePlayer, vmath.Vec2{}); err == nil {
		t.Error("unknown rarity must be rejected")
	}

	c = mkCard("bad2", card.Stats{Attack: 10, Health: 100})
	c.Effects = []card.EffectDecl{{Type: "POISON", Value: 5, Duration: 2}}
	if _, err := NewEntity(c, SidePlayer, vmath.Vec2{}); err == nil {
		t.Error("effect type outside the closed set must be rejected")
	}
}

func TestTakeDamageMitigation(t *testing.T) {
	e := mkEntity(t, card.Stats{Attack: 30, Defense: 20, Health: 100, EnergyCost: 10}, SideOpponent)
	applied := e.TakeDamage(50, nil)
	if applied != 40 {
		t.Errorf("applied = %d, want 40", applied)
	}
	if e.Health != 60 {
		t.Errorf("health = %d, want 60", e.Health)
	}
	if e.Anim != AnimDamaged {
		t.Errorf("anim = %s, want damaged", e.Anim)
	}
}

func TestTakeDamageShieldOrder(t *testing.T) {
	t.Run("damage exceeds shield", func(t *testing.T) {
		e := mkEntity(t, card.Stats{Defense: 20, Health: 100, EnergyCost: 10}, SideOpponent)
		e.Shield = 30
		applied := e.TakeDamage(50, nil)
		if e.Shield != 0 {
			t.Errorf("shield = %d, want 0", e.Shield)
		}
		// residual 20 mitigated by 20% defense
		if e.Health != 84 {
			t.Errorf("health = %d, want 84", e.Health)
		}
		if applied != 46 {
			t.Errorf("applied = %d, want 46", applied)
		}
	})

	t.Run("shield covers damage", func(t *testing.T) {
		e := mkEntity(t, card.Stats{Defense: 20, Health: 100, EnergyCost: 10}, SideOpponent)
		e.Shield = 30
		applied := e.TakeDamage(20, nil)
		if e.Shield != 10 || e.Health != 100 {
			t.Errorf("shield = %d health = %d, want 10 and unchanged 100", e.Shield, e.Health)
		}
		if applied != 20 {
			t.Errorf("applied = %d, want 20", applied)
		}
	})
}

func TestDamageFloor(t *testing.T) {
	e := mkEntity(t, card.Stats{Defense: 100, Health: 50, EnergyCost: 10}, SideOpponent)
	if applied := e.TakeDamage(10, nil); applied != 1 {
		t.Errorf("applied = %d, want floor of 1 at full mitigation", applied)
	}
	if e.Health != 49 {
		t.Errorf("health = %d, want 49", e.Health)
	}
}

func TestDeathFinality(t *testing.T) {
	e := mkEntity(t, card.Stats{Defense: 0, Health: 30, EnergyCost: 10}, SidePlayer)
	e.ApplyEffect(NewEffect(EffectBuff, "", 25, 3))

	if applied := e.TakeDamage(100, nil); applied != 30 {
		t.Errorf("lethal applied = %d, want 30 (health remainder)", applied)
	}
	if e.Alive || e.Health != 0 || e.Anim != AnimDead {
		t.Fatalf("death state wrong: alive=%v health=%d anim=%s", e.Alive, e.Health, e.Anim)
	}
	if e.EffectCount() != 0 {
		t.Error("death must clear all effects")
	}

	if e.TakeDamage(10, nil) != 0 {
		t.Error("dead entity must take no damage")
	}
	if e.Heal(10) != 0 || e.Health != 0 {
		t.Error("dead entity must not heal")
	}
	e.ApplyEffect(NewEffect(EffectBuff, "", 10, 2))
	if e.EffectCount() != 0 {
		t.Error("dead entity must not accept effects")
	}
}

func TestLethalDamageClampsApplied(t *testing.T) {
	// applied health damage never exceeds what the entity had left
	e := mkEntity(t, card.Stats{Defense: 0, Health: 5, EnergyCost: 10}, SidePlayer)
	if applied := e.TakeDamage(1000, nil); applied != 5 {
		t.Errorf("applied = %d, want 5", applied)
	}
}

func TestHealClamp(t *testing.T) {
	e := mkEntity(t, card.Stats{Defense: 0, Health: 100, EnergyCost: 10}, SidePlayer)
	e.TakeDamage(40, nil)
	if healed := e.Heal(100); healed != 40 {
		t.Errorf("healed = %d, want 40", healed)
	}
	if e.Health != e.MaxHealth {
		t.Errorf("health = %d, want max %d", e.Health, e.MaxHealth)
	}
}

func TestEffectExclusivity(t *testing.T) {
	e := mkEntity(t, card.Stats{Health: 100, EnergyCost: 10}, SidePlayer)
	first := NewEffect(EffectBuff, "", 10, 3)
	second := NewEffect(EffectBuff, "", 25, 2)
	e.ApplyEffect(first)
	e.ApplyEffect(second)

	if e.EffectCount() != 1 {
		t.Fatalf("effect count = %d, want 1", e.EffectCount())
	}
	eff, ok := e.EffectByType(EffectBuff)
	if !ok || eff.Value != 25 {
		t.Errorf("retained effect = %+v, want the most recently applied", eff)
	}
	if _, stale := e.effects[first.ID]; stale {
		t.Error("replaced effect must be removed")
	}
}

func TestShieldEffectGrantsImmediately(t *testing.T) {
	e := mkEntity(t, card.Stats{Defense: 40, Health: 100, EnergyCost: 10}, SidePlayer)
	e.ApplyEffect(NewEffect(EffectShield, EffectNameShield, 25, 3))
	if e.Shield != 25 {
		t.Errorf("shield = %d, want 25", e.Shield)
	}
}

func TestRemoveEffectIdempotent(t *testing.T) {
	e := mkEntity(t, card.Stats{Health: 100, EnergyCost: 10}, SidePlayer)
	eff := NewEffect(EffectDebuff, EffectNameStun, 1, 1)
	e.ApplyEffect(eff)
	e.RemoveEffect(eff.ID)
	e.RemoveEffect(eff.ID)
	e.RemoveEffect("never-existed")
	if e.EffectCount() != 0 {
		t.Error("effect not removed")
	}
}

func TestUpdateDamageTicks(t *testing.T) {
	e := mkEntity(t, card.Stats{Defense: 0, Health: 100, EnergyCost: 10}, SideOpponent)
	e.ApplyEffect(NewEffect(EffectDamage, EffectNameBurn, 10, 3))

	// 12 quarter-second updates cover three 1s ticks exactly
	var expired []Effect
	for i := 0; i < 12; i++ {
		expired = append(expired, e.Update(0.25)...)
	}
	if e.Health != 70 {
		t.Errorf("health = %d, want 70 after three burn ticks", e.Health)
	}
	if len(expired) != 1 || expired[0].Name != EffectNameBurn {
		t.Errorf("expired = %+v, want the burn effect", expired)
	}
	if e.EffectCount() != 0 {
		t.Error("expired effect must be removed")
	}
}

func TestUpdateSingleLargeDelta(t *testing.T) {
	e := mkEntity(t, card.Stats{Defense: 0, Health: 100, EnergyCost: 10}, SideOpponent)
	e.ApplyEffect(NewEffect(EffectDamage, EffectNameBurn, 10, 3))
	expired := e.Update(3.0)
	if e.Health != 70 {
		t.Errorf("health = %d, want 70: floor(3.0/1.0) ticks in one update", e.Health)
	}
	if len(expired) != 1 {
		t.Errorf("effect must expire within the same update")
	}
}

func TestUpdateHealingTicks(t *testing.T) {
	e := mkEntity(t, card.Stats{Defense: 0, Health: 100, EnergyCost: 10}, SidePlayer)
	e.TakeDamage(50, nil)
	e.ApplyEffect(NewEffect(EffectHealing, "", 15, 2))
	e.Update(2.0)
	if e.Health != 80 {
		t.Errorf("health = %d, want 80 after two 15-point heal ticks", e.Health)
	}
}

func TestBurnCanKill(t *testing.T) {
	e := mkEntity(t, card.Stats{Defense: 0, Health: 5, EnergyCost: 10}, SideOpponent)
	e.ApplyEffect(NewEffect(EffectDamage, EffectNameBurn, 10, 3))
	e.Update(1.0)
	if e.Alive {
		t.Fatal("burn tick must be lethal through TakeDamage")
	}
	if e.EffectCount() != 0 {
		t.Error("death mid-update must clear effects")
	}
	if e.Update(1.0) != nil {
		t.Error("dead entity update must be a no-op")
	}
}

func TestEnergyRegen(t *testing.T) {
	e := mkEntity(t, card.Stats{Health: 100, EnergyCost: 10}, SidePlayer)
	e.Energy = 0
	e.Update(1.0)
	if math.Abs(e.Energy-1.0) > 1e-9 {
		t.Errorf("energy = %f, want 1.0 after one second", e.Energy)
	}
	e.Energy = e.MaxEnergy
	e.Update(5.0)
	if e.Energy != e.MaxEnergy {
		t.Errorf("energy = %f, must cap at max %f", e.Energy, e.MaxEnergy)
	}
}

func TestAttackTarget(t *testing.T) {
	attacker := mkEntity(t, card.Stats{Attack: 50, Defense: 10, Health: 100, EnergyCost: 10}, SidePlayer)
	defender := mkEntity(t, card.Stats{Attack: 30, Defense: 20, Health: 100, EnergyCost: 10}, SideOpponent)

	damage, crit := attacker.AttackTarget(defender, nil)
	if crit {
		t.Fatal("nil rng must never crit")
	}
	if damage != 40 {
		t.Errorf("damage = %d, want 40", damage)
	}
	if defender.Health != 60 {
		t.Errorf("defender health = %d, want 60", defender.Health)
	}
	if attacker.Energy != 5 {
		t.Errorf("attacker energy = %f, want 5 after cost floor(50/10)", attacker.Energy)
	}
	if attacker.Anim != AnimAttacking {
		t.Errorf("attacker anim = %s, want attacking", attacker.Anim)
	}
}

func TestAttackTargetCritical(t *testing.T) {
	attacker := mkEntity(t, card.Stats{Attack: 50, Defense: 10, Health: 100, EnergyCost: 10}, SidePlayer)
	defender := mkEntity(t, card.Stats{Defense: 20, Health: 100, EnergyCost: 10}, SideOpponent)

	damage, crit := attacker.AttackTarget(defender, vmath.NewFastRand(seedCritFirst))
	if !crit {
		t.Fatal("seeded roll must crit")
	}
	if damage != 80 {
		t.Errorf("damage = %d, want 80 (doubled then mitigated)", damage)
	}
	if defender.Health != 20 {
		t.Errorf("defender health = %d, want 20", defender.Health)
	}
}

func TestEnergyGating(t *testing.T) {
	attacker := mkEntity(t, card.Stats{Attack: 50, Health: 100, EnergyCost: 10}, SidePlayer)
	defender := mkEntity(t, card.Stats{Health: 100, EnergyCost: 10}, SideOpponent)
	attacker.Energy = 3

	damage, crit := attacker.AttackTarget(defender, vmath.NewFastRand(seedNoCrit))
	if damage != 0 || crit {
		t.Errorf("got (%d, %v), want (0, false) when energy below cost", damage, crit)
	}
	if attacker.Energy != 3 {
		t.Errorf("energy = %f, must be untouched on gated attack", attacker.Energy)
	}
	if defender.Health != defender.MaxHealth {
		t.Error("gated attack must not damage the target")
	}
}

func TestAttackDeadParticipants(t *testing.T) {
	attacker := mkEntity(t, card.Stats{Attack: 50, Health: 100, EnergyCost: 10}, SidePlayer)
	defender := mkEntity(t, card.Stats{Health: 30, EnergyCost: 10}, SideOpponent)
	defender.TakeDamage(100, nil)

	if damage, _ := attacker.AttackTarget(defender, nil); damage != 0 {
		t.Error("attacking a dead target must be a no-op")
	}
	attacker.TakeDamage(1000, nil)
	live := mkEntity(t, card.Stats{Health: 100, EnergyCost: 10}, SideOpponent)
	if damage, _ := attacker.AttackTarget(live, nil); damage != 0 {
		t.Error("dead attacker must not act")
	}
}

func TestCanAct(t *testing.T) {
	e := mkEntity(t, card.Stats{Attack: 10, Health: 100, EnergyCost: 10}, SidePlayer)
	if !e.CanAct() {
		t.Fatal("fresh entity must be able to act")
	}
	e.Anim = AnimAttacking
	if e.CanAct() {
		t.Error("mid-animation entity must not act")
	}
	e.Anim = AnimIdle
	e.Energy = 0
	if e.CanAct() {
		t.Error("zero-energy entity must not act")
	}
	e.Energy = 5
	e.TakeDamage(1000, nil)
	if e.CanAct() {
		t.Error("dead entity must not act")
	}
}

func TestAnimationReturnsToIdle(t *testing.T) {
	e := mkEntity(t, card.Stats{Attack: 10, Health: 100, EnergyCost: 10}, SidePlayer)
	e.Anim = AnimAttacking
	e.Update(0.25)
	if e.Anim != AnimAttacking {
		t.Fatal("animation must persist until progress reaches 1.0")
	}
	e.Update(0.25)
	if e.Anim != AnimIdle || e.AnimProgress != 0 {
		t.Errorf("anim = %s progress = %f, want idle 0", e.Anim, e.AnimProgress)
	}
}

func TestEffectiveSpeed(t *testing.T) {
	e := mkEntity(t, card.Stats{Health: 100, EnergyCost: 10, Speed: 10}, SidePlayer)
	if e.EffectiveSpeed() != 10 {
		t.Fatalf("base speed = %d, want 10", e.EffectiveSpeed())
	}
	e.ApplyEffect(NewEffect(EffectDebuff, EffectNameFreeze, 50, 2))
	if e.EffectiveSpeed() != 5 {
		t.Errorf("frozen speed = %d, want 5", e.EffectiveSpeed())
	}
}
