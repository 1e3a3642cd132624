package parameter

// Critical Hits
const (
	// CombatAttackCritChance is the critical probability of a direct entity attack
	CombatAttackCritChance = 0.10

	// CombatResolveCritChance is the critical probability of a resolved ATTACK action
	CombatResolveCritChance = 0.15

	// CombatCritMultiplier is the damage multiplier on a critical roll
	CombatCritMultiplier = 2

	// CombatSpeedCritBonus is added to crit chance in advanced mode when the attacker outspeeds the defender
	CombatSpeedCritBonus = 0.05
)

// Damage
const (
	// CombatDamageFloor is the minimum health damage once shield is exhausted, prevents zero-damage stalemates
	CombatDamageFloor = 1

	// CombatAttackEnergyDivisor derives attack energy cost: floor(attack / divisor)
	CombatAttackEnergyDivisor = 10

	// CombatRangeFalloff scales damage against targets beyond attacker range in advanced mode
	CombatRangeFalloff = 0.5
)

// Energy
const (
	// CombatEnergyRegenPerSecond is passive energy regeneration while alive
	CombatEnergyRegenPerSecond = 1.0
)

// Defend
const (
	// CombatDefendShieldRatio converts defense into shield on a DEFEND action
	CombatDefendShieldRatio = 0.5
)

// Status Effects
const (
	// CombatEffectTickInterval is the default seconds between damage/healing effect ticks
	CombatEffectTickInterval = 1.0

	// CombatBurnRatio scales attacker attack into burn damage per tick
	CombatBurnRatio = 0.20

	// CombatBurnTicks is burn duration in effect ticks
	CombatBurnTicks = 3

	// CombatFreezeValue is the speed reduction applied by freeze
	CombatFreezeValue = 50

	// CombatFreezeTicks is freeze duration in effect ticks
	CombatFreezeTicks = 2

	// CombatStunValue marks the stun debuff magnitude
	CombatStunValue = 1

	// CombatStunTicks is stun duration in effect ticks
	CombatStunTicks = 1

	// CombatShieldEmojiRatio scales attacker defense into the self-shield effect value
	CombatShieldEmojiRatio = 0.5

	// CombatShieldEmojiTicks is self-shield duration in effect ticks
	CombatShieldEmojiTicks = 3
)

// Animation
const (
	// CombatAnimationRate is animation progress advanced per second, progress 1.0 returns the entity to idle
	CombatAnimationRate = 2.0
)
