package parameter

// Rarity Stat Multipliers
const (
	// RarityMultiplierCommon is the baseline stat multiplier
	RarityMultiplierCommon = 1.0

	// RarityMultiplierUncommon scales base card stats
	RarityMultiplierUncommon = 1.5

	// RarityMultiplierRare scales base card stats
	RarityMultiplierRare = 2.0

	// RarityMultiplierEpic scales base card stats
	RarityMultiplierEpic = 3.0

	// RarityMultiplierLegendary scales base card stats
	RarityMultiplierLegendary = 4.0

	// RarityMultiplierMythic scales base card stats
	RarityMultiplierMythic = 5.0

	// RarityMultiplierCosmic is the top stat multiplier
	RarityMultiplierCosmic = 6.0
)

// Leveling
const (
	// LevelBonusPerLevel is the stat bonus per level above 1
	LevelBonusPerLevel = 0.10
)
