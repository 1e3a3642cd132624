package card

import (
	"errors"
	"fmt"

	"github.com/nskoria/meme-arena/parameter"
)

// ErrInvalidCard wraps every validation failure so callers can errors.Is
// without matching message text.
var ErrInvalidCard = errors.New("invalid card")

// Rarity is the closed set of card rarities. Anything else is rejected at
// validation time rather than silently defaulted.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythic    Rarity = "mythic"
	RarityCosmic    Rarity = "cosmic"
)

// Multiplier returns the stat multiplier for the rarity, false for unknown values
func (r Rarity) Multiplier() (float64, bool) {
	switch r {
	case RarityCommon:
		return parameter.RarityMultiplierCommon, true
	case RarityUncommon:
		return parameter.RarityMultiplierUncommon, true
	case RarityRare:
		return parameter.RarityMultiplierRare, true
	case RarityEpic:
		return parameter.RarityMultiplierEpic, true
	case RarityLegendary:
		return parameter.RarityMultiplierLegendary, true
	case RarityMythic:
		return parameter.RarityMultiplierMythic, true
	case RarityCosmic:
		return parameter.RarityMultiplierCosmic, true
	default:
		return 0, false
	}
}

// LevelBonus returns the stat multiplier contributed by level, 1.0 at level 1
func LevelBonus(level int) float64 {
	if level < 1 {
		return 1.0
	}
	return 1.0 + parameter.LevelBonusPerLevel*float64(level-1)
}

// Stats are the base combat fields of a card before rarity and level scaling.
// EnergyCost doubles as the base for entity max energy and as the cost
// deducted when the card itself is played.
type Stats struct {
	Attack     int `json:"attack"`
	Defense    int `json:"defense"`
	Health     int `json:"health"`
	EnergyCost int `json:"energyCost"`
	Speed      int `json:"speed"`
	Range      int `json:"range"`
}

// EffectDecl is a card-declared status effect, applied to the owning entity
// when the card is played. Type is matched against the combat effect enum at
// entity construction; unknown types fail validation there.
type EffectDecl struct {
	Type     string  `json:"type"`
	Value    float64 `json:"value"`
	Duration float64 `json:"duration"`
}

// AbilityAOEDamage is the ability type every deck supports: damage equal to
// the caster's attack distributed across living enemies.
const AbilityAOEDamage = "AOE_DAMAGE"

// Ability is the optional special ability carried by a card
type Ability struct {
	Type  string  `json:"type"`
	Name  string  `json:"name,omitempty"`
	Value float64 `json:"value,omitempty"`
}

// Card is the read-only input a combat entity is built from. Produced by the
// collection/deck layer, validated here before any stat derivation.
type Card struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Emoji   string       `json:"emoji,omitempty"`
	Rarity  Rarity       `json:"rarity"`
	Level   int          `json:"level"`
	Stats   Stats        `json:"stats"`
	Effects []EffectDecl `json:"effects,omitempty"`
	Ability *Ability     `json:"ability,omitempty"`
}

// Validate checks the card against the strict input schema.
// Malformed cards are rejected with a constructed error, never defaulted.
func (c *Card) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil card", ErrInvalidCard)
	}
	if c.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidCard)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: card %s: missing name", ErrInvalidCard, c.ID)
	}
	if _, ok := c.Rarity.Multiplier(); !ok {
		return fmt.Errorf("%w: card %s: unknown rarity %q", ErrInvalidCard, c.ID, c.Rarity)
	}
	if c.Level < 1 {
		return fmt.Errorf("%w: card %s: level %d below 1", ErrInvalidCard, c.ID, c.Level)
	}
	if c.Stats.Health <= 0 {
		return fmt.Errorf("%w: card %s: health %d must be positive", ErrInvalidCard, c.ID, c.Stats.Health)
	}
	if c.Stats.Attack < 0 || c.Stats.Defense < 0 || c.Stats.EnergyCost < 0 ||
		c.Stats.Speed < 0 || c.Stats.Range < 0 {
		return fmt.Errorf("%w: card %s: negative base stat", ErrInvalidCard, c.ID)
	}
	for i, e := range c.Effects {
		if e.Type == "" {
			return fmt.Errorf("%w: card %s: effect %d missing type", ErrInvalidCard, c.ID, i)
		}
		if e.Duration <= 0 {
			return fmt.Errorf("%w: card %s: effect %d duration %v must be positive", ErrInvalidCard, c.ID, i, e.Duration)
		}
	}
	if c.Ability != nil && c.Ability.Type == "" {
		return fmt.Errorf("%w: card %s: ability missing type", ErrInvalidCard, c.ID)
	}
	return nil
}
