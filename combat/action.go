package combat

import (
	"time"

	"github.com/google/uuid"

	"github.com/nskoria/meme-arena/card"
)

// ActionType is the closed set of combat operations
type ActionType string

const (
	ActionAttack   ActionType = "ATTACK"
	ActionDefend   ActionType = "DEFEND"
	ActionSpecial  ActionType = "SPECIAL"
	ActionPlayCard ActionType = "PLAY_CARD"
)

// Valid reports whether t is a known action type
func (t ActionType) Valid() bool {
	switch t {
	case ActionAttack, ActionDefend, ActionSpecial, ActionPlayCard:
		return true
	default:
		return false
	}
}

// Action is one requested combat operation. Card carries the PLAY_CARD
// payload, Ability the SPECIAL payload; both are nil otherwise.
type Action struct {
	ID        string        `json:"id"`
	Type      ActionType    `json:"type"`
	SourceID  string        `json:"sourceId"`
	TargetID  string        `json:"targetId,omitempty"`
	Card      *card.Card    `json:"card,omitempty"`
	Ability   *card.Ability `json:"ability,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// NewAction builds an action with a fresh id and creation timestamp
func NewAction(t ActionType, sourceID, targetID string) Action {
	return Action{
		ID:        uuid.NewString(),
		Type:      t,
		SourceID:  sourceID,
		TargetID:  targetID,
		CreatedAt: time.Now(),
	}
}
