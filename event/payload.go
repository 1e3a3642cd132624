package event

import (
	"time"

	"github.com/nskoria/meme-arena/combat"
)

// ActionAcceptedPayload notes a queued action
type ActionAcceptedPayload struct {
	ActionID string      `json:"actionId"`
	Side     combat.Side `json:"side"`
	Queued   int         `json:"queued"`
}

// ActionResolvedPayload carries the full result of one action
type ActionResolvedPayload struct {
	Result combat.Result `json:"result"`
}

// EffectPayload marks an effect landing on or leaving an entity
type EffectPayload struct {
	EntityID string        `json:"entityId"`
	Side     combat.Side   `json:"side"`
	Effect   combat.Effect `json:"effect"`
}

// EntityDiedPayload marks a combatant death
type EntityDiedPayload struct {
	EntityID string      `json:"entityId"`
	Side     combat.Side `json:"side"`
	KillerID string      `json:"killerId,omitempty"`
}

// PhaseChangedPayload marks a battle phase transition
type PhaseChangedPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// TurnChangedPayload marks turn alternation
type TurnChangedPayload struct {
	Side combat.Side `json:"side"`
	Turn int         `json:"turn"`
}

// MatchEndedPayload is the terminal outcome, published exactly once
type MatchEndedPayload struct {
	Winner   combat.Side                      `json:"winner"`
	Draw     bool                             `json:"draw"`
	Duration time.Duration                    `json:"duration"`
	Stats    map[combat.Side]combat.SideStats `json:"stats"`
}

// PerfAlertPayload is an advisory threshold crossing from the monitor
type PerfAlertPayload struct {
	Category  string  `json:"category"`
	Message   string  `json:"message"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
}
