package combat

import (
	"time"

	"github.com/google/uuid"
)

// ResultType mirrors the originating action type, or marks a failure class
type ResultType string

const (
	ResultAttack   ResultType = "ATTACK_RESOLUTION"
	ResultDefend   ResultType = "DEFEND_RESOLUTION"
	ResultSpecial  ResultType = "SPECIAL_RESOLUTION"
	ResultPlayCard ResultType = "PLAY_CARD_RESOLUTION"
	ResultInvalid  ResultType = "INVALID"
	ResultError    ResultType = "ERROR"
)

// ResolutionType maps an action type to its resolution result type
func ResolutionType(t ActionType) ResultType {
	switch t {
	case ActionAttack:
		return ResultAttack
	case ActionDefend:
		return ResultDefend
	case ActionSpecial:
		return ResultSpecial
	case ActionPlayCard:
		return ResultPlayCard
	default:
		return ResultError
	}
}

// TargetDamage is one target's share of an area ability
type TargetDamage struct {
	TargetID        string `json:"targetId"`
	Damage          int    `json:"damage"`
	RemainingHealth int    `json:"remainingHealth"`
}

// ResultData describes a computed outcome. Fields are populated per result
// type; zero values mean not applicable.
type ResultData struct {
	AttackerID      string         `json:"attackerId,omitempty"`
	DefenderID      string         `json:"defenderId,omitempty"`
	Damage          int            `json:"damage,omitempty"`
	Critical        bool           `json:"critical,omitempty"`
	ShieldGranted   int            `json:"shieldGranted,omitempty"`
	EnergySpent     int            `json:"energySpent,omitempty"`
	Effects         []Effect       `json:"effects,omitempty"`
	AOE             []TargetDamage `json:"aoe,omitempty"`
	RemainingHealth int            `json:"remainingHealth,omitempty"`
	RemainingShield int            `json:"remainingShield,omitempty"`
	Reason          string         `json:"reason,omitempty"`
}

// Result is the immutable outcome of one resolved action. Results
// accumulate into the match's append-only resolution history.
type Result struct {
	ID        string     `json:"id"`
	ActionID  string     `json:"actionId"`
	Type      ResultType `json:"type"`
	Success   bool       `json:"success"`
	Data      ResultData `json:"data"`
	Summary   string     `json:"summary,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// NewResult stamps a result with a fresh id and the current time
func NewResult(actionID string, t ResultType, success bool, data ResultData) Result {
	return Result{
		ID:        uuid.NewString(),
		ActionID:  actionID,
		Type:      t,
		Success:   success,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// InvalidResult marks a rejected action with the rejection reason
func InvalidResult(actionID, reason string) Result {
	return NewResult(actionID, ResultInvalid, false, ResultData{Reason: reason})
}

// ErrorResult carries a caught failure message out of resolution
func ErrorResult(actionID, msg string) Result {
	return NewResult(actionID, ResultError, false, ResultData{Reason: msg})
}
