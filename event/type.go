package event

// Type identifies an engine event. Payload layouts are documented per
// constant; every payload type lives in payload.go.
type Type int

const (
	// TypeNone is the zero value, never published
	TypeNone Type = iota

	// TypeActionAccepted
	// Trigger: engine accepted and queued a submitted action
	// Consumer: UI feedback, logging | Payload: *ActionAcceptedPayload
	TypeActionAccepted

	// TypeActionResolved
	// Trigger: resolver produced a result for one action, including INVALID and ERROR outcomes
	// Consumer: UI log/animation triggers, audit history mirrors | Payload: *ActionResolvedPayload
	TypeActionResolved

	// TypeEffectApplied
	// Trigger: a resolved action attached a status effect to an entity
	// Consumer: UI effect badges | Payload: *EffectPayload
	TypeEffectApplied

	// TypeEffectExpired
	// Trigger: an effect ran out during entity update
	// Consumer: UI effect badges | Payload: *EffectPayload
	TypeEffectExpired

	// TypeEntityDied
	// Trigger: entity health reached zero during resolution or effect ticking
	// Consumer: UI death animation, AI target refresh | Payload: *EntityDiedPayload
	TypeEntityDied

	// TypePhaseChanged
	// Trigger: battle phase transition, deployment through completion
	// Consumer: UI scene control | Payload: *PhaseChangedPayload
	TypePhaseChanged

	// TypeTurnChanged
	// Trigger: turn pointer alternated between sides
	// Consumer: UI turn indicator | Payload: *TurnChangedPayload
	TypeTurnChanged

	// TypeMatchEnded
	// Trigger: victory condition or timeout decided the match, terminal
	// Consumer: reward layer, UI outcome screen | Payload: *MatchEndedPayload
	TypeMatchEnded

	// TypePerfAlert
	// Trigger: performance monitor crossed a threshold, debounced per category
	// Consumer: diagnostics overlay, logging | Payload: *PerfAlertPayload
	TypePerfAlert
)

// Event pairs a type with its payload. Payloads are pointers to the
// structs in payload.go; consumers type-assert on Type.
type Event struct {
	Type    Type
	Payload any
}
