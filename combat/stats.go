package combat

// SideStats aggregates one side's match totals, reported with the terminal
// outcome so the reward layer never has to replay the history.
type SideStats struct {
	DamageDealt     int `json:"damageDealt"`
	DamageTaken     int `json:"damageTaken"`
	ActionsResolved int `json:"actionsResolved"`
	EffectsApplied  int `json:"effectsApplied"`
	Survivors       int `json:"survivors"`
	HealthRemaining int `json:"healthRemaining"`
}
