package engine

import (
	"time"

	"github.com/nskoria/meme-arena/card"
	"github.com/nskoria/meme-arena/combat"
)

// Phase is the match state machine. Transitions only move forward:
// DEPLOYMENT -> ACTIVE -> COMPLETED, and COMPLETED is terminal.
type Phase string

const (
	PhaseDeployment Phase = "deployment"
	PhaseActive     Phase = "active"
	PhaseCompleted  Phase = "completed"
)

// Outcome is the terminal result of a match, nil until COMPLETED
type Outcome struct {
	Winner   combat.Side                      `json:"winner"`
	Draw     bool                             `json:"draw"`
	Duration time.Duration                    `json:"duration"`
	Stats    map[combat.Side]combat.SideStats `json:"stats"`
}

// sideState is one half of the arena: its deck, its deployed roster and
// its running match totals. Entity order is deployment order, which keeps
// every per-side iteration deterministic.
type sideState struct {
	deck     []card.Card
	entities []*combat.Entity
	stats    combat.SideStats
}

// living returns the side's living entities in deployment order
func (s *sideState) living() []*combat.Entity {
	out := make([]*combat.Entity, 0, len(s.entities))
	for _, e := range s.entities {
		if e.Alive {
			out = append(out, e)
		}
	}
	return out
}

// healthFraction is the side's aggregate current/max health, the timeout
// victory comparison
func (s *sideState) healthFraction() float64 {
	var cur, max int
	for _, e := range s.entities {
		cur += e.Health
		max += e.MaxHealth
	}
	if max == 0 {
		return 0
	}
	return float64(cur) / float64(max)
}

// battleState is the engine-owned match state. One engine instance owns
// exactly one battleState for the duration of one match; nothing outside
// the tick goroutine mutates it.
type battleState struct {
	sides       map[combat.Side]*sideState
	phase       Phase
	currentTurn combat.Side
	turn        int
	startedAt   time.Time
	elapsed     float64
	outcome     *Outcome
}

func newBattleState(playerDeck, opponentDeck []card.Card) *battleState {
	return &battleState{
		sides: map[combat.Side]*sideState{
			combat.SidePlayer:   {deck: playerDeck},
			combat.SideOpponent: {deck: opponentDeck},
		},
		phase:       PhaseDeployment,
		currentTurn: combat.SidePlayer,
		turn:        1,
	}
}

// statsSnapshot copies both sides' totals, with survivor and remaining
// health counts filled at read time
func (b *battleState) statsSnapshot() map[combat.Side]combat.SideStats {
	out := make(map[combat.Side]combat.SideStats, len(b.sides))
	for side, s := range b.sides {
		st := s.stats
		st.Survivors = len(s.living())
		st.HealthRemaining = 0
		for _, e := range s.entities {
			st.HealthRemaining += e.Health
		}
		out[side] = st
	}
	return out
}

// SideSnapshot is one side's externally visible state
type SideSnapshot struct {
	Entities []combat.EntitySnapshot `json:"entities"`
	Stats    combat.SideStats        `json:"stats"`
}

// BattleSnapshot is a point-in-time copy of the match for UI consumption.
// It shares nothing with the live state; reading it races with nothing.
type BattleSnapshot struct {
	Phase       Phase                        `json:"phase"`
	CurrentTurn combat.Side                  `json:"currentTurn"`
	Turn        int                          `json:"turn"`
	Elapsed     float64                      `json:"elapsed"`
	Sides       map[combat.Side]SideSnapshot `json:"sides"`
	Outcome     *Outcome                     `json:"outcome,omitempty"`
}

func (b *battleState) snapshot() BattleSnapshot {
	snap := BattleSnapshot{
		Phase:       b.phase,
		CurrentTurn: b.currentTurn,
		Turn:        b.turn,
		Elapsed:     b.elapsed,
		Sides:       make(map[combat.Side]SideSnapshot, len(b.sides)),
	}
	stats := b.statsSnapshot()
	for side, s := range b.sides {
		ss := SideSnapshot{
			Entities: make([]combat.EntitySnapshot, 0, len(s.entities)),
			Stats:    stats[side],
		}
		for _, e := range s.entities {
			ss.Entities = append(ss.Entities, e.Snapshot())
		}
		snap.Sides[side] = ss
	}
	if b.outcome != nil {
		o := *b.outcome
		snap.Outcome = &o
	}
	return snap
}
