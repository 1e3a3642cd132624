package engine

import (
	"github.com/nskoria/meme-arena/combat"
	"github.com/nskoria/meme-arena/event"
)

// advanceTurns alternates the turn pointer on the configured cadence and
// runs the opponent's automated turn when the pointer lands on it.
// Automated actions resolve immediately, after this tick's drained queue,
// so submitted actions always keep their FIFO position.
func (e *Engine) advanceTurns(dt float64) {
	e.turnAccum += dt
	interval := e.cfg.TurnInterval.Seconds()

	for e.turnAccum >= interval {
		e.turnAccum -= interval
		e.battle.currentTurn = e.battle.currentTurn.Other()
		e.battle.turn++

		e.events.Push(event.Event{Type: event.TypeTurnChanged, Payload: &event.TurnChangedPayload{
			Side: e.battle.currentTurn,
			Turn: e.battle.turn,
		}})

		if e.battle.currentTurn == combat.SideOpponent {
			e.autoTurn()
		}
	}
}

// autoTurn is the opponent AI: a uniformly random living attacker against
// a uniformly random living target, through the same resolver path as any
// submitted action
func (e *Engine) autoTurn() {
	attackers := e.battle.sides[combat.SideOpponent].living()
	targets := e.battle.sides[combat.SidePlayer].living()
	if len(attackers) == 0 || len(targets) == 0 {
		return
	}
	src := attackers[e.rng.Intn(len(attackers))]
	tgt := targets[e.rng.Intn(len(targets))]
	e.resolveOne(combat.NewAction(combat.ActionAttack, src.ID, tgt.ID))
}

// checkTimeout enforces the round clock. At RoundDuration the side with
// the higher aggregate health fraction wins and a tie plays on; at
// SuddenDeathTime the match ends regardless, ties falling to the player.
func (e *Engine) checkTimeout() {
	if e.battle.outcome != nil {
		return
	}
	pf := e.battle.sides[combat.SidePlayer].healthFraction()
	of := e.battle.sides[combat.SideOpponent].healthFraction()

	if e.battle.elapsed >= e.cfg.SuddenDeathTime.Seconds() {
		if pf >= of {
			e.complete(combat.SidePlayer, false)
		} else {
			e.complete(combat.SideOpponent, false)
		}
		return
	}
	if e.battle.elapsed >= e.cfg.RoundDuration.Seconds() && pf != of {
		if pf > of {
			e.complete(combat.SidePlayer, false)
		} else {
			e.complete(combat.SideOpponent, false)
		}
	}
}

// checkVictory declares the winner once a side has no living entities.
// Both sides empty in the same tick is a draw, possible when damage over
// time finishes the last entity of each side in one update.
func (e *Engine) checkVictory() {
	if e.battle.outcome != nil {
		return
	}
	playerAlive := len(e.battle.sides[combat.SidePlayer].living())
	opponentAlive := len(e.battle.sides[combat.SideOpponent].living())

	switch {
	case playerAlive == 0 && opponentAlive == 0:
		e.complete(combat.SidePlayer, true)
	case playerAlive == 0:
		e.complete(combat.SideOpponent, false)
	case opponentAlive == 0:
		e.complete(combat.SidePlayer, false)
	}
}

// complete transitions to COMPLETED, records the outcome and publishes the
// terminal events. COMPLETED ends the loop and rejects further actions.
func (e *Engine) complete(winner combat.Side, draw bool) {
	e.battle.phase = PhaseCompleted
	e.battle.outcome = &Outcome{
		Winner:   winner,
		Draw:     draw,
		Duration: e.clock.Now().Sub(e.battle.startedAt),
		Stats:    e.battle.statsSnapshot(),
	}

	e.events.Push(event.Event{Type: event.TypePhaseChanged, Payload: &event.PhaseChangedPayload{
		From: string(PhaseActive),
		To:   string(PhaseCompleted),
	}})
	e.events.Push(event.Event{Type: event.TypeMatchEnded, Payload: &event.MatchEndedPayload{
		Winner:   winner,
		Draw:     draw,
		Duration: e.battle.outcome.Duration,
		Stats:    e.battle.outcome.Stats,
	}})
}
