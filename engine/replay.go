package engine

import (
	"github.com/nskoria/meme-arena/card"
	"github.com/nskoria/meme-arena/combat"
)

// Replay reconstructs a match headlessly from its configuration and an
// ordered action list: each action is submitted and stepped by one tick
// interval in turn. With a nonzero seed the crit and AI rolls repeat
// exactly, so the returned history and final snapshot match the original
// run action for action.
func Replay(cfg Config, playerDeck, opponentDeck []card.Card, actions []combat.Action, opts ...Option) ([]combat.Result, BattleSnapshot, error) {
	e, err := New(cfg, playerDeck, opponentDeck, opts...)
	if err != nil {
		return nil, BattleSnapshot{}, err
	}
	if err := e.Deploy(); err != nil {
		return nil, BattleSnapshot{}, err
	}

	dt := e.cfg.TickInterval().Seconds()
	for _, a := range actions {
		if e.Phase() != PhaseActive {
			break
		}
		e.SubmitAction(a)
		e.Tick(dt)
	}
	return e.History(), e.Snapshot(), nil
}
