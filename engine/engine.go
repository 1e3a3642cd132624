// Package engine orchestrates one match: it owns the battle state and the
// entity roster, drains submitted actions through the resolver on a fixed
// timestep, detects victory and publishes lifecycle events. All entity
// mutation happens synchronously inside the tick; submission and
// observation are the only cross-goroutine surfaces.
package engine

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nskoria/meme-arena/card"
	"github.com/nskoria/meme-arena/combat"
	"github.com/nskoria/meme-arena/core"
	"github.com/nskoria/meme-arena/event"
	"github.com/nskoria/meme-arena/parameter"
	"github.com/nskoria/meme-arena/resolve"
	"github.com/nskoria/meme-arena/status"
	"github.com/nskoria/meme-arena/vmath"
)

var (
	// ErrEmptyDeck rejects construction when a side has no cards
	ErrEmptyDeck = errors.New("deck has no cards")

	// ErrMatchStarted rejects a second deployment of the same engine
	ErrMatchStarted = errors.New("match already started")
)

// Engine runs one match. Construct with New, deploy with Start (or Deploy
// + Tick for headless stepping), observe through RegisterHandler and
// Snapshot. An engine is single-use: COMPLETED is terminal.
type Engine struct {
	cfg      Config
	battle   *battleState
	entities map[string]*combat.Entity

	queue    *actionQueue
	events   *event.Queue
	router   *event.Router
	resolver *resolve.Resolver
	rng      *vmath.FastRand
	clock    TimeProvider

	history      []combat.Result
	deadNotified map[string]bool
	turnAccum    float64

	// mu guards battle/entity state between the tick goroutine and
	// SubmitAction/Snapshot callers
	mu sync.Mutex

	stopChan chan struct{}
	stopOnce sync.Once
	running  atomic.Bool
	wg       sync.WaitGroup

	// Cached metric pointers
	statTicks    *atomic.Int64
	statResolved *atomic.Int64
	statRejected *atomic.Int64
	statLiving   *atomic.Int64
	statEffects  *atomic.Int64
	statDepth    *atomic.Int64
}

// Option configures optional engine dependencies at construction
type Option func(*Engine)

// WithTimeProvider injects the clock the loop schedules against
func WithTimeProvider(tp TimeProvider) Option {
	return func(e *Engine) { e.clock = tp }
}

// WithRegistry routes engine metrics into a shared status registry
func WithRegistry(reg *status.Registry) Option {
	return func(e *Engine) { e.cacheMetrics(reg) }
}

// New builds an engine for one match between the two decks. Deck cards are
// validated at deployment, not here; decks only need to be non-empty.
func New(cfg Config, playerDeck, opponentDeck []card.Card, opts ...Option) (*Engine, error) {
	if len(playerDeck) == 0 {
		return nil, fmt.Errorf("player: %w", ErrEmptyDeck)
	}
	if len(opponentDeck) == 0 {
		return nil, fmt.Errorf("opponent: %w", ErrEmptyDeck)
	}
	cfg = cfg.withDefaults()

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	queue := event.NewQueue()
	e := &Engine{
		cfg:      cfg,
		battle:   newBattleState(playerDeck, opponentDeck),
		entities: make(map[string]*combat.Entity),
		queue:    newActionQueue(cfg.MaxQueuedActions),
		events:   queue,
		router:   event.NewRouter(queue),
		resolver: resolve.New(resolve.Options{
			Mode:           cfg.DamageMode,
			EffectChaining: cfg.EnableEffectChaining,
			SummaryLog:     cfg.EnableResolutionLog,
		}),
		rng:          vmath.NewFastRand(seed),
		clock:        NewSystemTime(),
		deadNotified: make(map[string]bool),
		stopChan:     make(chan struct{}),
	}
	e.cacheMetrics(status.NewRegistry())
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) cacheMetrics(reg *status.Registry) {
	e.statTicks = reg.Ints.Get("engine.ticks")
	e.statResolved = reg.Ints.Get("engine.actions.resolved")
	e.statRejected = reg.Ints.Get("engine.actions.rejected")
	e.statLiving = reg.Ints.Get("engine.entities.living")
	e.statEffects = reg.Ints.Get("engine.effects.active")
	e.statDepth = reg.Ints.Get("engine.queue.depth")
}

// RegisterHandler subscribes an observer for its declared event types.
// Must be called before Start; dispatch happens inside the tick.
func (e *Engine) RegisterHandler(h event.Handler) {
	e.router.Register(h)
}

// Deploy builds both rosters from the leading cards of each deck and arms
// the match without starting the loop. Headless callers drive the armed
// match with Tick; Start does both.
func (e *Engine) Deploy() error {
	e.mu.Lock()
	if e.battle.phase != PhaseDeployment {
		e.mu.Unlock()
		return ErrMatchStarted
	}

	for _, side := range []combat.Side{combat.SidePlayer, combat.SideOpponent} {
		s := e.battle.sides[side]
		n := len(s.deck)
		if n > parameter.EngineRosterPerSide {
			n = parameter.EngineRosterPerSide
		}
		x := 0.0
		if side == combat.SideOpponent {
			x = parameter.EngineArenaWidth
		}
		for i := 0; i < n; i++ {
			pos := vmath.Vec2{X: x, Y: float64(i) * parameter.EngineArenaRowSpacing}
			ent, err := combat.NewEntity(s.deck[i], side, pos)
			if err != nil {
				e.mu.Unlock()
				return fmt.Errorf("deploy %s card %d: %w", side, i, err)
			}
			// Roster ids are deterministic slot names so recorded actions
			// resolve against a replayed match
			ent.ID = fmt.Sprintf("%s-%d", side, i+1)
			s.entities = append(s.entities, ent)
			e.entities[ent.ID] = ent
		}
	}

	e.battle.phase = PhaseActive
	e.battle.startedAt = e.clock.Now()
	e.events.Push(event.Event{Type: event.TypePhaseChanged, Payload: &event.PhaseChangedPayload{
		From: string(PhaseDeployment),
		To:   string(PhaseActive),
	}})
	e.mu.Unlock()

	e.router.DispatchAll()
	return nil
}

// Start deploys the rosters and begins the fixed-timestep loop on its own
// goroutine. The loop stops itself when the match completes.
func (e *Engine) Start() error {
	if err := e.Deploy(); err != nil {
		return err
	}
	if e.running.CompareAndSwap(false, true) {
		e.wg.Add(1)
		core.Go(e.run)
	}
	return nil
}

// Stop halts the loop at the next tick boundary. Idempotent; a completed
// match has already stopped itself.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		close(e.stopChan)
	})
	if e.running.CompareAndSwap(true, false) {
		e.wg.Wait()
	}
}

// run is the drift-corrected fixed-timestep loop. Deadlines advance by the
// configured interval; when the loop falls more than a bounded number of
// intervals behind the clock the deadline snaps forward instead of
// bursting catch-up ticks.
func (e *Engine) run() {
	defer e.wg.Done()

	interval := e.cfg.TickInterval()
	lastTick := e.clock.Now()
	nextDeadline := lastTick.Add(interval)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-e.stopChan:
			return
		default:
		}

		now := e.clock.Now()
		if !now.Before(nextDeadline) {
			e.Tick(now.Sub(lastTick).Seconds())
			lastTick = now

			nextDeadline = nextDeadline.Add(interval)
			maxBehind := interval * parameter.EngineMaxBehindTicks
			if now.Sub(nextDeadline) > maxBehind {
				nextDeadline = now.Add(interval)
			}

			if e.Phase() == PhaseCompleted {
				return
			}
		}

		sleep := nextDeadline.Sub(e.clock.Now())
		if sleep > 0 {
			timer.Reset(sleep)
			select {
			case <-timer.C:
			case <-e.stopChan:
				return
			}
		}
	}
}

// SubmitAction validates and enqueues one action, reporting acceptance
// synchronously. Rejected actions never mutate state. Safe to call from
// any goroutine while the match is active.
func (e *Engine) SubmitAction(a combat.Action) bool {
	e.mu.Lock()
	if e.battle.phase != PhaseActive {
		e.mu.Unlock()
		e.statRejected.Add(1)
		return false
	}
	if a.ID == "" || !a.Type.Valid() {
		e.mu.Unlock()
		e.statRejected.Add(1)
		return false
	}
	src, ok := e.entities[a.SourceID]
	if !ok || !src.Alive {
		e.mu.Unlock()
		e.statRejected.Add(1)
		return false
	}
	side := src.Side
	e.mu.Unlock()

	if !e.queue.Push(a) {
		e.statRejected.Add(1)
		return false
	}
	e.events.Push(event.Event{Type: event.TypeActionAccepted, Payload: &event.ActionAcceptedPayload{
		ActionID: a.ID,
		Side:     side,
		Queued:   e.queue.Len(),
	}})
	return true
}

// Tick advances the match by dt seconds: drain and resolve pending actions
// in FIFO order, tick every entity's effects and energy, advance turns,
// enforce timeouts and check victory. Public so tests and the benchmark
// can step a deployed match headlessly with synthetic deltas.
func (e *Engine) Tick(dt float64) {
	e.mu.Lock()
	if e.battle.phase != PhaseActive || dt <= 0 {
		e.mu.Unlock()
		e.router.DispatchAll()
		return
	}

	for _, a := range e.queue.Drain() {
		e.resolveOne(a)
	}
	e.updateEntities(dt)
	e.advanceTurns(dt)

	e.battle.elapsed += dt
	e.checkTimeout()
	e.checkVictory()

	e.statTicks.Add(1)
	e.statDepth.Store(int64(e.queue.Len()))
	e.statLiving.Store(int64(e.livingCount()))
	e.statEffects.Store(int64(e.activeEffectCount()))
	e.mu.Unlock()

	// Handlers run outside the state lock so they may read snapshots
	e.router.DispatchAll()
}

// resolveOne runs one action through the resolver and records the result.
// A panic slipping past the resolver's own recovery is caught here so a
// single bad action can never take down the loop.
func (e *Engine) resolveOne(a combat.Action) {
	defer func() {
		if r := recover(); r != nil {
			e.record(a, nil, combat.ErrorResult(a.ID, fmt.Sprintf("engine panic: %v", r)))
		}
	}()

	src := e.entities[a.SourceID]
	var tgt *combat.Entity
	if a.TargetID != "" {
		tgt = e.entities[a.TargetID]
	}
	ctx := resolve.Context{Source: src, Target: tgt}
	if src != nil {
		ctx.Enemies = e.battle.sides[src.Side.Other()].living()
	}

	res := e.resolver.Resolve(a, ctx, e.rng)
	e.record(a, src, res)
}

// record appends to the resolution history, updates side totals and
// publishes the result and its side effects
func (e *Engine) record(a combat.Action, src *combat.Entity, res combat.Result) {
	e.history = append(e.history, res)
	e.statResolved.Add(1)

	if res.Success && src != nil {
		stats := &e.battle.sides[src.Side].stats
		stats.ActionsResolved++
		stats.EffectsApplied += len(res.Data.Effects)

		dealt := res.Data.Damage
		if len(res.Data.AOE) > 0 {
			// area results carry the per-target share in Damage; the hits
			// list holds what actually landed
			dealt = 0
			for _, hit := range res.Data.AOE {
				dealt += hit.Damage
			}
		}
		if res.Type == combat.ResultAttack || res.Type == combat.ResultSpecial {
			stats.DamageDealt += dealt
			e.battle.sides[src.Side.Other()].stats.DamageTaken += dealt
		}
	}

	e.events.Push(event.Event{Type: event.TypeActionResolved, Payload: &event.ActionResolvedPayload{Result: res}})
	e.notifyEffects(src, res)
	e.notifyDeaths(a.SourceID)
}

// notifyEffects publishes one EffectApplied per generated effect. SHIELD
// elementals land on the acting entity, everything else on its target;
// PLAY_CARD effects always target the player entity itself.
func (e *Engine) notifyEffects(src *combat.Entity, res combat.Result) {
	if src == nil || len(res.Data.Effects) == 0 {
		return
	}
	for _, eff := range res.Data.Effects {
		carrier := src
		if res.Type == combat.ResultAttack && eff.Type != combat.EffectShield {
			if tgt, ok := e.entities[res.Data.DefenderID]; ok {
				carrier = tgt
			}
		}
		e.events.Push(event.Event{Type: event.TypeEffectApplied, Payload: &event.EffectPayload{
			EntityID: carrier.ID,
			Side:     carrier.Side,
			Effect:   eff,
		}})
	}
}

// notifyDeaths publishes EntityDied exactly once per entity. It walks the
// side rosters in deployment order rather than the entity map so the event
// stream stays stable across runs when one tick kills several entities.
func (e *Engine) notifyDeaths(killerID string) {
	for _, side := range []combat.Side{combat.SidePlayer, combat.SideOpponent} {
		for _, ent := range e.battle.sides[side].entities {
			if ent.Alive || e.deadNotified[ent.ID] {
				continue
			}
			e.deadNotified[ent.ID] = true
			e.events.Push(event.Event{Type: event.TypeEntityDied, Payload: &event.EntityDiedPayload{
				EntityID: ent.ID,
				Side:     ent.Side,
				KillerID: killerID,
			}})
		}
	}
}

// updateEntities ticks effects, animation and energy regen on every living
// entity. Damage-over-time deaths surface here.
func (e *Engine) updateEntities(dt float64) {
	for _, side := range []combat.Side{combat.SidePlayer, combat.SideOpponent} {
		for _, ent := range e.battle.sides[side].entities {
			if !ent.Alive {
				continue
			}
			for _, eff := range ent.Update(dt) {
				e.events.Push(event.Event{Type: event.TypeEffectExpired, Payload: &event.EffectPayload{
					EntityID: ent.ID,
					Side:     ent.Side,
					Effect:   eff,
				}})
			}
		}
	}
	e.notifyDeaths("")
}

func (e *Engine) livingCount() int {
	n := 0
	for _, ent := range e.entities {
		if ent.Alive {
			n++
		}
	}
	return n
}

func (e *Engine) activeEffectCount() int {
	n := 0
	for _, ent := range e.entities {
		n += ent.EffectCount()
	}
	return n
}

// Phase returns the current match phase
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.battle.phase
}

// Snapshot copies the full battle state for external readers
func (e *Engine) Snapshot() BattleSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.battle.snapshot()
}

// Outcome returns the terminal result, nil while the match is running
func (e *Engine) Outcome() *Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.battle.outcome == nil {
		return nil
	}
	o := *e.battle.outcome
	return &o
}

// History copies the append-only resolution history
func (e *Engine) History() []combat.Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]combat.Result, len(e.history))
	copy(out, e.history)
	return out
}

// QueueDepth is the current pending-action count
func (e *Engine) QueueDepth() int {
	return e.queue.Len()
}
