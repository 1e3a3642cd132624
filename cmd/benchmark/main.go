// Headless engine throughput benchmark: steps matches as fast as the CPU
// allows, keeping the action queue fed, and reports tick and resolution
// rates with frame-time percentiles and heap growth.
package main

import (
	"flag"
	"fmt"
	"runtime"
	"time"

	"github.com/nskoria/meme-arena/card"
	"github.com/nskoria/meme-arena/combat"
	"github.com/nskoria/meme-arena/engine"
	"github.com/nskoria/meme-arena/event"
	"github.com/nskoria/meme-arena/monitor"
	"github.com/nskoria/meme-arena/resolve"
	"github.com/nskoria/meme-arena/status"
)

var (
	duration = flag.Duration("duration", 10*time.Second, "Benchmark duration")
	seed     = flag.Uint64("seed", 1, "Match seed")
	actions  = flag.Int("actions", 4, "Actions submitted per tick")
	mode     = flag.String("mode", "standard", "Damage mode: standard|advanced")
)

func deck(prefix string) []card.Card {
	emojis := []string{"fire", "ice", "lightning"}
	out := make([]card.Card, 3)
	for i := range out {
		out[i] = card.Card{
			ID:     fmt.Sprintf("%s-%d", prefix, i),
			Name:   fmt.Sprintf("%s-%d", prefix, i),
			Emoji:  emojis[i],
			Rarity: card.RarityRare,
			Level:  3,
			Stats:  card.Stats{Attack: 40, Defense: 15, Health: 100000, EnergyCost: 1000, Speed: 10, Range: 8},
		}
	}
	return out
}

func newMatch(cfg engine.Config, reg *status.Registry) *engine.Engine {
	e, err := engine.New(cfg, deck("p"), deck("o"), engine.WithRegistry(reg))
	if err != nil {
		panic(err)
	}
	if err := e.Deploy(); err != nil {
		panic(err)
	}
	return e
}

func main() {
	flag.Parse()

	cfg := engine.DefaultConfig()
	cfg.Seed = *seed
	cfg.DamageMode = resolve.DamageMode(*mode)
	cfg.TurnInterval = 100 * time.Millisecond
	dt := cfg.TickInterval().Seconds()

	reg := status.NewRegistry()
	clock := engine.NewSystemTime()
	alerts := event.NewQueue()
	mon := monitor.New(clock, alerts, reg)

	var before runtime.MemStats
	runtime.ReadMemStats(&before)

	eng := newMatch(cfg, reg)
	var ticks, matches uint64
	start := time.Now()

	sides := []combat.Side{combat.SidePlayer, combat.SideOpponent}
	for time.Since(start) < *duration {
		// Giant health pools keep a match alive; a completed one rolls
		// over into a fresh engine so the loop never idles
		if eng.Phase() != engine.PhaseActive {
			matches++
			eng = newMatch(cfg, reg)
		}

		snap := eng.Snapshot()
		for i := 0; i < *actions; i++ {
			side := sides[i%2]
			attacker := pick(snap, side, i)
			target := pick(snap, side.Other(), i)
			if attacker == "" || target == "" {
				break
			}
			eng.SubmitAction(combat.NewAction(combat.ActionAttack, attacker, target))
		}

		tickStart := time.Now()
		eng.Tick(dt)
		tickTime := time.Since(tickStart)

		mon.Observe(monitor.Sample{
			FrameTime:     tickTime,
			UpdateTime:    tickTime,
			QueuedActions: eng.QueueDepth(),
		})

		ticks++
	}
	elapsed := time.Since(start)
	resolved := reg.Ints.Get("engine.actions.resolved").Load()

	var after runtime.MemStats
	runtime.ReadMemStats(&after)

	stats := mon.Percentiles()
	fmt.Printf("meme-arena engine benchmark (%s mode)\n", *mode)
	fmt.Printf("  wall time      %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("  ticks          %d (%.0f/s)\n", ticks, float64(ticks)/elapsed.Seconds())
	fmt.Printf("  simulated time %.1fs\n", float64(ticks)*dt)
	fmt.Printf("  resolved       %d actions (%.0f/s)\n", resolved, float64(resolved)/elapsed.Seconds())
	fmt.Printf("  matches rolled %d\n", matches)
	fmt.Printf("  tick p50/p95/p99  %s / %s / %s\n",
		stats.P50.Round(time.Microsecond), stats.P95.Round(time.Microsecond), stats.P99.Round(time.Microsecond))
	fmt.Printf("  heap           %d KiB -> %d KiB (delta %d KiB)\n",
		before.HeapAlloc>>10, after.HeapAlloc>>10, int64(after.HeapAlloc-before.HeapAlloc)>>10)
	fmt.Printf("  gc cycles      %d\n", after.NumGC-before.NumGC)

	fmt.Println("  registry:")
	for k, v := range reg.Snapshot() {
		fmt.Printf("    %-28s %v\n", k, v)
	}
}

func pick(snap engine.BattleSnapshot, side combat.Side, i int) string {
	entities := snap.Sides[side].Entities
	living := make([]string, 0, len(entities))
	for _, e := range entities {
		if e.Alive {
			living = append(living, e.ID)
		}
	}
	if len(living) == 0 {
		return ""
	}
	return living[i%len(living)]
}
