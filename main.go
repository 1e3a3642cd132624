// Terminal arena demo: renders a full match in the terminal with health
// bars, a scrolling result feed and hit sounds. The engine underneath is
// headless; everything in this file is a development sandbox around it.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/nskoria/meme-arena/card"
	"github.com/nskoria/meme-arena/combat"
	"github.com/nskoria/meme-arena/config"
	"github.com/nskoria/meme-arena/engine"
	"github.com/nskoria/meme-arena/event"
	"github.com/nskoria/meme-arena/monitor"
	"github.com/nskoria/meme-arena/status"
)

const (
	feedLines   = 8
	renderEvery = time.Second / 30
	sampleRate  = beep.SampleRate(44100)
)

var (
	configPath = flag.String("config", "", "Engine config file (TOML)")
	seed       = flag.Uint64("seed", 0, "Match seed, 0 for wall clock")
)

func playerDeck() []card.Card {
	return []card.Card{
		{ID: "doge", Name: "Doge", Emoji: "fire", Rarity: card.RarityRare, Level: 3,
			Stats: card.Stats{Attack: 40, Defense: 15, Health: 120, EnergyCost: 20, Speed: 12, Range: 8}},
		{ID: "pepe", Name: "Pepe", Emoji: "ice", Rarity: card.RarityEpic, Level: 2,
			Stats: card.Stats{Attack: 35, Defense: 20, Health: 140, EnergyCost: 18, Speed: 8, Range: 6}},
		{ID: "wojak", Name: "Wojak", Emoji: "lightning", Rarity: card.RarityCommon, Level: 5,
			Stats: card.Stats{Attack: 50, Defense: 10, Health: 100, EnergyCost: 25, Speed: 15, Range: 10},
			Ability: &card.Ability{Type: card.AbilityAOEDamage, Name: "Feels Barrage"}},
	}
}

func opponentDeck() []card.Card {
	return []card.Card{
		{ID: "chad", Name: "Chad", Emoji: "shield", Rarity: card.RarityLegendary, Level: 1,
			Stats: card.Stats{Attack: 45, Defense: 25, Health: 160, EnergyCost: 22, Speed: 10, Range: 7}},
		{ID: "nyan", Name: "Nyan", Emoji: "fire", Rarity: card.RarityUncommon, Level: 4,
			Stats: card.Stats{Attack: 38, Defense: 12, Health: 110, EnergyCost: 19, Speed: 18, Range: 9}},
		{ID: "stonks", Name: "Stonks", Emoji: "ice", Rarity: card.RarityRare, Level: 2,
			Stats: card.Stats{Attack: 42, Defense: 14, Health: 125, EnergyCost: 21, Speed: 9, Range: 8}},
	}
}

// feed is the scrolling result log shared between the engine loop (writer)
// and the render loop (reader)
type feed struct {
	mu    sync.Mutex
	lines []string
	ended bool
}

func (f *feed) add(line string) {
	f.mu.Lock()
	f.lines = append(f.lines, line)
	if len(f.lines) > feedLines {
		f.lines = f.lines[len(f.lines)-feedLines:]
	}
	f.mu.Unlock()
}

func (f *feed) snapshot() ([]string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.lines...), f.ended
}

func (f *feed) end() {
	f.mu.Lock()
	f.ended = true
	f.mu.Unlock()
}

// sounds wraps the beep speaker; every method is safe when audio failed
// to initialize
type sounds struct {
	ok bool
}

func newSounds() *sounds {
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err != nil {
		log.Printf("audio unavailable: %v", err)
	}
	return &sounds{ok: err == nil}
}

func (s *sounds) tone(freq float64, d time.Duration) {
	if !s.ok {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(d), sine))
}

func (s *sounds) hit()  { s.tone(440, 40*time.Millisecond) }
func (s *sounds) crit() { s.tone(880, 80*time.Millisecond) }
func (s *sounds) over() { s.tone(220, 300*time.Millisecond) }

// observer bridges engine events into the feed and the speaker
type observer struct {
	feed   *feed
	sounds *sounds
}

func (o *observer) EventTypes() []event.Type {
	return []event.Type{event.TypeActionResolved, event.TypeTurnChanged, event.TypeMatchEnded}
}

func (o *observer) HandleEvent(ev event.Event) {
	switch p := ev.Payload.(type) {
	case *event.ActionResolvedPayload:
		res := p.Result
		if !res.Success {
			o.feed.add(fmt.Sprintf("rejected: %s", res.Data.Reason))
			return
		}
		if res.Summary != "" {
			o.feed.add(res.Summary)
		} else {
			o.feed.add(fmt.Sprintf("%s resolved (%d damage)", res.Type, res.Data.Damage))
		}
		if res.Type == combat.ResultAttack || res.Type == combat.ResultSpecial {
			if res.Data.Critical {
				o.sounds.crit()
			} else {
				o.sounds.hit()
			}
		}
	case *event.TurnChangedPayload:
		o.feed.add(fmt.Sprintf("--- turn %d: %s ---", p.Turn, p.Side))
	case *event.MatchEndedPayload:
		if p.Draw {
			o.feed.add(fmt.Sprintf("match drawn after %s", p.Duration.Round(time.Millisecond)))
		} else {
			o.feed.add(fmt.Sprintf("%s wins after %s", p.Winner, p.Duration.Round(time.Millisecond)))
		}
		o.feed.end()
		o.sounds.over()
	}
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	cfg.EnableResolutionLog = true
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.TurnInterval > 2*time.Second {
		cfg.TurnInterval = 2 * time.Second
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	reg := status.NewRegistry()
	clock := engine.NewSystemTime()
	alerts := event.NewQueue()
	mon := monitor.New(clock, alerts, reg)

	fd := &feed{}
	snd := newSounds()

	eng, err := engine.New(cfg, playerDeck(), opponentDeck(),
		engine.WithRegistry(reg), engine.WithTimeProvider(clock))
	if err != nil {
		screen.Fini()
		log.Fatal(err)
	}
	eng.RegisterHandler(&observer{feed: fd, sounds: snd})

	if err := eng.Start(); err != nil {
		screen.Fini()
		log.Fatal(err)
	}
	defer eng.Stop()

	keys := make(chan *tcell.EventKey, 8)
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case *tcell.EventKey:
				keys <- ev
			case *tcell.EventResize:
				screen.Sync()
			case nil:
				return
			}
		}
	}()

	ticker := time.NewTicker(renderEvery)
	defer ticker.Stop()
	lastFrame := clock.Now()

	for {
		select {
		case ev := <-keys:
			if handleKey(ev, eng) {
				return
			}
		case <-ticker.C:
			frameStart := clock.Now()
			snap := eng.Snapshot()

			renderStart := clock.Now()
			draw(screen, snap, fd, mon)
			renderTime := clock.Now().Sub(renderStart)

			drainAlerts(alerts, fd)
			mon.Observe(monitor.Sample{
				FrameTime:     frameStart.Sub(lastFrame),
				RenderTime:    renderTime,
				Entities:      countEntities(snap),
				Effects:       countEffects(snap),
				QueuedActions: eng.QueueDepth(),
			})
			lastFrame = frameStart

			if snap.Phase == engine.PhaseCompleted {
				// Leave the outcome on screen until a key arrives
				if waitKey(keys) {
					return
				}
			}
		}
	}
}

// handleKey maps keys to player actions, true to quit
func handleKey(ev *tcell.EventKey, eng *engine.Engine) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
		return true
	}

	snap := eng.Snapshot()
	living := snap.Sides[combat.SidePlayer].Entities
	var src string
	for _, e := range living {
		if e.Alive {
			src = e.ID
			break
		}
	}
	var tgt string
	for _, e := range snap.Sides[combat.SideOpponent].Entities {
		if e.Alive {
			tgt = e.ID
			break
		}
	}
	if src == "" {
		return false
	}

	switch ev.Rune() {
	case 'a':
		if tgt != "" {
			eng.SubmitAction(combat.NewAction(combat.ActionAttack, src, tgt))
		}
	case 'd':
		eng.SubmitAction(combat.NewAction(combat.ActionDefend, src, ""))
	case 's':
		eng.SubmitAction(combat.NewAction(combat.ActionSpecial, src, ""))
	}
	return false
}

func waitKey(keys chan *tcell.EventKey) bool {
	<-keys
	return true
}

func drainAlerts(q *event.Queue, fd *feed) {
	for _, ev := range q.Consume() {
		if p, ok := ev.Payload.(*event.PerfAlertPayload); ok {
			fd.add(fmt.Sprintf("[perf] %s: %s", p.Category, p.Message))
		}
	}
}

func countEntities(snap engine.BattleSnapshot) int {
	n := 0
	for _, s := range snap.Sides {
		for _, e := range s.Entities {
			if e.Alive {
				n++
			}
		}
	}
	return n
}

func countEffects(snap engine.BattleSnapshot) int {
	n := 0
	for _, s := range snap.Sides {
		for _, e := range s.Entities {
			n += len(e.Effects)
		}
	}
	return n
}

var (
	styleDefault = tcell.StyleDefault
	styleHeader  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleDead    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHP      = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleShield  = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleEnergy  = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleFeed    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

func draw(screen tcell.Screen, snap engine.BattleSnapshot, fd *feed, mon *monitor.Monitor) {
	screen.Clear()

	header := fmt.Sprintf(" meme-arena | phase %s | turn %d (%s) | %.1fs | [a]ttack [d]efend [s]pecial [q]uit",
		snap.Phase, snap.Turn, snap.CurrentTurn, snap.Elapsed)
	puts(screen, 0, 0, header, styleHeader)

	row := 2
	row = drawSide(screen, row, "PLAYER", snap.Sides[combat.SidePlayer])
	row++
	row = drawSide(screen, row, "OPPONENT", snap.Sides[combat.SideOpponent])
	row++

	lines, ended := fd.snapshot()
	puts(screen, 0, row, "--- feed ---", styleHeader)
	row++
	for _, line := range lines {
		puts(screen, 0, row, line, styleFeed)
		row++
	}

	m := mon.Metrics()
	p := mon.Percentiles()
	puts(screen, 0, row+1, fmt.Sprintf("fps %.0f | frame p50 %s p95 %s p99 %s | heap %d MiB",
		m.FPS, p.P50.Round(time.Microsecond), p.P95.Round(time.Microsecond),
		p.P99.Round(time.Microsecond), m.HeapBytes>>20), styleDead)

	if ended && snap.Outcome != nil {
		verdict := fmt.Sprintf(" %s WINS ", snap.Outcome.Winner)
		if snap.Outcome.Draw {
			verdict = " DRAW "
		}
		puts(screen, 0, row+3, verdict+"- press any key", styleHeader)
	}

	screen.Show()
}

func drawSide(screen tcell.Screen, row int, label string, side engine.SideSnapshot) int {
	puts(screen, 0, row, fmt.Sprintf("%s  (dealt %d, taken %d)", label, side.Stats.DamageDealt, side.Stats.DamageTaken), styleHeader)
	row++
	for _, e := range side.Entities {
		style := styleDefault
		if !e.Alive {
			style = styleDead
		}
		puts(screen, 2, row, fmt.Sprintf("%-8s %-10s", e.Card.Name, e.Anim), style)
		if e.Alive {
			puts(screen, 24, row, bar("hp", e.Health, e.MaxHealth, 20), styleHP)
			puts(screen, 50, row, fmt.Sprintf("sh %3d", e.Shield), styleShield)
			puts(screen, 58, row, fmt.Sprintf("en %3.0f/%3.0f", e.Energy, e.MaxEnergy), styleEnergy)
			puts(screen, 72, row, effectGlyphs(e.Effects), styleFeed)
		} else {
			puts(screen, 24, row, "dead", styleDead)
		}
		row++
	}
	return row
}

func bar(label string, cur, max, width int) string {
	if max <= 0 {
		max = 1
	}
	filled := cur * width / max
	if filled < 0 {
		filled = 0
	}
	out := make([]rune, 0, width)
	for i := 0; i < width; i++ {
		if i < filled {
			out = append(out, '█')
		} else {
			out = append(out, '░')
		}
	}
	return fmt.Sprintf("%s %s %d", label, string(out), cur)
}

func effectGlyphs(effects []combat.Effect) string {
	out := ""
	for _, eff := range effects {
		switch eff.Name {
		case combat.EffectNameBurn:
			out += "~burn"
		case combat.EffectNameFreeze:
			out += "~frz"
		case combat.EffectNameStun:
			out += "~stun"
		default:
			out += "~" + string(eff.Type)[:1]
		}
		out += " "
	}
	return out
}

// puts writes a string left to right starting at (x, y)
func puts(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func init() {
	// tcell owns the terminal; route stray log output away from it
	log.SetOutput(os.Stderr)
}
