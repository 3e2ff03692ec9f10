// Package engine runs the combat simulation: waves, mobs, the card rotation,
// the boss duel and run statistics.
//
// An Engine is advanced only through Tick and Key. Both run to completion
// under the engine lock, so keystrokes and frames never interleave.
package engine

import (
	"sync"
	"time"

	"github.com/verte-zerg/wordsiege/internal/catalog"
	"github.com/verte-zerg/wordsiege/internal/generator"
	"github.com/verte-zerg/wordsiege/internal/model"
	"github.com/verte-zerg/wordsiege/internal/reward"
	"github.com/verte-zerg/wordsiege/internal/wordlist"
)

const (
	// DefaultBaseHP is used when the run config leaves BaseHP unset.
	DefaultBaseHP = 10
	// DefaultWaveCount is the number of waves; the last one is the boss wave.
	DefaultWaveCount = 5

	frameUnit  = 16 * time.Millisecond
	holdWindow = time.Second
)

// Sink receives engine events. Implementations must not block and must not
// call back into the engine.
type Sink interface {
	Emit(ev model.Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ev model.Event)

// Emit implements Sink.
func (f SinkFunc) Emit(ev model.Event) { f(ev) }

// Sinks fans an event out to several sinks in order.
type Sinks []Sink

// Emit implements Sink.
func (s Sinks) Emit(ev model.Event) {
	for _, sink := range s {
		if sink != nil {
			sink.Emit(ev)
		}
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithSink sets the event consumer.
func WithSink(s Sink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithWordUnlock sets the callback fired once per solved mob word.
func WithWordUnlock(fn func(word string)) Option {
	return func(e *Engine) { e.onUnlock = fn }
}

// WithPool replaces the default word pool. Unplayable words are dropped; an
// empty result falls back to the default pool.
func WithPool(words []string) Option {
	return func(e *Engine) {
		if pool := wordlist.Filter(words, wordlist.IsPlayable); len(pool) > 0 {
			e.pool = pool
		}
	}
}

// Engine owns all run-scoped combat state.
type Engine struct {
	mu sync.Mutex

	cfg      model.RunConfig
	gen      *generator.Generator
	pool     []string
	sink     Sink
	onUnlock func(string)

	paused  bool
	outcome model.Outcome
	ticked  bool
	now     time.Duration
	elapsed time.Duration

	wave         int
	hp           int
	mobs         []model.Mob
	nextSpawnAt  time.Duration
	lastAutoFill time.Duration

	boss         model.Boss
	arsenal      []string
	bossTarget   []rune
	bossTyped    int
	flow         float64
	flowTime     time.Duration
	perfectWords int
	wordClean    bool

	combo      int
	maxCombo   int
	keystrokes int
	correct    int
	completed  []string

	cardTimer     time.Duration
	rotationTimer time.Duration
	cardIndex     int
	fx            effects

	result model.RunStats
}

// New creates a run. A tutorial run starts paused until Begin.
func New(cfg model.RunConfig, gen *generator.Generator, opts ...Option) *Engine {
	if cfg.BaseHP <= 0 {
		cfg.BaseHP = DefaultBaseHP
	}
	if cfg.WaveCount <= 1 {
		cfg.WaveCount = DefaultWaveCount
	}
	if cfg.LexiconSize < 0 {
		cfg.LexiconSize = 0
	}
	if len(cfg.Deck) > catalog.DeckSize {
		cfg.Deck = cfg.Deck[:catalog.DeckSize]
	}
	e := &Engine{
		cfg:    cfg,
		gen:    gen,
		pool:   catalog.Words(),
		wave:   1,
		hp:     cfg.BaseHP + cfg.Skills.BonusHP,
		paused: cfg.Tutorial,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.fx = e.resolveEffects()
	if !e.paused {
		e.emit(model.Event{Kind: model.EventWaveStart})
	}
	return e
}

// Begin releases a tutorial pause.
func (e *Engine) Begin() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.paused || e.outcome != model.Running {
		return
	}
	e.paused = false
	e.emit(model.Event{Kind: model.EventWaveStart})
}

// Paused reports whether gameplay is frozen.
func (e *Engine) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

// Outcome reports whether the run is still going.
func (e *Engine) Outcome() model.Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.outcome
}

// Result returns the end-of-run report once the run has ended.
func (e *Engine) Result() (model.RunStats, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result, e.outcome != model.Running
}

// CompletedWords returns the words solved so far, in order.
func (e *Engine) CompletedWords() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.completed))
	copy(out, e.completed)
	return out
}

// Tick advances the simulation to the frame timestamp now. Timestamps must
// not decrease; the first tick only establishes the clock.
func (e *Engine) Tick(now time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.outcome != model.Running {
		return
	}
	if !e.ticked {
		e.ticked = true
		e.now = now
	}
	delta := now - e.now
	if delta < 0 {
		delta = 0
	}
	e.now = now
	if e.paused {
		return
	}
	e.elapsed += delta

	e.advanceCards(delta)
	e.fx = e.resolveEffects()

	if e.effectiveHP() <= 0 {
		e.finish(false)
		return
	}

	if e.fx.autoFill > 0 && !e.isBossWave() && now-e.lastAutoFill > e.fx.autoFill {
		e.lastAutoFill = now
		e.autoFill()
	}

	if !e.isBossWave() {
		e.spawn(now)
		e.advanceMobs(delta)
	} else if e.boss.Active {
		if e.flow > 0 {
			e.flowTime += delta
		}
		e.advanceBoss(delta)
	}
}

// Key resolves a single typed character.
func (e *Engine) Key(r rune) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.paused || e.outcome != model.Running {
		return
	}
	e.keystrokes++
	if e.isBossWave() {
		e.bossKey(r)
		return
	}
	e.mobKey(r)
}

// Snapshot copies the state consumers need for one frame.
func (e *Engine) Snapshot() model.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	mobs := make([]model.Mob, len(e.mobs))
	copy(mobs, e.mobs)
	snap := model.Snapshot{
		Wave:          e.wave,
		WaveCount:     e.cfg.WaveCount,
		HP:            e.hp,
		BaseHP:        e.cfg.BaseHP + e.cfg.Skills.BonusHP,
		TempHP:        e.fx.tempHP,
		Mobs:          mobs,
		Boss:          e.boss,
		BossTyped:     e.bossTyped,
		Combo:         e.combo,
		MaxCombo:      e.maxCombo,
		Flow:          e.flow,
		Hyper:         e.flow >= flowMax,
		CardActive:    e.fx.active,
		CardRemaining: e.cardRemaining(),
		CardIndex:     e.cardIndex,
		DeckSize:      len(e.cfg.Deck),
		HighlightGaps: e.fx.highlightGaps,
		LexiconSize:   e.cfg.LexiconSize,
		Paused:        e.paused,
		Outcome:       e.outcome,
		Keystrokes:    e.keystrokes,
		Correct:       e.correct,
		Words:         len(e.completed),
		Elapsed:       e.elapsed,
	}
	if snap.Boss.HP < 0 {
		snap.Boss.HP = 0
	}
	if e.bossTarget != nil {
		snap.BossTarget = string(e.bossTarget)
	}
	if card := e.currentCard(); card != nil {
		c := *card
		snap.Card = &c
	}
	return snap
}

func (e *Engine) isBossWave() bool {
	return e.wave == e.cfg.WaveCount
}

func (e *Engine) effectiveHP() int {
	return e.hp + e.fx.tempHP
}

func (e *Engine) emit(ev model.Event) {
	if e.sink != nil {
		e.sink.Emit(ev)
	}
}

func (e *Engine) registerHit() {
	e.correct++
	e.combo++
	if e.combo > e.maxCombo {
		e.maxCombo = e.combo
	}
}

func (e *Engine) takeDamage(amount int) {
	e.hp -= amount
	if e.hp < 0 {
		e.hp = 0
	}
	e.combo = 0
	e.emit(model.Event{Kind: model.EventError})
}

func (e *Engine) finish(won bool) {
	if e.outcome != model.Running {
		return
	}
	if won {
		e.outcome = model.Won
	} else {
		e.outcome = model.Lost
		e.emit(model.Event{Kind: model.EventFail})
	}
	e.result = reward.Compute(reward.Totals{
		Won:        won,
		Wave:       e.wave,
		Keystrokes: e.keystrokes,
		Correct:    e.correct,
		MaxCombo:   e.maxCombo,
		Words:      len(e.completed),
		FlowTime:   e.flowTime,
		TotalTime:  e.elapsed,
		CoinBonus:  e.cfg.Skills.CoinBonus,
	})
}
