package engine

import (
	"math"
	"testing"
	"time"

	"github.com/verte-zerg/wordsiege/internal/model"
)

// enterBoss jumps straight to the boss wave with a fixed first target.
func enterBoss(e *Engine, target string, flow float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.wave = e.cfg.WaveCount
	e.mobs = nil
	e.startBoss()
	e.bossTarget = []rune(target)
	e.bossTyped = 0
	e.flow = flow
}

func setTarget(e *Engine, target string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bossTarget = []rune(target)
	e.bossTyped = 0
	e.wordClean = true
}

func typeWord(e *Engine, word string) {
	for _, r := range word {
		e.Key(r)
	}
}

func TestBossDamageFormula(t *testing.T) {
	cases := []struct {
		n       int
		hyper   bool
		lexicon int
		want    float64
	}{
		{5, false, 0, 5},
		{5, true, 0, 10},
		{4, false, 50, 6},
		{6, true, 100, 24},
	}
	for _, tc := range cases {
		if got := BossDamage(tc.n, tc.hyper, tc.lexicon); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("BossDamage(%d,%v,%d) = %f, want %f", tc.n, tc.hyper, tc.lexicon, got, tc.want)
		}
	}
}

func TestHyperWordDamagesBoss(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(model.RunConfig{}, WithSink(rec))
	e.Tick(0)
	enterBoss(e, "BUILD", flowMax)

	typeWord(e, "BUILD")

	snap := e.Snapshot()
	if snap.Boss.HP != 90 {
		t.Fatalf("expected boss hp 90, got %f", snap.Boss.HP)
	}
	if snap.Flow != flowMax {
		t.Fatalf("flow should stay capped, got %f", snap.Flow)
	}
	if snap.Combo != 1 {
		t.Fatalf("boss combo counts words, got %d", snap.Combo)
	}
	if snap.BossTyped != 0 || snap.BossTarget == "" {
		t.Fatalf("expected a fresh target, got %q typed %d", snap.BossTarget, snap.BossTyped)
	}
	var hit *model.Event
	for i := range rec.events {
		if rec.events[i].Kind == model.EventBossHit {
			hit = &rec.events[i]
		}
	}
	if hit == nil || hit.Damage != 10 || hit.Word != "BUILD" {
		t.Fatalf("unexpected boss hit event %+v", hit)
	}
}

func TestFlowGainAndLoss(t *testing.T) {
	e := newTestEngine(model.RunConfig{})
	e.Tick(0)
	enterBoss(e, "BEAM", 0)

	e.Key('B')
	e.Key('E')
	if got := e.Snapshot().Flow; got != 10 {
		t.Fatalf("expected flow 10, got %f", got)
	}
	e.Key('Q')
	snap := e.Snapshot()
	if snap.Flow != 0 {
		t.Fatalf("expected flow floored at 0, got %f", snap.Flow)
	}
	if snap.BossTyped != 2 {
		t.Fatalf("a miss must not advance the cursor, got %d", snap.BossTyped)
	}
}

func TestFlowStabilizerSoftensMiss(t *testing.T) {
	e := newTestEngine(model.RunConfig{Deck: deckOf("flow_stabilizer")})
	e.Tick(0)
	enterBoss(e, "BEAM", 50)

	e.Key('X')
	if got := e.Snapshot().Flow; math.Abs(got-42) > 1e-9 {
		t.Fatalf("expected flow 42, got %f", got)
	}
}

func TestOverclockAndSkillFlowGain(t *testing.T) {
	cfg := model.RunConfig{
		Deck:   deckOf("overclock"),
		Skills: model.SkillMods{FlowGainBonus: 0.25},
	}
	e := newTestEngine(cfg)
	e.Tick(0)
	enterBoss(e, "BEAM", 0)

	e.Key('B')
	if got := e.Snapshot().Flow; math.Abs(got-7.5) > 1e-9 {
		t.Fatalf("expected flow 7.5, got %f", got)
	}
}

func TestCritAfterThreePerfectWords(t *testing.T) {
	e := newTestEngine(model.RunConfig{Deck: deckOf("crit_syntax")})
	e.Tick(0)
	enterBoss(e, "AB", 0)

	typeWord(e, "AB")
	setTarget(e, "CD")
	typeWord(e, "CD")
	if got := e.Snapshot().Boss.HP; got != 96 {
		t.Fatalf("expected 96 before crit, got %f", got)
	}
	setTarget(e, "EF")
	typeWord(e, "EF")
	if got := e.Snapshot().Boss.HP; got != 89 {
		t.Fatalf("expected crit to land at 89, got %f", got)
	}
}

func TestMissBreaksPerfectStreak(t *testing.T) {
	e := newTestEngine(model.RunConfig{Deck: deckOf("crit_syntax")})
	e.Tick(0)
	enterBoss(e, "AB", 0)

	typeWord(e, "AB")
	setTarget(e, "CD")
	typeWord(e, "CXD")
	setTarget(e, "EF")
	typeWord(e, "EF")
	if got := e.Snapshot().Boss.HP; got != 94 {
		t.Fatalf("expected no crit after a miss, got %f", got)
	}
}

func TestPassiveBossDamage(t *testing.T) {
	e := newTestEngine(model.RunConfig{Deck: deckOf("pulse_damage")})
	e.Tick(0)
	enterBoss(e, "BEAM", 0)

	e.Tick(time.Second)
	if got := e.Snapshot().Boss.HP; math.Abs(got-98) > 1e-9 {
		t.Fatalf("expected boss hp 98, got %f", got)
	}
}

func TestBossBreachLosesRun(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(model.RunConfig{BaseHP: 10}, WithSink(rec))
	e.Tick(0)
	enterBoss(e, "BEAM", 0)
	e.mu.Lock()
	e.boss.Progress = 0.9999
	e.mu.Unlock()

	e.Tick(16 * time.Millisecond)

	snap := e.Snapshot()
	if snap.Outcome != model.Lost || snap.HP != 0 {
		t.Fatalf("expected loss at hp 0, got %s hp=%d", snap.Outcome, snap.HP)
	}
	if rec.count(model.EventFail) != 1 {
		t.Fatalf("expected a fail event")
	}
}

func TestBossDefeatWinsRun(t *testing.T) {
	e := newTestEngine(model.RunConfig{LexiconSize: 0})
	e.Tick(0)
	enterBoss(e, "BEAM", flowMax)
	e.mu.Lock()
	e.boss.HP = 5
	e.completed = []string{"BEAM", "ARCH"}
	e.mu.Unlock()

	typeWord(e, "BEAM")

	res, done := e.Result()
	if !done || !res.Won {
		t.Fatalf("expected victory, got %+v done=%v", res, done)
	}
	if res.CoinsEarned != 2*5+100 {
		t.Fatalf("unexpected coins %d", res.CoinsEarned)
	}
	if res.Wave != DefaultWaveCount {
		t.Fatalf("expected final wave, got %d", res.Wave)
	}
}

func TestArsenalRefillsFromCompletedWords(t *testing.T) {
	e := newTestEngine(model.RunConfig{})
	e.mu.Lock()
	e.completed = []string{"BEAM"}
	e.startBoss()
	e.mu.Unlock()

	seen := map[string]bool{}
	for i := 0; i < 30; i++ {
		e.mu.Lock()
		seen[string(e.bossTarget)] = true
		e.nextBossWord()
		e.mu.Unlock()
	}
	if !seen["BEAM"] {
		t.Fatalf("completed word missing from arsenal: %v", seen)
	}
	for w := range seen {
		if w == "" {
			t.Fatalf("empty boss target")
		}
	}
}
