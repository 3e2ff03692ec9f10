package engine

import (
	"sort"
	"time"

	"github.com/verte-zerg/wordsiege/internal/generator"
	"github.com/verte-zerg/wordsiege/internal/model"
)

const (
	mobRate      = 0.0005
	nearBase     = 0.85
	spawnGate    = 0.15
	spawnRetry   = 500 * time.Millisecond
	spawnBase    = 3000 * time.Millisecond
	spawnPerWave = 400 * time.Millisecond
	spawnFloor   = 1500 * time.Millisecond
	wordsPerWave = 5
	arsenalFill  = 10
	echoTargets  = 2
)

// SpawnDelay is the interval between mob spawns for a wave.
func SpawnDelay(wave int) time.Duration {
	d := spawnBase - time.Duration(wave)*spawnPerWave
	if d < spawnFloor {
		return spawnFloor
	}
	return d
}

func (e *Engine) spawn(now time.Duration) {
	if now < e.nextSpawnAt {
		return
	}
	back := e.cfg.Skills.SpawnOffset
	if n := len(e.mobs); n > 0 && e.mobs[n-1].Progress+back <= spawnGate {
		e.nextSpawnAt = now + spawnRetry
		return
	}
	mob, err := e.gen.Generate(e.gen.Pick(e.pool))
	if err != nil {
		e.nextSpawnAt = now + spawnRetry
		return
	}
	e.assistVowel(&mob)
	mob.Progress = -back
	e.mobs = append(e.mobs, mob)
	e.nextSpawnAt = now + SpawnDelay(e.wave)
}

// assistVowel reveals one vowel gap of a two-gap mob by chance.
func (e *Engine) assistVowel(mob *model.Mob) {
	if e.fx.vowelAssist <= 0 || len(mob.MissingLetters) < 2 {
		return
	}
	if e.gen.Float64() >= e.fx.vowelAssist {
		return
	}
	for i, m := range mob.MissingLetters {
		if isVowel(m.Char) {
			generator.Fill(mob, i)
			return
		}
	}
}

func isVowel(r rune) bool {
	switch r {
	case 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

func (e *Engine) advanceMobs(delta time.Duration) {
	frames := float64(delta) / float64(frameUnit)
	kept := e.mobs[:0]
	breaches := 0
	for _, mob := range e.mobs {
		if mob.Held {
			if e.now-mob.ClearedAt < holdWindow {
				kept = append(kept, mob)
			}
			continue
		}
		mob.Progress += mobRate * e.speedFor(mob.Progress) * mob.Speed * frames
		if mob.Progress >= 1 {
			breaches++
			continue
		}
		kept = append(kept, mob)
	}
	for i := len(kept); i < len(e.mobs); i++ {
		e.mobs[i] = model.Mob{}
	}
	e.mobs = kept

	if breaches == 0 || e.fx.damageBlock {
		return
	}
	e.takeDamage(breaches)
	if e.effectiveHP() <= 0 {
		e.finish(false)
	}
}

// targets returns live mob indices ordered closest to the base first.
func (e *Engine) targets() []int {
	idx := make([]int, 0, len(e.mobs))
	for i, mob := range e.mobs {
		if mob.IsDead || mob.Held || len(mob.MissingLetters) == 0 {
			continue
		}
		idx = append(idx, i)
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return e.mobs[idx[a]].Progress > e.mobs[idx[b]].Progress
	})
	return idx
}

func (e *Engine) mobKey(r rune) {
	limit := 1
	if e.fx.active && e.fx.patternEcho {
		limit = echoTargets
	}
	hits := 0
	for _, i := range e.targets() {
		if e.mobs[i].MissingLetters[0].Char != r {
			continue
		}
		if hits == 0 {
			e.registerHit()
		}
		hits++
		if e.strike(i) || hits == limit {
			break
		}
	}
	if hits == 0 {
		e.combo = 0
		e.perfectWords = 0
		e.emit(model.Event{Kind: model.EventError})
	}
}

// autoFill types the next letter of the mob closest to the base through the
// regular keystroke path.
func (e *Engine) autoFill() {
	order := e.targets()
	if len(order) == 0 {
		return
	}
	e.keystrokes++
	e.mobKey(e.mobs[order[0]].MissingLetters[0].Char)
}

// strike fills the next gap of mob i. It reports whether the wave advanced,
// which invalidates mob indices.
func (e *Engine) strike(i int) bool {
	mob := &e.mobs[i]
	generator.Fill(mob, 0)
	e.emit(model.Event{Kind: model.EventTyping, Progress: mob.Progress, Word: mob.Word})
	if len(mob.MissingLetters) > 0 {
		return false
	}
	mob.IsDead = true
	mob.Held = true
	mob.ClearedAt = e.now
	e.completed = append(e.completed, mob.Word)
	e.emit(model.Event{Kind: model.EventClear, Progress: mob.Progress, Word: mob.Word})
	if e.onUnlock != nil {
		e.onUnlock(mob.Word)
	}
	return e.advanceWave()
}

func (e *Engine) advanceWave() bool {
	n := len(e.completed)
	if n == 0 || n%wordsPerWave != 0 || e.wave >= e.cfg.WaveCount {
		return false
	}
	e.wave++
	e.mobs = nil
	e.emit(model.Event{Kind: model.EventWaveStart})
	if e.isBossWave() {
		e.startBoss()
	}
	return true
}
