package engine

import (
	"math"
	"time"

	"github.com/verte-zerg/wordsiege/internal/model"
)

const (
	bossRate         = 0.00015
	bossMaxHP        = 100
	bossSpeed        = 1.0
	bossBreachDamage = 100

	flowMax       = 100
	flowGain      = 5
	flowLoss      = 10
	flowWordBonus = 10
	critStreak    = 3
	lexiconBonus  = 0.01
)

// BossDamage is the damage of a completed boss word before card and skill
// bonuses are added.
func BossDamage(wordLen int, hyper bool, lexiconSize int) float64 {
	mult := 1.0
	if hyper {
		mult = 2
	}
	return float64(wordLen) * mult * (1 + lexiconBonus*float64(lexiconSize))
}

func (e *Engine) startBoss() {
	arsenal := append([]string(nil), e.completed...)
	if len(arsenal) < wordsPerWave {
		n := arsenalFill
		if n > len(e.pool) {
			n = len(e.pool)
		}
		arsenal = append(arsenal, e.pool[:n]...)
	}
	e.arsenal = e.gen.Shuffled(arsenal)
	e.boss = model.Boss{
		Active: true,
		HP:     bossMaxHP,
		MaxHP:  bossMaxHP,
		Speed:  bossSpeed,
	}
	e.nextBossWord()
}

func (e *Engine) nextBossWord() {
	if len(e.arsenal) == 0 {
		source := e.completed
		if len(source) == 0 {
			source = e.pool
		}
		e.arsenal = e.gen.Shuffled(source)
	}
	e.bossTarget = []rune(e.arsenal[0])
	e.arsenal = e.arsenal[1:]
	e.bossTyped = 0
	e.wordClean = true
}

func (e *Engine) advanceBoss(delta time.Duration) {
	frames := float64(delta) / float64(frameUnit)
	e.boss.Progress += bossRate * e.speedFor(e.boss.Progress) * e.boss.Speed * frames
	if e.fx.bossDPS > 0 {
		e.boss.HP -= e.fx.bossDPS * delta.Seconds()
	}
	if e.boss.Progress >= 1 {
		e.boss.Progress = 1
		e.takeDamage(bossBreachDamage)
		e.finish(false)
		return
	}
	if e.boss.HP <= 0 {
		e.boss.Active = false
		e.finish(true)
	}
}

func (e *Engine) bossKey(r rune) {
	if !e.boss.Active || e.bossTyped >= len(e.bossTarget) {
		return
	}
	if r != e.bossTarget[e.bossTyped] {
		e.combo = 0
		e.wordClean = false
		e.perfectWords = 0
		e.flow = math.Max(0, e.flow-flowLoss*(1-e.fx.flowProtection))
		e.emit(model.Event{Kind: model.EventError, Progress: e.boss.Progress})
		return
	}

	e.correct++
	e.bossTyped++
	gain := flowGain * (1 + e.fx.flowGain + e.cfg.Skills.FlowGainBonus)
	e.flow = math.Min(flowMax, e.flow+gain)
	e.emit(model.Event{Kind: model.EventTyping, Progress: e.boss.Progress})
	if e.bossTyped < len(e.bossTarget) {
		return
	}

	word := string(e.bossTarget)
	if e.wordClean {
		e.perfectWords++
	} else {
		e.perfectWords = 0
	}
	damage := BossDamage(len(e.bossTarget), e.flow >= flowMax, e.cfg.LexiconSize)
	if e.fx.crit > 0 && e.perfectWords >= critStreak {
		damage += e.fx.crit
	}
	damage += e.cfg.Skills.BossDamageBonus
	e.boss.HP -= damage
	e.flow = math.Min(flowMax, e.flow+flowWordBonus)
	e.combo++
	if e.combo > e.maxCombo {
		e.maxCombo = e.combo
	}
	e.emit(model.Event{Kind: model.EventBossHit, Progress: e.boss.Progress, Word: word, Damage: damage})

	if e.boss.HP <= 0 {
		e.boss.Active = false
		e.finish(true)
		return
	}
	e.nextBossWord()
}
