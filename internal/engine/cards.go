package engine

import (
	"time"

	"github.com/verte-zerg/wordsiege/internal/catalog"
	"github.com/verte-zerg/wordsiege/internal/model"
)

const (
	cycleDuration    = 16 * time.Second
	activeDuration   = 12 * time.Second
	rotationInterval = 16 * time.Second
)

// effects is the resolved modifier set of the active card for one tick.
type effects struct {
	active         bool
	speedMult      float64
	nearBaseSlow   float64
	autoFill       time.Duration
	tempHP         int
	damageBlock    bool
	bossDPS        float64
	flowGain       float64
	flowProtection float64
	crit           float64
	patternEcho    bool
	highlightGaps  bool
	vowelAssist    float64
}

func (e *Engine) advanceCards(delta time.Duration) {
	e.cardTimer = (e.cardTimer + delta) % cycleDuration
	e.rotationTimer += delta
	for e.rotationTimer >= rotationInterval {
		e.rotationTimer -= rotationInterval
		e.cardIndex = (e.cardIndex + 1) % catalog.DeckSize
		e.cardTimer = e.rotationTimer
	}
}

func (e *Engine) currentCard() *model.Card {
	if len(e.cfg.Deck) == 0 {
		return nil
	}
	return &e.cfg.Deck[e.cardIndex%len(e.cfg.Deck)]
}

func (e *Engine) inGap() bool {
	return e.cardTimer > activeDuration
}

func (e *Engine) cardRemaining() float64 {
	if e.inGap() {
		return 0
	}
	return float64(activeDuration-e.cardTimer) / float64(activeDuration)
}

func (e *Engine) resolveEffects() effects {
	fx := effects{speedMult: 1 - e.cfg.Skills.GlobalSlow}
	card := e.currentCard()
	if card == nil || e.inGap() {
		return fx
	}
	eff := card.Effect
	fx.active = true
	fx.speedMult *= 1 - eff.SlowFactor
	fx.nearBaseSlow = eff.NearBaseSlow
	fx.autoFill = eff.AutoFillInterval
	fx.tempHP = eff.MaxHPBoost
	fx.damageBlock = eff.DamageBlock > 0
	fx.bossDPS = eff.PassiveBossDPS
	fx.flowGain = eff.FlowGainMult
	fx.flowProtection = eff.FlowProtection
	fx.crit = eff.CritSyntax
	fx.patternEcho = eff.PatternEcho
	fx.highlightGaps = eff.HighlightGaps
	fx.vowelAssist = eff.VowelAssist
	return fx
}

// speedFor applies the near-base slow on top of the tick multiplier.
func (e *Engine) speedFor(progress float64) float64 {
	mult := e.fx.speedMult
	if e.fx.nearBaseSlow > 0 && progress > nearBase {
		mult *= 1 - e.fx.nearBaseSlow
	}
	return mult
}
