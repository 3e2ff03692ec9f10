package tui

import (
	"math"
	"testing"
	"time"

	"github.com/verte-zerg/wordsiege/internal/geometry"
	"github.com/verte-zerg/wordsiege/internal/model"
)

func TestParticleExpiresAfterOneSecond(t *testing.T) {
	p := particle{born: 2 * time.Second}
	if p.Expired(2*time.Second + 999*time.Millisecond) {
		t.Fatalf("particle expired early")
	}
	if !p.Expired(3 * time.Second) {
		t.Fatalf("particle should expire after its display time")
	}
}

func TestBurstPerEventKind(t *testing.T) {
	now := time.Second
	clear := burst(model.Event{Kind: model.EventClear, Progress: 0.5, Word: "ARCH"}, now)
	if len(clear) != clearSparks+4 {
		t.Fatalf("expected %d sparks, got %d", clearSparks+4, len(clear))
	}
	origin := geometry.PointAt(0.5)
	for _, p := range clear {
		if p.born != now || p.x != origin.X || p.y != origin.Y {
			t.Fatalf("spark not anchored at the mob: %+v", p)
		}
	}

	hit := burst(model.Event{Kind: model.EventBossHit, Damage: 12.4}, now)
	if len(hit) != 1 || hit[0].glyph != "-12" {
		t.Fatalf("unexpected damage floater %+v", hit)
	}
	if len(burst(model.Event{Kind: model.EventTyping}, now)) != 1 {
		t.Fatalf("expected one typing spark")
	}
	for _, kind := range []model.EventKind{model.EventError, model.EventWaveStart, model.EventFail} {
		if burst(model.Event{Kind: kind}, now) != nil {
			t.Fatalf("%s should not spawn particles", kind)
		}
	}
}

func TestParticleDrifts(t *testing.T) {
	p := particle{x: 0.5, y: 0.5, vx: 0.1, vy: -0.2}
	pos := p.position(500 * time.Millisecond)
	if math.Abs(pos.X-0.55) > 1e-9 || math.Abs(pos.Y-0.4) > 1e-9 {
		t.Fatalf("unexpected position %+v", pos)
	}
}

func TestPruneParticlesKeepsLive(t *testing.T) {
	ps := []particle{{born: 0}, {born: 900 * time.Millisecond}, {born: 100 * time.Millisecond}}
	kept := pruneParticles(ps, 1500*time.Millisecond)
	if len(kept) != 1 || kept[0].born != 900*time.Millisecond {
		t.Fatalf("unexpected survivors %+v", kept)
	}
}

func TestEventQueueDrains(t *testing.T) {
	q := &eventQueue{}
	q.Emit(model.Event{Kind: model.EventClear})
	q.Emit(model.Event{Kind: model.EventError})
	if got := q.drain(); len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got := q.drain(); len(got) != 0 {
		t.Fatalf("queue not emptied")
	}
}
