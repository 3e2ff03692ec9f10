package tui

import (
	"fmt"
	"math"
	"time"

	"github.com/verte-zerg/wordsiege/internal/geometry"
	"github.com/verte-zerg/wordsiege/internal/model"
)

const (
	particleLife = time.Second
	clearSparks  = 6
	sparkSpeed   = 0.12
	driftSpeed   = 0.06
)

var sparkGlyphs = []string{"*", "+", ".", "o", "x"}

// particle is a short-lived decoration spawned from an engine event.
type particle struct {
	x, y   float64
	vx, vy float64
	glyph  string
	kind   model.EventKind
	born   time.Duration
}

// Expired reports whether the particle has outlived its display time.
func (p particle) Expired(now time.Duration) bool {
	return now-p.born >= particleLife
}

func (p particle) position(now time.Duration) geometry.Point {
	age := (now - p.born).Seconds()
	return geometry.Point{X: p.x + p.vx*age, Y: p.y + p.vy*age}
}

// burst derives the particles of one event. Kinds without a location on
// the path produce none.
func burst(ev model.Event, now time.Duration) []particle {
	origin := geometry.PathPoint(ev.Progress)
	switch ev.Kind {
	case model.EventTyping:
		return []particle{{x: origin.X, y: origin.Y, vy: -driftSpeed, glyph: "+", kind: ev.Kind, born: now}}
	case model.EventClear:
		n := clearSparks + len(ev.Word)
		out := make([]particle, 0, n)
		for i := 0; i < n; i++ {
			angle := 2 * math.Pi * float64(i) / float64(n)
			out = append(out, particle{
				x:     origin.X,
				y:     origin.Y,
				vx:    sparkSpeed * math.Cos(angle),
				vy:    sparkSpeed * math.Sin(angle) / 2,
				glyph: sparkGlyphs[i%len(sparkGlyphs)],
				kind:  ev.Kind,
				born:  now,
			})
		}
		return out
	case model.EventBossHit:
		return []particle{{
			x:     origin.X,
			y:     origin.Y,
			vy:    -driftSpeed,
			glyph: fmt.Sprintf("-%.0f", ev.Damage),
			kind:  ev.Kind,
			born:  now,
		}}
	}
	return nil
}

func pruneParticles(ps []particle, now time.Duration) []particle {
	kept := ps[:0]
	for _, p := range ps {
		if !p.Expired(now) {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(ps); i++ {
		ps[i] = particle{}
	}
	return kept
}

// eventQueue collects engine events between frames.
type eventQueue struct {
	pending []model.Event
}

func (q *eventQueue) Emit(ev model.Event) {
	q.pending = append(q.pending, ev)
}

func (q *eventQueue) drain() []model.Event {
	out := q.pending
	q.pending = nil
	return out
}
