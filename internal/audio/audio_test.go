package audio

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/verte-zerg/wordsiege/internal/model"
)

func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if v := math.Abs(buf[i][0]); v > peak {
				peak = v
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestRecipesForEveryEvent(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	kinds := []model.EventKind{
		model.EventTyping, model.EventError, model.EventClear,
		model.EventBossHit, model.EventWaveStart, model.EventFail,
	}
	for _, kind := range kinds {
		if len(Recipe(kind, rnd)) == 0 {
			t.Fatalf("no recipe for %s", kind)
		}
	}
	if Recipe(model.EventKind(99), rnd) != nil {
		t.Fatalf("unknown kinds should be silent")
	}
}

func TestRenderLengthMatchesLongestVoice(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	rate := beep.SampleRate(8000)
	tones := Recipe(model.EventClear, rnd)
	if got := Length(tones); got != 700*time.Millisecond {
		t.Fatalf("unexpected length %s", got)
	}
	n, peak := drain(Render(tones, rate, 1))
	want := rate.N(700 * time.Millisecond)
	if n < want || n >= want+512 {
		t.Fatalf("expected about %d samples, got %d", want, n)
	}
	if peak == 0 || peak > 1 {
		t.Fatalf("unexpected peak %f", peak)
	}
}

func TestEnvelopeStartsSilentAndDecays(t *testing.T) {
	rate := beep.SampleRate(8000)
	s := newEnvelope(newOscillator(0, 100*time.Millisecond, WaveSquare, rate), 100*time.Millisecond, rate)
	buf := make([][2]float64, rate.N(100*time.Millisecond))
	n, _ := s.Stream(buf)
	if n != len(buf) {
		t.Fatalf("expected %d samples, got %d", len(buf), n)
	}
	if buf[0][0] != 0 {
		t.Fatalf("attack must start from silence, got %f", buf[0][0])
	}
	att := rate.N(attack)
	if math.Abs(buf[att][0]-1) > 1e-9 {
		t.Fatalf("expected full level after attack, got %f", buf[att][0])
	}
	if last := math.Abs(buf[n-1][0]); last > 0.01 {
		t.Fatalf("expected decayed tail, got %f", last)
	}
}

func TestMutedVolumeIsSilent(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	_, peak := drain(Render(Recipe(model.EventError, rnd), beep.SampleRate(8000), 0))
	if peak != 0 {
		t.Fatalf("zero master volume should be silent, peak %f", peak)
	}
}

func TestPlayerWithoutSpeakerDropsEvents(t *testing.T) {
	p := NewPlayer(2, true)
	if err := p.Init(); err != nil {
		t.Fatalf("muted init should not touch the speaker: %v", err)
	}
	p.Emit(model.Event{Kind: model.EventClear})
	if p.mixer.Len() != 0 {
		t.Fatalf("muted player queued a sound")
	}
	if !p.Muted() || p.volume != 1 {
		t.Fatalf("unexpected player state")
	}
	p.Close()
}

func TestUnmuteOpensSpeakerLazily(t *testing.T) {
	p := NewPlayer(0.5, true)
	opened := 0
	p.open = func() error {
		opened++
		return nil
	}
	if err := p.Init(); err != nil || opened != 0 {
		t.Fatalf("muted start must not open the speaker: opened=%d err=%v", opened, err)
	}
	p.SetMuted(false)
	if opened != 1 || !p.ready {
		t.Fatalf("unmute should open the speaker, opened=%d", opened)
	}
	p.Emit(model.Event{Kind: model.EventClear})
	if p.mixer.Len() != 1 {
		t.Fatalf("expected a queued sound after unmute, got %d", p.mixer.Len())
	}
	p.SetMuted(true)
	p.SetMuted(false)
	if opened != 1 {
		t.Fatalf("speaker opened twice")
	}
}

func TestUnmuteAfterFailedOpenStaysSilent(t *testing.T) {
	p := NewPlayer(0.5, true)
	opened := 0
	p.open = func() error {
		opened++
		return errors.New("no audio device")
	}
	p.SetMuted(false)
	p.SetMuted(true)
	p.SetMuted(false)
	p.Emit(model.Event{Kind: model.EventClear})
	if !p.Muted() {
		t.Fatalf("player without a speaker must report muted")
	}
	if opened != 1 || p.ready || p.mixer.Len() != 0 {
		t.Fatalf("failed speaker must stay silent and not retry, opened=%d", opened)
	}
}
