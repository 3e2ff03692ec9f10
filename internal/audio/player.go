package audio

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/verte-zerg/wordsiege/internal/model"
)

// SampleRate is the output rate of the speaker.
const SampleRate = beep.SampleRate(44100)

// DefaultVolume is the master gain when none is configured.
const DefaultVolume = 0.5

// Recipe returns the tones played for an event kind.
func Recipe(kind model.EventKind, rnd *rand.Rand) []Tone {
	switch kind {
	case model.EventTyping:
		return []Tone{
			{Freq: 400, Wave: WaveSine, Dur: 80 * time.Millisecond, Vol: 0.2},
			{Freq: 2500, Wave: WaveTriangle, Dur: 10 * time.Millisecond, Vol: 0.03},
		}
	case model.EventError:
		return []Tone{
			{Freq: 150, Wave: WaveSaw, Dur: 200 * time.Millisecond, Vol: 0.15},
			{Freq: 100, Wave: WaveSquare, Dur: 200 * time.Millisecond, Vol: 0.1},
		}
	case model.EventClear:
		return []Tone{
			{Freq: 523.25, Wave: WaveSine, Dur: 400 * time.Millisecond, Vol: 0.2},
			{Freq: 659.25, Wave: WaveSine, Dur: 400 * time.Millisecond, Vol: 0.2, Delay: 50 * time.Millisecond},
			{Freq: 783.99, Wave: WaveSine, Dur: 600 * time.Millisecond, Vol: 0.2, Delay: 100 * time.Millisecond},
		}
	case model.EventBossHit:
		tones := []Tone{
			{Freq: 100, Wave: WaveSquare, Dur: 300 * time.Millisecond, Vol: 0.3},
			{Freq: 50, Wave: WaveSaw, Dur: 400 * time.Millisecond, Vol: 0.4},
		}
		for i := 0; i < 5; i++ {
			tones = append(tones, Tone{Freq: 200 + rnd.Float64()*800, Wave: WaveSaw, Dur: 100 * time.Millisecond, Vol: 0.1})
		}
		return tones
	case model.EventWaveStart:
		return []Tone{{Freq: 440, Wave: WaveSine, Dur: time.Second, Vol: 0.2}}
	case model.EventFail:
		return []Tone{
			{Freq: 100, Wave: WaveSaw, Dur: time.Second, Vol: 0.5},
			{Freq: 80, Wave: WaveSaw, Dur: time.Second, Vol: 0.5, Delay: 200 * time.Millisecond},
		}
	}
	return nil
}

// Player mixes event sounds into the speaker. A Player that failed to
// initialize, or is muted, drops every event. A muted player opens the
// speaker on the first unmute.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	rnd    *rand.Rand
	open   func() error
	volume float64
	muted  bool
	ready  bool
	failed bool
}

// NewPlayer creates a player with a master volume in [0,1].
func NewPlayer(volume float64, muted bool) *Player {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	p := &Player{
		mixer:  &beep.Mixer{},
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		volume: volume,
		muted:  muted,
	}
	p.open = p.openSpeaker
	return p
}

func (p *Player) openSpeaker() error {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	return nil
}

// Init opens the speaker unless the player starts muted. Errors are not
// fatal; the player stays silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.muted {
		return nil
	}
	return p.ensureOpen()
}

// ensureOpen opens the speaker once. A failed open is not retried and
// leaves the player muted.
func (p *Player) ensureOpen() error {
	if p.ready || p.failed {
		return nil
	}
	if err := p.open(); err != nil {
		p.failed = true
		p.muted = true
		return err
	}
	p.ready = true
	return nil
}

// Emit implements the engine sink. It never blocks on playback.
func (p *Player) Emit(ev model.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready || p.muted {
		return
	}
	tones := Recipe(ev.Kind, p.rnd)
	if len(tones) == 0 {
		return
	}
	s := Render(tones, SampleRate, p.volume)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// SetMuted toggles output. Unmuting a player whose speaker cannot open
// leaves it muted.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	if !muted {
		if err := p.ensureOpen(); err != nil || !p.ready {
			p.muted = true
		}
		return
	}
	if p.ready {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
	}
}

// Muted reports whether output is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.ready = false
}
