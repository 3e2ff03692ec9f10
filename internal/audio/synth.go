// Package audio turns engine events into short synthesized sounds.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

const (
	attack    = 5 * time.Millisecond
	decayTail = 0.001
)

// Tone is one oscillator voice of a sound.
type Tone struct {
	Freq  float64
	Wave  WaveType
	Dur   time.Duration
	Vol   float64
	Delay time.Duration
}

type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

func newOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope ramps up linearly over the attack and then decays exponentially
// to decayTail at the end of the tone.
type envelope struct {
	streamer      beep.Streamer
	position      int
	attackSamples int
	totalSamples  int
}

func newEnvelope(s beep.Streamer, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	att := rate.N(attack)
	total := rate.N(duration)
	if att > total {
		att = total
	}
	return &envelope{streamer: s, attackSamples: att, totalSamples: total}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if decay := e.totalSamples - e.attackSamples; decay > 0 {
			t := float64(e.position-e.attackSamples) / float64(decay)
			vol = math.Pow(decayTail, t)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Render mixes the tones of a sound into a single finite streamer.
func Render(tones []Tone, rate beep.SampleRate, master float64) beep.Streamer {
	voices := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		osc := newOscillator(t.Freq, t.Dur, t.Wave, rate)
		voice := newVolume(newEnvelope(osc, t.Dur, rate), t.Vol)
		if t.Delay > 0 {
			voice = beep.Seq(beep.Silence(rate.N(t.Delay)), voice)
		}
		voices = append(voices, voice)
	}
	return newVolume(beep.Mix(voices...), master)
}

// Length is the duration of the longest voice including its delay.
func Length(tones []Tone) time.Duration {
	var longest time.Duration
	for _, t := range tones {
		if end := t.Delay + t.Dur; end > longest {
			longest = end
		}
	}
	return longest
}
