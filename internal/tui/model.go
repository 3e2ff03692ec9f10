// Package tui provides the Bubble Tea game screen.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/verte-zerg/wordsiege/internal/audio"
	"github.com/verte-zerg/wordsiege/internal/catalog"
	"github.com/verte-zerg/wordsiege/internal/engine"
	"github.com/verte-zerg/wordsiege/internal/generator"
	"github.com/verte-zerg/wordsiege/internal/model"
	"github.com/verte-zerg/wordsiege/internal/profile"
	"github.com/verte-zerg/wordsiege/internal/reward"
	"github.com/verte-zerg/wordsiege/internal/store"
)

// DefaultFPS is the frame rate when none is configured.
const DefaultFPS = 60

const (
	defaultWidth  = 80
	defaultHeight = 24
	errorFlash    = 250 * time.Millisecond
	bannerTime    = 2 * time.Second
	dialogWidth   = 56
)

// Options configures a game screen.
type Options struct {
	Profile   model.Profile
	BaseHP    int
	Pool      []string
	Generator *generator.Generator
	// Store persists unlocked words and the finished run; nil disables saving.
	Store *store.Store
	// Sound receives engine events; nil plays nothing.
	Sound *audio.Player
	FPS   int
}

type frameMsg time.Time

// Model implements the Bubble Tea game UI. It owns one run.
type Model struct {
	store   *store.Store
	gen     *generator.Generator
	sound   *audio.Player
	profile model.Profile
	engine  *engine.Engine
	events  *eventQueue
	fps     int

	width  int
	height int

	started   bool
	origin    time.Time
	startedAt time.Time
	now       time.Duration

	particles   []particle
	flashUntil  time.Duration
	bannerUntil time.Duration

	cardBar progress.Model
	flowBar progress.Model
	bossBar progress.Model

	finished bool
	stats    model.RunStats
	rewards  model.Rewards
	unlocked []string
	saveErr  error
}

// NewModel constructs a game screen for one run of the given profile.
func NewModel(opts Options) *Model {
	gen := opts.Generator
	if gen == nil {
		gen = generator.NewRandom()
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	m := &Model{
		store:   opts.Store,
		gen:     gen,
		sound:   opts.Sound,
		profile: profile.Normalize(opts.Profile),
		events:  &eventQueue{},
		fps:     fps,
		cardBar: newBar("#C89A3A"),
		flowBar: newBar("#5FD7FF", "#FF85C0"),
		bossBar: newBar("#B37FEB"),
	}

	sinks := engine.Sinks{m.events}
	if m.sound != nil {
		sinks = append(sinks, m.sound)
	}
	engineOpts := []engine.Option{
		engine.WithSink(sinks),
		engine.WithWordUnlock(m.unlockWord),
	}
	if len(opts.Pool) > 0 {
		engineOpts = append(engineOpts, engine.WithPool(opts.Pool))
	}
	m.engine = engine.New(profile.RunConfig(m.profile, opts.BaseHP), gen, engineOpts...)
	return m
}

// Profile returns the profile with everything this run wrote back.
func (m *Model) Profile() model.Profile {
	return m.profile
}

// Result returns the run report once the run has ended.
func (m *Model) Result() (model.RunStats, model.Rewards, bool) {
	return m.stats, m.rewards, m.finished
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return frameCmd(m.fps)
}

func frameCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case frameMsg:
		return m, m.handleFrame(time.Time(msg))
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

// handleFrame runs one simulation step. The next frame is scheduled only
// while the run is still going, paused or not.
func (m *Model) handleFrame(t time.Time) tea.Cmd {
	if m.finished {
		return nil
	}
	if !m.started {
		m.started = true
		m.origin = t
		m.startedAt = t
	}
	m.now = t.Sub(m.origin)
	m.engine.Tick(m.now)
	m.drainEvents()
	m.particles = pruneParticles(m.particles, m.now)
	if m.engine.Outcome() != model.Running {
		m.finishRun(t)
		return nil
	}
	return frameCmd(m.fps)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	}
	if m.finished {
		if msg.Type == tea.KeyEnter || msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	}
	switch msg.Type {
	case tea.KeyEnter:
		if m.engine.Paused() {
			m.engine.Begin()
			m.drainEvents()
		}
	case tea.KeyTab:
		if m.sound != nil {
			m.sound.SetMuted(!m.sound.Muted())
		}
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.engine.Key(unicode.ToUpper(r))
		}
		m.drainEvents()
		if m.engine.Outcome() != model.Running {
			m.finishRun(m.origin.Add(m.now))
		}
	}
	return m, nil
}

func (m *Model) drainEvents() {
	for _, ev := range m.events.drain() {
		switch ev.Kind {
		case model.EventError:
			m.flashUntil = m.now + errorFlash
		case model.EventWaveStart:
			m.bannerUntil = m.now + bannerTime
		default:
			m.particles = append(m.particles, burst(ev, m.now)...)
		}
	}
}

func (m *Model) unlockWord(word string) {
	if !profile.UnlockWord(&m.profile, word) {
		return
	}
	m.unlocked = append(m.unlocked, word)
	if m.store == nil {
		return
	}
	if _, err := m.store.AddLexiconWord(context.Background(), word, time.Now()); err != nil {
		logErrf("failed to save lexicon word: %v\n", err)
	}
}

func (m *Model) finishRun(endedAt time.Time) {
	if m.finished {
		return
	}
	m.finished = true
	stats, _ := m.engine.Result()
	m.stats = stats
	m.rewards, _ = reward.DrawLoot(m.gen, stats, catalog.CardIDs(), m.profile.Inventory)
	profile.ApplyRun(&m.profile, stats, m.rewards)

	if m.store == nil {
		return
	}
	startedAt := m.startedAt
	if startedAt.IsZero() {
		startedAt = endedAt
	}
	rec := model.RunRecord{
		ID:        uuid.NewString(),
		StartedAt: startedAt,
		EndedAt:   endedAt,
		Stats:     stats,
		Rewards:   m.rewards,
	}
	if err := m.store.RecordRun(context.Background(), rec, m.profile); err != nil {
		m.saveErr = err
		logErrf("failed to save run: %v\n", err)
	}
}

func (m *Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 || h <= 0 {
		return defaultWidth, defaultHeight
	}
	return w, h
}

// View implements tea.Model.
func (m *Model) View() string {
	width, height := m.size()
	if m.finished {
		result := renderResult(m.stats, m.rewards, len(m.unlocked), m.saveErr)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, result)
	}

	snap := m.engine.Snapshot()
	muted := m.sound != nil && m.sound.Muted()
	header := renderHUD(snap, m.now < m.flashUntil, muted)
	footer := append(renderBossPanel(snap, m.bossBar, m.flowBar), renderCardLine(snap, m.cardBar))
	footer = append(footer, footerStyle.Render("esc quit  tab sound"))

	fieldHeight := height - 1 - len(footer)
	if fieldHeight < 3 {
		fieldHeight = 3
	}
	var field string
	if snap.Paused {
		field = lipgloss.Place(width, fieldHeight, lipgloss.Center, lipgloss.Center, renderDialog(profile.Message(model.StepGameplay)))
	} else {
		field = renderField(snap, m.particles, m.now, m.banner(snap), width, fieldHeight)
	}
	return header + "\n" + field + "\n" + strings.Join(footer, "\n")
}

func (m *Model) banner(snap model.Snapshot) string {
	if m.now >= m.bannerUntil {
		return ""
	}
	if snap.Wave == snap.WaveCount {
		return "FINAL WAVE: THE BOSS APPROACHES"
	}
	return fmt.Sprintf("WAVE %d", snap.Wave)
}

// renderDialog wraps tutorial text into a bordered box.
func renderDialog(text string) string {
	body := wrapStyledRunes(buildTextRunes(text, correctStyle), dialogWidth)
	return dialogStyle.Render(titleStyle.Render("Briefing") + "\n\n" + body)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
