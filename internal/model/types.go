// Package model defines shared data structures.
package model

import "time"

// MissingLetter is an unsolved position in a mob word.
type MissingLetter struct {
	Index int
	Char  rune
}

// Mob is a word-shaped target travelling toward the base.
type Mob struct {
	ID             string
	Word           string
	DisplayWord    string
	MissingLetters []MissingLetter
	Progress       float64
	Speed          float64
	IsDead         bool
	// ClearedAt is the run clock value when the mob was solved; valid only when Held is true.
	ClearedAt time.Duration
	Held      bool
}

// Boss is the final-wave target.
type Boss struct {
	Active   bool
	HP       float64
	MaxHP    float64
	Progress float64
	Speed    float64
}

// CardScope limits where a card has effect.
type CardScope string

const (
	ScopeUniversal CardScope = "UNIVERSAL"
	ScopeMob       CardScope = "MOB"
	ScopeBoss      CardScope = "BOSS"
)

// CardEffect is a sparse set of modifiers. Zero values mean "absent".
type CardEffect struct {
	SlowFactor       float64
	NearBaseSlow     float64
	DamageBlock      int
	MaxHPBoost       int
	AutoFillInterval time.Duration
	HighlightGaps    bool
	PatternEcho      bool
	VowelAssist      float64
	PassiveBossDPS   float64
	FlowGainMult     float64
	FlowProtection   float64
	CritSyntax       float64
}

// Card is a catalog entry describing a timed buff.
type Card struct {
	ID          string
	Name        string
	Description string
	Scope       CardScope
	Tier        int
	Cost        int
	Effect      CardEffect
}

// SkillBranch groups skills in the tree.
type SkillBranch string

const (
	BranchRecognition SkillBranch = "RECOGNITION"
	BranchPerformance SkillBranch = "PERFORMANCE"
	BranchControl     SkillBranch = "CONTROL"
)

// Skill is a catalog entry for a permanent upgrade.
type Skill struct {
	ID          string
	Name        string
	Branch      SkillBranch
	Description string
	MaxLevel    int
	Cost        int
}

// SkillMods are run modifiers derived from skill levels.
type SkillMods struct {
	GlobalSlow      float64
	FlowGainBonus   float64
	BossDamageBonus float64
	BonusHP         int
	CoinBonus       float64
	SpawnOffset     float64
}

// TutorialStep is a stage of the onboarding flow.
type TutorialStep string

const (
	StepWelcome   TutorialStep = "WELCOME"
	StepExplore   TutorialStep = "EXPLORE"
	StepLoot      TutorialStep = "LOOT"
	StepReady     TutorialStep = "READY"
	StepGameplay  TutorialStep = "GAMEPLAY"
	StepCompleted TutorialStep = "COMPLETED"
)

// Tutorial tracks onboarding progress.
type Tutorial struct {
	Step         TutorialStep
	VisitedPages []string
}

// Profile is the persisted meta-progression state.
type Profile struct {
	Coins     int
	SP        int
	Inventory []string
	Deck      []string
	Skills    map[string]int
	Lexicon   []string
	Tutorial  Tutorial
}

// RunConfig is the inbound contract of a combat run.
type RunConfig struct {
	BaseHP      int
	WaveCount   int
	Deck        []Card
	LexiconSize int
	Tutorial    bool
	Skills      SkillMods
}

// Outcome is the terminal state of a run.
type Outcome int

const (
	Running Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "running"
	}
}

// EventKind is a discrete notification for audio and effects.
type EventKind int

const (
	EventTyping EventKind = iota
	EventError
	EventClear
	EventBossHit
	EventWaveStart
	EventFail
)

func (k EventKind) String() string {
	switch k {
	case EventTyping:
		return "typing"
	case EventError:
		return "error"
	case EventClear:
		return "clear"
	case EventBossHit:
		return "boss-hit"
	case EventWaveStart:
		return "wave-start"
	case EventFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Event is emitted by the engine. Progress locates the source on the path when relevant.
type Event struct {
	Kind     EventKind
	Progress float64
	Word     string
	Damage   float64
}

// Snapshot is the per-frame view of a run.
type Snapshot struct {
	Wave          int
	WaveCount     int
	HP            int
	BaseHP        int
	TempHP        int
	Mobs          []Mob
	Boss          Boss
	BossTarget    string
	BossTyped     int
	Combo         int
	MaxCombo      int
	Flow          float64
	Hyper         bool
	Card          *Card
	CardActive    bool
	CardRemaining float64
	CardIndex     int
	DeckSize      int
	HighlightGaps bool
	LexiconSize   int
	Paused        bool
	Outcome       Outcome
	Keystrokes    int
	Correct       int
	Words         int
	Elapsed       time.Duration
}

// RunStats is the end-of-run report.
type RunStats struct {
	Won               bool
	Wave              int
	WPM               int
	Accuracy          int
	FlowUptime        int
	BestCombo         int
	WordsCompleted    int
	TotalKeystrokes   int
	CorrectKeystrokes int
	FlowTime          time.Duration
	TotalTime         time.Duration
	CoinsEarned       int
}

// Rewards is the victory loot.
type Rewards struct {
	Coins      int
	SP         int
	Cards      []string
	Duplicates []string
}

// RunRecord is a persisted finished run.
type RunRecord struct {
	ID        string
	StartedAt time.Time
	EndedAt   time.Time
	Stats     RunStats
	Rewards   Rewards
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since       *time.Time
	Last        int
	CurveWindow int
}
