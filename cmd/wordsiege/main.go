// Package main provides the CLI entrypoint for wordsiege.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordsiege/internal/audio"
	"github.com/verte-zerg/wordsiege/internal/config"
	"github.com/verte-zerg/wordsiege/internal/engine"
	"github.com/verte-zerg/wordsiege/internal/generator"
	"github.com/verte-zerg/wordsiege/internal/model"
	"github.com/verte-zerg/wordsiege/internal/profile"
	"github.com/verte-zerg/wordsiege/internal/stats"
	"github.com/verte-zerg/wordsiege/internal/statsui"
	"github.com/verte-zerg/wordsiege/internal/store"
	"github.com/verte-zerg/wordsiege/internal/tui"
	"github.com/verte-zerg/wordsiege/internal/wordlist"
)

const (
	defaultCurveWindow = 10
	maxFPS             = 240
)

var (
	playBaseHP   int
	playSeed     int64
	playMute     bool
	playFPS      int
	playWordList string
	playVolume   float64

	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPlain       bool
)

type playConfig struct {
	BaseHP   int
	Seed     *int64
	Mute     bool
	FPS      int
	WordList string
	Volume   float64
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wordsiege",
		Short:         "Terminal typing defense game",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().IntVar(&playBaseHP, "base-hp", engine.DefaultBaseHP, "base hit points at the start of a run")
	rootCmd.Flags().Int64Var(&playSeed, "seed", 0, "random seed for a reproducible run")
	rootCmd.Flags().BoolVar(&playMute, "mute", false, "disable sound")
	rootCmd.Flags().IntVar(&playFPS, "fps", tui.DefaultFPS, "frames per second")
	rootCmd.Flags().StringVar(&playWordList, "wordlist", "", "word pool file (one word per line)")
	rootCmd.Flags().Float64Var(&playVolume, "volume", audio.DefaultVolume, "master volume (0-1)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newDeckCmd())
	rootCmd.AddCommand(newShopCmd())
	rootCmd.AddCommand(newSkillsCmd())
	rootCmd.AddCommand(newLexiconCmd())
	rootCmd.AddCommand(newTutorialCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "base-hp", &playBaseHP, fileCfg.Game.BaseHP)
	applyInt64Config(cmd, "seed", &playSeed, fileCfg.Game.Seed)
	applyBoolConfig(cmd, "mute", &playMute, fileCfg.Game.Mute)
	applyIntConfig(cmd, "fps", &playFPS, fileCfg.Game.FPS)
	applyStringConfig(cmd, "wordlist", &playWordList, fileCfg.Game.WordList)
	applyFloatConfig(cmd, "volume", &playVolume, fileCfg.Game.Volume)

	cfg := playConfig{
		BaseHP:   playBaseHP,
		Mute:     playMute,
		FPS:      playFPS,
		WordList: playWordList,
		Volume:   playVolume,
	}
	if cmd.Flags().Changed("seed") || fileCfg.Game.Seed != nil {
		seed := playSeed
		cfg.Seed = &seed
	}
	if err := validatePlayConfig(cfg); err != nil {
		return err
	}

	var pool []string
	if cfg.WordList != "" {
		path := resolveWordListPath(cfg.WordList)
		pool, err = wordlist.LoadWords(path)
		if err != nil {
			return wordListLoadError(path, err)
		}
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	p, err := st.LoadProfile(ctx)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	p = profile.Normalize(p)
	before := p.Tutorial.Step
	if profile.StartRun(&p) && before != p.Tutorial.Step {
		if err := st.SaveProfile(ctx, p); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
	}
	if msg := tutorialHint(p.Tutorial.Step); msg != "" {
		logErrln(msg)
	}

	gen := generator.NewRandom()
	if cfg.Seed != nil {
		gen = generator.New(*cfg.Seed)
	}

	player := audio.NewPlayer(cfg.Volume, cfg.Mute)
	if err := player.Init(); err != nil {
		logErrf("audio disabled: %v\n", err)
	}
	defer player.Close()

	game := tui.NewModel(tui.Options{
		Profile:   p,
		BaseHP:    cfg.BaseHP,
		Pool:      pool,
		Generator: gen,
		Store:     st,
		Sound:     player,
		FPS:       cfg.FPS,
	})
	program := tea.NewProgram(game, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return printRunSummary(cmd, game)
}

func printRunSummary(cmd *cobra.Command, game *tui.Model) error {
	runStats, rewards, done := game.Result()
	if !done {
		return nil
	}
	result := "lost"
	if runStats.Won {
		result = "won"
	}
	line := fmt.Sprintf("Run %s at wave %d: %d WPM, %d%% accuracy, %d words", result, runStats.Wave, runStats.WPM, runStats.Accuracy, runStats.WordsCompleted)
	if runStats.Won {
		line += fmt.Sprintf(", +%d coins, +%d SP", rewards.Coins, rewards.SP)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// tutorialHint points players who launch a run mid-onboarding at the
// tutorial command.
func tutorialHint(step model.TutorialStep) string {
	switch step {
	case model.StepWelcome, model.StepExplore, model.StepLoot:
		return "tutorial in progress; see: wordsiege tutorial"
	}
	return ""
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show run history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N runs")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print text instead of opening the browser")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "last", &statsLast, fileCfg.Stats.Last)
	applyIntConfig(cmd, "curve-window", &statsCurveWindow, fileCfg.Stats.CurveWindow)

	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if statsCurveWindow < 1 {
		return fmt.Errorf("--curve-window must be >= 1")
	}

	cfg := model.StatsConfig{
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain {
		return printPlainStats(cmd, st, cfg)
	}

	browser := statsui.NewModel(st, cfg)
	program := tea.NewProgram(browser, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func printPlainStats(cmd *cobra.Command, st *store.Store, cfg model.StatsConfig) error {
	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report.Runs); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderCurves(out, report.Runs, cfg.CurveWindow, 0); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderRunTable(out, report.Window); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wordsiege configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# base-hp = %d            # Base hit points at the start of a run
# seed = 42               # Random seed for reproducible runs
# mute = false            # Disable sound
# fps = %d                # Frames per second
# wordlist = "words.txt"  # Word pool file, relative to %s
# volume = %.1f           # Master volume (0-1)

[stats]
# last = 50               # Limit stats to the last N runs
# curve-window = %d       # Moving average window
`,
		engine.DefaultBaseHP,
		tui.DefaultFPS,
		config.DefaultWordListDir(),
		audio.DefaultVolume,
		defaultCurveWindow,
	)
}

func validatePlayConfig(cfg playConfig) error {
	if cfg.BaseHP <= 0 {
		return fmt.Errorf("--base-hp must be > 0")
	}
	if cfg.FPS <= 0 || cfg.FPS > maxFPS {
		return fmt.Errorf("--fps must be between 1 and %d", maxFPS)
	}
	if cfg.Volume < 0 || cfg.Volume > 1 {
		return fmt.Errorf("--volume must be between 0 and 1")
	}
	return nil
}

// resolveWordListPath keeps absolute, directory-qualified and existing paths
// as given and looks bare names up in the word list directory.
func resolveWordListPath(name string) string {
	if filepath.IsAbs(name) || strings.ContainsRune(name, filepath.Separator) {
		return name
	}
	if _, err := os.Stat(name); err == nil {
		return name
	}
	candidate := filepath.Join(config.DefaultWordListDir(), name)
	if _, err := os.Stat(candidate); err != nil && filepath.Ext(name) == "" {
		return candidate + ".txt"
	}
	return candidate
}

func wordListLoadError(path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word list: %v", err),
		fmt.Sprintf("expected word list at: %s", path),
		"Word lists hold one word per line; words need at least 2 letters A-Z.",
		fmt.Sprintf("Bare names are looked up in: %s", config.DefaultWordListDir()),
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
