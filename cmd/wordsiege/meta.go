package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordsiege/internal/catalog"
	"github.com/verte-zerg/wordsiege/internal/config"
	"github.com/verte-zerg/wordsiege/internal/model"
	"github.com/verte-zerg/wordsiege/internal/profile"
	"github.com/verte-zerg/wordsiege/internal/store"
)

var resetConfirmed bool

// profileAction mutates a loaded profile and reports whether it must be saved.
type profileAction func(w io.Writer, p *model.Profile) (bool, error)

// withProfile loads the normalized profile, runs action and saves on change.
func withProfile(cmd *cobra.Command, action profileAction) error {
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
	changed, err := action(cmd.OutOrStdout(), &p)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if err := st.SaveProfile(ctx, p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// visitPage shows a menu page and records the visit for the tutorial.
func visitPage(page string, show func(io.Writer, model.Profile) error) profileAction {
	return func(w io.Writer, p *model.Profile) (bool, error) {
		if err := show(w, *p); err != nil {
			return false, fmt.Errorf("failed to write output: %w", err)
		}
		return profile.Visit(p, page), nil
	}
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show coins, skill points and progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withProfile(cmd, func(w io.Writer, p *model.Profile) (bool, error) {
				if err := writeLines(w, profileLines(*p)); err != nil {
					return false, fmt.Errorf("failed to write output: %w", err)
				}
				return false, nil
			})
		},
	}
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Reset coins, cards, skills, lexicon and tutorial",
		Args:  cobra.NoArgs,
		RunE:  runProfileResetCmd,
	}
	reset.Flags().BoolVar(&resetConfirmed, "yes", false, "confirm the reset")
	cmd.AddCommand(reset)
	return cmd
}

func profileLines(p model.Profile) []string {
	deck := "(empty)"
	if len(p.Deck) > 0 {
		deck = strings.Join(p.Deck, ", ")
	}
	return []string{
		fmt.Sprintf("Coins: %d", p.Coins),
		fmt.Sprintf("Skill points: %d", p.SP),
		fmt.Sprintf("Cards owned: %d/%d", len(p.Inventory), len(catalog.CardIDs())),
		fmt.Sprintf("Deck: %s", deck),
		fmt.Sprintf("Lexicon: %d words", len(p.Lexicon)),
		fmt.Sprintf("Tutorial: %s", strings.ToLower(string(p.Tutorial.Step))),
	}
}

func runProfileResetCmd(cmd *cobra.Command, _ []string) error {
	if !resetConfirmed {
		return fmt.Errorf("refusing to reset the profile without --yes")
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
	if err := st.ResetProfile(context.Background()); err != nil {
		return fmt.Errorf("failed to reset profile: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), "Profile reset. Run history was kept."); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newDeckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Show the equipped cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withProfile(cmd, visitPage(profile.PageDeck, showDeck))
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set [card-id...]",
		Short: fmt.Sprintf("Equip up to %d owned cards in rotation order", catalog.DeckSize),
		Args:  cobra.MaximumNArgs(catalog.DeckSize),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProfile(cmd, func(w io.Writer, p *model.Profile) (bool, error) {
				if err := profile.SetDeck(p, args); err != nil {
					return false, fmt.Errorf("failed to set deck: %w", err)
				}
				if err := showDeck(w, *p); err != nil {
					return false, fmt.Errorf("failed to write output: %w", err)
				}
				return true, nil
			})
		},
	})
	return cmd
}

func showDeck(w io.Writer, p model.Profile) error {
	lines := []string{fmt.Sprintf("Deck (%d/%d)", len(p.Deck), catalog.DeckSize)}
	for i, id := range p.Deck {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, describeCard(id)))
	}
	lines = append(lines, "Inventory")
	if len(p.Inventory) == 0 {
		lines = append(lines, "  (no cards yet)")
	}
	for _, id := range p.Inventory {
		lines = append(lines, fmt.Sprintf("  %-18s %s", id, describeCard(id)))
	}
	return writeLines(w, lines)
}

func describeCard(id string) string {
	card, ok := catalog.Card(id)
	if !ok {
		return id
	}
	return fmt.Sprintf("%s [%s T%d] %s", card.Name, strings.ToLower(string(card.Scope)), card.Tier, card.Description)
}

func newShopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "List cards for sale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withProfile(cmd, visitPage(profile.PageShop, showShop))
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "buy <card-id>",
		Short: "Buy a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProfile(cmd, func(w io.Writer, p *model.Profile) (bool, error) {
				if err := profile.BuyCard(p, args[0]); err != nil {
					return false, fmt.Errorf("failed to buy %s: %w", args[0], err)
				}
				_, err := fmt.Fprintf(w, "Bought %s. Coins left: %d\n", describeCard(args[0]), p.Coins)
				return true, err
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "sp",
		Short: fmt.Sprintf("Buy a skill point for %d coins", profile.SkillPointCost),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withProfile(cmd, func(w io.Writer, p *model.Profile) (bool, error) {
				if err := profile.BuySkillPoint(p); err != nil {
					return false, fmt.Errorf("failed to buy skill point: %w", err)
				}
				_, err := fmt.Fprintf(w, "Skill points: %d. Coins left: %d\n", p.SP, p.Coins)
				return true, err
			})
		},
	})
	return cmd
}

func showShop(w io.Writer, p model.Profile) error {
	lines := []string{fmt.Sprintf("Coins: %d", p.Coins)}
	for _, card := range catalog.Cards() {
		price := fmt.Sprintf("%d", card.Cost)
		if profile.Owns(p, card.ID) {
			price = "owned"
		}
		lines = append(lines, fmt.Sprintf("  %-18s %6s  %s", card.ID, price, describeCard(card.ID)))
	}
	lines = append(lines, fmt.Sprintf("  %-18s %6d  One skill point", "sp", profile.SkillPointCost))
	return writeLines(w, lines)
}

func newSkillsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skills",
		Short: "Show the skill tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withProfile(cmd, visitPage(profile.PageSkills, showSkills))
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "upgrade <skill-id>",
		Short: "Spend skill points on a skill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProfile(cmd, func(w io.Writer, p *model.Profile) (bool, error) {
				if err := profile.UpgradeSkill(p, args[0]); err != nil {
					if errors.Is(err, profile.ErrInsufficientSP) {
						logErrf("buy skill points with: wordsiege shop sp\n")
					}
					return false, fmt.Errorf("failed to upgrade %s: %w", args[0], err)
				}
				s, _ := catalog.Skill(args[0])
				_, err := fmt.Fprintf(w, "%s is now level %d/%d. Skill points left: %d\n", s.Name, p.Skills[s.ID], s.MaxLevel, p.SP)
				return true, err
			})
		},
	})
	return cmd
}

func showSkills(w io.Writer, p model.Profile) error {
	lines := []string{fmt.Sprintf("Skill points: %d", p.SP)}
	branch := model.SkillBranch("")
	for _, s := range catalog.Skills() {
		if s.Branch != branch {
			branch = s.Branch
			lines = append(lines, strings.ToLower(string(branch)))
		}
		lines = append(lines, fmt.Sprintf("  %-12s %d/%d  cost %d  %s: %s", s.ID, p.Skills[s.ID], s.MaxLevel, s.Cost, s.Name, s.Description))
	}
	return writeLines(w, lines)
}

func newLexiconCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lexicon",
		Short: "List unlocked words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withProfile(cmd, visitPage(profile.PageLexicon, showLexicon))
		},
	}
}

func showLexicon(w io.Writer, p model.Profile) error {
	words := append([]string(nil), p.Lexicon...)
	sort.Strings(words)
	lines := []string{fmt.Sprintf("Lexicon: %d words", len(words))}
	if len(words) > 0 {
		lines = append(lines, strings.Join(words, " "))
	}
	return writeLines(w, lines)
}

func newTutorialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutorial",
		Short: "Show the current tutorial step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withProfile(cmd, func(w io.Writer, p *model.Profile) (bool, error) {
				return false, showTutorial(w, *p)
			})
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "next",
		Short: "Acknowledge the current tutorial step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withProfile(cmd, func(w io.Writer, p *model.Profile) (bool, error) {
				if err := advanceTutorial(p); err != nil {
					return false, err
				}
				return true, showTutorial(w, *p)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "skip",
		Short: "Skip the tutorial and receive the starter cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withProfile(cmd, func(w io.Writer, p *model.Profile) (bool, error) {
				profile.Skip(p)
				return true, showTutorial(w, *p)
			})
		},
	})
	return cmd
}

// advanceTutorial moves past the current dialog. EXPLORE only completes
// once every menu page has been opened.
func advanceTutorial(p *model.Profile) error {
	if p.Tutorial.Step == model.StepExplore {
		if profile.ReturnToMenu(p) {
			return nil
		}
		return fmt.Errorf("open these pages first: %s", strings.Join(missingPages(*p), ", "))
	}
	if profile.Advance(p) {
		return nil
	}
	switch p.Tutorial.Step {
	case model.StepReady, model.StepGameplay:
		return fmt.Errorf("start a run with: wordsiege")
	}
	return fmt.Errorf("tutorial already completed")
}

func missingPages(p model.Profile) []string {
	seen := map[string]bool{}
	for _, v := range p.Tutorial.VisitedPages {
		seen[v] = true
	}
	var missing []string
	for _, page := range []string{profile.PageDeck, profile.PageShop, profile.PageSkills, profile.PageLexicon} {
		if !seen[page] {
			missing = append(missing, "wordsiege "+strings.ToLower(page))
		}
	}
	return missing
}

func showTutorial(w io.Writer, p model.Profile) error {
	lines := []string{fmt.Sprintf("Step: %s", strings.ToLower(string(p.Tutorial.Step)))}
	if msg := profile.Message(p.Tutorial.Step); msg != "" {
		lines = append(lines, msg)
	}
	if p.Tutorial.Step == model.StepExplore {
		if missing := missingPages(p); len(missing) > 0 {
			lines = append(lines, "Still to open: "+strings.Join(missing, ", "))
		} else {
			lines = append(lines, "All pages seen. Continue with: wordsiege tutorial next")
		}
	}
	if err := writeLines(w, lines); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
