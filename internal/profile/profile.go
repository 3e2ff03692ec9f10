// Package profile implements meta-progression: the shop, deck building, skill
// upgrades, the lexicon and run write-back.
package profile

import (
	"errors"
	"sort"

	"github.com/verte-zerg/wordsiege/internal/catalog"
	"github.com/verte-zerg/wordsiege/internal/model"
	"github.com/verte-zerg/wordsiege/internal/wordlist"
)

// SkillPointCost is the coin price of one skill point.
const SkillPointCost = 500

var (
	ErrUnknownCard       = errors.New("unknown card")
	ErrUnknownSkill      = errors.New("unknown skill")
	ErrAlreadyOwned      = errors.New("card already owned")
	ErrNotOwned          = errors.New("card not owned")
	ErrInsufficientCoins = errors.New("not enough coins")
	ErrInsufficientSP    = errors.New("not enough skill points")
	ErrMaxLevel          = errors.New("skill already at max level")
	ErrDeckFull          = errors.New("deck holds at most 4 cards")
)

// New returns a fresh profile at the start of the tutorial.
func New() model.Profile {
	return model.Profile{
		Skills:   map[string]int{},
		Tutorial: model.Tutorial{Step: model.StepWelcome},
	}
}

// Normalize repairs a loaded profile: unknown cards and skills are dropped,
// the deck is restricted to owned cards, skill levels are clamped and the
// lexicon becomes a sorted set.
func Normalize(p model.Profile) model.Profile {
	if p.Coins < 0 {
		p.Coins = 0
	}
	if p.SP < 0 {
		p.SP = 0
	}

	owned := make(map[string]struct{}, len(p.Inventory))
	inventory := make([]string, 0, len(p.Inventory))
	for _, id := range p.Inventory {
		if _, ok := catalog.Card(id); !ok {
			continue
		}
		if _, dup := owned[id]; dup {
			continue
		}
		owned[id] = struct{}{}
		inventory = append(inventory, id)
	}
	p.Inventory = inventory
	p.Deck = sanitizeDeck(p.Deck, owned)

	skills := make(map[string]int, len(p.Skills))
	for id, lvl := range p.Skills {
		s, ok := catalog.Skill(id)
		if !ok || lvl <= 0 {
			continue
		}
		if lvl > s.MaxLevel {
			lvl = s.MaxLevel
		}
		skills[id] = lvl
	}
	p.Skills = skills

	p.Lexicon = wordlist.Filter(p.Lexicon, wordlist.IsPlayable)
	sort.Strings(p.Lexicon)

	if !validStep(p.Tutorial.Step) {
		p.Tutorial.Step = model.StepWelcome
	}
	return p
}

func sanitizeDeck(ids []string, owned map[string]struct{}) []string {
	deck := make([]string, 0, catalog.DeckSize)
	for _, id := range ids {
		if len(deck) == catalog.DeckSize {
			break
		}
		if _, ok := owned[id]; !ok {
			continue
		}
		deck = append(deck, id)
	}
	return deck
}

// RunConfig derives the combat inputs from the profile.
func RunConfig(p model.Profile, baseHP int) model.RunConfig {
	return model.RunConfig{
		BaseHP:      baseHP,
		Deck:        catalog.BuildDeck(p.Deck),
		LexiconSize: len(p.Lexicon),
		Tutorial:    p.Tutorial.Step == model.StepGameplay,
		Skills:      catalog.SkillMods(p.Skills),
	}
}

// Owns reports whether the card is in the inventory.
func Owns(p model.Profile, id string) bool {
	for _, owned := range p.Inventory {
		if owned == id {
			return true
		}
	}
	return false
}

// BuyCard spends coins on a card not yet owned.
func BuyCard(p *model.Profile, id string) error {
	card, ok := catalog.Card(id)
	if !ok {
		return ErrUnknownCard
	}
	if Owns(*p, id) {
		return ErrAlreadyOwned
	}
	if p.Coins < card.Cost {
		return ErrInsufficientCoins
	}
	p.Coins -= card.Cost
	p.Inventory = append(p.Inventory, id)
	return nil
}

// BuySkillPoint converts SkillPointCost coins into one skill point.
func BuySkillPoint(p *model.Profile) error {
	if p.Coins < SkillPointCost {
		return ErrInsufficientCoins
	}
	p.Coins -= SkillPointCost
	p.SP++
	return nil
}

// UpgradeSkill spends the skill's SP cost to raise it one level.
func UpgradeSkill(p *model.Profile, id string) error {
	s, ok := catalog.Skill(id)
	if !ok {
		return ErrUnknownSkill
	}
	if p.Skills == nil {
		p.Skills = map[string]int{}
	}
	if p.Skills[id] >= s.MaxLevel {
		return ErrMaxLevel
	}
	if p.SP < s.Cost {
		return ErrInsufficientSP
	}
	p.SP -= s.Cost
	p.Skills[id]++
	return nil
}

// SetDeck replaces the deck. Every card must be owned; repeats are allowed.
func SetDeck(p *model.Profile, ids []string) error {
	if len(ids) > catalog.DeckSize {
		return ErrDeckFull
	}
	for _, id := range ids {
		if _, ok := catalog.Card(id); !ok {
			return ErrUnknownCard
		}
		if !Owns(*p, id) {
			return ErrNotOwned
		}
	}
	p.Deck = append([]string(nil), ids...)
	return nil
}

// UnlockWord adds a word to the lexicon. It reports whether the word was new.
func UnlockWord(p *model.Profile, word string) bool {
	word = wordlist.Normalize(word)
	if !wordlist.IsPlayable(word) {
		return false
	}
	i := sort.SearchStrings(p.Lexicon, word)
	if i < len(p.Lexicon) && p.Lexicon[i] == word {
		return false
	}
	p.Lexicon = append(p.Lexicon, "")
	copy(p.Lexicon[i+1:], p.Lexicon[i:])
	p.Lexicon[i] = word
	return true
}

// ApplyRun writes a finished run back into the profile. Victory rewards are
// credited; any finished run completes the in-game tutorial.
func ApplyRun(p *model.Profile, stats model.RunStats, rewards model.Rewards) {
	if p.Tutorial.Step == model.StepGameplay {
		p.Tutorial.Step = model.StepCompleted
	}
	if !stats.Won {
		return
	}
	p.Coins += rewards.Coins
	p.SP += rewards.SP
	for _, id := range rewards.Cards {
		if !Owns(*p, id) {
			p.Inventory = append(p.Inventory, id)
		}
	}
	p.Tutorial.Step = model.StepCompleted
}
