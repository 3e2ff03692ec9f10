// Package catalog holds the static card, skill and word tables.
package catalog

import (
	"sort"
	"time"

	"github.com/verte-zerg/wordsiege/internal/model"
)

// DeckSize is the number of rotation slots in a run.
const DeckSize = 4

var cards = map[string]model.Card{
	"temp_anchor": {
		ID: "temp_anchor", Name: "Temporal Anchor", Scope: model.ScopeUniversal, Tier: 1, Cost: 100,
		Description: "Enemies move 30% slower while active.",
		Effect:      model.CardEffect{SlowFactor: 0.3},
	},
	"aegis_shield": {
		ID: "aegis_shield", Name: "Aegis Shield", Scope: model.ScopeUniversal, Tier: 1, Cost: 150,
		Description: "Absorbs base damage while active.",
		Effect:      model.CardEffect{DamageBlock: 1},
	},
	"reinforced_walls": {
		ID: "reinforced_walls", Name: "Reinforced Walls", Scope: model.ScopeUniversal, Tier: 1, Cost: 120,
		Description: "+1 Max HP while active.",
		Effect:      model.CardEffect{MaxHPBoost: 1},
	},
	"emergency_brakes": {
		ID: "emergency_brakes", Name: "Emergency Brakes", Scope: model.ScopeUniversal, Tier: 1, Cost: 200,
		Description: "Enemies near base (last 15%) move 60% slower.",
		Effect:      model.CardEffect{NearBaseSlow: 0.6},
	},
	"auto_fill": {
		ID: "auto_fill", Name: "Auto-Fill Assist", Scope: model.ScopeMob, Tier: 1, Cost: 300,
		Description: "Fills a missing letter every 4 seconds.",
		Effect:      model.CardEffect{AutoFillInterval: 4 * time.Second},
	},
	"gap_spotlight": {
		ID: "gap_spotlight", Name: "Gap Spotlight", Scope: model.ScopeMob, Tier: 1, Cost: 80,
		Description: "Highlights missing letters for clarity.",
		Effect:      model.CardEffect{HighlightGaps: true},
	},
	"pattern_echo": {
		ID: "pattern_echo", Name: "Pattern Echo", Scope: model.ScopeMob, Tier: 2, Cost: 400,
		Description: "Typing a letter fills it for up to 2 enemies.",
		Effect:      model.CardEffect{PatternEcho: true},
	},
	"vowel_assist": {
		ID: "vowel_assist", Name: "Vowel Assist", Scope: model.ScopeMob, Tier: 1, Cost: 150,
		Description: "Words with 2 gaps reveal a vowel (30% chance).",
		Effect:      model.CardEffect{VowelAssist: 0.3},
	},
	"pulse_damage": {
		ID: "pulse_damage", Name: "Pulse Damage", Scope: model.ScopeBoss, Tier: 1, Cost: 250,
		Description: "Boss takes 2 damage per second.",
		Effect:      model.CardEffect{PassiveBossDPS: 2},
	},
	"overclock": {
		ID: "overclock", Name: "Overclock", Scope: model.ScopeBoss, Tier: 1, Cost: 200,
		Description: "+25% Flow gain per keystroke.",
		Effect:      model.CardEffect{FlowGainMult: 0.25},
	},
	"flow_stabilizer": {
		ID: "flow_stabilizer", Name: "Flow Stabilizer", Scope: model.ScopeBoss, Tier: 1, Cost: 150,
		Description: "Mistakes reduce flow by 20% less.",
		Effect:      model.CardEffect{FlowProtection: 0.2},
	},
	"crit_syntax": {
		ID: "crit_syntax", Name: "Critical Syntax", Scope: model.ScopeBoss, Tier: 2, Cost: 350,
		Description: "3 perfect words in a row deal +5 bonus damage.",
		Effect:      model.CardEffect{CritSyntax: 5},
	},
}

// Card looks up a card by id.
func Card(id string) (model.Card, bool) {
	c, ok := cards[id]
	return c, ok
}

// CardIDs returns every catalog id in sorted order.
func CardIDs() []string {
	ids := make([]string, 0, len(cards))
	for id := range cards {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Cards returns every catalog card ordered by scope, tier and name.
func Cards() []model.Card {
	out := make([]model.Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, c)
	}
	order := map[model.CardScope]int{model.ScopeUniversal: 0, model.ScopeMob: 1, model.ScopeBoss: 2}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Scope != out[j].Scope {
			return order[out[i].Scope] < order[out[j].Scope]
		}
		if out[i].Tier != out[j].Tier {
			return out[i].Tier < out[j].Tier
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// BuildDeck resolves equipped ids into run cards. Unknown ids are dropped and
// the result is padded to DeckSize by repeating the first card. An empty or
// fully invalid deck yields no cards.
func BuildDeck(ids []string) []model.Card {
	deck := make([]model.Card, 0, DeckSize)
	for _, id := range ids {
		if len(deck) == DeckSize {
			break
		}
		if c, ok := cards[id]; ok {
			deck = append(deck, c)
		}
	}
	for len(deck) > 0 && len(deck) < DeckSize {
		deck = append(deck, deck[0])
	}
	return deck
}
