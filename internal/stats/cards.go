package stats

import (
	"sort"

	"github.com/verte-zerg/wordsiege/internal/model"
)

// CardDrop counts how often a card dropped as loot.
type CardDrop struct {
	ID         string
	New        int
	Duplicates int
}

// Total is the number of times the card was drawn.
func (c CardDrop) Total() int { return c.New + c.Duplicates }

// TopCards returns the n most drawn cards, ties broken by id.
func TopCards(runs []model.RunRecord, n int) []CardDrop {
	if n <= 0 {
		return nil
	}
	byID := map[string]*CardDrop{}
	get := func(id string) *CardDrop {
		d, ok := byID[id]
		if !ok {
			d = &CardDrop{ID: id}
			byID[id] = d
		}
		return d
	}
	for _, r := range runs {
		for _, id := range r.Rewards.Cards {
			get(id).New++
		}
		for _, id := range r.Rewards.Duplicates {
			get(id).Duplicates++
		}
	}
	drops := make([]CardDrop, 0, len(byID))
	for _, d := range byID {
		drops = append(drops, *d)
	}
	sort.Slice(drops, func(i, j int) bool {
		if drops[i].Total() == drops[j].Total() {
			return drops[i].ID < drops[j].ID
		}
		return drops[i].Total() > drops[j].Total()
	})
	if n < len(drops) {
		drops = drops[:n]
	}
	return drops
}

// LossesByWave counts lost runs by the wave they ended on, indexed from wave 1.
func LossesByWave(runs []model.RunRecord, waves int) []int {
	counts := make([]int, waves)
	for _, r := range runs {
		if r.Stats.Won || r.Stats.Wave < 1 || r.Stats.Wave > waves {
			continue
		}
		counts[r.Stats.Wave-1]++
	}
	return counts
}
