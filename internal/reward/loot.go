package reward

import "github.com/verte-zerg/wordsiege/internal/model"

// Intner is the slice of a random source loot needs.
type Intner interface {
	Intn(n int) int
}

// DrawLoot makes two draws from catalog. A draw that is already owned, or
// already drawn in this batch, becomes a duplicate worth 50 coins. Rewards
// are only granted for a won run.
func DrawLoot(rnd Intner, stats model.RunStats, catalog, owned []string) (model.Rewards, bool) {
	if !stats.Won {
		return model.Rewards{}, false
	}
	have := make(map[string]struct{}, len(owned)+lootDraws)
	for _, id := range owned {
		have[id] = struct{}{}
	}
	rewards := model.Rewards{SP: victorySP}
	if len(catalog) > 0 {
		for i := 0; i < lootDraws; i++ {
			id := catalog[rnd.Intn(len(catalog))]
			if _, ok := have[id]; ok {
				rewards.Duplicates = append(rewards.Duplicates, id)
				continue
			}
			have[id] = struct{}{}
			rewards.Cards = append(rewards.Cards, id)
		}
	}
	rewards.Coins = stats.CoinsEarned + duplicateCoins*len(rewards.Duplicates)
	return rewards, true
}
