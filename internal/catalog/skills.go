package catalog

import "github.com/verte-zerg/wordsiege/internal/model"

var skills = []model.Skill{
	{ID: "rec_clarity", Name: "Optical Clarity", Branch: model.BranchRecognition, Description: "Enemies spawn 5% further back.", MaxLevel: 5, Cost: 1},
	{ID: "rec_slow", Name: "Entropy Field", Branch: model.BranchRecognition, Description: "Global 2% slow per level.", MaxLevel: 5, Cost: 2},
	{ID: "perf_flow", Name: "Synapse Fire", Branch: model.BranchPerformance, Description: "+5% Flow gain.", MaxLevel: 5, Cost: 1},
	{ID: "perf_dmg", Name: "Logic Strike", Branch: model.BranchPerformance, Description: "+2 Boss Damage.", MaxLevel: 5, Cost: 2},
	{ID: "ctrl_hp", Name: "Core Reinforce", Branch: model.BranchControl, Description: "+1 Max HP.", MaxLevel: 5, Cost: 2},
	{ID: "ctrl_coin", Name: "Data Mining", Branch: model.BranchControl, Description: "+10% Coin gain.", MaxLevel: 5, Cost: 1},
}

// Skills returns the skill tree in display order.
func Skills() []model.Skill {
	out := make([]model.Skill, len(skills))
	copy(out, skills)
	return out
}

// Skill looks up a skill by id.
func Skill(id string) (model.Skill, bool) {
	for _, s := range skills {
		if s.ID == id {
			return s, true
		}
	}
	return model.Skill{}, false
}

// SkillMods converts skill levels into run modifiers. Unknown skills are
// ignored and levels are clamped to the skill's range.
func SkillMods(levels map[string]int) model.SkillMods {
	level := func(id string) int {
		s, ok := Skill(id)
		if !ok {
			return 0
		}
		lvl := levels[id]
		if lvl < 0 {
			return 0
		}
		if lvl > s.MaxLevel {
			return s.MaxLevel
		}
		return lvl
	}
	return model.SkillMods{
		GlobalSlow:      0.02 * float64(level("rec_slow")),
		FlowGainBonus:   0.05 * float64(level("perf_flow")),
		BossDamageBonus: 2 * float64(level("perf_dmg")),
		BonusHP:         level("ctrl_hp"),
		CoinBonus:       0.10 * float64(level("ctrl_coin")),
		SpawnOffset:     0.05 * float64(level("rec_clarity")),
	}
}
