package profile

import "github.com/verte-zerg/wordsiege/internal/model"

// Menu pages tracked during the EXPLORE step.
const (
	PageDeck    = "DECK"
	PageShop    = "SHOP"
	PageSkills  = "SKILLS"
	PageLexicon = "LEXICON"
)

// StarterCards are granted and equipped when the LOOT step is acknowledged.
var StarterCards = []string{"temp_anchor", "reinforced_walls"}

var pages = []string{PageDeck, PageShop, PageSkills, PageLexicon}

func validStep(step model.TutorialStep) bool {
	switch step {
	case model.StepWelcome, model.StepExplore, model.StepLoot,
		model.StepReady, model.StepGameplay, model.StepCompleted:
		return true
	}
	return false
}

// Advance acknowledges the current dialog: WELCOME moves to EXPLORE and LOOT
// grants the starter cards and moves to READY.
func Advance(p *model.Profile) bool {
	switch p.Tutorial.Step {
	case model.StepWelcome:
		p.Tutorial.Step = model.StepExplore
		return true
	case model.StepLoot:
		for _, id := range StarterCards {
			if !Owns(*p, id) {
				p.Inventory = append(p.Inventory, id)
			}
		}
		p.Deck = append([]string(nil), StarterCards...)
		p.Tutorial.Step = model.StepReady
		return true
	}
	return false
}

// Visit records a menu page during EXPLORE.
func Visit(p *model.Profile, page string) bool {
	if p.Tutorial.Step != model.StepExplore || !knownPage(page) {
		return false
	}
	for _, v := range p.Tutorial.VisitedPages {
		if v == page {
			return false
		}
	}
	p.Tutorial.VisitedPages = append(p.Tutorial.VisitedPages, page)
	return true
}

// ReturnToMenu finishes EXPLORE once every page has been seen.
func ReturnToMenu(p *model.Profile) bool {
	if p.Tutorial.Step != model.StepExplore || len(p.Tutorial.VisitedPages) < len(pages) {
		return false
	}
	p.Tutorial.Step = model.StepLoot
	return true
}

// StartRun moves READY to GAMEPLAY. It reports whether the run about to start
// is the tutorial run.
func StartRun(p *model.Profile) bool {
	if p.Tutorial.Step == model.StepReady {
		p.Tutorial.Step = model.StepGameplay
	}
	return p.Tutorial.Step == model.StepGameplay
}

// Skip jumps straight to COMPLETED, granting the starter cards if the loot
// step was never reached.
func Skip(p *model.Profile) {
	switch p.Tutorial.Step {
	case model.StepWelcome, model.StepExplore, model.StepLoot:
		p.Tutorial.Step = model.StepLoot
		Advance(p)
	}
	p.Tutorial.Step = model.StepCompleted
}

// Message is the dialog text shown for a tutorial step, empty when none.
func Message(step model.TutorialStep) string {
	switch step {
	case model.StepWelcome:
		return "Welcome, architect. Words are marching on your base. Each one is missing letters; type them to tear the word down."
	case model.StepExplore:
		return "Look around before the first fight. Open the deck, shop, skills and lexicon pages once each, then come back."
	case model.StepLoot:
		return "Supplies have arrived: Temporal Anchor and Reinforced Walls. They are equipped in your deck and rotate automatically in combat."
	case model.StepReady:
		return "Your defenses are set. Start a run when you are ready."
	case model.StepGameplay:
		return "Type the missing letter of the word closest to your base. Cards cycle every 16 seconds: 12 active, 4 cooling down. Press enter to begin."
	}
	return ""
}

func knownPage(page string) bool {
	for _, p := range pages {
		if p == page {
			return true
		}
	}
	return false
}
