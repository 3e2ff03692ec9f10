package profile

import (
	"errors"
	"testing"

	"github.com/verte-zerg/wordsiege/internal/model"
)

func TestBuyCard(t *testing.T) {
	p := New()
	p.Coins = 90
	if err := BuyCard(&p, "temp_anchor"); !errors.Is(err, ErrInsufficientCoins) {
		t.Fatalf("expected ErrInsufficientCoins, got %v", err)
	}
	if p.Coins != 90 || len(p.Inventory) != 0 {
		t.Fatalf("rejected purchase changed the profile: %+v", p)
	}
	p.Coins = 220
	if err := BuyCard(&p, "temp_anchor"); err != nil {
		t.Fatalf("buy: %v", err)
	}
	if p.Coins != 120 || !Owns(p, "temp_anchor") {
		t.Fatalf("expected 100 coins spent, got %+v", p)
	}
	if err := BuyCard(&p, "reinforced_walls"); err != nil {
		t.Fatalf("buy: %v", err)
	}
	if p.Coins != 0 || !Owns(p, "reinforced_walls") {
		t.Fatalf("unexpected profile after purchase: %+v", p)
	}
	p.Coins = 1000
	if err := BuyCard(&p, "reinforced_walls"); !errors.Is(err, ErrAlreadyOwned) {
		t.Fatalf("expected ErrAlreadyOwned, got %v", err)
	}
	if err := BuyCard(&p, "bogus"); !errors.Is(err, ErrUnknownCard) {
		t.Fatalf("expected ErrUnknownCard, got %v", err)
	}
	if p.Coins != 1000 {
		t.Fatalf("failed purchases must not spend coins")
	}
}

func TestSkillPointsAndUpgrades(t *testing.T) {
	p := New()
	p.Coins = 999
	if err := BuySkillPoint(&p); err != nil {
		t.Fatalf("buy sp: %v", err)
	}
	if err := BuySkillPoint(&p); !errors.Is(err, ErrInsufficientCoins) {
		t.Fatalf("expected ErrInsufficientCoins, got %v", err)
	}
	if p.SP != 1 || p.Coins != 499 {
		t.Fatalf("unexpected balance sp=%d coins=%d", p.SP, p.Coins)
	}
	if err := UpgradeSkill(&p, "rec_slow"); !errors.Is(err, ErrInsufficientSP) {
		t.Fatalf("rec_slow costs 2 SP, got %v", err)
	}
	if err := UpgradeSkill(&p, "perf_flow"); err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	if p.Skills["perf_flow"] != 1 || p.SP != 0 {
		t.Fatalf("unexpected skills %+v sp=%d", p.Skills, p.SP)
	}
	p.SP = 10
	p.Skills["perf_flow"] = 5
	if err := UpgradeSkill(&p, "perf_flow"); !errors.Is(err, ErrMaxLevel) {
		t.Fatalf("expected ErrMaxLevel, got %v", err)
	}
	if err := UpgradeSkill(&p, "nope"); !errors.Is(err, ErrUnknownSkill) {
		t.Fatalf("expected ErrUnknownSkill, got %v", err)
	}
}

func TestSetDeck(t *testing.T) {
	p := New()
	p.Inventory = []string{"temp_anchor", "overclock"}
	if err := SetDeck(&p, []string{"temp_anchor", "aegis_shield"}); !errors.Is(err, ErrNotOwned) {
		t.Fatalf("expected ErrNotOwned, got %v", err)
	}
	if err := SetDeck(&p, []string{"temp_anchor", "temp_anchor", "overclock", "overclock", "temp_anchor"}); !errors.Is(err, ErrDeckFull) {
		t.Fatalf("expected ErrDeckFull, got %v", err)
	}
	if err := SetDeck(&p, []string{"overclock", "temp_anchor"}); err != nil {
		t.Fatalf("set deck: %v", err)
	}
	if len(p.Deck) != 2 || p.Deck[0] != "overclock" {
		t.Fatalf("unexpected deck %v", p.Deck)
	}
}

func TestUnlockWordIsIdempotentAndSorted(t *testing.T) {
	p := New()
	for _, w := range []string{"vault", "ARCH", "BEAM", "ARCH", "x1"} {
		UnlockWord(&p, w)
	}
	want := []string{"ARCH", "BEAM", "VAULT"}
	if len(p.Lexicon) != len(want) {
		t.Fatalf("unexpected lexicon %v", p.Lexicon)
	}
	for i := range want {
		if p.Lexicon[i] != want[i] {
			t.Fatalf("unexpected lexicon %v", p.Lexicon)
		}
	}
	if UnlockWord(&p, "BEAM") {
		t.Fatalf("second unlock should report false")
	}
}

func TestNormalizeRepairsProfile(t *testing.T) {
	p := model.Profile{
		Coins:     -5,
		Inventory: []string{"temp_anchor", "ghost", "temp_anchor", "overclock"},
		Deck:      []string{"ghost", "temp_anchor", "aegis_shield", "overclock", "temp_anchor", "overclock"},
		Skills:    map[string]int{"ctrl_hp": 9, "nope": 2, "perf_dmg": -1},
		Lexicon:   []string{"beam", "ARCH", "beam"},
		Tutorial:  model.Tutorial{Step: "BOGUS"},
	}
	got := Normalize(p)
	if got.Coins != 0 {
		t.Fatalf("coins not clamped")
	}
	if len(got.Inventory) != 2 {
		t.Fatalf("unexpected inventory %v", got.Inventory)
	}
	if len(got.Deck) != 4 || got.Deck[0] != "temp_anchor" {
		t.Fatalf("unexpected deck %v", got.Deck)
	}
	if got.Skills["ctrl_hp"] != 5 || len(got.Skills) != 1 {
		t.Fatalf("unexpected skills %v", got.Skills)
	}
	if len(got.Lexicon) != 2 || got.Lexicon[0] != "ARCH" {
		t.Fatalf("unexpected lexicon %v", got.Lexicon)
	}
	if got.Tutorial.Step != model.StepWelcome {
		t.Fatalf("unexpected step %s", got.Tutorial.Step)
	}
}

func TestRunConfigFromProfile(t *testing.T) {
	p := New()
	p.Deck = []string{"overclock"}
	p.Lexicon = []string{"ARCH", "BEAM"}
	p.Skills["ctrl_hp"] = 2
	p.Tutorial.Step = model.StepGameplay

	cfg := RunConfig(p, 10)
	if len(cfg.Deck) != 4 || cfg.Deck[3].ID != "overclock" {
		t.Fatalf("deck not padded: %+v", cfg.Deck)
	}
	if cfg.LexiconSize != 2 || !cfg.Tutorial || cfg.Skills.BonusHP != 2 || cfg.BaseHP != 10 {
		t.Fatalf("unexpected run config %+v", cfg)
	}
}

func TestApplyRun(t *testing.T) {
	p := New()
	p.Inventory = []string{"temp_anchor"}
	p.Tutorial.Step = model.StepGameplay

	ApplyRun(&p, model.RunStats{Won: false, CoinsEarned: 40}, model.Rewards{})
	if p.Coins != 0 {
		t.Fatalf("loss must not credit coins")
	}
	if p.Tutorial.Step != model.StepCompleted {
		t.Fatalf("tutorial should complete after the first run")
	}

	ApplyRun(&p, model.RunStats{Won: true}, model.Rewards{Coins: 210, SP: 1, Cards: []string{"overclock", "temp_anchor"}})
	if p.Coins != 210 || p.SP != 1 {
		t.Fatalf("unexpected balance coins=%d sp=%d", p.Coins, p.SP)
	}
	if len(p.Inventory) != 2 || !Owns(p, "overclock") {
		t.Fatalf("unexpected inventory %v", p.Inventory)
	}
}

func TestTutorialFlow(t *testing.T) {
	p := New()
	if StartRun(&p) {
		t.Fatalf("welcome step must not start a tutorial run")
	}
	if !Advance(&p) || p.Tutorial.Step != model.StepExplore {
		t.Fatalf("expected EXPLORE, got %s", p.Tutorial.Step)
	}
	for _, page := range []string{PageDeck, PageShop, PageDeck, "MENU"} {
		Visit(&p, page)
	}
	if ReturnToMenu(&p) {
		t.Fatalf("exploration incomplete with %v", p.Tutorial.VisitedPages)
	}
	Visit(&p, PageSkills)
	Visit(&p, PageLexicon)
	if !ReturnToMenu(&p) || p.Tutorial.Step != model.StepLoot {
		t.Fatalf("expected LOOT, got %s", p.Tutorial.Step)
	}
	if !Advance(&p) || p.Tutorial.Step != model.StepReady {
		t.Fatalf("expected READY, got %s", p.Tutorial.Step)
	}
	if len(p.Deck) != 2 || !Owns(p, "temp_anchor") || !Owns(p, "reinforced_walls") {
		t.Fatalf("starter cards missing: %+v", p)
	}
	if !StartRun(&p) || p.Tutorial.Step != model.StepGameplay {
		t.Fatalf("expected GAMEPLAY, got %s", p.Tutorial.Step)
	}
	if Message(p.Tutorial.Step) == "" {
		t.Fatalf("gameplay step needs a dialog")
	}
}

func TestSkipGrantsStarters(t *testing.T) {
	p := New()
	Skip(&p)
	if p.Tutorial.Step != model.StepCompleted || len(p.Deck) != 2 {
		t.Fatalf("unexpected skipped profile %+v", p)
	}
	before := len(p.Inventory)
	Skip(&p)
	if len(p.Inventory) != before {
		t.Fatalf("skip must be idempotent")
	}
}
