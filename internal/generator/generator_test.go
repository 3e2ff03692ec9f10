package generator

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateRoundTrip(t *testing.T) {
	g := New(7)
	for _, word := range []string{"STRUCTURE", "BEAM", "ARCH", "BLUEPRINT", "AB", "A"} {
		for i := 0; i < 50; i++ {
			mob, err := g.Generate(word)
			if err != nil {
				t.Fatalf("generate %q: %v", word, err)
			}
			if got := Reconstruct(mob); got != word {
				t.Fatalf("round trip %q: got %q", word, got)
			}
			for len(mob.MissingLetters) > 0 {
				Fill(&mob, 0)
				if got := Reconstruct(mob); got != word {
					t.Fatalf("intermediate round trip %q: got %q", word, got)
				}
			}
			if mob.DisplayWord != word {
				t.Fatalf("expected solved display %q, got %q", word, mob.DisplayWord)
			}
		}
	}
}

func TestGenerateMissingCount(t *testing.T) {
	g := New(1)
	twos := 0
	for i := 0; i < 1000; i++ {
		mob, err := g.Generate("BEAM")
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(mob.MissingLetters) != 1 {
			t.Fatalf("short word must have 1 gap, got %d", len(mob.MissingLetters))
		}
		mob, err = g.Generate("COLUMN")
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if n := len(mob.MissingLetters); n == 2 {
			twos++
		} else if n != 1 {
			t.Fatalf("unexpected gap count %d", n)
		}
	}
	if twos < 200 || twos > 400 {
		t.Fatalf("expected roughly 30%% two-gap mobs, got %d/1000", twos)
	}
}

func TestGenerateIndicesDistinctAscending(t *testing.T) {
	g := New(3)
	for i := 0; i < 500; i++ {
		mob, err := g.Generate("ELEVATION")
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		for j := 1; j < len(mob.MissingLetters); j++ {
			if mob.MissingLetters[j-1].Index >= mob.MissingLetters[j].Index {
				t.Fatalf("indices not ascending: %+v", mob.MissingLetters)
			}
		}
		if strings.Count(mob.DisplayWord, string(Placeholder)) != len(mob.MissingLetters) {
			t.Fatalf("placeholder count mismatch: %q", mob.DisplayWord)
		}
		if mob.Speed < 1.0 || mob.Speed >= 1.2 {
			t.Fatalf("speed out of range: %f", mob.Speed)
		}
	}
}

func TestGenerateSkipsNonLetters(t *testing.T) {
	g := New(5)
	for i := 0; i < 200; i++ {
		mob, err := g.Generate("A-1-2-3")
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(mob.MissingLetters) != 1 || mob.MissingLetters[0].Index != 0 {
			t.Fatalf("expected only the letter to be redacted: %+v", mob.MissingLetters)
		}
	}
}

func TestGenerateRejectsWordsWithoutLetters(t *testing.T) {
	g := New(5)
	for _, word := range []string{"", "-", "1234"} {
		if _, err := g.Generate(word); !errors.Is(err, ErrNoLetters) {
			t.Fatalf("%q: expected ErrNoLetters, got %v", word, err)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 20; i++ {
		ma, _ := a.Generate("CONCRETE")
		mb, _ := b.Generate("CONCRETE")
		if ma.ID != mb.ID || ma.DisplayWord != mb.DisplayWord || ma.Speed != mb.Speed {
			t.Fatalf("seeded generators diverged: %+v vs %+v", ma, mb)
		}
	}
}

func TestFillDoesNotAliasSnapshots(t *testing.T) {
	g := New(9)
	mob, _ := g.Generate("STRUCTURE")
	for len(mob.MissingLetters) < 2 {
		mob, _ = g.Generate("STRUCTURE")
	}
	snapshot := mob
	Fill(&mob, 0)
	if len(snapshot.MissingLetters) != 2 {
		t.Fatalf("snapshot mutated: %+v", snapshot.MissingLetters)
	}
	if snapshot.MissingLetters[0] == mob.MissingLetters[0] {
		t.Fatalf("expected first letter removed from live mob only")
	}
}
