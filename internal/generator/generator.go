// Package generator builds mobs from words and owns run randomness.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/wordsiege/internal/model"
)

// Placeholder replaces unsolved letters in a display word.
const Placeholder = '_'

// ErrNoLetters is returned for words without an eligible letter position.
var ErrNoLetters = errors.New("word has no letters to redact")

// Generator produces randomized mobs. All run randomness flows through it so
// a fixed seed replays a run.
type Generator struct {
	rnd  *rand.Rand
	seen uint64
}

// New returns a Generator seeded with the given seed.
func New(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// NewRandom returns a Generator seeded with the current time.
func NewRandom() *Generator {
	return New(time.Now().UnixNano())
}

// Intn returns a uniform int in [0,n).
func (g *Generator) Intn(n int) int {
	return g.rnd.Intn(n)
}

// Float64 returns a uniform float in [0,1).
func (g *Generator) Float64() float64 {
	return g.rnd.Float64()
}

// Pick selects a word uniformly from the pool.
func (g *Generator) Pick(words []string) string {
	return words[g.rnd.Intn(len(words))]
}

// Shuffled returns a shuffled copy of words.
func (g *Generator) Shuffled(words []string) []string {
	out := make([]string, len(words))
	copy(out, words)
	g.rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Generate redacts one letter, or two with probability 0.3 for words longer
// than four characters, and returns a fresh mob.
func (g *Generator) Generate(word string) (model.Mob, error) {
	runes := []rune(word)
	eligible := make([]int, 0, len(runes))
	for i, r := range runes {
		if isLetter(r) {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return model.Mob{}, fmt.Errorf("%q: %w", word, ErrNoLetters)
	}

	missingCount := 1
	if g.rnd.Float64() > 0.7 && len(runes) > 4 {
		missingCount = 2
	}
	if missingCount > len(eligible) {
		missingCount = len(eligible)
	}

	// Partial Fisher-Yates: distinct, uniform and bounded.
	for i := 0; i < missingCount; i++ {
		j := i + g.rnd.Intn(len(eligible)-i)
		eligible[i], eligible[j] = eligible[j], eligible[i]
	}
	indices := eligible[:missingCount]
	sort.Ints(indices)

	display := make([]rune, len(runes))
	copy(display, runes)
	missing := make([]model.MissingLetter, 0, missingCount)
	for _, idx := range indices {
		missing = append(missing, model.MissingLetter{Index: idx, Char: runes[idx]})
		display[idx] = Placeholder
	}

	return model.Mob{
		ID:             g.newID(),
		Word:           word,
		DisplayWord:    string(display),
		MissingLetters: missing,
		Progress:       0,
		Speed:          1.0 + g.rnd.Float64()*0.2,
	}, nil
}

func (g *Generator) newID() string {
	g.seen++
	id, err := uuid.NewRandomFromReader(g.rnd)
	if err != nil {
		return fmt.Sprintf("mob-%d", g.seen)
	}
	return id.String()
}

// Fill resolves a missing letter at position i of mob.MissingLetters and
// writes it back into the display word.
func Fill(mob *model.Mob, i int) model.MissingLetter {
	letter := mob.MissingLetters[i]
	display := []rune(mob.DisplayWord)
	display[letter.Index] = letter.Char
	mob.DisplayWord = string(display)
	mob.MissingLetters = append(mob.MissingLetters[:i:i], mob.MissingLetters[i+1:]...)
	return letter
}

// Reconstruct overlays the missing letters onto the display word.
func Reconstruct(mob model.Mob) string {
	display := []rune(mob.DisplayWord)
	for _, m := range mob.MissingLetters {
		display[m.Index] = m.Char
	}
	return string(display)
}

func isLetter(r rune) bool {
	return r >= 'A' && r <= 'Z'
}
