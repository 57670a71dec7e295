// Package alphabet defines the letter sets games are played with.
// An alphabet lists the letters of a language, how many tiles of each letter
// a fresh bag holds, and how many points each letter scores.
package alphabet

import (
	"fmt"

	"github.com/zlitery/wordgrid/game/tile"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type (
	// Letter describes one letter of an alphabet.
	Letter struct {
		// Letter is the tile letter.
		Letter tile.Letter
		// Count is how many tiles of the letter a fresh bag holds.
		Count int
		// Value is how many points the letter scores.
		Value int
	}

	// Config is used to create alphabets.
	Config struct {
		// Language is the BCP 47 tag of the language the letters spell words in.
		Language string
		// Letters lists each letter with its bag count and point value.
		Letters []Letter
	}

	// Alphabet is the set of letters a game is played with.
	Alphabet struct {
		language string
		tag      language.Tag
		counts   map[tile.Letter]int
		values   map[tile.Letter]int
		letters  []tile.Letter
	}
)

// New creates an alphabet from the config.
func (cfg Config) New() (*Alphabet, error) {
	tag, err := language.Parse(cfg.Language)
	if err != nil {
		return nil, fmt.Errorf("parsing alphabet language: %w", err)
	}
	if len(cfg.Letters) == 0 {
		return nil, fmt.Errorf("alphabet for %v has no letters", cfg.Language)
	}
	a := Alphabet{
		language: cfg.Language,
		tag:      tag,
		counts:   make(map[tile.Letter]int, len(cfg.Letters)),
		values:   make(map[tile.Letter]int, len(cfg.Letters)),
		letters:  make([]tile.Letter, 0, len(cfg.Letters)),
	}
	for _, l := range cfg.Letters {
		switch {
		case l.Count <= 0:
			return nil, fmt.Errorf("letter %v must have a positive count", l.Letter)
		case l.Value < 0:
			return nil, fmt.Errorf("letter %v must not have a negative value", l.Letter)
		case l.Letter == tile.Blank && l.Value != 0:
			return nil, fmt.Errorf("blank tiles must have no value")
		}
		if _, ok := a.counts[l.Letter]; ok {
			return nil, fmt.Errorf("duplicate letter: %v", l.Letter)
		}
		a.counts[l.Letter] = l.Count
		a.values[l.Letter] = l.Value
		a.letters = append(a.letters, l.Letter)
	}
	return &a, nil
}

// Language returns the BCP 47 tag of the language the alphabet spells words in.
func (a *Alphabet) Language() string {
	return a.language
}

// Letters returns the letters of the alphabet in their configured order.
func (a *Alphabet) Letters() []tile.Letter {
	letters := make([]tile.Letter, len(a.letters))
	copy(letters, a.letters)
	return letters
}

// Has reports whether the letter is part of the alphabet.
func (a *Alphabet) Has(l tile.Letter) bool {
	_, ok := a.counts[l]
	return ok
}

// Count returns how many tiles of the letter a fresh bag holds.
func (a *Alphabet) Count(l tile.Letter) int {
	return a.counts[l]
}

// Value returns how many points the letter scores.
// Blanks and letters not in the alphabet score nothing.
func (a *Alphabet) Value(l tile.Letter) int {
	return a.values[l]
}

// Tiles returns the tiles of a fresh bag, Count copies of each letter.
func (a *Alphabet) Tiles() []tile.Letter {
	var tiles []tile.Letter
	for _, l := range a.letters {
		for n := 0; n < a.counts[l]; n++ {
			tiles = append(tiles, l)
		}
	}
	return tiles
}

// Normalize upper-cases the word using the casing rules of the alphabet's language.
func (a *Alphabet) Normalize(word string) string {
	return cases.Upper(a.tag).String(word)
}
