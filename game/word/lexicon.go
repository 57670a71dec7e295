// Package word checks whether the words formed by moves are allowed.
package word

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"unicode"
)

type (
	// Lexicon determines if words are allowed in a game.
	Lexicon interface {
		// Contains reports whether the word is in the lexicon.
		// Words are upper-cased before they are checked.
		Contains(ctx context.Context, word string) (bool, error)
	}

	// Config is used to create word sets.
	Config struct {
		// Normalize upper-cases words using the casing rules of the game's language.
		Normalize func(word string) string
	}

	// Set is an in-memory lexicon loaded from a word list.
	Set struct {
		words     map[string]struct{}
		normalize func(word string) string
	}
)

// NewSet consumes the lower-case words in the reader to check words against.
// Words with upper-case letters or symbols are skipped, which keeps proper
// nouns and contractions in system word lists out of play.
func (cfg Config) NewSet(r io.Reader) (*Set, error) {
	switch {
	case cfg.Normalize == nil:
		return nil, fmt.Errorf("creating word set: normalize func required")
	case r == nil:
		return nil, fmt.Errorf("creating word set: reader required")
	}
	s := Set{
		words:     make(map[string]struct{}),
		normalize: cfg.Normalize,
	}
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		w := scanner.Text()
		if !isLowerWord(w) {
			continue
		}
		s.words[cfg.Normalize(w)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading words: %w", err)
	}
	return &s, nil
}

// isLowerWord reports whether the word is entirely lower-case letters.
func isLowerWord(w string) bool {
	for _, r := range w {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return len(w) > 0
}

// Contains implements the Lexicon interface.
func (s *Set) Contains(ctx context.Context, word string) (bool, error) {
	_, ok := s.words[s.normalize(word)]
	return ok, nil
}

// Size returns how many words the set holds.
func (s *Set) Size() int {
	return len(s.words)
}
