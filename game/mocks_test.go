package game

import (
	"context"
	"strings"

	"github.com/zlitery/wordgrid/game/word"
)

// mockLexicon implements the word.Lexicon interface.
type mockLexicon struct {
	// ContainsFunc is called by Contains.
	ContainsFunc func(ctx context.Context, word string) (bool, error)
}

func (m mockLexicon) Contains(ctx context.Context, word string) (bool, error) {
	return m.ContainsFunc(ctx, word)
}

// wordSet creates a lexicon of only the words.
func wordSet(words ...string) word.Lexicon {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToUpper(w)] = struct{}{}
	}
	return mockLexicon{
		ContainsFunc: func(ctx context.Context, word string) (bool, error) {
			_, ok := set[word]
			return ok, nil
		},
	}
}
