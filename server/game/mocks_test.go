package game

import (
	"context"
	"strings"

	"github.com/zlitery/wordgrid/db/ranking"
	"github.com/zlitery/wordgrid/game"
	"github.com/zlitery/wordgrid/game/word"
)

// mockGameStore implements the GameStore interface.
type mockGameStore struct {
	CreateFunc func(ctx context.Context, s game.State) (game.ID, error)
	ReadFunc   func(ctx context.Context, id game.ID) (*game.State, error)
	ListFunc   func(ctx context.Context) ([]game.Info, error)
	SaveFunc   func(ctx context.Context, s game.State, m *game.Move) error
	MovesFunc  func(ctx context.Context, id game.ID) ([]game.Move, error)
}

func (s mockGameStore) Create(ctx context.Context, st game.State) (game.ID, error) {
	return s.CreateFunc(ctx, st)
}

func (s mockGameStore) Read(ctx context.Context, id game.ID) (*game.State, error) {
	return s.ReadFunc(ctx, id)
}

func (s mockGameStore) List(ctx context.Context) ([]game.Info, error) {
	return s.ListFunc(ctx)
}

func (s mockGameStore) Save(ctx context.Context, st game.State, m *game.Move) error {
	return s.SaveFunc(ctx, st, m)
}

func (s mockGameStore) Moves(ctx context.Context, id game.ID) ([]game.Move, error) {
	return s.MovesFunc(ctx, id)
}

// mockRankingStore implements the RankingStore interface.
type mockRankingStore struct {
	ApplyGameFunc func(ctx context.Context, results []ranking.Result) error
}

func (s mockRankingStore) ApplyGame(ctx context.Context, results []ranking.Result) error {
	return s.ApplyGameFunc(ctx, results)
}

// mockLexicon implements the word.Lexicon interface.
type mockLexicon struct {
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
