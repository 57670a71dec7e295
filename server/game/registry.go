// Package game routes commands to games, giving each loaded game its own
// goroutine so every command for a game runs in that game's exclusive section.
package game

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/zlitery/wordgrid/db/ranking"
	"github.com/zlitery/wordgrid/game"
	"github.com/zlitery/wordgrid/game/alphabet"
	"github.com/zlitery/wordgrid/game/tile"
	"github.com/zlitery/wordgrid/game/word"
)

type (
	// Registry loads games and serializes the commands sent to each of them.
	Registry struct {
		// mu guards games.
		mu sync.Mutex
		// games maps loaded game ids to the channel each game's goroutine
		// consumes.  Games not in the map are revived from the store on the
		// first command that references them.
		games    map[game.ID]chan request
		store    GameStore
		rankings RankingStore
		RegistryConfig
	}

	// RegistryConfig contains fields which describe a Registry.
	RegistryConfig struct {
		// Log is used to log errors and other information.
		Log *log.Logger
		// Lexicons maps language codes to the word sources that validate moves.
		Lexicons map[string]word.Lexicon
		// ShuffleFunc randomizes the order of bag tiles.
		ShuffleFunc func(tiles []tile.Letter)
		// TimeFunc returns the current time in seconds since the unix epoch.
		TimeFunc func() int64
	}

	// GameStore persists games, their seats, and their moves.
	GameStore interface {
		Create(ctx context.Context, s game.State) (game.ID, error)
		Read(ctx context.Context, id game.ID) (*game.State, error)
		List(ctx context.Context) ([]game.Info, error)
		Save(ctx context.Context, s game.State, m *game.Move) error
		Moves(ctx context.Context, id game.ID) ([]game.Move, error)
	}

	// RankingStore folds finished games into the standings of their players.
	RankingStore interface {
		ApplyGame(ctx context.Context, results []ranking.Result) error
	}

	// MoveInput is a requested move before validation.
	MoveInput struct {
		// Kind is place, pass, or exchange.
		Kind string `json:"kind"`
		// Tiles are the board placements of a place move.
		Tiles []tile.Placement `json:"tiles,omitempty"`
		// Letters are the rack letters of an exchange move.
		Letters []tile.Letter `json:"letters,omitempty"`
	}

	// request asks a game's goroutine to run fn in the game's exclusive section.
	request struct {
		ctx      context.Context
		viewerID int64
		fn       func(ctx context.Context, g *game.Game) (*game.Game, *game.Move, error)
		out      chan<- response
	}

	response struct {
		info game.Info
		move *game.Move
		err  error
	}
)

// NewRegistry creates a Registry on the stores.
func (cfg RegistryConfig) NewRegistry(store GameStore, rankings RankingStore) (*Registry, error) {
	if err := cfg.validate(store, rankings); err != nil {
		return nil, fmt.Errorf("creating game registry: validation: %w", err)
	}
	r := Registry{
		games:          make(map[game.ID]chan request),
		store:          store,
		rankings:       rankings,
		RegistryConfig: cfg,
	}
	return &r, nil
}

// validate ensures the configuration has no errors.
func (cfg RegistryConfig) validate(store GameStore, rankings RankingStore) error {
	switch {
	case cfg.Log == nil:
		return fmt.Errorf("log required")
	case len(cfg.Lexicons) == 0:
		return fmt.Errorf("at least one lexicon required")
	case cfg.ShuffleFunc == nil:
		return fmt.Errorf("shuffle func required")
	case cfg.TimeFunc == nil:
		return fmt.Errorf("time func required")
	case store == nil:
		return fmt.Errorf("game store required")
	case rankings == nil:
		return fmt.Errorf("ranking store required")
	}
	return nil
}

// Create makes a game in the language with the creator seated at the first
// seat, stores it, and loads it.
func (r *Registry) Create(ctx context.Context, creator game.User, language string) (*game.Info, error) {
	cfg, err := r.gameConfig(language)
	if err != nil {
		return nil, err
	}
	g, err := cfg.New(0, creator)
	if err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}
	s := g.State()
	id, err := r.store.Create(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}
	s.ID = id
	g, err = cfg.Restore(s)
	if err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}
	in := make(chan request)
	r.mu.Lock()
	r.games[id] = in
	r.mu.Unlock()
	r.runGame(g, in)
	info := g.Info(creator.ID)
	return &info, nil
}

// List returns summaries of the games that are waiting or active.
func (r *Registry) List(ctx context.Context) ([]game.Info, error) {
	return r.store.List(ctx)
}

// Get returns the game as the viewer may see it.
func (r *Registry) Get(ctx context.Context, id game.ID, viewerID int64) (*game.Info, error) {
	fn := func(ctx context.Context, g *game.Game) (*game.Game, *game.Move, error) {
		return nil, nil, nil
	}
	info, _, err := r.do(ctx, id, viewerID, fn)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Join seats the user at the game.
func (r *Registry) Join(ctx context.Context, id game.ID, u game.User) (*game.Info, error) {
	fn := r.update(func(ctx context.Context, g *game.Game) (*game.Move, error) {
		return nil, g.Join(u)
	})
	info, _, err := r.do(ctx, id, u.ID, fn)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Start begins the game.
func (r *Registry) Start(ctx context.Context, id game.ID, userID int64) (*game.Info, error) {
	fn := r.update(func(ctx context.Context, g *game.Game) (*game.Move, error) {
		return nil, g.Start(userID)
	})
	info, _, err := r.do(ctx, id, userID, fn)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// End force-finishes the game.
func (r *Registry) End(ctx context.Context, id game.ID, userID int64) (*game.Info, error) {
	fn := r.update(func(ctx context.Context, g *game.Game) (*game.Move, error) {
		return nil, g.End(userID)
	})
	info, _, err := r.do(ctx, id, userID, fn)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Move applies the user's move to the game, returning the committed move and
// the resulting state as the user may see it.
func (r *Registry) Move(ctx context.Context, id game.ID, userID int64, input MoveInput) (*game.Info, *game.Move, error) {
	fn := r.update(func(ctx context.Context, g *game.Game) (*game.Move, error) {
		switch input.Kind {
		case "place":
			return g.Place(ctx, userID, input.Tiles)
		case "pass":
			return g.Pass(userID)
		case "exchange":
			return g.Exchange(userID, input.Letters)
		}
		return nil, game.Error{Kind: game.InvalidInput, Message: "Unknown move kind: " + input.Kind}
	})
	info, m, err := r.do(ctx, id, userID, fn)
	if err != nil {
		return nil, nil, err
	}
	return &info, m, nil
}

// Moves returns the committed moves of the game ordered by move number.
func (r *Registry) Moves(ctx context.Context, id game.ID) ([]game.Move, error) {
	moves, err := r.store.Moves(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(moves) == 0 {
		// distinguish a game with no moves from a missing game
		if _, err := r.store.Read(ctx, id); err != nil {
			return nil, err
		}
	}
	return moves, nil
}

// update wraps a state-changing command with persistence: the new state and
// the move commit together, and a failed save rolls the game back and rejects
// the command.  Finished games are folded into the rankings.
func (r *Registry) update(mutate func(ctx context.Context, g *game.Game) (*game.Move, error)) func(ctx context.Context, g *game.Game) (*game.Game, *game.Move, error) {
	return func(ctx context.Context, g *game.Game) (*game.Game, *game.Move, error) {
		before := g.State()
		m, err := mutate(ctx, g)
		if err != nil {
			return nil, nil, err
		}
		if err := r.store.Save(ctx, g.State(), m); err != nil {
			return r.rollback(before), nil, fmt.Errorf("saving game %v: %w", g.ID(), err)
		}
		if g.Status() == game.Finished {
			r.applyRankings(ctx, g)
		}
		return nil, m, nil
	}
}

// rollback revives the pre-command state after a failed save.
func (r *Registry) rollback(s game.State) *game.Game {
	cfg, err := r.gameConfig(s.Language)
	if err == nil {
		g, err2 := cfg.Restore(s)
		if err2 == nil {
			return g
		}
		err = err2
	}
	r.Log.Printf("rolling back game %v after failed save: %v", s.ID, err)
	return nil
}

// applyRankings updates the standings of the game's players.  Ranking failures
// do not fail the command that finished the game; they are logged.
func (r *Registry) applyRankings(ctx context.Context, g *game.Game) {
	s := g.State()
	if len(s.Players) < 2 {
		return
	}
	top := s.Players[0].Score
	for _, p := range s.Players[1:] {
		if p.Score > top {
			top = p.Score
		}
	}
	results := make([]ranking.Result, len(s.Players))
	for i, p := range s.Players {
		results[i] = ranking.Result{
			UserID: p.UserID,
			Score:  p.Score,
			Won:    p.Score == top,
		}
	}
	if err := r.rankings.ApplyGame(ctx, results); err != nil {
		r.Log.Printf("applying finished game %v to rankings: %v", s.ID, err)
	}
}

// do sends the command to the game's goroutine and waits for the result.
func (r *Registry) do(ctx context.Context, id game.ID, viewerID int64, fn func(ctx context.Context, g *game.Game) (*game.Game, *game.Move, error)) (game.Info, *game.Move, error) {
	in, err := r.gameChannel(ctx, id)
	if err != nil {
		return game.Info{}, nil, err
	}
	out := make(chan response, 1)
	req := request{
		ctx:      ctx,
		viewerID: viewerID,
		fn:       fn,
		out:      out,
	}
	select {
	case <-ctx.Done():
		return game.Info{}, nil, ctx.Err()
	case in <- req:
	}
	select {
	case <-ctx.Done():
		return game.Info{}, nil, ctx.Err()
	case resp := <-out:
		return resp.info, resp.move, resp.err
	}
}

// gameChannel returns the channel of the game's goroutine, reviving the game
// from the store if it is not loaded.  Loaded games stay resident so their
// channels never go stale under a waiting sender.
func (r *Registry) gameChannel(ctx context.Context, id game.ID) (chan request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if in, ok := r.games[id]; ok {
		return in, nil
	}
	s, err := r.store.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	cfg, err := r.gameConfig(s.Language)
	if err != nil {
		return nil, fmt.Errorf("reviving game %v: %w", id, err)
	}
	g, err := cfg.Restore(*s)
	if err != nil {
		return nil, fmt.Errorf("reviving game %v: %w", id, err)
	}
	in := make(chan request)
	r.games[id] = in
	r.runGame(g, in)
	return in, nil
}

// runGame starts the goroutine that owns the game.
func (r *Registry) runGame(g *game.Game, in <-chan request) {
	go func() {
		for req := range in {
			g2, m, err := req.fn(req.ctx, g)
			if g2 != nil {
				g = g2
			}
			var info game.Info
			if err == nil {
				info = g.Info(req.viewerID)
			}
			req.out <- response{
				info: info,
				move: m,
				err:  err,
			}
		}
	}()
}

// gameConfig assembles the rules for games in the language.
func (r *Registry) gameConfig(language string) (game.Config, error) {
	lexicon, ok := r.Lexicons[language]
	if !ok {
		return game.Config{}, game.Error{Kind: game.InvalidInput, Message: "Unsupported language: " + language}
	}
	a, err := alphabet.ByLanguage(language)
	if err != nil {
		return game.Config{}, game.Error{Kind: game.InvalidInput, Message: "Unsupported language: " + language}
	}
	cfg := game.Config{
		Lexicon:     lexicon,
		Alphabet:    a,
		ShuffleFunc: r.ShuffleFunc,
		TimeFunc:    r.TimeFunc,
	}
	return cfg, nil
}
