// Package game implements the rules of the word-placement game: seating,
// turn order, move validation, scoring, and the game lifecycle.
package game

import (
	"fmt"

	"github.com/zlitery/wordgrid/game/alphabet"
	"github.com/zlitery/wordgrid/game/bag"
	"github.com/zlitery/wordgrid/game/board"
	"github.com/zlitery/wordgrid/game/tile"
	"github.com/zlitery/wordgrid/game/word"
)

const (
	// RackSize is the number of tiles racks are refilled to while the bag lasts.
	RackSize = 7
	// MinPlayers is the fewest seated players a game can start with.
	MinPlayers = 2
	// MaxPlayers is the most players a game seats.
	MaxPlayers = 4
	// BingoBonus is the score bonus for playing a full rack in one move.
	BingoBonus = 50
)

type (
	// ID is the id of a game.
	ID int64

	// User identifies a person who can sit at games.
	User struct {
		ID       int64
		Username string
	}

	// Config is used to create games.
	Config struct {
		// Lexicon checks the words formed by moves.
		Lexicon word.Lexicon
		// Alphabet supplies the tile distribution and letter scores.
		Alphabet *alphabet.Alphabet
		// ShuffleFunc randomizes the order of bag tiles.
		ShuffleFunc func(tiles []tile.Letter)
		// TimeFunc returns the current time in seconds since the unix epoch.
		TimeFunc func() int64
	}

	// Game is the live state of one game.  Games are not safe for concurrent
	// use; callers must serialize access, one goroutine per game.
	Game struct {
		id          ID
		status      Status
		board       *board.Board
		bag         *bag.Bag
		players     []*Player
		currentTurn int
		createdAt   int64
		finishedAt  int64
		Config
	}

	// State is the persistent state of a game.  It shares no memory with the
	// game it was copied from, so it can safely leave the game's goroutine.
	State struct {
		ID          ID
		Status      Status
		Language    string
		CurrentTurn int
		Board       *board.Board
		BagTiles    []tile.Letter
		Players     []Player
		CreatedAt   int64
		FinishedAt  int64
	}
)

// New creates a game in the waiting state with a full shuffled bag and seats
// the creator at the first seat with a freshly drawn rack.
func (cfg Config) New(id ID, creator User) (*Game, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("creating game: validation: %w", err)
	}
	bagCfg := bag.Config{
		ShuffleFunc: cfg.ShuffleFunc,
	}
	b, err := bagCfg.New(cfg.Alphabet.Tiles())
	if err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}
	g := Game{
		id:        id,
		status:    Waiting,
		board:     board.New(),
		bag:       b,
		createdAt: cfg.TimeFunc(),
		Config:    cfg,
	}
	g.seat(creator)
	return &g, nil
}

// Restore revives a game from its persisted state.
func (cfg Config) Restore(s State) (*Game, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("restoring game: validation: %w", err)
	}
	if want, got := s.Language, cfg.Alphabet.Language(); want != got {
		return nil, fmt.Errorf("restoring game %v: language is %v, alphabet is %v", s.ID, want, got)
	}
	bagCfg := bag.Config{
		ShuffleFunc: cfg.ShuffleFunc,
	}
	b, err := bagCfg.Restore(s.BagTiles)
	if err != nil {
		return nil, fmt.Errorf("restoring game %v: %w", s.ID, err)
	}
	brd := s.Board
	if brd == nil {
		brd = board.New()
	}
	players := make([]*Player, len(s.Players))
	for i := range s.Players {
		p := s.Players[i]
		p.Rack = append([]tile.Letter(nil), p.Rack...)
		players[i] = &p
	}
	g := Game{
		id:          s.ID,
		status:      s.Status,
		board:       brd,
		bag:         b,
		players:     players,
		currentTurn: s.CurrentTurn,
		createdAt:   s.CreatedAt,
		finishedAt:  s.FinishedAt,
		Config:      cfg,
	}
	return &g, nil
}

func (cfg Config) validate() error {
	switch {
	case cfg.Lexicon == nil:
		return fmt.Errorf("lexicon required")
	case cfg.Alphabet == nil:
		return fmt.Errorf("alphabet required")
	case cfg.ShuffleFunc == nil:
		return fmt.Errorf("shuffle func required")
	case cfg.TimeFunc == nil:
		return fmt.Errorf("time func required")
	}
	return nil
}

// ID returns the id of the game.
func (g *Game) ID() ID {
	return g.id
}

// Status returns the lifecycle state of the game.
func (g *Game) Status() Status {
	return g.status
}

// Join seats the user with a freshly drawn rack.  Joining a game the user is
// already seated at does nothing, whatever the game's status.
func (g *Game) Join(u User) error {
	if _, ok := g.player(u.ID); ok {
		return nil
	}
	switch {
	case g.status != Waiting:
		return Error{Kind: Conflict, Message: "Game already started"}
	case len(g.players) >= MaxPlayers:
		return Error{Kind: Conflict, Message: "Game is full"}
	}
	g.seat(u)
	return nil
}

// seat adds the user at the next seat index with a full rack.
func (g *Game) seat(u User) {
	p := Player{
		UserID:    u.ID,
		Username:  u.Username,
		SeatIndex: len(g.players),
		Rack:      g.bag.Draw(RackSize),
		Active:    true,
	}
	g.players = append(g.players, &p)
}

// Start begins the game, making it accept moves with the first seat to act.
func (g *Game) Start(userID int64) error {
	if _, ok := g.player(userID); !ok {
		return Error{Kind: Forbidden, Message: "Player not in game"}
	}
	switch {
	case g.status != Waiting:
		return Error{Kind: Conflict, Message: "Game already started"}
	case len(g.players) < MinPlayers:
		return Error{Kind: Conflict, Message: "Need at least 2 players"}
	}
	g.status = Active
	g.currentTurn = 0
	return nil
}

// End force-finishes the game.  Any seated player may end a game that is
// waiting or active, whatever the board and bag hold.
func (g *Game) End(userID int64) error {
	if _, ok := g.player(userID); !ok {
		return Error{Kind: Forbidden, Message: "Player not in game"}
	}
	if g.status == Finished {
		return Error{Kind: Conflict, Message: "Game already finished"}
	}
	g.finish()
	return nil
}

func (g *Game) finish() {
	g.status = Finished
	g.finishedAt = g.TimeFunc()
}

// player returns the seat of the user.
func (g *Game) player(userID int64) (*Player, bool) {
	for _, p := range g.players {
		if p.UserID == userID {
			return p, true
		}
	}
	return nil, false
}

// turnPlayer checks the preconditions shared by every move and returns the
// seat whose turn it is.
func (g *Game) turnPlayer(userID int64) (*Player, error) {
	if g.status != Active {
		return nil, Error{Kind: Conflict, Message: "Game not active"}
	}
	p, ok := g.player(userID)
	if !ok {
		return nil, Error{Kind: Forbidden, Message: "Player not in game"}
	}
	if p.SeatIndex != g.currentTurn%len(g.players) {
		return nil, Error{Kind: Forbidden, Message: "Not your turn"}
	}
	return p, nil
}

// State returns a deep copy of the game's persistent state.
func (g *Game) State() State {
	players := make([]Player, len(g.players))
	for i, p := range g.players {
		players[i] = *p
		players[i].Rack = append([]tile.Letter(nil), p.Rack...)
	}
	return State{
		ID:          g.id,
		Status:      g.status,
		Language:    g.Alphabet.Language(),
		CurrentTurn: g.currentTurn,
		Board:       g.board.Clone(),
		BagTiles:    g.bag.Tiles(),
		Players:     players,
		CreatedAt:   g.createdAt,
		FinishedAt:  g.finishedAt,
	}
}
