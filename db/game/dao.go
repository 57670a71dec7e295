// Package game stores games, their seated players, and their moves.
package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zlitery/wordgrid/db"
	"github.com/zlitery/wordgrid/db/sql"
	"github.com/zlitery/wordgrid/game"
	"github.com/zlitery/wordgrid/game/board"
	"github.com/zlitery/wordgrid/game/tile"
)

type (
	// Dao contains the operations to persist games.
	Dao struct {
		db db.Database
	}

	// HistoryEntry is a finished game as it appears in one player's history.
	HistoryEntry struct {
		// GameID is the finished game.
		GameID game.ID `json:"game_id"`
		// Language is the BCP 47 tag of the game's alphabet.
		Language string `json:"language"`
		// Score is the player's final score.
		Score int `json:"score"`
		// Placing ranks the player among the game's seats, 1 for the winner.
		// Tied scores share a placing.
		Placing int `json:"placing"`
		// Players is how many players the game seated.
		Players int `json:"players"`
		// FinishedAt is when the game finished, in seconds since the unix epoch.
		FinishedAt int64 `json:"finished_at"`
	}
)

// NewDao creates a Dao on the database.
func NewDao(database db.Database) (*Dao, error) {
	if database == nil {
		return nil, fmt.Errorf("creating game dao: database required")
	}
	d := Dao{
		db: database,
	}
	return &d, nil
}

// errNotFound is returned when a game id matches no stored game.
var errNotFound = game.Error{Kind: game.NotFound, Message: "Game not found"}

// Create stores the game and its creator's seat, returning the assigned id.
// The two inserts run as one statement so a failure leaves no partial game.
func (d *Dao) Create(ctx context.Context, s game.State) (game.ID, error) {
	if len(s.Players) != 1 {
		return 0, fmt.Errorf("creating game: new games must have one seated player, got %v", len(s.Players))
	}
	boardJSON, bagJSON, err := marshalBoardAndBag(s)
	if err != nil {
		return 0, fmt.Errorf("creating game: %w", err)
	}
	p := s.Players[0]
	rackJSON, err := json.Marshal(p.Rack)
	if err != nil {
		return 0, fmt.Errorf("creating game: marshalling rack: %w", err)
	}
	cmd := `WITH g AS (
	INSERT INTO games (status, language, current_turn, board_state, bag_tiles, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id
)
INSERT INTO game_players (game_id, user_id, seat_index, score, rack, active)
SELECT g.id, $7, $8, $9, $10, $11 FROM g
RETURNING game_id`
	q := sql.NewCommand(cmd,
		s.Status.String(), s.Language, s.CurrentTurn, string(boardJSON), string(bagJSON), s.CreatedAt,
		p.UserID, p.SeatIndex, p.Score, string(rackJSON), p.Active)
	var id int64
	if err := d.db.Query(ctx, q).Scan(&id); err != nil {
		return 0, fmt.Errorf("creating game: %w", err)
	}
	return game.ID(id), nil
}

// Read returns the stored state of the game.
func (d *Dao) Read(ctx context.Context, id game.ID) (*game.State, error) {
	cmd := `SELECT status, language, current_turn, board_state, bag_tiles, created_at, COALESCE(finished_at, 0)
FROM games
WHERE id = $1`
	q := sql.NewCommand(cmd, int64(id))
	var statusText string
	var boardJSON, bagJSON []byte
	s := game.State{
		ID: id,
	}
	if err := d.db.Query(ctx, q).Scan(&statusText, &s.Language, &s.CurrentTurn, &boardJSON, &bagJSON, &s.CreatedAt, &s.FinishedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errNotFound
		}
		return nil, fmt.Errorf("reading game %v: %w", id, err)
	}
	status, err := game.ParseStatus(statusText)
	if err != nil {
		return nil, fmt.Errorf("reading game %v: %w", id, err)
	}
	s.Status = status
	brd := board.New()
	if err := json.Unmarshal(boardJSON, brd); err != nil {
		return nil, fmt.Errorf("reading game %v: unmarshalling board: %w", id, err)
	}
	s.Board = brd
	if err := json.Unmarshal(bagJSON, &s.BagTiles); err != nil {
		return nil, fmt.Errorf("reading game %v: unmarshalling bag: %w", id, err)
	}
	players, err := d.players(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reading game %v: %w", id, err)
	}
	s.Players = players
	return &s, nil
}

// players returns the seats of the game in turn order.
func (d *Dao) players(ctx context.Context, id game.ID) ([]game.Player, error) {
	cmd := `SELECT gp.user_id, u.username, gp.seat_index, gp.score, gp.rack, gp.active
FROM game_players gp
JOIN users u ON u.id = gp.user_id
WHERE gp.game_id = $1
ORDER BY gp.seat_index`
	q := sql.NewCommand(cmd, int64(id))
	rows, err := d.db.QueryRows(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer rows.Close()
	var players []game.Player
	for rows.Next() {
		var p game.Player
		var rackJSON []byte
		if err := rows.Scan(&p.UserID, &p.Username, &p.SeatIndex, &p.Score, &rackJSON, &p.Active); err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		if err := json.Unmarshal(rackJSON, &p.Rack); err != nil {
			return nil, fmt.Errorf("unmarshalling rack: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating players: %w", err)
	}
	return players, nil
}

// List returns summaries of the games players can join or watch, newest first.
// Finished games are excluded and boards and racks are omitted.
func (d *Dao) List(ctx context.Context) ([]game.Info, error) {
	cmd := `SELECT id, status, language, current_turn, jsonb_array_length(bag_tiles), created_at
FROM games
WHERE status IN ('waiting', 'active')
ORDER BY id DESC`
	rows, err := d.db.QueryRows(ctx, sql.NewCommand(cmd))
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()
	var infos []game.Info
	byID := make(map[game.ID]int)
	for rows.Next() {
		var info game.Info
		var statusText string
		if err := rows.Scan(&info.ID, &statusText, &info.Language, &info.CurrentTurn, &info.BagCount, &info.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		status, err := game.ParseStatus(statusText)
		if err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		info.Status = status
		byID[info.ID] = len(infos)
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating games: %w", err)
	}
	if len(infos) == 0 {
		return nil, nil
	}
	playersCmd := `SELECT gp.game_id, gp.user_id, u.username, gp.seat_index, gp.score, gp.active
FROM game_players gp
JOIN users u ON u.id = gp.user_id
JOIN games g ON g.id = gp.game_id
WHERE g.status IN ('waiting', 'active')
ORDER BY gp.game_id, gp.seat_index`
	playerRows, err := d.db.QueryRows(ctx, sql.NewCommand(playersCmd))
	if err != nil {
		return nil, fmt.Errorf("querying game players: %w", err)
	}
	defer playerRows.Close()
	for playerRows.Next() {
		var id game.ID
		var p game.PlayerInfo
		if err := playerRows.Scan(&id, &p.UserID, &p.Username, &p.SeatIndex, &p.Score, &p.Active); err != nil {
			return nil, fmt.Errorf("scanning game player: %w", err)
		}
		if i, ok := byID[id]; ok {
			infos[i].Players = append(infos[i].Players, p)
		}
	}
	if err := playerRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating game players: %w", err)
	}
	return infos, nil
}

// Save persists the state of the game and the move that produced it, if any.
// The game row, every seat, and the move commit in one transaction.
func (d *Dao) Save(ctx context.Context, s game.State, m *game.Move) error {
	boardJSON, bagJSON, err := marshalBoardAndBag(s)
	if err != nil {
		return fmt.Errorf("saving game %v: %w", s.ID, err)
	}
	queries := make([]db.Query, 0, len(s.Players)+2)
	gameCmd := `UPDATE games
SET status = $2, current_turn = $3, board_state = $4, bag_tiles = $5, finished_at = NULLIF($6, 0)
WHERE id = $1`
	queries = append(queries, sql.NewCommand(gameCmd,
		int64(s.ID), s.Status.String(), s.CurrentTurn, string(boardJSON), string(bagJSON), s.FinishedAt))
	playerCmd := `INSERT INTO game_players (game_id, user_id, seat_index, score, rack, active)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (game_id, user_id)
DO UPDATE SET score = EXCLUDED.score, rack = EXCLUDED.rack, active = EXCLUDED.active`
	for _, p := range s.Players {
		rackJSON, err := json.Marshal(p.Rack)
		if err != nil {
			return fmt.Errorf("saving game %v: marshalling rack: %w", s.ID, err)
		}
		queries = append(queries, sql.NewCommand(playerCmd,
			int64(s.ID), p.UserID, p.SeatIndex, p.Score, string(rackJSON), p.Active))
	}
	if m != nil {
		tilesJSON, err := json.Marshal(m.Tiles)
		if err != nil {
			return fmt.Errorf("saving game %v: marshalling move tiles: %w", s.ID, err)
		}
		moveCmd := `INSERT INTO game_moves (game_id, user_id, move_number, word, tiles_played, score, is_pass, is_exchange, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
		queries = append(queries, sql.NewCommand(moveCmd,
			int64(m.GameID), m.UserID, m.MoveNumber, m.Word, string(tilesJSON), m.Score, m.IsPass, m.IsExchange, m.CreatedAt))
	}
	if err := d.db.Exec(ctx, queries...); err != nil {
		return fmt.Errorf("saving game %v: %w", s.ID, err)
	}
	return nil
}

// Moves returns the moves of the game ordered by move number.
func (d *Dao) Moves(ctx context.Context, id game.ID) ([]game.Move, error) {
	cmd := `SELECT user_id, move_number, word, tiles_played, score, is_pass, is_exchange, created_at
FROM game_moves
WHERE game_id = $1
ORDER BY move_number`
	rows, err := d.db.QueryRows(ctx, sql.NewCommand(cmd, int64(id)))
	if err != nil {
		return nil, fmt.Errorf("querying moves: %w", err)
	}
	defer rows.Close()
	var moves []game.Move
	for rows.Next() {
		m := game.Move{
			GameID: id,
		}
		var tilesJSON []byte
		if err := rows.Scan(&m.UserID, &m.MoveNumber, &m.Word, &tilesJSON, &m.Score, &m.IsPass, &m.IsExchange, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning move: %w", err)
		}
		if err := json.Unmarshal(tilesJSON, &m.Tiles); err != nil {
			return nil, fmt.Errorf("unmarshalling move tiles: %w", err)
		}
		moves = append(moves, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating moves: %w", err)
	}
	return moves, nil
}

// History returns the user's finished games, most recently finished first.
func (d *Dao) History(ctx context.Context, userID int64) ([]HistoryEntry, error) {
	cmd := `SELECT g.id, g.language, gp.score, r.placing, r.players, COALESCE(g.finished_at, 0)
FROM game_players gp
JOIN games g ON g.id = gp.game_id
JOIN (
	SELECT game_id, user_id,
		RANK() OVER (PARTITION BY game_id ORDER BY score DESC) AS placing,
		COUNT(*) OVER (PARTITION BY game_id) AS players
	FROM game_players
) r ON r.game_id = gp.game_id AND r.user_id = gp.user_id
WHERE gp.user_id = $1 AND g.status = 'finished'
ORDER BY g.finished_at DESC`
	rows, err := d.db.QueryRows(ctx, sql.NewCommand(cmd, userID))
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()
	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.GameID, &e.Language, &e.Score, &e.Placing, &e.Players, &e.FinishedAt); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return entries, nil
}

// marshalBoardAndBag serializes the typed board and bag for their JSON columns.
func marshalBoardAndBag(s game.State) ([]byte, []byte, error) {
	boardJSON, err := json.Marshal(s.Board)
	if err != nil {
		return nil, nil, fmt.Errorf("marshalling board: %w", err)
	}
	bagTiles := s.BagTiles
	if bagTiles == nil {
		bagTiles = []tile.Letter{}
	}
	bagJSON, err := json.Marshal(bagTiles)
	if err != nil {
		return nil, nil, fmt.Errorf("marshalling bag: %w", err)
	}
	return boardJSON, bagJSON, nil
}
