package game

import (
	"github.com/zlitery/wordgrid/game/board"
	"github.com/zlitery/wordgrid/game/tile"
)

type (
	// Info is the state of a game as one viewer may see it: everything public
	// plus only the viewer's own rack and the count of bag tiles.  It shares
	// no memory with the game, so it can safely leave the game's goroutine.
	Info struct {
		// ID is unique among all games.
		ID ID `json:"id"`
		// Status is the lifecycle state of the game.
		Status Status `json:"status"`
		// Language is the BCP 47 tag of the game's alphabet.
		Language string `json:"language"`
		// Players lists the seats in turn order.
		Players []PlayerInfo `json:"players"`
		// CurrentTurn is the number of moves committed so far.
		CurrentTurn int `json:"current_turn"`
		// Board is the shared grid.  It is omitted from game list summaries.
		Board *board.Board `json:"board_state,omitempty"`
		// BagCount is the number of tiles left in the bag.
		BagCount int `json:"remaining_tiles"`
		// Rack holds the viewer's own tiles.  Other racks are never exposed.
		Rack []tile.Letter `json:"rack,omitempty"`
		// CreatedAt is the game's creation time in seconds since the unix epoch.
		CreatedAt int64 `json:"created_at"`
		// FinishedAt is when the game finished, zero until then.
		FinishedAt int64 `json:"finished_at,omitempty"`
	}

	// PlayerInfo is the public state of a seat.
	PlayerInfo struct {
		UserID    int64  `json:"user_id"`
		Username  string `json:"username"`
		SeatIndex int    `json:"seat_index"`
		Score     int    `json:"score"`
		Active    bool   `json:"active"`
	}
)

// Info returns the state of the game as the viewer may see it.
func (g *Game) Info(viewerID int64) Info {
	players := make([]PlayerInfo, len(g.players))
	for i, p := range g.players {
		players[i] = PlayerInfo{
			UserID:    p.UserID,
			Username:  p.Username,
			SeatIndex: p.SeatIndex,
			Score:     p.Score,
			Active:    p.Active,
		}
	}
	info := Info{
		ID:          g.id,
		Status:      g.status,
		Language:    g.Alphabet.Language(),
		Players:     players,
		CurrentTurn: g.currentTurn,
		Board:       g.board.Clone(),
		BagCount:    g.bag.Size(),
		CreatedAt:   g.createdAt,
		FinishedAt:  g.finishedAt,
	}
	if p, ok := g.player(viewerID); ok {
		info.Rack = append([]tile.Letter(nil), p.Rack...)
	}
	return info
}
