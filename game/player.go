package game

import "github.com/zlitery/wordgrid/game/tile"

// Player is a seat at a game.
type Player struct {
	// UserID identifies the user holding the seat.
	UserID int64 `json:"user_id"`
	// Username is the user's display name.
	Username string `json:"username"`
	// SeatIndex is the player's position in the turn order, 0 through 3.
	SeatIndex int `json:"seat_index"`
	// Score is the player's accumulated score.
	Score int `json:"score"`
	// Rack holds the player's undrawn letters, blanks as the blank letter.
	Rack []tile.Letter `json:"rack"`
	// Active reports whether the player still holds the seat.
	Active bool `json:"active"`
}
