// Package tile contains the letter pieces games are played with.
package tile

type (
	// Tile is a piece on the board.
	// A blank tile keeps Blank set after it is assigned a letter so it scores zero forever.
	Tile struct {
		Letter Letter `json:"letter"`
		Blank  bool   `json:"is_blank"`
	}

	// Placement is a request to lay a single tile on a board cell.
	// When Blank is set, the placement consumes a blank tile from the rack
	// and Letter is the letter the blank assumes.
	Placement struct {
		Letter Letter `json:"letter"`
		Row    int    `json:"row"`
		Col    int    `json:"col"`
		Blank  bool   `json:"is_blank"`
	}
)

// RackLetter is the letter the placement consumes from a rack.
// Blanks are held in racks as the Blank letter, not as the letter they assume.
func (p Placement) RackLetter() Letter {
	if p.Blank {
		return Blank
	}
	return p.Letter
}

// Tile is the tile the placement lays on the board.
func (p Placement) Tile() Tile {
	return Tile{
		Letter: p.Letter,
		Blank:  p.Blank,
	}
}
