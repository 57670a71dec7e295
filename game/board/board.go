// Package board stores the tiles laid on the shared grid and the premium
// squares that multiply move scores.
package board

import (
	"fmt"

	"github.com/zlitery/wordgrid/game/tile"
)

// Size is the number of rows and columns of the square board.
const Size = 15

type (
	// Board is the shared grid tiles are laid on.  Cells are empty until a
	// tile is placed on them; placed tiles are never removed.
	Board struct {
		cells [Size][Size]*tile.Tile
	}

	// Premium is the score multiplier printed on a board cell.
	// A premium only counts for the move that first covers its cell.
	Premium int
)

const (
	// NoPremium is a plain cell.
	NoPremium Premium = iota
	// DoubleLetter doubles the value of the letter placed on it.
	DoubleLetter
	// TripleLetter triples the value of the letter placed on it.
	TripleLetter
	// DoubleWord doubles the score of each word through it.
	DoubleWord
	// TripleWord triples the score of each word through it.
	TripleWord
)

// New creates an empty board.
func New() *Board {
	return new(Board)
}

// InBounds reports whether the position is on the board.
func InBounds(r, c int) bool {
	return r >= 0 && r < Size && c >= 0 && c < Size
}

// At returns the tile at the position.  The bool reports whether the cell is occupied.
func (b *Board) At(r, c int) (tile.Tile, bool) {
	if !InBounds(r, c) {
		return tile.Tile{}, false
	}
	t := b.cells[r][c]
	if t == nil {
		return tile.Tile{}, false
	}
	return *t, true
}

// Occupied reports whether the cell holds a tile.
func (b *Board) Occupied(r, c int) bool {
	_, ok := b.At(r, c)
	return ok
}

// Place lays the tile on the cell.
func (b *Board) Place(t tile.Tile, r, c int) error {
	switch {
	case !InBounds(r, c):
		return fmt.Errorf("position (%v, %v) not on board", r, c)
	case b.cells[r][c] != nil:
		return fmt.Errorf("position (%v, %v) already occupied", r, c)
	}
	b.cells[r][c] = &t
	return nil
}

// TileCount returns how many tiles have been laid on the board.
func (b *Board) TileCount() int {
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.cells[r][c] != nil {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	b2 := New()
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if t := b.cells[r][c]; t != nil {
				t2 := *t
				b2.cells[r][c] = &t2
			}
		}
	}
	return b2
}

// PremiumAt returns the premium printed on the cell.
func PremiumAt(r, c int) Premium {
	if !InBounds(r, c) {
		return NoPremium
	}
	return premiums[r][c]
}

// LetterMultiplier returns the factor the premium applies to the letter placed on it.
func (p Premium) LetterMultiplier() int {
	switch p {
	case DoubleLetter:
		return 2
	case TripleLetter:
		return 3
	}
	return 1
}

// WordMultiplier returns the factor the premium applies to words through it.
func (p Premium) WordMultiplier() int {
	switch p {
	case DoubleWord:
		return 2
	case TripleWord:
		return 3
	}
	return 1
}

// String returns the display value for the premium.
func (p Premium) String() string {
	switch p {
	case DoubleLetter:
		return "DL"
	case TripleLetter:
		return "TL"
	case DoubleWord:
		return "DW"
	case TripleWord:
		return "TW"
	}
	return ""
}

// premiums is the fixed premium overlay.
// The center cell is a plain cell, there is no opening-move bonus.
var premiums = newPremiumGrid()

func newPremiumGrid() [Size][Size]Premium {
	var grid [Size][Size]Premium
	set := func(p Premium, cells ...[2]int) {
		for _, rc := range cells {
			grid[rc[0]][rc[1]] = p
		}
	}
	set(TripleWord,
		[2]int{0, 0}, [2]int{0, 7}, [2]int{0, 14},
		[2]int{7, 0}, [2]int{7, 14},
		[2]int{14, 0}, [2]int{14, 7}, [2]int{14, 14},
	)
	set(DoubleWord,
		[2]int{1, 1}, [2]int{2, 2}, [2]int{3, 3}, [2]int{4, 4},
		[2]int{10, 10}, [2]int{11, 11}, [2]int{12, 12}, [2]int{13, 13},
		[2]int{1, 13}, [2]int{2, 12}, [2]int{3, 11}, [2]int{4, 10},
		[2]int{10, 4}, [2]int{11, 3}, [2]int{12, 2}, [2]int{13, 1},
	)
	set(TripleLetter,
		[2]int{1, 5}, [2]int{1, 9},
		[2]int{5, 1}, [2]int{5, 5}, [2]int{5, 9}, [2]int{5, 13},
		[2]int{9, 1}, [2]int{9, 5}, [2]int{9, 9}, [2]int{9, 13},
		[2]int{13, 5}, [2]int{13, 9},
	)
	set(DoubleLetter,
		[2]int{0, 3}, [2]int{0, 11},
		[2]int{2, 6}, [2]int{2, 8},
		[2]int{3, 0}, [2]int{3, 7}, [2]int{3, 14},
		[2]int{6, 2}, [2]int{6, 6}, [2]int{6, 8}, [2]int{6, 12},
		[2]int{7, 3}, [2]int{7, 11},
		[2]int{8, 2}, [2]int{8, 6}, [2]int{8, 8}, [2]int{8, 12},
		[2]int{11, 0}, [2]int{11, 7}, [2]int{11, 14},
		[2]int{12, 6}, [2]int{12, 8},
		[2]int{14, 3}, [2]int{14, 11},
	)
	return grid
}
