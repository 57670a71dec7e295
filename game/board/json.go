package board

import (
	"encoding/json"
	"fmt"

	"github.com/zlitery/wordgrid/game/tile"
)

// MarshalJSON implements the encoding/json.Marshaler interface.
// The board is marshalled as an array of rows, each an array of cells.
// Empty cells marshal as null.
func (b Board) MarshalJSON() ([]byte, error) {
	rows := make([][]*tile.Tile, Size)
	for r := 0; r < Size; r++ {
		rows[r] = b.cells[r][:]
	}
	return json.Marshal(rows)
}

// UnmarshalJSON implements the encoding/json.Unmarshaler interface.
func (b *Board) UnmarshalJSON(d []byte) error {
	var rows [][]*tile.Tile
	if err := json.Unmarshal(d, &rows); err != nil {
		return err
	}
	if len(rows) != Size {
		return fmt.Errorf("board must have %v rows, got %v", Size, len(rows))
	}
	var b2 Board
	for r, row := range rows {
		if len(row) != Size {
			return fmt.Errorf("board row %v must have %v cells, got %v", r, Size, len(row))
		}
		for c, t := range row {
			if t != nil {
				t2 := *t
				b2.cells[r][c] = &t2
			}
		}
	}
	*b = b2
	return nil
}
