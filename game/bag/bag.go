// Package bag manages the pool of tiles players draw from.
package bag

import (
	"fmt"

	"github.com/zlitery/wordgrid/game/tile"
)

type (
	// Config is used to create bags.
	Config struct {
		// ShuffleFunc randomizes the order of the tiles.  It is called when a
		// bag is filled and whenever tiles are returned so later draws stay fair.
		ShuffleFunc func(tiles []tile.Letter)
	}

	// Bag is a pool of tiles.  Tiles are drawn from the front, so the tile
	// order of a restored bag is its draw order.
	Bag struct {
		tiles   []tile.Letter
		shuffle func(tiles []tile.Letter)
	}
)

// New fills a bag with the tiles and shuffles it.
func (cfg Config) New(tiles []tile.Letter) (*Bag, error) {
	b, err := cfg.Restore(tiles)
	if err != nil {
		return nil, err
	}
	b.shuffle(b.tiles)
	return b, nil
}

// Restore fills a bag with the tiles in their given order.
// It is used to revive a bag whose order was previously persisted.
func (cfg Config) Restore(tiles []tile.Letter) (*Bag, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("creating bag: validation: %w", err)
	}
	b := Bag{
		tiles:   make([]tile.Letter, len(tiles)),
		shuffle: cfg.ShuffleFunc,
	}
	copy(b.tiles, tiles)
	return &b, nil
}

func (cfg Config) validate() error {
	if cfg.ShuffleFunc == nil {
		return fmt.Errorf("shuffle func required")
	}
	return nil
}

// Draw removes and returns up to n tiles.  When the bag holds fewer than n
// tiles, all remaining tiles are returned.  Drawing from an empty bag
// returns no tiles.
func (b *Bag) Draw(n int) []tile.Letter {
	if n > len(b.tiles) {
		n = len(b.tiles)
	}
	if n <= 0 {
		return nil
	}
	drawn := make([]tile.Letter, n)
	copy(drawn, b.tiles[:n])
	b.tiles = b.tiles[n:]
	return drawn
}

// Return puts the tiles back into the bag and shuffles it so they can be
// drawn again at any position.
func (b *Bag) Return(tiles []tile.Letter) {
	b.tiles = append(b.tiles, tiles...)
	b.shuffle(b.tiles)
}

// Size returns how many tiles the bag holds.
func (b *Bag) Size() int {
	return len(b.tiles)
}

// Tiles returns a copy of the tiles in draw order for persistence.
func (b *Bag) Tiles() []tile.Letter {
	tiles := make([]tile.Letter, len(b.tiles))
	copy(tiles, b.tiles)
	return tiles
}
