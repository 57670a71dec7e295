package word

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cached wraps a lexicon with a fixed-size cache of recent checks.
// It is useful in front of lexicons that hit a database on every check.
type Cached struct {
	lexicon Lexicon
	cache   *lru.Cache[string, bool]
}

// NewCached creates a lexicon that caches up to size checks of the wrapped lexicon.
func NewCached(lexicon Lexicon, size int) (*Cached, error) {
	if lexicon == nil {
		return nil, fmt.Errorf("creating cached lexicon: lexicon required")
	}
	cache, err := lru.New[string, bool](size)
	if err != nil {
		return nil, fmt.Errorf("creating cached lexicon: %w", err)
	}
	c := Cached{
		lexicon: lexicon,
		cache:   cache,
	}
	return &c, nil
}

// Contains implements the Lexicon interface.
// Checks that fail are not cached so transient lookup errors do not stick.
func (c *Cached) Contains(ctx context.Context, word string) (bool, error) {
	if ok, hit := c.cache.Get(word); hit {
		return ok, nil
	}
	ok, err := c.lexicon.Contains(ctx, word)
	if err != nil {
		return false, err
	}
	c.cache.Add(word, ok)
	return ok, nil
}
