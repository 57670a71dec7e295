package tile

import (
	"errors"
	"unicode"
)

// Letter is the single upper-case rune on a tile.
// The Blank letter represents a tile with no letter of its own.
type Letter rune

// Blank is the letter of a blank tile in a bag or rack.
const Blank Letter = '_'

// NewLetter creates a letter from the rune.
func NewLetter(r rune) (Letter, error) {
	if r != rune(Blank) && (!unicode.IsLetter(r) || !unicode.IsUpper(r)) {
		return 0, errors.New("letter must be an upper-case letter or blank: " + string(r))
	}
	return Letter(r), nil
}

// String returns the letter as a string.
func (l Letter) String() string {
	return string(rune(l))
}
