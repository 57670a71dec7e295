package alphabet

import (
	"fmt"

	"github.com/zlitery/wordgrid/game/tile"
)

// Languages returns the BCP 47 tags of the languages with standard alphabets.
func Languages() []string {
	return []string{"en", "pl"}
}

// ByLanguage creates the standard 100-tile alphabet for the language.
func ByLanguage(lang string) (*Alphabet, error) {
	var letters []Letter
	switch lang {
	case "en":
		letters = EnglishLetters()
	case "pl":
		letters = PolishLetters()
	default:
		return nil, fmt.Errorf("no standard alphabet for language: %q", lang)
	}
	cfg := Config{
		Language: lang,
		Letters:  letters,
	}
	return cfg.New()
}

// EnglishLetters returns the letters of the standard 100-tile English game.
func EnglishLetters() []Letter {
	return []Letter{
		{Letter: 'A', Count: 9, Value: 1},
		{Letter: 'B', Count: 2, Value: 3},
		{Letter: 'C', Count: 2, Value: 3},
		{Letter: 'D', Count: 4, Value: 2},
		{Letter: 'E', Count: 12, Value: 1},
		{Letter: 'F', Count: 2, Value: 4},
		{Letter: 'G', Count: 3, Value: 2},
		{Letter: 'H', Count: 2, Value: 4},
		{Letter: 'I', Count: 9, Value: 1},
		{Letter: 'J', Count: 1, Value: 8},
		{Letter: 'K', Count: 1, Value: 5},
		{Letter: 'L', Count: 4, Value: 1},
		{Letter: 'M', Count: 2, Value: 3},
		{Letter: 'N', Count: 6, Value: 1},
		{Letter: 'O', Count: 8, Value: 1},
		{Letter: 'P', Count: 2, Value: 3},
		{Letter: 'Q', Count: 1, Value: 10},
		{Letter: 'R', Count: 6, Value: 1},
		{Letter: 'S', Count: 4, Value: 1},
		{Letter: 'T', Count: 6, Value: 1},
		{Letter: 'U', Count: 4, Value: 1},
		{Letter: 'V', Count: 2, Value: 4},
		{Letter: 'W', Count: 2, Value: 4},
		{Letter: 'X', Count: 1, Value: 8},
		{Letter: 'Y', Count: 2, Value: 4},
		{Letter: 'Z', Count: 1, Value: 10},
		{Letter: tile.Blank, Count: 2, Value: 0},
	}
}

// PolishLetters returns the letters of the standard 100-tile Polish game.
func PolishLetters() []Letter {
	return []Letter{
		{Letter: 'A', Count: 9, Value: 1},
		{Letter: 'Ą', Count: 1, Value: 5},
		{Letter: 'B', Count: 2, Value: 3},
		{Letter: 'C', Count: 3, Value: 2},
		{Letter: 'Ć', Count: 1, Value: 6},
		{Letter: 'D', Count: 3, Value: 2},
		{Letter: 'E', Count: 7, Value: 1},
		{Letter: 'Ę', Count: 1, Value: 5},
		{Letter: 'F', Count: 1, Value: 5},
		{Letter: 'G', Count: 2, Value: 3},
		{Letter: 'H', Count: 2, Value: 3},
		{Letter: 'I', Count: 8, Value: 1},
		{Letter: 'J', Count: 2, Value: 3},
		{Letter: 'K', Count: 3, Value: 2},
		{Letter: 'L', Count: 3, Value: 2},
		{Letter: 'Ł', Count: 2, Value: 3},
		{Letter: 'M', Count: 3, Value: 2},
		{Letter: 'N', Count: 5, Value: 1},
		{Letter: 'Ń', Count: 1, Value: 7},
		{Letter: 'O', Count: 6, Value: 1},
		{Letter: 'Ó', Count: 1, Value: 5},
		{Letter: 'P', Count: 3, Value: 2},
		{Letter: 'R', Count: 4, Value: 1},
		{Letter: 'S', Count: 4, Value: 1},
		{Letter: 'Ś', Count: 1, Value: 5},
		{Letter: 'T', Count: 3, Value: 2},
		{Letter: 'U', Count: 2, Value: 3},
		{Letter: 'W', Count: 4, Value: 1},
		{Letter: 'Y', Count: 4, Value: 2},
		{Letter: 'Z', Count: 5, Value: 1},
		{Letter: 'Ź', Count: 1, Value: 9},
		{Letter: 'Ż', Count: 1, Value: 5},
		{Letter: tile.Blank, Count: 2, Value: 0},
	}
}
