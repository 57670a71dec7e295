// Package dictionary is a database-backed lexicon of the words games accept.
package dictionary

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/zlitery/wordgrid/db"
	"github.com/zlitery/wordgrid/db/sql"
)

type (
	// Lexicon checks words against the dictionary table for one language.
	// It implements the game's word.Lexicon interface.
	Lexicon struct {
		Config
	}

	// Config is used to create dictionary lexicons.
	Config struct {
		// DB stores the words.
		DB db.Database
		// Language is the BCP 47 tag the lexicon checks words for.
		Language string
	}
)

// NewLexicon creates a Lexicon from the config.
func (cfg Config) NewLexicon() (*Lexicon, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("creating dictionary lexicon: validation: %w", err)
	}
	l := Lexicon{
		Config: cfg,
	}
	return &l, nil
}

// validate checks fields to set up the lexicon.
func (cfg Config) validate() error {
	switch {
	case cfg.DB == nil:
		return fmt.Errorf("database required")
	case len(cfg.Language) == 0:
		return fmt.Errorf("language required")
	}
	return nil
}

// Contains reports whether the upper-case word is in the dictionary for the language.
func (l *Lexicon) Contains(ctx context.Context, word string) (bool, error) {
	cmd := `SELECT EXISTS (SELECT 1 FROM dictionary WHERE word = $1 AND language = $2)`
	q := sql.NewCommand(cmd, word, l.Language)
	var ok bool
	if err := l.DB.Query(ctx, q).Scan(&ok); err != nil {
		return false, fmt.Errorf("checking dictionary word: %w", err)
	}
	return ok, nil
}

// seedBatchSize is the number of words inserted per transaction while seeding.
const seedBatchSize = 1000

// Seed loads the words in the reader into the dictionary for the language.
// Words are normalized before they are stored and duplicates are skipped, so
// seeding the same list twice changes nothing.  The word count is returned.
func (l *Lexicon) Seed(ctx context.Context, r io.Reader, normalize func(word string) string) (int, error) {
	if normalize == nil {
		return 0, fmt.Errorf("seeding dictionary: normalize func required")
	}
	cmd := `INSERT INTO dictionary (word, language)
VALUES ($1, $2)
ON CONFLICT (word, language) DO NOTHING`
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	n := 0
	queries := make([]db.Query, 0, seedBatchSize)
	flush := func() error {
		if len(queries) == 0 {
			return nil
		}
		if err := l.DB.Exec(ctx, queries...); err != nil {
			return fmt.Errorf("inserting dictionary words: %w", err)
		}
		queries = queries[:0]
		return nil
	}
	for scanner.Scan() {
		w := normalize(scanner.Text())
		if len(w) == 0 {
			continue
		}
		queries = append(queries, sql.NewCommand(cmd, w, l.Language))
		n++
		if len(queries) == seedBatchSize {
			if err := flush(); err != nil {
				return 0, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("reading words: %w", err)
	}
	if err := flush(); err != nil {
		return 0, err
	}
	return n, nil
}
