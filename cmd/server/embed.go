package main

import (
	"embed"
	"fmt"
	"io"
)

//go:embed embed/sql
var embeddedSQLFS embed.FS

// setupSQLFiles returns the embedded schema files in the order they must run.
// Tables come before the functions that use them and before tables that
// reference them.
func setupSQLFiles() ([]io.Reader, error) {
	filenames := []string{
		"users",
		"user_create",
		"user_read",
		"games",
		"game_players",
		"game_moves",
		"chat_messages",
		"dictionary",
		"rankings",
	}
	files := make([]io.Reader, len(filenames))
	for i, n := range filenames {
		f, err := embeddedSQLFS.Open(fmt.Sprintf("embed/sql/%s.sql", n))
		if err != nil {
			return nil, fmt.Errorf("opening setup file %v: %w", n, err)
		}
		files[i] = f
	}
	return files, nil
}
