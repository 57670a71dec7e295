// Package ranking aggregates finished games into per-user ratings.
package ranking

import (
	"context"
	"errors"
	"fmt"

	"github.com/zlitery/wordgrid/db"
	"github.com/zlitery/wordgrid/db/sql"
)

type (
	// Row is one user's standing.
	Row struct {
		// UserID identifies the user.
		UserID int64 `json:"user_id"`
		// Username is the user's display name.
		Username string `json:"username"`
		// TotalGames counts the user's finished games.
		TotalGames int `json:"total_games"`
		// Wins counts finished games the user had the top score in.
		Wins int `json:"wins"`
		// Losses counts finished games the user did not have the top score in.
		Losses int `json:"losses"`
		// TotalScore accumulates the user's final scores.
		TotalScore int `json:"total_score"`
		// HighestScore is the user's best final score in one game.
		HighestScore int `json:"highest_score"`
		// Rating is the user's Elo-style rating.
		Rating int `json:"rating"`
	}

	// Result is one player's outcome in a finished game.
	Result struct {
		// UserID identifies the player.
		UserID int64
		// Score is the player's final score.
		Score int
		// Won reports whether the player had the top score.
		Won bool
	}

	// Dao contains the operations to read and update rankings.
	Dao struct {
		db db.Database
	}
)

// NewDao creates a Dao on the database.
func NewDao(database db.Database) (*Dao, error) {
	if database == nil {
		return nil, fmt.Errorf("creating ranking dao: database required")
	}
	d := Dao{
		db: database,
	}
	return &d, nil
}

// Top returns the highest-rated users, at most n of them.
func (d *Dao) Top(ctx context.Context, n int) ([]Row, error) {
	cmd := `SELECT r.user_id, u.username, r.total_games, r.wins, r.losses, r.total_score, r.highest_score, r.rating
FROM rankings r
JOIN users u ON u.id = r.user_id
ORDER BY r.rating DESC, u.username
LIMIT $1`
	rows, err := d.db.QueryRows(ctx, sql.NewCommand(cmd, n))
	if err != nil {
		return nil, fmt.Errorf("querying rankings: %w", err)
	}
	defer rows.Close()
	var standings []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.UserID, &r.Username, &r.TotalGames, &r.Wins, &r.Losses, &r.TotalScore, &r.HighestScore, &r.Rating); err != nil {
			return nil, fmt.Errorf("scanning ranking: %w", err)
		}
		standings = append(standings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rankings: %w", err)
	}
	return standings, nil
}

// Read returns the user's standing.
// Users with no finished games get a fresh standing with the initial rating.
func (d *Dao) Read(ctx context.Context, userID int64) (*Row, error) {
	cmd := `SELECT r.user_id, u.username, r.total_games, r.wins, r.losses, r.total_score, r.highest_score, r.rating
FROM rankings r
JOIN users u ON u.id = r.user_id
WHERE r.user_id = $1`
	q := sql.NewCommand(cmd, userID)
	var r Row
	if err := d.db.Query(ctx, q).Scan(&r.UserID, &r.Username, &r.TotalGames, &r.Wins, &r.Losses, &r.TotalScore, &r.HighestScore, &r.Rating); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r = Row{
				UserID: userID,
				Rating: InitialRating,
			}
			return &r, nil
		}
		return nil, fmt.Errorf("reading ranking: %w", err)
	}
	return &r, nil
}

// ApplyGame folds a finished game into the standings of its players.
// New players enter at the initial rating before the game is applied.
func (d *Dao) ApplyGame(ctx context.Context, results []Result) error {
	if len(results) < 2 {
		return fmt.Errorf("applying game to rankings: at least 2 results required, got %v", len(results))
	}
	ratings, won := make(map[int64]int, len(results)), make(map[int64]bool, len(results))
	for _, r := range results {
		rating, err := d.rating(ctx, r.UserID)
		if err != nil {
			return fmt.Errorf("applying game to rankings: %w", err)
		}
		ratings[r.UserID] = rating
		won[r.UserID] = r.Won
	}
	updated := newRatings(ratings, won)
	cmd := `INSERT INTO rankings (user_id, total_games, wins, losses, total_score, highest_score, rating)
VALUES ($1, 1, $2, $3, $4, $4, $5)
ON CONFLICT (user_id)
DO UPDATE SET
	total_games = rankings.total_games + 1,
	wins = rankings.wins + EXCLUDED.wins,
	losses = rankings.losses + EXCLUDED.losses,
	total_score = rankings.total_score + EXCLUDED.total_score,
	highest_score = GREATEST(rankings.highest_score, EXCLUDED.highest_score),
	rating = EXCLUDED.rating`
	queries := make([]db.Query, len(results))
	for i, r := range results {
		wins, losses := 0, 1
		if r.Won {
			wins, losses = 1, 0
		}
		queries[i] = sql.NewCommand(cmd, r.UserID, wins, losses, r.Score, updated[r.UserID])
	}
	if err := d.db.Exec(ctx, queries...); err != nil {
		return fmt.Errorf("applying game to rankings: %w", err)
	}
	return nil
}

// rating returns the user's current rating, the initial rating for new users.
func (d *Dao) rating(ctx context.Context, userID int64) (int, error) {
	q := sql.NewCommand(`SELECT rating FROM rankings WHERE user_id = $1`, userID)
	var rating int
	if err := d.db.Query(ctx, q).Scan(&rating); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return InitialRating, nil
		}
		return 0, fmt.Errorf("reading rating: %w", err)
	}
	return rating, nil
}
