// Package chat stores the messages players send on game chat streams.
package chat

import (
	"context"
	"fmt"

	"github.com/zlitery/wordgrid/db"
	"github.com/zlitery/wordgrid/db/sql"
	"github.com/zlitery/wordgrid/game"
)

type (
	// Message is one chat message on a game.
	Message struct {
		// ID orders messages within a game.
		ID int64 `json:"id"`
		// GameID is the game the message was sent on.
		GameID game.ID `json:"game_id"`
		// UserID is the sender.
		UserID int64 `json:"user_id"`
		// Username is the sender's display name.
		Username string `json:"username"`
		// Message is the text of the message.
		Message string `json:"message"`
		// CreatedAt is when the message was sent, in seconds since the unix epoch.
		CreatedAt int64 `json:"created_at"`
	}

	// Dao contains the operations to persist chat messages.
	Dao struct {
		DaoConfig
	}

	// DaoConfig is used to create chat daos.
	DaoConfig struct {
		// DB stores the messages.
		DB db.Database
		// TimeFunc returns the current time in seconds since the unix epoch.
		TimeFunc func() int64
	}
)

// NewDao creates a Dao from the config.
func (cfg DaoConfig) NewDao() (*Dao, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("creating chat dao: validation: %w", err)
	}
	d := Dao{
		DaoConfig: cfg,
	}
	return &d, nil
}

// validate checks fields to set up the dao.
func (cfg DaoConfig) validate() error {
	switch {
	case cfg.DB == nil:
		return fmt.Errorf("database required")
	case cfg.TimeFunc == nil:
		return fmt.Errorf("time func required")
	}
	return nil
}

// Create stores the message, stamping its id and creation time.
func (d *Dao) Create(ctx context.Context, m Message) (*Message, error) {
	m.CreatedAt = d.TimeFunc()
	cmd := `INSERT INTO chat_messages (game_id, user_id, message, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`
	q := sql.NewCommand(cmd, int64(m.GameID), m.UserID, m.Message, m.CreatedAt)
	if err := d.DB.Query(ctx, q).Scan(&m.ID); err != nil {
		return nil, fmt.Errorf("creating chat message: %w", err)
	}
	return &m, nil
}

// List returns the messages of the game in the order they were sent.
func (d *Dao) List(ctx context.Context, gameID game.ID) ([]Message, error) {
	cmd := `SELECT cm.id, cm.user_id, u.username, cm.message, cm.created_at
FROM chat_messages cm
JOIN users u ON u.id = cm.user_id
WHERE cm.game_id = $1
ORDER BY cm.id`
	rows, err := d.DB.QueryRows(ctx, sql.NewCommand(cmd, int64(gameID)))
	if err != nil {
		return nil, fmt.Errorf("querying chat messages: %w", err)
	}
	defer rows.Close()
	var messages []Message
	for rows.Next() {
		m := Message{
			GameID: gameID,
		}
		if err := rows.Scan(&m.ID, &m.UserID, &m.Username, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chat messages: %w", err)
	}
	return messages, nil
}
