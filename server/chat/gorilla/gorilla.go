// Package gorilla implements a chat websocket connection by wrapping gorilla/websocket.
package gorilla

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	dbchat "github.com/zlitery/wordgrid/db/chat"
	"github.com/zlitery/wordgrid/server/chat"
)

type (
	// Upgrader creates gorilla websocket connections from http requests.
	Upgrader struct {
		*websocket.Upgrader
		Config
	}

	// Config contains the read and write deadlines of upgraded connections.
	Config struct {
		// ReadWait is how long the connection waits between client messages
		// or pongs before timing out.
		ReadWait time.Duration
		// WriteWait is how long one write may take.
		WriteWait time.Duration
	}

	// Conn implements the chat.Conn interface by wrapping a gorilla/websocket connection.
	Conn struct {
		*websocket.Conn
		Config
	}
)

// NewUpgrader returns an upgrader that creates gorilla websocket connections.
func (cfg Config) NewUpgrader() *Upgrader {
	u := new(websocket.Upgrader)
	return &Upgrader{
		Upgrader: u,
		Config:   cfg,
	}
}

// Upgrade creates a Conn from the http request.
func (u *Upgrader) Upgrade(w http.ResponseWriter, r *http.Request) (chat.Conn, error) {
	c, err := u.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	conn := Conn{
		Conn:   c,
		Config: u.Config,
	}
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(u.ReadWait))
	})
	return &conn, nil
}

// ReadMessage reads the next json message from the connection.
func (c *Conn) ReadMessage(m *chat.Inbound) error {
	if err := c.Conn.SetReadDeadline(time.Now().Add(c.ReadWait)); err != nil {
		return err
	}
	return c.Conn.ReadJSON(m)
}

// WriteMessage writes the message as json to the connection.
func (c *Conn) WriteMessage(m dbchat.Message) error {
	if err := c.Conn.SetWriteDeadline(time.Now().Add(c.WriteWait)); err != nil {
		return err
	}
	return c.Conn.WriteJSON(m)
}

// WritePing writes a ping message on the connection.
func (c *Conn) WritePing() error {
	if err := c.Conn.SetWriteDeadline(time.Now().Add(c.WriteWait)); err != nil {
		return err
	}
	return c.Conn.WriteMessage(websocket.PingMessage, nil)
}

// WriteClose writes a close message on the connection.  The connection is NOT closed.
func (c *Conn) WriteClose(reason string) error {
	data := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
	return c.Conn.WriteMessage(websocket.CloseMessage, data)
}

// IsNormalClose determines if the error is an expected close.
func (*Conn) IsNormalClose(err error) bool {
	_, ok := err.(*websocket.CloseError) // only errors from gorilla can be normal close errors
	return ok && !websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNoStatusReceived)
}
