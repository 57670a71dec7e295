package chat

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/zlitery/wordgrid/db/chat"
	"github.com/zlitery/wordgrid/server/log"
)

type (
	// Socket pumps one player's chat stream over a websocket connection.
	// It implements the Subscriber interface on its outbound queue.
	Socket struct {
		conn Conn
		out  chan chat.Message
		Config
	}

	// Config contains commonly shared Socket properties.
	Config struct {
		// Log is used to log errors and other information.
		Log log.Logger
		// PingPeriod is how often ping messages are sent.
		PingPeriod time.Duration
		// QueueSize is how many undelivered messages the socket holds before
		// further sends fail.
		QueueSize int
	}

	// Conn is the connection that backs the socket.
	Conn interface {
		// ReadMessage reads the next message from the connection.
		ReadMessage(m *Inbound) error
		// WriteMessage writes the message as json to the connection.
		WriteMessage(m chat.Message) error
		// WritePing writes a ping message on the connection.
		WritePing() error
		// WriteClose writes a close message on the connection.
		WriteClose(reason string) error
		// IsNormalClose determines if the error is an expected close.
		IsNormalClose(err error) bool
		// Close closes the connection.
		Close() error
	}

	// Inbound is a message a player sends on the stream.
	Inbound struct {
		Message string `json:"message"`
	}

	// Upgrader turns http requests into websocket connections.
	Upgrader interface {
		Upgrade(w http.ResponseWriter, r *http.Request) (Conn, error)
	}
)

// NewSocket creates a socket on the connection.
func (cfg Config) NewSocket(conn Conn) (*Socket, error) {
	if err := cfg.validate(conn); err != nil {
		return nil, fmt.Errorf("creating chat socket: validation: %w", err)
	}
	s := Socket{
		conn:   conn,
		out:    make(chan chat.Message, cfg.QueueSize),
		Config: cfg,
	}
	return &s, nil
}

// validate ensures the configuration has no errors.
func (cfg Config) validate(conn Conn) error {
	switch {
	case cfg.Log == nil:
		return fmt.Errorf("log required")
	case conn == nil:
		return fmt.Errorf("websocket connection required")
	case cfg.PingPeriod <= 0:
		return fmt.Errorf("positive ping period required")
	case cfg.QueueSize <= 0:
		return fmt.Errorf("positive queue size required")
	}
	return nil
}

// Send queues the message for writing.  A full queue fails the send so the
// hub skips subscribers that cannot keep up instead of blocking a game's chat.
func (s *Socket) Send(m chat.Message) error {
	select {
	case s.out <- m:
		return nil
	default:
		return fmt.Errorf("outbound queue full")
	}
}

// Run pumps messages until the connection fails or the context is cancelled.
// Each message read from the connection is passed to publish.
func (s *Socket) Run(ctx context.Context, publish func(ctx context.Context, text string)) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	var wg sync.WaitGroup
	wg.Add(2)
	go s.readMessages(ctx, cancelFunc, publish, &wg)
	go s.writeMessages(ctx, cancelFunc, &wg)
	wg.Wait()
	s.conn.Close()
}

// readMessages publishes messages from the connection until it closes.
func (s *Socket) readMessages(ctx context.Context, cancelFunc context.CancelFunc, publish func(ctx context.Context, text string), wg *sync.WaitGroup) {
	defer wg.Done()
	defer cancelFunc()
	for {
		var m Inbound
		if err := s.conn.ReadMessage(&m); err != nil { // BLOCKING
			if !s.conn.IsNormalClose(err) {
				s.Log.Printf("reading chat socket messages stopped: %v", err)
			}
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
		publish(ctx, m.Message)
	}
}

// writeMessages writes queued messages and periodic pings to the connection.
func (s *Socket) writeMessages(ctx context.Context, cancelFunc context.CancelFunc, wg *sync.WaitGroup) {
	defer wg.Done()
	defer cancelFunc()
	pingTicker := time.NewTicker(s.PingPeriod)
	defer pingTicker.Stop()
	var err error
	for {
		select {
		case <-ctx.Done():
			s.conn.WriteClose("server shutting down")
			return
		case m := <-s.out:
			err = s.conn.WriteMessage(m)
		case <-pingTicker.C:
			err = s.conn.WritePing()
		}
		if err != nil {
			s.Log.Printf("writing chat socket messages stopped: %v", err)
			return
		}
	}
}
