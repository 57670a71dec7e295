package chat

import (
	"context"

	"github.com/zlitery/wordgrid/db/chat"
	"github.com/zlitery/wordgrid/game"
)

// mockMessageStore implements the MessageStore interface.
type mockMessageStore struct {
	CreateFunc func(ctx context.Context, m chat.Message) (*chat.Message, error)
	ListFunc   func(ctx context.Context, gameID game.ID) ([]chat.Message, error)
}

func (s mockMessageStore) Create(ctx context.Context, m chat.Message) (*chat.Message, error) {
	return s.CreateFunc(ctx, m)
}

func (s mockMessageStore) List(ctx context.Context, gameID game.ID) ([]chat.Message, error) {
	return s.ListFunc(ctx, gameID)
}

// mockSubscriber implements the Subscriber interface.
type mockSubscriber struct {
	SendFunc func(m chat.Message) error
}

func (s *mockSubscriber) Send(m chat.Message) error {
	return s.SendFunc(m)
}

// mockConn implements the Conn interface.
type mockConn struct {
	ReadMessageFunc   func(m *Inbound) error
	WriteMessageFunc  func(m chat.Message) error
	WritePingFunc     func() error
	WriteCloseFunc    func(reason string) error
	IsNormalCloseFunc func(err error) bool
	CloseFunc         func() error
}

func (c *mockConn) ReadMessage(m *Inbound) error {
	return c.ReadMessageFunc(m)
}

func (c *mockConn) WriteMessage(m chat.Message) error {
	return c.WriteMessageFunc(m)
}

func (c *mockConn) WritePing() error {
	return c.WritePingFunc()
}

func (c *mockConn) WriteClose(reason string) error {
	return c.WriteCloseFunc(reason)
}

func (c *mockConn) IsNormalClose(err error) bool {
	return c.IsNormalCloseFunc(err)
}

func (c *mockConn) Close() error {
	return c.CloseFunc()
}
