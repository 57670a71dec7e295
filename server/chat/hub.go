// Package chat fans the chat messages of each game out to the sockets watching it.
package chat

import (
	"context"
	"fmt"
	"sync"

	"github.com/zlitery/wordgrid/db/chat"
	"github.com/zlitery/wordgrid/game"
	"github.com/zlitery/wordgrid/server/log"
)

type (
	// Hub persists published messages and broadcasts them to the subscribers
	// of the message's game.
	Hub struct {
		// mu spans persist and fan-out so the subscribers of a game see its
		// messages in id order.
		mu          sync.Mutex
		subscribers map[game.ID]map[Subscriber]struct{}
		store       MessageStore
		HubConfig
	}

	// HubConfig contains fields which describe a Hub.
	HubConfig struct {
		// Log is used to log errors and other information.
		Log log.Logger
	}

	// MessageStore persists chat messages.
	MessageStore interface {
		Create(ctx context.Context, m chat.Message) (*chat.Message, error)
		List(ctx context.Context, gameID game.ID) ([]chat.Message, error)
	}

	// Subscriber receives the messages published to a game.
	Subscriber interface {
		Send(m chat.Message) error
	}
)

// NewHub creates a Hub on the store.
func (cfg HubConfig) NewHub(store MessageStore) (*Hub, error) {
	switch {
	case cfg.Log == nil:
		return nil, fmt.Errorf("creating chat hub: log required")
	case store == nil:
		return nil, fmt.Errorf("creating chat hub: message store required")
	}
	h := Hub{
		subscribers: make(map[game.ID]map[Subscriber]struct{}),
		store:       store,
		HubConfig:   cfg,
	}
	return &h, nil
}

// Attach subscribes s to the game's messages.
func (h *Hub) Attach(gameID game.ID, s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.subscribers[gameID]
	if !ok {
		subs = make(map[Subscriber]struct{})
		h.subscribers[gameID] = subs
	}
	subs[s] = struct{}{}
}

// Detach unsubscribes s from the game's messages.  The game's entry is
// removed with its last subscriber.
func (h *Hub) Detach(gameID game.ID, s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detach(gameID, s)
}

func (h *Hub) detach(gameID game.ID, s Subscriber) {
	subs, ok := h.subscribers[gameID]
	if !ok {
		return
	}
	delete(subs, s)
	if len(subs) == 0 {
		delete(h.subscribers, gameID)
	}
}

// Publish persists the message and broadcasts the stored message, with its id
// and creation time, to the subscribers of the message's game.  A subscriber
// that cannot take the message skips it and stays attached until it detaches;
// the publish still succeeds.
func (h *Hub) Publish(ctx context.Context, m chat.Message) (*chat.Message, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	stored, err := h.store.Create(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("publishing chat message: %w", err)
	}
	for s := range h.subscribers[m.GameID] {
		if err := s.Send(*stored); err != nil {
			h.Log.Printf("chat subscriber of game %v skipped message %v: %v", m.GameID, stored.ID, err)
		}
	}
	return stored, nil
}

// History returns the game's messages in the order they were sent.
func (h *Hub) History(ctx context.Context, gameID game.ID) ([]chat.Message, error) {
	return h.store.List(ctx, gameID)
}
