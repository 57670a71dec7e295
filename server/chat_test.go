package server

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/zlitery/wordgrid/db/chat"
	"github.com/zlitery/wordgrid/game"
	serverchat "github.com/zlitery/wordgrid/server/chat"
)

func TestHandleChatSocketRequiresAuthorization(t *testing.T) {
	s := apiTestServer()
	r := httptest.NewRequest("GET", "https://example.com/ws/chat/3", nil)
	w := httptest.NewRecorder()
	s.handleAPI(w, r)
	if want, got := 401, w.Code; want != got {
		t.Errorf("wanted status %v, got %v", want, got)
	}
}

func TestHandleChatSocketUnknownGame(t *testing.T) {
	s := apiTestServer()
	s.games = mockGameRegistry{
		GetFunc: func(ctx context.Context, id game.ID, viewerID int64) (*game.Info, error) {
			return nil, game.Error{Kind: game.NotFound, Message: "Game not found"}
		},
	}
	r := httptest.NewRequest("GET", "https://example.com/ws/chat/3?access_token=token7", nil)
	w := httptest.NewRecorder()
	s.handleAPI(w, r)
	if want, got := 404, w.Code; want != got {
		t.Errorf("wanted status %v, got %v", want, got)
	}
}

func TestHandleChatSocketPumpsMessages(t *testing.T) {
	var attached, detached int
	var published []chat.Message
	reads := 0
	conn := mockConn{
		ReadMessageFunc: func(m *serverchat.Inbound) error {
			reads++
			if reads > 1 {
				return io.EOF
			}
			m.Message = "hello"
			return nil
		},
		WriteCloseFunc:    func(reason string) error { return nil },
		IsNormalCloseFunc: func(err error) bool { return true },
		CloseFunc:         func() error { return nil },
	}
	s := apiTestServer()
	s.socketCfg = serverchat.Config{
		Log:        log.New(io.Discard, "", 0),
		PingPeriod: time.Hour,
		QueueSize:  4,
	}
	s.upgrader = mockUpgrader{
		UpgradeFunc: func(w http.ResponseWriter, r *http.Request) (serverchat.Conn, error) {
			return &conn, nil
		},
	}
	s.chat = mockChatHub{
		AttachFunc: func(gameID game.ID, sub serverchat.Subscriber) {
			attached++
		},
		DetachFunc: func(gameID game.ID, sub serverchat.Subscriber) {
			detached++
		},
		PublishFunc: func(ctx context.Context, m chat.Message) (*chat.Message, error) {
			published = append(published, m)
			return &m, nil
		},
	}
	r := httptest.NewRequest("GET", "https://example.com/ws/chat/3?access_token=token7", nil)
	w := httptest.NewRecorder()
	s.handleAPI(w, r)
	switch {
	case attached != 1:
		t.Errorf("wanted 1 attach, got %v", attached)
	case detached != 1:
		t.Errorf("wanted 1 detach, got %v", detached)
	case len(published) != 1:
		t.Errorf("wanted 1 published message, got %v", len(published))
	default:
		m := published[0]
		switch {
		case m.GameID != 3:
			t.Errorf("wanted message for game 3, got %v", m.GameID)
		case m.UserID != 1, m.Username != "selene":
			t.Errorf("wanted message from user 1 (selene), got %v (%v)", m.UserID, m.Username)
		case m.Message != "hello":
			t.Errorf("wanted message text hello, got %q", m.Message)
		}
	}
}
