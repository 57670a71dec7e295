package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/zlitery/wordgrid/db/chat"
	gamedb "github.com/zlitery/wordgrid/db/game"
	"github.com/zlitery/wordgrid/db/ranking"
	"github.com/zlitery/wordgrid/db/user"
	"github.com/zlitery/wordgrid/game"
	"github.com/zlitery/wordgrid/server"
	serverchat "github.com/zlitery/wordgrid/server/chat"
	servergame "github.com/zlitery/wordgrid/server/game"
)

// testServerHandlers returns handlers whose dependencies are inert mocks.
func testServerHandlers() server.Handlers {
	return server.Handlers{
		Tokenizer:    mockTokenizer{},
		UserDao:      mockUserDao{},
		Games:        mockGameRegistry{},
		Chat:         mockChatHub{},
		Upgrader:     mockUpgrader{},
		Rankings:     mockRankingReader{},
		History:      mockHistoryReader{},
		SocketConfig: serverchat.Config{Log: log.New(io.Discard, "", 0), PingPeriod: time.Minute, QueueSize: 1},
	}
}

type mockTokenizer struct{}

func (mockTokenizer) Create(userID int64, username string) (string, error) {
	return "", nil
}

func (mockTokenizer) Read(tokenString string) (int64, string, error) {
	return 0, "", nil
}

type mockUserDao struct{}

func (mockUserDao) Create(ctx context.Context, username, email, password string) (*user.User, error) {
	return nil, nil
}

func (mockUserDao) Login(ctx context.Context, username, password string) (*user.User, error) {
	return nil, nil
}

type mockGameRegistry struct{}

func (mockGameRegistry) Create(ctx context.Context, creator game.User, language string) (*game.Info, error) {
	return nil, nil
}

func (mockGameRegistry) List(ctx context.Context) ([]game.Info, error) {
	return nil, nil
}

func (mockGameRegistry) Get(ctx context.Context, id game.ID, viewerID int64) (*game.Info, error) {
	return nil, nil
}

func (mockGameRegistry) Join(ctx context.Context, id game.ID, u game.User) (*game.Info, error) {
	return nil, nil
}

func (mockGameRegistry) Start(ctx context.Context, id game.ID, userID int64) (*game.Info, error) {
	return nil, nil
}

func (mockGameRegistry) End(ctx context.Context, id game.ID, userID int64) (*game.Info, error) {
	return nil, nil
}

func (mockGameRegistry) Move(ctx context.Context, id game.ID, userID int64, input servergame.MoveInput) (*game.Info, *game.Move, error) {
	return nil, nil, nil
}

func (mockGameRegistry) Moves(ctx context.Context, id game.ID) ([]game.Move, error) {
	return nil, nil
}

type mockChatHub struct{}

func (mockChatHub) Attach(gameID game.ID, s serverchat.Subscriber) {}

func (mockChatHub) Detach(gameID game.ID, s serverchat.Subscriber) {}

func (mockChatHub) Publish(ctx context.Context, m chat.Message) (*chat.Message, error) {
	return nil, nil
}

func (mockChatHub) History(ctx context.Context, gameID game.ID) ([]chat.Message, error) {
	return nil, nil
}

type mockUpgrader struct{}

func (mockUpgrader) Upgrade(w http.ResponseWriter, r *http.Request) (serverchat.Conn, error) {
	return nil, nil
}

type mockRankingReader struct{}

func (mockRankingReader) Top(ctx context.Context, n int) ([]ranking.Row, error) {
	return nil, nil
}

func (mockRankingReader) Read(ctx context.Context, userID int64) (*ranking.Row, error) {
	return nil, nil
}

type mockHistoryReader struct{}

func (mockHistoryReader) History(ctx context.Context, userID int64) ([]gamedb.HistoryEntry, error) {
	return nil, nil
}
