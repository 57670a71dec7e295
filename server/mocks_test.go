package server

import (
	"context"
	"net/http"

	"github.com/zlitery/wordgrid/db/chat"
	gamedb "github.com/zlitery/wordgrid/db/game"
	"github.com/zlitery/wordgrid/db/ranking"
	"github.com/zlitery/wordgrid/db/user"
	"github.com/zlitery/wordgrid/game"
	serverchat "github.com/zlitery/wordgrid/server/chat"
	servergame "github.com/zlitery/wordgrid/server/game"
)

type mockTokenizer struct {
	CreateFunc func(userID int64, username string) (string, error)
	ReadFunc   func(tokenString string) (int64, string, error)
}

func (m mockTokenizer) Create(userID int64, username string) (string, error) {
	return m.CreateFunc(userID, username)
}

func (m mockTokenizer) Read(tokenString string) (int64, string, error) {
	return m.ReadFunc(tokenString)
}

type mockUserDao struct {
	CreateFunc func(ctx context.Context, username, email, password string) (*user.User, error)
	LoginFunc  func(ctx context.Context, username, password string) (*user.User, error)
}

func (m mockUserDao) Create(ctx context.Context, username, email, password string) (*user.User, error) {
	return m.CreateFunc(ctx, username, email, password)
}

func (m mockUserDao) Login(ctx context.Context, username, password string) (*user.User, error) {
	return m.LoginFunc(ctx, username, password)
}

type mockGameRegistry struct {
	CreateFunc func(ctx context.Context, creator game.User, language string) (*game.Info, error)
	ListFunc   func(ctx context.Context) ([]game.Info, error)
	GetFunc    func(ctx context.Context, id game.ID, viewerID int64) (*game.Info, error)
	JoinFunc   func(ctx context.Context, id game.ID, u game.User) (*game.Info, error)
	StartFunc  func(ctx context.Context, id game.ID, userID int64) (*game.Info, error)
	EndFunc    func(ctx context.Context, id game.ID, userID int64) (*game.Info, error)
	MoveFunc   func(ctx context.Context, id game.ID, userID int64, input servergame.MoveInput) (*game.Info, *game.Move, error)
	MovesFunc  func(ctx context.Context, id game.ID) ([]game.Move, error)
}

func (m mockGameRegistry) Create(ctx context.Context, creator game.User, language string) (*game.Info, error) {
	return m.CreateFunc(ctx, creator, language)
}

func (m mockGameRegistry) List(ctx context.Context) ([]game.Info, error) {
	return m.ListFunc(ctx)
}

func (m mockGameRegistry) Get(ctx context.Context, id game.ID, viewerID int64) (*game.Info, error) {
	return m.GetFunc(ctx, id, viewerID)
}

func (m mockGameRegistry) Join(ctx context.Context, id game.ID, u game.User) (*game.Info, error) {
	return m.JoinFunc(ctx, id, u)
}

func (m mockGameRegistry) Start(ctx context.Context, id game.ID, userID int64) (*game.Info, error) {
	return m.StartFunc(ctx, id, userID)
}

func (m mockGameRegistry) End(ctx context.Context, id game.ID, userID int64) (*game.Info, error) {
	return m.EndFunc(ctx, id, userID)
}

func (m mockGameRegistry) Move(ctx context.Context, id game.ID, userID int64, input servergame.MoveInput) (*game.Info, *game.Move, error) {
	return m.MoveFunc(ctx, id, userID, input)
}

func (m mockGameRegistry) Moves(ctx context.Context, id game.ID) ([]game.Move, error) {
	return m.MovesFunc(ctx, id)
}

type mockChatHub struct {
	AttachFunc  func(gameID game.ID, s serverchat.Subscriber)
	DetachFunc  func(gameID game.ID, s serverchat.Subscriber)
	PublishFunc func(ctx context.Context, m chat.Message) (*chat.Message, error)
	HistoryFunc func(ctx context.Context, gameID game.ID) ([]chat.Message, error)
}

func (m mockChatHub) Attach(gameID game.ID, s serverchat.Subscriber) {
	m.AttachFunc(gameID, s)
}

func (m mockChatHub) Detach(gameID game.ID, s serverchat.Subscriber) {
	m.DetachFunc(gameID, s)
}

func (m mockChatHub) Publish(ctx context.Context, msg chat.Message) (*chat.Message, error) {
	return m.PublishFunc(ctx, msg)
}

func (m mockChatHub) History(ctx context.Context, gameID game.ID) ([]chat.Message, error) {
	return m.HistoryFunc(ctx, gameID)
}

type mockRankingReader struct {
	TopFunc  func(ctx context.Context, n int) ([]ranking.Row, error)
	ReadFunc func(ctx context.Context, userID int64) (*ranking.Row, error)
}

func (m mockRankingReader) Top(ctx context.Context, n int) ([]ranking.Row, error) {
	return m.TopFunc(ctx, n)
}

func (m mockRankingReader) Read(ctx context.Context, userID int64) (*ranking.Row, error) {
	return m.ReadFunc(ctx, userID)
}

type mockHistoryReader struct {
	HistoryFunc func(ctx context.Context, userID int64) ([]gamedb.HistoryEntry, error)
}

func (m mockHistoryReader) History(ctx context.Context, userID int64) ([]gamedb.HistoryEntry, error) {
	return m.HistoryFunc(ctx, userID)
}

type mockUpgrader struct {
	UpgradeFunc func(w http.ResponseWriter, r *http.Request) (serverchat.Conn, error)
}

func (m mockUpgrader) Upgrade(w http.ResponseWriter, r *http.Request) (serverchat.Conn, error) {
	return m.UpgradeFunc(w, r)
}

type mockConn struct {
	ReadMessageFunc   func(m *serverchat.Inbound) error
	WriteMessageFunc  func(m chat.Message) error
	WritePingFunc     func() error
	WriteCloseFunc    func(reason string) error
	IsNormalCloseFunc func(err error) bool
	CloseFunc         func() error
}

func (m *mockConn) ReadMessage(msg *serverchat.Inbound) error {
	return m.ReadMessageFunc(msg)
}

func (m *mockConn) WriteMessage(msg chat.Message) error {
	return m.WriteMessageFunc(msg)
}

func (m *mockConn) WritePing() error {
	return m.WritePingFunc()
}

func (m *mockConn) WriteClose(reason string) error {
	return m.WriteCloseFunc(reason)
}

func (m *mockConn) IsNormalClose(err error) bool {
	return m.IsNormalCloseFunc(err)
}

func (m *mockConn) Close() error {
	return m.CloseFunc()
}
