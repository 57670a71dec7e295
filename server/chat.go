package server

import (
	"context"
	"net/http"

	"github.com/zlitery/wordgrid/db/chat"
	gamedb "github.com/zlitery/wordgrid/db/game"
	"github.com/zlitery/wordgrid/db/ranking"
	"github.com/zlitery/wordgrid/game"
)

// topRankingCount is how many rows the rankings endpoint returns.
const topRankingCount = 100

// handleChatHistory writes the game's chat messages in the order they were sent.
func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request, id game.ID) {
	messages, err := s.chat.History(r.Context(), id)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if messages == nil {
		messages = []chat.Message{}
	}
	s.writeJSON(w, http.StatusOK, messages)
}

// handleChatSocket upgrades the request to a websocket that streams the game's chat.
// The handler blocks until the connection closes.
func (s *Server) handleChatSocket(w http.ResponseWriter, r *http.Request, idPart string) {
	u, err := s.checkAuthorization(r)
	if err != nil {
		s.httpError(w, http.StatusUnauthorized)
		return
	}
	id, err := parseGameID(idPart)
	if err != nil {
		s.httpError(w, http.StatusNotFound)
		return
	}
	if _, err := s.games.Get(r.Context(), id, u.ID); err != nil {
		s.writeGameError(w, err)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r)
	if err != nil {
		s.log.Printf("upgrading chat connection: %v", err)
		return
	}
	socket, err := s.socketCfg.NewSocket(conn)
	if err != nil {
		s.log.Printf("creating chat socket: %v", err)
		conn.Close()
		return
	}
	s.chat.Attach(id, socket)
	defer s.chat.Detach(id, socket)
	socket.Run(r.Context(), func(ctx context.Context, text string) {
		m := chat.Message{
			GameID:   id,
			UserID:   u.ID,
			Username: u.Username,
			Message:  text,
		}
		if _, err := s.chat.Publish(ctx, m); err != nil {
			s.log.Printf("publishing chat message for game %v: %v", id, err)
		}
	})
}

// handleRankings writes the top player standings.
func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request, parts []string) {
	if len(parts) != 0 || r.Method != http.MethodGet {
		s.httpError(w, http.StatusNotFound)
		return
	}
	rows, err := s.rankings.Top(r.Context(), topRankingCount)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if rows == nil {
		rows = []ranking.Row{}
	}
	s.writeJSON(w, http.StatusOK, rows)
}

// handleProfile writes the requester's standing.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request, parts []string, u authUser) {
	if len(parts) != 0 || r.Method != http.MethodGet {
		s.httpError(w, http.StatusNotFound)
		return
	}
	row, err := s.rankings.Read(r.Context(), u.ID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, row)
}

// handleHistory writes the requester's finished games, most recent first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request, parts []string, u authUser) {
	if len(parts) != 0 || r.Method != http.MethodGet {
		s.httpError(w, http.StatusNotFound)
		return
	}
	entries, err := s.history.History(r.Context(), u.ID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if entries == nil {
		entries = []gamedb.HistoryEntry{}
	}
	s.writeJSON(w, http.StatusOK, entries)
}
