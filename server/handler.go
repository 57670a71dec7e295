package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/zlitery/wordgrid/game"
)

// authUser is the user a valid bearer token identifies.
type authUser struct {
	ID       int64
	Username string
}

// handleAPI routes api requests by path segments.
func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	parts := pathParts(r.URL.Path)
	switch {
	case len(parts) == 1 && parts[0] == "health":
		s.handleHealth(w, r)
	case len(parts) == 1 && parts[0] == "monitor":
		s.handleMonitor(w, r)
	case len(parts) >= 1 && parts[0] == "api":
		s.handleAPIResource(w, r, parts[1:])
	case len(parts) == 3 && parts[0] == "ws" && parts[1] == "chat":
		s.handleChatSocket(w, r, parts[2])
	default:
		s.httpError(w, http.StatusNotFound)
	}
}

// handleAPIResource routes requests under /api, checking authentication on
// all endpoints except user creation and login.
func (s *Server) handleAPIResource(w http.ResponseWriter, r *http.Request, parts []string) {
	if len(parts) == 0 {
		s.httpError(w, http.StatusNotFound)
		return
	}
	switch {
	case parts[0] == "users" && len(parts) == 1 && r.Method == http.MethodPost:
		s.handleUserCreate(w, r)
		return
	case parts[0] == "sessions" && len(parts) == 1 && r.Method == http.MethodPost:
		s.handleUserLogin(w, r)
		return
	}
	u, err := s.checkAuthorization(r)
	if err != nil {
		s.httpError(w, http.StatusUnauthorized)
		return
	}
	switch parts[0] {
	case "games":
		s.handleGames(w, r, parts[1:], u)
	case "rankings":
		s.handleRankings(w, r, parts[1:])
	case "profile":
		s.handleProfile(w, r, parts[1:], u)
	case "history":
		s.handleHistory(w, r, parts[1:], u)
	default:
		s.httpError(w, http.StatusNotFound)
	}
}

// handleGames routes requests under /api/games.
func (s *Server) handleGames(w http.ResponseWriter, r *http.Request, parts []string, u authUser) {
	if len(parts) == 0 {
		switch r.Method {
		case http.MethodGet:
			s.handleGameList(w, r)
		case http.MethodPost:
			s.handleGameCreate(w, r, u)
		default:
			s.httpError(w, http.StatusMethodNotAllowed)
		}
		return
	}
	id, err := parseGameID(parts[0])
	if err != nil {
		s.httpError(w, http.StatusNotFound)
		return
	}
	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		s.handleGameGet(w, r, id, u)
	case len(parts) == 2 && r.Method == http.MethodPost && parts[1] == "join":
		s.handleGameJoin(w, r, id, u)
	case len(parts) == 2 && r.Method == http.MethodPost && parts[1] == "start":
		s.handleGameStart(w, r, id, u)
	case len(parts) == 2 && r.Method == http.MethodPost && parts[1] == "end":
		s.handleGameEnd(w, r, id, u)
	case len(parts) == 2 && r.Method == http.MethodPost && parts[1] == "moves":
		s.handleGameMove(w, r, id, u)
	case len(parts) == 2 && r.Method == http.MethodGet && parts[1] == "moves":
		s.handleGameMoves(w, r, id)
	case len(parts) == 2 && r.Method == http.MethodGet && parts[1] == "messages":
		s.handleChatHistory(w, r, id)
	default:
		s.httpError(w, http.StatusNotFound)
	}
}

// handleHealth writes a liveness response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// checkAuthorization returns the user the request's bearer token identifies.
// Websocket requests may carry the token in the access_token query parameter
// because browsers cannot set headers on websocket handshakes.
func (s *Server) checkAuthorization(r *http.Request) (authUser, error) {
	tokenString := r.URL.Query().Get("access_token")
	if authorization := r.Header.Get("Authorization"); len(authorization) >= 7 && authorization[:7] == "Bearer " {
		tokenString = authorization[7:]
	}
	if len(tokenString) == 0 {
		return authUser{}, fmt.Errorf("no authorization token")
	}
	userID, username, err := s.tokenizer.Read(tokenString)
	if err != nil {
		return authUser{}, fmt.Errorf("reading authorization token: %w", err)
	}
	u := authUser{
		ID:       userID,
		Username: username,
	}
	return u, nil
}

// pathParts splits the path into its non-empty segments.
func pathParts(path string) []string {
	trimmed := strings.Trim(path, "/")
	if len(trimmed) == 0 {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// parseGameID parses a game id path segment.
func parseGameID(s string) (game.ID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid game id: %q", s)
	}
	return game.ID(id), nil
}

// readJSON decodes the request body into v.
func readJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}
	return nil
}

// writeJSON writes v as the json response body.
func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Printf("writing response body: %v", err)
	}
}

// writeGameError maps rule rejections to their status codes.  Other errors
// are internal.
func (s *Server) writeGameError(w http.ResponseWriter, err error) {
	kind, ok := game.ErrorKind(err)
	if !ok {
		s.handleError(w, err)
		return
	}
	var statusCode int
	switch kind {
	case game.NotFound:
		statusCode = http.StatusNotFound
	case game.Forbidden:
		statusCode = http.StatusForbidden
	case game.Conflict:
		statusCode = http.StatusConflict
	default:
		statusCode = http.StatusBadRequest
	}
	s.writeJSON(w, statusCode, map[string]string{
		"error": err.Error(),
	})
}

// handleError logs the error and writes an internal server error (500).
func (s *Server) handleError(w http.ResponseWriter, err error) {
	s.log.Printf("server error: %v", err)
	s.httpError(w, http.StatusInternalServerError)
}

// httpError writes the error status code.
func (s *Server) httpError(w http.ResponseWriter, statusCode int) {
	s.writeJSON(w, statusCode, map[string]string{
		"error": http.StatusText(statusCode),
	})
}
