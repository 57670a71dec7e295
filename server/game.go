package server

import (
	"net/http"

	"github.com/zlitery/wordgrid/game"
	servergame "github.com/zlitery/wordgrid/server/game"
)

type (
	// gameCreateRequest is the body of a game creation request.
	gameCreateRequest struct {
		Language string `json:"language"`
	}

	// moveResponse is the body written after a successful move.
	moveResponse struct {
		Info *game.Info `json:"info"`
		Move *game.Move `json:"move"`
	}
)

// handleGameList writes the summaries of all games.
func (s *Server) handleGameList(w http.ResponseWriter, r *http.Request) {
	infos, err := s.games.List(r.Context())
	if err != nil {
		s.handleError(w, err)
		return
	}
	if infos == nil {
		infos = []game.Info{}
	}
	s.writeJSON(w, http.StatusOK, infos)
}

// handleGameCreate creates a game with the requester as its first player.
func (s *Server) handleGameCreate(w http.ResponseWriter, r *http.Request, u authUser) {
	var body gameCreateRequest
	if err := readJSON(r, &body); err != nil {
		s.httpError(w, http.StatusBadRequest)
		return
	}
	if len(body.Language) == 0 {
		body.Language = "en"
	}
	creator := game.User{
		ID:       u.ID,
		Username: u.Username,
	}
	info, err := s.games.Create(r.Context(), creator, body.Language)
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, info)
}

// handleGameGet writes the game state as the requester sees it.
func (s *Server) handleGameGet(w http.ResponseWriter, r *http.Request, id game.ID, u authUser) {
	info, err := s.games.Get(r.Context(), id, u.ID)
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, info)
}

// handleGameJoin adds the requester to the game.
func (s *Server) handleGameJoin(w http.ResponseWriter, r *http.Request, id game.ID, u authUser) {
	player := game.User{
		ID:       u.ID,
		Username: u.Username,
	}
	info, err := s.games.Join(r.Context(), id, player)
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, info)
}

// handleGameStart starts the game.
func (s *Server) handleGameStart(w http.ResponseWriter, r *http.Request, id game.ID, u authUser) {
	info, err := s.games.Start(r.Context(), id, u.ID)
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, info)
}

// handleGameEnd finishes the game early.
func (s *Server) handleGameEnd(w http.ResponseWriter, r *http.Request, id game.ID, u authUser) {
	info, err := s.games.End(r.Context(), id, u.ID)
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, info)
}

// handleGameMove applies the requester's move to the game.
func (s *Server) handleGameMove(w http.ResponseWriter, r *http.Request, id game.ID, u authUser) {
	var input servergame.MoveInput
	if err := readJSON(r, &input); err != nil {
		s.httpError(w, http.StatusBadRequest)
		return
	}
	info, move, err := s.games.Move(r.Context(), id, u.ID, input)
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, moveResponse{
		Info: info,
		Move: move,
	})
}

// handleGameMoves writes the game's moves in the order they were made.
func (s *Server) handleGameMoves(w http.ResponseWriter, r *http.Request, id game.ID) {
	moves, err := s.games.Moves(r.Context(), id)
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	if moves == nil {
		moves = []game.Move{}
	}
	s.writeJSON(w, http.StatusOK, moves)
}
