package server

import (
	"errors"
	"net/http"

	"github.com/zlitery/wordgrid/db/user"
)

type (
	// userRequest is the body of user creation and login requests.
	userRequest struct {
		Username string `json:"username"`
		Email    string `json:"email,omitempty"`
		Password string `json:"password"`
	}

	// sessionResponse is the body of a successful login.
	sessionResponse struct {
		Token string    `json:"token"`
		User  user.User `json:"user"`
	}
)

// handleUserCreate creates a user, adding it to the database.
func (s *Server) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	var body userRequest
	if err := readJSON(r, &body); err != nil {
		s.httpError(w, http.StatusBadRequest)
		return
	}
	if err := validateUserRequest(body); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
		return
	}
	ctx := r.Context()
	u, err := s.userDao.Create(ctx, body.Username, body.Email, body.Password)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, u)
}

// handleUserLogin signs a user in, writing the token to the response.
func (s *Server) handleUserLogin(w http.ResponseWriter, r *http.Request) {
	var body userRequest
	if err := readJSON(r, &body); err != nil {
		s.httpError(w, http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	u, err := s.userDao.Login(ctx, body.Username, body.Password)
	if err != nil {
		if errors.Is(err, user.ErrIncorrectLogin) {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": user.ErrIncorrectLogin.Error(),
			})
			return
		}
		s.handleError(w, err)
		return
	}
	token, err := s.tokenizer.Create(u.ID, u.Username)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sessionResponse{
		Token: token,
		User:  *u,
	})
}

// validateUserRequest checks the fields of a user creation request.
func validateUserRequest(body userRequest) error {
	if err := user.ValidateUsername(body.Username); err != nil {
		return err
	}
	if err := user.ValidateEmail(body.Email); err != nil {
		return err
	}
	return user.ValidatePassword(body.Password)
}
