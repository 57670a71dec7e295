package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zlitery/wordgrid/db/user"
)

func TestHandleUserCreate(t *testing.T) {
	createTests := []struct {
		body           string
		dao            mockUserDao
		wantStatusCode int
	}{
		{
			body:           "not json",
			wantStatusCode: 400,
		},
		{ // bad username
			body:           `{"username":"NOT_LOWERCASE","email":"a@example.com","password":"password123"}`,
			wantStatusCode: 400,
		},
		{ // bad email
			body:           `{"username":"selene","email":"nope","password":"password123"}`,
			wantStatusCode: 400,
		},
		{ // short password
			body:           `{"username":"selene","email":"a@example.com","password":"short"}`,
			wantStatusCode: 400,
		},
		{
			body: `{"username":"selene","email":"a@example.com","password":"password123"}`,
			dao: mockUserDao{
				CreateFunc: func(ctx context.Context, username, email, password string) (*user.User, error) {
					return nil, fmt.Errorf("database down")
				},
			},
			wantStatusCode: 500,
		},
		{
			body: `{"username":"selene","email":"a@example.com","password":"password123"}`,
			dao: mockUserDao{
				CreateFunc: func(ctx context.Context, username, email, password string) (*user.User, error) {
					u := user.User{
						ID:       7,
						Username: username,
						Email:    email,
					}
					return &u, nil
				},
			},
			wantStatusCode: 201,
		},
	}
	for i, test := range createTests {
		s := Server{
			log:     log.New(io.Discard, "", 0),
			userDao: test.dao,
		}
		r := httptest.NewRequest("POST", "https://example.com/api/users", strings.NewReader(test.body))
		w := httptest.NewRecorder()
		s.handleUserCreate(w, r)
		if want, got := test.wantStatusCode, w.Code; want != got {
			t.Errorf("Test %v: wanted status %v, got %v: %v", i, want, got, w.Body.String())
			continue
		}
		if test.wantStatusCode == 201 {
			var u user.User
			if err := json.NewDecoder(w.Body).Decode(&u); err != nil {
				t.Errorf("Test %v: unwanted error decoding body: %v", i, err)
				continue
			}
			if u.ID != 7 || u.Username != "selene" {
				t.Errorf("Test %v: wanted created user in body, got %+v", i, u)
			}
		}
	}
}

func TestHandleUserLogin(t *testing.T) {
	okDao := mockUserDao{
		LoginFunc: func(ctx context.Context, username, password string) (*user.User, error) {
			u := user.User{
				ID:       7,
				Username: username,
			}
			return &u, nil
		},
	}
	okTokenizer := mockTokenizer{
		CreateFunc: func(userID int64, username string) (string, error) {
			return fmt.Sprintf("token-%v-%v", userID, username), nil
		},
	}
	loginTests := []struct {
		body           string
		dao            mockUserDao
		tokenizer      mockTokenizer
		wantStatusCode int
		wantToken      string
	}{
		{
			body:           "not json",
			wantStatusCode: 400,
		},
		{
			body: `{"username":"selene","password":"wrong_password"}`,
			dao: mockUserDao{
				LoginFunc: func(ctx context.Context, username, password string) (*user.User, error) {
					return nil, user.ErrIncorrectLogin
				},
			},
			wantStatusCode: 401,
		},
		{
			body: `{"username":"selene","password":"password123"}`,
			dao: mockUserDao{
				LoginFunc: func(ctx context.Context, username, password string) (*user.User, error) {
					return nil, fmt.Errorf("database down")
				},
			},
			wantStatusCode: 500,
		},
		{
			body: `{"username":"selene","password":"password123"}`,
			dao:  okDao,
			tokenizer: mockTokenizer{
				CreateFunc: func(userID int64, username string) (string, error) {
					return "", fmt.Errorf("signing failed")
				},
			},
			wantStatusCode: 500,
		},
		{
			body:           `{"username":"selene","password":"password123"}`,
			dao:            okDao,
			tokenizer:      okTokenizer,
			wantStatusCode: 200,
			wantToken:      "token-7-selene",
		},
	}
	for i, test := range loginTests {
		s := Server{
			log:       log.New(io.Discard, "", 0),
			userDao:   test.dao,
			tokenizer: test.tokenizer,
		}
		r := httptest.NewRequest("POST", "https://example.com/api/sessions", strings.NewReader(test.body))
		w := httptest.NewRecorder()
		s.handleUserLogin(w, r)
		if want, got := test.wantStatusCode, w.Code; want != got {
			t.Errorf("Test %v: wanted status %v, got %v: %v", i, want, got, w.Body.String())
			continue
		}
		if test.wantStatusCode == 200 {
			var resp sessionResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Errorf("Test %v: unwanted error decoding body: %v", i, err)
				continue
			}
			switch {
			case resp.Token != test.wantToken:
				t.Errorf("Test %v: wanted token %q, got %q", i, test.wantToken, resp.Token)
			case resp.User.ID != 7:
				t.Errorf("Test %v: wanted user id 7, got %v", i, resp.User.ID)
			}
		}
	}
}
