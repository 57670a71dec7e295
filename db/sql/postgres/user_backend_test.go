package postgres

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/zlitery/wordgrid/db"
	"github.com/zlitery/wordgrid/db/dbtest"
	"github.com/zlitery/wordgrid/db/sql"
	"github.com/zlitery/wordgrid/db/user"
)

func TestNewUserBackend(t *testing.T) {
	newUserBackendTests := []struct {
		database db.Database
		wantOk   bool
	}{
		{},
		{
			database: dbtest.MockDatabase{},
			wantOk:   true,
		},
	}
	for i, test := range newUserBackendTests {
		ub, err := NewUserBackend(test.database)
		switch {
		case err != nil:
			if test.wantOk {
				t.Errorf("Test %v: unwanted error: %v", i, err)
			}
		case !test.wantOk:
			t.Errorf("Test %v: wanted error", i)
		case ub.Database == nil:
			t.Errorf("Test %v: database not set", i)
		}
	}
}

func TestUserBackendCreate(t *testing.T) {
	createTests := []struct {
		scanErr error
		wantOk  bool
	}{
		{
			scanErr: fmt.Errorf(`duplicate key value violates unique constraint "users_username_key"`),
		},
		{
			wantOk: true,
		},
	}
	for i, test := range createTests {
		u := user.User{
			Username:     "selene",
			Email:        "selene@example.com",
			PasswordHash: "stored-hash",
		}
		d := dbtest.MockDatabase{
			QueryFunc: func(ctx context.Context, q db.Query) db.Scanner {
				wantCmd := "SELECT id, created_at FROM user_create($1, $2, $3)"
				wantArgs := []interface{}{u.Username, u.Email, u.PasswordHash}
				switch {
				case q.Cmd() != wantCmd:
					t.Errorf("Test %v: query commands not equal: \n wanted: %q \n got:    %q", i, wantCmd, q.Cmd())
				case !reflect.DeepEqual(wantArgs, q.Args()):
					t.Errorf("Test %v: query args not equal: \n wanted: %q \n got:    %q", i, wantArgs, q.Args())
				}
				return dbtest.MockScanner{
					ScanFunc: func(dest ...interface{}) error {
						if test.scanErr != nil {
							return test.scanErr
						}
						*dest[0].(*int64) = 7
						*dest[1].(*int64) = 1600000000
						return nil
					},
				}
			},
		}
		ub, err := NewUserBackend(d)
		if err != nil {
			t.Fatalf("Test %v: unwanted error: %v", i, err)
		}
		ctx := context.Background()
		got, err := ub.Create(ctx, u)
		switch {
		case err != nil:
			if test.wantOk {
				t.Errorf("Test %v: unwanted error: %v", i, err)
			}
		case !test.wantOk:
			t.Errorf("Test %v: wanted error", i)
		case got.ID != 7, got.CreatedAt != 1600000000:
			t.Errorf("Test %v: id and creation time not set on created user, got %+v", i, got)
		}
	}
}

func TestUserBackendRead(t *testing.T) {
	readTests := []struct {
		scanErr            error
		wantIncorrectLogin bool
		wantOk             bool
	}{
		{
			scanErr: fmt.Errorf("connection lost"),
		},
		{
			scanErr:            sql.ErrNoRows,
			wantIncorrectLogin: true,
		},
		{
			wantOk: true,
		},
	}
	for i, test := range readTests {
		want := &user.User{
			ID:           7,
			Username:     "selene",
			Email:        "selene@example.com",
			PasswordHash: "stored-hash",
			CreatedAt:    1600000000,
		}
		d := dbtest.MockDatabase{
			QueryFunc: func(ctx context.Context, q db.Query) db.Scanner {
				wantCmd := "SELECT id, username, email, password_hash, created_at FROM user_read($1)"
				wantArgs := []interface{}{want.Username}
				switch {
				case q.Cmd() != wantCmd:
					t.Errorf("Test %v: query commands not equal: \n wanted: %q \n got:    %q", i, wantCmd, q.Cmd())
				case !reflect.DeepEqual(wantArgs, q.Args()):
					t.Errorf("Test %v: query args not equal: \n wanted: %q \n got:    %q", i, wantArgs, q.Args())
				}
				return dbtest.MockScanner{
					ScanFunc: func(dest ...interface{}) error {
						if test.scanErr != nil {
							return test.scanErr
						}
						*dest[0].(*int64) = want.ID
						*dest[1].(*string) = want.Username
						*dest[2].(*string) = want.Email
						*dest[3].(*string) = want.PasswordHash
						*dest[4].(*int64) = want.CreatedAt
						return nil
					},
				}
			},
		}
		ub, err := NewUserBackend(d)
		if err != nil {
			t.Fatalf("Test %v: unwanted error: %v", i, err)
		}
		ctx := context.Background()
		got, err := ub.Read(ctx, want.Username)
		switch {
		case err != nil:
			switch {
			case test.wantOk:
				t.Errorf("Test %v: unwanted error: %v", i, err)
			case test.wantIncorrectLogin != errors.Is(err, user.ErrIncorrectLogin):
				t.Errorf("Test %v: wanted ErrIncorrectLogin=%v when the db has no rows, got: %v", i, test.wantIncorrectLogin, err)
			}
		case !test.wantOk:
			t.Errorf("Test %v: wanted error", i)
		case !reflect.DeepEqual(want, got):
			t.Errorf("Test %v: users not equal: \n wanted: %v \n got:    %v", i, want, got)
		}
	}
}
