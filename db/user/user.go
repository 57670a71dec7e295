// Package user handles the accounts of the people who play games.
package user

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// User is an account that can log in and sit at games.
type User struct {
	// ID identifies the user in games, moves, and chat messages.
	ID int64 `json:"id"`
	// Username is the unique name the user logs in and plays under.
	Username string `json:"username"`
	// Email is the unique address the user registered with.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the user's password.  It is never serialized.
	PasswordHash string `json:"-"`
	// CreatedAt is when the account was created, in seconds since the unix epoch.
	CreatedAt int64 `json:"created_at"`
}

// ErrIncorrectLogin is returned when a username/password pair does not match an account.
var ErrIncorrectLogin = errors.New("incorrect username or password")

// ValidateUsername returns an error if the username cannot name an account.
func ValidateUsername(u string) error {
	switch {
	case len(u) < 1:
		return fmt.Errorf("username required")
	case len(u) > 32:
		return fmt.Errorf("username must be at most 32 characters long")
	default:
		for _, r := range u {
			if !unicode.IsLower(r) && !unicode.IsDigit(r) {
				return fmt.Errorf("username must be made of only lowercase letters and digits")
			}
		}
	}
	return nil
}

// ValidateEmail returns an error if the email address is obviously malformed.
func ValidateEmail(e string) error {
	at := strings.Index(e, "@")
	switch {
	case len(e) < 3, len(e) > 254:
		return fmt.Errorf("email required")
	case at <= 0, at == len(e)-1:
		return fmt.Errorf("email must contain a user and a host separated by @")
	}
	return nil
}

// ValidatePassword returns an error if the password is too weak to protect an account.
func ValidatePassword(p string) error {
	if len(p) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	return nil
}
