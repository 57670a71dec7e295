// Package auth issues and checks the bearer tokens users send after logging in.
package auth

import (
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type (
	// Tokenizer creates and reads tokens from http traffic.
	Tokenizer interface {
		Create(userID int64, username string) (string, error)
		Read(tokenString string) (userID int64, username string, err error)
	}

	// TokenizerConfig contains fields which describe a Tokenizer.
	TokenizerConfig struct {
		// KeyReader is used to generate the token signing key.
		KeyReader io.Reader
		// TimeFunc returns the current time in seconds since the unix epoch.
		// It stamps the issue time of new tokens.
		TimeFunc func() int64
		// ValidSec is how long tokens stay valid after issuing, in seconds.
		ValidSec int64
	}

	jwtTokenizer struct {
		method   jwt.SigningMethod
		key      interface{}
		timeFunc func() int64
		validSec int64
	}

	// jwtUserClaims stores the username in the registered Subject field.
	jwtUserClaims struct {
		UserID int64 `json:"user_id"`
		jwt.RegisteredClaims
	}
)

// NewTokenizer creates a Tokenizer with a key from the random number generator.
func (cfg TokenizerConfig) NewTokenizer() (Tokenizer, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("creating tokenizer: validation: %w", err)
	}
	key := make([]byte, 64)
	if _, err := cfg.KeyReader.Read(key); err != nil {
		return nil, fmt.Errorf("generating tokenizer key: %w", err)
	}
	t := jwtTokenizer{
		method:   jwt.SigningMethodHS256,
		key:      key,
		timeFunc: cfg.TimeFunc,
		validSec: cfg.ValidSec,
	}
	return t, nil
}

// validate ensures the configuration has no errors.
func (cfg TokenizerConfig) validate() error {
	switch {
	case cfg.KeyReader == nil:
		return fmt.Errorf("key reader required")
	case cfg.TimeFunc == nil:
		return fmt.Errorf("time func required")
	case cfg.ValidSec <= 0:
		return fmt.Errorf("positive token lifetime required")
	}
	return nil
}

// Create signs a token identifying the user.
func (j jwtTokenizer) Create(userID int64, username string) (string, error) {
	now := time.Unix(j.timeFunc(), 0)
	expiresAt := now.Add(time.Duration(j.validSec) * time.Second)
	claims := jwtUserClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(j.method, claims)
	return token.SignedString(j.key)
}

// Read extracts the user from the token string.
func (j jwtTokenizer) Read(tokenString string) (int64, string, error) {
	var claims jwtUserClaims
	if _, err := jwt.ParseWithClaims(tokenString, &claims, j.keyFunc); err != nil {
		return 0, "", err
	}
	return claims.UserID, claims.Subject, nil
}

// keyFunc ensures the signing method of the token is correct before returning the key.
func (j jwtTokenizer) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method != j.method {
		return nil, fmt.Errorf("incorrect authorization signing method")
	}
	return j.key, nil
}
