// Package certificate answers the ACME HTTP-01 challenge so a certificate
// authority can verify the server owns its domain.
package certificate

import (
	"fmt"
	"io"
	"strings"
)

// challengePath is the path prefix certificate authorities request challenges at.
const challengePath = "/.well-known/acme-challenge/"

// Challenge is the token and key of a pending HTTP-01 domain validation.
type Challenge struct {
	Token string
	Key   string
}

// IsFor reports whether the path requests an HTTP-01 challenge.
func (Challenge) IsFor(path string) bool {
	return len(path) > len(challengePath) && strings.HasPrefix(path, challengePath)
}

// Handle writes the key authorization, the token and key joined by a period,
// when the path requests this challenge's token.
func (c Challenge) Handle(w io.Writer, path string) error {
	if !c.IsFor(path) || path[len(challengePath):] != c.Token {
		return fmt.Errorf("path %q does not request the pending challenge", path)
	}
	if _, err := io.WriteString(w, c.Token+"."+c.Key); err != nil {
		return fmt.Errorf("writing key authorization: %w", err)
	}
	return nil
}
