// Package token generates and checks the opaque identifiers used for
// tickets. Tokens are lookup keys and filesystem path components; they
// are never parsed for meaning, so anything outside the fixed format is
// rejected before it gets near a query or a path join.
package token

import (
	"crypto/rand"
	"fmt"
	"regexp"
)

// Length is the fixed token length, e.g. "abc123def456".
const Length = 12

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var pattern = regexp.MustCompile(`^[A-Za-z0-9]{12}$`)

// Bytes at or above this would wrap unevenly onto the alphabet and
// skew the low characters, so they are redrawn.
const maxUnbiased = 256 - 256%len(alphabet)

// New returns a fresh random token.
func New() (string, error) {
	out := make([]byte, 0, Length)
	buf := make([]byte, 2*Length)
	for len(out) < Length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("token: %w", err)
		}
		for _, b := range buf {
			if int(b) >= maxUnbiased {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == Length {
				break
			}
		}
	}
	return string(out), nil
}

// Valid reports whether s is a well-formed token.
func Valid(s string) bool {
	return pattern.MatchString(s)
}
