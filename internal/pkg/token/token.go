// Package token generates opaque refresh tokens. The values carry no
// structure and no claims; they only mean something when looked up
// against the refresh token store.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

var ErrInvalidSize = errors.New("refresh token size must be positive")

// NewOpaque returns a base64-encoded cryptographically random token of
// byteLength random bytes.
func NewOpaque(byteLength int) (string, error) {
	if byteLength <= 0 {
		return "", ErrInvalidSize
	}
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}
