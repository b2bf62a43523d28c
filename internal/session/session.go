package session

import (
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/felixgeelhaar/alumni/internal/platform"
)

// User is the identity a token authorizes
type User = platform.User

// Session pairs a resolved user with the bearer token that resolved it
type Session struct {
	User  User
	Token string
}

// Fingerprint returns a short, non-reversible identifier for a token, safe to log
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	sum := blake3.Sum256([]byte(token))
	return hex.EncodeToString(sum[:6])
}
