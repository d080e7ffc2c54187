package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Session token format: tbs_<43 chars of base64url>.
// The prefix makes leaked tokens greppable in logs and scanners.
const (
	sessionTokenPrefix = "tbs_"
	sessionTokenBytes  = 32
)

// NewSessionToken generates an opaque bearer token for a session.
func NewSessionToken() (string, error) {
	raw := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return sessionTokenPrefix + base64.RawURLEncoding.EncodeToString(raw), nil
}

// ValidTokenFormat reports whether a bearer credential looks like a
// session token. Cheap screen before any store lookup.
func ValidTokenFormat(token string) bool {
	if !strings.HasPrefix(token, sessionTokenPrefix) {
		return false
	}
	body := strings.TrimPrefix(token, sessionTokenPrefix)
	if len(body) != base64.RawURLEncoding.EncodedLen(sessionTokenBytes) {
		return false
	}
	_, err := base64.RawURLEncoding.DecodeString(body)
	return err == nil
}

// HashToken returns the hex SHA-256 of a token. Used as the cache key
// so the raw credential never reaches Redis.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// NewSessionID generates a ULID session identifier. ULIDs sort by
// creation time, which keeps session listings cheap.
func NewSessionID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.DefaultEntropy()).String()
}
