package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/termbase/termbase/internal/model"
)

func TestNewSessionToken(t *testing.T) {
	tok, err := NewSessionToken()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !strings.HasPrefix(tok, "tbs_") {
		t.Errorf("expected tbs_ prefix, got %s", tok)
	}
	if !ValidTokenFormat(tok) {
		t.Errorf("freshly generated token fails format check: %s", tok)
	}

	tok2, err := NewSessionToken()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if tok == tok2 {
		t.Error("expected unique tokens")
	}
}

func TestValidTokenFormat(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"empty", "", false},
		{"no_prefix", "abcdefghijklmnopqrstuvwxyzabcdefghijklmnopq", false},
		{"wrong_prefix", "key_abcdefghijklmnopqrstuvwxyzabcdefghijklmno", false},
		{"too_short", "tbs_abc", false},
		{"invalid_base64", "tbs_" + strings.Repeat("!", 43), false},
		{"valid", "tbs_" + strings.Repeat("A", 43), true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ValidTokenFormat(test.token); got != test.want {
				t.Errorf("ValidTokenFormat(%q) = %v, want %v", test.token, got, test.want)
			}
		})
	}
}

func TestHashToken(t *testing.T) {
	h1 := HashToken("tbs_sometoken")
	h2 := HashToken("tbs_sometoken")
	h3 := HashToken("tbs_othertoken")

	if h1 != h2 {
		t.Error("expected stable hash for identical tokens")
	}
	if h1 == h3 {
		t.Error("expected different hashes for different tokens")
	}
	if len(h1) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(h1))
	}
	if strings.Contains(h1, "tbs_") {
		t.Error("hash must not contain the raw token")
	}
}

func TestNewSessionID(t *testing.T) {
	id := NewSessionID()
	if len(id) != 26 {
		t.Errorf("expected 26-char ULID, got %q", id)
	}
	if id == NewSessionID() {
		t.Error("expected unique session IDs")
	}
}

func TestIdentityContext(t *testing.T) {
	ctx := context.Background()

	if got := IdentityFromContext(ctx); got != nil {
		t.Errorf("expected nil identity on empty context, got %+v", got)
	}
	if got := UserIDFromContext(ctx); got != "" {
		t.Errorf("expected empty user ID on empty context, got %q", got)
	}

	id := &model.Identity{UserID: "u-1", Email: "a@example.com"}
	ctx = ContextWithIdentity(ctx, id)

	if got := IdentityFromContext(ctx); got != id {
		t.Errorf("expected identity round-trip, got %+v", got)
	}
	if got := UserIDFromContext(ctx); got != "u-1" {
		t.Errorf("expected u-1, got %q", got)
	}
}
