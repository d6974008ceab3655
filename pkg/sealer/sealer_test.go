package sealer

import (
	"crypto/rand"
	"encoding/base64"
	"strings"
	"testing"
)

func newTestSealer(t *testing.T) *Sealer {
	t.Helper()

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	s, err := New(base64.StdEncoding.EncodeToString(key))
	if err != nil {
		t.Fatalf("failed to build sealer: %v", err)
	}
	return s
}

func TestSealOpenRoundTrip(t *testing.T) {
	s := newTestSealer(t)

	sessionID := "3f1d9a6e-8c42-4a0b-9d11-5e8f0c2b7a31"
	token, err := s.Seal(sessionID)
	if err != nil {
		t.Fatalf("Seal() failed: %v", err)
	}

	if token == sessionID {
		t.Fatalf("token must not expose the session ID")
	}

	got, err := s.Open(token)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if got != sessionID {
		t.Errorf("Open() = %q, want %q", got, sessionID)
	}
}

func TestOpenRejectsTampering(t *testing.T) {
	s := newTestSealer(t)

	token, err := s.Seal("session-1")
	if err != nil {
		t.Fatalf("Seal() failed: %v", err)
	}

	raw, _ := base64.RawURLEncoding.DecodeString(token)
	raw[len(raw)-1] ^= 0x01
	tampered := base64.RawURLEncoding.EncodeToString(raw)

	if _, err := s.Open(tampered); err == nil {
		t.Errorf("Open() should reject a tampered token")
	}
}

func TestOpenRejectsForeignKey(t *testing.T) {
	a := newTestSealer(t)
	b := newTestSealer(t)

	token, err := a.Seal("session-1")
	if err != nil {
		t.Fatalf("Seal() failed: %v", err)
	}

	if _, err := b.Open(token); err == nil {
		t.Errorf("Open() should reject a token sealed under another key")
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	s := newTestSealer(t)

	for _, token := range []string{"", "short", strings.Repeat("!", 40)} {
		if _, err := s.Open(token); err == nil {
			t.Errorf("Open(%q) should fail", token)
		}
	}
}

func TestNewRejectsBadKeys(t *testing.T) {
	if _, err := New("not base64!!!"); err == nil {
		t.Errorf("New() should reject non-base64 keys")
	}
	if _, err := New(base64.StdEncoding.EncodeToString([]byte("tooshort"))); err == nil {
		t.Errorf("New() should reject keys of invalid length")
	}
}
