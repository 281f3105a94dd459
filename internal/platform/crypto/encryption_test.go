package crypto

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestSealerRoundTrip(t *testing.T) {
	s, err := New(strings.Repeat("ab", 32))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Configured() {
		t.Fatal("expected sealer to be configured")
	}

	plain := []byte("PK archive bytes")
	sealed, err := s.Encrypt(plain)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if bytes.Contains(sealed, plain) {
		t.Fatal("expected ciphertext not to contain plaintext")
	}
	opened, err := s.Decrypt(sealed)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if !bytes.Equal(opened, plain) {
		t.Fatalf("expected %q, got %q", plain, opened)
	}
}

func TestSealerWithoutKeyPassesThrough(t *testing.T) {
	s, err := New("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Configured() {
		t.Fatal("expected unconfigured sealer")
	}
	out, err := s.Encrypt([]byte("plain"))
	if err != nil || string(out) != "plain" {
		t.Fatalf("expected passthrough, got %q (%v)", out, err)
	}
}

func TestNewRejectsShortKey(t *testing.T) {
	if _, err := New("too-short"); err == nil {
		t.Fatal("expected error for short key")
	}
}

func TestDecryptRejectsTruncatedInput(t *testing.T) {
	s, err := New(strings.Repeat("0f", 32))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Decrypt([]byte("abc")); !errors.Is(err, ErrCiphertextTooShort) {
		t.Fatalf("expected short ciphertext error, got %v", err)
	}
}
