package security

import (
	"errors"
	"testing"
)

func TestHashAndCompare(t *testing.T) {
	// bcrypt minimum cost keeps the test fast
	h := NewPasswordHasher(4)

	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash must not equal the cleartext")
	}

	if err := h.Compare("secret123", hash); err != nil {
		t.Errorf("Compare() error = %v", err)
	}

	err = h.Compare("wrong", hash)
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("Compare() error = %v, want ErrPasswordMismatch", err)
	}
}

func TestHash_EmptyPassword(t *testing.T) {
	h := NewPasswordHasher(4)
	if _, err := h.Hash(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestNewPasswordHasher_InvalidCost(t *testing.T) {
	// out-of-range costs fall back to the bcrypt default; hashing still works
	h := NewPasswordHasher(99)
	if _, err := h.Hash("secret123"); err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
}
