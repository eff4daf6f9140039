package token

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret-at-least-16-chars!!"

func TestNewProvider_ShortSecret(t *testing.T) {
	if _, err := NewProvider("short", "chirper", time.Hour); err == nil {
		t.Fatal("expected error for short secret")
	}
}

func TestCreateAndValidate(t *testing.T) {
	p, err := NewProvider(testSecret, "chirper", time.Hour)
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}

	signed, tokenID, err := p.CreateToken(42, "jack@example.com", "USER")
	if err != nil {
		t.Fatalf("CreateToken() error = %v", err)
	}
	if tokenID == "" {
		t.Error("empty token ID")
	}

	claims, err := p.Validate(signed)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.Subject != "jack@example.com" {
		t.Errorf("Subject = %q", claims.Subject)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d", claims.UserID)
	}
	if claims.Role != "USER" {
		t.Errorf("Role = %q", claims.Role)
	}
	if claims.ID != tokenID {
		t.Errorf("claims.ID = %q, want %q", claims.ID, tokenID)
	}
}

func TestValidate_TamperedToken(t *testing.T) {
	p, _ := NewProvider(testSecret, "chirper", time.Hour)
	signed, _, _ := p.CreateToken(1, "jack@example.com", "USER")

	parts := strings.Split(signed, ".")
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]
	if _, err := p.Validate(tampered); err == nil {
		t.Fatal("expected error for tampered signature")
	}
}

func TestValidate_WrongIssuer(t *testing.T) {
	minting, _ := NewProvider(testSecret, "other-app", time.Hour)
	checking, _ := NewProvider(testSecret, "chirper", time.Hour)

	signed, _, _ := minting.CreateToken(1, "jack@example.com", "USER")
	if _, err := checking.Validate(signed); err == nil {
		t.Fatal("expected error for foreign issuer")
	}
}

func TestValidate_Expired(t *testing.T) {
	p, _ := NewProvider(testSecret, "chirper", time.Nanosecond)
	signed, _, _ := p.CreateToken(1, "jack@example.com", "USER")

	time.Sleep(10 * time.Millisecond)
	if _, err := p.Validate(signed); err == nil {
		t.Fatal("expected error for expired token")
	}
}
