package auth

import (
	"testing"
	"time"
)

func TestJWTTokenService_RoundTrip(t *testing.T) {
	svc := NewJWTTokenService("secret", time.Hour)

	token, err := svc.Generate("user-42")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	sub, err := svc.Decode(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sub != "user-42" {
		t.Fatalf("expected subject user-42, got %s", sub)
	}
}

func TestJWTTokenService_WrongSecret(t *testing.T) {
	token, err := NewJWTTokenService("secret-a", time.Hour).Generate("u1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := NewJWTTokenService("secret-b", time.Hour).Decode(token); err == nil {
		t.Fatal("expected decode failure with wrong secret")
	}
}

func TestJWTTokenService_Expired(t *testing.T) {
	// Bypass the constructor's TTL floor to sign an already expired token.
	expired := &JWTTokenService{secret: []byte("secret"), ttl: -time.Minute}
	token, err := expired.Generate("u1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := NewJWTTokenService("secret", time.Hour).Decode(token); err == nil {
		t.Fatal("expected decode failure for expired token")
	}
}

func TestJWTTokenService_ZeroTTLDefaults(t *testing.T) {
	svc := NewJWTTokenService("secret", 0)
	if svc.ttl != 24*time.Hour {
		t.Fatalf("expected 24h default, got %v", svc.ttl)
	}
}

func TestJWTTokenService_Garbage(t *testing.T) {
	svc := NewJWTTokenService("secret", time.Hour)

	for _, token := range []string{"", "nope", "a.b.c"} {
		if _, err := svc.Decode(token); err == nil {
			t.Fatalf("expected decode failure for %q", token)
		}
	}
}
