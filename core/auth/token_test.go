package auth

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateToken("u1", "alice")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != "u1" || claims.Username != "alice" {
		t.Fatalf("ParseToken() claims = %q/%q, want u1/alice", claims.UserID, claims.Username)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	SetJWTSecret("test-secret")

	if _, err := ParseToken("not.a.token"); err == nil {
		t.Fatal("ParseToken() accepted a malformed token")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !CheckPasswordHash("hunter2", hash) {
		t.Fatal("CheckPasswordHash() rejected the correct password")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatal("CheckPasswordHash() accepted a wrong password")
	}
}
