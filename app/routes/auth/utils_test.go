package auth

import (
	"strings"
	"testing"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("festival-secret-1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "festival-secret-1" {
		t.Fatal("hash must not equal the plaintext password")
	}
	if !CheckPasswordHash("festival-secret-1", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("festival-secret-2", hash) {
		t.Error("wrong password accepted")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("user-1", "jury@example.com", "Jane", "Doe", []string{"jury"})
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "jury@example.com" {
		t.Errorf("claims mismatch: %+v", claims)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "jury" {
		t.Errorf("roles mismatch: %v", claims.Roles)
	}
}

func TestJWTRejectsTampering(t *testing.T) {
	token, err := GenerateJWT("user-1", "jury@example.com", "Jane", "Doe", []string{"jury"})
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	tampered := token[:strings.LastIndex(token, ".")+1] + "forgedsignature"
	if _, err := ValidateJWT(tampered); err == nil {
		t.Error("tampered token validated")
	}
}
