package auth

import (
	"testing"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !CheckPasswordHash("correct horse battery staple", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPasswordHash("wrong password", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	user := &models.User{
		ID:    "user-1",
		Email: "lecturer@example.edu",
		Role:  models.RoleLecturer,
	}

	token, err := GenerateJWT(secret, user)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	claims, err := ValidateJWT(secret, token)
	if err != nil {
		t.Fatalf("ValidateJWT failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email || claims.Role != user.Role {
		t.Fatalf("claims do not match user: %+v", claims)
	}

	if _, err := ValidateJWT([]byte("other-secret"), token); err == nil {
		t.Fatal("token signed with a different secret was accepted")
	}
	if _, err := ValidateJWT(secret, "not-a-token"); err == nil {
		t.Fatal("malformed token was accepted")
	}
}
