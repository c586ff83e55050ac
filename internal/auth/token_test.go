package auth

import (
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestSignAndParseToken(t *testing.T) {
	token, err := SignToken("member@iu.edu", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("SignToken failed: %v", err)
	}

	email, err := ParseToken(token, testSecret)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if email != "member@iu.edu" {
		t.Errorf("Expected member@iu.edu, got %s", email)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := SignToken("member@iu.edu", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("SignToken failed: %v", err)
	}

	if _, err := ParseToken(token, "other-secret"); err == nil {
		t.Error("Expected error for token signed with a different secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	token, err := SignToken("member@iu.edu", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("SignToken failed: %v", err)
	}

	if _, err := ParseToken(token, testSecret); err == nil {
		t.Error("Expected error for expired token")
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, err := ParseToken("not.a.token", testSecret); err == nil {
		t.Error("Expected error for malformed token")
	}
}
