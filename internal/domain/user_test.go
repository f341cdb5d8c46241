package domain_test

import (
	"testing"

	"github.com/lynquer/lynquer-api/internal/domain"
)

func TestNewUser_DerivesUsernameFromEmail(t *testing.T) {
	u, err := domain.NewUser("Alice", "Alice.Smith@Example.COM", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if u.Email != "alice.smith@example.com" {
		t.Errorf("email = %q, want normalized lower-case", u.Email)
	}
	if u.Username != "alice.smith" {
		t.Errorf("username = %q, want %q", u.Username, "alice.smith")
	}
}

func TestNewUser_HashesPassword(t *testing.T) {
	u, err := domain.NewUser("Alice", "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if u.PasswordHash == "secret1" {
		t.Fatal("password stored in plaintext")
	}
	if !u.CheckPassword("secret1") {
		t.Error("CheckPassword rejects the original password")
	}
	if u.CheckPassword("wrong") {
		t.Error("CheckPassword accepts a wrong password")
	}
}

func TestUsernameFromEmail(t *testing.T) {
	cases := []struct {
		email string
		want  string
	}{
		{"a@x.com", "a"},
		{"Bob@x.com", "bob"},
		{"first.last@sub.example.org", "first.last"},
		{"noat", "noat"},
	}

	for _, tc := range cases {
		if got := domain.UsernameFromEmail(tc.email); got != tc.want {
			t.Errorf("UsernameFromEmail(%q) = %q, want %q", tc.email, got, tc.want)
		}
	}
}
