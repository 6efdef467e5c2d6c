package validate

import (
	"errors"
	"testing"

	"github.com/dreamshare/dreams-backend/internal/model"
)

func TestSignup(t *testing.T) {
	cases := []struct {
		name  string
		uname string
		email string
		pass  string
		ok    bool
	}{
		{"valid", "Ana", "ana@x.com", "secret1", true},
		{"empty name", "", "ana@x.com", "secret1", false},
		{"bad email", "Ana", "not-an-email", "secret1", false},
		{"short password", "Ana", "ana@x.com", "abc", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Signup(tc.uname, tc.email, tc.pass)
			if tc.ok && err != nil {
				t.Fatalf("want ok, got %v", err)
			}
			if !tc.ok {
				if !errors.Is(err, model.ErrValidation) {
					t.Fatalf("want ErrValidation, got %v", err)
				}
			}
		})
	}
}

func TestDream(t *testing.T) {
	if err := Dream("Fly", "I dreamed of flying"); err != nil {
		t.Fatalf("want ok, got %v", err)
	}
	if err := Dream("", "I dreamed of flying"); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("empty title: want ErrValidation, got %v", err)
	}
	// Description must be at least 5 characters.
	if err := Dream("Fly", "tiny"); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("short description: want ErrValidation, got %v", err)
	}
	if err := Dream("Fly", "12345"); err != nil {
		t.Fatalf("5-char description must pass, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	if err := Login("ana@x.com", "secret1"); err != nil {
		t.Fatalf("want ok, got %v", err)
	}
	if err := Login("ana@x.com", ""); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("empty password: want ErrValidation, got %v", err)
	}
}
