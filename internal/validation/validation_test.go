package validation_test

import (
	"testing"

	"github.com/lynquer/lynquer-api/internal/validation"
)

func TestValidEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"alice@example.com", true},
		{"a@x.co", true},
		{"first.last@example.org", true},
		{"with-dash@my-host.net", true},
		{"", false},
		{"not-an-email", false},
		{"@example.com", false},
		{"alice@", false},
		{"alice@.com", false},
		{"alice example@example.com", false},
	}

	for _, tc := range cases {
		if got := validation.ValidEmail(tc.email); got != tc.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}

func TestValidLength(t *testing.T) {
	cases := []struct {
		s        string
		min, max int
		want     bool
	}{
		{"abc", 3, 25, true},
		{"ab", 3, 25, false},
		{"", 0, 5, true},
		{"exactly-max", 1, 11, true},
		{"one-over-max", 1, 11, false},
		{"Émé", 3, 25, true},
		{"héllo wörld", 1, 11, true},
		{"日本語", 4, 25, false},
	}

	for _, tc := range cases {
		if got := validation.ValidLength(tc.s, tc.min, tc.max); got != tc.want {
			t.Errorf("ValidLength(%q, %d, %d) = %v, want %v", tc.s, tc.min, tc.max, got, tc.want)
		}
	}
}

func TestNumericCode_LengthAndDigits(t *testing.T) {
	code, err := validation.NumericCode(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(code) != 5 {
		t.Fatalf("len = %d, want 5", len(code))
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Fatalf("code %q contains non-digit %q", code, r)
		}
	}
}

func TestNumericCode_ZeroLength(t *testing.T) {
	code, err := validation.NumericCode(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != "" {
		t.Fatalf("code = %q, want empty", code)
	}
}
