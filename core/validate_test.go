package core

import "testing"

func TestValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{name: "plain address", email: "a@x.com", want: true},
		{name: "dotted local part", email: "first.last@example.org", want: true},
		{name: "plus tag", email: "user+tag@example.org", want: true},
		{name: "empty", email: "", want: false},
		{name: "no at sign", email: "not-an-email", want: false},
		{name: "missing domain", email: "user@", want: false},
		{name: "missing local part", email: "@example.org", want: false},
		{name: "display name form rejected", email: "User <user@example.org>", want: false},
		{name: "embedded spaces", email: "us er@example.org", want: false},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := ValidEmail(test.email); got != test.want {
				t.Errorf("ValidEmail(%q) = %v, want %v", test.email, got, test.want)
			}
		})
	}
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "three letters", input: "abc", want: true},
		{name: "letters and digits", input: "abc123", want: true},
		{name: "allowed punctuation", input: "a-b_c. d", want: true},
		{name: "two characters too short", input: "ab", want: false},
		{name: "empty", input: "", want: false},
		{name: "leading digit", input: "1abc", want: false},
		{name: "leading space", input: " abc", want: false},
		{name: "disallowed character", input: "abc!", want: false},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := ValidName(test.input); got != test.want {
				t.Errorf("ValidName(%q) = %v, want %v", test.input, got, test.want)
			}
		})
	}
}
