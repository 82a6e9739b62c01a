package service_test

import (
	"testing"

	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/service"
)

func TestCanonicalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "User@Example.COM", "user@example.com"},
		{"trims whitespace", "  user@example.com ", "user@example.com"},
		{"gmail strips dots", "first.last@gmail.com", "firstlast@gmail.com"},
		{"gmail strips plus suffix", "user+tag@gmail.com", "user@gmail.com"},
		{"googlemail same rules", "f.o.o+x@googlemail.com", "foo@googlemail.com"},
		{"other domains keep dots", "first.last@example.com", "first.last@example.com"},
		{"other domains keep plus", "user+tag@example.com", "user+tag@example.com"},
		{"no at sign", "not-an-email", "not-an-email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := service.CanonicalizeEmail(tt.input); got != tt.want {
				t.Fatalf("CanonicalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
