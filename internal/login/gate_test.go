package login

import (
	"errors"
	"testing"

	"TickerBoard/internal/model"
)

func TestConfirm(t *testing.T) {
	g := NewGate("")
	tests := []struct {
		username, password string
		ok                 bool
	}{
		{"alice", "secret", true},
		{"a", "b", true},
		{" ", " ", true},
		{"", "secret", false},
		{"alice", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		dest, err := g.Confirm(tt.username, tt.password)
		if tt.ok {
			if err != nil || dest != DefaultDestination {
				t.Errorf("Confirm(%q, %q) = %q, %v", tt.username, tt.password, dest, err)
			}
			continue
		}
		if dest != "" {
			t.Errorf("Confirm(%q, %q) should not navigate, got %q", tt.username, tt.password, dest)
		}
		var ve *model.ValidationError
		if !errors.As(err, &ve) || ve.Message != MsgMissingFields {
			t.Errorf("Confirm(%q, %q) error = %v", tt.username, tt.password, err)
		}
	}
}

func TestNewGate_CustomDestination(t *testing.T) {
	dest, err := NewGate("dashboard.html").Confirm("u", "p")
	if err != nil || dest != "dashboard.html" {
		t.Errorf("Confirm = %q, %v", dest, err)
	}
}

func TestGatePath(t *testing.T) {
	tests := []struct{ in, dest, path string }{
		{"", DefaultDestination, "/portfolio.html"},
		{"board.html", "board.html", "/board.html"},
		{"/board.html", "board.html", "/board.html"},
	}
	for _, tt := range tests {
		g := NewGate(tt.in)
		if g.Destination != tt.dest || g.Path() != tt.path {
			t.Errorf("NewGate(%q) = %q %q", tt.in, g.Destination, g.Path())
		}
	}
}
