// Package login gates navigation to the portfolio page. It performs no authentication.
package login

import (
	"strings"

	"TickerBoard/internal/model"
)

const (
	DefaultDestination = "portfolio.html"
	MsgMissingFields   = "Please enter both username and password."
)

// Gate checks that both login fields were filled in.
type Gate struct {
	Destination string
}

// NewGate creates a Gate. An empty destination falls back to DefaultDestination.
func NewGate(destination string) *Gate {
	destination = strings.TrimPrefix(destination, "/")
	if destination == "" {
		destination = DefaultDestination
	}
	return &Gate{Destination: destination}
}

// Path is the destination as an absolute URL path.
func (g *Gate) Path() string {
	return "/" + g.Destination
}

// Confirm returns the page to navigate to when both fields are non-empty.
// Values are used as entered; no trimming is applied.
func (g *Gate) Confirm(username, password string) (string, error) {
	switch {
	case username == "":
		return "", &model.ValidationError{Field: "username", Message: MsgMissingFields}
	case password == "":
		return "", &model.ValidationError{Field: "password", Message: MsgMissingFields}
	}
	return g.Destination, nil
}
