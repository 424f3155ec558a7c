package application

import (
	"strings"

	"github.com/bnema/vton-cli/internal/domain"
	"github.com/bnema/vton-cli/internal/ports"
)

// AuthGate guards every remote call. It never performs IO.
type AuthGate struct {
	tokens ports.TokenSource
}

func NewAuthGate(tokens ports.TokenSource) AuthGate {
	return AuthGate{tokens: tokens}
}

func (g AuthGate) Require() (domain.Token, error) {
	if g.tokens == nil {
		return "", domain.ErrUnauthenticated
	}

	token, ok := g.tokens.CurrentToken()
	if !ok || strings.TrimSpace(string(token)) == "" {
		return "", domain.ErrUnauthenticated
	}

	return token, nil
}

func (g AuthGate) Authenticated() bool {
	_, err := g.Require()
	return err == nil
}
