package ports

import "github.com/bnema/vton-cli/internal/domain"

// TokenSource exposes the current credential synchronously. It must not
// perform IO when called.
type TokenSource interface {
	CurrentToken() (domain.Token, bool)
}
