package ports

import (
	"context"

	"github.com/bnema/vton-cli/internal/domain"
)

type StateRepository interface {
	Load(ctx context.Context) (domain.State, error)
	Save(ctx context.Context, state domain.State) error
}
