package ports

import (
	"context"

	"github.com/bnema/vton-cli/internal/domain"
)

type ComposeRequest struct {
	Garment           domain.Asset
	GarmentDescriptor domain.Descriptor
	Person            domain.Asset
	PersonDescriptor  domain.Descriptor
}

// VTONService is the remote processing service. Failures are *domain.Error
// values of kind server or network.
type VTONService interface {
	UploadAsset(ctx context.Context, token domain.Token, kind domain.AssetKind, asset domain.Asset) (domain.Descriptor, error)
	Compose(ctx context.Context, token domain.Token, req ComposeRequest) (domain.CompositionResult, error)
	FetchHistory(ctx context.Context, token domain.Token) ([]domain.HistoryRecord, error)
}
