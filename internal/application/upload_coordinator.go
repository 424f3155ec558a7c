package application

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/bnema/vton-cli/internal/domain"
	"github.com/bnema/vton-cli/internal/ports"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

type UploadCoordinator struct {
	gate    AuthGate
	api     ports.VTONService
	store   *Store
	metrics ports.Metrics
	clock   clockwork.Clock
	logger  zerolog.Logger

	garmentInFlight atomic.Bool
	personInFlight  atomic.Bool
}

func NewUploadCoordinator(gate AuthGate, api ports.VTONService, store *Store, metrics ports.Metrics, clock clockwork.Clock, logger zerolog.Logger) *UploadCoordinator {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &UploadCoordinator{
		gate:    gate,
		api:     api,
		store:   store,
		metrics: metrics,
		clock:   clock,
		logger:  logger.With().Str("component", "uploads").Logger(),
	}
}

// UploadAsset sends asset to the slot named by kind. Slots are independent.
// While a slot has an upload in flight every other change to it, including a
// rejected file, returns ErrUploadInFlight and leaves the slot alone.
func (c *UploadCoordinator) UploadAsset(ctx context.Context, kind domain.AssetKind, asset domain.Asset) (domain.Descriptor, error) {
	if !kind.Valid() {
		return domain.Descriptor{}, fmt.Errorf("unsupported asset kind %q", kind)
	}

	inFlight := c.inFlight(kind)
	if !inFlight.CompareAndSwap(false, true) {
		return domain.Descriptor{}, domain.ErrUploadInFlight
	}
	defer inFlight.Store(false)

	if !domain.AllowedMediaType(asset.MediaType) {
		c.store.Dispatch(domain.AssetRejected{Kind: kind, Message: domain.MessageInvalidMediaType})
		c.metrics.ObserveUpload(string(kind), ports.OutcomeSkipped, 0)
		c.logger.Debug().Str("kind", string(kind)).Str("media_type", asset.MediaType).Msg("asset rejected")
		return domain.Descriptor{}, domain.ErrInvalidMediaType
	}

	token, err := c.gate.Require()
	if err != nil {
		c.store.Dispatch(domain.UploadFailed{Kind: kind, Message: domain.UserMessage(err)})
		c.metrics.ObserveUpload(string(kind), ports.OutcomeSkipped, 0)
		return domain.Descriptor{}, err
	}

	c.store.Dispatch(domain.UploadStarted{Kind: kind, Asset: asset})
	started := c.clock.Now()

	descriptor, err := c.api.UploadAsset(ctx, token, kind, asset)
	elapsed := c.clock.Since(started)
	if err != nil {
		c.store.Dispatch(domain.UploadFailed{Kind: kind, Message: domain.UserMessage(err)})
		c.metrics.ObserveUpload(string(kind), ports.OutcomeFailure, elapsed)
		c.logger.Warn().Err(err).Str("kind", string(kind)).Msg("upload failed")
		return domain.Descriptor{}, err
	}

	c.store.Dispatch(domain.UploadSucceeded{Kind: kind, Descriptor: descriptor})
	c.metrics.ObserveUpload(string(kind), ports.OutcomeSuccess, elapsed)
	c.logger.Debug().Str("kind", string(kind)).Int64("descriptor_id", descriptor.ID).Dur("elapsed", elapsed).Msg("upload finished")

	return descriptor, nil
}

func (c *UploadCoordinator) ClearAsset(kind domain.AssetKind) error {
	if !kind.Valid() {
		return fmt.Errorf("unsupported asset kind %q", kind)
	}

	inFlight := c.inFlight(kind)
	if !inFlight.CompareAndSwap(false, true) {
		return domain.ErrUploadInFlight
	}
	defer inFlight.Store(false)

	c.store.Dispatch(domain.AssetCleared{Kind: kind})
	return nil
}

func (c *UploadCoordinator) inFlight(kind domain.AssetKind) *atomic.Bool {
	if kind == domain.AssetPerson {
		return &c.personInFlight
	}
	return &c.garmentInFlight
}
