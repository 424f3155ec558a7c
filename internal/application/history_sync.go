package application

import (
	"context"

	"github.com/bnema/vton-cli/internal/domain"
	"github.com/bnema/vton-cli/internal/ports"
	"github.com/rs/zerolog"
)

type HistorySync struct {
	gate    AuthGate
	api     ports.VTONService
	store   *Store
	metrics ports.Metrics
	logger  zerolog.Logger
}

func NewHistorySync(gate AuthGate, api ports.VTONService, store *Store, metrics ports.Metrics, logger zerolog.Logger) *HistorySync {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}

	return &HistorySync{
		gate:    gate,
		api:     api,
		store:   store,
		metrics: metrics,
		logger:  logger.With().Str("component", "history").Logger(),
	}
}

// Refresh fetches the user's history and replaces the local list with it.
// A failure only touches the history error.
func (h *HistorySync) Refresh(ctx context.Context) ([]domain.HistoryRecord, error) {
	token, err := h.gate.Require()
	if err != nil {
		return nil, err
	}

	h.store.Dispatch(domain.HistoryRequested{})

	records, err := h.api.FetchHistory(ctx, token)
	if err != nil {
		h.store.Dispatch(domain.HistoryFailed{Message: domain.UserMessage(err)})
		h.metrics.ObserveHistoryRefresh(ports.OutcomeFailure)
		h.logger.Warn().Err(err).Msg("history refresh failed")
		return nil, err
	}

	h.store.Dispatch(domain.HistoryLoaded{Records: records})
	h.metrics.ObserveHistoryRefresh(ports.OutcomeSuccess)
	h.logger.Debug().Int("records", len(records)).Msg("history refreshed")

	return records, nil
}

// RefreshIfAuthenticated skips the refresh entirely for anonymous sessions.
func (h *HistorySync) RefreshIfAuthenticated(ctx context.Context) (bool, error) {
	if !h.gate.Authenticated() {
		h.metrics.ObserveHistoryRefresh(ports.OutcomeSkipped)
		return false, nil
	}

	_, err := h.Refresh(ctx)
	return true, err
}
