package application

import (
	"context"
	"sync"

	"github.com/bnema/vton-cli/internal/domain"
	"github.com/bnema/vton-cli/internal/ports"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const tryOnFlightKey = "tryon"

type TryOnOrchestrator struct {
	gate     AuthGate
	api      ports.VTONService
	store    *Store
	timer    *PresentationTimer
	history  *HistorySync
	notifier ports.Notifier
	metrics  ports.Metrics
	clock    clockwork.Clock
	logger   zerolog.Logger

	flight    singleflight.Group
	refreshes sync.WaitGroup
}

func NewTryOnOrchestrator(
	gate AuthGate,
	api ports.VTONService,
	store *Store,
	timer *PresentationTimer,
	history *HistorySync,
	notifier ports.Notifier,
	metrics ports.Metrics,
	clock clockwork.Clock,
	logger zerolog.Logger,
) *TryOnOrchestrator {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &TryOnOrchestrator{
		gate:     gate,
		api:      api,
		store:    store,
		timer:    timer,
		history:  history,
		notifier: notifier,
		metrics:  metrics,
		clock:    clock,
		logger:   logger.With().Str("component", "tryon").Logger(),
	}
}

// TryOn validates both slots and requests a composition. Concurrent calls
// share one in-flight request and its outcome.
func (o *TryOnOrchestrator) TryOn(ctx context.Context) (domain.CompositionResult, error) {
	value, err, shared := o.flight.Do(tryOnFlightKey, func() (any, error) {
		return o.run(ctx)
	})
	if shared {
		o.logger.Debug().Msg("joined in-flight try-on")
	}

	result, _ := value.(domain.CompositionResult)
	return result, err
}

// Wait blocks until history refreshes started by successful runs finish.
func (o *TryOnOrchestrator) Wait() {
	o.refreshes.Wait()
}

func (o *TryOnOrchestrator) run(ctx context.Context) (domain.CompositionResult, error) {
	token, err := o.gate.Require()
	if err != nil {
		o.notifier.Shake()
		o.metrics.ObserveComposition(ports.OutcomeSkipped, 0)
		return domain.CompositionResult{}, err
	}

	state := o.store.State()
	if message := preconditionMessage(state.Garment, state.Person); message != "" {
		o.store.Dispatch(domain.TryOnRejected{Message: message})
		o.metrics.ObserveComposition(ports.OutcomeSkipped, 0)
		return domain.CompositionResult{}, domain.NewError(domain.KindIncompletePrecondition, message, nil)
	}

	req := ports.ComposeRequest{
		Garment:           *state.Garment.Asset,
		GarmentDescriptor: *state.Garment.Descriptor,
		Person:            *state.Person.Asset,
		PersonDescriptor:  *state.Person.Descriptor,
	}

	o.store.Dispatch(domain.TryOnStarted{})
	o.timer.Arm()
	started := o.clock.Now()

	result, err := o.api.Compose(ctx, token, req)
	elapsed := o.clock.Since(started)
	if err != nil {
		o.store.Dispatch(domain.TryOnFailed{Message: domain.UserMessage(err)})
		o.timer.LoadingDone()
		o.metrics.ObserveComposition(ports.OutcomeFailure, elapsed)
		o.logger.Warn().Err(err).Dur("elapsed", elapsed).Msg("composition failed")
		return domain.CompositionResult{}, err
	}

	o.store.Dispatch(domain.TryOnSucceeded{ResultURL: result.ResultURL})
	o.timer.LoadingDone()
	o.metrics.ObserveComposition(ports.OutcomeSuccess, elapsed)
	o.logger.Info().Str("result_url", result.ResultURL).Dur("elapsed", elapsed).Msg("composition finished")

	o.refreshHistory(ctx)

	return result, nil
}

func (o *TryOnOrchestrator) refreshHistory(ctx context.Context) {
	if o.history == nil {
		return
	}

	bg := context.WithoutCancel(ctx)
	o.refreshes.Add(1)
	go func() {
		defer o.refreshes.Done()
		if _, err := o.history.Refresh(bg); err != nil {
			o.logger.Debug().Err(err).Msg("post try-on history refresh failed")
		}
	}()
}

// preconditionMessage returns the single message shown when the slots cannot
// feed a composition, or "" when both are ready.
func preconditionMessage(garment, person domain.AssetSlot) string {
	if garment.Status == domain.SlotFailed || person.Status == domain.SlotFailed ||
		garment.ErrorMessage != "" || person.ErrorMessage != "" {
		return domain.MessageFixAssetErrors
	}
	if !garment.Ready() || !person.Ready() {
		return domain.MessageMissingAssets
	}
	return ""
}

func (o *TryOnOrchestrator) ClearError() {
	o.store.Dispatch(domain.ErrorCleared{})
}

type nopNotifier struct{}

func (nopNotifier) Shake()              {}
func (nopNotifier) Notify(ports.Notice) {}
