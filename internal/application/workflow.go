package application

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/vton-cli/internal/domain"
	"github.com/bnema/vton-cli/internal/ports"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

type Dependencies struct {
	Tokens         ports.TokenSource
	API            ports.VTONService
	Fetcher        ports.ArtifactFetcher
	Staging        ports.ArtifactStaging
	Sink           ports.ArtifactSink
	Notifier       ports.Notifier
	Metrics        ports.Metrics
	Clock          clockwork.Clock
	Logger         zerolog.Logger
	MinimumDisplay time.Duration
	Initial        *domain.State
}

// Workflow owns the state store and every component that mutates it. Close
// is the teardown: it cancels the skeleton timer and waits for background
// history refreshes.
type Workflow struct {
	store     *Store
	gate      AuthGate
	uploads   *UploadCoordinator
	timer     *PresentationTimer
	history   *HistorySync
	tryOn     *TryOnOrchestrator
	downloads *ArtifactDownloader

	closeOnce sync.Once
}

func NewWorkflow(deps Dependencies) *Workflow {
	initial := domain.NewState()
	if deps.Initial != nil {
		initial = *deps.Initial
	}
	if deps.Metrics == nil {
		deps.Metrics = ports.NopMetrics{}
	}
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}

	store := NewStore(initial)
	store.Subscribe(func(event domain.Event, _ domain.State) {
		deps.Logger.Trace().Str("event", eventName(event)).Msg("state transition")
	})

	gate := NewAuthGate(deps.Tokens)
	timer := NewPresentationTimer(deps.Clock, deps.MinimumDisplay, store)
	history := NewHistorySync(gate, deps.API, store, deps.Metrics, deps.Logger)

	return &Workflow{
		store:     store,
		gate:      gate,
		uploads:   NewUploadCoordinator(gate, deps.API, store, deps.Metrics, deps.Clock, deps.Logger),
		timer:     timer,
		history:   history,
		tryOn:     NewTryOnOrchestrator(gate, deps.API, store, timer, history, deps.Notifier, deps.Metrics, deps.Clock, deps.Logger),
		downloads: NewArtifactDownloader(deps.Fetcher, deps.Staging, deps.Sink, deps.Notifier, deps.Metrics, deps.Logger),
	}
}

func (w *Workflow) State() domain.State {
	return w.store.State()
}

func (w *Workflow) Authenticated() bool {
	return w.gate.Authenticated()
}

func (w *Workflow) UploadAsset(ctx context.Context, kind domain.AssetKind, asset domain.Asset) (domain.Descriptor, error) {
	return w.uploads.UploadAsset(ctx, kind, asset)
}

func (w *Workflow) ClearAsset(kind domain.AssetKind) error {
	return w.uploads.ClearAsset(kind)
}

func (w *Workflow) TryOn(ctx context.Context) (domain.CompositionResult, error) {
	return w.tryOn.TryOn(ctx)
}

func (w *Workflow) ClearError() {
	w.tryOn.ClearError()
}

func (w *Workflow) RefreshHistory(ctx context.Context) ([]domain.HistoryRecord, error) {
	return w.history.Refresh(ctx)
}

func (w *Workflow) RefreshHistoryIfAuthenticated(ctx context.Context) (bool, error) {
	return w.history.RefreshIfAuthenticated(ctx)
}

func (w *Workflow) Download(ctx context.Context, sourceURL, suggestedFilename string) (string, error) {
	return w.downloads.Download(ctx, sourceURL, suggestedFilename)
}

// SkeletonDone is closed once the loading placeholder may be hidden.
func (w *Workflow) SkeletonDone() <-chan struct{} {
	return w.timer.Done()
}

func (w *Workflow) SkeletonVisible() bool {
	return w.timer.Visible()
}

// WaitBackground blocks until history refreshes triggered by try-on finish.
func (w *Workflow) WaitBackground() {
	w.tryOn.Wait()
}

func (w *Workflow) Close() {
	w.closeOnce.Do(func() {
		w.timer.Stop()
		w.tryOn.Wait()
	})
}

func eventName(event domain.Event) string {
	switch event.(type) {
	case domain.UploadStarted:
		return "upload_started"
	case domain.UploadSucceeded:
		return "upload_succeeded"
	case domain.UploadFailed:
		return "upload_failed"
	case domain.AssetRejected:
		return "asset_rejected"
	case domain.AssetCleared:
		return "asset_cleared"
	case domain.TryOnRejected:
		return "tryon_rejected"
	case domain.TryOnStarted:
		return "tryon_started"
	case domain.TryOnSucceeded:
		return "tryon_succeeded"
	case domain.TryOnFailed:
		return "tryon_failed"
	case domain.ErrorCleared:
		return "error_cleared"
	case domain.HistoryRequested:
		return "history_requested"
	case domain.HistoryLoaded:
		return "history_loaded"
	case domain.HistoryFailed:
		return "history_failed"
	case domain.GateArmed:
		return "gate_armed"
	case domain.GateClosed:
		return "gate_closed"
	default:
		return "unknown"
	}
}
