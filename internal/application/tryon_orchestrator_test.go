package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bnema/vton-cli/internal/domain"
	"github.com/bnema/vton-cli/internal/ports"
	"github.com/bnema/vton-cli/internal/ports/mocks"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type tryOnFixture struct {
	orchestrator *TryOnOrchestrator
	api          *mocks.MockVTONService
	notifier     *mocks.MockNotifier
	store        *Store
	timer        *PresentationTimer
	clock        *clockwork.FakeClock
	metrics      *recordingMetrics
}

func newTryOnFixture(t *testing.T, token staticTokens, initial domain.State) tryOnFixture {
	t.Helper()

	api := mocks.NewMockVTONService(t)
	notifier := mocks.NewMockNotifier(t)
	clock := clockwork.NewFakeClock()
	store := NewStore(initial)
	metrics := &recordingMetrics{}
	gate := NewAuthGate(token)
	timer := NewPresentationTimer(clock, DefaultMinimumDisplay, store)
	history := NewHistorySync(gate, api, store, metrics, zerolog.Nop())
	orchestrator := NewTryOnOrchestrator(gate, api, store, timer, history, notifier, metrics, clock, zerolog.Nop())
	t.Cleanup(timer.Stop)

	return tryOnFixture{
		orchestrator: orchestrator,
		api:          api,
		notifier:     notifier,
		store:        store,
		timer:        timer,
		clock:        clock,
		metrics:      metrics,
	}
}

func expectedComposeRequest() ports.ComposeRequest {
	return ports.ComposeRequest{
		Garment:           garmentAsset,
		GarmentDescriptor: garmentDescriptor,
		Person:            personAsset,
		PersonDescriptor:  personDescriptor,
	}
}

func TestTryOnWithoutTokenShakesAndSkipsService(t *testing.T) {
	f := newTryOnFixture(t, "", readyState())
	f.notifier.EXPECT().Shake().Return().Once()

	_, err := f.orchestrator.TryOn(context.Background())
	require.ErrorIs(t, err, domain.ErrUnauthenticated)

	state := f.store.State()
	assert.False(t, state.Status.Loading)
	assert.Empty(t, state.Validation)
	assert.False(t, f.timer.Visible())
	f.api.AssertNotCalled(t, "Compose", mock.Anything, mock.Anything, mock.Anything)
}

func TestTryOnPreconditions(t *testing.T) {
	failedGarment := func(s domain.State) domain.State {
		return domain.Reduce(s, domain.UploadFailed{Kind: domain.AssetGarment, Message: "Invalid image file."})
	}

	tests := []struct {
		name    string
		state   func() domain.State
		message string
	}{
		{
			name:    "nothing uploaded",
			state:   domain.NewState,
			message: domain.MessageMissingAssets,
		},
		{
			name: "only garment uploaded",
			state: func() domain.State {
				s := domain.Reduce(domain.NewState(), domain.UploadStarted{Kind: domain.AssetGarment, Asset: garmentAsset})
				return domain.Reduce(s, domain.UploadSucceeded{Kind: domain.AssetGarment, Descriptor: garmentDescriptor})
			},
			message: domain.MessageMissingAssets,
		},
		{
			name: "person still uploading",
			state: func() domain.State {
				s := domain.Reduce(readyState(), domain.UploadStarted{Kind: domain.AssetPerson, Asset: personAsset})
				return s
			},
			message: domain.MessageMissingAssets,
		},
		{
			name:    "garment failed while person ready",
			state:   func() domain.State { return failedGarment(readyState()) },
			message: domain.MessageFixAssetErrors,
		},
		{
			name: "garment failed and person missing",
			state: func() domain.State {
				return failedGarment(domain.NewState())
			},
			message: domain.MessageFixAssetErrors,
		},
		{
			name: "person rejected for media type",
			state: func() domain.State {
				return domain.Reduce(readyState(), domain.AssetRejected{Kind: domain.AssetPerson, Message: domain.MessageInvalidMediaType})
			},
			message: domain.MessageFixAssetErrors,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTryOnFixture(t, "tok", tt.state())

			_, err := f.orchestrator.TryOn(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrIncompletePrecondition)
			assert.Equal(t, tt.message, domain.UserMessage(err))

			state := f.store.State()
			assert.Equal(t, tt.message, state.Validation)
			assert.False(t, state.Status.Loading)
			assert.False(t, f.timer.Visible())
			f.api.AssertNotCalled(t, "Compose", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTryOnSuccessStoresResultAndRefreshesHistoryOnce(t *testing.T) {
	initial := domain.Reduce(readyState(), domain.HistoryLoaded{Records: []domain.HistoryRecord{{ID: 1}}})
	f := newTryOnFixture(t, "tok", initial)

	result := domain.CompositionResult{ResultURL: "http://127.0.0.1:8000/media/results/out.png"}
	records := []domain.HistoryRecord{
		{ID: 7, GarmentImageRef: "/media/cloth_images/shirt.png", PersonImageRef: "/media/human_images/me.jpg", GeneratedImageURL: result.ResultURL},
		{ID: 1},
	}
	f.api.EXPECT().Compose(mockAnyContext(), domain.Token("tok"), expectedComposeRequest()).Return(result, nil).Once()
	f.api.EXPECT().FetchHistory(mockAnyContext(), domain.Token("tok")).Return(records, nil).Once()

	got, err := f.orchestrator.TryOn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, result, got)

	f.orchestrator.Wait()

	state := f.store.State()
	assert.Equal(t, result.ResultURL, state.Result.ResultURL)
	assert.False(t, state.Status.Loading)
	assert.Equal(t, records, state.History.Records)
	f.api.AssertNumberOfCalls(t, "FetchHistory", 1)

	assert.True(t, f.timer.Visible(), "the skeleton stays up for the minimum window")
	f.clock.Advance(DefaultMinimumDisplay)
	require.Eventually(t, func() bool { return !f.store.State().Gate.Visible }, testWait, testTick)
}

func TestTryOnFailureSetsStatusError(t *testing.T) {
	f := newTryOnFixture(t, "tok", readyState())
	serverErr := &domain.Error{Kind: domain.KindServer, Message: "Pipeline error: out of memory", StatusCode: 500}
	f.api.EXPECT().Compose(mockAnyContext(), domain.Token("tok"), expectedComposeRequest()).Return(domain.CompositionResult{}, serverErr).Once()

	_, err := f.orchestrator.TryOn(context.Background())
	require.ErrorIs(t, err, domain.ErrServer)
	f.orchestrator.Wait()

	state := f.store.State()
	assert.False(t, state.Status.Loading)
	assert.Equal(t, "Pipeline error: out of memory", state.Status.Error)
	assert.Empty(t, state.Result.ResultURL)
	f.api.AssertNotCalled(t, "FetchHistory", mock.Anything, mock.Anything)
	assert.Contains(t, f.metrics.snapshot(), recordedObservation{name: "composition", outcome: ports.OutcomeFailure})

	f.orchestrator.ClearError()
	assert.Empty(t, f.store.State().Status.Error)
}

func TestTryOnKeepsPreviousResultOnFailure(t *testing.T) {
	initial := domain.Reduce(readyState(), domain.TryOnSucceeded{ResultURL: "http://x/old.png"})
	f := newTryOnFixture(t, "tok", initial)
	f.api.EXPECT().Compose(mockAnyContext(), domain.Token("tok"), expectedComposeRequest()).
		Return(domain.CompositionResult{}, &domain.Error{Kind: domain.KindNetwork, Message: "Network Error"}).Once()

	_, err := f.orchestrator.TryOn(context.Background())
	require.ErrorIs(t, err, domain.ErrNetwork)
	assert.Equal(t, "http://x/old.png", f.store.State().Result.ResultURL)
}

func TestTryOnConcurrentCallsShareOneRequest(t *testing.T) {
	f := newTryOnFixture(t, "tok", readyState())

	started := make(chan struct{})
	release := make(chan struct{})
	result := domain.CompositionResult{ResultURL: "http://x/once.png"}
	f.api.EXPECT().Compose(mockAnyContext(), domain.Token("tok"), expectedComposeRequest()).
		RunAndReturn(func(context.Context, domain.Token, ports.ComposeRequest) (domain.CompositionResult, error) {
			close(started)
			<-release
			return result, nil
		}).Once()
	f.api.EXPECT().FetchHistory(mockAnyContext(), domain.Token("tok")).Return([]domain.HistoryRecord{}, nil).Once()

	const callers = 4
	results := make([]domain.CompositionResult, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = f.orchestrator.TryOn(context.Background())
	}()
	<-started

	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.orchestrator.TryOn(context.Background())
		}(i)
	}

	// Give the late callers time to join the in-flight request.
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()
	f.orchestrator.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, result, results[i])
	}
	f.api.AssertNumberOfCalls(t, "Compose", 1)
	f.api.AssertNumberOfCalls(t, "FetchHistory", 1)
}

func TestPreconditionMessage(t *testing.T) {
	ready := readyState()
	assert.Empty(t, preconditionMessage(ready.Garment, ready.Person))
	assert.Equal(t, domain.MessageMissingAssets, preconditionMessage(domain.NewAssetSlot(domain.AssetGarment), ready.Person))

	withError := ready.Person
	withError.ErrorMessage = "stale"
	assert.Equal(t, domain.MessageFixAssetErrors, preconditionMessage(ready.Garment, withError))
}
