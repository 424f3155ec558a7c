package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/bnema/vton-cli/internal/adapters/credentials"
	"github.com/bnema/vton-cli/internal/adapters/metrics"
	filestore "github.com/bnema/vton-cli/internal/adapters/secrets/file"
	"github.com/bnema/vton-cli/internal/domain"
	"github.com/bnema/vton-cli/internal/ports"
	portmocks "github.com/bnema/vton-cli/internal/ports/mocks"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, repo ports.StateRepository) *app {
	t.Helper()

	return &app{
		logger:      zerolog.Nop(),
		credentials: credentials.NewStore(filestore.NewStore(t.TempDir()), ""),
		repo:        repo,
		metrics:     metrics.NewRecorder(),
		sink: func(context.Context) (ports.ArtifactSink, error) {
			return nil, errors.New("no sink in this test")
		},
		clock: clockwork.NewFakeClock(),
	}
}

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	stderr := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetErr(stderr)
	return cmd, stderr
}

func TestSessionRestoresAndPersistsState(t *testing.T) {
	restored := domain.Reduce(domain.NewState(), domain.TryOnSucceeded{ResultURL: "/media/results/a.png"})

	repo := portmocks.NewMockStateRepository(t)
	repo.EXPECT().Load(mock.Anything).Return(restored, nil).Once()
	repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(state domain.State) bool {
		return state.Result.ResultURL == "/media/results/a.png" && state.Garment.Status == domain.SlotIdle
	})).Return(nil).Once()

	cmd, _ := newTestCommand()
	s, err := openSession(cmd, newTestApp(t, repo))
	require.NoError(t, err)
	assert.Equal(t, "/media/results/a.png", s.workflow.State().Result.ResultURL)
	assert.False(t, s.workflow.Authenticated())

	require.NoError(t, s.close(cmd.Context(), nil))
}

func TestSessionCloseJoinsSaveFailure(t *testing.T) {
	repo := portmocks.NewMockStateRepository(t)
	repo.EXPECT().Load(mock.Anything).Return(domain.NewState(), nil).Once()
	repo.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	cmd, _ := newTestCommand()
	s, err := openSession(cmd, newTestApp(t, repo))
	require.NoError(t, err)

	commandErr := errors.New("try-on failed")
	err = s.close(cmd.Context(), commandErr)
	require.ErrorIs(t, err, commandErr)
	assert.ErrorContains(t, err, "save workflow state: disk full")
}

func TestOpenSessionLoadFailure(t *testing.T) {
	repo := portmocks.NewMockStateRepository(t)
	repo.EXPECT().Load(mock.Anything).Return(domain.State{}, errors.New("decode state file: bad toml")).Once()

	cmd, _ := newTestCommand()
	_, err := openSession(cmd, newTestApp(t, repo))
	assert.ErrorContains(t, err, "load workflow state")
}

func TestCLINotifier(t *testing.T) {
	out := &bytes.Buffer{}
	notifier := cliNotifier{out: out}

	notifier.Notify(ports.Notice{Level: ports.NoticeWarning, Message: domain.MessageDownloadFallback})
	notifier.Shake()

	assert.Contains(t, out.String(), "warning: "+domain.MessageDownloadFallback)
	assert.Contains(t, out.String(), "vton auth set")
}

func TestLazySinkPropagatesResolveError(t *testing.T) {
	sink := lazySink{resolve: func(context.Context) (ports.ArtifactSink, error) {
		return nil, errors.New("wire s3 sink: missing region")
	}}

	_, err := sink.Save(context.Background(), nil, "a.png")
	assert.ErrorContains(t, err, "missing region")
}
