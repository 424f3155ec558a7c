package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/vton-cli/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, statePath string) *StateRepository {
	t.Helper()

	config := viper.New()
	config.Set("state.path", statePath)

	repo, err := NewStateRepository(config)
	require.NoError(t, err)
	return repo
}

func populatedState() domain.State {
	state := domain.NewState()
	state = domain.Reduce(state, domain.UploadStarted{Kind: domain.AssetGarment, Asset: domain.Asset{Filename: "shirt.png", MediaType: domain.MediaTypePNG, Path: "/photos/shirt.png"}})
	state = domain.Reduce(state, domain.UploadSucceeded{Kind: domain.AssetGarment, Descriptor: domain.Descriptor{ID: 11, Image: "/media/cloth_images/shirt.png", UploadedAt: "2026-10-16T09:00:00Z"}})
	state = domain.Reduce(state, domain.UploadStarted{Kind: domain.AssetPerson, Asset: domain.Asset{Filename: "me.jpg", MediaType: domain.MediaTypeJPEG, Path: "/photos/me.jpg"}})
	state = domain.Reduce(state, domain.UploadFailed{Kind: domain.AssetPerson, Message: "Invalid image file."})
	state = domain.Reduce(state, domain.TryOnSucceeded{ResultURL: "http://127.0.0.1:8000/static/finalimg.png"})
	state = domain.Reduce(state, domain.TryOnFailed{Message: "Pipeline error: boom"})
	state = domain.Reduce(state, domain.TryOnRejected{Message: domain.MessageFixAssetErrors})
	state = domain.Reduce(state, domain.HistoryLoaded{Records: []domain.HistoryRecord{
		{ID: 2, GarmentImageRef: "/media/cloth_images/a.png", PersonImageRef: "/media/human_images/b.jpg", GeneratedImageURL: "/media/vton_results/r2.png", CreatedAt: "2026-10-16T10:00:00Z"},
		{ID: 1, GeneratedImageURL: "/media/vton_results/r1.png"},
	}})
	return state
}

func TestStateRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "state.toml"))
	want := populatedState()

	require.NoError(t, repo.Save(context.Background(), want))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStateRepositoryDropsTransientFields(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "state.toml"))
	state := populatedState()
	state = domain.Reduce(state, domain.TryOnStarted{})
	state = domain.Reduce(state, domain.HistoryRequested{})
	state = domain.Reduce(state, domain.GateArmed{At: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)})

	require.NoError(t, repo.Save(context.Background(), state))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, got.Status.Loading)
	assert.False(t, got.History.Loading)
	assert.Equal(t, domain.SkeletonGate{}, got.Gate)
}

func TestStateRepositoryInterruptedUploadLoadsAsFailed(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "state.toml"))
	state := domain.Reduce(domain.NewState(), domain.UploadStarted{Kind: domain.AssetPerson, Asset: domain.Asset{Filename: "me.jpg", MediaType: domain.MediaTypeJPEG, Path: "/photos/me.jpg"}})
	require.NoError(t, repo.Save(context.Background(), state))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SlotFailed, got.Person.Status)
	assert.Equal(t, MessageUploadInterrupted, got.Person.ErrorMessage)
	assert.Nil(t, got.Person.Descriptor)
	require.NotNil(t, got.Person.Asset)
	assert.Equal(t, "/photos/me.jpg", got.Person.Asset.Path)
}

func TestStateRepositoryMissingFileLoadsEmptyState(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "missing", "state.toml"))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.NewState(), got)
}

func TestStateRepositoryUnknownSlotStatusResetsSlot(t *testing.T) {
	t.Parallel()

	statePath := filepath.Join(t.TempDir(), "state.toml")
	require.NoError(t, os.WriteFile(statePath, []byte(strings.Join([]string{
		"version = 1",
		"",
		"[garment]",
		"status = \"processing\"",
		"",
		"[garment.descriptor]",
		"id = 4",
		"image = \"/media/cloth_images/x.png\"",
		"",
	}, "\n")), 0o600))

	got, err := newTestRepository(t, statePath).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.NewAssetSlot(domain.AssetGarment), got.Garment)
}

func TestStateRepositorySaveCreatesDefaultPathAndEnforcesPermissions(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	repo, err := NewStateRepository(viper.New())
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), populatedState()))

	statePath := filepath.Join(homeDir, ".vton", "state.toml")
	assert.Equal(t, statePath, repo.Path())
	info, err := os.Stat(statePath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStateRepositoryMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	statePath := filepath.Join(t.TempDir(), "state.toml")
	require.NoError(t, os.WriteFile(statePath, []byte("garment = ["), 0o600))

	_, err := newTestRepository(t, statePath).Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode state file")
}

func TestStateRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	statePath := filepath.Join(t.TempDir(), "state.toml")
	require.NoError(t, os.WriteFile(statePath, []byte("version = 999\n"), 0o600))

	_, err := newTestRepository(t, statePath).Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported state schema version")
}

func TestStateRepositorySaveCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "state.toml"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, domain.NewState())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestStateRepositorySerializedTOMLIncludesVersion(t *testing.T) {
	t.Parallel()

	statePath := filepath.Join(t.TempDir(), "state.toml")
	require.NoError(t, newTestRepository(t, statePath).Save(context.Background(), populatedState()))

	data, err := os.ReadFile(statePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.NotContains(t, string(data), "loading")
}

func TestStateRepositoryConcurrentSavesAcrossInstancesLeaveValidFile(t *testing.T) {
	t.Parallel()

	statePath := filepath.Join(t.TempDir(), "state.toml")
	repoA := newTestRepository(t, statePath)
	repoB := newTestRepository(t, statePath)

	const perRepoWrites = 50
	start := make(chan struct{})
	errCh := make(chan error, perRepoWrites*2)
	var wg sync.WaitGroup
	wg.Add(2)

	save := func(repo *StateRepository, url string) {
		defer wg.Done()
		<-start
		for i := 0; i < perRepoWrites; i++ {
			errCh <- repo.Save(context.Background(), domain.Reduce(domain.NewState(), domain.TryOnSucceeded{ResultURL: url}))
		}
	}
	go save(repoA, "http://x/a.png")
	go save(repoB, "http://x/b.png")

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	got, err := repoA.Load(context.Background())
	require.NoError(t, err)
	assert.Contains(t, []string{"http://x/a.png", "http://x/b.png"}, got.Result.ResultURL)
}
