package chain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	filestore "github.com/bnema/vton-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/vton-cli/internal/adapters/secrets/pass"
	"github.com/bnema/vton-cli/internal/ports"
	portmocks "github.com/bnema/vton-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const tokenKey = "vton/default/token"

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, tokenKey).Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, tokenKey).Return("", passstore.ErrUnavailable).Once()
	fallback.EXPECT().Get(mock.Anything, tokenKey).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetNotFoundInBothBackends(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, tokenKey).Return("", fmt.Errorf("pass get: %w", ports.ErrSecretNotFound)).Once()
	fallback.EXPECT().Get(mock.Anything, tokenKey).Return("", fmt.Errorf("file: %w", ports.ErrSecretNotFound)).Once()

	_, err := store.Get(context.Background(), tokenKey)
	require.ErrorIs(t, err, ports.ErrSecretNotFound)
	assert.NotContains(t, err.Error(), "primary backend")
}

func TestStoreGetReturnsCombinedErrorWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, tokenKey).Return("", errors.New("pass failed")).Once()
	fallback.EXPECT().Get(mock.Anything, tokenKey).Return("", errors.New("file failed")).Once()

	_, err := store.Get(context.Background(), tokenKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary backend")
	assert.ErrorContains(t, err, "fallback backend")
	assert.ErrorContains(t, err, "pass failed")
	assert.ErrorContains(t, err, "file failed")
}

func TestStoreGetDoesNotFallbackOnCanceledContextError(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, tokenKey).Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), tokenKey)
	require.ErrorIs(t, err, context.Canceled)
}

func TestStorePutFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, tokenKey, "secret").Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Put(mock.Anything, tokenKey, "secret").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), tokenKey, "secret"))
}

func TestStorePutDoesNotCallFallbackWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, tokenKey, "secret").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), tokenKey, "secret"))
}

func TestStoreDeleteRemovesFromBothBackends(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Delete(mock.Anything, tokenKey).Return(nil).Once()
	fallback.EXPECT().Delete(mock.Anything, tokenKey).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), tokenKey))
}

func TestStoreDeleteReportsFailingBackend(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Delete(mock.Anything, tokenKey).Return(passstore.ErrUnavailable).Once()
	fallback.EXPECT().Delete(mock.Anything, tokenKey).Return(nil).Once()

	err := store.Delete(context.Background(), tokenKey)
	require.ErrorIs(t, err, passstore.ErrUnavailable)
	assert.ErrorContains(t, err, "primary backend delete failed")
}

func TestStoreDeleteStopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Delete(mock.Anything, tokenKey).Return(context.DeadlineExceeded).Once()

	require.ErrorIs(t, store.Delete(context.Background(), tokenKey), context.DeadlineExceeded)
}

func TestNewStoreCheckedRejectsNilStores(t *testing.T) {
	t.Parallel()

	_, err := NewStoreChecked(nil, filestore.NewStore(t.TempDir()))
	require.ErrorIs(t, err, errNilPrimaryStore)

	_, err = NewStoreChecked(filestore.NewStore(t.TempDir()), nil)
	require.ErrorIs(t, err, errNilFallbackStore)
}

func TestForBackend(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	store, err := ForBackend("", root)
	require.NoError(t, err)
	assert.IsType(t, &Store{}, store)

	store, err = ForBackend("FILE", root)
	require.NoError(t, err)
	assert.IsType(t, &filestore.Store{}, store)

	store, err = ForBackend("pass", root)
	require.NoError(t, err)
	assert.IsType(t, &passstore.Store{}, store)

	_, err = ForBackend("keychain", root)
	assert.ErrorContains(t, err, "unsupported credentials backend")
}
