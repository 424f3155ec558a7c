package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/vton-cli/internal/domain"
	"github.com/bnema/vton-cli/internal/ports"
)

const DefaultProfile = "default"

var ErrNoRefreshToken = errors.New("no refresh token stored; run `vton auth login` first")

// Store manages the bearer token of one profile inside a SecretStore.
type Store struct {
	secrets ports.SecretStore
	profile string
}

func NewStore(secrets ports.SecretStore, profile string) *Store {
	profile = strings.TrimSpace(profile)
	if profile == "" {
		profile = DefaultProfile
	}

	return &Store{secrets: secrets, profile: profile}
}

func (s *Store) Profile() string {
	return s.profile
}

func (s *Store) Key() string {
	return "vton/" + s.profile + "/token"
}

func (s *Store) RefreshKey() string {
	return "vton/" + s.profile + "/refresh"
}

func (s *Store) Set(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is empty")
	}

	if err := s.secrets.Put(ctx, s.Key(), token); err != nil {
		return fmt.Errorf("store token for profile %q: %w", s.profile, err)
	}
	return nil
}

// SetRefresh stores the refresh token used by "auth refresh".
func (s *Store) SetRefresh(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("refresh token is empty")
	}

	if err := s.secrets.Put(ctx, s.RefreshKey(), token); err != nil {
		return fmt.Errorf("store refresh token for profile %q: %w", s.profile, err)
	}
	return nil
}

// RefreshToken returns the stored refresh token, or ErrNoRefreshToken.
func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	value, err := s.secrets.Get(ctx, s.RefreshKey())
	if err != nil {
		if errors.Is(err, ports.ErrSecretNotFound) {
			return "", ErrNoRefreshToken
		}
		return "", fmt.Errorf("load refresh token for profile %q: %w", s.profile, err)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return "", ErrNoRefreshToken
	}
	return value, nil
}

// Remove deletes the access and refresh tokens of the profile.
func (s *Store) Remove(ctx context.Context) error {
	if err := s.secrets.Delete(ctx, s.Key()); err != nil {
		return fmt.Errorf("remove token for profile %q: %w", s.profile, err)
	}
	if err := s.secrets.Delete(ctx, s.RefreshKey()); err != nil {
		return fmt.Errorf("remove refresh token for profile %q: %w", s.profile, err)
	}
	return nil
}

// Load reads the token once. A missing credential yields an empty source,
// which the workflow treats as signed out.
func (s *Store) Load(ctx context.Context) (TokenSource, error) {
	value, err := s.secrets.Get(ctx, s.Key())
	if err != nil {
		if errors.Is(err, ports.ErrSecretNotFound) {
			return TokenSource{}, nil
		}
		return TokenSource{}, fmt.Errorf("load token for profile %q: %w", s.profile, err)
	}

	return TokenSource{token: domain.Token(strings.TrimSpace(value))}, nil
}

// TokenSource is a loaded credential. CurrentToken never performs IO.
type TokenSource struct {
	token domain.Token
}

var _ ports.TokenSource = TokenSource{}

func StaticToken(token string) TokenSource {
	return TokenSource{token: domain.Token(strings.TrimSpace(token))}
}

func (t TokenSource) CurrentToken() (domain.Token, bool) {
	return t.token, t.token != ""
}
