package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxAuthResponseBytes = 1 << 20

var ErrInvalidCredentials = errors.New("invalid email or password")

type API struct {
	BaseURL     string
	LoginPath   string
	RefreshPath string
}

func DefaultAPI(baseURL string) API {
	return API{
		BaseURL:     baseURL,
		LoginPath:   "/api/user/login/",
		RefreshPath: "/api/token/refresh/",
	}
}

// SessionClient exchanges account credentials for the bearer tokens the
// try-on endpoints expect.
type SessionClient struct {
	API            API
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

type Session struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
	Email        string `json:"email"`
	Name         string `json:"name"`
}

type refreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type apiErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

func (c SessionClient) Login(ctx context.Context, email string, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, errors.New("email and password are required")
	}

	var session Session
	status, err := c.postJSON(ctx, c.API.LoginPath, map[string]string{"email": email, "password": password}, &session)
	if err != nil {
		if status == http.StatusBadRequest || status == http.StatusUnauthorized {
			return Session{}, fmt.Errorf("login: %w: %w", ErrInvalidCredentials, err)
		}
		return Session{}, fmt.Errorf("login: %w", err)
	}
	if session.AccessToken == "" {
		return Session{}, errors.New("login response missing access token")
	}

	return session, nil
}

// Refresh trades a refresh token for a new access token. The refresh token
// is rotated only when the server returns a new one.
func (c SessionClient) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return Session{}, errors.New("refresh token is required")
	}

	var payload refreshResponse
	if _, err := c.postJSON(ctx, c.API.RefreshPath, map[string]string{"refresh": refreshToken}, &payload); err != nil {
		return Session{}, fmt.Errorf("refresh token: %w", err)
	}
	if payload.Access == "" {
		return Session{}, errors.New("refresh response missing access token")
	}

	rotated := payload.Refresh
	if rotated == "" {
		rotated = refreshToken
	}

	return Session{AccessToken: payload.Access, RefreshToken: rotated}, nil
}

func (c SessionClient) postJSON(ctx context.Context, path string, body any, out any) (int, error) {
	endpoint, err := buildAPIURL(c.API.BaseURL, path)
	if err != nil {
		return 0, err
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("encode request: %w", err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp.StatusCode, errors.New(decodeAPIError(resp))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxAuthResponseBytes)).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}

	return resp.StatusCode, nil
}

func (c SessionClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c SessionClient) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func decodeAPIError(resp *http.Response) string {
	var apiErr apiErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxAuthResponseBytes)).Decode(&apiErr); err != nil {
		return fmt.Sprintf("status %d", resp.StatusCode)
	}
	return formatAPIError(resp.StatusCode, apiErr)
}

func formatAPIError(statusCode int, apiErr apiErrorResponse) string {
	switch {
	case apiErr.Error != "":
		return apiErr.Error
	case apiErr.Detail != "" && apiErr.Code != "":
		return apiErr.Code + ": " + apiErr.Detail
	case apiErr.Detail != "":
		return apiErr.Detail
	default:
		return fmt.Sprintf("status %d", statusCode)
	}
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("api base url is required")
	}
	if path == "" {
		return "", errors.New("api path is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	return endpoint.String(), nil
}
