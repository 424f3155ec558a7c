package vtonapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/bnema/vton-cli/internal/domain"
	"github.com/bnema/vton-cli/internal/ports"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	maxResponseBytes = 4 << 20
	requestIDHeader  = "X-Request-ID"
	networkMessage   = "Network Error"
)

type Paths struct {
	UploadGarment string
	UploadPerson  string
	Compose       string
	History       string
}

func DefaultPaths() Paths {
	return Paths{
		UploadGarment: "/api/vton/upload-cloth/",
		UploadPerson:  "/api/vton/upload-human/",
		Compose:       "/api/vton/virtual-try-on/",
		History:       "/api/vton/vton-history/",
	}
}

// Client talks to the try-on backend over HTTP. Every non-2xx response and
// transport failure is returned as a *domain.Error.
type Client struct {
	BaseURL    string
	Paths      Paths
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

var (
	_ ports.VTONService     = Client{}
	_ ports.ArtifactFetcher = Client{}
)

type descriptorResponse struct {
	ID         int64  `json:"id"`
	Image      string `json:"image"`
	UploadedAt string `json:"uploaded_at"`
}

type composeResponse struct {
	Result string `json:"result"`
}

type historyResponse struct {
	ID             int64              `json:"id"`
	ClothImage     descriptorResponse `json:"cloth_image"`
	HumanImage     descriptorResponse `json:"human_image"`
	GeneratedImage string             `json:"generated_image"`
	CreatedAt      string             `json:"created_at"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func (c Client) UploadAsset(ctx context.Context, token domain.Token, kind domain.AssetKind, asset domain.Asset) (domain.Descriptor, error) {
	path := c.paths().UploadGarment
	if kind == domain.AssetPerson {
		path = c.paths().UploadPerson
	}

	body, contentType, err := buildMultipart(func(w *multipart.Writer) error {
		return writeAssetPart(w, "image", asset)
	})
	if err != nil {
		return domain.Descriptor{}, fmt.Errorf("build %s upload: %w", kind, err)
	}

	var payload descriptorResponse
	if err := c.do(ctx, http.MethodPost, path, token, body, contentType, &payload); err != nil {
		return domain.Descriptor{}, err
	}

	return domain.Descriptor{ID: payload.ID, Image: payload.Image, UploadedAt: payload.UploadedAt}, nil
}

func (c Client) Compose(ctx context.Context, token domain.Token, req ports.ComposeRequest) (domain.CompositionResult, error) {
	body, contentType, err := buildMultipart(func(w *multipart.Writer) error {
		if err := writeAssetPart(w, "clothImage", req.Garment); err != nil {
			return err
		}
		if err := writeAssetPart(w, "humanImage", req.Person); err != nil {
			return err
		}
		if err := w.WriteField("clothImageId", strconv.FormatInt(req.GarmentDescriptor.ID, 10)); err != nil {
			return err
		}
		return w.WriteField("humanImageId", strconv.FormatInt(req.PersonDescriptor.ID, 10))
	})
	if err != nil {
		return domain.CompositionResult{}, fmt.Errorf("build composition request: %w", err)
	}

	var payload composeResponse
	if err := c.do(ctx, http.MethodPost, c.paths().Compose, token, body, contentType, &payload); err != nil {
		return domain.CompositionResult{}, err
	}
	if payload.Result == "" {
		return domain.CompositionResult{}, domain.NewError(domain.KindServer, "composition response missing result", nil)
	}

	return domain.CompositionResult{ResultURL: payload.Result}, nil
}

func (c Client) FetchHistory(ctx context.Context, token domain.Token) ([]domain.HistoryRecord, error) {
	var payload []historyResponse
	if err := c.do(ctx, http.MethodGet, c.paths().History, token, nil, "", &payload); err != nil {
		return nil, err
	}

	records := make([]domain.HistoryRecord, 0, len(payload))
	for _, entry := range payload {
		records = append(records, domain.HistoryRecord{
			ID:                entry.ID,
			GarmentImageRef:   entry.ClothImage.Image,
			PersonImageRef:    entry.HumanImage.Image,
			GeneratedImageURL: entry.GeneratedImage,
			CreatedAt:         entry.CreatedAt,
		})
	}

	return records, nil
}

// Fetch downloads a result image. Relative references such as history
// entries are resolved against the base URL.
func (c Client) Fetch(ctx context.Context, sourceURL string) (io.ReadCloser, error) {
	endpoint, err := c.resolve(sourceURL)
	if err != nil {
		return nil, domain.NewError(domain.KindFetchFailed, "", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, domain.NewError(domain.KindFetchFailed, "", fmt.Errorf("create fetch request: %w", err))
	}
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, domain.NewError(domain.KindFetchFailed, networkMessage, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_ = resp.Body.Close()
		c.Logger.Debug().Str("request_id", requestID).Int("status", resp.StatusCode).Msg("fetch rejected")
		return nil, &domain.Error{
			Kind:       domain.KindFetchFailed,
			Message:    "Failed to fetch image",
			StatusCode: resp.StatusCode,
		}
	}

	return resp.Body, nil
}

func (c Client) do(ctx context.Context, method, path string, token domain.Token, body io.Reader, contentType string, out any) error {
	endpoint, err := buildAPIURL(c.BaseURL, path)
	if err != nil {
		return domain.NewError(domain.KindNetwork, "", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create %s request: %w", path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+string(token))
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	logger := c.Logger.With().Str("request_id", requestID).Str("method", method).Str("path", path).Logger()
	logger.Debug().Msg("api request")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return domain.NewError(domain.KindNetwork, networkMessage, err)
	}
	defer func() { _ = resp.Body.Close() }()

	logger.Debug().Int("status", resp.StatusCode).Msg("api response")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return domain.NewError(domain.KindServer, "", fmt.Errorf("decode %s response: %w", path, err))
	}

	return nil
}

func (c Client) paths() Paths {
	defaults := DefaultPaths()
	paths := c.Paths
	if paths.UploadGarment == "" {
		paths.UploadGarment = defaults.UploadGarment
	}
	if paths.UploadPerson == "" {
		paths.UploadPerson = defaults.UploadPerson
	}
	if paths.Compose == "" {
		paths.Compose = defaults.Compose
	}
	if paths.History == "" {
		paths.History = defaults.History
	}
	return paths
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.New("image url is required")
	}

	parsed, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse image url: %w", err)
	}
	if parsed.IsAbs() {
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return "", errors.New("image url must use http or https")
		}
		return parsed.String(), nil
	}

	return buildAPIURL(c.BaseURL, ref)
}

func decodeError(resp *http.Response) error {
	apiErr := &domain.Error{
		Kind:       domain.KindServer,
		Message:    fmt.Sprintf("Request failed with status code %d", resp.StatusCode),
		StatusCode: resp.StatusCode,
	}

	var payload errorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return apiErr
	}
	switch {
	case payload.Error != "":
		apiErr.Message = payload.Error
	case payload.Detail != "":
		apiErr.Message = payload.Detail
	}

	return apiErr
}

func buildMultipart(write func(w *multipart.Writer) error) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := write(w); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func writeAssetPart(w *multipart.Writer, field string, asset domain.Asset) error {
	data, err := assetBytes(asset)
	if err != nil {
		return err
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, asset.Filename))
	header.Set("Content-Type", strings.ToLower(asset.MediaType))

	part, err := w.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create %s part: %w", field, err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("write %s part: %w", field, err)
	}
	return nil
}

func assetBytes(asset domain.Asset) ([]byte, error) {
	if asset.Data != nil {
		return asset.Data, nil
	}
	if asset.Path == "" {
		return nil, fmt.Errorf("asset %q has no content", asset.Filename)
	}

	data, err := os.ReadFile(asset.Path)
	if err != nil {
		return nil, fmt.Errorf("read asset %q: %w", asset.Path, err)
	}
	return data, nil
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
