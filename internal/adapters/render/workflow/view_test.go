package workflow

import (
	"testing"
	"time"

	"github.com/bnema/vton-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderInitialState(t *testing.T) {
	output, err := Render(domain.NewState(), RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "Virtual Try-On")
	assert.Contains(t, output, "slots ready: 0/2")
	assert.Contains(t, output, "[idle]")
	assert.Contains(t, output, "No result yet.")
	assert.Contains(t, output, "No try-on history yet.")
	assert.NotContains(t, output, "Error:")
}

func TestRenderUploadedSlotsAndResult(t *testing.T) {
	state := domain.NewState()
	state = domain.Reduce(state, domain.UploadStarted{Kind: domain.AssetGarment, Asset: domain.Asset{Filename: "shirt.png", MediaType: domain.MediaTypePNG}})
	state = domain.Reduce(state, domain.UploadSucceeded{Kind: domain.AssetGarment, Descriptor: domain.Descriptor{ID: 11}})
	state = domain.Reduce(state, domain.UploadStarted{Kind: domain.AssetPerson, Asset: domain.Asset{Filename: "me.jpg", MediaType: domain.MediaTypeJPEG}})
	state = domain.Reduce(state, domain.UploadFailed{Kind: domain.AssetPerson, Message: "Invalid image file."})
	state = domain.Reduce(state, domain.TryOnSucceeded{ResultURL: "http://127.0.0.1:8000/media/results/out.png"})

	output, err := Render(state, RenderOptions{HideHistory: true})

	require.NoError(t, err)
	assert.Contains(t, output, "slots ready: 1/2")
	assert.Contains(t, output, "shirt.png")
	assert.Contains(t, output, "(#11)")
	assert.Contains(t, output, "[failed]")
	assert.Contains(t, output, "Invalid image file.")
	assert.Contains(t, output, "http://127.0.0.1:8000/media/results/out.png")
	assert.NotContains(t, output, "History")
}

func TestRenderSkeletonHidesResult(t *testing.T) {
	state := domain.Reduce(domain.NewState(), domain.TryOnSucceeded{ResultURL: "http://x/old.png"})
	state = domain.Reduce(state, domain.GateArmed{At: time.Now()})

	output, err := Render(state, RenderOptions{HideHistory: true})

	require.NoError(t, err)
	assert.Contains(t, output, "generating...")
	assert.NotContains(t, output, "http://x/old.png")
}

func TestRenderStatusAndValidation(t *testing.T) {
	state := domain.Reduce(domain.NewState(), domain.TryOnFailed{Message: "Request failed with status code 500"})
	state = domain.Reduce(state, domain.TryOnRejected{Message: domain.MessageMissingAssets})

	output, err := Render(state, RenderOptions{HideHistory: true})

	require.NoError(t, err)
	assert.Contains(t, output, "Error: Request failed with status code 500")
	assert.Contains(t, output, domain.MessageMissingAssets)
}

func TestRenderHistoryEntries(t *testing.T) {
	now := time.Date(2026, 10, 16, 18, 0, 0, 0, time.UTC)
	state := domain.Reduce(domain.NewState(), domain.HistoryLoaded{Records: []domain.HistoryRecord{
		{ID: 3, GeneratedImageURL: "http://x/3.png", CreatedAt: "2026-10-16T09:30:00Z"},
		{ID: 2, GeneratedImageURL: "http://x/2.png", CreatedAt: "2026-10-12T08:15:00.123456Z"},
		{ID: 1, CreatedAt: "yesterday"},
	}})

	output, err := Render(state, RenderOptions{Now: now, HistoryLimit: 2})

	require.NoError(t, err)
	assert.Contains(t, output, "entries: 3")
	assert.Contains(t, output, "#3")
	assert.Contains(t, output, "09:30")
	assert.Contains(t, output, "08:15 on 12 Oct")
	assert.Contains(t, output, "http://x/2.png")
	assert.Contains(t, output, "... 1 more")
	assert.NotContains(t, output, "yesterday")
}

func TestRenderHistoryError(t *testing.T) {
	state := domain.Reduce(domain.NewState(), domain.HistoryFailed{Message: "Network Error"})

	output, err := Render(state, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "Failed to load history: Network Error")
	assert.NotContains(t, output, "No try-on history yet.")
}

func TestFormatCreatedAt(t *testing.T) {
	now := time.Date(2026, 10, 16, 18, 0, 0, 0, time.UTC)

	assert.Equal(t, "unknown", formatCreatedAt("", now))
	assert.Equal(t, "not-a-date", formatCreatedAt("not-a-date", now))
	assert.Equal(t, "2026-10-16T09:30:00Z", formatCreatedAt("2026-10-16T09:30:00Z", time.Time{}))
	assert.Equal(t, "09:30", formatCreatedAt("2026-10-16T09:30:00Z", now))
}
