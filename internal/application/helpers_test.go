package application

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/bnema/vton-cli/internal/domain"
	"github.com/bnema/vton-cli/internal/ports"
	"github.com/stretchr/testify/mock"
)

const (
	testWait = 2 * time.Second
	testTick = 5 * time.Millisecond
)

var (
	garmentAsset = domain.Asset{Filename: "shirt.png", MediaType: domain.MediaTypePNG, Data: []byte("garment-bytes")}
	personAsset  = domain.Asset{Filename: "me.jpg", MediaType: domain.MediaTypeJPEG, Data: []byte("person-bytes")}

	garmentDescriptor = domain.Descriptor{ID: 11, Image: "/media/cloth_images/shirt.png", UploadedAt: "2026-10-16T09:00:00Z"}
	personDescriptor  = domain.Descriptor{ID: 22, Image: "/media/human_images/me.jpg", UploadedAt: "2026-10-16T09:00:01Z"}
)

func mockAnyContext() interface{} {
	return mock.Anything
}

// staticTokens is a TokenSource with a fixed value; "" means signed out.
type staticTokens string

func (s staticTokens) CurrentToken() (domain.Token, bool) {
	return domain.Token(s), s != ""
}

func readyState() domain.State {
	state := domain.NewState()
	state = domain.Reduce(state, domain.UploadStarted{Kind: domain.AssetGarment, Asset: garmentAsset})
	state = domain.Reduce(state, domain.UploadSucceeded{Kind: domain.AssetGarment, Descriptor: garmentDescriptor})
	state = domain.Reduce(state, domain.UploadStarted{Kind: domain.AssetPerson, Asset: personAsset})
	state = domain.Reduce(state, domain.UploadSucceeded{Kind: domain.AssetPerson, Descriptor: personDescriptor})
	return state
}

type recordedObservation struct {
	name    string
	kind    string
	outcome ports.Outcome
}

type recordingMetrics struct {
	mu           sync.Mutex
	observations []recordedObservation
}

func (m *recordingMetrics) record(name, kind string, outcome ports.Outcome) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observations = append(m.observations, recordedObservation{name: name, kind: kind, outcome: outcome})
}

func (m *recordingMetrics) ObserveUpload(kind string, outcome ports.Outcome, _ time.Duration) {
	m.record("upload", kind, outcome)
}

func (m *recordingMetrics) ObserveComposition(outcome ports.Outcome, _ time.Duration) {
	m.record("composition", "", outcome)
}

func (m *recordingMetrics) ObserveHistoryRefresh(outcome ports.Outcome) {
	m.record("history", "", outcome)
}

func (m *recordingMetrics) ObserveDownload(outcome ports.Outcome) {
	m.record("download", "", outcome)
}

func (m *recordingMetrics) snapshot() []recordedObservation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]recordedObservation(nil), m.observations...)
}

// memoryStaging keeps staged artifacts in memory and remembers which were released.
type memoryStaging struct {
	mu     sync.Mutex
	staged []*memoryArtifact
	err    error
}

func (s *memoryStaging) Stage(_ context.Context, body io.Reader) (ports.StagedArtifact, error) {
	if s.err != nil {
		return nil, s.err
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	artifact := &memoryArtifact{data: data}
	s.mu.Lock()
	s.staged = append(s.staged, artifact)
	s.mu.Unlock()

	return artifact, nil
}

func (s *memoryStaging) artifacts() []*memoryArtifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*memoryArtifact(nil), s.staged...)
}

type memoryArtifact struct {
	mu       sync.Mutex
	data     []byte
	released bool
}

func (a *memoryArtifact) Path() string { return "memory://artifact" }
func (a *memoryArtifact) Size() int64  { return int64(len(a.data)) }

func (a *memoryArtifact) Release() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.released = true
	return nil
}

func (a *memoryArtifact) isReleased() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.released
}

type trackedBody struct {
	*bytes.Reader
	closed bool
}

func newTrackedBody(data string) *trackedBody {
	return &trackedBody{Reader: bytes.NewReader([]byte(data))}
}

func (b *trackedBody) Close() error {
	b.closed = true
	return nil
}
