package metrics

import (
	"fmt"
	"time"

	"github.com/bnema/vton-cli/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "vton"

// Recorder holds the workflow metrics on its own registry so a CLI run can
// export them to a node_exporter textfile.
type Recorder struct {
	registry *prometheus.Registry

	uploads          *prometheus.CounterVec
	uploadDuration   *prometheus.HistogramVec
	compositions     *prometheus.CounterVec
	composeDuration  prometheus.Histogram
	historyRefreshes *prometheus.CounterVec
	downloads        *prometheus.CounterVec
}

var _ ports.Metrics = (*Recorder)(nil)

func NewRecorder() *Recorder {
	m := &Recorder{
		registry: prometheus.NewRegistry(),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Asset uploads by slot and outcome.",
		}, []string{"kind", "outcome"}),
		uploadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_duration_seconds",
			Help:      "Duration of asset uploads in seconds.",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"kind"}),
		compositions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compositions_total",
			Help:      "Try-on composition requests by outcome.",
		}, []string{"outcome"}),
		composeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "composition_duration_seconds",
			Help:      "Duration of composition requests in seconds.",
			Buckets:   []float64{1, 2.5, 5, 10, 20, 30, 60, 120},
		}),
		historyRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_refreshes_total",
			Help:      "History refreshes by outcome.",
		}, []string{"outcome"}),
		downloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downloads_total",
			Help:      "Artifact downloads by outcome.",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(m.uploads, m.uploadDuration, m.compositions, m.composeDuration, m.historyRefreshes, m.downloads)
	return m
}

func (m *Recorder) Gatherer() prometheus.Gatherer {
	return m.registry
}

func (m *Recorder) ObserveUpload(kind string, outcome ports.Outcome, elapsed time.Duration) {
	m.uploads.WithLabelValues(kind, string(outcome)).Inc()
	if outcome != ports.OutcomeSkipped {
		m.uploadDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	}
}

func (m *Recorder) ObserveComposition(outcome ports.Outcome, elapsed time.Duration) {
	m.compositions.WithLabelValues(string(outcome)).Inc()
	if outcome != ports.OutcomeSkipped {
		m.composeDuration.Observe(elapsed.Seconds())
	}
}

func (m *Recorder) ObserveHistoryRefresh(outcome ports.Outcome) {
	m.historyRefreshes.WithLabelValues(string(outcome)).Inc()
}

func (m *Recorder) ObserveDownload(outcome ports.Outcome) {
	m.downloads.WithLabelValues(string(outcome)).Inc()
}

// WriteTextfile writes the current values in the text exposition format.
// An empty path is a no-op.
func (m *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
