package ports

import "time"

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
	OutcomeSkipped Outcome = "skipped"
)

type Metrics interface {
	ObserveUpload(kind string, outcome Outcome, elapsed time.Duration)
	ObserveComposition(outcome Outcome, elapsed time.Duration)
	ObserveHistoryRefresh(outcome Outcome)
	ObserveDownload(outcome Outcome)
}

type NopMetrics struct{}

func (NopMetrics) ObserveUpload(string, Outcome, time.Duration) {}
func (NopMetrics) ObserveComposition(Outcome, time.Duration)    {}
func (NopMetrics) ObserveHistoryRefresh(Outcome)                {}
func (NopMetrics) ObserveDownload(Outcome)                      {}
