package metrics

import (
	"time"

	"github.com/pitlane-analytics/pitwall/core/model"
)

// PredictionEvent captures one recommendation for observability purposes.
type PredictionEvent struct {
	RequestID   string
	Track       string
	Compound    model.Compound
	Risk        model.RiskLevel
	OptimalLap  int
	Confidence  float64
	Uncertainty float64
	Time        time.Time
}

// PredictionSink records prediction events.
type PredictionSink interface {
	RecordPrediction(ev PredictionEvent) error
}

// NopSink implements PredictionSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordPrediction(PredictionEvent) error { return nil }

// MultiSink fans a prediction event out to multiple sinks.
type MultiSink struct {
	Sinks []PredictionSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...PredictionSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPrediction forwards the event to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordPrediction(ev PredictionEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordPrediction(ev); err != nil {
			return err
		}
	}
	return nil
}
