package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/pitlane-analytics/pitwall/core/metrics"
)

// PromSink records prediction events in Prometheus metrics.
type PromSink struct {
	predictions *prometheus.CounterVec
	confidence  *prometheus.HistogramVec
	uncertainty *prometheus.HistogramVec
}

// NewPromSink registers prediction metrics on the provided registerer. If reg
// is nil, the default registerer is used. Already-registered collectors are
// reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	predictions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pitwall_predictions_total",
		Help: "Total number of pit-stop recommendations",
	}, []string{"track", "risk", "compound"})
	confidence := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pitwall_prediction_confidence",
		Help:    "Confidence of pit-stop recommendations",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	}, []string{"track"})
	uncertainty := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pitwall_prediction_uncertainty_laps",
		Help:    "Uncertainty of pit-stop recommendations in laps",
		Buckets: []float64{0.5, 1, 2, 3, 5, 8, 13},
	}, []string{"track"})

	for i, c := range []prometheus.Collector{predictions, confidence, uncertainty} {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			switch i {
			case 0:
				predictions = are.ExistingCollector.(*prometheus.CounterVec)
			case 1:
				confidence = are.ExistingCollector.(*prometheus.HistogramVec)
			case 2:
				uncertainty = are.ExistingCollector.(*prometheus.HistogramVec)
			}
		}
	}

	return &PromSink{predictions: predictions, confidence: confidence, uncertainty: uncertainty}, nil
}

// RecordPrediction increments the counters for one recommendation.
func (s *PromSink) RecordPrediction(ev coremetrics.PredictionEvent) error {
	s.predictions.WithLabelValues(ev.Track, ev.Risk.String(), ev.Compound.String()).Inc()
	s.confidence.WithLabelValues(ev.Track).Observe(ev.Confidence)
	s.uncertainty.WithLabelValues(ev.Track).Observe(ev.Uncertainty)
	return nil
}
