// Package advisor wires the feature builder, prediction engine and strategy
// adjuster into the single recommendation entry point.
package advisor

import (
	"time"

	"github.com/google/uuid"

	"github.com/pitlane-analytics/pitwall/core/features"
	"github.com/pitlane-analytics/pitwall/core/logger"
	"github.com/pitlane-analytics/pitwall/core/metrics"
	"github.com/pitlane-analytics/pitwall/core/model"
	"github.com/pitlane-analytics/pitwall/core/policy"
	"github.com/pitlane-analytics/pitwall/core/predict"
	"github.com/pitlane-analytics/pitwall/core/strategy"
	"github.com/pitlane-analytics/pitwall/core/track"
)

// Advisor produces pit-stop recommendations. All referenced state is
// read-only after construction, so one Advisor serves concurrent requests
// without locks.
type Advisor struct {
	engine *predict.Engine
	adj    strategy.Adjuster
	sink   metrics.PredictionSink
	log    logger.Logger
}

// New creates an Advisor. A nil sink disables metrics.
func New(engine *predict.Engine, pol policy.Policy, sink metrics.PredictionSink, log logger.Logger) *Advisor {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Advisor{
		engine: engine,
		adj:    strategy.NewAdjuster(pol),
		sink:   sink,
		log:    log,
	}
}

// Recommend runs the full pipeline for one situation. The track and compound
// names are resolved against the domain catalogs; unknown names fail with
// InvalidInput and no partial result is ever returned.
func (a *Advisor) Recommend(s model.RaceSituation, trackName, compoundName string) (model.PredictionResult, error) {
	prof, err := track.Lookup(trackName)
	if err != nil {
		return model.PredictionResult{}, err
	}
	compound, err := model.ParseCompound(compoundName)
	if err != nil {
		return model.PredictionResult{}, err
	}
	s.Compound = compound

	spec := track.CompoundParams(compound)
	if s.DegradationLevel < 0 {
		s.DegradationLevel = track.DerivedDegradation(prof, spec, s.TireAge, s.CurrentLap)
		a.log.Debugf("derived degradation %.3f for %s lap %d", s.DegradationLevel, prof.Name, s.CurrentLap)
	}

	vec, err := features.Build(s, prof, spec)
	if err != nil {
		return model.PredictionResult{}, err
	}

	rawLap, uncertainty, err := a.engine.Predict(vec, s, prof)
	if err != nil {
		return model.PredictionResult{}, err
	}

	res, err := a.adj.Adjust(rawLap, uncertainty, s, prof)
	if err != nil {
		return model.PredictionResult{}, err
	}

	ev := metrics.PredictionEvent{
		RequestID:   uuid.NewString(),
		Track:       res.Track,
		Compound:    res.RecommendedCompound,
		Risk:        res.Risk,
		OptimalLap:  res.OptimalLap,
		Confidence:  res.Confidence,
		Uncertainty: res.Uncertainty,
		Time:        time.Now(),
	}
	if err := a.sink.RecordPrediction(ev); err != nil {
		a.log.Warnf("record prediction: %v", err)
	}
	return res, nil
}
