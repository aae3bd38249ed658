// Package predict wraps the trained regressor behind a narrow inference
// interface and turns its raw output into a clamped optimal-lap estimate
// with a calibrated uncertainty.
package predict

import (
	"math"

	"github.com/pitlane-analytics/pitwall/core/logger"
	"github.com/pitlane-analytics/pitwall/core/model"
	"github.com/pitlane-analytics/pitwall/core/policy"
	"github.com/pitlane-analytics/pitwall/core/track"
)

// Model is a trained regressor handle. Infer takes the fixed-order feature
// vector and returns the predicted laps until the optimal stop plus a spread
// proxy across the ensemble. Implementations must be safe for concurrent
// use.
type Model interface {
	Infer(features []float64) (lapsUntilPit, spread float64, err error)
	NumFeatures() int
}

// Loader resolves the trained artifact for a track. It fails with
// ModelUnavailableError when none exists.
type Loader interface {
	Load(trackName string) (Model, error)
}

// Engine produces raw pit-lap predictions. It holds no mutable state beyond
// what the loader caches, so concurrent predictions need no coordination.
type Engine struct {
	loader   Loader
	pol      policy.Policy
	log      logger.Logger
	fallback bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithFallback enables the heuristic prediction when no trained artifact
// exists for the requested track.
func WithFallback() Option {
	return func(e *Engine) { e.fallback = true }
}

// New creates an Engine backed by the given model loader.
func New(l Loader, pol policy.Policy, log logger.Logger, opts ...Option) *Engine {
	e := &Engine{loader: l, pol: pol, log: log}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Predict returns the raw optimal pit lap (as an absolute lap number, already
// clamped to the remaining race distance) and its uncertainty in laps.
func (e *Engine) Predict(features []float64, s model.RaceSituation, prof track.Profile) (float64, float64, error) {
	m, err := e.loader.Load(prof.Name)
	if err != nil {
		if model.IsModelUnavailable(err) && e.fallback {
			e.log.Warnf("track %s: %v, using heuristic fallback", prof.Name, err)
			raw, unc := e.heuristic(s, prof)
			return clampLap(raw, s), unc, nil
		}
		return 0, 0, err
	}

	if len(features) != m.NumFeatures() {
		return 0, 0, &model.InvalidInputError{
			Field:  "features",
			Value:  len(features),
			Reason: "length does not match trained model input",
		}
	}

	lapsUntil, spread, err := m.Infer(features)
	if err != nil {
		return 0, 0, err
	}
	raw := float64(s.CurrentLap) + lapsUntil
	unc := e.calibrate(spread, prof)
	e.log.Debugw("raw prediction", map[string]any{
		"track": prof.Name, "raw_lap": raw, "uncertainty": unc,
	})
	return clampLap(raw, s), unc, nil
}

// calibrate converts the ensemble spread into an uncertainty in laps. Tracks
// with a higher degradation factor are inherently more volatile and get a
// wider baseline.
func (e *Engine) calibrate(spread float64, prof track.Profile) float64 {
	unc := math.Abs(spread) * prof.DegFactor
	floor := e.pol.MinUncertainty * prof.DegFactor
	return math.Max(unc, floor)
}

// heuristic is the documented track-average fallback: compound life scaled
// down by the degradation factor, stretched by the evolution bonus, minus the
// laps already driven on the set.
func (e *Engine) heuristic(s model.RaceSituation, prof track.Profile) (float64, float64) {
	spec := track.CompoundParams(s.Compound)
	base := float64(spec.MaxLife)/prof.DegFactor + float64(prof.EvolutionBonusLaps)
	optimal := float64(s.CurrentLap) + base - float64(s.TireAge)
	if prof.DegFactor > 1.25 {
		optimal -= 2 // high-wear surfaces punish long stints
	}
	return optimal, e.pol.FallbackUncertainty * prof.DegFactor
}

// clampLap bounds a raw prediction to the remaining race distance. With no
// laps remaining there is no valid future stop and the current lap is
// returned.
func clampLap(raw float64, s model.RaceSituation) float64 {
	lo := float64(s.CurrentLap)
	hi := float64(s.CurrentLap + s.LapsRemaining)
	if s.LapsRemaining <= 0 {
		return lo
	}
	return math.Max(lo, math.Min(hi, raw))
}
