// Package features turns a race situation and the static domain model into
// the fixed-order numeric vector consumed by the regressor. The order and
// composition here must match the one used at training time exactly; the
// prediction engine has no way to detect a silent mismatch.
package features

import (
	"math"

	"github.com/pitlane-analytics/pitwall/core/model"
	"github.com/pitlane-analytics/pitwall/core/track"
)

// VectorLen is the fixed length of every feature vector.
const VectorLen = 20

// Plausible physical ranges for soft-clamped inputs. Live feeds are noisy,
// so out-of-range readings are pulled to the nearest bound instead of
// rejected.
const (
	minTrackTemp = 10.0
	maxTrackTemp = 60.0
	minAirTemp   = 0.0
	maxAirTemp   = 45.0
)

// Position buckets for the categorical encoding.
const (
	frontRunnerMax = 6
	midfieldMax    = 14
)

// Build derives the feature vector for one situation. Identical inputs yield
// bit-identical vectors. Malformed lap counts or ages fail with
// InvalidInput; noisy physical readings are clamped.
func Build(s model.RaceSituation, prof track.Profile, spec track.CompoundSpec) ([]float64, error) {
	if s.CurrentLap < 1 {
		return nil, &model.InvalidInputError{Field: "current_lap", Value: s.CurrentLap, Reason: "must be >= 1"}
	}
	if s.LapsRemaining < 0 {
		return nil, &model.InvalidInputError{Field: "laps_remaining", Value: s.LapsRemaining, Reason: "must be >= 0"}
	}
	if s.TireAge < 0 {
		return nil, &model.InvalidInputError{Field: "tire_age", Value: s.TireAge, Reason: "must be >= 0"}
	}

	// Soft upper bound on tire age: a set cannot meaningfully outlive its
	// compound life scaled by the track factor.
	age := float64(s.TireAge)
	maxAge := float64(spec.MaxLife) * prof.DegFactor
	if age > maxAge {
		age = maxAge
	}

	deg := clamp(s.DegradationLevel, 0, 1)
	trackTemp := clamp(s.TrackTemp, minTrackTemp, maxTrackTemp)
	airTemp := clamp(s.AirTemp, minAirTemp, maxAirTemp)
	humidity := clamp(s.Humidity, 0, 100)
	position := s.Position
	if position < 1 {
		position = 1
	}

	maxLife := spec.MaxLife
	if maxLife < 1 {
		maxLife = 1
	}
	evolutionLaps := math.Min(float64(s.CurrentLap), float64(prof.EvolutionBonusLaps))

	v := make([]float64, 0, VectorLen)
	v = append(v,
		float64(s.CurrentLap),
		age,
		float64(s.Compound)+1, // ordinal encoding, soft=1 .. hard=3
		trackTemp,
		airTemp,
		humidity,
		float64(position),
		float64(s.LapsRemaining), // fuel-load proxy: burns off monotonically
		age/float64(maxLife),
		age*prof.DegFactor, // degradation pressure
		track.FuelEffect(prof, spec, s.CurrentLap),
		prof.Evolution*evolutionLaps,
		spec.GripLevel,
		spec.DegRate,
		deg,
		prof.SafetyCarProb,
		prof.OvertakingDifficulty,
	)
	v = append(v, positionBucket(position)...)
	return v, nil
}

// positionBucket one-hot encodes the car position as front/mid/back.
func positionBucket(position int) []float64 {
	switch {
	case position <= frontRunnerMax:
		return []float64{1, 0, 0}
	case position <= midfieldMax:
		return []float64{0, 1, 0}
	default:
		return []float64{0, 0, 1}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
