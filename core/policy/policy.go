// Package policy holds the shared thresholds and pure classification rules
// used by the prediction engine and the strategy adjuster. A Policy is
// immutable after load and safe for concurrent use.
package policy

import (
	"fmt"
	"math"

	"github.com/pitlane-analytics/pitwall/core/model"
)

// Policy groups the tunable strategy constants. All fields have working
// defaults; operators override them through the `policy` config section.
type Policy struct {
	// WindowK scales uncertainty into the pit window half-width. Must be >= 1.
	WindowK float64 `json:"window_k"`
	// MinUncertainty floors the uncertainty estimate, in laps.
	MinUncertainty float64 `json:"min_uncertainty"`
	// FallbackUncertainty is the baseline uncertainty applied when the
	// heuristic replaces a trained model, in laps.
	FallbackUncertainty float64 `json:"fallback_uncertainty"`
	// ConfidenceTau is the exponential decay constant mapping uncertainty to
	// confidence, in laps.
	ConfidenceTau float64 `json:"confidence_tau"`
	// ConfidenceLambda dampens confidence with distance to the predicted lap.
	ConfidenceLambda float64 `json:"confidence_lambda"`
	// LateRaceLaps marks the start of the late-race phase.
	LateRaceLaps int `json:"late_race_laps"`
	// SafetyCarThreshold is the probability above which opportunistic early
	// stops are favored.
	SafetyCarThreshold float64 `json:"safety_car_threshold"`
	// EasyOvertaking is the difficulty score at or below which a track is
	// considered easy to overtake on.
	EasyOvertaking float64 `json:"easy_overtaking"`
	// HighEvolution is the evolution rate at or above which delaying the stop
	// pays off.
	HighEvolution float64 `json:"high_evolution"`
	// EarlyShift is how many laps the window lower bound moves down when an
	// early stop is recommended.
	EarlyShift int `json:"early_shift"`

	// Ascending degradation-risk thresholds over degradation x track factor.
	RiskMedium   float64 `json:"risk_medium"`
	RiskHigh     float64 `json:"risk_high"`
	RiskCritical float64 `json:"risk_critical"`
}

// Default returns the calibrated policy used when no overrides are set.
func Default() Policy {
	p := Policy{}
	p.SetDefaults()
	return p
}

// SetDefaults fills zero fields with the calibrated defaults.
func (p *Policy) SetDefaults() {
	if p.WindowK == 0 {
		p.WindowK = 1.5
	}
	if p.MinUncertainty == 0 {
		p.MinUncertainty = 1.0
	}
	if p.FallbackUncertainty == 0 {
		p.FallbackUncertainty = 3.0
	}
	if p.ConfidenceTau == 0 {
		p.ConfidenceTau = 4.0
	}
	if p.ConfidenceLambda == 0 {
		p.ConfidenceLambda = 25.0
	}
	if p.LateRaceLaps == 0 {
		p.LateRaceLaps = 10
	}
	if p.SafetyCarThreshold == 0 {
		p.SafetyCarThreshold = 0.35
	}
	if p.EasyOvertaking == 0 {
		p.EasyOvertaking = 0.30
	}
	if p.HighEvolution == 0 {
		p.HighEvolution = 0.08
	}
	if p.EarlyShift == 0 {
		p.EarlyShift = 2
	}
	if p.RiskMedium == 0 {
		p.RiskMedium = 0.5
	}
	if p.RiskHigh == 0 {
		p.RiskHigh = 0.7
	}
	if p.RiskCritical == 0 {
		p.RiskCritical = 0.9
	}
}

// Validate checks internal consistency of the thresholds.
func (p Policy) Validate() error {
	if p.WindowK < 1 {
		return fmt.Errorf("window_k must be >= 1, got %v", p.WindowK)
	}
	if p.MinUncertainty < 0 || p.FallbackUncertainty < 0 {
		return fmt.Errorf("uncertainty floors must be non-negative")
	}
	if p.ConfidenceTau <= 0 || p.ConfidenceLambda <= 0 {
		return fmt.Errorf("confidence constants must be positive")
	}
	if !(p.RiskMedium < p.RiskHigh && p.RiskHigh < p.RiskCritical) {
		return fmt.Errorf("risk thresholds must ascend: %v < %v < %v",
			p.RiskMedium, p.RiskHigh, p.RiskCritical)
	}
	if p.LateRaceLaps < 1 {
		return fmt.Errorf("late_race_laps must be >= 1, got %d", p.LateRaceLaps)
	}
	return nil
}

// ClassifyRisk maps degradation level scaled by the track factor onto the
// risk ladder.
func (p Policy) ClassifyRisk(degradation, degFactor float64) model.RiskLevel {
	pressure := degradation * degFactor
	switch {
	case pressure >= p.RiskCritical:
		return model.RiskCritical
	case pressure >= p.RiskHigh:
		return model.RiskHigh
	case pressure >= p.RiskMedium:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

// Confidence maps an uncertainty estimate and the distance to the predicted
// lap onto [0,1]. Zero uncertainty at zero distance yields 1; confidence
// decays monotonically as either grows.
func (p Policy) Confidence(uncertainty float64, distance int) float64 {
	if uncertainty < 0 {
		uncertainty = 0
	}
	d := float64(distance)
	if d < 0 {
		d = 0
	}
	c := math.Exp(-uncertainty/p.ConfidenceTau) / (1 + d/p.ConfidenceLambda)
	return math.Max(0, math.Min(1, c))
}
