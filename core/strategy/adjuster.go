// Package strategy post-processes a raw pit-lap prediction into a bounded
// pit window, a confidence score and a tactical recommendation. Everything
// here is a pure function of the inputs and the static policy.
package strategy

import (
	"fmt"
	"math"

	"github.com/pitlane-analytics/pitwall/core/model"
	"github.com/pitlane-analytics/pitwall/core/policy"
	"github.com/pitlane-analytics/pitwall/core/track"
)

// Adjuster applies the race-phase rules on top of the numeric prediction.
type Adjuster struct {
	pol policy.Policy
}

// NewAdjuster returns an Adjuster bound to the given policy.
func NewAdjuster(pol policy.Policy) Adjuster {
	return Adjuster{pol: pol}
}

// Adjust converts the raw prediction into the final recommendation. The raw
// lap is expected to be pre-clamped by the engine; Adjust re-clamps window
// bounds and verifies the lower<=optimal<=upper invariant, failing with
// ErrPredictionOutOfBounds if it cannot hold.
func (a Adjuster) Adjust(rawLap, uncertainty float64, s model.RaceSituation, prof track.Profile) (model.PredictionResult, error) {
	lo := s.CurrentLap
	hi := s.CurrentLap + s.LapsRemaining

	optimal := clampInt(int(math.Round(rawLap)), lo, hi)

	spec := track.CompoundParams(s.Compound)
	deg := clamp01(s.DegradationLevel)
	risk := a.classifyRisk(deg, s.TireAge, spec, prof)

	window := a.window(rawLap, uncertainty, optimal, risk, s, prof)

	conf := a.confidence(uncertainty, optimal, s, spec)

	res := model.PredictionResult{
		Track:               prof.Name,
		OptimalLap:          optimal,
		LapsUntilPit:        optimal - s.CurrentLap,
		Window:              window,
		Confidence:          conf,
		Uncertainty:         uncertainty,
		RecommendedCompound: a.recommendCompound(risk, s, prof),
		Risk:                risk,
		StintEstimates:      stintEstimates(prof, s.CurrentLap),
		Notes:               a.notes(deg, risk, s, prof, spec),
	}

	if res.Window.Lower > res.OptimalLap || res.OptimalLap > res.Window.Upper {
		return model.PredictionResult{}, fmt.Errorf(
			"window [%d,%d] does not contain optimal lap %d: %w",
			res.Window.Lower, res.Window.Upper, res.OptimalLap, model.ErrPredictionOutOfBounds)
	}
	return res, nil
}

// window derives the pit window from the uncertainty, widens it where the
// track rewards flexibility and clamps it to the remaining distance.
func (a Adjuster) window(rawLap, uncertainty float64, optimal int, risk model.RiskLevel, s model.RaceSituation, prof track.Profile) model.PitWindow {
	lo := s.CurrentLap
	hi := s.CurrentLap + s.LapsRemaining

	half := a.pol.WindowK * uncertainty
	lower := int(math.Floor(rawLap - half))
	upper := int(math.Ceil(rawLap + half))

	// Easy overtaking and likely safety cars both reward a wider window.
	if prof.OvertakingDifficulty < a.pol.EasyOvertaking {
		lower--
		upper++
	}
	if prof.SafetyCarProb > a.pol.SafetyCarThreshold {
		lower--
		upper++
	}

	// Outside the late race, high risk or a likely safety car argues for
	// stopping earlier than the raw prediction suggests.
	if s.LapsRemaining >= a.pol.LateRaceLaps &&
		(risk >= model.RiskHigh || prof.SafetyCarProb > a.pol.SafetyCarThreshold) {
		lower -= a.pol.EarlyShift
	}

	lower = clampInt(lower, lo, hi)
	upper = clampInt(upper, lo, hi)
	// The window always contains the optimal lap.
	if lower > optimal {
		lower = optimal
	}
	if upper < optimal {
		upper = optimal
	}
	return model.PitWindow{Lower: lower, Upper: upper}
}

// confidence decays with uncertainty and with how far out the stop is, and
// is damped when the projected stint overruns the compound's typical life.
func (a Adjuster) confidence(uncertainty float64, optimal int, s model.RaceSituation, spec track.CompoundSpec) float64 {
	conf := a.pol.Confidence(uncertainty, optimal-s.CurrentLap)
	projected := s.TireAge + (optimal - s.CurrentLap)
	if projected > spec.CriticalAge {
		conf *= 0.7
	} else if projected > spec.WarningAge {
		conf *= 0.85
	}
	return conf
}

// classifyRisk starts from the policy's degradation ladder and escalates on
// raw tire age, mirroring the warning/critical ages of each compound.
func (a Adjuster) classifyRisk(deg float64, tireAge int, spec track.CompoundSpec, prof track.Profile) model.RiskLevel {
	risk := a.pol.ClassifyRisk(deg, prof.DegFactor)
	switch {
	case tireAge >= spec.CriticalAge:
		return model.RiskCritical
	case tireAge >= spec.WarningAge && risk < model.RiskHigh:
		return model.RiskHigh
	}
	return risk
}

// recommendCompound applies the ordered race-phase rules; the first matching
// rule wins.
func (a Adjuster) recommendCompound(risk model.RiskLevel, s model.RaceSituation, prof track.Profile) model.Compound {
	switch {
	case s.LapsRemaining < a.pol.LateRaceLaps:
		// Late race: overtaking difficulty decides between attack and
		// defense.
		if prof.OvertakingDifficulty > a.pol.EasyOvertaking {
			return s.Compound.Harder()
		}
		return model.CompoundSoft
	case risk >= model.RiskHigh || prof.SafetyCarProb > a.pol.SafetyCarThreshold:
		// Early stop under pressure: pick a compound that covers the rest of
		// the race.
		if s.LapsRemaining > track.CompoundParams(model.CompoundMedium).MaxLife {
			return model.CompoundHard
		}
		return model.CompoundMedium
	default:
		// Mid race: strong track evolution rewards staying out longer on a
		// durable compound.
		if prof.Evolution >= a.pol.HighEvolution {
			return model.CompoundHard
		}
		return model.CompoundMedium
	}
}

// notes carries the human-readable warnings and strategy observations.
func (a Adjuster) notes(deg float64, risk model.RiskLevel, s model.RaceSituation, prof track.Profile, spec track.CompoundSpec) []string {
	var notes []string
	switch {
	case s.TireAge >= spec.CriticalAge:
		notes = append(notes, fmt.Sprintf("%s tires are beyond critical age", s.Compound))
	case s.TireAge >= spec.WarningAge:
		notes = append(notes, fmt.Sprintf("%s tires are nearing critical age", s.Compound))
	}
	switch {
	case deg >= 0.9:
		notes = append(notes, "extreme tire degradation")
	case deg >= 0.7:
		notes = append(notes, "high tire degradation")
	}
	if prof.SafetyCarProb > 0.4 {
		notes = append(notes, "high safety car probability, keep strategy flexible")
	}
	if prof.OvertakingDifficulty > 0.7 && s.LapsRemaining > a.pol.LateRaceLaps {
		notes = append(notes, "difficult overtaking, track position is crucial")
	}
	hardStint := track.StintEstimate(prof, track.CompoundParams(model.CompoundHard), s.CurrentLap)
	if s.LapsRemaining <= hardStint && risk < model.RiskHigh {
		notes = append(notes, "current tires may run to the end")
	}
	return notes
}

func stintEstimates(prof track.Profile, currentLap int) map[model.Compound]int {
	est := make(map[model.Compound]int, 3)
	for _, c := range model.Compounds() {
		est[c] = track.StintEstimate(prof, track.CompoundParams(c), currentLap)
	}
	return est
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
