package strategy

import (
	"testing"

	"github.com/pitlane-analytics/pitwall/core/model"
	"github.com/pitlane-analytics/pitwall/core/policy"
	"github.com/pitlane-analytics/pitwall/core/track"
)

func mustProfile(t *testing.T, name string) track.Profile {
	t.Helper()
	p, err := track.Lookup(name)
	if err != nil {
		t.Fatalf("lookup %s: %v", name, err)
	}
	return p
}

func midRace() model.RaceSituation {
	return model.RaceSituation{
		CurrentLap:       10,
		LapsRemaining:    40,
		Compound:         model.CompoundSoft,
		TireAge:          8,
		DegradationLevel: 0.4,
		Position:         5,
	}
}

func TestAdjust_WindowContainsOptimalWithinRace(t *testing.T) {
	adj := NewAdjuster(policy.Default())
	prof := mustProfile(t, "Monza")
	s := midRace()

	for raw := 10.0; raw <= 50; raw += 2.5 {
		for unc := 0.0; unc <= 6; unc += 1.5 {
			res, err := adj.Adjust(raw, unc, s, prof)
			if err != nil {
				t.Fatalf("raw %v unc %v: %v", raw, unc, err)
			}
			lo, hi := s.CurrentLap, s.CurrentLap+s.LapsRemaining
			if res.Window.Lower > res.OptimalLap || res.OptimalLap > res.Window.Upper {
				t.Fatalf("raw %v unc %v: optimal %d outside window [%d,%d]",
					raw, unc, res.OptimalLap, res.Window.Lower, res.Window.Upper)
			}
			if res.Window.Lower < lo || res.Window.Upper > hi {
				t.Fatalf("raw %v unc %v: window [%d,%d] outside race [%d,%d]",
					raw, unc, res.Window.Lower, res.Window.Upper, lo, hi)
			}
			if res.LapsUntilPit < 0 {
				t.Fatalf("negative laps until pit: %d", res.LapsUntilPit)
			}
			if res.Confidence < 0 || res.Confidence > 1 {
				t.Fatalf("confidence %v outside [0,1]", res.Confidence)
			}
		}
	}
}

func TestAdjust_NoLapsRemaining(t *testing.T) {
	adj := NewAdjuster(policy.Default())
	s := midRace()
	s.LapsRemaining = 0
	res, err := adj.Adjust(float64(s.CurrentLap), 2, s, mustProfile(t, "Monza"))
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if res.OptimalLap != s.CurrentLap || res.Window.Lower != s.CurrentLap || res.Window.Upper != s.CurrentLap {
		t.Fatalf("expected degenerate window at lap %d, got optimal %d window [%d,%d]",
			s.CurrentLap, res.OptimalLap, res.Window.Lower, res.Window.Upper)
	}
	if res.LapsUntilPit != 0 {
		t.Fatalf("expected 0 laps until pit, got %d", res.LapsUntilPit)
	}
}

func TestAdjust_Idempotent(t *testing.T) {
	adj := NewAdjuster(policy.Default())
	s := midRace()
	prof := mustProfile(t, "Silverstone")

	first, err := adj.Adjust(24, 2, s, prof)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	again, err := adj.Adjust(float64(first.OptimalLap), first.Uncertainty, s, prof)
	if err != nil {
		t.Fatalf("re-adjust: %v", err)
	}
	if again.OptimalLap != first.OptimalLap || again.Window != first.Window {
		t.Fatalf("re-adjusting a clamped result moved it: %+v vs %+v", first, again)
	}
}

func TestAdjust_MonzaMidRaceExample(t *testing.T) {
	adj := NewAdjuster(policy.Default())
	s := midRace() // lap 10, 40 remaining, soft, age 8, degradation 0.4
	prof := mustProfile(t, "Monza")

	res, err := adj.Adjust(20, 2.6, s, prof)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if res.OptimalLap < 11 || res.OptimalLap > 30 {
		t.Fatalf("optimal lap %d outside the expected Monza window [11,30]", res.OptimalLap)
	}
	if res.Risk != model.RiskMedium && res.Risk != model.RiskHigh {
		t.Fatalf("expected medium or high risk, got %s", res.Risk)
	}
}

func TestAdjust_HighUncertaintyCapsConfidence(t *testing.T) {
	adj := NewAdjuster(policy.Default())
	s := midRace()
	prof := mustProfile(t, "Monza")
	res, err := adj.Adjust(20, 3, s, prof)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if res.Confidence > 0.5 {
		t.Fatalf("confidence %v above 0.5 despite 3 laps of uncertainty", res.Confidence)
	}
}

func TestAdjust_LateRaceDefensiveCompound(t *testing.T) {
	adj := NewAdjuster(policy.Default())
	s := midRace()
	s.CurrentLap = 49
	s.LapsRemaining = 3
	s.Compound = model.CompoundMedium
	s.TireAge = 20
	prof := mustProfile(t, "Silverstone") // overtaking difficulty 0.35

	res, err := adj.Adjust(50, 1, s, prof)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if res.RecommendedCompound != model.CompoundHard {
		t.Fatalf("expected conservative compound on a hard-to-pass track, got %s", res.RecommendedCompound)
	}
	if res.Window.Upper > s.CurrentLap+3 {
		t.Fatalf("window upper %d beyond final lap %d", res.Window.Upper, s.CurrentLap+3)
	}
}

func TestAdjust_LateRaceAggressiveCompound(t *testing.T) {
	adj := NewAdjuster(policy.Default())
	s := midRace()
	s.CurrentLap = 48
	s.LapsRemaining = 5
	s.Compound = model.CompoundMedium
	prof := mustProfile(t, "Monza") // overtaking difficulty 0.25

	res, err := adj.Adjust(50, 1, s, prof)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if res.RecommendedCompound != model.CompoundSoft {
		t.Fatalf("expected aggressive compound where passing is easy, got %s", res.RecommendedCompound)
	}
}

func TestAdjust_HighRiskShiftsWindowDown(t *testing.T) {
	pol := policy.Default()
	adj := NewAdjuster(pol)
	prof := mustProfile(t, "Silverstone") // safety car 0.30, below threshold

	calm := midRace()
	calm.DegradationLevel = 0.2
	stressed := midRace()
	stressed.DegradationLevel = 0.7 // x1.2 factor = high risk

	calmRes, err := adj.Adjust(25, 1, calm, prof)
	if err != nil {
		t.Fatalf("adjust calm: %v", err)
	}
	stressedRes, err := adj.Adjust(25, 1, stressed, prof)
	if err != nil {
		t.Fatalf("adjust stressed: %v", err)
	}
	if stressedRes.Window.Lower >= calmRes.Window.Lower {
		t.Fatalf("high risk should open the window earlier: calm %d, stressed %d",
			calmRes.Window.Lower, stressedRes.Window.Lower)
	}
}

func TestAdjust_MidRaceEvolutionFavorsDurableCompound(t *testing.T) {
	adj := NewAdjuster(policy.Default())
	s := midRace()
	s.DegradationLevel = 0.2

	highEvo := adjustOn(t, adj, s, "Monza") // evolution 0.08
	if highEvo.RecommendedCompound != model.CompoundHard {
		t.Fatalf("strong evolution should favor hard, got %s", highEvo.RecommendedCompound)
	}

	lowEvo := adjustOn(t, adj, s, "Silverstone") // evolution 0.07
	if lowEvo.RecommendedCompound != model.CompoundMedium {
		t.Fatalf("weak evolution should favor medium, got %s", lowEvo.RecommendedCompound)
	}
}

func TestAdjust_StintEstimatesAndNotes(t *testing.T) {
	adj := NewAdjuster(policy.Default())
	s := midRace()
	s.TireAge = 17 // past the soft critical age of 16

	res := adjustOn(t, adj, s, "Monza")
	if res.Risk != model.RiskCritical {
		t.Fatalf("tires past critical age must classify critical, got %s", res.Risk)
	}
	if len(res.StintEstimates) != 3 {
		t.Fatalf("expected stint estimates for all compounds, got %v", res.StintEstimates)
	}
	if res.StintEstimates[model.CompoundHard] < res.StintEstimates[model.CompoundSoft] {
		t.Fatalf("hard stint %d shorter than soft stint %d",
			res.StintEstimates[model.CompoundHard], res.StintEstimates[model.CompoundSoft])
	}
	if len(res.Notes) == 0 {
		t.Fatal("expected an age warning note")
	}
}

func adjustOn(t *testing.T, adj Adjuster, s model.RaceSituation, trackName string) model.PredictionResult {
	t.Helper()
	res, err := adj.Adjust(25, 1.5, s, mustProfile(t, trackName))
	if err != nil {
		t.Fatalf("adjust on %s: %v", trackName, err)
	}
	return res
}
