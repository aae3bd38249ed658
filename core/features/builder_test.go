package features

import (
	"testing"

	"github.com/pitlane-analytics/pitwall/core/model"
	"github.com/pitlane-analytics/pitwall/core/track"
)

func situation() model.RaceSituation {
	return model.RaceSituation{
		CurrentLap:       10,
		LapsRemaining:    40,
		Compound:         model.CompoundSoft,
		TireAge:          8,
		DegradationLevel: 0.4,
		TrackTemp:        35,
		AirTemp:          24,
		Humidity:         55,
		Position:         4,
	}
}

func mustProfile(t *testing.T, name string) track.Profile {
	t.Helper()
	p, err := track.Lookup(name)
	if err != nil {
		t.Fatalf("lookup %s: %v", name, err)
	}
	return p
}

func TestBuild_LengthAndDeterminism(t *testing.T) {
	s := situation()
	prof := mustProfile(t, "Monza")
	spec := track.CompoundParams(s.Compound)

	v1, err := Build(s, prof, spec)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(v1) != VectorLen {
		t.Fatalf("expected %d features, got %d", VectorLen, len(v1))
	}
	v2, err := Build(s, prof, spec)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for i := range v1 {
		if v1[i] != v2[i] {
			t.Fatalf("feature %d differs between identical builds: %v vs %v", i, v1[i], v2[i])
		}
	}
}

func TestBuild_ClampsNoisyReadings(t *testing.T) {
	s := situation()
	s.TrackTemp = 200
	s.AirTemp = -40
	s.Humidity = 180
	s.DegradationLevel = 1.7
	prof := mustProfile(t, "Spa")
	spec := track.CompoundParams(s.Compound)

	noisy, err := Build(s, prof, spec)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	s.TrackTemp = maxTrackTemp
	s.AirTemp = minAirTemp
	s.Humidity = 100
	s.DegradationLevel = 1
	clamped, err := Build(s, prof, spec)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for i := range noisy {
		if noisy[i] != clamped[i] {
			t.Fatalf("feature %d: clamped build differs: %v vs %v", i, noisy[i], clamped[i])
		}
	}
}

func TestBuild_TireAgeSoftCap(t *testing.T) {
	s := situation()
	s.TireAge = 500
	prof := mustProfile(t, "Monza")
	spec := track.CompoundParams(s.Compound)
	v, err := Build(s, prof, spec)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	maxAge := float64(spec.MaxLife) * prof.DegFactor
	if v[1] != maxAge {
		t.Fatalf("expected age clamped to %v, got %v", maxAge, v[1])
	}
}

func TestBuild_RejectsMalformedCounters(t *testing.T) {
	prof := mustProfile(t, "Monza")
	spec := track.CompoundParams(model.CompoundSoft)

	cases := []struct {
		name   string
		mutate func(*model.RaceSituation)
	}{
		{"lap zero", func(s *model.RaceSituation) { s.CurrentLap = 0 }},
		{"negative laps remaining", func(s *model.RaceSituation) { s.LapsRemaining = -1 }},
		{"negative tire age", func(s *model.RaceSituation) { s.TireAge = -3 }},
	}
	for _, tc := range cases {
		s := situation()
		tc.mutate(&s)
		if _, err := Build(s, prof, spec); err == nil {
			t.Errorf("%s: expected error", tc.name)
		} else if !model.IsInvalidInput(err) {
			t.Errorf("%s: expected InvalidInput, got %v", tc.name, err)
		}
	}
}

func TestPositionBucket(t *testing.T) {
	cases := []struct {
		position int
		want     [3]float64
	}{
		{1, [3]float64{1, 0, 0}},
		{frontRunnerMax, [3]float64{1, 0, 0}},
		{frontRunnerMax + 1, [3]float64{0, 1, 0}},
		{midfieldMax, [3]float64{0, 1, 0}},
		{midfieldMax + 1, [3]float64{0, 0, 1}},
		{20, [3]float64{0, 0, 1}},
	}
	for _, tc := range cases {
		got := positionBucket(tc.position)
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("position %d: bucket %v, want %v", tc.position, got, tc.want)
				break
			}
		}
	}
}
