package track

import "math"

// Standard F1 race fuel load in kg.
const initialFuelKG = 110.0

// FuelEffect estimates how the remaining fuel load degrades tire performance
// on the given lap. The result is a multiplier in [1.0, 2.0]; heavier cars
// stress tires more, with compound-specific sensitivity.
func FuelEffect(p Profile, spec CompoundSpec, currentLap int) float64 {
	laps := p.TotalLaps
	if laps < 1 {
		laps = 1
	}
	fuelPerLap := initialFuelKG / float64(laps)
	currentFuel := math.Max(0, initialFuelKG-float64(currentLap)*fuelPerLap)
	fuelRatio := currentFuel / initialFuelKG

	effect := fuelRatio*spec.FuelBaseEffect + 0.83
	sensitivity := math.Min(0.5, spec.FuelSensitivity*currentFuel)
	effect *= 1 + sensitivity

	weight := fuelRatio * spec.FuelWeight / 2
	final := math.Min(1.5, effect+weight) * spec.FuelPerformance
	return math.Max(1.0, math.Min(2.0, final))
}

// DerivedDegradation computes the normalized tire performance loss from the
// domain model alone, for callers that have no measured degradation. Age
// drives the base loss, scaled by the track factor, reduced by track
// evolution and amplified by fuel load.
func DerivedDegradation(p Profile, spec CompoundSpec, tireAge, currentLap int) float64 {
	maxLife := spec.MaxLife
	if maxLife < 1 {
		maxLife = 1
	}
	base := float64(tireAge) / float64(maxLife)
	evolutionBenefit := math.Min(0.5, p.Evolution*float64(currentLap))
	fuel := FuelEffect(p, spec, currentLap)
	deg := base * p.DegFactor * (1 - evolutionBenefit) * (fuel / 2)
	return math.Max(0, math.Min(1, deg))
}

// StintEstimate returns the expected stint length in laps for a compound at
// the given point of the race, never below 5 laps.
func StintEstimate(p Profile, spec CompoundSpec, currentLap int) int {
	fuel := FuelEffect(p, spec, currentLap)
	adjusted := int(float64(spec.MaxLife) / (p.DegFactor * fuel))
	if adjusted < 5 {
		return 5
	}
	return adjusted
}
