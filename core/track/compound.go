package track

import "github.com/pitlane-analytics/pitwall/core/model"

// CompoundSpec holds the static characteristics of a dry tire compound.
type CompoundSpec struct {
	MaxLife     int     // maximum life in laps
	GripLevel   float64 // relative grip, soft = 1.0
	DegRate     float64 // relative degradation rate
	OptimalTemp float64 // degrees C
	WarningAge  int     // laps after which the set should be watched
	CriticalAge int     // laps after which the set is a liability

	// Fuel sensitivity parameters for the fuel-effect curve.
	FuelBaseEffect  float64
	FuelSensitivity float64
	FuelWeight      float64
	FuelPerformance float64
}

var compounds = map[model.Compound]CompoundSpec{
	model.CompoundSoft: {
		MaxLife: 20, GripLevel: 1.0, DegRate: 1.3, OptimalTemp: 90,
		WarningAge: 12, CriticalAge: 16,
		FuelBaseEffect: 2.0, FuelSensitivity: 0.02, FuelWeight: 1.6, FuelPerformance: 1.55,
	},
	model.CompoundMedium: {
		MaxLife: 30, GripLevel: 0.85, DegRate: 1.0, OptimalTemp: 85,
		WarningAge: 20, CriticalAge: 25,
		FuelBaseEffect: 1.5, FuelSensitivity: 0.015, FuelWeight: 1.3, FuelPerformance: 1.3,
	},
	model.CompoundHard: {
		MaxLife: 40, GripLevel: 0.7, DegRate: 0.8, OptimalTemp: 80,
		WarningAge: 30, CriticalAge: 35,
		FuelBaseEffect: 1.0, FuelSensitivity: 0.01, FuelWeight: 0.8, FuelPerformance: 1.25,
	},
}

// CompoundParams returns the spec for a compound. The lookup is total over
// the Compound enum.
func CompoundParams(c model.Compound) CompoundSpec {
	return compounds[c]
}
