package model

// PitWindow is the inclusive lap range within which pitting is advised.
type PitWindow struct {
	Lower int `json:"lower"`
	Upper int `json:"upper"`
}

// PredictionResult is the final strategy recommendation for one situation.
type PredictionResult struct {
	Track               string           `json:"track"`
	OptimalLap          int              `json:"optimal_lap"`
	LapsUntilPit        int              `json:"laps_until_pit"`
	Window              PitWindow        `json:"pit_window"`
	Confidence          float64          `json:"confidence"`
	Uncertainty         float64          `json:"uncertainty"` // laps
	RecommendedCompound Compound         `json:"recommended_compound"`
	Risk                RiskLevel        `json:"risk_level"`
	StintEstimates      map[Compound]int `json:"stint_estimates,omitempty"`
	Notes               []string         `json:"notes,omitempty"`
}
