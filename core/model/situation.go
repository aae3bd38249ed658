package model

// RaceSituation is a single race snapshot used as prediction input. One
// situation is built per request; the advisor never mutates it.
type RaceSituation struct {
	CurrentLap    int     // current lap number, starting at 1
	LapsRemaining int     // laps left in the race
	Compound      Compound
	TireAge       int     // laps driven on the current set
	// DegradationLevel is the normalized tire performance loss in [0,1].
	// A negative value asks the advisor to derive it from the domain model.
	DegradationLevel float64
	TrackTemp        float64 // degrees C
	AirTemp          float64 // degrees C
	Humidity         float64 // percent
	Position         int     // current classification, 1 = leader
}

// RiskLevel classifies tire degradation risk.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
	RiskCritical
)

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	case RiskCritical:
		return "critical"
	}
	return "unknown"
}

// MarshalText renders the risk level name.
func (r RiskLevel) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
