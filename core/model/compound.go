package model

import "strings"

// Compound identifies a dry tire compound.
type Compound int

const (
	CompoundSoft Compound = iota
	CompoundMedium
	CompoundHard
)

var compoundNames = map[Compound]string{
	CompoundSoft:   "SOFT",
	CompoundMedium: "MEDIUM",
	CompoundHard:   "HARD",
}

func (c Compound) String() string {
	if n, ok := compoundNames[c]; ok {
		return n
	}
	return "UNKNOWN"
}

// Harder returns the next harder compound. Hard has no harder option and
// returns itself.
func (c Compound) Harder() Compound {
	if c >= CompoundHard {
		return CompoundHard
	}
	return c + 1
}

// Softer returns the next softer compound. Soft returns itself.
func (c Compound) Softer() Compound {
	if c <= CompoundSoft {
		return CompoundSoft
	}
	return c - 1
}

// MarshalText renders the compound name. It also applies when a Compound is
// used as a JSON map key.
func (c Compound) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a compound name.
func (c *Compound) UnmarshalText(b []byte) error {
	parsed, err := ParseCompound(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCompound converts a compound name to its enum value. Matching is
// case-insensitive.
func ParseCompound(name string) (Compound, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "SOFT":
		return CompoundSoft, nil
	case "MEDIUM":
		return CompoundMedium, nil
	case "HARD":
		return CompoundHard, nil
	default:
		return 0, &InvalidInputError{Field: "compound", Value: name, Reason: "unknown compound"}
	}
}

// Compounds lists all compounds from softest to hardest.
func Compounds() []Compound {
	return []Compound{CompoundSoft, CompoundMedium, CompoundHard}
}
