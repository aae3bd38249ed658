package modelstore

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// artifact is the on-disk representation of a trained boosted ensemble. The
// prediction target is laps until the optimal stop, matching the training
// pipeline's framing.
type artifact struct {
	Track       string  `json:"track"`
	NumFeatures int     `json:"num_features"`
	Base        float64 `json:"base"`
	Scaler      *scaler `json:"scaler,omitempty"`
	Trees       []tree  `json:"trees"`
}

// scaler holds the standardization parameters fitted during training.
type scaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

type tree struct {
	Nodes []node `json:"nodes"`
}

// node is one decision or leaf node. Decision nodes route on
// feature<=threshold; leaves carry the additive contribution.
type node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Leaf      bool    `json:"leaf"`
	Value     float64 `json:"value"`
}

func (a artifact) validate() error {
	if a.NumFeatures < 1 {
		return fmt.Errorf("num_features must be >= 1, got %d", a.NumFeatures)
	}
	if len(a.Trees) == 0 {
		return fmt.Errorf("artifact contains no trees")
	}
	if a.Scaler != nil {
		if len(a.Scaler.Mean) != a.NumFeatures || len(a.Scaler.Std) != a.NumFeatures {
			return fmt.Errorf("scaler length %d/%d does not match %d features",
				len(a.Scaler.Mean), len(a.Scaler.Std), a.NumFeatures)
		}
		for i, sd := range a.Scaler.Std {
			if sd <= 0 {
				return fmt.Errorf("scaler std[%d] must be positive, got %v", i, sd)
			}
		}
	}
	for ti, t := range a.Trees {
		if len(t.Nodes) == 0 {
			return fmt.Errorf("tree %d is empty", ti)
		}
		for ni, n := range t.Nodes {
			if n.Leaf {
				continue
			}
			if n.Feature < 0 || n.Feature >= a.NumFeatures {
				return fmt.Errorf("tree %d node %d references feature %d", ti, ni, n.Feature)
			}
			if n.Left < 0 || n.Left >= len(t.Nodes) || n.Right < 0 || n.Right >= len(t.Nodes) {
				return fmt.Errorf("tree %d node %d has out-of-range children", ti, ni)
			}
		}
	}
	return nil
}

// Model is a loaded ensemble. It holds no mutable state and is safe for
// concurrent inference.
type Model struct {
	art artifact
}

// NumFeatures returns the input vector length the model was trained on.
func (m *Model) NumFeatures() int { return m.art.NumFeatures }

// Infer standardizes the vector, sums the tree contributions on top of the
// base score and reports the spread across trees as the variance proxy.
func (m *Model) Infer(features []float64) (float64, float64, error) {
	if len(features) != m.art.NumFeatures {
		return 0, 0, fmt.Errorf("expected %d features, got %d", m.art.NumFeatures, len(features))
	}

	x := make([]float64, len(features))
	copy(x, features)
	if m.art.Scaler != nil {
		floats.Sub(x, m.art.Scaler.Mean)
		floats.Div(x, m.art.Scaler.Std)
	}

	outs := make([]float64, len(m.art.Trees))
	for i, t := range m.art.Trees {
		outs[i] = t.eval(x)
	}

	pred := m.art.Base + floats.Sum(outs)
	spread := 0.0
	if len(outs) > 1 {
		spread = stat.StdDev(outs, nil)
	}
	return pred, spread, nil
}

func (t tree) eval(x []float64) float64 {
	i := 0
	// Bounded by the node count; child indices were validated at load time.
	for range t.Nodes {
		n := t.Nodes[i]
		if n.Leaf {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return t.Nodes[i].Value
}
