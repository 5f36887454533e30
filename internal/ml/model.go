package ml

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	apperrors "github.com/healthml/healthdata-api/pkg/errors"
)

const (
	ActivationReLU    = "relu"
	ActivationSigmoid = "sigmoid"
	ActivationLinear  = "linear"
)

// Layer is one dense layer: Weights[i][j] connects input i to unit j.
type Layer struct {
	Weights    [][]float64 `json:"weights"`
	Biases     []float64   `json:"biases"`
	Activation string      `json:"activation"`
}

// Model is a feed-forward network exported to JSON at training time. The
// final layer has a single unit, so Predict yields one scalar.
type Model struct {
	Version string  `json:"version"`
	Layers  []Layer `json:"layers"`
}

func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Artifact("cannot read model file", err)
	}
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, apperrors.Artifact("malformed model file", err)
	}
	if err := m.validate(); err != nil {
		return nil, apperrors.Artifact(err.Error(), nil)
	}
	return &m, nil
}

func (m *Model) validate() error {
	if m.Version == "" {
		return fmt.Errorf("model: missing version")
	}
	if len(m.Layers) == 0 {
		return fmt.Errorf("model: no layers")
	}
	for li, layer := range m.Layers {
		if len(layer.Weights) == 0 {
			return fmt.Errorf("model: layer %d has no weights", li)
		}
		units := len(layer.Biases)
		if units == 0 {
			return fmt.Errorf("model: layer %d has no biases", li)
		}
		for ri, row := range layer.Weights {
			if len(row) != units {
				return fmt.Errorf("model: layer %d weight row %d has %d columns, want %d", li, ri, len(row), units)
			}
		}
		switch layer.Activation {
		case ActivationReLU, ActivationSigmoid, ActivationLinear:
		default:
			return fmt.Errorf("model: layer %d has unknown activation %q", li, layer.Activation)
		}
		if li > 0 && len(layer.Weights) != len(m.Layers[li-1].Biases) {
			return fmt.Errorf("model: layer %d expects %d inputs, previous layer emits %d", li, len(layer.Weights), len(m.Layers[li-1].Biases))
		}
	}
	if len(m.Layers[len(m.Layers)-1].Biases) != 1 {
		return fmt.Errorf("model: output layer must have exactly one unit")
	}
	return nil
}

// InputDim reports the number of features the first layer expects.
func (m *Model) InputDim() int { return len(m.Layers[0].Weights) }

// Predict runs the forward pass and returns the raw scalar output.
func (m *Model) Predict(vector []float64) (float64, error) {
	if len(vector) != m.InputDim() {
		return 0, apperrors.Internal(fmt.Errorf("model: expected %d inputs, got %d", m.InputDim(), len(vector)))
	}
	current := vector
	for _, layer := range m.Layers {
		next := make([]float64, len(layer.Biases))
		for j := range layer.Biases {
			sum := layer.Biases[j]
			for i, x := range current {
				sum += x * layer.Weights[i][j]
			}
			next[j] = activate(layer.Activation, sum)
		}
		current = next
	}
	return current[0], nil
}

func activate(name string, x float64) float64 {
	switch name {
	case ActivationReLU:
		return math.Max(0, x)
	case ActivationSigmoid:
		return 1 / (1 + math.Exp(-x))
	default:
		return x
	}
}

// InterpretPrediction maps a raw model output onto the three-class scale by
// rounding and clamping to [0, 2].
func InterpretPrediction(raw float64) int {
	class := int(math.Round(raw))
	if class < 0 {
		class = 0
	}
	if class > 2 {
		class = 2
	}
	return class
}

// ClassLabels maps classes to human readable outcomes.
var ClassLabels = map[int]string{
	0: "No Diabetes",
	1: "Prediabetes",
	2: "Diabetes",
}
