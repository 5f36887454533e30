package ml

import (
	"encoding/json"
	"fmt"
	"os"

	apperrors "github.com/healthml/healthdata-api/pkg/errors"
)

// Scaler applies the standardization fitted at training time: (x - mean) / std.
type Scaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

func LoadScaler(path string) (*Scaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Artifact("cannot read scaler file", err)
	}
	var s Scaler
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, apperrors.Artifact("malformed scaler file", err)
	}
	if len(s.Mean) == 0 || len(s.Mean) != len(s.Std) {
		return nil, apperrors.Artifact(fmt.Sprintf("scaler mean/std length mismatch (%d vs %d)", len(s.Mean), len(s.Std)), nil)
	}
	for i, sd := range s.Std {
		if sd == 0 {
			return nil, apperrors.Artifact(fmt.Sprintf("scaler has zero std at index %d", i), nil)
		}
	}
	return &s, nil
}

// Dim reports the fitted dimensionality.
func (s *Scaler) Dim() int { return len(s.Mean) }

// Transform standardizes a vector in a fresh slice. The input length must
// match the fitted dimensionality.
func (s *Scaler) Transform(vector []float64) ([]float64, error) {
	if len(vector) != len(s.Mean) {
		return nil, apperrors.Internal(fmt.Errorf("scaler: expected %d features, got %d", len(s.Mean), len(vector)))
	}
	out := make([]float64, len(vector))
	for i, v := range vector {
		out[i] = (v - s.Mean[i]) / s.Std[i]
	}
	return out, nil
}
