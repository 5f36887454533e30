package ml

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/healthml/healthdata-api/internal/model"
	apperrors "github.com/healthml/healthdata-api/pkg/errors"
)

// LoadFeatureNames reads the ordered feature list, one name per line.
// The order defines the layout of every vector fed to the scaler and model.
func LoadFeatureNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Artifact("cannot open feature names file", err)
	}
	defer f.Close()

	names := []string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.Artifact("cannot read feature names file", err)
	}
	if len(names) == 0 {
		return nil, apperrors.Artifact(fmt.Sprintf("feature names file %s is empty", path), nil)
	}
	return names, nil
}

// BuildVector extracts the named features from a training record in order.
// Booleans become 1/0, absent values default to 0.
func BuildVector(rec *model.TrainingRecord, names []string) []float64 {
	vector := make([]float64, len(names))
	for i, name := range names {
		vector[i] = normalize(rec.Value(name))
	}
	return vector
}

func normalize(v interface{}) float64 {
	switch t := v.(type) {
	case nil:
		return 0.0
	case bool:
		if t {
			return 1.0
		}
		return 0.0
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	default:
		return 0.0
	}
}
