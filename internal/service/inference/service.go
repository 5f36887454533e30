package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/healthml/healthdata-api/internal/ml"
	"github.com/healthml/healthdata-api/internal/model"
	"github.com/healthml/healthdata-api/internal/repository"
	apperrors "github.com/healthml/healthdata-api/pkg/errors"
	"github.com/healthml/healthdata-api/pkg/logger"
)

// EventPredictionCreated is published through the outbox after every
// successful prediction.
const EventPredictionCreated = "prediction.created"

const maxBatchSize = 100

// Service wraps the pre-trained classifier behind an explicit, injected
// service object. The model, scaler and feature list are loaded once at
// construction and never mutated afterwards.
type Service struct {
	model    *ml.Model
	scaler   *ml.Scaler
	features []string

	training    repository.TrainingDataStore
	predictions repository.PredictionStore
	outbox      repository.OutboxRepository
	logger      *logger.Logger
}

// NewService wires the inference pipeline and verifies that the three
// artifacts agree on dimensionality. A mismatch is a deployment error and
// fails construction.
func NewService(
	m *ml.Model,
	scaler *ml.Scaler,
	features []string,
	training repository.TrainingDataStore,
	predictions repository.PredictionStore,
	outbox repository.OutboxRepository,
	log *logger.Logger,
) (*Service, error) {
	if len(features) != scaler.Dim() {
		return nil, apperrors.Artifact(fmt.Sprintf("scaler expects %d features, feature list has %d", scaler.Dim(), len(features)), nil)
	}
	if len(features) != m.InputDim() {
		return nil, apperrors.Artifact(fmt.Sprintf("model expects %d inputs, feature list has %d", m.InputDim(), len(features)), nil)
	}
	return &Service{
		model:       m,
		scaler:      scaler,
		features:    features,
		training:    training,
		predictions: predictions,
		outbox:      outbox,
		logger:      log,
	}, nil
}

// ModelVersion reports the version of the loaded model artifact.
func (s *Service) ModelVersion() string {
	return s.model.Version
}

// PredictForPatient classifies one patient from their stored profile.
// Missing attributes default to zero; an absent patient is not-found.
func (s *Service) PredictForPatient(ctx context.Context, patientID int64) (*model.Prediction, error) {
	rec, err := s.training.Profile(ctx, patientID)
	if err != nil {
		predictionFailures.Inc()
		return nil, err
	}
	return s.predict(ctx, rec)
}

// PredictLatest classifies the most recently updated patient.
func (s *Service) PredictLatest(ctx context.Context) (*model.Prediction, error) {
	records, err := s.training.Latest(ctx, 1)
	if err != nil {
		predictionFailures.Inc()
		return nil, err
	}
	if len(records) == 0 {
		predictionFailures.Inc()
		return nil, apperrors.NotFound("patient", nil)
	}
	return s.predict(ctx, records[0])
}

// PredictBatch classifies up to 100 patients, reporting a per-patient
// outcome. One failing patient never aborts the rest.
func (s *Service) PredictBatch(ctx context.Context, patientIDs []int64) []model.PredictOutcome {
	if len(patientIDs) > maxBatchSize {
		patientIDs = patientIDs[:maxBatchSize]
	}
	outcomes := make([]model.PredictOutcome, 0, len(patientIDs))
	for _, id := range patientIDs {
		outcome := model.PredictOutcome{PatientID: id}
		p, err := s.PredictForPatient(ctx, id)
		if err != nil {
			outcome.Error = err.Error()
		} else {
			outcome.Success = true
			outcome.PredictionID = p.ID
			outcome.Prediction = result(p)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func (s *Service) predict(ctx context.Context, rec *model.TrainingRecord) (*model.Prediction, error) {
	start := time.Now()

	vector := ml.BuildVector(rec, s.features)
	scaled, err := s.scaler.Transform(vector)
	if err != nil {
		predictionFailures.Inc()
		return nil, err
	}
	raw, err := s.model.Predict(scaled)
	if err != nil {
		predictionFailures.Inc()
		return nil, err
	}
	class := ml.InterpretPrediction(raw)

	snapshot, err := json.Marshal(snapshotFeatures(s.features, vector))
	if err != nil {
		snapshot = nil
	}

	prediction := &model.Prediction{
		PatientID:       rec.PatientID,
		RawOutput:       raw,
		PredictedClass:  class,
		PredictedLabel:  ml.ClassLabels[class],
		ModelVersion:    s.model.Version,
		PredictedAt:     time.Now().UTC(),
		FeatureSnapshot: snapshot,
	}

	// The audit trail is best effort. A storage outage must not turn a
	// successful prediction into an error.
	if err := s.predictions.Create(ctx, prediction); err != nil {
		s.logger.Warn("prediction audit write failed", "patient_id", rec.PatientID, "error", err.Error())
	} else {
		s.enqueueEvent(ctx, prediction)
	}

	predictionsTotal.WithLabelValues(strconv.Itoa(class)).Inc()
	predictionDuration.Observe(time.Since(start).Seconds())
	return prediction, nil
}

func (s *Service) enqueueEvent(ctx context.Context, p *model.Prediction) {
	payload, err := json.Marshal(p)
	if err != nil {
		return
	}
	event := &model.OutboxEvent{
		EventType: EventPredictionCreated,
		Payload:   payload,
	}
	if err := s.outbox.Create(ctx, event); err != nil {
		s.logger.Warn("outbox enqueue failed", "prediction_id", p.ID, "error", err.Error())
	}
}

// Confidence is the distance between the raw regression output and the
// chosen class, rounded to four decimals. Zero means the output landed
// exactly on the class; larger values mean a less certain rounding.
func confidence(raw float64, class int) float64 {
	return math.Round(math.Abs(raw-float64(class))*10000) / 10000
}

func result(p *model.Prediction) *model.PredictionResult {
	return &model.PredictionResult{
		RawOutput:      p.RawOutput,
		PredictedClass: p.PredictedClass,
		PredictedLabel: p.PredictedLabel,
		Confidence:     confidence(p.RawOutput, p.PredictedClass),
	}
}

// Result converts a stored prediction into its response form.
func Result(p *model.Prediction) *model.PredictionResult {
	return result(p)
}

func snapshotFeatures(names []string, vector []float64) map[string]float64 {
	snap := make(map[string]float64, len(names))
	for i, name := range names {
		snap[name] = vector[i]
	}
	return snap
}
