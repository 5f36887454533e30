package inference

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthml/healthdata-api/internal/ml"
	"github.com/healthml/healthdata-api/internal/model"
	apperrors "github.com/healthml/healthdata-api/pkg/errors"
	"github.com/healthml/healthdata-api/pkg/logger"
)

type fakeTraining struct {
	profiles map[int64]*model.TrainingRecord
	latest   []*model.TrainingRecord
}

func (f *fakeTraining) Complete(_ context.Context, _ model.Page) ([]*model.TrainingRecord, error) {
	return nil, nil
}

func (f *fakeTraining) CompleteCount(_ context.Context) (int64, error) {
	return 0, nil
}

func (f *fakeTraining) Latest(_ context.Context, _ int) ([]*model.TrainingRecord, error) {
	return f.latest, nil
}

func (f *fakeTraining) Profile(_ context.Context, patientID int64) (*model.TrainingRecord, error) {
	rec, ok := f.profiles[patientID]
	if !ok {
		return nil, apperrors.NotFound("patient", nil)
	}
	return rec, nil
}

type fakePredictions struct {
	created []*model.Prediction
	fail    bool
}

func (f *fakePredictions) Create(_ context.Context, p *model.Prediction) error {
	if f.fail {
		return errors.New("storage down")
	}
	p.ID = int64(len(f.created) + 1)
	f.created = append(f.created, p)
	return nil
}

func (f *fakePredictions) List(_ context.Context, _ model.Page) ([]*model.Prediction, int64, error) {
	return f.created, int64(len(f.created)), nil
}

func (f *fakePredictions) ListByPatient(_ context.Context, _ int64) ([]*model.Prediction, error) {
	return f.created, nil
}

type fakeOutbox struct {
	events []*model.OutboxEvent
}

func (f *fakeOutbox) Create(_ context.Context, e *model.OutboxEvent) error {
	f.events = append(f.events, e)
	return nil
}

func (f *fakeOutbox) FetchPending(_ context.Context, _ int) ([]*model.OutboxEvent, error) {
	return f.events, nil
}

func (f *fakeOutbox) MarkPublished(_ context.Context, _ int64) error { return nil }
func (f *fakeOutbox) MarkFailed(_ context.Context, _ int64) error    { return nil }

// identityModel passes the sum of its two inputs straight through.
func identityModel() *ml.Model {
	return &ml.Model{
		Version: "model_exp5",
		Layers: []ml.Layer{
			{Weights: [][]float64{{1}, {1}}, Biases: []float64{0}, Activation: ml.ActivationLinear},
		},
	}
}

func unitScaler() *ml.Scaler {
	return &ml.Scaler{Mean: []float64{0, 0}, Std: []float64{1, 1}}
}

func record(patientID int64, highBP bool, age int) *model.TrainingRecord {
	return &model.TrainingRecord{PatientID: patientID, HighBP: &highBP, Age: &age}
}

func newTestService(t *testing.T, training *fakeTraining, preds *fakePredictions, outbox *fakeOutbox) *Service {
	t.Helper()
	svc, err := NewService(
		identityModel(), unitScaler(), []string{"HighBP", "Age"},
		training, preds, outbox, logger.NewLogger(nil),
	)
	require.NoError(t, err)
	return svc
}

func TestNewServiceRejectsDimensionMismatch(t *testing.T) {
	_, err := NewService(
		identityModel(), unitScaler(), []string{"HighBP"},
		&fakeTraining{}, &fakePredictions{}, &fakeOutbox{}, logger.NewLogger(nil),
	)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrArtifact, apperrors.Code(err))
}

func TestPredictForPatient(t *testing.T) {
	training := &fakeTraining{profiles: map[int64]*model.TrainingRecord{
		1: record(1, true, 1),
	}}
	preds := &fakePredictions{}
	outbox := &fakeOutbox{}
	svc := newTestService(t, training, preds, outbox)

	p, err := svc.PredictForPatient(context.Background(), 1)
	require.NoError(t, err)

	// raw output = 1 (HighBP) + 1 (Age) = 2
	assert.InDelta(t, 2.0, p.RawOutput, 1e-9)
	assert.Equal(t, 2, p.PredictedClass)
	assert.Equal(t, "Diabetes", p.PredictedLabel)
	assert.Equal(t, "model_exp5", p.ModelVersion)
	assert.NotEmpty(t, p.FeatureSnapshot)

	require.Len(t, preds.created, 1)
	require.Len(t, outbox.events, 1)
	assert.Equal(t, EventPredictionCreated, outbox.events[0].EventType)
}

func TestPredictForPatientMissingPatient(t *testing.T) {
	svc := newTestService(t, &fakeTraining{profiles: map[int64]*model.TrainingRecord{}}, &fakePredictions{}, &fakeOutbox{})

	_, err := svc.PredictForPatient(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestPredictDefaultsMissingFeaturesToZero(t *testing.T) {
	age := 1
	training := &fakeTraining{profiles: map[int64]*model.TrainingRecord{
		1: {PatientID: 1, Age: &age},
	}}
	svc := newTestService(t, training, &fakePredictions{}, &fakeOutbox{})

	p, err := svc.PredictForPatient(context.Background(), 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, p.RawOutput, 1e-9)
	assert.Equal(t, "Prediabetes", p.PredictedLabel)
}

func TestPredictSurvivesAuditFailure(t *testing.T) {
	training := &fakeTraining{profiles: map[int64]*model.TrainingRecord{
		1: record(1, false, 0),
	}}
	preds := &fakePredictions{fail: true}
	outbox := &fakeOutbox{}
	svc := newTestService(t, training, preds, outbox)

	p, err := svc.PredictForPatient(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, p.PredictedClass)
	assert.Empty(t, outbox.events)
}

func TestPredictLatest(t *testing.T) {
	training := &fakeTraining{latest: []*model.TrainingRecord{record(4, true, 0)}}
	svc := newTestService(t, training, &fakePredictions{}, &fakeOutbox{})

	p, err := svc.PredictLatest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), p.PatientID)
	assert.Equal(t, 1, p.PredictedClass)
}

func TestPredictLatestNoPatients(t *testing.T) {
	svc := newTestService(t, &fakeTraining{}, &fakePredictions{}, &fakeOutbox{})

	_, err := svc.PredictLatest(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestPredictBatchMixedOutcomes(t *testing.T) {
	training := &fakeTraining{profiles: map[int64]*model.TrainingRecord{
		1: record(1, false, 0),
		3: record(3, true, 1),
	}}
	svc := newTestService(t, training, &fakePredictions{}, &fakeOutbox{})

	outcomes := svc.PredictBatch(context.Background(), []int64{1, 2, 3})
	require.Len(t, outcomes, 3)

	assert.True(t, outcomes[0].Success)
	assert.Equal(t, "No Diabetes", outcomes[0].Prediction.PredictedLabel)

	assert.False(t, outcomes[1].Success)
	assert.Contains(t, outcomes[1].Error, "not found")

	assert.True(t, outcomes[2].Success)
	assert.Equal(t, "Diabetes", outcomes[2].Prediction.PredictedLabel)
}

func TestConfidence(t *testing.T) {
	assert.InDelta(t, 0.0, confidence(1.0, 1), 1e-9)
	assert.InDelta(t, 0.4, confidence(1.4, 1), 1e-9)
	assert.InDelta(t, 0.5, confidence(0.5, 1), 1e-9)
	assert.InDelta(t, 2.8, confidence(4.8, 2), 1e-9)
	// rounded to four decimals
	assert.InDelta(t, 0.1235, confidence(1.123456, 1), 1e-9)
}
