package training

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthml/healthdata-api/internal/model"
	"github.com/healthml/healthdata-api/pkg/logger"
)

type fakeTrainingStore struct {
	completeCalls int
	countCalls    int
	lastPage      model.Page
	lastLimit     int
	total         int64
	records       []*model.TrainingRecord
}

func (f *fakeTrainingStore) Complete(_ context.Context, page model.Page) ([]*model.TrainingRecord, error) {
	f.completeCalls++
	f.lastPage = page
	return f.records, nil
}

func (f *fakeTrainingStore) CompleteCount(_ context.Context) (int64, error) {
	f.countCalls++
	return f.total, nil
}

func (f *fakeTrainingStore) Latest(_ context.Context, limit int) ([]*model.TrainingRecord, error) {
	f.lastLimit = limit
	return f.records, nil
}

func (f *fakeTrainingStore) Profile(_ context.Context, patientID int64) (*model.TrainingRecord, error) {
	return &model.TrainingRecord{PatientID: patientID}, nil
}

func TestCompleteClampsPage(t *testing.T) {
	store := &fakeTrainingStore{total: 42}
	svc := NewService(store, logger.NewLogger(nil))

	_, total, err := svc.Complete(context.Background(), model.Page{Skip: -1, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(42), total)
	assert.Equal(t, 0, store.lastPage.Skip)
	assert.Equal(t, 100, store.lastPage.Limit)
}

func TestCompleteCountUsesCache(t *testing.T) {
	store := &fakeTrainingStore{total: 7}
	svc := NewService(store, logger.NewLogger(nil))

	// first call is a cache miss and hits the store
	total, err := svc.CompleteCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Equal(t, 1, store.countCalls)

	store.total = 99
	total, err = svc.CompleteCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Equal(t, 1, store.countCalls)
}

func TestCompleteServesTotalFromCache(t *testing.T) {
	store := &fakeTrainingStore{total: 5}
	svc := NewService(store, logger.NewLogger(nil))

	_, total, err := svc.Complete(context.Background(), model.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	store.total = 11
	_, total, err = svc.Complete(context.Background(), model.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Equal(t, 2, store.completeCalls)
	assert.Equal(t, 1, store.countCalls)
}

func TestLatestClampsLimit(t *testing.T) {
	store := &fakeTrainingStore{}
	svc := NewService(store, logger.NewLogger(nil))

	_, err := svc.Latest(context.Background(), -3)
	require.NoError(t, err)
	assert.Equal(t, 1, store.lastLimit)

	_, err = svc.Latest(context.Background(), 50000)
	require.NoError(t, err)
	assert.Equal(t, model.MaxPageLimit, store.lastLimit)
}
