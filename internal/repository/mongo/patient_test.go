package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthml/healthdata-api/internal/model"
	apperrors "github.com/healthml/healthdata-api/pkg/errors"
)

// Creating a patient without a PatientID must fail up front; otherwise a
// zero identifier lands in the collection and the unique index turns every
// later create into a server error.
func TestPatientCreateRequiresPatientID(t *testing.T) {
	repo := &patientRepository{
		docStore: &docStore[model.Patient, *model.Patient]{resource: "patient"},
	}

	err := repo.Create(context.Background(), &model.Patient{})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrBadRequest, apperrors.Code(err))

	err = repo.Create(context.Background(), &model.Patient{ID: -5})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrBadRequest, apperrors.Code(err))
}
