package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/healthml/healthdata-api/internal/model"
	"github.com/healthml/healthdata-api/internal/repository"
	apperrors "github.com/healthml/healthdata-api/pkg/errors"
)

type patientRepository struct {
	*docStore[model.Patient, *model.Patient]
}

func NewPatientRepository(db *mongo.Database) repository.PatientStore {
	return &patientRepository{
		docStore: newDocStore[model.Patient](db, PatientsCollection, "patient"),
	}
}

// Create requires the caller-supplied PatientID; the document store has no
// serial column to assign one. Duplicates trip the unique index and come
// back as a client error rather than a storage failure.
func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	if patient.ID < 1 {
		return apperrors.BadRequest("PatientID is required", nil)
	}
	err := r.docStore.Create(ctx, patient)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.BadRequest(fmt.Sprintf("patient %d already exists", patient.ID), err)
	}
	return err
}

// Initialize enforces PatientID uniqueness; the document store has no serial
// column, the integer identifier arrives with the payload.
func (r *patientRepository) Initialize(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "PatientID", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("UniquePatientID"),
	})
	return err
}

func (r *patientRepository) GetByPatientID(ctx context.Context, patientID int64) (*model.Patient, error) {
	return r.findOne(ctx, bson.M{"PatientID": patientID})
}

func (r *patientRepository) Exists(ctx context.Context, patientID int64) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"PatientID": patientID}, options.Count().SetLimit(1))
	if err != nil {
		return false, apperrors.Store(err)
	}
	return count > 0, nil
}
