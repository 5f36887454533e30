package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/healthml/healthdata-api/internal/model"
)

// EnsureIndexes creates the indexes every collection needs before serving
// traffic. Safe to call repeatedly; index creation is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	patients := &patientRepository{
		docStore: newDocStore[model.Patient](db, PatientsCollection, "patient"),
	}
	if err := patients.Initialize(ctx); err != nil {
		return err
	}

	stores := []interface {
		Initialize(ctx context.Context) error
	}{
		newDocStore[model.HealthCondition](db, HealthConditionsCollection, "health condition"),
		newDocStore[model.LifestyleFactor](db, LifestyleFactorsCollection, "lifestyle factor"),
		newDocStore[model.HealthMetric](db, HealthMetricsCollection, "health metric"),
		newDocStore[model.HealthcareAccess](db, HealthcareAccessCollection, "healthcare access"),
	}
	for _, s := range stores {
		if err := s.Initialize(ctx); err != nil {
			return err
		}
	}
	return nil
}
