package repository

import (
	"context"

	"github.com/healthml/healthdata-api/internal/model"
)

// EntityStore is the storage capability every entity adapter provides. The
// relational and document backends implement it per entity; everything above
// this interface is backend-agnostic.
//
// IDs travel as strings at this boundary: decimal serial IDs on the
// relational side, ObjectID hex on the document side. Update applies only the
// supplied fields, keyed by canonical field name.
type EntityStore[T any] interface {
	Create(ctx context.Context, rec *T) error
	Get(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*T, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page model.Page) ([]*T, int64, error)
	Latest(ctx context.Context, limit int) ([]*T, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*T, error)
}

// PatientStore adds the patient-only lookups used for referential checks and
// the document store's integer-ID access path.
type PatientStore interface {
	EntityStore[model.Patient]
	GetByPatientID(ctx context.Context, patientID int64) (*model.Patient, error)
	Exists(ctx context.Context, patientID int64) (bool, error)
}

// TrainingDataStore produces flat per-patient records for model training.
type TrainingDataStore interface {
	// Complete returns only patients with a record in every dependent entity,
	// ordered by patient identifier ascending.
	Complete(ctx context.Context, page model.Page) ([]*model.TrainingRecord, error)
	// CompleteCount returns the total number of complete records. It is the
	// expensive half of the complete query and is cached by the service.
	CompleteCount(ctx context.Context) (int64, error)
	// Latest returns the most recent patients with dependents merged in;
	// missing dependents surface as nulls.
	Latest(ctx context.Context, limit int) ([]*model.TrainingRecord, error)
	// Profile returns the flat record for one patient, or not-found.
	Profile(ctx context.Context, patientID int64) (*model.TrainingRecord, error)
}

// PredictionStore persists and reads inference audit records.
type PredictionStore interface {
	Create(ctx context.Context, p *model.Prediction) error
	List(ctx context.Context, page model.Page) ([]*model.Prediction, int64, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*model.Prediction, error)
}

// OutboxRepository queues events for the outbox processor.
type OutboxRepository interface {
	Create(ctx context.Context, event *model.OutboxEvent) error
	FetchPending(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	MarkPublished(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64) error
}
