package crud

import (
	"context"
	"fmt"

	"github.com/healthml/healthdata-api/internal/model"
	"github.com/healthml/healthdata-api/internal/repository"
	apperrors "github.com/healthml/healthdata-api/pkg/errors"
	"github.com/healthml/healthdata-api/pkg/logger"
)

const (
	defaultPageLimit = 100
	defaultLatest    = 10
)

// RefChecker reports whether the referenced patient exists. The relational
// backend leaves this nil and relies on foreign keys; the document backend
// has no such constraint, so dependent creation checks the parent explicitly.
// The check and the insert are separate operations, so a concurrent parent
// delete can still slip an orphan through.
type RefChecker func(ctx context.Context, patientID int64) (bool, error)

// Service implements entity-agnostic CRUD over one storage capability.
type Service[T any] struct {
	store      repository.EntityStore[T]
	resource   string
	requireRef bool
	refCheck   RefChecker
	logger     *logger.Logger
}

func NewService[T any](store repository.EntityStore[T], resource string, log *logger.Logger) *Service[T] {
	return &Service[T]{store: store, resource: resource, logger: log}
}

// WithPatientRef marks the entity as patient-owned. Creation then requires a
// patient reference, verified through check when one is supplied.
func (s *Service[T]) WithPatientRef(check RefChecker) *Service[T] {
	s.requireRef = true
	s.refCheck = check
	return s
}

func (s *Service[T]) Create(ctx context.Context, rec *T, patientRef *int64) (*T, error) {
	if s.requireRef {
		if patientRef == nil {
			return nil, apperrors.BadRequest("PatientID is required", nil)
		}
		if s.refCheck != nil {
			ok, err := s.refCheck(ctx, *patientRef)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, apperrors.Referential(fmt.Sprintf("patient %d does not exist", *patientRef), nil)
			}
		}
	}
	if err := s.store.Create(ctx, rec); err != nil {
		return nil, err
	}
	s.logger.Info("entity created", "resource", s.resource)
	return rec, nil
}

func (s *Service[T]) Get(ctx context.Context, id string) (*T, error) {
	return s.store.Get(ctx, id)
}

func (s *Service[T]) Update(ctx context.Context, id string, fields map[string]interface{}) (*T, error) {
	if len(fields) == 0 {
		return nil, apperrors.BadRequest("no fields to update", nil)
	}
	return s.store.Update(ctx, id, fields)
}

func (s *Service[T]) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("entity deleted", "resource", s.resource, "id", id)
	return nil
}

func (s *Service[T]) List(ctx context.Context, page model.Page) ([]*T, int64, error) {
	return s.store.List(ctx, ClampPage(page))
}

func (s *Service[T]) Latest(ctx context.Context, limit int) ([]*T, error) {
	if limit < 1 {
		limit = defaultLatest
	}
	if limit > model.MaxPageLimit {
		limit = model.MaxPageLimit
	}
	return s.store.Latest(ctx, limit)
}

func (s *Service[T]) ListByPatient(ctx context.Context, patientID int64) ([]*T, error) {
	if patientID < 1 {
		return nil, apperrors.BadRequest(fmt.Sprintf("invalid patient id %d", patientID), nil)
	}
	return s.store.ListByPatient(ctx, patientID)
}

// ClampPage normalizes pagination: negative skips become 0, missing limits
// take the default, oversized limits cap at the maximum.
func ClampPage(page model.Page) model.Page {
	if page.Skip < 0 {
		page.Skip = 0
	}
	if page.Limit < 1 {
		page.Limit = defaultPageLimit
	}
	if page.Limit > model.MaxPageLimit {
		page.Limit = model.MaxPageLimit
	}
	return page
}
