package training

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/healthml/healthdata-api/internal/model"
	"github.com/healthml/healthdata-api/internal/repository"
	"github.com/healthml/healthdata-api/internal/service/crud"
	"github.com/healthml/healthdata-api/pkg/logger"
)

const (
	countCacheKey = "complete_total"
	countCacheTTL = 30 * time.Second
)

// Service exposes the flat training dataset built from the five entities.
// The total count of complete records is the expensive part of the query, so
// it is cached briefly; pages may momentarily disagree with a stale total.
type Service struct {
	store  repository.TrainingDataStore
	counts *gocache.Cache
	logger *logger.Logger
}

func NewService(store repository.TrainingDataStore, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		counts: gocache.New(countCacheTTL, 2*countCacheTTL),
		logger: log,
	}
}

// Complete returns one page of fully populated training records and the
// total number of eligible patients. The total comes from the count cache,
// so it can lag the page contents by up to the cache TTL.
func (s *Service) Complete(ctx context.Context, page model.Page) ([]*model.TrainingRecord, int64, error) {
	page = crud.ClampPage(page)

	records, err := s.store.Complete(ctx, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.CompleteCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// CompleteCount returns the cached count of complete records, running the
// count query only when the cache is cold.
func (s *Service) CompleteCount(ctx context.Context) (int64, error) {
	if cached, ok := s.counts.Get(countCacheKey); ok {
		return cached.(int64), nil
	}
	total, err := s.store.CompleteCount(ctx)
	if err != nil {
		return 0, err
	}
	s.counts.SetDefault(countCacheKey, total)
	return total, nil
}

// Latest returns the most recently updated patients with whatever dependent
// data they have; incomplete records keep their nulls.
func (s *Service) Latest(ctx context.Context, limit int) ([]*model.TrainingRecord, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > model.MaxPageLimit {
		limit = model.MaxPageLimit
	}
	return s.store.Latest(ctx, limit)
}

// Profile returns the flat record for one patient.
func (s *Service) Profile(ctx context.Context, patientID int64) (*model.TrainingRecord, error) {
	return s.store.Profile(ctx, patientID)
}
