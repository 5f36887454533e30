package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/healthml/healthdata-api/internal/model"
	"github.com/healthml/healthdata-api/internal/repository"
	apperrors "github.com/healthml/healthdata-api/pkg/errors"
)

const metricColumns = `"MetricsID", "PatientID", "CholCheck", "GenHlth", "MentHlth", "PhysHlth"`

type healthMetricRepository struct {
	db *sqlx.DB
}

func NewHealthMetricRepository(db *sqlx.DB) repository.EntityStore[model.HealthMetric] {
	return &healthMetricRepository{db: db}
}

func (r *healthMetricRepository) Create(ctx context.Context, metric *model.HealthMetric) error {
	query := `
		INSERT INTO "Health_Metrics" ("PatientID", "CholCheck", "GenHlth", "MentHlth", "PhysHlth")
		VALUES ($1, $2, $3, $4, $5)
		RETURNING "MetricsID"
	`
	err := r.db.QueryRowContext(ctx, query,
		metric.PatientID,
		metric.CholCheck,
		metric.GenHlth,
		metric.MentHlth,
		metric.PhysHlth,
	).Scan(&metric.ID)
	if err != nil {
		return wrapWriteErr(err)
	}
	return nil
}

func (r *healthMetricRepository) Get(ctx context.Context, id string) (*model.HealthMetric, error) {
	metricsID, err := parseID("health metric", id)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM "Health_Metrics" WHERE "MetricsID" = $1`, metricColumns)
	var metric model.HealthMetric
	err = r.db.GetContext(ctx, &metric, query, metricsID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("health metric", err)
	}
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return &metric, nil
}

func (r *healthMetricRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.HealthMetric, error) {
	metricsID, err := parseID("health metric", id)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return r.Get(ctx, id)
	}

	clause, args := setClause(fields)
	query := fmt.Sprintf(
		`UPDATE "Health_Metrics" SET %s WHERE "MetricsID" = $%d RETURNING %s`,
		clause, len(args)+1, metricColumns,
	)
	args = append(args, metricsID)

	var metric model.HealthMetric
	err = r.db.GetContext(ctx, &metric, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("health metric", err)
	}
	if err != nil {
		return nil, wrapWriteErr(err)
	}
	return &metric, nil
}

func (r *healthMetricRepository) Delete(ctx context.Context, id string) error {
	metricsID, err := parseID("health metric", id)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM "Health_Metrics" WHERE "MetricsID" = $1`, metricsID)
	if err != nil {
		return wrapWriteErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.Store(err)
	}
	if affected == 0 {
		return apperrors.NotFound("health metric", nil)
	}
	return nil
}

func (r *healthMetricRepository) List(ctx context.Context, page model.Page) ([]*model.HealthMetric, int64, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM "Health_Metrics" ORDER BY "MetricsID" ASC OFFSET $1 LIMIT $2`,
		metricColumns,
	)
	metrics := []*model.HealthMetric{}
	if err := r.db.SelectContext(ctx, &metrics, query, page.Skip, page.Limit); err != nil {
		return nil, 0, apperrors.Store(err)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM "Health_Metrics"`); err != nil {
		return nil, 0, apperrors.Store(err)
	}
	return metrics, total, nil
}

func (r *healthMetricRepository) Latest(ctx context.Context, limit int) ([]*model.HealthMetric, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM "Health_Metrics" ORDER BY "MetricsID" DESC LIMIT $1`,
		metricColumns,
	)
	metrics := []*model.HealthMetric{}
	if err := r.db.SelectContext(ctx, &metrics, query, limit); err != nil {
		return nil, apperrors.Store(err)
	}
	return metrics, nil
}

func (r *healthMetricRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.HealthMetric, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM "Health_Metrics" WHERE "PatientID" = $1 ORDER BY "MetricsID" ASC`,
		metricColumns,
	)
	metrics := []*model.HealthMetric{}
	if err := r.db.SelectContext(ctx, &metrics, query, patientID); err != nil {
		return nil, apperrors.Store(err)
	}
	return metrics, nil
}
