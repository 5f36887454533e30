package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/healthml/healthdata-api/internal/model"
	"github.com/healthml/healthdata-api/internal/repository"
	apperrors "github.com/healthml/healthdata-api/pkg/errors"
)

const predictionColumns = `"PredictionID", "PatientID", "RawOutput", "PredictedClass", "PredictedLabel", "ModelVersion", "PredictedAt", "FeatureSnapshot"`

type predictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) repository.PredictionStore {
	return &predictionRepository{db: db}
}

func (r *predictionRepository) Create(ctx context.Context, p *model.Prediction) error {
	query := `
		INSERT INTO "Predictions" ("PatientID", "RawOutput", "PredictedClass", "PredictedLabel", "ModelVersion", "PredictedAt", "FeatureSnapshot")
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING "PredictionID"
	`
	err := r.db.QueryRowContext(ctx, query,
		p.PatientID,
		p.RawOutput,
		p.PredictedClass,
		p.PredictedLabel,
		p.ModelVersion,
		p.PredictedAt,
		[]byte(p.FeatureSnapshot),
	).Scan(&p.ID)
	if err != nil {
		return wrapWriteErr(err)
	}
	return nil
}

func (r *predictionRepository) List(ctx context.Context, page model.Page) ([]*model.Prediction, int64, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM "Predictions"
		ORDER BY "PredictedAt" DESC
		OFFSET $1 LIMIT $2
	`
	predictions := []*model.Prediction{}
	if err := r.db.SelectContext(ctx, &predictions, query, page.Skip, page.Limit); err != nil {
		return nil, 0, apperrors.Store(err)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM "Predictions"`); err != nil {
		return nil, 0, apperrors.Store(err)
	}
	return predictions, total, nil
}

func (r *predictionRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Prediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM "Predictions"
		WHERE "PatientID" = $1
		ORDER BY "PredictedAt" DESC
	`
	predictions := []*model.Prediction{}
	if err := r.db.SelectContext(ctx, &predictions, query, patientID); err != nil {
		return nil, apperrors.Store(err)
	}
	return predictions, nil
}
