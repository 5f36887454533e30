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

const lifestyleColumns = `"LifestyleID", "PatientID", "BMI", "Smoker", "PhysActivity", "Fruits", "Veggies", "HvyAlcoholConsump"`

type lifestyleFactorRepository struct {
	db *sqlx.DB
}

func NewLifestyleFactorRepository(db *sqlx.DB) repository.EntityStore[model.LifestyleFactor] {
	return &lifestyleFactorRepository{db: db}
}

func (r *lifestyleFactorRepository) Create(ctx context.Context, lifestyle *model.LifestyleFactor) error {
	query := `
		INSERT INTO "Lifestyle_Factors" ("PatientID", "BMI", "Smoker", "PhysActivity", "Fruits", "Veggies", "HvyAlcoholConsump")
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING "LifestyleID"
	`
	err := r.db.QueryRowContext(ctx, query,
		lifestyle.PatientID,
		lifestyle.BMI,
		lifestyle.Smoker,
		lifestyle.PhysActivity,
		lifestyle.Fruits,
		lifestyle.Veggies,
		lifestyle.HvyAlcoholConsump,
	).Scan(&lifestyle.ID)
	if err != nil {
		return wrapWriteErr(err)
	}
	return nil
}

func (r *lifestyleFactorRepository) Get(ctx context.Context, id string) (*model.LifestyleFactor, error) {
	lifestyleID, err := parseID("lifestyle factor", id)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM "Lifestyle_Factors" WHERE "LifestyleID" = $1`, lifestyleColumns)
	var lifestyle model.LifestyleFactor
	err = r.db.GetContext(ctx, &lifestyle, query, lifestyleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("lifestyle factor", err)
	}
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return &lifestyle, nil
}

func (r *lifestyleFactorRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.LifestyleFactor, error) {
	lifestyleID, err := parseID("lifestyle factor", id)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return r.Get(ctx, id)
	}

	clause, args := setClause(fields)
	query := fmt.Sprintf(
		`UPDATE "Lifestyle_Factors" SET %s WHERE "LifestyleID" = $%d RETURNING %s`,
		clause, len(args)+1, lifestyleColumns,
	)
	args = append(args, lifestyleID)

	var lifestyle model.LifestyleFactor
	err = r.db.GetContext(ctx, &lifestyle, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("lifestyle factor", err)
	}
	if err != nil {
		return nil, wrapWriteErr(err)
	}
	return &lifestyle, nil
}

func (r *lifestyleFactorRepository) Delete(ctx context.Context, id string) error {
	lifestyleID, err := parseID("lifestyle factor", id)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM "Lifestyle_Factors" WHERE "LifestyleID" = $1`, lifestyleID)
	if err != nil {
		return wrapWriteErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.Store(err)
	}
	if affected == 0 {
		return apperrors.NotFound("lifestyle factor", nil)
	}
	return nil
}

func (r *lifestyleFactorRepository) List(ctx context.Context, page model.Page) ([]*model.LifestyleFactor, int64, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM "Lifestyle_Factors" ORDER BY "LifestyleID" ASC OFFSET $1 LIMIT $2`,
		lifestyleColumns,
	)
	factors := []*model.LifestyleFactor{}
	if err := r.db.SelectContext(ctx, &factors, query, page.Skip, page.Limit); err != nil {
		return nil, 0, apperrors.Store(err)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM "Lifestyle_Factors"`); err != nil {
		return nil, 0, apperrors.Store(err)
	}
	return factors, total, nil
}

func (r *lifestyleFactorRepository) Latest(ctx context.Context, limit int) ([]*model.LifestyleFactor, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM "Lifestyle_Factors" ORDER BY "LifestyleID" DESC LIMIT $1`,
		lifestyleColumns,
	)
	factors := []*model.LifestyleFactor{}
	if err := r.db.SelectContext(ctx, &factors, query, limit); err != nil {
		return nil, apperrors.Store(err)
	}
	return factors, nil
}

func (r *lifestyleFactorRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.LifestyleFactor, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM "Lifestyle_Factors" WHERE "PatientID" = $1 ORDER BY "LifestyleID" ASC`,
		lifestyleColumns,
	)
	factors := []*model.LifestyleFactor{}
	if err := r.db.SelectContext(ctx, &factors, query, patientID); err != nil {
		return nil, apperrors.Store(err)
	}
	return factors, nil
}
