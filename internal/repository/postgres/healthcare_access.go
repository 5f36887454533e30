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

const accessColumns = `"AccessID", "PatientID", "AnyHealthcare", "NoDocbcCost"`

type healthcareAccessRepository struct {
	db *sqlx.DB
}

func NewHealthcareAccessRepository(db *sqlx.DB) repository.EntityStore[model.HealthcareAccess] {
	return &healthcareAccessRepository{db: db}
}

func (r *healthcareAccessRepository) Create(ctx context.Context, access *model.HealthcareAccess) error {
	query := `
		INSERT INTO "Healthcare_Access" ("PatientID", "AnyHealthcare", "NoDocbcCost")
		VALUES ($1, $2, $3)
		RETURNING "AccessID"
	`
	err := r.db.QueryRowContext(ctx, query,
		access.PatientID,
		access.AnyHealthcare,
		access.NoDocbcCost,
	).Scan(&access.ID)
	if err != nil {
		return wrapWriteErr(err)
	}
	return nil
}

func (r *healthcareAccessRepository) Get(ctx context.Context, id string) (*model.HealthcareAccess, error) {
	accessID, err := parseID("healthcare access", id)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM "Healthcare_Access" WHERE "AccessID" = $1`, accessColumns)
	var access model.HealthcareAccess
	err = r.db.GetContext(ctx, &access, query, accessID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("healthcare access", err)
	}
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return &access, nil
}

func (r *healthcareAccessRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.HealthcareAccess, error) {
	accessID, err := parseID("healthcare access", id)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return r.Get(ctx, id)
	}

	clause, args := setClause(fields)
	query := fmt.Sprintf(
		`UPDATE "Healthcare_Access" SET %s WHERE "AccessID" = $%d RETURNING %s`,
		clause, len(args)+1, accessColumns,
	)
	args = append(args, accessID)

	var access model.HealthcareAccess
	err = r.db.GetContext(ctx, &access, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("healthcare access", err)
	}
	if err != nil {
		return nil, wrapWriteErr(err)
	}
	return &access, nil
}

func (r *healthcareAccessRepository) Delete(ctx context.Context, id string) error {
	accessID, err := parseID("healthcare access", id)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM "Healthcare_Access" WHERE "AccessID" = $1`, accessID)
	if err != nil {
		return wrapWriteErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.Store(err)
	}
	if affected == 0 {
		return apperrors.NotFound("healthcare access", nil)
	}
	return nil
}

func (r *healthcareAccessRepository) List(ctx context.Context, page model.Page) ([]*model.HealthcareAccess, int64, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM "Healthcare_Access" ORDER BY "AccessID" ASC OFFSET $1 LIMIT $2`,
		accessColumns,
	)
	records := []*model.HealthcareAccess{}
	if err := r.db.SelectContext(ctx, &records, query, page.Skip, page.Limit); err != nil {
		return nil, 0, apperrors.Store(err)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM "Healthcare_Access"`); err != nil {
		return nil, 0, apperrors.Store(err)
	}
	return records, total, nil
}

func (r *healthcareAccessRepository) Latest(ctx context.Context, limit int) ([]*model.HealthcareAccess, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM "Healthcare_Access" ORDER BY "AccessID" DESC LIMIT $1`,
		accessColumns,
	)
	records := []*model.HealthcareAccess{}
	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, apperrors.Store(err)
	}
	return records, nil
}

func (r *healthcareAccessRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.HealthcareAccess, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM "Healthcare_Access" WHERE "PatientID" = $1 ORDER BY "AccessID" ASC`,
		accessColumns,
	)
	records := []*model.HealthcareAccess{}
	if err := r.db.SelectContext(ctx, &records, query, patientID); err != nil {
		return nil, apperrors.Store(err)
	}
	return records, nil
}
