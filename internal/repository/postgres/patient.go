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

const patientColumns = `"PatientID", "Sex", "Age", "Education", "Income"`

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientStore {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO "Patients" ("Sex", "Age", "Education", "Income")
		VALUES ($1, $2, $3, $4)
		RETURNING "PatientID"
	`
	err := r.db.QueryRowContext(ctx, query,
		patient.Sex,
		patient.Age,
		patient.Education,
		patient.Income,
	).Scan(&patient.ID)
	if err != nil {
		return wrapWriteErr(err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id string) (*model.Patient, error) {
	patientID, err := parseID("patient", id)
	if err != nil {
		return nil, err
	}
	return r.GetByPatientID(ctx, patientID)
}

func (r *patientRepository) GetByPatientID(ctx context.Context, patientID int64) (*model.Patient, error) {
	query := fmt.Sprintf(`SELECT %s FROM "Patients" WHERE "PatientID" = $1`, patientColumns)
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, patientID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("patient", err)
	}
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return &patient, nil
}

func (r *patientRepository) Exists(ctx context.Context, patientID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM "Patients" WHERE "PatientID" = $1)`
	if err := r.db.GetContext(ctx, &exists, query, patientID); err != nil {
		return false, apperrors.Store(err)
	}
	return exists, nil
}

func (r *patientRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Patient, error) {
	patientID, err := parseID("patient", id)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return r.GetByPatientID(ctx, patientID)
	}

	clause, args := setClause(fields)
	query := fmt.Sprintf(
		`UPDATE "Patients" SET %s WHERE "PatientID" = $%d RETURNING %s`,
		clause, len(args)+1, patientColumns,
	)
	args = append(args, patientID)

	var patient model.Patient
	err = r.db.GetContext(ctx, &patient, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("patient", err)
	}
	if err != nil {
		return nil, wrapWriteErr(err)
	}
	return &patient, nil
}

func (r *patientRepository) Delete(ctx context.Context, id string) error {
	patientID, err := parseID("patient", id)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM "Patients" WHERE "PatientID" = $1`, patientID)
	if err != nil {
		return wrapWriteErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.Store(err)
	}
	if affected == 0 {
		return apperrors.NotFound("patient", nil)
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context, page model.Page) ([]*model.Patient, int64, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM "Patients" ORDER BY "PatientID" ASC OFFSET $1 LIMIT $2`,
		patientColumns,
	)
	patients := []*model.Patient{}
	if err := r.db.SelectContext(ctx, &patients, query, page.Skip, page.Limit); err != nil {
		return nil, 0, apperrors.Store(err)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM "Patients"`); err != nil {
		return nil, 0, apperrors.Store(err)
	}
	return patients, total, nil
}

func (r *patientRepository) Latest(ctx context.Context, limit int) ([]*model.Patient, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM "Patients" ORDER BY "PatientID" DESC LIMIT $1`,
		patientColumns,
	)
	patients := []*model.Patient{}
	if err := r.db.SelectContext(ctx, &patients, query, limit); err != nil {
		return nil, apperrors.Store(err)
	}
	return patients, nil
}

func (r *patientRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Patient, error) {
	patient, err := r.GetByPatientID(ctx, patientID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return []*model.Patient{}, nil
		}
		return nil, err
	}
	return []*model.Patient{patient}, nil
}
