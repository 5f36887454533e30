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

const conditionColumns = `"ConditionID", "PatientID", "Diabetes_012", "HighBP", "HighChol", "Stroke", "HeartDiseaseorAttack", "DiffWalk"`

type healthConditionRepository struct {
	db *sqlx.DB
}

func NewHealthConditionRepository(db *sqlx.DB) repository.EntityStore[model.HealthCondition] {
	return &healthConditionRepository{db: db}
}

func (r *healthConditionRepository) Create(ctx context.Context, condition *model.HealthCondition) error {
	query := `
		INSERT INTO "Health_Conditions" ("PatientID", "Diabetes_012", "HighBP", "HighChol", "Stroke", "HeartDiseaseorAttack", "DiffWalk")
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING "ConditionID"
	`
	err := r.db.QueryRowContext(ctx, query,
		condition.PatientID,
		condition.Diabetes012,
		condition.HighBP,
		condition.HighChol,
		condition.Stroke,
		condition.HeartDiseaseorAttack,
		condition.DiffWalk,
	).Scan(&condition.ID)
	if err != nil {
		return wrapWriteErr(err)
	}
	return nil
}

func (r *healthConditionRepository) Get(ctx context.Context, id string) (*model.HealthCondition, error) {
	conditionID, err := parseID("health condition", id)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM "Health_Conditions" WHERE "ConditionID" = $1`, conditionColumns)
	var condition model.HealthCondition
	err = r.db.GetContext(ctx, &condition, query, conditionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("health condition", err)
	}
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return &condition, nil
}

func (r *healthConditionRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.HealthCondition, error) {
	conditionID, err := parseID("health condition", id)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return r.Get(ctx, id)
	}

	clause, args := setClause(fields)
	query := fmt.Sprintf(
		`UPDATE "Health_Conditions" SET %s WHERE "ConditionID" = $%d RETURNING %s`,
		clause, len(args)+1, conditionColumns,
	)
	args = append(args, conditionID)

	var condition model.HealthCondition
	err = r.db.GetContext(ctx, &condition, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("health condition", err)
	}
	if err != nil {
		return nil, wrapWriteErr(err)
	}
	return &condition, nil
}

func (r *healthConditionRepository) Delete(ctx context.Context, id string) error {
	conditionID, err := parseID("health condition", id)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM "Health_Conditions" WHERE "ConditionID" = $1`, conditionID)
	if err != nil {
		return wrapWriteErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.Store(err)
	}
	if affected == 0 {
		return apperrors.NotFound("health condition", nil)
	}
	return nil
}

func (r *healthConditionRepository) List(ctx context.Context, page model.Page) ([]*model.HealthCondition, int64, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM "Health_Conditions" ORDER BY "ConditionID" ASC OFFSET $1 LIMIT $2`,
		conditionColumns,
	)
	conditions := []*model.HealthCondition{}
	if err := r.db.SelectContext(ctx, &conditions, query, page.Skip, page.Limit); err != nil {
		return nil, 0, apperrors.Store(err)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM "Health_Conditions"`); err != nil {
		return nil, 0, apperrors.Store(err)
	}
	return conditions, total, nil
}

func (r *healthConditionRepository) Latest(ctx context.Context, limit int) ([]*model.HealthCondition, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM "Health_Conditions" ORDER BY "ConditionID" DESC LIMIT $1`,
		conditionColumns,
	)
	conditions := []*model.HealthCondition{}
	if err := r.db.SelectContext(ctx, &conditions, query, limit); err != nil {
		return nil, apperrors.Store(err)
	}
	return conditions, nil
}

func (r *healthConditionRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.HealthCondition, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM "Health_Conditions" WHERE "PatientID" = $1 ORDER BY "ConditionID" ASC`,
		conditionColumns,
	)
	conditions := []*model.HealthCondition{}
	if err := r.db.SelectContext(ctx, &conditions, query, patientID); err != nil {
		return nil, apperrors.Store(err)
	}
	return conditions, nil
}
