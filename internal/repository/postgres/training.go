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

const trainingSelect = `
	p."PatientID", p."Sex", p."Age", p."Education", p."Income",
	hc."Diabetes_012", hc."HighBP", hc."HighChol", hc."Stroke", hc."HeartDiseaseorAttack", hc."DiffWalk",
	lf."BMI", lf."Smoker", lf."PhysActivity", lf."Fruits", lf."Veggies", lf."HvyAlcoholConsump",
	hm."CholCheck", hm."GenHlth", hm."MentHlth", hm."PhysHlth",
	ha."AnyHealthcare", ha."NoDocbcCost"`

const trainingJoins = `
	FROM "Patients" p
	JOIN "Health_Conditions" hc ON hc."PatientID" = p."PatientID"
	JOIN "Lifestyle_Factors" lf ON lf."PatientID" = p."PatientID"
	JOIN "Health_Metrics" hm ON hm."PatientID" = p."PatientID"
	JOIN "Healthcare_Access" ha ON ha."PatientID" = p."PatientID"`

const trainingLeftJoins = `
	FROM "Patients" p
	LEFT JOIN "Health_Conditions" hc ON hc."PatientID" = p."PatientID"
	LEFT JOIN "Lifestyle_Factors" lf ON lf."PatientID" = p."PatientID"
	LEFT JOIN "Health_Metrics" hm ON hm."PatientID" = p."PatientID"
	LEFT JOIN "Healthcare_Access" ha ON ha."PatientID" = p."PatientID"`

// completeFilter excludes rows with a null in any joined field; a complete
// record must be fully populated, not merely joined.
const completeFilter = `
	WHERE p."Sex" IS NOT NULL AND p."Age" IS NOT NULL AND p."Education" IS NOT NULL AND p."Income" IS NOT NULL
	AND hc."Diabetes_012" IS NOT NULL AND hc."HighBP" IS NOT NULL AND hc."HighChol" IS NOT NULL
	AND hc."Stroke" IS NOT NULL AND hc."HeartDiseaseorAttack" IS NOT NULL AND hc."DiffWalk" IS NOT NULL
	AND lf."BMI" IS NOT NULL AND lf."Smoker" IS NOT NULL AND lf."PhysActivity" IS NOT NULL
	AND lf."Fruits" IS NOT NULL AND lf."Veggies" IS NOT NULL AND lf."HvyAlcoholConsump" IS NOT NULL
	AND hm."CholCheck" IS NOT NULL AND hm."GenHlth" IS NOT NULL AND hm."MentHlth" IS NOT NULL AND hm."PhysHlth" IS NOT NULL
	AND ha."AnyHealthcare" IS NOT NULL AND ha."NoDocbcCost" IS NOT NULL`

type trainingDataRepository struct {
	db *sqlx.DB
}

func NewTrainingDataRepository(db *sqlx.DB) repository.TrainingDataStore {
	return &trainingDataRepository{db: db}
}

// Complete runs the five-way inner join. Ordering is by patient identifier
// ascending so pages are stable under concurrent inserts at the tail.
func (r *trainingDataRepository) Complete(ctx context.Context, page model.Page) ([]*model.TrainingRecord, error) {
	query := fmt.Sprintf(
		`SELECT %s %s %s ORDER BY p."PatientID" ASC OFFSET $1 LIMIT $2`,
		trainingSelect, trainingJoins, completeFilter,
	)
	records := []*model.TrainingRecord{}
	if err := r.db.SelectContext(ctx, &records, query, page.Skip, page.Limit); err != nil {
		return nil, apperrors.Store(err)
	}
	return records, nil
}

// CompleteCount runs the five-way join once just to count; callers are
// expected to cache the result.
func (r *trainingDataRepository) CompleteCount(ctx context.Context) (int64, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) %s %s`, trainingJoins, completeFilter)
	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return 0, apperrors.Store(err)
	}
	return total, nil
}

// Latest approximates recency by identifier order; the relational schema has
// no creation timestamp.
func (r *trainingDataRepository) Latest(ctx context.Context, limit int) ([]*model.TrainingRecord, error) {
	query := fmt.Sprintf(
		`SELECT %s %s ORDER BY p."PatientID" DESC LIMIT $1`,
		trainingSelect, trainingLeftJoins,
	)
	records := []*model.TrainingRecord{}
	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, apperrors.Store(err)
	}
	return records, nil
}

func (r *trainingDataRepository) Profile(ctx context.Context, patientID int64) (*model.TrainingRecord, error) {
	query := fmt.Sprintf(
		`SELECT %s %s WHERE p."PatientID" = $1`,
		trainingSelect, trainingLeftJoins,
	)
	var record model.TrainingRecord
	err := r.db.GetContext(ctx, &record, query, patientID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("patient", err)
	}
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return &record, nil
}
