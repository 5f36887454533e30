package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/healthml/healthdata-api/internal/model"
	"github.com/healthml/healthdata-api/internal/repository"
	apperrors "github.com/healthml/healthdata-api/pkg/errors"
)

// aggregated is the shape produced by the $lookup pipeline: the patient
// document with one array per dependent collection.
type aggregated struct {
	OID        primitive.ObjectID       `bson:"_id"`
	Patient    model.Patient            `bson:",inline"`
	Conditions []model.HealthCondition  `bson:"health_conditions"`
	Lifestyle  []model.LifestyleFactor  `bson:"lifestyle_factors"`
	Metrics    []model.HealthMetric     `bson:"health_metrics"`
	Access     []model.HealthcareAccess `bson:"healthcare_access"`
}

type trainingDataRepository struct {
	db *mongo.Database
}

func NewTrainingDataRepository(db *mongo.Database) repository.TrainingDataStore {
	return &trainingDataRepository{db: db}
}

func lookupStage(from, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from":         from,
		"localField":   "PatientID",
		"foreignField": "PatientID",
		"as":           as,
	}}}
}

var lookupStages = []bson.D{
	lookupStage(HealthConditionsCollection, "health_conditions"),
	lookupStage(LifestyleFactorsCollection, "lifestyle_factors"),
	lookupStage(HealthMetricsCollection, "health_metrics"),
	lookupStage(HealthcareAccessCollection, "healthcare_access"),
}

var matchAllPresent = bson.D{{Key: "$match", Value: bson.M{
	"health_conditions": bson.M{"$ne": bson.A{}},
	"lifestyle_factors": bson.M{"$ne": bson.A{}},
	"health_metrics":    bson.M{"$ne": bson.A{}},
	"healthcare_access": bson.M{"$ne": bson.A{}},
}}}

// Complete joins the five collections server-side with $lookup and keeps only
// patients that have a document in every dependent collection. Records that
// still carry a null field after the merge are discarded; complete means
// fully populated.
func (r *trainingDataRepository) Complete(ctx context.Context, page model.Page) ([]*model.TrainingRecord, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$sort", Value: bson.D{{Key: "PatientID", Value: 1}}}},
		bson.D{{Key: "$skip", Value: int64(page.Skip)}},
		bson.D{{Key: "$limit", Value: int64(page.Limit)}},
	}
	pipeline = append(pipeline, lookupStages...)
	pipeline = append(pipeline, matchAllPresent)

	cursor, err := r.db.Collection(PatientsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	defer cursor.Close(ctx)

	records := []*model.TrainingRecord{}
	for cursor.Next(ctx) {
		var agg aggregated
		if err := cursor.Decode(&agg); err != nil {
			return nil, apperrors.Store(err)
		}
		rec := flatten(&agg)
		if rec.Complete() {
			records = append(records, rec)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, apperrors.Store(err)
	}
	return records, nil
}

// CompleteCount re-runs the lookup pipeline with a terminal $count. Callers
// cache the result; the pipeline touches every patient document.
func (r *trainingDataRepository) CompleteCount(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{}
	pipeline = append(pipeline, lookupStages...)
	pipeline = append(pipeline, matchAllPresent)
	pipeline = append(pipeline, bson.D{{Key: "$count", Value: "total"}})

	cursor, err := r.db.Collection(PatientsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, apperrors.Store(err)
	}
	defer cursor.Close(ctx)

	var result struct {
		Total int64 `bson:"total"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, apperrors.Store(err)
		}
	}
	return result.Total, cursor.Err()
}

// Latest loads the most recently updated patients and merges dependents with
// one lookup per collection per patient. There is no native join here;
// missing dependents stay null, and reads across collections are not
// transactionally consistent.
func (r *trainingDataRepository) Latest(ctx context.Context, limit int) ([]*model.TrainingRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.db.Collection(PatientsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	defer cursor.Close(ctx)

	records := []*model.TrainingRecord{}
	for cursor.Next(ctx) {
		var d doc[model.Patient]
		if err := cursor.Decode(&d); err != nil {
			return nil, apperrors.Store(err)
		}
		rec, err := r.mergeDependents(ctx, &d)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, apperrors.Store(err)
	}
	return records, nil
}

func (r *trainingDataRepository) Profile(ctx context.Context, patientID int64) (*model.TrainingRecord, error) {
	var d doc[model.Patient]
	err := r.db.Collection(PatientsCollection).
		FindOne(ctx, bson.M{"PatientID": patientID}).
		Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NotFound("patient", err)
	}
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return r.mergeDependents(ctx, &d)
}

func (r *trainingDataRepository) mergeDependents(ctx context.Context, d *doc[model.Patient]) (*model.TrainingRecord, error) {
	agg := aggregated{OID: d.OID, Patient: d.Body}
	filter := bson.M{"PatientID": d.Body.ID}

	var condition doc[model.HealthCondition]
	if err := r.lookupOne(ctx, HealthConditionsCollection, filter, &condition); err == nil {
		agg.Conditions = []model.HealthCondition{condition.Body}
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	var lifestyle doc[model.LifestyleFactor]
	if err := r.lookupOne(ctx, LifestyleFactorsCollection, filter, &lifestyle); err == nil {
		agg.Lifestyle = []model.LifestyleFactor{lifestyle.Body}
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	var metric doc[model.HealthMetric]
	if err := r.lookupOne(ctx, HealthMetricsCollection, filter, &metric); err == nil {
		agg.Metrics = []model.HealthMetric{metric.Body}
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	var access doc[model.HealthcareAccess]
	if err := r.lookupOne(ctx, HealthcareAccessCollection, filter, &access); err == nil {
		agg.Access = []model.HealthcareAccess{access.Body}
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	return flatten(&agg), nil
}

func (r *trainingDataRepository) lookupOne(ctx context.Context, collection string, filter bson.M, dest interface{}) error {
	err := r.db.Collection(collection).FindOne(ctx, filter).Decode(dest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.NotFound(collection, err)
	}
	if err != nil {
		return apperrors.Store(err)
	}
	return nil
}

// flatten merges the first dependent of each kind into one training record,
// matching the soft 1:1 ownership the data model assumes.
func flatten(agg *aggregated) *model.TrainingRecord {
	rec := &model.TrainingRecord{
		DocID:     agg.OID.Hex(),
		PatientID: agg.Patient.ID,
		Sex:       agg.Patient.Sex,
		Age:       agg.Patient.Age,
		Education: agg.Patient.Education,
		Income:    agg.Patient.Income,
		CreatedAt: agg.Patient.CreatedAt,
		UpdatedAt: agg.Patient.UpdatedAt,
	}
	if len(agg.Conditions) > 0 {
		c := agg.Conditions[0]
		rec.Diabetes012 = c.Diabetes012
		rec.HighBP = c.HighBP
		rec.HighChol = c.HighChol
		rec.Stroke = c.Stroke
		rec.HeartDiseaseorAttack = c.HeartDiseaseorAttack
		rec.DiffWalk = c.DiffWalk
	}
	if len(agg.Lifestyle) > 0 {
		l := agg.Lifestyle[0]
		rec.BMI = l.BMI
		rec.Smoker = l.Smoker
		rec.PhysActivity = l.PhysActivity
		rec.Fruits = l.Fruits
		rec.Veggies = l.Veggies
		rec.HvyAlcoholConsump = l.HvyAlcoholConsump
	}
	if len(agg.Metrics) > 0 {
		m := agg.Metrics[0]
		rec.CholCheck = m.CholCheck
		rec.GenHlth = m.GenHlth
		rec.MentHlth = m.MentHlth
		rec.PhysHlth = m.PhysHlth
	}
	if len(agg.Access) > 0 {
		a := agg.Access[0]
		rec.AnyHealthcare = a.AnyHealthcare
		rec.NoDocbcCost = a.NoDocbcCost
	}
	return rec
}
