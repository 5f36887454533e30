package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthml/healthdata-api/internal/model"
)

func boolPtr(v bool) *bool    { return &v }
func intPtr(v int) *int       { return &v }
func fPtr(v float64) *float64 { return &v }

func fullAggregated() *aggregated {
	return &aggregated{
		OID: primitive.NewObjectID(),
		Patient: model.Patient{
			ID: 12, Sex: boolPtr(true), Age: intPtr(9), Education: intPtr(4), Income: intPtr(6),
		},
		Conditions: []model.HealthCondition{{
			Diabetes012: intPtr(1), HighBP: boolPtr(true), HighChol: boolPtr(false),
			Stroke: boolPtr(false), HeartDiseaseorAttack: boolPtr(false), DiffWalk: boolPtr(false),
		}},
		Lifestyle: []model.LifestyleFactor{{
			BMI: fPtr(30.1), Smoker: boolPtr(true), PhysActivity: boolPtr(true),
			Fruits: boolPtr(true), Veggies: boolPtr(true), HvyAlcoholConsump: boolPtr(false),
		}},
		Metrics: []model.HealthMetric{{
			CholCheck: boolPtr(true), GenHlth: intPtr(3), MentHlth: intPtr(2), PhysHlth: intPtr(0),
		}},
		Access: []model.HealthcareAccess{{
			AnyHealthcare: boolPtr(true), NoDocbcCost: boolPtr(false),
		}},
	}
}

func TestFlattenMergesAllEntities(t *testing.T) {
	agg := fullAggregated()
	rec := flatten(agg)

	assert.Equal(t, int64(12), rec.PatientID)
	assert.Equal(t, agg.OID.Hex(), rec.DocID)
	assert.Equal(t, 1, *rec.Diabetes012)
	assert.Equal(t, 30.1, *rec.BMI)
	assert.Equal(t, 3, *rec.GenHlth)
	assert.True(t, *rec.AnyHealthcare)
	assert.True(t, rec.Complete())
}

func TestFlattenMissingDependentLeavesNulls(t *testing.T) {
	agg := fullAggregated()
	agg.Access = nil

	rec := flatten(agg)
	assert.Nil(t, rec.AnyHealthcare)
	assert.Nil(t, rec.NoDocbcCost)
	assert.False(t, rec.Complete())
}

func TestFlattenNullFieldMakesRecordIncomplete(t *testing.T) {
	agg := fullAggregated()
	agg.Lifestyle[0].BMI = nil

	rec := flatten(agg)
	assert.False(t, rec.Complete())
}
