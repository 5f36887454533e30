package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(v bool) *bool        { return &v }
func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func completeRecord() *TrainingRecord {
	return &TrainingRecord{
		PatientID:            1,
		Sex:                  boolPtr(true),
		Age:                  intPtr(9),
		Education:            intPtr(4),
		Income:               intPtr(6),
		Diabetes012:          intPtr(0),
		HighBP:               boolPtr(true),
		HighChol:             boolPtr(false),
		Stroke:               boolPtr(false),
		HeartDiseaseorAttack: boolPtr(false),
		DiffWalk:             boolPtr(false),
		BMI:                  floatPtr(28.5),
		Smoker:               boolPtr(true),
		PhysActivity:         boolPtr(true),
		Fruits:               boolPtr(true),
		Veggies:              boolPtr(true),
		HvyAlcoholConsump:    boolPtr(false),
		CholCheck:            boolPtr(true),
		GenHlth:              intPtr(2),
		MentHlth:             intPtr(0),
		PhysHlth:             intPtr(3),
		AnyHealthcare:        boolPtr(true),
		NoDocbcCost:          boolPtr(false),
	}
}

func TestValueReturnsTypedValues(t *testing.T) {
	rec := completeRecord()

	assert.Equal(t, true, rec.Value("HighBP"))
	assert.Equal(t, 28.5, rec.Value("BMI"))
	assert.Equal(t, 9, rec.Value("Age"))
	assert.Nil(t, rec.Value("NoSuchFeature"))
}

func TestValueNilForMissingField(t *testing.T) {
	rec := &TrainingRecord{PatientID: 1}
	assert.Nil(t, rec.Value("HighBP"))
	assert.Nil(t, rec.Value("BMI"))
}

func TestComplete(t *testing.T) {
	rec := completeRecord()
	assert.True(t, rec.Complete())

	rec.BMI = nil
	assert.False(t, rec.Complete())
}

func TestRequestFieldsOnlySuppliedValues(t *testing.T) {
	req := &HealthConditionRequest{
		HighBP:      boolPtr(true),
		Diabetes012: intPtr(2),
	}
	fields := req.Fields()

	assert.Equal(t, map[string]interface{}{
		"HighBP":       true,
		"Diabetes_012": 2,
	}, fields)
}

func TestRequestModelCarriesPatientID(t *testing.T) {
	pid := int64(5)
	req := &HealthConditionRequest{PatientID: &pid, HighBP: boolPtr(true)}

	cond := req.Model()
	assert.Equal(t, int64(5), cond.PatientID)

	got, ok := req.PatientRef()
	assert.True(t, ok)
	assert.Equal(t, int64(5), got)
}

func TestPatientRequestHasNoPatientRef(t *testing.T) {
	req := &PatientRequest{Age: intPtr(9)}
	_, ok := req.PatientRef()
	assert.False(t, ok)
}
