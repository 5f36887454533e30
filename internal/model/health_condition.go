package model

import "time"

// HealthCondition records diagnosed conditions for a patient. Diabetes_012 is
// the tri-state status the classifier is trained to predict: 0 none,
// 1 prediabetes, 2 diabetes.
type HealthCondition struct {
	ID                   int64      `json:"ConditionID" db:"ConditionID" bson:"ConditionID,omitempty"`
	DocID                string     `json:"_id,omitempty" db:"-" bson:"-"`
	PatientID            int64      `json:"PatientID" db:"PatientID" bson:"PatientID"`
	Diabetes012          *int       `json:"Diabetes_012" db:"Diabetes_012" bson:"Diabetes_012,omitempty"`
	HighBP               *bool      `json:"HighBP" db:"HighBP" bson:"HighBP,omitempty"`
	HighChol             *bool      `json:"HighChol" db:"HighChol" bson:"HighChol,omitempty"`
	Stroke               *bool      `json:"Stroke" db:"Stroke" bson:"Stroke,omitempty"`
	HeartDiseaseorAttack *bool      `json:"HeartDiseaseorAttack" db:"HeartDiseaseorAttack" bson:"HeartDiseaseorAttack,omitempty"`
	DiffWalk             *bool      `json:"DiffWalk" db:"DiffWalk" bson:"DiffWalk,omitempty"`
	CreatedAt            *time.Time `json:"created_at,omitempty" db:"-" bson:"created_at,omitempty"`
	UpdatedAt            *time.Time `json:"updated_at,omitempty" db:"-" bson:"updated_at,omitempty"`
}

type HealthConditionRequest struct {
	PatientID            *int64 `json:"PatientID" binding:"omitempty,gte=1"`
	Diabetes012          *int   `json:"Diabetes_012" binding:"omitempty,gte=0,lte=2"`
	HighBP               *bool  `json:"HighBP"`
	HighChol             *bool  `json:"HighChol"`
	Stroke               *bool  `json:"Stroke"`
	HeartDiseaseorAttack *bool  `json:"HeartDiseaseorAttack"`
	DiffWalk             *bool  `json:"DiffWalk"`
}

func (r *HealthConditionRequest) Model() *HealthCondition {
	c := &HealthCondition{
		Diabetes012:          r.Diabetes012,
		HighBP:               r.HighBP,
		HighChol:             r.HighChol,
		Stroke:               r.Stroke,
		HeartDiseaseorAttack: r.HeartDiseaseorAttack,
		DiffWalk:             r.DiffWalk,
	}
	if r.PatientID != nil {
		c.PatientID = *r.PatientID
	}
	return c
}

func (r *HealthConditionRequest) Fields() map[string]interface{} {
	f := make(map[string]interface{})
	if r.Diabetes012 != nil {
		f["Diabetes_012"] = *r.Diabetes012
	}
	if r.HighBP != nil {
		f["HighBP"] = *r.HighBP
	}
	if r.HighChol != nil {
		f["HighChol"] = *r.HighChol
	}
	if r.Stroke != nil {
		f["Stroke"] = *r.Stroke
	}
	if r.HeartDiseaseorAttack != nil {
		f["HeartDiseaseorAttack"] = *r.HeartDiseaseorAttack
	}
	if r.DiffWalk != nil {
		f["DiffWalk"] = *r.DiffWalk
	}
	return f
}

func (r *HealthConditionRequest) PatientRef() (int64, bool) {
	if r.PatientID == nil {
		return 0, false
	}
	return *r.PatientID, true
}
