package model

import "time"

// LifestyleFactor records behavioral risk factors for a patient.
type LifestyleFactor struct {
	ID                int64      `json:"LifestyleID" db:"LifestyleID" bson:"LifestyleID,omitempty"`
	DocID             string     `json:"_id,omitempty" db:"-" bson:"-"`
	PatientID         int64      `json:"PatientID" db:"PatientID" bson:"PatientID"`
	BMI               *float64   `json:"BMI" db:"BMI" bson:"BMI,omitempty"`
	Smoker            *bool      `json:"Smoker" db:"Smoker" bson:"Smoker,omitempty"`
	PhysActivity      *bool      `json:"PhysActivity" db:"PhysActivity" bson:"PhysActivity,omitempty"`
	Fruits            *bool      `json:"Fruits" db:"Fruits" bson:"Fruits,omitempty"`
	Veggies           *bool      `json:"Veggies" db:"Veggies" bson:"Veggies,omitempty"`
	HvyAlcoholConsump *bool      `json:"HvyAlcoholConsump" db:"HvyAlcoholConsump" bson:"HvyAlcoholConsump,omitempty"`
	CreatedAt         *time.Time `json:"created_at,omitempty" db:"-" bson:"created_at,omitempty"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty" db:"-" bson:"updated_at,omitempty"`
}

type LifestyleFactorRequest struct {
	PatientID         *int64   `json:"PatientID" binding:"omitempty,gte=1"`
	BMI               *float64 `json:"BMI" binding:"omitempty,gt=0,lt=120"`
	Smoker            *bool    `json:"Smoker"`
	PhysActivity      *bool    `json:"PhysActivity"`
	Fruits            *bool    `json:"Fruits"`
	Veggies           *bool    `json:"Veggies"`
	HvyAlcoholConsump *bool    `json:"HvyAlcoholConsump"`
}

func (r *LifestyleFactorRequest) Model() *LifestyleFactor {
	l := &LifestyleFactor{
		BMI:               r.BMI,
		Smoker:            r.Smoker,
		PhysActivity:      r.PhysActivity,
		Fruits:            r.Fruits,
		Veggies:           r.Veggies,
		HvyAlcoholConsump: r.HvyAlcoholConsump,
	}
	if r.PatientID != nil {
		l.PatientID = *r.PatientID
	}
	return l
}

func (r *LifestyleFactorRequest) Fields() map[string]interface{} {
	f := make(map[string]interface{})
	if r.BMI != nil {
		f["BMI"] = *r.BMI
	}
	if r.Smoker != nil {
		f["Smoker"] = *r.Smoker
	}
	if r.PhysActivity != nil {
		f["PhysActivity"] = *r.PhysActivity
	}
	if r.Fruits != nil {
		f["Fruits"] = *r.Fruits
	}
	if r.Veggies != nil {
		f["Veggies"] = *r.Veggies
	}
	if r.HvyAlcoholConsump != nil {
		f["HvyAlcoholConsump"] = *r.HvyAlcoholConsump
	}
	return f
}

func (r *LifestyleFactorRequest) PatientRef() (int64, bool) {
	if r.PatientID == nil {
		return 0, false
	}
	return *r.PatientID, true
}
