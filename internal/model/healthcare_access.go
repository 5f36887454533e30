package model

import "time"

// HealthcareAccess records insurance coverage and cost barriers.
type HealthcareAccess struct {
	ID            int64      `json:"AccessID" db:"AccessID" bson:"AccessID,omitempty"`
	DocID         string     `json:"_id,omitempty" db:"-" bson:"-"`
	PatientID     int64      `json:"PatientID" db:"PatientID" bson:"PatientID"`
	AnyHealthcare *bool      `json:"AnyHealthcare" db:"AnyHealthcare" bson:"AnyHealthcare,omitempty"`
	NoDocbcCost   *bool      `json:"NoDocbcCost" db:"NoDocbcCost" bson:"NoDocbcCost,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty" db:"-" bson:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty" db:"-" bson:"updated_at,omitempty"`
}

type HealthcareAccessRequest struct {
	PatientID     *int64 `json:"PatientID" binding:"omitempty,gte=1"`
	AnyHealthcare *bool  `json:"AnyHealthcare"`
	NoDocbcCost   *bool  `json:"NoDocbcCost"`
}

func (r *HealthcareAccessRequest) Model() *HealthcareAccess {
	a := &HealthcareAccess{
		AnyHealthcare: r.AnyHealthcare,
		NoDocbcCost:   r.NoDocbcCost,
	}
	if r.PatientID != nil {
		a.PatientID = *r.PatientID
	}
	return a
}

func (r *HealthcareAccessRequest) Fields() map[string]interface{} {
	f := make(map[string]interface{})
	if r.AnyHealthcare != nil {
		f["AnyHealthcare"] = *r.AnyHealthcare
	}
	if r.NoDocbcCost != nil {
		f["NoDocbcCost"] = *r.NoDocbcCost
	}
	return f
}

func (r *HealthcareAccessRequest) PatientRef() (int64, bool) {
	if r.PatientID == nil {
		return 0, false
	}
	return *r.PatientID, true
}
