package model

import "time"

// Patient holds demographic information. One patient owns at most one row in
// each dependent entity in practice, although the stores model it as 1:N.
type Patient struct {
	ID        int64      `json:"PatientID" db:"PatientID" bson:"PatientID"`
	DocID     string     `json:"_id,omitempty" db:"-" bson:"-"`
	Sex       *bool      `json:"Sex" db:"Sex" bson:"Sex,omitempty"`
	Age       *int       `json:"Age" db:"Age" bson:"Age,omitempty"`
	Education *int       `json:"Education" db:"Education" bson:"Education,omitempty"`
	Income    *int       `json:"Income" db:"Income" bson:"Income,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty" db:"-" bson:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"-" bson:"updated_at,omitempty"`
}

// PatientRequest is the create/update payload. All attribute fields are
// optional; updates touch only the fields supplied.
type PatientRequest struct {
	PatientID *int64 `json:"PatientID" binding:"omitempty,gte=1"`
	Sex       *bool  `json:"Sex"`
	Age       *int   `json:"Age" binding:"omitempty,gte=0,lte=130"`
	Education *int   `json:"Education" binding:"omitempty,gte=1,lte=6"`
	Income    *int   `json:"Income" binding:"omitempty,gte=1,lte=8"`
}

func (r *PatientRequest) Model() *Patient {
	p := &Patient{
		Sex:       r.Sex,
		Age:       r.Age,
		Education: r.Education,
		Income:    r.Income,
	}
	if r.PatientID != nil {
		p.ID = *r.PatientID
	}
	return p
}

func (r *PatientRequest) Fields() map[string]interface{} {
	f := make(map[string]interface{})
	if r.Sex != nil {
		f["Sex"] = *r.Sex
	}
	if r.Age != nil {
		f["Age"] = *r.Age
	}
	if r.Education != nil {
		f["Education"] = *r.Education
	}
	if r.Income != nil {
		f["Income"] = *r.Income
	}
	return f
}

// PatientRef reports no parent reference; patients are the root entity.
func (r *PatientRequest) PatientRef() (int64, bool) {
	return 0, false
}
