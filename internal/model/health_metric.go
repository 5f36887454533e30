package model

import "time"

// HealthMetric records screening results and self-reported health scores.
// GenHlth is a 1-5 ordinal; MentHlth and PhysHlth count bad days in the last
// 30 days.
type HealthMetric struct {
	ID        int64      `json:"MetricsID" db:"MetricsID" bson:"MetricsID,omitempty"`
	DocID     string     `json:"_id,omitempty" db:"-" bson:"-"`
	PatientID int64      `json:"PatientID" db:"PatientID" bson:"PatientID"`
	CholCheck *bool      `json:"CholCheck" db:"CholCheck" bson:"CholCheck,omitempty"`
	GenHlth   *int       `json:"GenHlth" db:"GenHlth" bson:"GenHlth,omitempty"`
	MentHlth  *int       `json:"MentHlth" db:"MentHlth" bson:"MentHlth,omitempty"`
	PhysHlth  *int       `json:"PhysHlth" db:"PhysHlth" bson:"PhysHlth,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty" db:"-" bson:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"-" bson:"updated_at,omitempty"`
}

type HealthMetricRequest struct {
	PatientID *int64 `json:"PatientID" binding:"omitempty,gte=1"`
	CholCheck *bool  `json:"CholCheck"`
	GenHlth   *int   `json:"GenHlth" binding:"omitempty,gte=1,lte=5"`
	MentHlth  *int   `json:"MentHlth" binding:"omitempty,gte=0,lte=30"`
	PhysHlth  *int   `json:"PhysHlth" binding:"omitempty,gte=0,lte=30"`
}

func (r *HealthMetricRequest) Model() *HealthMetric {
	m := &HealthMetric{
		CholCheck: r.CholCheck,
		GenHlth:   r.GenHlth,
		MentHlth:  r.MentHlth,
		PhysHlth:  r.PhysHlth,
	}
	if r.PatientID != nil {
		m.PatientID = *r.PatientID
	}
	return m
}

func (r *HealthMetricRequest) Fields() map[string]interface{} {
	f := make(map[string]interface{})
	if r.CholCheck != nil {
		f["CholCheck"] = *r.CholCheck
	}
	if r.GenHlth != nil {
		f["GenHlth"] = *r.GenHlth
	}
	if r.MentHlth != nil {
		f["MentHlth"] = *r.MentHlth
	}
	if r.PhysHlth != nil {
		f["PhysHlth"] = *r.PhysHlth
	}
	return f
}

func (r *HealthMetricRequest) PatientRef() (int64, bool) {
	if r.PatientID == nil {
		return 0, false
	}
	return *r.PatientID, true
}
