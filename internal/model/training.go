package model

import "time"

// TrainingRecord is the flat join of a patient with its four dependent
// entities. It is derived, never persisted; nil means the field was missing
// from the underlying store.
type TrainingRecord struct {
	DocID                string     `json:"_id,omitempty" db:"-"`
	PatientID            int64      `json:"PatientID" db:"PatientID"`
	Sex                  *bool      `json:"Sex" db:"Sex"`
	Age                  *int       `json:"Age" db:"Age"`
	Education            *int       `json:"Education" db:"Education"`
	Income               *int       `json:"Income" db:"Income"`
	Diabetes012          *int       `json:"Diabetes_012" db:"Diabetes_012"`
	HighBP               *bool      `json:"HighBP" db:"HighBP"`
	HighChol             *bool      `json:"HighChol" db:"HighChol"`
	Stroke               *bool      `json:"Stroke" db:"Stroke"`
	HeartDiseaseorAttack *bool      `json:"HeartDiseaseorAttack" db:"HeartDiseaseorAttack"`
	DiffWalk             *bool      `json:"DiffWalk" db:"DiffWalk"`
	BMI                  *float64   `json:"BMI" db:"BMI"`
	Smoker               *bool      `json:"Smoker" db:"Smoker"`
	PhysActivity         *bool      `json:"PhysActivity" db:"PhysActivity"`
	Fruits               *bool      `json:"Fruits" db:"Fruits"`
	Veggies              *bool      `json:"Veggies" db:"Veggies"`
	HvyAlcoholConsump    *bool      `json:"HvyAlcoholConsump" db:"HvyAlcoholConsump"`
	CholCheck            *bool      `json:"CholCheck" db:"CholCheck"`
	GenHlth              *int       `json:"GenHlth" db:"GenHlth"`
	MentHlth             *int       `json:"MentHlth" db:"MentHlth"`
	PhysHlth             *int       `json:"PhysHlth" db:"PhysHlth"`
	AnyHealthcare        *bool      `json:"AnyHealthcare" db:"AnyHealthcare"`
	NoDocbcCost          *bool      `json:"NoDocbcCost" db:"NoDocbcCost"`
	CreatedAt            *time.Time `json:"created_at,omitempty" db:"-"`
	UpdatedAt            *time.Time `json:"updated_at,omitempty" db:"-"`
}

// Value returns the named field as an untyped value, or nil when the field is
// absent. Names follow the canonical feature list the model was trained on.
func (r *TrainingRecord) Value(name string) interface{} {
	switch name {
	case "Sex":
		return deref(r.Sex)
	case "Age":
		return deref(r.Age)
	case "Education":
		return deref(r.Education)
	case "Income":
		return deref(r.Income)
	case "Diabetes_012":
		return deref(r.Diabetes012)
	case "HighBP":
		return deref(r.HighBP)
	case "HighChol":
		return deref(r.HighChol)
	case "Stroke":
		return deref(r.Stroke)
	case "HeartDiseaseorAttack":
		return deref(r.HeartDiseaseorAttack)
	case "DiffWalk":
		return deref(r.DiffWalk)
	case "BMI":
		return deref(r.BMI)
	case "Smoker":
		return deref(r.Smoker)
	case "PhysActivity":
		return deref(r.PhysActivity)
	case "Fruits":
		return deref(r.Fruits)
	case "Veggies":
		return deref(r.Veggies)
	case "HvyAlcoholConsump":
		return deref(r.HvyAlcoholConsump)
	case "CholCheck":
		return deref(r.CholCheck)
	case "GenHlth":
		return deref(r.GenHlth)
	case "MentHlth":
		return deref(r.MentHlth)
	case "PhysHlth":
		return deref(r.PhysHlth)
	case "AnyHealthcare":
		return deref(r.AnyHealthcare)
	case "NoDocbcCost":
		return deref(r.NoDocbcCost)
	default:
		return nil
	}
}

// Complete reports whether every joined field is present. Complete-mode
// aggregation must never return a record for which this is false.
func (r *TrainingRecord) Complete() bool {
	return r.Sex != nil && r.Age != nil && r.Education != nil && r.Income != nil &&
		r.Diabetes012 != nil && r.HighBP != nil && r.HighChol != nil &&
		r.Stroke != nil && r.HeartDiseaseorAttack != nil && r.DiffWalk != nil &&
		r.BMI != nil && r.Smoker != nil && r.PhysActivity != nil &&
		r.Fruits != nil && r.Veggies != nil && r.HvyAlcoholConsump != nil &&
		r.CholCheck != nil && r.GenHlth != nil && r.MentHlth != nil &&
		r.PhysHlth != nil && r.AnyHealthcare != nil && r.NoDocbcCost != nil
}

func deref(v interface{}) interface{} {
	switch p := v.(type) {
	case *bool:
		if p == nil {
			return nil
		}
		return *p
	case *int:
		if p == nil {
			return nil
		}
		return *p
	case *float64:
		if p == nil {
			return nil
		}
		return *p
	default:
		return nil
	}
}

// Page bounds a list query. Limit is clamped by the services.
type Page struct {
	Skip  int `form:"skip" json:"skip"`
	Limit int `form:"limit" json:"limit"`
}

// MaxPageLimit caps a single aggregation or list page.
const MaxPageLimit = 1000
