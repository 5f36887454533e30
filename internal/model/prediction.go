package model

import (
	"encoding/json"
	"time"
)

// Prediction is the audit record persisted after each inference call.
// Persisting it must never fail the prediction itself.
type Prediction struct {
	ID              int64           `json:"prediction_id" db:"PredictionID"`
	PatientID       int64           `json:"patient_id" db:"PatientID"`
	RawOutput       float64         `json:"raw_output" db:"RawOutput"`
	PredictedClass  int             `json:"predicted_class" db:"PredictedClass"`
	PredictedLabel  string          `json:"predicted_label" db:"PredictedLabel"`
	ModelVersion    string          `json:"model_version" db:"ModelVersion"`
	PredictedAt     time.Time       `json:"predicted_at" db:"PredictedAt"`
	FeatureSnapshot json.RawMessage `json:"features,omitempty" db:"FeatureSnapshot"`
}

// BatchPredictRequest asks for predictions over a set of patients.
type BatchPredictRequest struct {
	PatientIDs []int64 `json:"patient_ids" binding:"required,min=1,max=100,dive,gte=1"`
}

// PredictOutcome is one per-record result of a batch prediction.
type PredictOutcome struct {
	PatientID    int64             `json:"patient_id"`
	Success      bool              `json:"success"`
	PredictionID int64             `json:"prediction_id,omitempty"`
	Prediction   *PredictionResult `json:"prediction,omitempty"`
	Error        string            `json:"error,omitempty"`
}

// PredictionResult is the classification part of a prediction response.
type PredictionResult struct {
	RawOutput      float64 `json:"raw_output"`
	PredictedClass int     `json:"predicted_class"`
	PredictedLabel string  `json:"predicted_label"`
	Confidence     float64 `json:"confidence"`
}

// OutboxEvent queues a domain event for asynchronous publication.
type OutboxEvent struct {
	ID        int64           `json:"id" db:"id"`
	EventType string          `json:"event_type" db:"event_type"`
	Payload   json.RawMessage `json:"payload" db:"payload"`
	Status    string          `json:"status" db:"status"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// Outbox event statuses.
const (
	OutboxPending   = "pending"
	OutboxPublished = "published"
	OutboxFailed    = "failed"
)
