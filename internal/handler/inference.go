package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/healthml/healthdata-api/internal/model"
	"github.com/healthml/healthdata-api/internal/repository"
	"github.com/healthml/healthdata-api/internal/service/crud"
	"github.com/healthml/healthdata-api/internal/service/inference"
)

// InferenceHandler exposes the classifier and its audit trail.
type InferenceHandler struct {
	service     *inference.Service
	predictions repository.PredictionStore
}

func NewInferenceHandler(service *inference.Service, predictions repository.PredictionStore) *InferenceHandler {
	return &InferenceHandler{service: service, predictions: predictions}
}

func (h *InferenceHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/predict/patient/:patientId", h.PredictPatient)
	rg.POST("/predict/latest", h.PredictLatest)
	rg.POST("/predict/batch", h.PredictBatch)
	rg.GET("/predictions", h.ListPredictions)
	rg.GET("/predictions/patient/:patientId", h.ListPredictionsByPatient)
}

type predictResponse struct {
	PatientID    int64                   `json:"patient_id"`
	PredictionID int64                   `json:"prediction_id,omitempty"`
	ModelVersion string                  `json:"model_version"`
	Prediction   *model.PredictionResult `json:"prediction"`
}

func (h *InferenceHandler) PredictPatient(c *gin.Context) {
	patientID, err := strconv.ParseInt(c.Param("patientId"), 10, 64)
	if err != nil {
		respondBadRequest(c, "patient ID must be an integer")
		return
	}
	p, err := h.service.PredictForPatient(c.Request.Context(), patientID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, toPredictResponse(p))
}

func (h *InferenceHandler) PredictLatest(c *gin.Context) {
	p, err := h.service.PredictLatest(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, toPredictResponse(p))
}

func (h *InferenceHandler) PredictBatch(c *gin.Context) {
	var req model.BatchPredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	outcomes := h.service.PredictBatch(c.Request.Context(), req.PatientIDs)
	respondOK(c, gin.H{
		"model_version": h.service.ModelVersion(),
		"results":       outcomes,
	})
}

func (h *InferenceHandler) ListPredictions(c *gin.Context) {
	var page model.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	page = crud.ClampPage(page)
	predictions, total, err := h.predictions.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, ListResponse{Total: total, Skip: page.Skip, Limit: page.Limit, Items: predictions})
}

func (h *InferenceHandler) ListPredictionsByPatient(c *gin.Context) {
	patientID, err := strconv.ParseInt(c.Param("patientId"), 10, 64)
	if err != nil {
		respondBadRequest(c, "patient ID must be an integer")
		return
	}
	predictions, err := h.predictions.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, predictions)
}

func toPredictResponse(p *model.Prediction) predictResponse {
	return predictResponse{
		PatientID:    p.PatientID,
		PredictionID: p.ID,
		ModelVersion: p.ModelVersion,
		Prediction:   inference.Result(p),
	}
}
