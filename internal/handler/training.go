package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/healthml/healthdata-api/internal/model"
	"github.com/healthml/healthdata-api/internal/service/crud"
	"github.com/healthml/healthdata-api/internal/service/training"
)

// TrainingHandler serves the flat aggregated dataset for one backend.
type TrainingHandler struct {
	service *training.Service
}

func NewTrainingHandler(service *training.Service) *TrainingHandler {
	return &TrainingHandler{service: service}
}

func (h *TrainingHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/complete", h.Complete)
	rg.GET("/latest", h.Latest)
}

// Complete returns a page of records where every feature is populated.
func (h *TrainingHandler) Complete(c *gin.Context) {
	var page model.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	records, total, err := h.service.Complete(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	clamped := crud.ClampPage(page)
	respondOK(c, ListResponse{Total: total, Skip: clamped.Skip, Limit: clamped.Limit, Items: records})
}

// Latest returns the most recently updated patients, nulls included.
func (h *TrainingHandler) Latest(c *gin.Context) {
	limit, err := queryInt(c, "limit", 10)
	if err != nil {
		respondBadRequest(c, "limit must be an integer")
		return
	}
	records, err := h.service.Latest(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, records)
}
