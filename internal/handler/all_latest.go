package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/healthml/healthdata-api/internal/model"
	"github.com/healthml/healthdata-api/internal/service/crud"
)

// AllLatestHandler returns the most recent documents of every collection in
// one response, a convenience the document backend exposes for dataset
// inspection.
type AllLatestHandler struct {
	patients   *crud.Service[model.Patient]
	conditions *crud.Service[model.HealthCondition]
	lifestyle  *crud.Service[model.LifestyleFactor]
	metrics    *crud.Service[model.HealthMetric]
	access     *crud.Service[model.HealthcareAccess]
}

func NewAllLatestHandler(
	patients *crud.Service[model.Patient],
	conditions *crud.Service[model.HealthCondition],
	lifestyle *crud.Service[model.LifestyleFactor],
	metrics *crud.Service[model.HealthMetric],
	access *crud.Service[model.HealthcareAccess],
) *AllLatestHandler {
	return &AllLatestHandler{
		patients:   patients,
		conditions: conditions,
		lifestyle:  lifestyle,
		metrics:    metrics,
		access:     access,
	}
}

func (h *AllLatestHandler) AllLatest(c *gin.Context) {
	limit, err := queryInt(c, "limit", 10)
	if err != nil {
		respondBadRequest(c, "limit must be an integer")
		return
	}
	ctx := c.Request.Context()

	patients, err := h.patients.Latest(ctx, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	conditions, err := h.conditions.Latest(ctx, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	lifestyle, err := h.lifestyle.Latest(ctx, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	metrics, err := h.metrics.Latest(ctx, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	access, err := h.access.Latest(ctx, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{
		"patients":          patients,
		"health_conditions": conditions,
		"lifestyle_factors": lifestyle,
		"health_metrics":    metrics,
		"healthcare_access": access,
	})
}
