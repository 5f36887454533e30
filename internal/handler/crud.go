package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/healthml/healthdata-api/internal/model"
	"github.com/healthml/healthdata-api/internal/service/crud"
)

// Request is the write payload contract every entity request fulfils.
type Request[T any] interface {
	Model() *T
	Fields() map[string]interface{}
	PatientRef() (int64, bool)
}

// CRUDHandler serves one entity over one storage backend. T is the entity,
// C the request payload, and PC ties the pointer receiver methods of C to
// the Request contract so gin can bind into a fresh C.
type CRUDHandler[T any, C any, PC interface {
	Request[T]
	*C
}] struct {
	service *crud.Service[T]
}

func NewCRUDHandler[T any, C any, PC interface {
	Request[T]
	*C
}](service *crud.Service[T]) *CRUDHandler[T, C, PC] {
	return &CRUDHandler[T, C, PC]{service: service}
}

// Register mounts the entity routes on the group.
func (h *CRUDHandler[T, C, PC]) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/latest", h.Latest)
	rg.GET("/patient/:patientId", h.ListByPatient)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func (h *CRUDHandler[T, C, PC]) Create(c *gin.Context) {
	var req C
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	payload := PC(&req)

	var ref *int64
	if id, ok := payload.PatientRef(); ok {
		ref = &id
	}
	rec, err := h.service.Create(c.Request.Context(), payload.Model(), ref)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, rec)
}

func (h *CRUDHandler[T, C, PC]) Get(c *gin.Context) {
	rec, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, rec)
}

func (h *CRUDHandler[T, C, PC]) Update(c *gin.Context) {
	var req C
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	rec, err := h.service.Update(c.Request.Context(), c.Param("id"), PC(&req).Fields())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, rec)
}

func (h *CRUDHandler[T, C, PC]) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "deleted")
}

func (h *CRUDHandler[T, C, PC]) List(c *gin.Context) {
	var page model.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	records, total, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	clamped := crud.ClampPage(page)
	respondOK(c, ListResponse{Total: total, Skip: clamped.Skip, Limit: clamped.Limit, Items: records})
}

func (h *CRUDHandler[T, C, PC]) Latest(c *gin.Context) {
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

func (h *CRUDHandler[T, C, PC]) ListByPatient(c *gin.Context) {
	patientID, err := strconv.ParseInt(c.Param("patientId"), 10, 64)
	if err != nil {
		respondBadRequest(c, "patient ID must be an integer")
		return
	}
	records, err := h.service.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, records)
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
