package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/healthml/healthdata-api/internal/repository"
)

// PatientLookupHandler adds the integer-ID access path the document backend
// needs. Document IDs are ObjectID hex, so clients holding a business
// PatientID look patients up here.
type PatientLookupHandler struct {
	store repository.PatientStore
}

func NewPatientLookupHandler(store repository.PatientStore) *PatientLookupHandler {
	return &PatientLookupHandler{store: store}
}

func (h *PatientLookupHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/by-patient-id/:patientId", h.GetByPatientID)
}

func (h *PatientLookupHandler) GetByPatientID(c *gin.Context) {
	patientID, err := strconv.ParseInt(c.Param("patientId"), 10, 64)
	if err != nil {
		respondBadRequest(c, "patient ID must be an integer")
		return
	}
	patient, err := h.store.GetByPatientID(c.Request.Context(), patientID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, patient)
}
