package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"medwatch/internal/models"
	"medwatch/internal/responses"
	"medwatch/internal/services"
)

type PatientHandler struct {
	patientService *services.PatientService
}

func NewPatientHandler(patientService *services.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// List handles GET /api/patients?pageNumber&pageSize
func (h *PatientHandler) List(c *gin.Context) {
	pageNumber, pageSize := pageParams(c)

	patients, total, err := h.patientService.List(c.Request.Context(), pageNumber, pageSize)
	if err != nil {
		responses.ServerError(c)
		return
	}

	setPaginationHeaders(c, total, pageNumber, pageSize)
	c.JSON(http.StatusOK, patients)
}

// Get handles GET /api/patients/:id
func (h *PatientHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "Invalid id format")
		return
	}

	patient, err := h.patientService.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, patient)
}

// Create handles POST /api/patients (Admin only)
func (h *PatientHandler) Create(c *gin.Context) {
	var req models.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BindingError(c, err)
		return
	}

	patient, err := h.patientService.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Location", "/api/patients/"+patient.ID.String())
	c.JSON(http.StatusCreated, patient)
}

// Update handles PUT /api/patients/:id (Admin only)
func (h *PatientHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "Invalid id format")
		return
	}

	var req models.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BindingError(c, err)
		return
	}

	patient, err := h.patientService.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, patient)
}

// Delete handles DELETE /api/patients/:id (Admin only)
func (h *PatientHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "Invalid id format")
		return
	}

	if err := h.patientService.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
