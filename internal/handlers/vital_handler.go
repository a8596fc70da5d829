package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"medwatch/internal/models"
	"medwatch/internal/responses"
	"medwatch/internal/services"
)

type VitalHandler struct {
	vitalService *services.VitalService
}

func NewVitalHandler(vitalService *services.VitalService) *VitalHandler {
	return &VitalHandler{vitalService: vitalService}
}

// List handles GET /api/vitals?pageNumber&pageSize
func (h *VitalHandler) List(c *gin.Context) {
	pageNumber, pageSize := pageParams(c)

	vitals, total, err := h.vitalService.List(c.Request.Context(), pageNumber, pageSize)
	if err != nil {
		responses.ServerError(c)
		return
	}

	setPaginationHeaders(c, total, pageNumber, pageSize)
	c.JSON(http.StatusOK, vitals)
}

// Get handles GET /api/vitals/:id
func (h *VitalHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "Invalid id format")
		return
	}

	vital, err := h.vitalService.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, vital)
}

// ListByPatient handles GET /api/vitals/patient/:patientId. Unlike the
// device-scoped listing this never 404s on a missing owner; a nonexistent
// patient id just yields an empty array.
func (h *VitalHandler) ListByPatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "Invalid id format")
		return
	}

	vitals, err := h.vitalService.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, vitals)
}

// Create handles POST /api/vitals (Admin only)
func (h *VitalHandler) Create(c *gin.Context) {
	var req models.CreateVitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BindingError(c, err)
		return
	}

	vital, err := h.vitalService.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Location", "/api/vitals/"+vital.ID.String())
	c.JSON(http.StatusCreated, vital)
}

// Update handles PUT /api/vitals/:id (Admin only)
func (h *VitalHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "Invalid id format")
		return
	}

	var req models.UpdateVitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BindingError(c, err)
		return
	}

	vital, err := h.vitalService.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, vital)
}

// Delete handles DELETE /api/vitals/:id (Admin only)
func (h *VitalHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "Invalid id format")
		return
	}

	if err := h.vitalService.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
