package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"medwatch/internal/models"
	"medwatch/internal/responses"
	"medwatch/internal/services"
)

type DeviceHandler struct {
	deviceService *services.DeviceService
}

func NewDeviceHandler(deviceService *services.DeviceService) *DeviceHandler {
	return &DeviceHandler{deviceService: deviceService}
}

// List handles GET /api/medicaldevices?pageNumber&pageSize
func (h *DeviceHandler) List(c *gin.Context) {
	pageNumber, pageSize := pageParams(c)

	devices, total, err := h.deviceService.List(c.Request.Context(), pageNumber, pageSize)
	if err != nil {
		responses.ServerError(c)
		return
	}

	setPaginationHeaders(c, total, pageNumber, pageSize)
	c.JSON(http.StatusOK, devices)
}

// Get handles GET /api/medicaldevices/:id
func (h *DeviceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "Invalid id format")
		return
	}

	device, err := h.deviceService.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, device)
}

// ListVitals handles GET /api/medicaldevices/:id/vitals. A missing device
// is a 404; an existing device with no readings is an empty array.
func (h *DeviceHandler) ListVitals(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "Invalid id format")
		return
	}

	vitals, err := h.deviceService.ListVitals(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, vitals)
}

// Create handles POST /api/medicaldevices (Admin only)
func (h *DeviceHandler) Create(c *gin.Context) {
	var req models.CreateMedicalDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BindingError(c, err)
		return
	}

	device, err := h.deviceService.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Location", "/api/medicaldevices/"+device.ID.String())
	c.JSON(http.StatusCreated, device)
}

// Update handles PUT /api/medicaldevices/:id (Admin only)
func (h *DeviceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "Invalid id format")
		return
	}

	var req models.UpdateMedicalDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BindingError(c, err)
		return
	}

	device, err := h.deviceService.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, device)
}

// Delete handles DELETE /api/medicaldevices/:id (Admin only). Takes the
// device's vitals with it.
func (h *DeviceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		responses.Message(c, http.StatusBadRequest, "Invalid id format")
		return
	}

	if err := h.deviceService.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
