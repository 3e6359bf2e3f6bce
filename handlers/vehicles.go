// File: handlers/vehicles.go
package handlers

import (
	"net/http"

	"wrenchly/middleware"
	"wrenchly/models"
	"wrenchly/services/vehicle"

	"github.com/gin-gonic/gin"
)

// VehicleHandler exposes customer vehicle management.
type VehicleHandler struct {
	Svc vehicle.VehicleService
}

// List handles GET /api/vehicles. Staff may pass userId to inspect another
// customer's garage.
func (h *VehicleHandler) List(c *gin.Context) {
	p := middleware.Principal(c)
	if userID := c.Query("userId"); userID != "" && (p.Admin || p.Mechanic) {
		vehicles, err := h.Svc.ListForUser(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, vehicles)
		return
	}

	vehicles, err := h.Svc.ListMine(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// Get handles GET /api/vehicles/:id.
func (h *VehicleHandler) Get(c *gin.Context) {
	v, err := h.Svc.Get(c.Request.Context(), middleware.Principal(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Create handles POST /api/vehicles.
func (h *VehicleHandler) Create(c *gin.Context) {
	var input models.VehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	v, err := h.Svc.Create(c.Request.Context(), middleware.Principal(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// Update handles PUT /api/vehicles/:id.
func (h *VehicleHandler) Update(c *gin.Context) {
	var input models.VehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	v, err := h.Svc.Update(c.Request.Context(), middleware.Principal(c), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Delete handles DELETE /api/vehicles/:id.
func (h *VehicleHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.Principal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// SetPrimary handles POST /api/vehicles/:id/primary.
func (h *VehicleHandler) SetPrimary(c *gin.Context) {
	if err := h.Svc.SetPrimary(c.Request.Context(), middleware.Principal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
