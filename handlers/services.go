// File: handlers/services.go
package handlers

import (
	"net/http"

	"wrenchly/middleware"
	"wrenchly/models"
	"wrenchly/services/catalog"

	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes the bookable service catalog.
type CatalogHandler struct {
	Svc catalog.CatalogService
}

// List handles GET /api/services. Staff can pass includeInactive=true.
func (h *CatalogHandler) List(c *gin.Context) {
	includeInactive := false
	if p := middleware.Principal(c); p != nil && (p.Admin || p.Mechanic) {
		includeInactive = c.Query("includeInactive") == "true"
	}
	services, err := h.Svc.List(c.Request.Context(), includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// Get handles GET /api/services/:id.
func (h *CatalogHandler) Get(c *gin.Context) {
	svc, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// Create handles POST /api/services.
func (h *CatalogHandler) Create(c *gin.Context) {
	var input models.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	svc, err := h.Svc.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// Update handles PUT /api/services/:id.
func (h *CatalogHandler) Update(c *gin.Context) {
	var input models.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	svc, err := h.Svc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// Deactivate handles DELETE /api/services/:id (soft delete).
func (h *CatalogHandler) Deactivate(c *gin.Context) {
	if err := h.Svc.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}
