// File: handlers/mechanics.go
package handlers

import (
	"net/http"

	"wrenchly/middleware"
	"wrenchly/models"
	"wrenchly/services/mechanic"

	"github.com/gin-gonic/gin"
)

// MechanicHandler exposes mechanic profile and schedule management.
type MechanicHandler struct {
	Svc mechanic.MechanicService
}

// List handles GET /api/mechanics.
func (h *MechanicHandler) List(c *gin.Context) {
	includeInactive := false
	if p := middleware.Principal(c); p != nil && p.Admin {
		includeInactive = c.Query("includeInactive") == "true"
	}
	mechanics, err := h.Svc.List(c.Request.Context(), includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mechanics)
}

// Get handles GET /api/mechanics/:id.
func (h *MechanicHandler) Get(c *gin.Context) {
	m, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// Create handles POST /api/mechanics.
func (h *MechanicHandler) Create(c *gin.Context) {
	var input mechanic.MechanicInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	m, err := h.Svc.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// Update handles PUT /api/mechanics/:id.
func (h *MechanicHandler) Update(c *gin.Context) {
	var input mechanic.MechanicInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	m, err := h.Svc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// SetSchedule handles PUT /api/mechanics/:id/schedule. Mechanics update
// their own schedule, admins anyone's; changes reach the availability store
// on the next seeding run.
func (h *MechanicHandler) SetSchedule(c *gin.Context) {
	var schedule models.WeeklySchedule
	if err := c.ShouldBindJSON(&schedule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule", "details": err.Error()})
		return
	}
	m, err := h.Svc.SetSchedule(c.Request.Context(), middleware.Principal(c), c.Param("id"), schedule)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// SetActive handles PATCH /api/mechanics/:id/active.
func (h *MechanicHandler) SetActive(c *gin.Context) {
	var input struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Svc.SetActive(c.Request.Context(), c.Param("id"), *input.Active); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
