// File: handlers/booking.go
package handlers

import (
	"net/http"
	"time"

	"wrenchly/middleware"
	"wrenchly/models"
	"wrenchly/services/booking"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking engine and lifecycle over HTTP.
type BookingHandler struct {
	Svc booking.BookingService
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	var input models.BookingCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.Svc.Create(c.Request.Context(), middleware.Principal(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// Get handles GET /api/bookings/:id.
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.Svc.Get(c.Request.Context(), middleware.Principal(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// List handles GET /api/bookings with optional filters.
func (h *BookingHandler) List(c *gin.Context) {
	f := models.BookingFilter{
		CustomerEmail: c.Query("customerEmail"),
		MechanicID:    c.Query("mechanicId"),
		Status:        c.Query("status"),
		Day:           c.Query("day"),
	}
	bookings, err := h.Svc.List(c.Request.Context(), middleware.Principal(c), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// Approve handles POST /api/bookings/:id/approve.
func (h *BookingHandler) Approve(c *gin.Context) {
	var input struct {
		Notes string `json:"notes"`
	}
	_ = c.ShouldBindJSON(&input)

	b, err := h.Svc.Approve(c.Request.Context(), middleware.Principal(c), c.Param("id"), input.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Deny handles POST /api/bookings/:id/deny.
func (h *BookingHandler) Deny(c *gin.Context) {
	var input struct {
		Notes string `json:"notes"`
	}
	_ = c.ShouldBindJSON(&input)

	b, err := h.Svc.Deny(c.Request.Context(), middleware.Principal(c), c.Param("id"), input.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Cancel handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) Cancel(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&input)

	b, err := h.Svc.Cancel(c.Request.Context(), middleware.Principal(c), c.Param("id"), input.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// RequestReschedule handles POST /api/bookings/:id/reschedule.
func (h *BookingHandler) RequestReschedule(c *gin.Context) {
	var input struct {
		Reason     string      `json:"reason" binding:"required"`
		Candidates []time.Time `json:"candidates" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.Svc.RequestReschedule(c.Request.Context(), middleware.Principal(c), c.Param("id"), input.Reason, input.Candidates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// PatchStatus handles PATCH /api/bookings/:id/status.
func (h *BookingHandler) PatchStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.Svc.PatchStatus(c.Request.Context(), middleware.Principal(c), c.Param("id"), input.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
