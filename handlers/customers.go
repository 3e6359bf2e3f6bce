// File: handlers/customers.go
package handlers

import (
	"net/http"

	"wrenchly/middleware"
	"wrenchly/models"
	"wrenchly/services/customer"

	"github.com/gin-gonic/gin"
)

// CustomerHandler exposes customer account management for staff and
// self-service profile endpoints.
type CustomerHandler struct {
	Svc customer.CustomerService
}

// Create handles POST /api/customers (staff only). When sendInvitation is
// set, the new customer receives a one-time temporary password by email.
func (h *CustomerHandler) Create(c *gin.Context) {
	var input models.CustomerCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), middleware.Principal(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// Get handles GET /api/customers/:id (staff only).
func (h *CustomerHandler) Get(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Me handles GET /api/me, backfilling a profile for accounts that
// self-registered through the identity provider.
func (h *CustomerHandler) Me(c *gin.Context) {
	p := middleware.Principal(c)
	u, err := h.Svc.EnsureProfile(c.Request.Context(), p, "")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateMe handles PUT /api/me.
func (h *CustomerHandler) UpdateMe(c *gin.Context) {
	var input models.UserProfileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.Principal(c).UID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
