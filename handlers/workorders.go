// File: handlers/workorders.go
package handlers

import (
	"net/http"

	"wrenchly/middleware"
	"wrenchly/models"
	"wrenchly/services/workorder"

	"github.com/gin-gonic/gin"
)

// WorkOrderHandler exposes work orders, their photos, and the parts
// inventory.
type WorkOrderHandler struct {
	Svc *workorder.DefaultWorkOrderService
}

// List handles GET /api/workorders.
func (h *WorkOrderHandler) List(c *gin.Context) {
	orders, err := h.Svc.List(c.Request.Context(), middleware.Principal(c),
		c.Query("customerUid"), c.Query("mechanicId"), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Get handles GET /api/workorders/:id.
func (h *WorkOrderHandler) Get(c *gin.Context) {
	wo, err := h.Svc.Get(c.Request.Context(), middleware.Principal(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wo)
}

// Create handles POST /api/workorders.
func (h *WorkOrderHandler) Create(c *gin.Context) {
	var input models.WorkOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	wo, err := h.Svc.Create(c.Request.Context(), middleware.Principal(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, wo)
}

// Update handles PUT /api/workorders/:id.
func (h *WorkOrderHandler) Update(c *gin.Context) {
	var input models.WorkOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	wo, err := h.Svc.Update(c.Request.Context(), middleware.Principal(c), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wo)
}

// Complete handles POST /api/workorders/:id/complete.
func (h *WorkOrderHandler) Complete(c *gin.Context) {
	wo, err := h.Svc.Complete(c.Request.Context(), middleware.Principal(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wo)
}

// Delete handles DELETE /api/workorders/:id.
func (h *WorkOrderHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.Principal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// AddPhoto handles POST /api/workorders/:id/photos (multipart form, field
// "photo").
func (h *WorkOrderHandler) AddPhoto(c *gin.Context) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing photo file", "details": err.Error()})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable photo file", "details": err.Error()})
		return
	}
	defer file.Close()

	publicID, err := h.Svc.AddPhoto(c.Request.Context(), middleware.Principal(c), c.Param("id"), file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"publicId": publicID, "url": h.Svc.PhotoURL(publicID)})
}

// RemovePhoto handles DELETE /api/workorders/:id/photos/:publicId.
func (h *WorkOrderHandler) RemovePhoto(c *gin.Context) {
	err := h.Svc.RemovePhoto(c.Request.Context(), middleware.Principal(c), c.Param("id"), c.Param("publicId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

// ListParts handles GET /api/parts. lowStock=true filters to parts at or
// below their reorder point.
func (h *WorkOrderHandler) ListParts(c *gin.Context) {
	parts, err := h.Svc.ListParts(c.Request.Context(), c.Query("lowStock") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, parts)
}

// GetPart handles GET /api/parts/:id.
func (h *WorkOrderHandler) GetPart(c *gin.Context) {
	p, err := h.Svc.GetPart(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreatePart handles POST /api/parts.
func (h *WorkOrderHandler) CreatePart(c *gin.Context) {
	var input models.PartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	p, err := h.Svc.CreatePart(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// UpdatePart handles PUT /api/parts/:id.
func (h *WorkOrderHandler) UpdatePart(c *gin.Context) {
	var input models.PartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	p, err := h.Svc.UpdatePart(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeletePart handles DELETE /api/parts/:id.
func (h *WorkOrderHandler) DeletePart(c *gin.Context) {
	if err := h.Svc.DeletePart(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// AdjustPart handles POST /api/parts/:id/adjust.
func (h *WorkOrderHandler) AdjustPart(c *gin.Context) {
	var input models.PartAdjustInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	p, err := h.Svc.AdjustPart(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
