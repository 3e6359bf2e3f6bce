// File: handlers/availability.go
package handlers

import (
	"net/http"
	"time"

	"wrenchly/services/availability"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler exposes the availability read API and the seed
// trigger.
type AvailabilityHandler struct {
	Query  *availability.Query
	Seeder *availability.Seeder
}

// Day handles GET /api/availability/:day, returning the day's slots ordered
// by start time. Unpublished days come back as an empty list.
func (h *AvailabilityHandler) Day(c *gin.Context) {
	day := c.Param("day")
	if _, err := time.Parse("2006-01-02", day); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day, want YYYY-MM-DD"})
		return
	}

	slots, err := h.Query.DaySlots(c.Request.Context(), day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"day": day, "slots": slots})
}

// Seed handles POST /api/availability/seed. The optional weekStart query
// parameter ("YYYY-MM-DD") overrides the default next-Monday target, and
// dryRun=true reports what a run would do without writing.
func (h *AvailabilityHandler) Seed(c *gin.Context) {
	var weekStart *time.Time
	if raw := c.Query("weekStart"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid weekStart, want YYYY-MM-DD"})
			return
		}
		weekStart = &t
	}
	dryRun := c.Query("dryRun") == "true"

	report, err := h.Seeder.SeedWeek(c.Request.Context(), weekStart, dryRun)
	if err != nil {
		// Partial progress is still worth reporting.
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "report": report})
		return
	}
	c.JSON(http.StatusAccepted, report)
}
