// File: routes/routes.go
package routes

import (
	"net/http"
	"time"

	"wrenchly/config"
	"wrenchly/handlers"
	"wrenchly/middleware"
	"wrenchly/utils"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with all middleware and routes attached.
func NewRouter(hb *handlers.HandlerBundle, authClient *auth.Client, cfg *config.Config) *gin.Engine {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	registerPublicRoutes(r, hb)
	registerAuthedRoutes(r, hb, authClient)
	registerScheduledRoutes(r, hb)
	return r
}

// registerPublicRoutes covers endpoints customers hit before signing in:
// browsing the catalog and checking availability.
func registerPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/services", hb.Catalog.List)
		api.GET("/services/:id", hb.Catalog.Get)
		api.GET("/availability/:day", hb.Availability.Day)
		api.GET("/mechanics", hb.Mechanics.List)
	}
}

func registerAuthedRoutes(r *gin.Engine, hb *handlers.HandlerBundle, authClient *auth.Client) {
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(authClient))
	{
		// Profile self-service.
		api.GET("/me", hb.Customers.Me)
		api.PUT("/me", hb.Customers.UpdateMe)

		// Bookings.
		api.POST("/bookings", hb.Bookings.Create)
		api.GET("/bookings", hb.Bookings.List)
		api.GET("/bookings/:id", hb.Bookings.Get)
		api.POST("/bookings/:id/cancel", hb.Bookings.Cancel)
		api.POST("/bookings/:id/reschedule", hb.Bookings.RequestReschedule)

		// Vehicles.
		api.GET("/vehicles", hb.Vehicles.List)
		api.POST("/vehicles", hb.Vehicles.Create)
		api.GET("/vehicles/:id", hb.Vehicles.Get)
		api.PUT("/vehicles/:id", hb.Vehicles.Update)
		api.DELETE("/vehicles/:id", hb.Vehicles.Delete)
		api.POST("/vehicles/:id/primary", hb.Vehicles.SetPrimary)

		// Work orders (customers see their own; mutations gated below).
		api.GET("/workorders", hb.WorkOrders.List)
		api.GET("/workorders/:id", hb.WorkOrders.Get)
	}

	staff := r.Group("/api")
	staff.Use(middleware.AuthMiddleware(authClient), middleware.RequireStaff())
	{
		staff.POST("/bookings/:id/approve", hb.Bookings.Approve)
		staff.POST("/bookings/:id/deny", hb.Bookings.Deny)

		staff.POST("/customers", hb.Customers.Create)
		staff.GET("/customers/:id", hb.Customers.Get)

		staff.GET("/mechanics/:id", hb.Mechanics.Get)
		staff.PUT("/mechanics/:id/schedule", hb.Mechanics.SetSchedule)

		staff.POST("/workorders", hb.WorkOrders.Create)
		staff.PUT("/workorders/:id", hb.WorkOrders.Update)
		staff.POST("/workorders/:id/complete", hb.WorkOrders.Complete)
		staff.POST("/workorders/:id/photos", hb.WorkOrders.AddPhoto)
		staff.DELETE("/workorders/:id/photos/:publicId", hb.WorkOrders.RemovePhoto)

		staff.GET("/parts", hb.WorkOrders.ListParts)
		staff.GET("/parts/:id", hb.WorkOrders.GetPart)
		staff.POST("/parts", hb.WorkOrders.CreatePart)
		staff.PUT("/parts/:id", hb.WorkOrders.UpdatePart)
		staff.POST("/parts/:id/adjust", hb.WorkOrders.AdjustPart)

		staff.POST("/availability/seed", hb.Availability.Seed)
	}

	admin := r.Group("/api")
	admin.Use(middleware.AuthMiddleware(authClient), middleware.RequireAdmin())
	{
		admin.PATCH("/bookings/:id/status", hb.Bookings.PatchStatus)

		admin.POST("/services", hb.Catalog.Create)
		admin.PUT("/services/:id", hb.Catalog.Update)
		admin.DELETE("/services/:id", hb.Catalog.Deactivate)

		admin.POST("/mechanics", hb.Mechanics.Create)
		admin.PUT("/mechanics/:id", hb.Mechanics.Update)
		admin.PATCH("/mechanics/:id/active", hb.Mechanics.SetActive)

		admin.DELETE("/workorders/:id", hb.WorkOrders.Delete)
		admin.DELETE("/parts/:id", hb.WorkOrders.DeletePart)

		admin.GET("/admin/accounts", hb.Admin.ListAccounts)
		admin.PUT("/admin/accounts/:uid/claims", hb.Admin.SetClaims)
		admin.POST("/admin/accounts/:uid/disable", hb.Admin.DisableAccount)
	}
}

// registerScheduledRoutes admits the in-process cron scheduler with a signed
// trigger token instead of a Firebase identity.
func registerScheduledRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	internal := r.Group("/internal")
	internal.Use(middleware.ScheduledAuthMiddleware())
	{
		internal.POST("/availability/seed", hb.Availability.Seed)
	}
}
