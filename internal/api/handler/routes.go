package handler

import (
	"civicgrid/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes attaches the API surface. Everything sits behind the
// identity middleware; role guards narrow the admin/staff/citizen routes.
func RegisterRoutes(r *gin.Engine, h *Handler, jwtSecret []byte) {
	api := r.Group("/api", IdentityMiddleware(jwtSecret))

	api.POST("/complaints", RequireRole(models.RoleCitizen), h.SubmitComplaint)
	api.GET("/complaints", h.ListComplaints)
	api.GET("/complaints/:id", h.GetComplaint)

	// Role-named aliases. The scope predicate already narrows the result
	// set per caller, so these share the generic handlers.
	api.GET("/complaints/mine", RequireRole(models.RoleCitizen), h.ListComplaints)
	api.GET("/staff/complaints", RequireRole(models.RoleStaff), h.ListComplaints)
	api.GET("/staff/complaints/:id", RequireRole(models.RoleStaff), h.GetComplaint)

	api.GET("/complaints/:id/available-staff", RequireRole(models.RoleAdmin), h.AvailableStaff)
	api.POST("/complaints/:id/assign", RequireRole(models.RoleAdmin), h.AssignComplaint)
	api.POST("/complaints/auto-allocate", RequireRole(models.RoleAdmin), h.AutoAllocate)
	api.GET("/department-workload", RequireRole(models.RoleAdmin), h.DepartmentWorkload)

	api.PATCH("/complaints/:id/status", RequireRole(models.RoleStaff), h.UpdateStatus)
	api.POST("/staff/complaints/search", RequireRole(models.RoleStaff), h.AdvancedSearch)

	api.GET("/dashboard", h.Dashboard)
}
