package handler

import (
	"net/http"

	"civicgrid/backend/internal/models"
	"civicgrid/backend/internal/scope"

	"github.com/gin-gonic/gin"
)

// Dashboard serves the role-shaped summary: each role gets its own variant
// rendered by its own function rather than one response with conditionally
// injected fields.
func (h *Handler) Dashboard(c *gin.Context) {
	identity := identityFrom(c)

	switch identity.Role {
	case models.RoleCitizen:
		h.renderCitizenDashboard(c, identity)
	case models.RoleStaff:
		h.renderStaffDashboard(c, identity)
	case models.RoleAdmin:
		h.renderAdminDashboard(c, identity)
	default:
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Access denied"})
	}
}

func (h *Handler) renderCitizenDashboard(c *gin.Context, identity models.Identity) {
	p, err := scope.For(identity)
	if err != nil {
		respondError(c, err)
		return
	}
	analytics, err := h.Analytics.Distribution(p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "analytics": analytics})
}

func (h *Handler) renderStaffDashboard(c *gin.Context, identity models.Identity) {
	dashboard, err := h.Analytics.StaffDashboard(identity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "dashboard": dashboard})
}

func (h *Handler) renderAdminDashboard(c *gin.Context, identity models.Identity) {
	dashboard, err := h.Analytics.AdminDashboard(identity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "dashboard": dashboard})
}
