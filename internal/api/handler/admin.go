package handler

import (
	"net/http"

	"civicgrid/backend/internal/config"
	"civicgrid/backend/internal/models"
	"civicgrid/backend/internal/scope"

	"github.com/gin-gonic/gin"
)

// AvailableStaff lists the eligible staff for one of the admin's pending
// complaints, each with its current workload.
func (h *Handler) AvailableStaff(c *gin.Context) {
	identity := identityFrom(c)

	p, err := scope.For(identity)
	if err != nil {
		respondError(c, err)
		return
	}

	complaint, err := h.Storage.FindComplaint(c.Param("id"), p)
	if err != nil {
		respondError(c, err)
		return
	}

	staff, err := h.Allocator.EligibleStaff(complaint)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"staff":   staff,
		"complaint": gin.H{
			"state":    complaint.State,
			"district": complaint.District,
			"category": complaint.Category,
		},
	})
}

// AssignComplaint performs a manual assignment by the admin.
func (h *Handler) AssignComplaint(c *gin.Context) {
	identity := identityFrom(c)

	var body struct {
		StaffID string `json:"staffId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	complaint, err := h.Allocator.Assign(c.Param("id"), body.StaffID, identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Complaint assigned successfully",
		"complaint": complaint,
	})
}

// AutoAllocate runs the batch allocation over the oldest pending
// complaints of the admin's district. One invocation processes up to a
// page of them; re-invoke to drain a larger backlog. Per-complaint
// failures are reported, not retried.
func (h *Handler) AutoAllocate(c *gin.Context) {
	identity := identityFrom(c)

	p, err := scope.For(identity)
	if err != nil {
		respondError(c, err)
		return
	}

	filter := models.ListFilter{
		Status:      models.StatusPending,
		Category:    models.FilterAll,
		Page:        1,
		Limit:       config.MaxPageLimit,
		OldestFirst: true,
	}
	pending, _, err := h.Storage.ListComplaints(filter, p)
	if err != nil {
		respondError(c, err)
		return
	}

	result := h.Allocator.AutoAllocateAll(pending, identity)
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

// DepartmentWorkload reports the admin district's per-department load.
func (h *Handler) DepartmentWorkload(c *gin.Context) {
	identity := identityFrom(c)

	workload, err := h.Analytics.DepartmentWorkload(identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "workload": workload})
}
