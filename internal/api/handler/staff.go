package handler

import (
	"net/http"
	"time"

	"civicgrid/backend/internal/lifecycle"
	"civicgrid/backend/internal/models"
	"civicgrid/backend/internal/query"
	"civicgrid/backend/internal/scope"

	"github.com/gin-gonic/gin"
)

// UpdateStatus moves one of the caller's assigned complaints through the
// lifecycle. The transition itself is validated and applied atomically by
// the lifecycle manager.
func (h *Handler) UpdateStatus(c *gin.Context) {
	identity := identityFrom(c)

	var body struct {
		Status         string `json:"status"`
		Comment        string `json:"comment"`
		ResolutionNote string `json:"resolutionNote"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	if body.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "status: is required"})
		return
	}

	p, err := scope.For(identity)
	if err != nil {
		respondError(c, err)
		return
	}

	complaint, err := h.Lifecycle.Transition(c.Param("id"), p, body.Status, lifecycle.TransitionPayload{
		Comment:        body.Comment,
		ResolutionNote: body.ResolutionNote,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Complaint status updated successfully",
		"complaint": complaint,
	})
}

// AdvancedSearch is the staff search over their own queue with date
// bounds. DateTo is extended to the end of that day.
func (h *Handler) AdvancedSearch(c *gin.Context) {
	identity := identityFrom(c)

	var body struct {
		DateFrom string `json:"dateFrom"`
		DateTo   string `json:"dateTo"`
		Status   string `json:"status"`
		Keyword  string `json:"keyword"`
		Page     int    `json:"page"`
		Limit    int    `json:"limit"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	filter := models.ListFilter{
		Status: body.Status,
		Search: body.Keyword,
		Page:   body.Page,
		Limit:  body.Limit,
	}
	if body.DateFrom != "" {
		from, err := time.Parse("2006-01-02", body.DateFrom)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "dateFrom: must be YYYY-MM-DD"})
			return
		}
		filter.DateFrom = &from
	}
	if body.DateTo != "" {
		to, err := time.Parse("2006-01-02", body.DateTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "dateTo: must be YYYY-MM-DD"})
			return
		}
		endOfDay := to.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &endOfDay
	}
	if err := query.Normalize(&filter); err != nil {
		respondError(c, err)
		return
	}

	p, err := scope.For(identity)
	if err != nil {
		respondError(c, err)
		return
	}

	items, total, err := h.Storage.ListComplaints(filter, p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"complaints": items,
		"pagination": query.Paginate(filter, total),
	})
}
