package handler

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"civicgrid/backend/internal/apperr"
	"civicgrid/backend/internal/config"
	"civicgrid/backend/internal/imagestore"
	"civicgrid/backend/internal/models"
	"civicgrid/backend/internal/query"
	"civicgrid/backend/internal/scope"

	"github.com/gin-gonic/gin"
)

var pincodeRe = regexp.MustCompile(`^\d{6}$`)

// SubmitComplaint files a new complaint for the calling citizen. Images
// arrive as multipart files and are pushed to the image store first; if the
// record cannot be created afterwards the uploads are deleted again.
func (h *Handler) SubmitComplaint(c *gin.Context) {
	identity := identityFrom(c)

	complaint := models.Complaint{
		Title:       strings.TrimSpace(c.PostForm("title")),
		Description: strings.TrimSpace(c.PostForm("description")),
		Category:    c.PostForm("category"),
		State:       strings.TrimSpace(c.PostForm("state")),
		District:    strings.TrimSpace(c.PostForm("district")),
		Landmark:    strings.TrimSpace(c.PostForm("landmark")),
		Pincode:     strings.TrimSpace(c.PostForm("pincode")),
		CitizenID:   identity.SubjectID,
		Status:      models.StatusPending,
	}

	if err := validateNewComplaint(&complaint); err != nil {
		respondError(c, err)
		return
	}

	var uploaded []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files := form.File["images"]
		if len(files) > config.MaxImagesPerComplaint {
			respondError(c, apperr.Validation("images",
				fmt.Sprintf("maximum %d images allowed", config.MaxImagesPerComplaint)))
			return
		}
		for _, fh := range files {
			if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
				respondError(c, apperr.Validation("images", "only image files are allowed"))
				return
			}
			f, err := fh.Open()
			if err != nil {
				imagestore.Cleanup(h.Images, uploaded)
				respondError(c, apperr.Upstream("image upload", err))
				return
			}
			url, err := h.Images.Save(f, fh.Filename)
			f.Close()
			if err != nil {
				imagestore.Cleanup(h.Images, uploaded)
				respondError(c, err)
				return
			}
			uploaded = append(uploaded, url)
		}
	}
	complaint.Images = uploaded

	if err := h.Storage.CreateComplaint(&complaint); err != nil {
		imagestore.Cleanup(h.Images, uploaded)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Complaint submitted successfully",
		"complaint": complaint,
	})
}

func validateNewComplaint(cm *models.Complaint) error {
	switch {
	case cm.Title == "":
		return apperr.Validation("title", "is required")
	case len(cm.Title) > config.TitleMaxLen:
		return apperr.Validation("title", fmt.Sprintf("cannot exceed %d characters", config.TitleMaxLen))
	case cm.Description == "":
		return apperr.Validation("description", "is required")
	case len(cm.Description) > config.DescriptionMaxLen:
		return apperr.Validation("description", fmt.Sprintf("cannot exceed %d characters", config.DescriptionMaxLen))
	case cm.Category == "":
		return apperr.Validation("category", "is required")
	case !models.IsValidCategory(cm.Category):
		return apperr.Validation("category", "must be one of: "+strings.Join(models.AllCategories, ", "))
	case cm.State == "":
		return apperr.Validation("state", "is required")
	case cm.District == "":
		return apperr.Validation("district", "is required")
	case len(cm.Landmark) > config.LandmarkMaxLen:
		return apperr.Validation("landmark", fmt.Sprintf("cannot exceed %d characters", config.LandmarkMaxLen))
	case cm.Pincode == "":
		return apperr.Validation("pincode", "is required")
	case !pincodeRe.MatchString(cm.Pincode):
		return apperr.Validation("pincode", "must be exactly 6 digits")
	}
	return nil
}

// ListComplaints serves the scoped listing for every role: citizens see
// their own complaints, staff their assigned queue, admins their district.
func (h *Handler) ListComplaints(c *gin.Context) {
	identity := identityFrom(c)

	p, err := scope.For(identity)
	if err != nil {
		respondError(c, err)
		return
	}

	filter := parseListFilter(c)
	if err := query.Normalize(&filter); err != nil {
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

// GetComplaint returns one complaint if it lies inside the caller's scope.
func (h *Handler) GetComplaint(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{"success": true, "complaint": complaint})
}

func parseListFilter(c *gin.Context) models.ListFilter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(config.DefaultPageLimit)))
	return models.ListFilter{
		Status:      c.DefaultQuery("status", models.FilterAll),
		Category:    c.DefaultQuery("category", models.FilterAll),
		Search:      c.Query("search"),
		Page:        page,
		Limit:       limit,
		OldestFirst: c.Query("sortBy") == "oldest",
	}
}
