// Package query turns the public filter surface (status, category, free
// text, paging) into store clauses. Free text is always matched as a
// literal substring; pattern metacharacters in user input never reach the
// database unescaped.
package query

import (
	"strings"

	"civicgrid/backend/internal/apperr"
	"civicgrid/backend/internal/config"
	"civicgrid/backend/internal/models"

	"gorm.io/gorm"
)

// Normalize validates the enum filters and clamps pagination in place.
// Status/category accept "all" (and empty, treated the same) besides the
// known values. Page is clamped to >= 1, limit to [1, MaxPageLimit].
func Normalize(f *models.ListFilter) error {
	if f.Status == "" {
		f.Status = models.FilterAll
	}
	if f.Category == "" {
		f.Category = models.FilterAll
	}
	if f.Status != models.FilterAll && !models.IsValidStatus(f.Status) {
		return apperr.Validation("status", "must be one of: all, "+strings.Join(models.AllStatuses, ", "))
	}
	if f.Category != models.FilterAll && !models.IsValidCategory(f.Category) {
		return apperr.Validation("category", "must be one of: all, "+strings.Join(models.AllCategories, ", "))
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = config.DefaultPageLimit
	}
	if f.Limit > config.MaxPageLimit {
		f.Limit = config.MaxPageLimit
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike neutralizes LIKE wildcards so the trimmed term matches only
// as a literal substring.
func EscapeLike(term string) string {
	return likeEscaper.Replace(strings.TrimSpace(term))
}

// Apply attaches the filter's clauses to a complaint query. Normalize must
// have been called first. The search term is matched case-insensitively
// across title, description, landmark, district and state.
func Apply(db *gorm.DB, f models.ListFilter) *gorm.DB {
	if f.Status != models.FilterAll {
		db = db.Where("status = ?", f.Status)
	}
	if f.Category != models.FilterAll {
		db = db.Where("category = ?", f.Category)
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		pattern := "%" + EscapeLike(term) + "%"
		db = db.Where(
			"title ILIKE ? OR description ILIKE ? OR landmark ILIKE ? OR district ILIKE ? OR state ILIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}
	if f.DateFrom != nil {
		db = db.Where("created_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		db = db.Where("created_at <= ?", *f.DateTo)
	}
	return db
}

// Order returns the sort clause for the filter.
func Order(f models.ListFilter) string {
	if f.OldestFirst {
		return "created_at asc"
	}
	return "created_at desc"
}

// Paginate computes the page envelope for a total row count.
func Paginate(f models.ListFilter, total int64) models.Pagination {
	pages := int((total + int64(f.Limit) - 1) / int64(f.Limit))
	return models.Pagination{
		CurrentPage: f.Page,
		TotalPages:  pages,
		TotalCount:  total,
	}
}
