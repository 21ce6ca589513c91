// Package analytics produces the scoped distribution reports behind the
// dashboards. Aggregates that fan out into several counting queries are
// cached briefly in Redis; a little skew between concurrent counts is an
// accepted tolerance here.
package analytics

import (
	"fmt"

	"civicgrid/backend/internal/config"
	"civicgrid/backend/internal/models"
	"civicgrid/backend/internal/scope"
	"civicgrid/backend/internal/storage"
)

type Aggregator struct {
	Counters storage.CounterStore
	Cache    storage.Cache
}

func NewAggregator(counters storage.CounterStore, cache storage.Cache) *Aggregator {
	return &Aggregator{Counters: counters, Cache: cache}
}

// Distribution computes the zero-filled status and category distributions
// plus summary totals over the caller's scoped set.
func (a *Aggregator) Distribution(p scope.Predicate) (*models.Analytics, error) {
	byStatus, err := a.Counters.CountComplaintsByStatus(p)
	if err != nil {
		return nil, err
	}
	byCategory, err := a.Counters.CountComplaintsByCategory(p)
	if err != nil {
		return nil, err
	}

	out := &models.Analytics{}
	var total int64
	for _, s := range models.AllStatuses {
		n := byStatus[s]
		total += n
		out.StatusDistribution = append(out.StatusDistribution, models.StatusCount{Status: s, Count: n})
	}
	for _, c := range models.AllCategories {
		out.CategoryBreakdown = append(out.CategoryBreakdown, models.CategoryCount{Category: c, Count: byCategory[c]})
	}
	out.Summary = models.AnalyticsSummary{
		Total:      total,
		Resolved:   byStatus[models.StatusResolved],
		InProgress: byStatus[models.StatusInProgress],
		Pending:    byStatus[models.StatusPending],
	}
	return out, nil
}

// StaffDashboard summarises the personal queue of one staff member.
func (a *Aggregator) StaffDashboard(staff models.Identity) (*models.StaffDashboard, error) {
	byStatus, err := a.Counters.CountComplaintsByStatus(scope.Predicate{AssignedTo: staff.SubjectID})
	if err != nil {
		return nil, err
	}
	d := &models.StaffDashboard{
		Assigned:   byStatus[models.StatusAssigned],
		InProgress: byStatus[models.StatusInProgress],
		Resolved:   byStatus[models.StatusResolved],
		Rejected:   byStatus[models.StatusRejected],
	}
	d.Total = d.Assigned + d.InProgress + d.Resolved + d.Rejected
	d.Active = d.Assigned + d.InProgress
	return d, nil
}

// AdminDashboard summarises the admin's district. Served from cache when a
// recent copy exists.
func (a *Aggregator) AdminDashboard(admin models.Identity) (*models.AdminDashboard, error) {
	key := fmt.Sprintf("analytics:dashboard:%s:%s", admin.State, admin.District)
	var cached models.AdminDashboard
	if hit, err := a.Cache.CacheGet(key, &cached); err == nil && hit {
		return &cached, nil
	}

	p := scope.Predicate{State: admin.State, District: admin.District}
	byStatus, err := a.Counters.CountComplaintsByStatus(p)
	if err != nil {
		return nil, err
	}
	staffCount, err := a.Counters.CountVerifiedStaff(admin.State, admin.District)
	if err != nil {
		return nil, err
	}

	d := &models.AdminDashboard{
		Pending:    byStatus[models.StatusPending],
		Assigned:   byStatus[models.StatusAssigned],
		InProgress: byStatus[models.StatusInProgress],
		Resolved:   byStatus[models.StatusResolved],
		Rejected:   byStatus[models.StatusRejected],
		StaffCount: staffCount,
	}
	d.Total = d.Pending + d.Assigned + d.InProgress + d.Resolved + d.Rejected

	_ = a.Cache.CacheSet(key, d, config.AnalyticsCacheTTL)
	return d, nil
}

// DepartmentWorkload reports per-department complaint counts, staffing and
// resolution rate for the admin's district. Every department appears, zero
// filled when idle. Served from cache when a recent copy exists.
func (a *Aggregator) DepartmentWorkload(admin models.Identity) ([]models.DepartmentLoad, error) {
	key := fmt.Sprintf("analytics:workload:%s:%s", admin.State, admin.District)
	var cached []models.DepartmentLoad
	if hit, err := a.Cache.CacheGet(key, &cached); err == nil && hit {
		return cached, nil
	}

	p := scope.Predicate{State: admin.State, District: admin.District}
	counts, err := a.Counters.CountByCategoryAndStatus(p)
	if err != nil {
		return nil, err
	}
	staffByDept, err := a.Counters.CountStaffByDepartment(admin.State, admin.District)
	if err != nil {
		return nil, err
	}

	out := make([]models.DepartmentLoad, 0, len(models.AllCategories))
	for _, dept := range models.AllCategories {
		byStatus := counts[dept]
		row := models.DepartmentLoad{
			Department: dept,
			Pending:    byStatus[models.StatusPending],
			Assigned:   byStatus[models.StatusAssigned],
			InProgress: byStatus[models.StatusInProgress],
			Resolved:   byStatus[models.StatusResolved],
			Rejected:   byStatus[models.StatusRejected],
			StaffCount: staffByDept[dept],
		}
		row.Total = row.Pending + row.Assigned + row.InProgress + row.Resolved + row.Rejected
		if row.Total > 0 {
			row.ResolutionRate = float64(row.Resolved) / float64(row.Total) * 100
		}
		out = append(out, row)
	}

	_ = a.Cache.CacheSet(key, out, config.AnalyticsCacheTTL)
	return out, nil
}
