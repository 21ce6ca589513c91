package models

// StatusCount is one slice of the status distribution.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// CategoryCount is one bar of the category breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// AnalyticsSummary holds the headline totals shown on dashboards.
type AnalyticsSummary struct {
	Total      int64 `json:"total"`
	Resolved   int64 `json:"resolved"`
	InProgress int64 `json:"inProgress"`
	Pending    int64 `json:"pending"`
}

// Analytics is the scoped distribution report. Both distributions are
// zero-filled: every known status and category appears even when absent
// from the underlying set.
type Analytics struct {
	StatusDistribution []StatusCount    `json:"statusDistribution"`
	CategoryBreakdown  []CategoryCount  `json:"categoryBreakdown"`
	Summary            AnalyticsSummary `json:"summary"`
}

// StaffDashboard summarises one staff member's personal queue.
type StaffDashboard struct {
	Total      int64 `json:"totalComplaints"`
	Assigned   int64 `json:"assigned"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
	Rejected   int64 `json:"rejected"`
	Active     int64 `json:"active"`
}

// AdminDashboard summarises a district: complaint counts by status plus
// the number of verified staff placed there.
type AdminDashboard struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Assigned   int64 `json:"assigned"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
	Rejected   int64 `json:"rejected"`
	StaffCount int64 `json:"staffCount"`
}

// DepartmentLoad is one row of the district department-workload report.
type DepartmentLoad struct {
	Department     string  `json:"department"`
	Total          int64   `json:"total"`
	Pending        int64   `json:"pending"`
	Assigned       int64   `json:"assigned"`
	InProgress     int64   `json:"inProgress"`
	Resolved       int64   `json:"resolved"`
	Rejected       int64   `json:"rejected"`
	StaffCount     int64   `json:"staffCount"`
	ResolutionRate float64 `json:"resolutionRate"`
}
