// Package allocation computes eligible staff for complaints and performs
// manual and batch assignment. Eligibility means verified staff whose
// state, district and department all match the complaint; batch allocation
// balances on active workload with a small random spread among near-equals.
package allocation

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"civicgrid/backend/internal/apperr"
	"civicgrid/backend/internal/config"
	"civicgrid/backend/internal/models"
	"civicgrid/backend/internal/scope"
	"civicgrid/backend/internal/storage"
)

// Engine performs assignment decisions over the complaint store and the
// staff directory.
type Engine struct {
	Store     storage.ComplaintStore
	Directory storage.DirectoryLookup

	rng *rand.Rand
}

func NewEngine(store storage.ComplaintStore, dir storage.DirectoryLookup) *Engine {
	return &Engine{
		Store:     store,
		Directory: dir,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Seed re-seeds the tie-break randomness. Tests pin it for determinism.
func (e *Engine) Seed(seed int64) {
	e.rng = rand.New(rand.NewSource(seed))
}

// EligibleStaff returns the verified staff matching the complaint's state,
// district and department, each with current workload attached. Workload is
// derived fresh on every call.
func (e *Engine) EligibleStaff(c *models.Complaint) ([]models.StaffWithWorkload, error) {
	staff, err := e.Directory.FindVerifiedStaff(c.State, c.District, c.Category)
	if err != nil {
		return nil, err
	}
	if len(staff) == 0 {
		return nil, nil
	}

	ids := make([]string, len(staff))
	for i, s := range staff {
		ids[i] = s.ID
	}
	workloads, err := e.Directory.WorkloadFor(ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.StaffWithWorkload, len(staff))
	for i, s := range staff {
		out[i] = models.StaffWithWorkload{User: s, Workload: workloads[s.ID]}
	}
	return out, nil
}

// Assign performs a manual pending -> assigned transition by an admin.
// The complaint must be visible to the admin and still pending; the staff
// member must be verified and placed exactly where the complaint is. The
// write itself is conditional on the pending status, so two admins racing
// on the same complaint cannot both succeed.
func (e *Engine) Assign(complaintID, staffID string, admin models.Identity) (*models.Complaint, error) {
	if staffID == "" {
		return nil, apperr.Validation("staffId", "is required")
	}

	p, err := scope.For(admin)
	if err != nil {
		return nil, err
	}

	c, err := e.Store.FindComplaint(complaintID, p)
	if err != nil {
		return nil, err
	}
	if c.Status != models.StatusPending {
		return nil, apperr.Conflict("cannot assign: complaint is already "+c.Status, c.Status)
	}

	staff, err := e.Directory.GetUserByID(staffID)
	if err != nil {
		return nil, err
	}
	if staff.Role != models.RoleStaff || !staff.Verified {
		return nil, apperr.NotFound("staff")
	}
	if staff.State != c.State || staff.District != c.District || staff.Department != c.Category {
		return nil, apperr.Validation("staffId", "staff location or department does not match complaint")
	}

	ok, err := e.Store.UpdateComplaintIf(complaintID, models.StatusPending, map[string]interface{}{
		"status":      models.StatusAssigned,
		"assigned_to": staffID,
		"assigned_by": admin.SubjectID,
		"assigned_at": time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Conflict("complaint was assigned concurrently", models.StatusAssigned)
	}

	return e.Store.FindComplaint(complaintID, p)
}

// Failure records why one complaint in a batch could not be allocated.
type Failure struct {
	ComplaintID string `json:"complaintId"`
	Reason      string `json:"reason"`
}

// BatchResult summarises one auto-allocation run.
type BatchResult struct {
	AllocatedCount int       `json:"allocatedCount"`
	FailedCount    int       `json:"failedCount"`
	Failures       []Failure `json:"failures"`
}

// AutoAllocateAll assigns each pending complaint to one of its least-busy
// eligible staff, in the order supplied (callers pass oldest first). The
// loop is deliberately sequential: workload is re-derived per complaint so
// earlier picks are visible to later ones. One complaint failing never
// aborts the batch, and nothing is retried.
func (e *Engine) AutoAllocateAll(pending []models.Complaint, admin models.Identity) BatchResult {
	result := BatchResult{Failures: []Failure{}}

	for i := range pending {
		c := &pending[i]

		candidates, err := e.EligibleStaff(c)
		if err != nil {
			result.FailedCount++
			result.Failures = append(result.Failures, Failure{ComplaintID: c.ID, Reason: err.Error()})
			continue
		}
		if len(candidates) == 0 {
			result.FailedCount++
			result.Failures = append(result.Failures, Failure{
				ComplaintID: c.ID,
				Reason:      fmt.Sprintf("no eligible staff for %s in %s", c.Category, c.District),
			})
			continue
		}

		pick := e.pickLeastBusy(candidates)
		if _, err := e.Assign(c.ID, pick.ID, admin); err != nil {
			result.FailedCount++
			result.Failures = append(result.Failures, Failure{ComplaintID: c.ID, Reason: err.Error()})
			continue
		}
		result.AllocatedCount++
	}
	return result
}

// pickLeastBusy sorts candidates by ascending active workload and picks
// uniformly at random among the least-busy candidate and any tied
// runners-up, capped at AllocationPoolSize. The random spread keeps ties
// from always landing on the same id.
func (e *Engine) pickLeastBusy(candidates []models.StaffWithWorkload) models.StaffWithWorkload {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Workload.Active < candidates[j].Workload.Active
	})

	pool := 1
	for pool < len(candidates) && pool < config.AllocationPoolSize &&
		candidates[pool].Workload.Active == candidates[0].Workload.Active {
		pool++
	}
	return candidates[e.rng.Intn(pool)]
}
