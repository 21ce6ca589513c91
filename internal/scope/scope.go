// Package scope derives the visibility predicate every read and write is
// filtered through. A request for a record outside the predicate comes back
// as not-found, never as forbidden.
package scope

import (
	"civicgrid/backend/internal/apperr"
	"civicgrid/backend/internal/models"

	"gorm.io/gorm"
)

// Predicate restricts complaint queries to what one identity may touch.
// Only the fields relevant to the role are set.
type Predicate struct {
	// CitizenID limits to complaints owned by this citizen.
	CitizenID string
	// State and District limit to a district-admin's territory.
	State    string
	District string
	// AssignedTo limits to complaints assigned to this staff member.
	AssignedTo string
}

// For builds the predicate for an identity.
//   - citizen: own complaints only
//   - admin:   the admin's state + district
//   - staff:   complaints assigned to them
func For(id models.Identity) (Predicate, error) {
	switch id.Role {
	case models.RoleCitizen:
		return Predicate{CitizenID: id.SubjectID}, nil
	case models.RoleAdmin:
		if id.State == "" || id.District == "" {
			return Predicate{}, apperr.Validation("identity", "admin identity is missing state or district")
		}
		return Predicate{State: id.State, District: id.District}, nil
	case models.RoleStaff:
		return Predicate{AssignedTo: id.SubjectID}, nil
	default:
		return Predicate{}, apperr.Validation("role", "unknown role: "+id.Role)
	}
}

// Apply attaches the predicate to a complaint query.
func (p Predicate) Apply(db *gorm.DB) *gorm.DB {
	if p.CitizenID != "" {
		db = db.Where("citizen_id = ?", p.CitizenID)
	}
	if p.State != "" {
		db = db.Where("state = ?", p.State)
	}
	if p.District != "" {
		db = db.Where("district = ?", p.District)
	}
	if p.AssignedTo != "" {
		db = db.Where("assigned_to = ?", p.AssignedTo)
	}
	return db
}

// Allows reports whether a complaint falls inside the predicate. Used for
// in-memory checks on records fetched through other paths.
func (p Predicate) Allows(c *models.Complaint) bool {
	if p.CitizenID != "" && c.CitizenID != p.CitizenID {
		return false
	}
	if p.State != "" && c.State != p.State {
		return false
	}
	if p.District != "" && c.District != p.District {
		return false
	}
	if p.AssignedTo != "" && (c.AssignedTo == nil || *c.AssignedTo != p.AssignedTo) {
		return false
	}
	return true
}
