package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleCitizen = "citizen"
	RoleStaff   = "staff"
	RoleAdmin   = "admin"
)

// User is an account in the civic portal. State/district are meaningful for
// staff and admins; department only for staff, where it must be one of the
// complaint categories. Credential fields (password, OTPs, refresh tokens)
// live with the authentication collaborator, not here.
type User struct {
	ID         string `gorm:"primaryKey" json:"id"`
	Name       string `json:"name"`
	Email      string `gorm:"uniqueIndex" json:"email"`
	Role       string `gorm:"index" json:"role"`
	State      string `gorm:"index:idx_users_placement" json:"state,omitempty"`
	District   string `gorm:"index:idx_users_placement" json:"district,omitempty"`
	Department string `gorm:"index:idx_users_placement" json:"department,omitempty"`
	Verified   bool   `json:"verified"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// Workload counts a staff member's complaints by status.
// Active is what allocation balances on.
type Workload struct {
	Assigned   int `json:"assigned"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
	Rejected   int `json:"rejected"`
	Active     int `json:"active"`
}

// StaffWithWorkload is an eligible staff candidate with its current load.
type StaffWithWorkload struct {
	User
	Workload Workload `json:"workload"`
}
