package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Complaint statuses. The lifecycle only moves forward:
// pending -> assigned -> in-progress -> resolved/rejected,
// plus the direct assigned -> rejected edge.
const (
	StatusPending    = "pending"
	StatusAssigned   = "assigned"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"
	StatusRejected   = "rejected"
)

// Complaint categories double as staff departments.
const (
	CategoryRoads      = "roads"
	CategoryPower      = "power"
	CategorySanitation = "sanitation"
	CategoryWater      = "water"
	CategoryOther      = "other"
)

var AllStatuses = []string{StatusPending, StatusAssigned, StatusInProgress, StatusResolved, StatusRejected}

var AllCategories = []string{CategoryRoads, CategoryPower, CategorySanitation, CategoryWater, CategoryOther}

func IsValidStatus(s string) bool {
	for _, v := range AllStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func IsValidCategory(c string) bool {
	for _, v := range AllCategories {
		if v == c {
			return true
		}
	}
	return false
}

// Complaint is a citizen-filed, location-tagged issue report.
// AssignedTo/AssignedBy/AssignedAt are set together, exactly once, by the
// pending -> assigned transition and never change afterwards.
type Complaint struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `gorm:"index" json:"category"`
	State       string         `gorm:"index:idx_complaints_scope" json:"state"`
	District    string         `gorm:"index:idx_complaints_scope" json:"district"`
	Landmark    string         `json:"landmark"`
	Pincode     string         `json:"pincode"`
	Images      pq.StringArray `gorm:"type:text[]" json:"images"`
	Status      string         `gorm:"index:idx_complaints_scope;index" json:"status"`

	CitizenID  string     `gorm:"index" json:"citizenId"`
	AssignedTo *string    `gorm:"index" json:"assignedTo"`
	AssignedBy *string    `json:"assignedBy"`
	AssignedAt *time.Time `json:"assignedAt"`
	StartedAt  *time.Time `json:"startedAt"`
	ResolvedAt *time.Time `json:"resolvedAt"`

	ResolutionNote string `json:"resolutionNote,omitempty"`
	Comment        string `json:"comment,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate generates the complaint ID if it has not been set yet.
func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = StatusPending
	}
	return
}

// IsTerminal reports whether the complaint can no longer change.
func (c *Complaint) IsTerminal() bool {
	return c.Status == StatusResolved || c.Status == StatusRejected
}
