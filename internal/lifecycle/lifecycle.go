// Package lifecycle validates and applies complaint status transitions.
// Each transition is written as one conditional update keyed on the status
// the caller observed, so two concurrent callers can never both succeed
// from the same starting point.
package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"civicgrid/backend/internal/apperr"
	"civicgrid/backend/internal/config"
	"civicgrid/backend/internal/models"
	"civicgrid/backend/internal/scope"
	"civicgrid/backend/internal/storage"
)

// edges holds the reachable target statuses per current status. Terminal
// statuses have no entry.
var edges = map[string][]string{
	models.StatusPending:    {models.StatusAssigned},
	models.StatusAssigned:   {models.StatusInProgress, models.StatusRejected},
	models.StatusInProgress: {models.StatusResolved, models.StatusRejected},
}

// CanTransition reports whether target is directly reachable from current.
func CanTransition(current, target string) bool {
	for _, t := range edges[current] {
		if t == target {
			return true
		}
	}
	return false
}

// TransitionPayload carries the optional fields a staff member may attach.
type TransitionPayload struct {
	Comment        string
	ResolutionNote string
}

// Manager drives the complaint state machine.
type Manager struct {
	Store storage.ComplaintStore
}

func NewManager(store storage.ComplaintStore) *Manager {
	return &Manager{Store: store}
}

// Transition moves a complaint to target on behalf of the caller. The
// complaint is loaded through the caller's scope, the payload validated,
// and the write applied conditionally on the observed status. No field is
// mutated when any check fails.
func (m *Manager) Transition(id string, p scope.Predicate, target string, payload TransitionPayload) (*models.Complaint, error) {
	if !models.IsValidStatus(target) {
		return nil, apperr.Validation("status", "must be one of: "+strings.Join(models.AllStatuses, ", "))
	}

	c, err := m.Store.FindComplaint(id, p)
	if err != nil {
		return nil, err
	}

	if c.IsTerminal() {
		return nil, apperr.Conflict("cannot modify a resolved or rejected complaint", c.Status)
	}
	if !CanTransition(c.Status, target) {
		return nil, apperr.Conflict(fmt.Sprintf("cannot move complaint from %s to %s", c.Status, target), c.Status)
	}

	fields, err := buildFields(c, target, payload)
	if err != nil {
		return nil, err
	}

	ok, err := m.Store.UpdateComplaintIf(id, c.Status, fields)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Someone else won the race since we loaded the record.
		return nil, apperr.Conflict("complaint status changed concurrently", c.Status)
	}

	return m.Store.FindComplaint(id, p)
}

func buildFields(c *models.Complaint, target string, payload TransitionPayload) (map[string]interface{}, error) {
	fields := map[string]interface{}{"status": target}

	if comment := strings.TrimSpace(payload.Comment); comment != "" {
		if len(comment) > config.CommentMaxLen {
			return nil, apperr.Validation("comment",
				fmt.Sprintf("cannot exceed %d characters", config.CommentMaxLen))
		}
		fields["comment"] = comment
	}

	now := time.Now()
	switch target {
	case models.StatusInProgress:
		if c.StartedAt == nil {
			fields["started_at"] = now
		}
	case models.StatusResolved:
		note := strings.TrimSpace(payload.ResolutionNote)
		if len(note) < config.ResolutionNoteMinLen {
			return nil, apperr.Validation("resolutionNote",
				fmt.Sprintf("must be at least %d characters when resolving", config.ResolutionNoteMinLen))
		}
		if len(note) > config.ResolutionNoteMaxLen {
			return nil, apperr.Validation("resolutionNote",
				fmt.Sprintf("cannot exceed %d characters", config.ResolutionNoteMaxLen))
		}
		fields["resolution_note"] = note
		fields["resolved_at"] = now
	}
	return fields, nil
}
