package lifecycle_test

import (
	"strings"
	"testing"
	"time"

	"civicgrid/backend/internal/apperr"
	"civicgrid/backend/internal/lifecycle"
	"civicgrid/backend/internal/models"
	"civicgrid/backend/internal/scope"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func staffScope(id string) scope.Predicate {
	return scope.Predicate{AssignedTo: id}
}

func assignedComplaint(staffID string) *models.Complaint {
	now := time.Now()
	adminID := "adm-1"
	return &models.Complaint{
		ID:         "cmp-1",
		Title:      "Water leak on 4th street",
		Category:   models.CategoryWater,
		State:      "X",
		District:   "Y",
		Status:     models.StatusAssigned,
		CitizenID:  "cit-1",
		AssignedTo: &staffID,
		AssignedBy: &adminID,
		AssignedAt: &now,
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{models.StatusPending, models.StatusAssigned, true},
		{models.StatusAssigned, models.StatusInProgress, true},
		{models.StatusAssigned, models.StatusRejected, true},
		{models.StatusInProgress, models.StatusResolved, true},
		{models.StatusInProgress, models.StatusRejected, true},

		{models.StatusPending, models.StatusInProgress, false},
		{models.StatusPending, models.StatusResolved, false},
		{models.StatusPending, models.StatusRejected, false},
		{models.StatusAssigned, models.StatusResolved, false},
		{models.StatusAssigned, models.StatusPending, false},
		{models.StatusInProgress, models.StatusAssigned, false},
		{models.StatusResolved, models.StatusRejected, false},
		{models.StatusResolved, models.StatusInProgress, false},
		{models.StatusRejected, models.StatusResolved, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, lifecycle.CanTransition(tt.from, tt.to))
		})
	}
}

func TestTransition_ToInProgress_SetsStartedAt(t *testing.T) {
	// Arrange
	store := new(MockComplaintStore)
	m := lifecycle.NewManager(store)
	c := assignedComplaint("stf-1")

	store.On("FindComplaint", "cmp-1", staffScope("stf-1")).Return(c, nil)
	store.On("UpdateComplaintIf", "cmp-1", models.StatusAssigned, mock.MatchedBy(func(fields map[string]interface{}) bool {
		_, hasStart := fields["started_at"]
		return fields["status"] == models.StatusInProgress && hasStart
	})).Return(true, nil)

	// Act
	_, err := m.Transition("cmp-1", staffScope("stf-1"), models.StatusInProgress, lifecycle.TransitionPayload{})

	// Assert
	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestTransition_ToInProgress_KeepsExistingStartedAt(t *testing.T) {
	store := new(MockComplaintStore)
	m := lifecycle.NewManager(store)
	c := assignedComplaint("stf-1")
	started := time.Now().Add(-time.Hour)
	c.StartedAt = &started

	store.On("FindComplaint", "cmp-1", staffScope("stf-1")).Return(c, nil)
	store.On("UpdateComplaintIf", "cmp-1", models.StatusAssigned, mock.MatchedBy(func(fields map[string]interface{}) bool {
		_, hasStart := fields["started_at"]
		return !hasStart
	})).Return(true, nil)

	_, err := m.Transition("cmp-1", staffScope("stf-1"), models.StatusInProgress, lifecycle.TransitionPayload{})

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestTransition_Resolve_RequiresNote(t *testing.T) {
	tests := []struct {
		name    string
		note    string
		wantErr bool
	}{
		{"missing note", "", true},
		{"too short after trim", "   short   ", true},
		{"nine characters", "123456789", true},
		{"ten characters", "1234567890", false},
		{"normal note", "Fixed the leak today", false},
		{"over a thousand characters", strings.Repeat("x", 1001), true},
		{"exactly a thousand", strings.Repeat("x", 1000), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockComplaintStore)
			m := lifecycle.NewManager(store)
			c := assignedComplaint("stf-1")
			c.Status = models.StatusInProgress

			store.On("FindComplaint", "cmp-1", staffScope("stf-1")).Return(c, nil)
			if !tt.wantErr {
				store.On("UpdateComplaintIf", "cmp-1", models.StatusInProgress, mock.MatchedBy(func(fields map[string]interface{}) bool {
					_, hasResolvedAt := fields["resolved_at"]
					_, hasNote := fields["resolution_note"]
					return hasResolvedAt && hasNote
				})).Return(true, nil)
			}

			_, err := m.Transition("cmp-1", staffScope("stf-1"), models.StatusResolved,
				lifecycle.TransitionPayload{ResolutionNote: tt.note})

			if tt.wantErr {
				var validation *apperr.ValidationError
				assert.ErrorAs(t, err, &validation)
				store.AssertNotCalled(t, "UpdateComplaintIf", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				store.AssertExpectations(t)
			}
		})
	}
}

func TestTransition_TerminalComplaint_Conflicts(t *testing.T) {
	for _, status := range []string{models.StatusResolved, models.StatusRejected} {
		t.Run(status, func(t *testing.T) {
			store := new(MockComplaintStore)
			m := lifecycle.NewManager(store)
			c := assignedComplaint("stf-1")
			c.Status = status

			store.On("FindComplaint", "cmp-1", staffScope("stf-1")).Return(c, nil)

			_, err := m.Transition("cmp-1", staffScope("stf-1"), models.StatusInProgress, lifecycle.TransitionPayload{})

			var conflict *apperr.ConflictError
			assert.ErrorAs(t, err, &conflict)
			assert.Equal(t, status, conflict.CurrentStatus)
			store.AssertNotCalled(t, "UpdateComplaintIf", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTransition_UnreachableTarget_Conflicts(t *testing.T) {
	store := new(MockComplaintStore)
	m := lifecycle.NewManager(store)
	c := assignedComplaint("stf-1")

	store.On("FindComplaint", "cmp-1", staffScope("stf-1")).Return(c, nil)

	// assigned -> resolved skips in-progress and must be refused.
	_, err := m.Transition("cmp-1", staffScope("stf-1"), models.StatusResolved,
		lifecycle.TransitionPayload{ResolutionNote: "Fixed the leak today"})

	var conflict *apperr.ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, models.StatusAssigned, conflict.CurrentStatus)
}

func TestTransition_InvalidTargetStatus(t *testing.T) {
	store := new(MockComplaintStore)
	m := lifecycle.NewManager(store)

	_, err := m.Transition("cmp-1", staffScope("stf-1"), "closed", lifecycle.TransitionPayload{})

	var validation *apperr.ValidationError
	assert.ErrorAs(t, err, &validation)
	store.AssertNotCalled(t, "FindComplaint", mock.Anything, mock.Anything)
}

func TestTransition_ConcurrentWriterLoses(t *testing.T) {
	store := new(MockComplaintStore)
	m := lifecycle.NewManager(store)
	c := assignedComplaint("stf-1")

	store.On("FindComplaint", "cmp-1", staffScope("stf-1")).Return(c, nil)
	// The conditional write affects zero rows: someone else moved the
	// complaint between our read and our write.
	store.On("UpdateComplaintIf", "cmp-1", models.StatusAssigned, mock.Anything).Return(false, nil)

	_, err := m.Transition("cmp-1", staffScope("stf-1"), models.StatusInProgress, lifecycle.TransitionPayload{})

	var conflict *apperr.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestTransition_CommentTooLong(t *testing.T) {
	store := new(MockComplaintStore)
	m := lifecycle.NewManager(store)
	c := assignedComplaint("stf-1")

	store.On("FindComplaint", "cmp-1", staffScope("stf-1")).Return(c, nil)

	_, err := m.Transition("cmp-1", staffScope("stf-1"), models.StatusInProgress,
		lifecycle.TransitionPayload{Comment: strings.Repeat("y", 501)})

	var validation *apperr.ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Equal(t, "comment", validation.Field)
	store.AssertNotCalled(t, "UpdateComplaintIf", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransition_OutOfScope_NotFound(t *testing.T) {
	store := new(MockComplaintStore)
	m := lifecycle.NewManager(store)

	store.On("FindComplaint", "cmp-1", staffScope("stf-2")).Return(nil, apperr.NotFound("complaint"))

	_, err := m.Transition("cmp-1", staffScope("stf-2"), models.StatusInProgress, lifecycle.TransitionPayload{})

	var notFound *apperr.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
