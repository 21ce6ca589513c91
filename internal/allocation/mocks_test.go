package allocation_test

import (
	"civicgrid/backend/internal/models"
	"civicgrid/backend/internal/scope"

	"github.com/stretchr/testify/mock"
)

// MockComplaintStore is a testify/mock double for storage.ComplaintStore.
type MockComplaintStore struct {
	mock.Mock
}

func (m *MockComplaintStore) CreateComplaint(c *models.Complaint) error {
	args := m.Called(c)
	return args.Error(0)
}

func (m *MockComplaintStore) FindComplaint(id string, p scope.Predicate) (*models.Complaint, error) {
	args := m.Called(id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockComplaintStore) ListComplaints(f models.ListFilter, p scope.Predicate) ([]models.Complaint, int64, error) {
	args := m.Called(f, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Complaint), args.Get(1).(int64), args.Error(2)
}

func (m *MockComplaintStore) UpdateComplaintIf(id, expectedStatus string, fields map[string]interface{}) (bool, error) {
	args := m.Called(id, expectedStatus, fields)
	return args.Bool(0), args.Error(1)
}

// MockDirectory is a testify/mock double for storage.DirectoryLookup.
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) FindVerifiedStaff(state, district, department string) ([]models.User, error) {
	args := m.Called(state, district, department)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockDirectory) WorkloadFor(staffIDs []string) (map[string]models.Workload, error) {
	args := m.Called(staffIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]models.Workload), args.Error(1)
}

func (m *MockDirectory) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
