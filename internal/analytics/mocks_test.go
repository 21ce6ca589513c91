package analytics_test

import (
	"time"

	"civicgrid/backend/internal/scope"

	"github.com/stretchr/testify/mock"
)

// MockCounterStore is a testify/mock double for storage.CounterStore.
type MockCounterStore struct {
	mock.Mock
}

func (m *MockCounterStore) CountComplaintsByStatus(p scope.Predicate) (map[string]int64, error) {
	args := m.Called(p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockCounterStore) CountComplaintsByCategory(p scope.Predicate) (map[string]int64, error) {
	args := m.Called(p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockCounterStore) CountByCategoryAndStatus(p scope.Predicate) (map[string]map[string]int64, error) {
	args := m.Called(p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]map[string]int64), args.Error(1)
}

func (m *MockCounterStore) CountVerifiedStaff(state, district string) (int64, error) {
	args := m.Called(state, district)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCounterStore) CountStaffByDepartment(state, district string) (map[string]int64, error) {
	args := m.Called(state, district)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// MockCache is a testify/mock double for storage.Cache.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) CacheGet(key string, dest interface{}) (bool, error) {
	args := m.Called(key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) CacheSet(key string, value interface{}, ttl time.Duration) error {
	args := m.Called(key, value, ttl)
	return args.Error(0)
}

// missCache is a Cache that never holds anything. Most tests want the
// counting path, not the caching path.
type missCache struct{}

func (missCache) CacheGet(string, interface{}) (bool, error)        { return false, nil }
func (missCache) CacheSet(string, interface{}, time.Duration) error { return nil }
