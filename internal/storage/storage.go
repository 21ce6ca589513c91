package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"civicgrid/backend/internal/apperr"
	"civicgrid/backend/internal/models"
	"civicgrid/backend/internal/query"
	"civicgrid/backend/internal/scope"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ComplaintStore is the durable record store. Every read takes the caller's
// scope predicate; a record outside it is reported as not found.
type ComplaintStore interface {
	CreateComplaint(c *models.Complaint) error
	FindComplaint(id string, p scope.Predicate) (*models.Complaint, error)
	ListComplaints(f models.ListFilter, p scope.Predicate) ([]models.Complaint, int64, error)

	// UpdateComplaintIf applies fields in a single conditional statement
	// keyed on the expected current status. It reports false when the row
	// was not in that status anymore, which is how concurrent writers lose.
	UpdateComplaintIf(id, expectedStatus string, fields map[string]interface{}) (bool, error)
}

// DirectoryLookup resolves staff placement and workload. It is the
// allocation engine's window into the user directory.
type DirectoryLookup interface {
	FindVerifiedStaff(state, district, department string) ([]models.User, error)
	WorkloadFor(staffIDs []string) (map[string]models.Workload, error)
	GetUserByID(id string) (*models.User, error)
}

// CounterStore serves the grouped counting queries behind dashboards.
type CounterStore interface {
	CountComplaintsByStatus(p scope.Predicate) (map[string]int64, error)
	CountComplaintsByCategory(p scope.Predicate) (map[string]int64, error)
	CountByCategoryAndStatus(p scope.Predicate) (map[string]map[string]int64, error)
	CountVerifiedStaff(state, district string) (int64, error)
	CountStaffByDepartment(state, district string) (map[string]int64, error)
}

// Cache is a small read-through cache for aggregate reports.
type Cache interface {
	CacheGet(key string, dest interface{}) (bool, error)
	CacheSet(key string, value interface{}, ttl time.Duration) error
}

type Storage interface {
	ComplaintStore
	DirectoryLookup
	CounterStore
	Cache

	SaveUser(u *models.User) error
	DeleteUserCascade(id string) error
}

// Service backs Storage with PostgreSQL for records and Redis for the
// aggregate cache. Redis may be nil (the ops CLI runs without it); cache
// calls then degrade to misses.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

func (s *Service) CreateComplaint(c *models.Complaint) error {
	if err := s.DB.Create(c).Error; err != nil {
		log.Printf("ERROR: Failed to create complaint for citizen %s: %v", c.CitizenID, err)
		return apperr.Upstream("create complaint", err)
	}
	return nil
}

func (s *Service) FindComplaint(id string, p scope.Predicate) (*models.Complaint, error) {
	var c models.Complaint
	err := p.Apply(s.DB.Where("id = ?", id)).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("complaint")
	}
	if err != nil {
		log.Printf("ERROR: Failed to load complaint %s: %v", id, err)
		return nil, apperr.Upstream("find complaint", err)
	}
	return &c, nil
}

func (s *Service) ListComplaints(f models.ListFilter, p scope.Predicate) ([]models.Complaint, int64, error) {
	base := query.Apply(p.Apply(s.DB.Model(&models.Complaint{})), f)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		log.Printf("ERROR: Failed to count complaints: %v", err)
		return nil, 0, apperr.Upstream("count complaints", err)
	}

	var items []models.Complaint
	err := base.
		Order(query.Order(f)).
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&items).Error
	if err != nil {
		log.Printf("ERROR: Failed to list complaints: %v", err)
		return nil, 0, apperr.Upstream("list complaints", err)
	}
	return items, total, nil
}

func (s *Service) UpdateComplaintIf(id, expectedStatus string, fields map[string]interface{}) (bool, error) {
	res := s.DB.Model(&models.Complaint{}).
		Where("id = ? AND status = ?", id, expectedStatus).
		Updates(fields)
	if res.Error != nil {
		log.Printf("ERROR: Failed conditional update of complaint %s: %v", id, res.Error)
		return false, apperr.Upstream("update complaint", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *Service) FindVerifiedStaff(state, district, department string) ([]models.User, error) {
	var staff []models.User
	err := s.DB.
		Where("role = ? AND verified = ?", models.RoleStaff, true).
		Where("state = ? AND district = ? AND department = ?", state, district, department).
		Order("name asc").
		Find(&staff).Error
	if err != nil {
		log.Printf("ERROR: Failed to look up staff for %s/%s/%s: %v", state, district, department, err)
		return nil, apperr.Upstream("directory lookup", err)
	}
	return staff, nil
}

type statusCountRow struct {
	Key    string
	Status string
	Count  int64
}

func (s *Service) WorkloadFor(staffIDs []string) (map[string]models.Workload, error) {
	out := make(map[string]models.Workload, len(staffIDs))
	for _, id := range staffIDs {
		out[id] = models.Workload{}
	}
	if len(staffIDs) == 0 {
		return out, nil
	}

	var rows []statusCountRow
	err := s.DB.Model(&models.Complaint{}).
		Select("assigned_to as key, status, count(*) as count").
		Where("assigned_to IN ?", staffIDs).
		Group("assigned_to, status").
		Scan(&rows).Error
	if err != nil {
		log.Printf("ERROR: Failed to count staff workload: %v", err)
		return nil, apperr.Upstream("workload count", err)
	}

	for _, r := range rows {
		w := out[r.Key]
		switch r.Status {
		case models.StatusAssigned:
			w.Assigned = int(r.Count)
		case models.StatusInProgress:
			w.InProgress = int(r.Count)
		case models.StatusResolved:
			w.Resolved = int(r.Count)
		case models.StatusRejected:
			w.Rejected = int(r.Count)
		}
		w.Active = w.Assigned + w.InProgress
		out[r.Key] = w
	}
	return out, nil
}

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var u models.User
	err := s.DB.Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user")
	}
	if err != nil {
		log.Printf("ERROR: Failed to load user %s: %v", id, err)
		return nil, apperr.Upstream("find user", err)
	}
	return &u, nil
}

func (s *Service) CountComplaintsByStatus(p scope.Predicate) (map[string]int64, error) {
	var rows []statusCountRow
	err := p.Apply(s.DB.Model(&models.Complaint{})).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		log.Printf("ERROR: Failed to count complaints by status: %v", err)
		return nil, apperr.Upstream("status counts", err)
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Count
	}
	return out, nil
}

func (s *Service) CountComplaintsByCategory(p scope.Predicate) (map[string]int64, error) {
	var rows []statusCountRow
	err := p.Apply(s.DB.Model(&models.Complaint{})).
		Select("category as key, count(*) as count").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		log.Printf("ERROR: Failed to count complaints by category: %v", err)
		return nil, apperr.Upstream("category counts", err)
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Count
	}
	return out, nil
}

func (s *Service) CountByCategoryAndStatus(p scope.Predicate) (map[string]map[string]int64, error) {
	var rows []statusCountRow
	err := p.Apply(s.DB.Model(&models.Complaint{})).
		Select("category as key, status, count(*) as count").
		Group("category, status").
		Scan(&rows).Error
	if err != nil {
		log.Printf("ERROR: Failed to count complaints by category and status: %v", err)
		return nil, apperr.Upstream("category/status counts", err)
	}
	out := make(map[string]map[string]int64)
	for _, r := range rows {
		if out[r.Key] == nil {
			out[r.Key] = make(map[string]int64)
		}
		out[r.Key][r.Status] = r.Count
	}
	return out, nil
}

func (s *Service) CountVerifiedStaff(state, district string) (int64, error) {
	var n int64
	err := s.DB.Model(&models.User{}).
		Where("role = ? AND verified = ? AND state = ? AND district = ?", models.RoleStaff, true, state, district).
		Count(&n).Error
	if err != nil {
		log.Printf("ERROR: Failed to count staff in %s/%s: %v", state, district, err)
		return 0, apperr.Upstream("staff count", err)
	}
	return n, nil
}

func (s *Service) CountStaffByDepartment(state, district string) (map[string]int64, error) {
	var rows []statusCountRow
	err := s.DB.Model(&models.User{}).
		Select("department as key, count(*) as count").
		Where("role = ? AND verified = ? AND state = ? AND district = ?", models.RoleStaff, true, state, district).
		Group("department").
		Scan(&rows).Error
	if err != nil {
		log.Printf("ERROR: Failed to count staff by department in %s/%s: %v", state, district, err)
		return nil, apperr.Upstream("department staff count", err)
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Count
	}
	return out, nil
}

func (s *Service) SaveUser(u *models.User) error {
	if err := s.DB.Save(u).Error; err != nil {
		log.Printf("ERROR: Failed to save user %s: %v", u.ID, err)
		return apperr.Upstream("save user", err)
	}
	return nil
}

// DeleteUserCascade removes an account and, for citizens, every complaint
// it owns. This is the only path that ever hard-deletes complaints.
func (s *Service) DeleteUserCascade(id string) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("citizen_id = ?", id).Delete(&models.Complaint{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.User{}).Error
	})
	if err != nil {
		log.Printf("ERROR: Failed to delete user %s: %v", id, err)
		return apperr.Upstream("delete user", err)
	}
	return nil
}

func (s *Service) CacheGet(key string, dest interface{}) (bool, error) {
	if s.Redis == nil {
		return false, nil
	}
	raw, err := s.Redis.Get(s.Ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) CacheSet(key string, value interface{}, ttl time.Duration) error {
	if s.Redis == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Redis.Set(s.Ctx, key, raw, ttl).Err()
}
