package repository

import (
	"errors"
	"math"
	"time"

	"gympro-backend/models"
	"gympro-backend/utils"

	"gorm.io/gorm"
)

const DefaultPageSize = 50

// CustomerFilter narrows a customer listing. Zero values mean "no filter";
// Now defaults to the wall clock and exists so tests can pin the day the
// status buckets are computed against.
type CustomerFilter struct {
	Search string // substring match on name or phone
	Status string // active, expired, expiringSoon or all
	Gender string // male, female or all
	Now    time.Time
}

// Pagination is the page envelope returned alongside every listing.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

type CustomerRepository struct {
	db          *gorm.DB
	horizonDays int
}

func NewCustomerRepository(db *gorm.DB, horizonDays int) *CustomerRepository {
	if horizonDays <= 0 {
		horizonDays = 7
	}
	return &CustomerRepository{db: db, horizonDays: horizonDays}
}

func (r *CustomerRepository) Create(customer *models.Customer) error {
	if err := r.db.Create(customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *CustomerRepository) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByPhone is used for duplicate checks before create/update.
func (r *CustomerRepository) FindByPhone(phone string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Where("phone = ?", phone).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) Update(customer *models.Customer) error {
	if err := r.db.Save(customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *CustomerRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Customer{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns one page of customers matching the filter, newest registered
// first. Page and pageSize are clamped server-side; callers may pass whatever
// the query string produced.
func (r *CustomerRepository) List(filter CustomerFilter, page, pageSize int) ([]models.Customer, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	query := r.applyFilter(r.db.Model(&models.Customer{}), filter)

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, Pagination{}, err
	}

	var customers []models.Customer
	err := query.
		Order("register_date DESC").
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&customers).Error
	if err != nil {
		return nil, Pagination{}, err
	}

	pagination := Pagination{
		CurrentPage: page,
		TotalPages:  int(math.Ceil(float64(totalCount) / float64(pageSize))),
		TotalCount:  totalCount,
		HasNext:     int64(page)*int64(pageSize) < totalCount,
		HasPrev:     page > 1,
	}
	return customers, pagination, nil
}

// CountByStatus reports how many customers fall in a status bucket today.
func (r *CustomerRepository) CountByStatus(status string, now time.Time) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.Model(&models.Customer{}), CustomerFilter{Status: status, Now: now})
	err := query.Count(&count).Error
	return count, err
}

// ExpiringSoon returns every customer inside the reminder horizon, for the
// daily payment-reminder run.
func (r *CustomerRepository) ExpiringSoon(now time.Time) ([]models.Customer, error) {
	var customers []models.Customer
	query := r.applyFilter(r.db.Model(&models.Customer{}), CustomerFilter{Status: "expiringSoon", Now: now})
	err := query.Order("expire_date ASC").Find(&customers).Error
	return customers, err
}

func (r *CustomerRepository) applyFilter(query *gorm.DB, filter CustomerFilter) *gorm.DB {
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ?", like, like)
	}

	if filter.Gender != "" && filter.Gender != "all" {
		query = query.Where("gender = ?", filter.Gender)
	}

	if filter.Status != "" && filter.Status != "all" {
		now := filter.Now
		if now.IsZero() {
			now = time.Now()
		}
		today := utils.BeginningOfDay(now)
		horizonEnd := utils.EndOfDay(today.AddDate(0, 0, r.horizonDays))

		switch filter.Status {
		case "active":
			query = query.Where("is_active = ? AND expire_date >= ?", true, today)
		case "expired":
			// Missing expiry counts as expired, matching the evaluator.
			query = query.Where("is_active = ? OR expire_date < ? OR expire_date IS NULL", false, today)
		case "expiringSoon", "expiring":
			query = query.Where("is_active = ? AND expire_date >= ? AND expire_date <= ?", true, today, horizonEnd)
		}
	}

	return query
}
