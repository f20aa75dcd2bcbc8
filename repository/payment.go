package repository

import (
	"time"

	"gympro-backend/models"
	"gympro-backend/utils"

	"gorm.io/gorm"
)

// ReportTotals aggregates a payments report period.
type ReportTotals struct {
	TotalPaid      float64 `json:"totalPaid"`
	TotalDiscount  float64 `json:"totalDiscount"`
	TotalBalance   float64 `json:"totalBalance"`
	TotalPayments  int     `json:"totalPayments"`
	TotalCustomers int     `json:"totalCustomers"`
}

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// ListAll returns every payment newest first with customer and recorder
// attached.
func (r *PaymentRepository) ListAll() ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.
		Preload("Customer").
		Preload("User").
		Order("date DESC").
		Find(&payments).Error
	return payments, err
}

// ListByCustomer pages through one customer's payment history, newest first.
func (r *PaymentRepository) ListByCustomer(customerID uint, page, pageSize int) ([]models.Payment, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 5
	}
	var payments []models.Payment
	err := r.db.
		Where("customer_id = ?", customerID).
		Order("date DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&payments).Error
	return payments, err
}

// Report returns payments inside [start, end] (end inclusive for the whole
// day) optionally narrowed by customer name or phone, plus period totals.
func (r *PaymentRepository) Report(start, end time.Time, nameFilter, phoneFilter string) ([]models.Payment, ReportTotals, error) {
	query := r.db.
		Model(&models.Payment{}).
		Joins("JOIN customers ON customers.id = payments.customer_id").
		Where("payments.date >= ? AND payments.date <= ?", start, utils.EndOfDay(end))

	if nameFilter != "" {
		query = query.Where("customers.name LIKE ?", "%"+nameFilter+"%")
	}
	if phoneFilter != "" {
		query = query.Where("customers.phone LIKE ?", "%"+phoneFilter+"%")
	}

	var payments []models.Payment
	err := query.
		Preload("Customer").
		Preload("User").
		Order("payments.date DESC").
		Find(&payments).Error
	if err != nil {
		return nil, ReportTotals{}, err
	}

	totals := ReportTotals{TotalPayments: len(payments)}
	customers := make(map[uint]struct{})
	for _, p := range payments {
		totals.TotalPaid += p.PaidAmount
		totals.TotalDiscount += p.Discount
		totals.TotalBalance += p.Balance
		customers[p.CustomerID] = struct{}{}
	}
	totals.TotalCustomers = len(customers)

	return payments, totals, nil
}
