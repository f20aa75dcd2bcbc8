// services/renewal_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gympro-backend/models"
	"gympro-backend/repository"

	"gorm.io/gorm"
)

var (
	// ErrInvalidAmount rejects negative, NaN or infinite paid amounts.
	ErrInvalidAmount = errors.New("paid amount must be a non-negative number")
)

// RenewalService extends a customer's membership and records the payment
// behind it as one unit of work.
type RenewalService struct {
	db *gorm.DB
}

func NewRenewalService(db *gorm.DB) *RenewalService {
	return &RenewalService{db: db}
}

// RenewalResult is what one renewal hands back to the caller.
type RenewalResult struct {
	Customer *models.Customer
	Payment  *models.Payment
}

// Renew sets the customer's new expire date, reactivates them, and inserts
// the payment row inside a single transaction: a customer is never left
// marked active without the payment trail to show for it.
//
// The payment's balance is the customer's balance before the renewal, kept
// as a historical snapshot. Backdated expire dates are accepted; no business
// rule forbids them.
func (s *RenewalService) Renew(customerID uint, newExpireDate time.Time, paidAmount float64, staffUserID uint) (*RenewalResult, error) {
	if paidAmount < 0 || math.IsNaN(paidAmount) || math.IsInf(paidAmount, 0) {
		return nil, ErrInvalidAmount
	}

	var result RenewalResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.First(&customer, customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrNotFound
			}
			return err
		}

		balanceSnapshot := customer.Balance

		customer.ExpireDate = &newExpireDate
		customer.IsActive = true
		if err := tx.Save(&customer).Error; err != nil {
			return err
		}

		payment := models.Payment{
			CustomerID: customer.ID,
			UserID:     staffUserID,
			PaidAmount: paidAmount,
			Discount:   0,
			Balance:    balanceSnapshot,
			Date:       time.Now(),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		result.Customer = &customer
		result.Payment = &payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// BatchOutcome reports one customer's fate within a batch renewal.
type BatchOutcome struct {
	CustomerID uint             `json:"customerId"`
	Success    bool             `json:"success"`
	Error      string           `json:"error,omitempty"`
	Customer   *models.Customer `json:"customer,omitempty"`
	Payment    *models.Payment  `json:"payment,omitempty"`
}

// RenewBatch renews each customer independently. A failure for one customer
// never reverts renewals already committed for the others.
func (s *RenewalService) RenewBatch(customerIDs []uint, newExpireDate time.Time, paidAmount float64, staffUserID uint) []BatchOutcome {
	outcomes := make([]BatchOutcome, 0, len(customerIDs))
	for _, id := range customerIDs {
		outcome := BatchOutcome{CustomerID: id}
		result, err := s.Renew(id, newExpireDate, paidAmount, staffUserID)
		if err != nil {
			outcome.Error = renewalErrorMessage(id, err)
		} else {
			outcome.Success = true
			outcome.Customer = result.Customer
			outcome.Payment = result.Payment
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func renewalErrorMessage(id uint, err error) string {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Sprintf("customer %d not found", id)
	case errors.Is(err, ErrInvalidAmount):
		return err.Error()
	default:
		return "renewal failed"
	}
}
