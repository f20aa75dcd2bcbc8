// Package membership derives a customer's membership status from stored
// fields and the current time. The stored IsActive flag is a hint only: a
// past expire date always wins.
package membership

import (
	"time"

	"gympro-backend/models"
)

type Status string

const (
	StatusActive       Status = "active"
	StatusExpiringSoon Status = "expiringSoon"
	StatusExpired      Status = "expired"
)

// DefaultHorizonDays is the expiring-soon window used when none is configured.
const DefaultHorizonDays = 7

// Evaluate classifies a customer as of now. A customer with no expire date on
// record is expired: nothing ever granted them access past today.
func Evaluate(c *models.Customer, now time.Time, horizonDays int) Status {
	if c.ExpireDate == nil {
		return StatusExpired
	}
	if !c.IsActive || c.ExpireDate.Before(now) {
		return StatusExpired
	}
	horizon := now.AddDate(0, 0, horizonDays)
	if !c.ExpireDate.After(horizon) {
		return StatusExpiringSoon
	}
	return StatusActive
}

// DaysLeft reports whole days until expiry, negative when already past.
func DaysLeft(c *models.Customer, now time.Time) int {
	if c.ExpireDate == nil {
		return 0
	}
	return int(c.ExpireDate.Sub(now).Hours() / 24)
}
