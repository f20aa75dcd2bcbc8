package models

import (
	"time"
)

// Payment rows are immutable once created. A renewal always inserts a new
// payment; nothing in the system updates or deletes one.
type Payment struct {
	ID uint `gorm:"primaryKey"`

	CustomerID uint `gorm:"index;not null"`
	UserID     uint `gorm:"index;not null"`

	PaidAmount float64 `gorm:"type:decimal(10,2);not null"`
	Discount   float64 `gorm:"type:decimal(10,2);default:0.0"`
	// Balance is the customer's balance at the moment the payment was taken,
	// not a derived value.
	Balance float64   `gorm:"type:decimal(10,2);default:0.0"`
	Date    time.Time `gorm:"index;not null"`

	Customer Customer `gorm:"foreignKey:CustomerID"`
	User     User     `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
}
