package models

import (
	"time"
)

type Customer struct {
	ID uint `gorm:"primaryKey"`

	Name         string  `gorm:"not null"`
	Phone        *string `gorm:"uniqueIndex"`
	Gender       string  `gorm:"type:varchar(10);not null"` // 'male' or 'female'
	RegisterDate time.Time
	ExpireDate   *time.Time
	Fee          float64 `gorm:"type:decimal(10,2);not null"`
	Balance      float64 `gorm:"type:decimal(10,2);default:0.0"`
	IsActive     bool    `gorm:"default:true"`
	Image        *string

	Payments []Payment `gorm:"foreignKey:CustomerID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PhoneNumber returns the stored phone or "" when none is on record.
func (c *Customer) PhoneNumber() string {
	if c.Phone == nil {
		return ""
	}
	return *c.Phone
}
