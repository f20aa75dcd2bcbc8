package models

import (
	"time"
)

// NotificationLog records every outbound message attempt, successful or not.
type NotificationLog struct {
	ID uint `gorm:"primaryKey"`

	CustomerID   uint   `gorm:"index;not null"`
	Type         string `gorm:"type:varchar(20)"` // welcome, payment, renewal
	Message      string `gorm:"type:text"`
	Status       string `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage string `gorm:"type:text"`
	Channel      string `gorm:"type:varchar(20)"` // whatsapp, sms
	SentAt       time.Time

	CreatedAt time.Time
}
