package models

import (
	"time"

	"gympro-backend/utils"

	"gorm.io/gorm"
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Username string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	Role     string `gorm:"type:varchar(20);not null"` // 'staff', 'manager' or 'admin'

	Payments []Payment `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Hash the password before storing
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
