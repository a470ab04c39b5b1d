package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	FirstName    string    `json:"firstName" gorm:"size:255;not null"`
	LastName     string    `json:"lastName" gorm:"size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Hidden from JSON
	IsTradesmen  bool      `json:"isTradesmen" gorm:"default:false"`
	PhoneNumber  *string   `json:"phoneNumber" gorm:"size:20"`
	Address      *string   `json:"address" gorm:"size:500"`
	IsActive     bool      `json:"isActive" gorm:"default:true"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that assigns a uuid before inserting
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsTradesman checks if the user can receive and fulfil bookings
func (u *User) IsTradesman() bool {
	return u.IsTradesmen
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
