package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "Admin"
	RoleAuthor = "Author"
)

type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	FullName  string    `json:"full_name" gorm:"size:60"`
	Phone     string    `json:"phone" gorm:"size:10"`
	Address   string    `json:"address" gorm:"size:255"`
	City      string    `json:"city" gorm:"size:30"`
	State     string    `json:"state" gorm:"size:30"`
	Country   string    `json:"country" gorm:"size:30"`
	Pincode   string    `json:"pincode" gorm:"size:6"`
	Role      string    `json:"role" gorm:"size:10;not null;default:'Author'"`
	Active    bool      `json:"-" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// BeforeCreate assigns the ID app-side so the model works on any backend,
// not just Postgres with uuid-ossp installed.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleAuthor
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
