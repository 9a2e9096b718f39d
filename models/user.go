package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	RoleServiceProvider = "Service Provider"
	RoleClient          = "Client"

	UserActive    = "Active"
	UserSuspended = "Suspended"
)

// User is any account: client, service provider or administrator.
// Email acts as the login identity but is not unique at the storage level.
type User struct {
	ID             uint      `json:"_id" gorm:"primaryKey"`
	CategoryID     *uint     `json:"category,omitempty" gorm:"index"`
	Name           string    `json:"name"`
	Email          string    `json:"email" gorm:"index"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address,omitempty"`
	City           string    `json:"city,omitempty" gorm:"index"`
	Password       string    `json:"password,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	Role           string    `json:"role" gorm:"index"`
	Availability   string    `json:"availability,omitempty"`
	Experience     string    `json:"experience,omitempty"`
	Skills         string    `json:"skills,omitempty"`
	Pricing        string    `json:"pricing,omitempty"`
	IdentityProof  string    `json:"identityProof,omitempty"`
	Status         string    `json:"status" gorm:"default:Active"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (u *User) IsSuspended() bool {
	return u.Status == UserSuspended
}

func (u *User) IsServiceProvider() bool {
	return u.Role == RoleServiceProvider
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Status == "" {
		u.Status = UserActive
	}
	return nil
}
