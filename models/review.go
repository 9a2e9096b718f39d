package models

import (
	"time"
)

const (
	ReviewActive   = "Active"
	ReviewInactive = "Inactive"
)

// Review stays Inactive until an administrator activates it.
type Review struct {
	ID                uint         `json:"_id" gorm:"primaryKey"`
	ClientID          uint         `json:"client" gorm:"index"`
	Client            *User        `json:"-" gorm:"foreignKey:ClientID"`
	AppointmentID     uint         `json:"appointment" gorm:"index"`
	Appointment       *Appointment `json:"-" gorm:"foreignKey:AppointmentID"`
	ServiceProviderID uint         `json:"serviceProvider" gorm:"index"`
	ServiceProvider   *User        `json:"-" gorm:"foreignKey:ServiceProviderID"`
	Rating            *float64     `json:"rating,omitempty"`
	Review            string       `json:"review,omitempty"`
	Status            string       `json:"status" gorm:"default:Inactive;index"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

func ValidReviewStatus(s string) bool {
	return s == ReviewActive || s == ReviewInactive
}
