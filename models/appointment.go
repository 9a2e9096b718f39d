package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	AppointmentActive    = "Active"
	AppointmentCompleted = "Completed"
	AppointmentCancelled = "Cancelled"
)

// Appointment books a service provider for a client. Name, email, phone and
// address are a snapshot taken at booking time, not a live view of the client.
type Appointment struct {
	ID                  uint       `json:"_id" gorm:"primaryKey"`
	ClientID            uint       `json:"client" gorm:"index"`
	Client              *User      `json:"-" gorm:"foreignKey:ClientID"`
	ServiceProviderID   uint       `json:"serviceProvider" gorm:"index"`
	ServiceProvider     *User      `json:"-" gorm:"foreignKey:ServiceProviderID"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone"`
	Address             string     `json:"address,omitempty"`
	AppointmentDatetime time.Time  `json:"appointment_datetime" gorm:"index"`
	Fees                float64    `json:"fees"`
	CardName            string     `json:"card_name,omitempty"`
	CardNumber          string     `json:"card_number,omitempty"`
	CardExpiry          string     `json:"card_expiry,omitempty"`
	CardCVV             string     `json:"card_cvv,omitempty"`
	Status              string     `json:"status" gorm:"default:Active;index"`
	RemindedAt          *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

func ValidAppointmentStatus(s string) bool {
	switch s {
	case AppointmentActive, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

func (a *Appointment) BeforeSave(tx *gorm.DB) error {
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	if a.Status == "" {
		a.Status = AppointmentActive
	}
	return nil
}
