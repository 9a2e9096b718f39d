package models

import "time"

const (
	TicketActive      = "Active"
	TicketCompleted   = "Completed"
	TicketCancelled   = "Cancelled"
	TicketSendToAdmin = "Send To Admin"
)

type Ticket struct {
	ID            uint         `json:"_id" gorm:"primaryKey"`
	ClientID      uint         `json:"client" gorm:"index"`
	Client        *User        `json:"-" gorm:"foreignKey:ClientID"`
	AppointmentID uint         `json:"appointment" gorm:"index"`
	Appointment   *Appointment `json:"-" gorm:"foreignKey:AppointmentID"`
	Message       string       `json:"message,omitempty"`
	Status        string       `json:"status" gorm:"default:Active;index"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// ValidTicketStatus reports whether s may be set through the regular status
// update. Escalation to an administrator has its own route.
func ValidTicketStatus(s string) bool {
	switch s {
	case TicketActive, TicketCompleted, TicketCancelled:
		return true
	}
	return false
}
