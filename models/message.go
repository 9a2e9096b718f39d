package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is a chat line exchanged between two users about one appointment.
type Message struct {
	ID            uint      `json:"_id" gorm:"primaryKey"`
	AppointmentID uint      `json:"appointmentId" gorm:"index"`
	SenderID      uint      `json:"sender" gorm:"index"`
	Sender        *User     `json:"-" gorm:"foreignKey:SenderID"`
	ReceiverID    uint      `json:"receiver" gorm:"index"`
	Receiver      *User     `json:"-" gorm:"foreignKey:ReceiverID"`
	Content       string    `json:"content"`
	Timestamp     time.Time `json:"timestamp" gorm:"index"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
	return nil
}
