package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Service is a bookable listing. Images holds public paths (or URLs) of
// uploaded files; the files themselves live outside the database.
type Service struct {
	ID           uint      `json:"_id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"not null"`
	CategoryID   uint      `json:"category" gorm:"index"`
	Category     *Category `json:"-" gorm:"foreignKey:CategoryID"`
	Price        float64   `json:"price"`
	Description  string    `json:"description"`
	Duties       string    `json:"duties"`
	Availability string    `json:"availability"`
	Images       []string  `json:"images" gorm:"type:text;serializer:json"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (s *Service) BeforeSave(tx *gorm.DB) error {
	s.Title = strings.TrimSpace(s.Title)
	s.Description = strings.TrimSpace(s.Description)
	s.Duties = strings.TrimSpace(s.Duties)
	s.Availability = strings.TrimSpace(s.Availability)
	if s.Images == nil {
		s.Images = []string{}
	}
	return nil
}
