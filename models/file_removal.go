package models

import "time"

// FileRemoval marks an uploaded file whose owning document is gone. The
// sweeper keeps retrying until the file is removed.
type FileRemoval struct {
	ID        uint      `json:"_id" gorm:"primaryKey"`
	Ref       string    `json:"ref" gorm:"not null"`
	Attempts  int       `json:"attempts"`
	LastError string    `json:"lastError,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
