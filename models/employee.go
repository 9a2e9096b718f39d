package models

import "time"

type Employee struct {
	ID            uint      `json:"_id" gorm:"primaryKey"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Age           string    `json:"age"`
	DateOfJoin    string    `json:"date_of_join"`
	Title         string    `json:"title"`
	Department    string    `json:"department"`
	EmployeeType  string    `json:"employee_type"`
	CurrentStatus int       `json:"current_status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
