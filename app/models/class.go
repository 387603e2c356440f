package models

import "time"

type Class struct {
	ID           string      `json:"id" db:"id"`
	Code         string      `json:"code" db:"code" validate:"required"`
	Name         string      `json:"name" db:"name" validate:"required"`
	Description  string      `json:"description,omitempty" db:"description"`
	Semester     string      `json:"semester,omitempty" db:"semester"`
	Year         int         `json:"year,omitempty" db:"year"`
	Status       ClassStatus `json:"status" db:"status"`
	StudentCount int         `json:"student_count,omitempty"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
	Lecturers    []*User     `json:"lecturers,omitempty"`
}
