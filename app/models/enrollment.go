package models

import "time"

type Enrollment struct {
	ID        string           `json:"id" db:"id"`
	StudentID string           `json:"student_id" db:"student_id"`
	ClassID   string           `json:"class_id" db:"class_id"`
	Status    EnrollmentStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" db:"updated_at"`
}

// EnrollmentRequest is a student's petition to join a class, resolved by an
// admin. Approval also creates/confirms the Enrollment row in the same
// transaction.
type EnrollmentRequest struct {
	ID          string        `json:"id" db:"id"`
	StudentID   string        `json:"student_id" db:"student_id"`
	ClassID     string        `json:"class_id" db:"class_id"`
	Status      RequestStatus `json:"status" db:"status"`
	Reason      string        `json:"reason,omitempty" db:"reason"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	ProcessedAt *time.Time    `json:"processed_at,omitempty" db:"processed_at"`
	ProcessedBy *string       `json:"processed_by,omitempty" db:"processed_by"`

	StudentName string `json:"student_name,omitempty"`
	ClassCode   string `json:"class_code,omitempty"`
	ClassName   string `json:"class_name,omitempty"`
}
