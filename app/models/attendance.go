package models

import "time"

// AttendanceRecord is the single outcome for a (session instance, student)
// pair. Four writers converge on it: student self-check-in, admin/lecturer
// override, the recognition bridge, and system finalization at session end.
type AttendanceRecord struct {
	ID                    string           `json:"id" db:"id"`
	SessionInstanceID     string           `json:"session_instance_id" db:"session_instance_id"`
	StudentID             string           `json:"student_id" db:"student_id"`
	Status                AttendanceStatus `json:"status" db:"status"`
	CheckInTime           *time.Time       `json:"check_in_time,omitempty" db:"check_in_time"`
	Notes                 string           `json:"notes,omitempty" db:"notes"`
	MarkedBy              MarkedBy         `json:"marked_by" db:"marked_by"`
	RecognitionConfidence *float64         `json:"recognition_confidence,omitempty" db:"recognition_confidence"`
	CreatedAt             time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at" db:"updated_at"`

	Student *User `json:"student,omitempty"`
}
