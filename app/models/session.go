package models

import "time"

// SessionInstance is one concrete occurrence of a TimetableSession on one
// calendar date. Exactly one instance may exist per (timetable session, date).
type SessionInstance struct {
	ID                 string        `json:"id" db:"id"`
	TimetableSessionID string        `json:"timetable_session_id" db:"timetable_session_id"`
	SessionDate        time.Time     `json:"session_date" db:"session_date"`
	Status             SessionStatus `json:"status" db:"status"`
	ActualStartTime    *time.Time    `json:"actual_start_time,omitempty" db:"actual_start_time"`
	ActualEndTime      *time.Time    `json:"actual_end_time,omitempty" db:"actual_end_time"`
	AttendanceCode     *string       `json:"attendance_code,omitempty" db:"attendance_code"`
	Notes              string        `json:"notes,omitempty" db:"notes"`
	CreatedBy          *string       `json:"created_by,omitempty" db:"created_by"`
	CreatedAt          time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at" db:"updated_at"`

	// Joined timetable/class context for listings.
	Title        string `json:"title,omitempty"`
	StartTime    string `json:"start_time,omitempty"`
	EndTime      string `json:"end_time,omitempty"`
	RoomLocation string `json:"room_location,omitempty"`
	ClassID      string `json:"class_id,omitempty"`
	ClassCode    string `json:"class_code,omitempty"`
	ClassName    string `json:"class_name,omitempty"`

	PresentCount  int `json:"present_count,omitempty"`
	TotalStudents int `json:"total_students,omitempty"`
}

// SessionLog is an append-only audit entry written inside lifecycle
// transactions.
type SessionLog struct {
	ID                string    `json:"id" db:"id"`
	SessionInstanceID string    `json:"session_instance_id" db:"session_instance_id"`
	Action            string    `json:"action" db:"action"`
	PerformedBy       string    `json:"performed_by" db:"performed_by"`
	Details           string    `json:"details" db:"details"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

const (
	LogSessionStarted   = "session_started"
	LogSessionEnded     = "session_ended"
	LogSessionCancelled = "session_cancelled"
)
