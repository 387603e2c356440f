package models

import "time"

// TimetableSession is a recurring weekly slot: "CS101 Lecture, every monday
// 09:00-10:00, room B12". Concrete dated occurrences are SessionInstances.
type TimetableSession struct {
	ID           string          `json:"id" db:"id"`
	ClassID      string          `json:"class_id" db:"class_id" validate:"required,uuid"`
	Title        string          `json:"title" db:"title" validate:"required"`
	DayOfWeek    DayOfWeek       `json:"day_of_week" db:"day_of_week" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime    string          `json:"start_time" db:"start_time" validate:"required"` // "15:04"
	EndTime      string          `json:"end_time" db:"end_time" validate:"required"`
	RoomLocation string          `json:"room_location" db:"room_location"`
	SessionType  SessionType     `json:"session_type" db:"session_type"`
	Instructor   string          `json:"instructor,omitempty" db:"instructor"`
	RecurStart   *time.Time      `json:"recur_start,omitempty" db:"recur_start"`
	RecurEnd     *time.Time      `json:"recur_end,omitempty" db:"recur_end"`
	Status       TimetableStatus `json:"status" db:"status"`
	CreatedBy    *string         `json:"created_by,omitempty" db:"created_by"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
	ClassCode    string          `json:"class_code,omitempty"`
	ClassName    string          `json:"class_name,omitempty"`
}

// CoversDate reports whether the recurrence window (if any) contains d.
func (ts *TimetableSession) CoversDate(d time.Time) bool {
	if ts.RecurStart != nil && d.Before(*ts.RecurStart) {
		return false
	}
	if ts.RecurEnd != nil && d.After(*ts.RecurEnd) {
		return false
	}
	return true
}
