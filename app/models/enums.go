package models

// Role defines the user types known to the system.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleLecturer Role = "lecturer"
	RoleStudent  Role = "student"
)

// SessionStatus defines the lifecycle states of a session instance.
// Transitions are forward-only: scheduled -> in_progress -> completed,
// or scheduled -> cancelled.
type SessionStatus string

const (
	SessionScheduled  SessionStatus = "scheduled"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionCancelled  SessionStatus = "cancelled"
)

// AttendanceStatus defines the possible status values for attendance.
type AttendanceStatus string

const (
	Present AttendanceStatus = "present"
	Absent  AttendanceStatus = "absent"
	Late    AttendanceStatus = "late"
)

// MarkedBy identifies which writer produced an attendance record.
type MarkedBy string

const (
	MarkedByAdmin       MarkedBy = "admin"
	MarkedByLecturer    MarkedBy = "lecturer"
	MarkedByStudent     MarkedBy = "student"
	MarkedByRecognition MarkedBy = "recognition-system"
	MarkedBySystem      MarkedBy = "system"
)

// DayOfWeek defines the days of the week for timetable sessions.
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

// SessionType classifies a timetable session.
type SessionType string

const (
	Lecture  SessionType = "Lecture"
	Lab      SessionType = "Lab"
	Tutorial SessionType = "Tutorial"
	Seminar  SessionType = "Seminar"
	Exam     SessionType = "Exam"
	OtherTyp SessionType = "Other"
)

// TimetableStatus defines whether a timetable session still generates instances.
type TimetableStatus string

const (
	TimetableActive    TimetableStatus = "active"
	TimetableCancelled TimetableStatus = "cancelled"
)

// ClassStatus defines whether a class is open for sessions and enrollment.
type ClassStatus string

const (
	ClassActive   ClassStatus = "active"
	ClassInactive ClassStatus = "inactive"
)

// EnrollmentStatus defines a student's standing in a class.
type EnrollmentStatus string

const (
	Enrolled EnrollmentStatus = "enrolled"
	Dropped  EnrollmentStatus = "dropped"
)

// RequestStatus defines the states of an enrollment request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)
