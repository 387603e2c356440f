package logger

// Standard field names for consistent logging.
const (
	FieldService    = "service"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldUserID     = "user_id"
	FieldClassID    = "class_id"
	FieldInstanceID = "session_instance_id"
	FieldStudentID  = "student_id"
	FieldDate       = "date"
)
