package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
)

// AttendanceStore is the storage surface of the attendance ledger.
type AttendanceStore interface {
	SessionInstanceByID(id string) (*models.SessionInstance, error)
	StudentEnrolled(studentID, classID string) (bool, error)
	LecturerAssignedToClass(lecturerID, classID string) (bool, error)
	UpsertAttendance(rec *models.AttendanceRecord) error
}

// AttendanceLedger is the single write path for (session instance, student)
// outcomes. Self-check-in, manual overrides, the recognition bridge and
// session finalization all converge on the store's atomic upsert.
type AttendanceLedger struct {
	store AttendanceStore
	clock Clock
	log   *zap.Logger
}

func NewAttendanceLedger(store AttendanceStore, clock Clock, log *zap.Logger) *AttendanceLedger {
	return &AttendanceLedger{store: store, clock: clock, log: log}
}

// SelfCheckIn marks the calling student present in an in-progress session
// of a class they are enrolled in. The student may only mark their own
// record, and when the session carries an attendance code the supplied
// code must match.
func (a *AttendanceLedger) SelfCheckIn(instanceID, studentID string, actor models.ActorContext, code string) (*models.AttendanceRecord, error) {
	if !actor.IsStudent() || actor.UserID != studentID {
		return nil, ErrForbidden
	}

	si, err := a.store.SessionInstanceByID(instanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session instance: %w", err)
	}
	if si == nil {
		return nil, ErrNotFound
	}
	if si.Status != models.SessionInProgress {
		return nil, fmt.Errorf("%w: session is not accepting check-ins", ErrForbidden)
	}

	enrolled, err := a.store.StudentEnrolled(studentID, si.ClassID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return nil, fmt.Errorf("%w: not enrolled in this class", ErrForbidden)
	}

	if code != "" && si.AttendanceCode != nil && code != *si.AttendanceCode {
		return nil, fmt.Errorf("%w: attendance code mismatch", ErrForbidden)
	}

	now := a.clock.Now()
	rec := &models.AttendanceRecord{
		SessionInstanceID: si.ID,
		StudentID:         studentID,
		Status:            models.Present,
		CheckInTime:       &now,
		MarkedBy:          models.MarkedByStudent,
	}
	if err := a.store.UpsertAttendance(rec); err != nil {
		return nil, fmt.Errorf("failed to record check-in: %w", err)
	}
	a.log.Info("student checked in",
		zap.String("session_instance_id", si.ID),
		zap.String("student_id", studentID))
	return rec, nil
}

// Override is the admin/lecturer manual path. It has no session-state
// precondition beyond the instance existing and may set any status.
func (a *AttendanceLedger) Override(instanceID, studentID string, status models.AttendanceStatus, notes string, actor models.ActorContext) (*models.AttendanceRecord, error) {
	si, err := a.store.SessionInstanceByID(instanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session instance: %w", err)
	}
	if si == nil {
		return nil, ErrNotFound
	}

	var markedBy models.MarkedBy
	switch {
	case actor.IsAdmin():
		markedBy = models.MarkedByAdmin
	case actor.IsLecturer():
		assigned, err := a.store.LecturerAssignedToClass(actor.UserID, si.ClassID)
		if err != nil {
			return nil, fmt.Errorf("failed to check lecturer assignment: %w", err)
		}
		if !assigned {
			return nil, ErrForbidden
		}
		markedBy = models.MarkedByLecturer
	default:
		return nil, ErrForbidden
	}

	rec := &models.AttendanceRecord{
		SessionInstanceID: si.ID,
		StudentID:         studentID,
		Status:            status,
		Notes:             notes,
		MarkedBy:          markedBy,
	}
	if status != models.Absent {
		now := a.clock.Now()
		rec.CheckInTime = &now
	}
	if err := a.store.UpsertAttendance(rec); err != nil {
		return nil, fmt.Errorf("failed to save attendance record: %w", err)
	}
	return rec, nil
}

// MarkRecognized is the recognition-bridge path: one call per recognized
// frame. Repeated calls for the same student collapse onto the same row,
// keeping the last reported confidence.
func (a *AttendanceLedger) MarkRecognized(instanceID, studentID string, confidence float64) (*models.AttendanceRecord, error) {
	si, err := a.store.SessionInstanceByID(instanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session instance: %w", err)
	}
	if si == nil {
		return nil, ErrNotFound
	}

	now := a.clock.Now()
	rec := &models.AttendanceRecord{
		SessionInstanceID:     si.ID,
		StudentID:             studentID,
		Status:                models.Present,
		CheckInTime:           &now,
		MarkedBy:              models.MarkedByRecognition,
		RecognitionConfidence: &confidence,
	}
	if err := a.store.UpsertAttendance(rec); err != nil {
		return nil, fmt.Errorf("failed to record recognition match: %w", err)
	}
	return rec, nil
}
