package services

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/database"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
)

const (
	attendanceCodeLength   = 6
	attendanceCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	maxCodeAttempts        = 5
)

// LifecycleStore is the storage surface of the session state machine. The
// Begin/Finish/Cancel composites re-evaluate the state precondition inside
// their own transaction (conditional update + affected-row check) and
// report applied=false when another caller won the transition.
type LifecycleStore interface {
	SessionInstanceByID(id string) (*models.SessionInstance, error)
	TimetableSessionByID(id string) (*models.TimetableSession, error)
	InstanceForDate(timetableSessionID string, date time.Time) (*models.SessionInstance, error)
	InsertScheduledInstance(timetableSessionID string, date time.Time, notes string, createdBy *string) (bool, error)
	LecturerAssignedToClass(lecturerID, classID string) (bool, error)
	BeginSession(id, code string, at time.Time, actorID string) (bool, error)
	FinishSession(id, classID string, at time.Time, actorID string) (bool, int64, error)
	CancelSession(id, actorID string) (bool, error)
}

// Lifecycle drives a session instance through
// scheduled -> in_progress -> completed (or scheduled -> cancelled).
type Lifecycle struct {
	store LifecycleStore
	clock Clock
	log   *zap.Logger
}

func NewLifecycle(store LifecycleStore, clock Clock, log *zap.Logger) *Lifecycle {
	return &Lifecycle{store: store, clock: clock, log: log}
}

// Start transitions scheduled -> in_progress, stamping the actual start
// time and issuing a fresh attendance code. Only an admin or a lecturer
// assigned to the instance's class may start it.
func (l *Lifecycle) Start(instanceID string, actor models.ActorContext) (*models.SessionInstance, error) {
	si, err := l.instanceForActor(instanceID, actor)
	if err != nil {
		return nil, err
	}
	if si.Status != models.SessionScheduled {
		return nil, fmt.Errorf("%w: session is %s, not scheduled", ErrInvalidTransition, si.Status)
	}

	now := l.clock.Now()
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := newAttendanceCode()
		applied, err := l.store.BeginSession(si.ID, code, now, actor.UserID)
		if errors.Is(err, database.ErrDuplicateAttendanceCode) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to start session: %w", err)
		}
		if !applied {
			// Lost the race: someone else already moved it out of scheduled.
			return nil, fmt.Errorf("%w: session is no longer scheduled", ErrInvalidTransition)
		}
		l.log.Info("session started",
			zap.String("session_instance_id", si.ID),
			zap.String("user_id", actor.UserID))
		return l.store.SessionInstanceByID(si.ID)
	}
	return nil, fmt.Errorf("failed to allocate a unique attendance code after %d attempts", maxCodeAttempts)
}

// End transitions in_progress -> completed and finalizes attendance: every
// student enrolled at end time without a record gets a system absence.
// The finalization cannot double-fire; a second End observes the state
// precondition and fails with ErrInvalidTransition.
func (l *Lifecycle) End(instanceID string, actor models.ActorContext) (*models.SessionInstance, error) {
	si, err := l.instanceForActor(instanceID, actor)
	if err != nil {
		return nil, err
	}
	if si.Status != models.SessionInProgress {
		return nil, fmt.Errorf("%w: session is %s, not in progress", ErrInvalidTransition, si.Status)
	}

	applied, absentees, err := l.store.FinishSession(si.ID, si.ClassID, l.clock.Now(), actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to end session: %w", err)
	}
	if !applied {
		return nil, fmt.Errorf("%w: session is no longer in progress", ErrInvalidTransition)
	}
	l.log.Info("session ended",
		zap.String("session_instance_id", si.ID),
		zap.String("user_id", actor.UserID),
		zap.Int64("absentees_added", absentees))
	return l.store.SessionInstanceByID(si.ID)
}

// Cancel transitions scheduled -> cancelled. Admin only; a cancelled
// instance is never resurrected by the materializer.
func (l *Lifecycle) Cancel(instanceID string, actor models.ActorContext) (*models.SessionInstance, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	si, err := l.store.SessionInstanceByID(instanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session instance: %w", err)
	}
	if si == nil {
		return nil, ErrNotFound
	}
	if si.Status != models.SessionScheduled {
		return nil, fmt.Errorf("%w: only scheduled sessions can be cancelled", ErrInvalidTransition)
	}

	applied, err := l.store.CancelSession(si.ID, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel session: %w", err)
	}
	if !applied {
		return nil, fmt.Errorf("%w: session is no longer scheduled", ErrInvalidTransition)
	}
	return l.store.SessionInstanceByID(si.ID)
}

// CreateSingle creates one scheduled instance of a definition on a chosen
// date. Creating a date that already has an instance is idempotent: the
// existing instance is returned.
func (l *Lifecycle) CreateSingle(definitionID string, date time.Time, notes string, actor models.ActorContext) (*models.SessionInstance, error) {
	ts, err := l.store.TimetableSessionByID(definitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load timetable session: %w", err)
	}
	if ts == nil {
		return nil, ErrNotFound
	}
	if err := l.authorize(actor, ts.ClassID); err != nil {
		return nil, err
	}
	if ts.Status == models.TimetableCancelled {
		return nil, fmt.Errorf("%w: timetable session is cancelled", ErrInvalidTransition)
	}

	date = DateOf(date)
	createdBy := &actor.UserID
	if _, err := l.store.InsertScheduledInstance(ts.ID, date, notes, createdBy); err != nil {
		return nil, fmt.Errorf("failed to create session instance: %w", err)
	}
	si, err := l.store.InstanceForDate(ts.ID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load session instance: %w", err)
	}
	if si == nil {
		return nil, ErrNotFound
	}
	return si, nil
}

// instanceForActor loads an instance and enforces the start/end ownership
// rule: admin, or a lecturer assigned to the class.
func (l *Lifecycle) instanceForActor(instanceID string, actor models.ActorContext) (*models.SessionInstance, error) {
	si, err := l.store.SessionInstanceByID(instanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session instance: %w", err)
	}
	if si == nil {
		return nil, ErrNotFound
	}
	if err := l.authorize(actor, si.ClassID); err != nil {
		return nil, err
	}
	return si, nil
}

func (l *Lifecycle) authorize(actor models.ActorContext, classID string) error {
	switch {
	case actor.IsAdmin():
		return nil
	case actor.IsLecturer():
		assigned, err := l.store.LecturerAssignedToClass(actor.UserID, classID)
		if err != nil {
			return fmt.Errorf("failed to check lecturer assignment: %w", err)
		}
		if !assigned {
			return ErrForbidden
		}
		return nil
	default:
		return ErrForbidden
	}
}

// newAttendanceCode draws a 6-character code from 0-9A-Z. Codes are
// globally unique across all instances; uniqueness is enforced by the
// store and collisions are retried by the caller.
func newAttendanceCode() string {
	b := make([]byte, attendanceCodeLength)
	for i := range b {
		b[i] = attendanceCodeAlphabet[rand.IntN(len(attendanceCodeAlphabet))]
	}
	return string(b)
}
