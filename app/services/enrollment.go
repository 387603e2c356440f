package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
)

// EnrollmentStore is the storage surface for enrollment self-service and
// admin resolution. ApproveEnrollmentRequest runs as a single transaction:
// request resolution and the enrollment upsert happen together or not at
// all.
type EnrollmentStore interface {
	ClassByID(id string) (*models.Class, error)
	EnrollmentRequestByID(id string) (*models.EnrollmentRequest, error)
	CreateEnrollmentRequest(studentID, classID, reason string) (bool, error)
	ApproveEnrollmentRequest(requestID, adminID string, at time.Time) (bool, error)
	RejectEnrollmentRequest(requestID, adminID string, at time.Time) (bool, error)
	StudentEnrolled(studentID, classID string) (bool, error)
}

type EnrollmentService struct {
	store EnrollmentStore
	clock Clock
	log   *zap.Logger
}

func NewEnrollmentService(store EnrollmentStore, clock Clock, log *zap.Logger) *EnrollmentService {
	return &EnrollmentService{store: store, clock: clock, log: log}
}

// Request files a pending enrollment request for the calling student.
// Filing again while one is pending is an idempotent success.
func (e *EnrollmentService) Request(classID, reason string, actor models.ActorContext) error {
	if !actor.IsStudent() {
		return ErrForbidden
	}

	class, err := e.store.ClassByID(classID)
	if err != nil {
		return fmt.Errorf("failed to load class: %w", err)
	}
	if class == nil || class.Status != models.ClassActive {
		return ErrNotFound
	}

	enrolled, err := e.store.StudentEnrolled(actor.UserID, classID)
	if err != nil {
		return fmt.Errorf("failed to check enrollment: %w", err)
	}
	if enrolled {
		return fmt.Errorf("%w: already enrolled", ErrConflict)
	}

	if _, err := e.store.CreateEnrollmentRequest(actor.UserID, classID, reason); err != nil {
		return fmt.Errorf("failed to create enrollment request: %w", err)
	}
	return nil
}

// Approve resolves a pending request and enrolls the student atomically.
// A request that is no longer pending fails with ErrInvalidTransition and
// nothing changes.
func (e *EnrollmentService) Approve(requestID string, actor models.ActorContext) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	req, err := e.store.EnrollmentRequestByID(requestID)
	if err != nil {
		return fmt.Errorf("failed to load enrollment request: %w", err)
	}
	if req == nil {
		return ErrNotFound
	}

	applied, err := e.store.ApproveEnrollmentRequest(requestID, actor.UserID, e.clock.Now())
	if err != nil {
		return fmt.Errorf("failed to approve enrollment request: %w", err)
	}
	if !applied {
		return fmt.Errorf("%w: request already processed", ErrInvalidTransition)
	}
	e.log.Info("enrollment request approved",
		zap.String("user_id", actor.UserID),
		zap.String("student_id", req.StudentID),
		zap.String("class_id", req.ClassID))
	return nil
}

// Reject resolves a pending request with no enrollment side effect.
func (e *EnrollmentService) Reject(requestID string, actor models.ActorContext) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	req, err := e.store.EnrollmentRequestByID(requestID)
	if err != nil {
		return fmt.Errorf("failed to load enrollment request: %w", err)
	}
	if req == nil {
		return ErrNotFound
	}

	applied, err := e.store.RejectEnrollmentRequest(requestID, actor.UserID, e.clock.Now())
	if err != nil {
		return fmt.Errorf("failed to reject enrollment request: %w", err)
	}
	if !applied {
		return fmt.Errorf("%w: request already processed", ErrInvalidTransition)
	}
	return nil
}
