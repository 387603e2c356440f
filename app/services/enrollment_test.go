package services

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
)

func newTestEnrollment(store *fakeStore) *EnrollmentService {
	return NewEnrollmentService(store, fixedClock{monday}, zap.NewNop())
}

func TestEnrollmentRequest(t *testing.T) {
	store := newFakeStore()
	class := store.addClass(models.ClassActive)
	svc := newTestEnrollment(store)
	student := models.ActorContext{UserID: "stud-1", Role: models.RoleStudent}

	if err := svc.Request(class.ID, "joining late", student); err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	// A second request while one is pending is an idempotent success.
	if err := svc.Request(class.ID, "still joining", student); err != nil {
		t.Fatalf("repeat Request failed: %v", err)
	}
	if len(store.requests) != 1 {
		t.Fatalf("expected a single pending request, got %d", len(store.requests))
	}
}

func TestEnrollmentRequestGates(t *testing.T) {
	store := newFakeStore()
	active := store.addClass(models.ClassActive)
	inactive := store.addClass(models.ClassInactive)
	store.enrollStudent(active.ID, "stud-2")

	svc := newTestEnrollment(store)

	lect := models.ActorContext{UserID: "lect-1", Role: models.RoleLecturer}
	if err := svc.Request(active.ID, "", lect); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-student, got %v", err)
	}

	student := models.ActorContext{UserID: "stud-1", Role: models.RoleStudent}
	if err := svc.Request("missing", "", student); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown class, got %v", err)
	}
	if err := svc.Request(inactive.ID, "", student); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for inactive class, got %v", err)
	}

	enrolled := models.ActorContext{UserID: "stud-2", Role: models.RoleStudent}
	if err := svc.Request(active.ID, "", enrolled); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for already-enrolled student, got %v", err)
	}
}

func TestApproveEnrollsStudent(t *testing.T) {
	store := newFakeStore()
	class := store.addClass(models.ClassActive)
	req := store.addRequest("stud-1", class.ID)

	svc := newTestEnrollment(store)
	if err := svc.Approve(req.ID, admin); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	if req.Status != models.RequestApproved {
		t.Fatalf("expected approved request, got %s", req.Status)
	}
	if req.ProcessedBy == nil || *req.ProcessedBy != admin.UserID {
		t.Fatalf("expected processed_by %s, got %v", admin.UserID, req.ProcessedBy)
	}
	enrolled, _ := store.StudentEnrolled("stud-1", class.ID)
	if !enrolled {
		t.Fatal("approval must enroll the student")
	}

	// The request is resolved exactly once.
	if err := svc.Approve(req.ID, admin); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on re-approve, got %v", err)
	}
}

func TestApproveFailureLeavesNothingApplied(t *testing.T) {
	store := newFakeStore()
	class := store.addClass(models.ClassActive)
	req := store.addRequest("stud-1", class.ID)
	store.failApprove = true

	svc := newTestEnrollment(store)
	if err := svc.Approve(req.ID, admin); err == nil {
		t.Fatal("expected approval to fail")
	}

	if req.Status != models.RequestPending {
		t.Fatalf("failed approval must leave the request pending, got %s", req.Status)
	}
	enrolled, _ := store.StudentEnrolled("stud-1", class.ID)
	if enrolled {
		t.Fatal("failed approval must not enroll the student")
	}
}

func TestApprovePermissionsAndMissing(t *testing.T) {
	store := newFakeStore()
	class := store.addClass(models.ClassActive)
	req := store.addRequest("stud-1", class.ID)

	svc := newTestEnrollment(store)

	lect := models.ActorContext{UserID: "lect-1", Role: models.RoleLecturer}
	if err := svc.Approve(req.ID, lect); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}
	if err := svc.Approve("missing", admin); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReject(t *testing.T) {
	store := newFakeStore()
	class := store.addClass(models.ClassActive)
	req := store.addRequest("stud-1", class.ID)

	svc := newTestEnrollment(store)
	if err := svc.Reject(req.ID, admin); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if req.Status != models.RequestRejected {
		t.Fatalf("expected rejected, got %s", req.Status)
	}
	enrolled, _ := store.StudentEnrolled("stud-1", class.ID)
	if enrolled {
		t.Fatal("rejection must not enroll the student")
	}

	if err := svc.Reject(req.ID, admin); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on re-reject, got %v", err)
	}

	// A rejected request does not block a fresh one.
	student := models.ActorContext{UserID: "stud-1", Role: models.RoleStudent}
	if err := svc.Request(class.ID, "trying again", student); err != nil {
		t.Fatalf("re-request after rejection failed: %v", err)
	}
}
