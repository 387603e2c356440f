package services

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
)

func newTestLifecycle(store *fakeStore, now time.Time) *Lifecycle {
	return NewLifecycle(store, fixedClock{now}, zap.NewNop())
}

// scheduledInstance builds a class + definition + scheduled instance and
// returns the store, the instance and the assigned lecturer actor.
func scheduledInstance(t *testing.T) (*fakeStore, *models.SessionInstance, models.ActorContext) {
	t.Helper()
	store := newFakeStore()
	class := store.addClass(models.ClassActive)
	ts := store.addTimetable(class.ID, models.Monday)
	store.assignLecturer(class.ID, "lect-1")

	if _, err := store.InsertScheduledInstance(ts.ID, DateOf(monday), "", nil); err != nil {
		t.Fatalf("failed to seed instance: %v", err)
	}
	si, _ := store.InstanceForDate(ts.ID, DateOf(monday))
	return store, si, models.ActorContext{UserID: "lect-1", Role: models.RoleLecturer}
}

func TestStartSession(t *testing.T) {
	store, si, lecturer := scheduledInstance(t)
	lc := newTestLifecycle(store, monday)

	started, err := lc.Start(si.ID, lecturer)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if started.Status != models.SessionInProgress {
		t.Fatalf("expected in_progress, got %s", started.Status)
	}
	if started.AttendanceCode == nil || len(*started.AttendanceCode) != attendanceCodeLength {
		t.Fatalf("expected a %d-character attendance code, got %v", attendanceCodeLength, started.AttendanceCode)
	}
	if started.ActualStartTime == nil || !started.ActualStartTime.Equal(monday) {
		t.Fatalf("expected actual start time %v, got %v", monday, started.ActualStartTime)
	}

	// Starting again must fail, not silently no-op.
	if _, err := lc.Start(si.ID, lecturer); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on double start, got %v", err)
	}
}

func TestStartAuthorization(t *testing.T) {
	store, si, _ := scheduledInstance(t)
	lc := newTestLifecycle(store, monday)

	stranger := models.ActorContext{UserID: "lect-2", Role: models.RoleLecturer}
	if _, err := lc.Start(si.ID, stranger); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unassigned lecturer, got %v", err)
	}

	student := models.ActorContext{UserID: "stud-1", Role: models.RoleStudent}
	if _, err := lc.Start(si.ID, student); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for student, got %v", err)
	}

	if _, err := lc.Start(si.ID, admin); err != nil {
		t.Fatalf("admin should be allowed to start: %v", err)
	}
}

func TestStartRetriesOnCodeCollision(t *testing.T) {
	store, si, lecturer := scheduledInstance(t)
	store.duplicateCodeTimes = 2

	lc := newTestLifecycle(store, monday)
	started, err := lc.Start(si.ID, lecturer)
	if err != nil {
		t.Fatalf("Start should retry past code collisions: %v", err)
	}
	if started.AttendanceCode == nil {
		t.Fatal("expected an attendance code after retries")
	}
}

func TestStartUnknownInstance(t *testing.T) {
	store, _, lecturer := scheduledInstance(t)
	lc := newTestLifecycle(store, monday)

	if _, err := lc.Start("missing", lecturer); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEndFinalizesAbsentees(t *testing.T) {
	store, si, lecturer := scheduledInstance(t)
	for _, s := range []string{"stud-1", "stud-2", "stud-3"} {
		store.enrollStudent(si.ClassID, s)
	}

	lc := newTestLifecycle(store, monday)
	if _, err := lc.Start(si.ID, lecturer); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// One student checks in before the session ends.
	ledger := NewAttendanceLedger(store, fixedClock{monday.Add(10 * time.Minute)}, zap.NewNop())
	studentActor := models.ActorContext{UserID: "stud-1", Role: models.RoleStudent}
	if _, err := ledger.SelfCheckIn(si.ID, "stud-1", studentActor, ""); err != nil {
		t.Fatalf("SelfCheckIn failed: %v", err)
	}

	ended, err := lc.End(si.ID, lecturer)
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if ended.Status != models.SessionCompleted {
		t.Fatalf("expected completed, got %s", ended.Status)
	}
	if ended.ActualEndTime == nil {
		t.Fatal("expected actual end time to be set")
	}

	records := store.instanceRecords(si.ID)
	if len(records) != 3 {
		t.Fatalf("expected one record per enrolled student, got %d", len(records))
	}
	present, absent := 0, 0
	for _, rec := range records {
		switch rec.Status {
		case models.Present:
			present++
			if rec.MarkedBy != models.MarkedByStudent {
				t.Fatalf("check-in record overwritten: marked_by %s", rec.MarkedBy)
			}
		case models.Absent:
			absent++
			if rec.MarkedBy != models.MarkedBySystem {
				t.Fatalf("expected system absence, got marked_by %s", rec.MarkedBy)
			}
			if rec.CheckInTime != nil {
				t.Fatal("system absence must have a null check-in time")
			}
		}
	}
	if present != 1 || absent != 2 {
		t.Fatalf("expected 1 present / 2 absent, got %d / %d", present, absent)
	}

	// A second End must not double-fire the finalization.
	if _, err := lc.End(si.ID, lecturer); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on double end, got %v", err)
	}
	if got := len(store.instanceRecords(si.ID)); got != 3 {
		t.Fatalf("finalization fired twice: %d records", got)
	}
}

func TestEndRequiresInProgress(t *testing.T) {
	store, si, lecturer := scheduledInstance(t)
	lc := newTestLifecycle(store, monday)

	if _, err := lc.End(si.ID, lecturer); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition ending a scheduled session, got %v", err)
	}
}

func TestCancelSession(t *testing.T) {
	store, si, lecturer := scheduledInstance(t)
	lc := newTestLifecycle(store, monday)

	if _, err := lc.Cancel(si.ID, lecturer); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for lecturer cancel, got %v", err)
	}

	cancelled, err := lc.Cancel(si.ID, admin)
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if cancelled.Status != models.SessionCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}

	// Cancelled is terminal.
	if _, err := lc.Start(si.ID, admin); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition starting a cancelled session, got %v", err)
	}
}

func TestCancelOnlyFromScheduled(t *testing.T) {
	store, si, lecturer := scheduledInstance(t)
	lc := newTestLifecycle(store, monday)

	if _, err := lc.Start(si.ID, lecturer); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := lc.Cancel(si.ID, admin); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition cancelling an in-progress session, got %v", err)
	}
}

func TestCreateSingleIsIdempotent(t *testing.T) {
	store := newFakeStore()
	class := store.addClass(models.ClassActive)
	ts := store.addTimetable(class.ID, models.Monday)
	store.assignLecturer(class.ID, "lect-1")
	lecturer := models.ActorContext{UserID: "lect-1", Role: models.RoleLecturer}

	lc := newTestLifecycle(store, monday)

	first, err := lc.CreateSingle(ts.ID, monday, "makeup session", lecturer)
	if err != nil {
		t.Fatalf("CreateSingle failed: %v", err)
	}
	second, err := lc.CreateSingle(ts.ID, monday, "makeup session", lecturer)
	if err != nil {
		t.Fatalf("repeat CreateSingle failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same instance, got %s and %s", first.ID, second.ID)
	}
	if len(store.instances) != 1 {
		t.Fatalf("expected 1 instance, got %d", len(store.instances))
	}
}

func TestCreateSingleRejectsCancelledDefinition(t *testing.T) {
	store := newFakeStore()
	class := store.addClass(models.ClassActive)
	ts := store.addTimetable(class.ID, models.Monday)
	ts.Status = models.TimetableCancelled

	lc := newTestLifecycle(store, monday)
	if _, err := lc.CreateSingle(ts.ID, monday, "", admin); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
