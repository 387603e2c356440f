package services

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
)

// monday is a known Monday used across materializer tests.
var monday = time.Date(2025, time.March, 3, 12, 30, 0, 0, time.UTC)

var admin = models.ActorContext{UserID: "admin-1", Role: models.RoleAdmin}

func newTestMaterializer(store *fakeStore) *Materializer {
	return NewMaterializer(store, fixedClock{monday}, zap.NewNop())
}

func TestEnsureInstancesForDateIsIdempotent(t *testing.T) {
	store := newFakeStore()
	class := store.addClass(models.ClassActive)
	ts := store.addTimetable(class.ID, models.Monday)

	m := newTestMaterializer(store)

	created, err := m.EnsureInstancesForDate(monday)
	if err != nil {
		t.Fatalf("EnsureInstancesForDate failed: %v", err)
	}
	if created != 1 {
		t.Fatalf("expected 1 instance created, got %d", created)
	}

	for i := 0; i < 3; i++ {
		created, err = m.EnsureInstancesForDate(monday)
		if err != nil {
			t.Fatalf("repeat call %d failed: %v", i, err)
		}
		if created != 0 {
			t.Fatalf("repeat call %d created %d instances, want 0", i, created)
		}
	}

	if len(store.instances) != 1 {
		t.Fatalf("expected exactly 1 instance, got %d", len(store.instances))
	}
	si, _ := store.InstanceForDate(ts.ID, DateOf(monday))
	if si == nil || si.Status != models.SessionScheduled {
		t.Fatalf("expected a scheduled instance for the definition, got %+v", si)
	}
}

func TestEnsureInstancesSkipsIneligibleDefinitions(t *testing.T) {
	store := newFakeStore()

	active := store.addClass(models.ClassActive)
	inactive := store.addClass(models.ClassInactive)

	store.addTimetable(active.ID, models.Monday) // eligible
	store.addTimetable(active.ID, models.Friday) // wrong weekday

	cancelled := store.addTimetable(active.ID, models.Monday)
	cancelled.Status = models.TimetableCancelled

	store.addTimetable(inactive.ID, models.Monday) // inactive class

	m := newTestMaterializer(store)
	created, err := m.EnsureInstancesForDate(monday)
	if err != nil {
		t.Fatalf("EnsureInstancesForDate failed: %v", err)
	}
	if created != 1 {
		t.Fatalf("expected only the eligible definition to materialize, created %d", created)
	}
}

func TestEnsureInstancesHonorsRecurrenceWindow(t *testing.T) {
	store := newFakeStore()
	class := store.addClass(models.ClassActive)
	ts := store.addTimetable(class.ID, models.Monday)

	windowEnd := DateOf(monday).AddDate(0, 0, -7)
	ts.RecurEnd = &windowEnd

	m := newTestMaterializer(store)
	created, err := m.EnsureInstancesForDate(monday)
	if err != nil {
		t.Fatalf("EnsureInstancesForDate failed: %v", err)
	}
	if created != 0 {
		t.Fatalf("definition outside its recurrence window materialized %d instances", created)
	}
}

func TestEnsureInstancesPropagatesInsertFailures(t *testing.T) {
	store := newFakeStore()
	class := store.addClass(models.ClassActive)
	store.addTimetable(class.ID, models.Monday)
	store.failInsertInstance = true

	m := newTestMaterializer(store)
	if _, err := m.EnsureInstancesForDate(monday); err == nil {
		t.Fatal("expected storage failure to propagate")
	}
}

func TestEnsureTodaySwallowsFailures(t *testing.T) {
	store := newFakeStore()
	store.failListDefinitions = true

	m := newTestMaterializer(store)
	// Best-effort: must not panic and must not leave partial state.
	m.EnsureToday()

	if len(store.instances) != 0 {
		t.Fatalf("expected no instances after failed materialization, got %d", len(store.instances))
	}
}

func TestGenerateInstancesForRange(t *testing.T) {
	store := newFakeStore()
	class := store.addClass(models.ClassActive)
	ts := store.addTimetable(class.ID, models.Monday)

	m := newTestMaterializer(store)

	start := DateOf(monday)
	end := start.AddDate(0, 0, 27) // four Mondays

	created, err := m.GenerateInstancesForRange(ts.ID, start, end, admin)
	if err != nil {
		t.Fatalf("GenerateInstancesForRange failed: %v", err)
	}
	if created != 4 {
		t.Fatalf("expected 4 instances over four weeks, got %d", created)
	}

	// Re-running the same range creates nothing new.
	created, err = m.GenerateInstancesForRange(ts.ID, start, end, admin)
	if err != nil {
		t.Fatalf("second GenerateInstancesForRange failed: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected idempotent re-run, created %d", created)
	}
	if len(store.instances) != 4 {
		t.Fatalf("expected 4 instances total, got %d", len(store.instances))
	}
}

func TestGenerateInstancesForRangeValidation(t *testing.T) {
	store := newFakeStore()
	class := store.addClass(models.ClassActive)
	ts := store.addTimetable(class.ID, models.Monday)

	m := newTestMaterializer(store)
	start := DateOf(monday)

	lecturer := models.ActorContext{UserID: "lect-1", Role: models.RoleLecturer}
	if _, err := m.GenerateInstancesForRange(ts.ID, start, start, lecturer); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}

	if _, err := m.GenerateInstancesForRange("missing", start, start, admin); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown definition, got %v", err)
	}

	if _, err := m.GenerateInstancesForRange(ts.ID, start, start.AddDate(0, 0, -1), admin); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for inverted range, got %v", err)
	}

	ts.Status = models.TimetableCancelled
	if _, err := m.GenerateInstancesForRange(ts.ID, start, start, admin); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for cancelled definition, got %v", err)
	}
}
