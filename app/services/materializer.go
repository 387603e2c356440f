package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
)

// MaterializerStore is the storage surface the materializer needs.
type MaterializerStore interface {
	ActiveTimetableSessionsForDay(day models.DayOfWeek) ([]*models.TimetableSession, error)
	TimetableSessionByID(id string) (*models.TimetableSession, error)
	InsertScheduledInstance(timetableSessionID string, date time.Time, notes string, createdBy *string) (bool, error)
}

// Materializer derives concrete dated session instances from recurring
// timetable definitions. Every operation is idempotent: the unique
// (definition, date) constraint in the store makes repeat or concurrent
// runs converge on a single instance.
type Materializer struct {
	store MaterializerStore
	clock Clock
	log   *zap.Logger
}

func NewMaterializer(store MaterializerStore, clock Clock, log *zap.Logger) *Materializer {
	return &Materializer{store: store, clock: clock, log: log}
}

// EnsureInstancesForDate creates a scheduled instance for every active
// definition whose weekday matches date and whose recurrence window covers
// it. Returns how many instances were newly created.
func (m *Materializer) EnsureInstancesForDate(date time.Time) (int, error) {
	date = DateOf(date)

	defs, err := m.store.ActiveTimetableSessionsForDay(WeekdayOf(date))
	if err != nil {
		return 0, fmt.Errorf("failed to load timetable sessions: %w", err)
	}

	created := 0
	for _, ts := range defs {
		if !ts.CoversDate(date) {
			continue
		}
		ok, err := m.store.InsertScheduledInstance(ts.ID, date, "", nil)
		if err != nil {
			return created, fmt.Errorf("failed to materialize instance for %s on %s: %w",
				ts.ID, date.Format("2006-01-02"), err)
		}
		if ok {
			created++
		}
	}
	return created, nil
}

// EnsureToday is the best-effort variant handlers call opportunistically:
// failures are logged and swallowed so they never block a page.
func (m *Materializer) EnsureToday() {
	created, err := m.EnsureInstancesForDate(m.clock.Now())
	if err != nil {
		m.log.Warn("failed to materialize today's session instances", zap.Error(err))
		return
	}
	if created > 0 {
		m.log.Info("materialized session instances",
			zap.Int("created", created),
			zap.String("date", DateOf(m.clock.Now()).Format("2006-01-02")))
	}
}

// GenerateInstancesForRange batch-creates instances for one definition on
// every date in [start, end] that falls on its weekday, skipping dates
// that already have one. Admin-triggered.
func (m *Materializer) GenerateInstancesForRange(definitionID string, start, end time.Time, actor models.ActorContext) (int, error) {
	if !actor.IsAdmin() {
		return 0, ErrForbidden
	}

	start, end = DateOf(start), DateOf(end)
	if end.Before(start) {
		return 0, ErrInvalidRange
	}

	ts, err := m.store.TimetableSessionByID(definitionID)
	if err != nil {
		return 0, fmt.Errorf("failed to load timetable session: %w", err)
	}
	if ts == nil {
		return 0, ErrNotFound
	}
	if ts.Status == models.TimetableCancelled {
		return 0, fmt.Errorf("%w: timetable session is cancelled", ErrInvalidTransition)
	}

	created := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if WeekdayOf(d) != ts.DayOfWeek || !ts.CoversDate(d) {
			continue
		}
		ok, err := m.store.InsertScheduledInstance(ts.ID, d, "", nil)
		if err != nil {
			return created, fmt.Errorf("failed to materialize instance on %s: %w",
				d.Format("2006-01-02"), err)
		}
		if ok {
			created++
		}
	}
	return created, nil
}
