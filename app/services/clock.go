package services

import (
	"strings"
	"time"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
)

// Clock supplies "now" so session timing and materialization are testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekdayOf returns the lowercase day name used by timetable sessions.
func WeekdayOf(t time.Time) models.DayOfWeek {
	return models.DayOfWeek(strings.ToLower(t.Weekday().String()))
}
