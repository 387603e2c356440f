package services

import (
	"fmt"
	"time"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/database"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
)

// fakeStore is an in-memory stand-in for the SQL repositories. It mimics
// the contracts the real store provides: unique (definition, date)
// instances, conditional state transitions, attendance upserts keyed on
// (instance, student), and transactional enrollment approval.
type fakeStore struct {
	nextID int

	classes    map[string]*models.Class
	lecturers  map[string]map[string]bool           // classID -> lecturerID
	timetables map[string]*models.TimetableSession   // id -> definition
	instances  map[string]*models.SessionInstance    // id -> instance
	byDefDate  map[string]string                     // defID|date -> instanceID
	attendance map[string]*models.AttendanceRecord   // instanceID|studentID -> record
	enrolled   map[string]map[string]models.EnrollmentStatus // classID -> studentID -> status
	requests   map[string]*models.EnrollmentRequest
	usedCodes  map[string]bool
	logs       []models.SessionLog

	// Failure injection.
	failListDefinitions bool
	failInsertInstance  bool
	failApprove         bool
	duplicateCodeTimes  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		classes:    make(map[string]*models.Class),
		lecturers:  make(map[string]map[string]bool),
		timetables: make(map[string]*models.TimetableSession),
		instances:  make(map[string]*models.SessionInstance),
		byDefDate:  make(map[string]string),
		attendance: make(map[string]*models.AttendanceRecord),
		enrolled:   make(map[string]map[string]models.EnrollmentStatus),
		requests:   make(map[string]*models.EnrollmentRequest),
		usedCodes:  make(map[string]bool),
	}
}

func (f *fakeStore) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func dateKey(d time.Time) string { return d.Format("2006-01-02") }

func pairKey(a, b string) string { return a + "|" + b }

// Fixture builders.

func (f *fakeStore) addClass(status models.ClassStatus) *models.Class {
	c := &models.Class{ID: f.id("class"), Code: "CS101", Name: "Intro", Status: status}
	f.classes[c.ID] = c
	return c
}

func (f *fakeStore) assignLecturer(classID, lecturerID string) {
	if f.lecturers[classID] == nil {
		f.lecturers[classID] = make(map[string]bool)
	}
	f.lecturers[classID][lecturerID] = true
}

func (f *fakeStore) addTimetable(classID string, day models.DayOfWeek) *models.TimetableSession {
	ts := &models.TimetableSession{
		ID:        f.id("ts"),
		ClassID:   classID,
		Title:     "Lecture",
		DayOfWeek: day,
		StartTime: "09:00",
		EndTime:   "10:00",
		Status:    models.TimetableActive,
	}
	f.timetables[ts.ID] = ts
	return ts
}

func (f *fakeStore) enrollStudent(classID, studentID string) {
	if f.enrolled[classID] == nil {
		f.enrolled[classID] = make(map[string]models.EnrollmentStatus)
	}
	f.enrolled[classID][studentID] = models.Enrolled
}

func (f *fakeStore) addRequest(studentID, classID string) *models.EnrollmentRequest {
	req := &models.EnrollmentRequest{
		ID:        f.id("req"),
		StudentID: studentID,
		ClassID:   classID,
		Status:    models.RequestPending,
	}
	f.requests[req.ID] = req
	return req
}

func (f *fakeStore) instanceRecords(instanceID string) []*models.AttendanceRecord {
	var out []*models.AttendanceRecord
	for _, rec := range f.attendance {
		if rec.SessionInstanceID == instanceID {
			out = append(out, rec)
		}
	}
	return out
}

// MaterializerStore / LifecycleStore.

func (f *fakeStore) ActiveTimetableSessionsForDay(day models.DayOfWeek) ([]*models.TimetableSession, error) {
	if f.failListDefinitions {
		return nil, fmt.Errorf("injected storage failure")
	}
	var out []*models.TimetableSession
	for _, ts := range f.timetables {
		class := f.classes[ts.ClassID]
		if class == nil || class.Status != models.ClassActive {
			continue
		}
		if ts.Status == models.TimetableCancelled || ts.DayOfWeek != day {
			continue
		}
		out = append(out, ts)
	}
	return out, nil
}

func (f *fakeStore) TimetableSessionByID(id string) (*models.TimetableSession, error) {
	return f.timetables[id], nil
}

func (f *fakeStore) InsertScheduledInstance(timetableSessionID string, date time.Time, notes string, createdBy *string) (bool, error) {
	if f.failInsertInstance {
		return false, fmt.Errorf("injected storage failure")
	}
	key := pairKey(timetableSessionID, dateKey(date))
	if _, exists := f.byDefDate[key]; exists {
		return false, nil
	}
	si := &models.SessionInstance{
		ID:                 f.id("si"),
		TimetableSessionID: timetableSessionID,
		SessionDate:        date,
		Status:             models.SessionScheduled,
		Notes:              notes,
		CreatedBy:          createdBy,
	}
	if ts := f.timetables[timetableSessionID]; ts != nil {
		si.ClassID = ts.ClassID
	}
	f.instances[si.ID] = si
	f.byDefDate[key] = si.ID
	return true, nil
}

func (f *fakeStore) InstanceForDate(timetableSessionID string, date time.Time) (*models.SessionInstance, error) {
	id, ok := f.byDefDate[pairKey(timetableSessionID, dateKey(date))]
	if !ok {
		return nil, nil
	}
	return f.instances[id], nil
}

func (f *fakeStore) SessionInstanceByID(id string) (*models.SessionInstance, error) {
	return f.instances[id], nil
}

func (f *fakeStore) LecturerAssignedToClass(lecturerID, classID string) (bool, error) {
	return f.lecturers[classID][lecturerID], nil
}

func (f *fakeStore) BeginSession(id, code string, at time.Time, actorID string) (bool, error) {
	si := f.instances[id]
	if si == nil || si.Status != models.SessionScheduled {
		return false, nil
	}
	if f.duplicateCodeTimes > 0 {
		f.duplicateCodeTimes--
		return false, database.ErrDuplicateAttendanceCode
	}
	if f.usedCodes[code] {
		return false, database.ErrDuplicateAttendanceCode
	}
	f.usedCodes[code] = true
	si.Status = models.SessionInProgress
	si.AttendanceCode = &code
	si.ActualStartTime = &at
	f.logs = append(f.logs, models.SessionLog{
		SessionInstanceID: id, Action: models.LogSessionStarted, PerformedBy: actorID,
	})
	return true, nil
}

func (f *fakeStore) FinishSession(id, classID string, at time.Time, actorID string) (bool, int64, error) {
	si := f.instances[id]
	if si == nil || si.Status != models.SessionInProgress {
		return false, 0, nil
	}
	si.Status = models.SessionCompleted
	si.ActualEndTime = &at

	var absentees int64
	for studentID, status := range f.enrolled[classID] {
		if status != models.Enrolled {
			continue
		}
		key := pairKey(id, studentID)
		if _, exists := f.attendance[key]; exists {
			continue
		}
		f.attendance[key] = &models.AttendanceRecord{
			ID:                f.id("ar"),
			SessionInstanceID: id,
			StudentID:         studentID,
			Status:            models.Absent,
			MarkedBy:          models.MarkedBySystem,
		}
		absentees++
	}
	f.logs = append(f.logs, models.SessionLog{
		SessionInstanceID: id, Action: models.LogSessionEnded, PerformedBy: actorID,
	})
	return true, absentees, nil
}

func (f *fakeStore) CancelSession(id, actorID string) (bool, error) {
	si := f.instances[id]
	if si == nil || si.Status != models.SessionScheduled {
		return false, nil
	}
	si.Status = models.SessionCancelled
	f.logs = append(f.logs, models.SessionLog{
		SessionInstanceID: id, Action: models.LogSessionCancelled, PerformedBy: actorID,
	})
	return true, nil
}

// AttendanceStore.

func (f *fakeStore) StudentEnrolled(studentID, classID string) (bool, error) {
	return f.enrolled[classID][studentID] == models.Enrolled, nil
}

func (f *fakeStore) UpsertAttendance(rec *models.AttendanceRecord) error {
	key := pairKey(rec.SessionInstanceID, rec.StudentID)
	if existing, ok := f.attendance[key]; ok {
		existing.Status = rec.Status
		existing.CheckInTime = rec.CheckInTime
		existing.Notes = rec.Notes
		existing.MarkedBy = rec.MarkedBy
		existing.RecognitionConfidence = rec.RecognitionConfidence
		*rec = *existing
		return nil
	}
	rec.ID = f.id("ar")
	stored := *rec
	f.attendance[key] = &stored
	return nil
}

// EnrollmentStore.

func (f *fakeStore) ClassByID(id string) (*models.Class, error) {
	return f.classes[id], nil
}

func (f *fakeStore) EnrollmentRequestByID(id string) (*models.EnrollmentRequest, error) {
	return f.requests[id], nil
}

func (f *fakeStore) CreateEnrollmentRequest(studentID, classID, reason string) (bool, error) {
	for _, req := range f.requests {
		if req.StudentID == studentID && req.ClassID == classID && req.Status == models.RequestPending {
			return false, nil
		}
	}
	req := &models.EnrollmentRequest{
		ID: f.id("req"), StudentID: studentID, ClassID: classID,
		Status: models.RequestPending, Reason: reason,
	}
	f.requests[req.ID] = req
	return true, nil
}

func (f *fakeStore) ApproveEnrollmentRequest(requestID, adminID string, at time.Time) (bool, error) {
	if f.failApprove {
		// Simulates a mid-transaction storage failure: nothing is applied.
		return false, fmt.Errorf("injected storage failure")
	}
	req := f.requests[requestID]
	if req == nil || req.Status != models.RequestPending {
		return false, nil
	}
	req.Status = models.RequestApproved
	req.ProcessedAt = &at
	req.ProcessedBy = &adminID
	f.enrollStudent(req.ClassID, req.StudentID)
	return true, nil
}

func (f *fakeStore) RejectEnrollmentRequest(requestID, adminID string, at time.Time) (bool, error) {
	req := f.requests[requestID]
	if req == nil || req.Status != models.RequestPending {
		return false, nil
	}
	req.Status = models.RequestRejected
	req.ProcessedAt = &at
	req.ProcessedBy = &adminID
	return true, nil
}

// fixedClock pins "now" for deterministic tests.
type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }
