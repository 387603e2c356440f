package database

import (
	"time"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
)

// StudentClassReport summarizes one student's attendance within one class.
type StudentClassReport struct {
	ClassID      string  `json:"class_id"`
	ClassCode    string  `json:"class_code"`
	ClassName    string  `json:"class_name"`
	Completed    int     `json:"completed_sessions"`
	Present      int     `json:"present"`
	Late         int     `json:"late"`
	Absent       int     `json:"absent"`
	AttendedRate float64 `json:"attended_rate"`
}

// StudentAttendanceReport aggregates a student's outcomes per enrolled
// class over completed sessions.
func (db *DB) StudentAttendanceReport(studentID string) ([]*StudentClassReport, error) {
	query := `SELECT c.id, c.code, c.name,
			COUNT(si.id) FILTER (WHERE si.status = 'completed') AS completed,
			COUNT(ar.id) FILTER (WHERE ar.status = 'present') AS present,
			COUNT(ar.id) FILTER (WHERE ar.status = 'late') AS late,
			COUNT(ar.id) FILTER (WHERE ar.status = 'absent') AS absent
		FROM student_enrollments se
		JOIN classes c ON se.class_id = c.id
		LEFT JOIN timetable_sessions ts ON ts.class_id = c.id
		LEFT JOIN session_instances si ON si.timetable_session_id = ts.id AND si.status = 'completed'
		LEFT JOIN attendance_records ar ON ar.session_instance_id = si.id AND ar.student_id = se.student_id
		WHERE se.student_id = $1 AND se.status = 'enrolled'
		GROUP BY c.id, c.code, c.name
		ORDER BY c.code`

	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*StudentClassReport
	for rows.Next() {
		r := &StudentClassReport{}
		if err := rows.Scan(&r.ClassID, &r.ClassCode, &r.ClassName,
			&r.Completed, &r.Present, &r.Late, &r.Absent); err != nil {
			return nil, err
		}
		if r.Completed > 0 {
			r.AttendedRate = float64(r.Present+r.Late) / float64(r.Completed) * 100
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// ClassSessionSummary is one session row in a class report, with counts.
type ClassSessionSummary struct {
	InstanceID   string               `json:"instance_id"`
	Title        string               `json:"title"`
	SessionDate  time.Time            `json:"session_date"`
	StartTime    string               `json:"start_time"`
	EndTime      string               `json:"end_time"`
	Status       models.SessionStatus `json:"status"`
	PresentCount int                  `json:"present_count"`
	LateCount    int                  `json:"late_count"`
	AbsentCount  int                  `json:"absent_count"`
}

// ClassAttendanceSummary lists a class's session instances in a date range
// with per-status counts.
func (db *DB) ClassAttendanceSummary(classID string, start, end time.Time) ([]*ClassSessionSummary, error) {
	query := `SELECT si.id, ts.title, si.session_date,
			to_char(ts.start_time, 'HH24:MI'), to_char(ts.end_time, 'HH24:MI'), si.status,
			COUNT(ar.id) FILTER (WHERE ar.status = 'present') AS present,
			COUNT(ar.id) FILTER (WHERE ar.status = 'late') AS late,
			COUNT(ar.id) FILTER (WHERE ar.status = 'absent') AS absent
		FROM session_instances si
		JOIN timetable_sessions ts ON si.timetable_session_id = ts.id
		LEFT JOIN attendance_records ar ON ar.session_instance_id = si.id
		WHERE ts.class_id = $1 AND si.session_date BETWEEN $2 AND $3
		GROUP BY si.id, ts.title, si.session_date, ts.start_time, ts.end_time, si.status
		ORDER BY si.session_date, ts.start_time`

	rows, err := db.Query(query, classID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*ClassSessionSummary
	for rows.Next() {
		s := &ClassSessionSummary{}
		if err := rows.Scan(&s.InstanceID, &s.Title, &s.SessionDate,
			&s.StartTime, &s.EndTime, &s.Status,
			&s.PresentCount, &s.LateCount, &s.AbsentCount); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// AttendanceExportRow is one line of the CSV attendance export.
type AttendanceExportRow struct {
	SessionDate time.Time
	Title       string
	ClassCode   string
	UserNumber  string
	FirstName   string
	LastName    string
	Status      models.AttendanceStatus
	CheckInTime *time.Time
	MarkedBy    models.MarkedBy
}

// AttendanceExport returns the flat per-record rows for a class in a date
// range, ready for the CSV exporter.
func (db *DB) AttendanceExport(classID string, start, end time.Time) ([]*AttendanceExportRow, error) {
	query := `SELECT si.session_date, ts.title, c.code,
			u.user_number, u.first_name, u.last_name,
			ar.status, ar.check_in_time, ar.marked_by
		FROM attendance_records ar
		JOIN session_instances si ON ar.session_instance_id = si.id
		JOIN timetable_sessions ts ON si.timetable_session_id = ts.id
		JOIN classes c ON ts.class_id = c.id
		JOIN users u ON ar.student_id = u.id
		WHERE c.id = $1 AND si.session_date BETWEEN $2 AND $3
		ORDER BY si.session_date, ts.start_time, u.last_name, u.first_name`

	rows, err := db.Query(query, classID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*AttendanceExportRow
	for rows.Next() {
		r := &AttendanceExportRow{}
		if err := rows.Scan(&r.SessionDate, &r.Title, &r.ClassCode,
			&r.UserNumber, &r.FirstName, &r.LastName,
			&r.Status, &r.CheckInTime, &r.MarkedBy); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
