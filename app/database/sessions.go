package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
)

const instanceColumns = `si.id, si.timetable_session_id, si.session_date, si.status,
	si.actual_start_time, si.actual_end_time, si.attendance_code, si.notes,
	si.created_by, si.created_at, si.updated_at,
	ts.title, to_char(ts.start_time, 'HH24:MI'), to_char(ts.end_time, 'HH24:MI'),
	ts.room_location, c.id, c.code, c.name`

func scanSessionInstance(row interface{ Scan(...any) error }) (*models.SessionInstance, error) {
	si := &models.SessionInstance{}
	err := row.Scan(
		&si.ID, &si.TimetableSessionID, &si.SessionDate, &si.Status,
		&si.ActualStartTime, &si.ActualEndTime, &si.AttendanceCode, &si.Notes,
		&si.CreatedBy, &si.CreatedAt, &si.UpdatedAt,
		&si.Title, &si.StartTime, &si.EndTime,
		&si.RoomLocation, &si.ClassID, &si.ClassCode, &si.ClassName,
	)
	if err != nil {
		return nil, err
	}
	return si, nil
}

func (db *DB) SessionInstanceByID(id string) (*models.SessionInstance, error) {
	query := `SELECT ` + instanceColumns + `
		FROM session_instances si
		JOIN timetable_sessions ts ON si.timetable_session_id = ts.id
		JOIN classes c ON ts.class_id = c.id
		WHERE si.id = $1`

	si, err := scanSessionInstance(db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return si, nil
}

// InsertScheduledInstance creates a scheduled instance for (definition, date).
// The unique pair constraint makes concurrent callers converge on one row;
// a conflicting insert reports created=false and is not an error.
func (db *DB) InsertScheduledInstance(timetableSessionID string, date time.Time, notes string, createdBy *string) (bool, error) {
	query := `INSERT INTO session_instances (timetable_session_id, session_date, status, notes, created_by)
		VALUES ($1, $2, 'scheduled', $3, $4)
		ON CONFLICT ON CONSTRAINT uniq_instance_per_day DO NOTHING`

	res, err := db.Exec(query, timetableSessionID, date, notes, createdBy)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (db *DB) InstanceForDate(timetableSessionID string, date time.Time) (*models.SessionInstance, error) {
	query := `SELECT ` + instanceColumns + `
		FROM session_instances si
		JOIN timetable_sessions ts ON si.timetable_session_id = ts.id
		JOIN classes c ON ts.class_id = c.id
		WHERE si.timetable_session_id = $1 AND si.session_date = $2`

	si, err := scanSessionInstance(db.QueryRow(query, timetableSessionID, date))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return si, nil
}

// BeginSession moves an instance from scheduled to in_progress, stamps the
// actual start time, stores the attendance code and writes the audit log,
// all in one transaction. It reports applied=false when the instance was
// not in the scheduled state (the precondition is re-evaluated by the
// conditional update, so concurrent starts resolve to exactly one winner).
// A code collision surfaces as ErrDuplicateAttendanceCode for the caller
// to retry with a fresh code.
func (db *DB) BeginSession(id, code string, at time.Time, actorID string) (bool, error) {
	applied := false
	err := db.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(
			`UPDATE session_instances
			 SET status = 'in_progress', attendance_code = $2, actual_start_time = $3, updated_at = NOW()
			 WHERE id = $1 AND status = 'scheduled'`,
			id, code, at,
		)
		if err != nil {
			if isUniqueViolation(err, "uniq_attendance_code") {
				return ErrDuplicateAttendanceCode
			}
			return err
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return nil
		}
		applied = true

		details, _ := json.Marshal(map[string]string{
			"attendance_code": code,
			"start_time":      at.Format(time.RFC3339),
		})
		return insertSessionLog(tx, id, models.LogSessionStarted, actorID, string(details))
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

// FinishSession moves an instance from in_progress to completed and fills
// in an absent record for every currently enrolled student without one.
// The enrollment snapshot is taken at end time, and the conflict-ignore
// insert never overwrites a record written moments before the session
// ended.
func (db *DB) FinishSession(id, classID string, at time.Time, actorID string) (bool, int64, error) {
	applied := false
	var absentees int64
	err := db.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(
			`UPDATE session_instances
			 SET status = 'completed', actual_end_time = $2, updated_at = NOW()
			 WHERE id = $1 AND status = 'in_progress'`,
			id, at,
		)
		if err != nil {
			return err
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return nil
		}
		applied = true

		res, err = tx.Exec(
			`INSERT INTO attendance_records
				(session_instance_id, student_id, status, check_in_time, marked_by)
			 SELECT $1, se.student_id, 'absent', NULL, 'system'
			 FROM student_enrollments se
			 WHERE se.class_id = $2 AND se.status = 'enrolled'
			 ON CONFLICT ON CONSTRAINT uniq_attendance_per_student DO NOTHING`,
			id, classID,
		)
		if err != nil {
			return err
		}
		absentees, _ = res.RowsAffected()

		details, _ := json.Marshal(map[string]any{
			"end_time":        at.Format(time.RFC3339),
			"absentees_added": absentees,
		})
		return insertSessionLog(tx, id, models.LogSessionEnded, actorID, string(details))
	})
	if err != nil {
		return false, 0, err
	}
	return applied, absentees, nil
}

// CancelSession moves an instance from scheduled to cancelled.
func (db *DB) CancelSession(id string, actorID string) (bool, error) {
	applied := false
	err := db.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(
			`UPDATE session_instances SET status = 'cancelled', updated_at = NOW()
			 WHERE id = $1 AND status = 'scheduled'`,
			id,
		)
		if err != nil {
			return err
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return nil
		}
		applied = true
		return insertSessionLog(tx, id, models.LogSessionCancelled, actorID, "{}")
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

func insertSessionLog(tx *sql.Tx, instanceID, action, performedBy, details string) error {
	_, err := tx.Exec(
		`INSERT INTO session_logs (session_instance_id, action, performed_by, details)
		 VALUES ($1, $2, $3, $4)`,
		instanceID, action, performedBy, details,
	)
	if err != nil {
		return fmt.Errorf("failed to write session log: %w", err)
	}
	return nil
}

// SessionInstancesByDate lists instances for one calendar date with
// attendance counts, optionally restricted to a lecturer's classes.
func (db *DB) SessionInstancesByDate(date time.Time, lecturerID string) ([]*models.SessionInstance, error) {
	query := `SELECT ` + instanceColumns + `,
		(SELECT COUNT(*) FROM attendance_records ar
		 WHERE ar.session_instance_id = si.id AND ar.status = 'present') AS present_count,
		(SELECT COUNT(*) FROM student_enrollments se
		 WHERE se.class_id = c.id AND se.status = 'enrolled') AS total_students
		FROM session_instances si
		JOIN timetable_sessions ts ON si.timetable_session_id = ts.id
		JOIN classes c ON ts.class_id = c.id
		WHERE si.session_date = $1`

	args := []any{date}
	if lecturerID != "" {
		query += ` AND EXISTS (SELECT 1 FROM class_lecturers cl
			WHERE cl.class_id = c.id AND cl.lecturer_id = $2)`
		args = append(args, lecturerID)
	}
	query += ` ORDER BY ts.start_time`

	return db.querySessionInstancesWithCounts(query, args...)
}

// SessionInstancesInRange lists instances between two dates, optionally
// filtered by status and restricted to a lecturer's classes.
func (db *DB) SessionInstancesInRange(lecturerID string, start, end time.Time, status models.SessionStatus) ([]*models.SessionInstance, error) {
	query := `SELECT ` + instanceColumns + `,
		(SELECT COUNT(*) FROM attendance_records ar
		 WHERE ar.session_instance_id = si.id AND ar.status = 'present') AS present_count,
		(SELECT COUNT(*) FROM student_enrollments se
		 WHERE se.class_id = c.id AND se.status = 'enrolled') AS total_students
		FROM session_instances si
		JOIN timetable_sessions ts ON si.timetable_session_id = ts.id
		JOIN classes c ON ts.class_id = c.id
		WHERE si.session_date BETWEEN $1 AND $2`

	args := []any{start, end}
	if lecturerID != "" {
		args = append(args, lecturerID)
		query += fmt.Sprintf(` AND EXISTS (SELECT 1 FROM class_lecturers cl
			WHERE cl.class_id = c.id AND cl.lecturer_id = $%d)`, len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(` AND si.status = $%d`, len(args))
	}
	query += ` ORDER BY si.session_date DESC, ts.start_time`

	return db.querySessionInstancesWithCounts(query, args...)
}

// InProgressSessionsForStudent lists today's in-progress instances for
// classes the student is enrolled in.
func (db *DB) InProgressSessionsForStudent(studentID string, date time.Time) ([]*models.SessionInstance, error) {
	query := `SELECT ` + instanceColumns + `
		FROM student_enrollments se
		JOIN classes c ON se.class_id = c.id
		JOIN timetable_sessions ts ON ts.class_id = c.id
		JOIN session_instances si ON si.timetable_session_id = ts.id AND si.session_date = $2
		WHERE se.student_id = $1
		  AND se.status = 'enrolled'
		  AND c.status = 'active'
		  AND si.status = 'in_progress'
		ORDER BY ts.start_time`

	rows, err := db.Query(query, studentID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var instances []*models.SessionInstance
	for rows.Next() {
		si, err := scanSessionInstance(rows)
		if err != nil {
			return nil, err
		}
		instances = append(instances, si)
	}
	return instances, rows.Err()
}

func (db *DB) querySessionInstancesWithCounts(query string, args ...any) ([]*models.SessionInstance, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var instances []*models.SessionInstance
	for rows.Next() {
		si := &models.SessionInstance{}
		err := rows.Scan(
			&si.ID, &si.TimetableSessionID, &si.SessionDate, &si.Status,
			&si.ActualStartTime, &si.ActualEndTime, &si.AttendanceCode, &si.Notes,
			&si.CreatedBy, &si.CreatedAt, &si.UpdatedAt,
			&si.Title, &si.StartTime, &si.EndTime,
			&si.RoomLocation, &si.ClassID, &si.ClassCode, &si.ClassName,
			&si.PresentCount, &si.TotalStudents,
		)
		if err != nil {
			return nil, err
		}
		instances = append(instances, si)
	}
	return instances, rows.Err()
}
