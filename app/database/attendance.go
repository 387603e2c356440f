package database

import (
	"fmt"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
)

// UpsertAttendance writes the single outcome for (session instance,
// student). All four writers go through this statement; the unique pair
// constraint plus DO UPDATE makes concurrent writes converge on one row
// with last-write-wins field values.
func (db *DB) UpsertAttendance(rec *models.AttendanceRecord) error {
	query := `INSERT INTO attendance_records
		(session_instance_id, student_id, status, check_in_time, notes, marked_by, recognition_confidence)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT ON CONSTRAINT uniq_attendance_per_student
		DO UPDATE SET status = EXCLUDED.status,
		              check_in_time = EXCLUDED.check_in_time,
		              notes = EXCLUDED.notes,
		              marked_by = EXCLUDED.marked_by,
		              recognition_confidence = EXCLUDED.recognition_confidence,
		              updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := db.QueryRow(query,
		rec.SessionInstanceID, rec.StudentID, rec.Status, rec.CheckInTime,
		rec.Notes, rec.MarkedBy, rec.RecognitionConfidence,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert attendance record: %w", err)
	}
	return nil
}

// AttendanceForInstance returns the records for a session instance with
// student identity attached, ordered for display.
func (db *DB) AttendanceForInstance(instanceID string) ([]*models.AttendanceRecord, error) {
	query := `SELECT ar.id, ar.session_instance_id, ar.student_id, ar.status,
			ar.check_in_time, ar.notes, ar.marked_by, ar.recognition_confidence,
			ar.created_at, ar.updated_at,
			u.user_number, u.first_name, u.last_name, u.email
		FROM attendance_records ar
		JOIN users u ON ar.student_id = u.id
		WHERE ar.session_instance_id = $1
		ORDER BY ar.status, u.last_name, u.first_name`

	rows, err := db.Query(query, instanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.AttendanceRecord
	for rows.Next() {
		rec := &models.AttendanceRecord{Student: &models.User{}}
		err := rows.Scan(
			&rec.ID, &rec.SessionInstanceID, &rec.StudentID, &rec.Status,
			&rec.CheckInTime, &rec.Notes, &rec.MarkedBy, &rec.RecognitionConfidence,
			&rec.CreatedAt, &rec.UpdatedAt,
			&rec.Student.UserNumber, &rec.Student.FirstName, &rec.Student.LastName, &rec.Student.Email,
		)
		if err != nil {
			return nil, err
		}
		rec.Student.ID = rec.StudentID
		records = append(records, rec)
	}
	return records, rows.Err()
}

// AttendanceCount returns how many records exist for an instance.
func (db *DB) AttendanceCount(instanceID string) (int, error) {
	var n int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM attendance_records WHERE session_instance_id = $1`,
		instanceID,
	).Scan(&n)
	return n, err
}
