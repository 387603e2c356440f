package database

import (
	"database/sql"
	"fmt"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
)

const timetableColumns = `ts.id, ts.class_id, ts.title, ts.day_of_week,
	to_char(ts.start_time, 'HH24:MI'), to_char(ts.end_time, 'HH24:MI'),
	ts.room_location, ts.session_type, ts.instructor, ts.recur_start, ts.recur_end,
	ts.status, ts.created_by, ts.created_at, ts.updated_at`

func scanTimetableSession(row interface{ Scan(...any) error }) (*models.TimetableSession, error) {
	ts := &models.TimetableSession{}
	err := row.Scan(
		&ts.ID, &ts.ClassID, &ts.Title, &ts.DayOfWeek,
		&ts.StartTime, &ts.EndTime,
		&ts.RoomLocation, &ts.SessionType, &ts.Instructor, &ts.RecurStart, &ts.RecurEnd,
		&ts.Status, &ts.CreatedBy, &ts.CreatedAt, &ts.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return ts, nil
}

// CreateTimetableSession inserts a recurring slot definition.
func (db *DB) CreateTimetableSession(ts *models.TimetableSession) error {
	query := `INSERT INTO timetable_sessions
		(class_id, title, day_of_week, start_time, end_time, room_location,
		 session_type, instructor, recur_start, recur_end, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, status, created_at, updated_at`

	err := db.QueryRow(query,
		ts.ClassID, ts.Title, ts.DayOfWeek, ts.StartTime, ts.EndTime, ts.RoomLocation,
		ts.SessionType, ts.Instructor, ts.RecurStart, ts.RecurEnd, ts.CreatedBy,
	).Scan(&ts.ID, &ts.Status, &ts.CreatedAt, &ts.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create timetable session: %w", err)
	}
	return nil
}

func (db *DB) UpdateTimetableSession(ts *models.TimetableSession) (bool, error) {
	query := `UPDATE timetable_sessions
		SET title = $2, day_of_week = $3, start_time = $4, end_time = $5,
		    room_location = $6, session_type = $7, instructor = $8,
		    recur_start = $9, recur_end = $10, updated_at = NOW()
		WHERE id = $1`

	res, err := db.Exec(query,
		ts.ID, ts.Title, ts.DayOfWeek, ts.StartTime, ts.EndTime,
		ts.RoomLocation, ts.SessionType, ts.Instructor, ts.RecurStart, ts.RecurEnd,
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// CancelTimetableSession soft-disables a definition so it stops generating
// instances. Rows are never hard-deleted; attendance history may reference
// them.
func (db *DB) CancelTimetableSession(id string) (bool, error) {
	res, err := db.Exec(
		`UPDATE timetable_sessions SET status = 'cancelled', updated_at = NOW() WHERE id = $1 AND status = 'active'`,
		id,
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (db *DB) TimetableSessionByID(id string) (*models.TimetableSession, error) {
	query := `SELECT ` + timetableColumns + `, c.code, c.name
		FROM timetable_sessions ts
		JOIN classes c ON ts.class_id = c.id
		WHERE ts.id = $1`

	ts := &models.TimetableSession{}
	err := db.QueryRow(query, id).Scan(
		&ts.ID, &ts.ClassID, &ts.Title, &ts.DayOfWeek,
		&ts.StartTime, &ts.EndTime,
		&ts.RoomLocation, &ts.SessionType, &ts.Instructor, &ts.RecurStart, &ts.RecurEnd,
		&ts.Status, &ts.CreatedBy, &ts.CreatedAt, &ts.UpdatedAt,
		&ts.ClassCode, &ts.ClassName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ts, nil
}

// ActiveTimetableSessionsForDay returns definitions eligible for
// materialization: active class, not cancelled, weekday match.
func (db *DB) ActiveTimetableSessionsForDay(day models.DayOfWeek) ([]*models.TimetableSession, error) {
	query := `SELECT ` + timetableColumns + `
		FROM timetable_sessions ts
		JOIN classes c ON ts.class_id = c.id
		WHERE c.status = 'active'
		  AND ts.status <> 'cancelled'
		  AND ts.day_of_week = $1
		ORDER BY ts.start_time`

	rows, err := db.Query(query, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*models.TimetableSession
	for rows.Next() {
		ts, err := scanTimetableSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, ts)
	}
	return sessions, rows.Err()
}

func (db *DB) TimetableSessionsByClass(classID string) ([]*models.TimetableSession, error) {
	query := `SELECT ` + timetableColumns + `
		FROM timetable_sessions ts
		WHERE ts.class_id = $1 AND ts.status = 'active'
		ORDER BY ts.day_of_week, ts.start_time`

	rows, err := db.Query(query, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*models.TimetableSession
	for rows.Next() {
		ts, err := scanTimetableSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, ts)
	}
	return sessions, rows.Err()
}
