package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
)

// StudentEnrolled reports whether the student has an active enrollment in
// the class.
func (db *DB) StudentEnrolled(studentID, classID string) (bool, error) {
	var exists bool
	err := db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM student_enrollments
		 WHERE student_id = $1 AND class_id = $2 AND status = 'enrolled')`,
		studentID, classID,
	).Scan(&exists)
	return exists, err
}

// EnrolledStudents lists active enrollees of a class.
func (db *DB) EnrolledStudents(classID string) ([]*models.User, error) {
	query := `SELECT u.id, u.user_number, u.email, u.first_name, u.last_name, u.role, u.photo, u.is_active,
			u.created_at, u.updated_at
		FROM student_enrollments se
		JOIN users u ON se.student_id = u.id
		WHERE se.class_id = $1 AND se.status = 'enrolled'
		ORDER BY u.last_name, u.first_name`

	rows, err := db.Query(query, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.User
	for rows.Next() {
		u := &models.User{}
		err := rows.Scan(
			&u.ID, &u.UserNumber, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.Photo, &u.IsActive,
			&u.CreatedAt, &u.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		students = append(students, u)
	}
	return students, rows.Err()
}

// ClassesForStudent lists classes the student is actively enrolled in.
func (db *DB) ClassesForStudent(studentID string) ([]*models.Class, error) {
	query := `SELECT c.id, c.code, c.name, c.description, c.semester, c.year, c.status,
			c.created_at, c.updated_at
		FROM student_enrollments se
		JOIN classes c ON se.class_id = c.id
		WHERE se.student_id = $1 AND se.status = 'enrolled'
		ORDER BY c.code`

	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		c := &models.Class{}
		err := rows.Scan(
			&c.ID, &c.Code, &c.Name, &c.Description, &c.Semester, &c.Year, &c.Status,
			&c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// CreateEnrollmentRequest files a pending request. A second pending request
// for the same pair is absorbed by the partial unique index; created is
// false in that case.
func (db *DB) CreateEnrollmentRequest(studentID, classID, reason string) (bool, error) {
	query := `INSERT INTO enrollment_requests (student_id, class_id, reason)
		VALUES ($1, $2, $3)
		ON CONFLICT (student_id, class_id) WHERE status = 'pending' DO NOTHING`

	res, err := db.Exec(query, studentID, classID, reason)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (db *DB) EnrollmentRequestByID(id string) (*models.EnrollmentRequest, error) {
	query := `SELECT er.id, er.student_id, er.class_id, er.status, er.reason,
			er.created_at, er.processed_at, er.processed_by
		FROM enrollment_requests er
		WHERE er.id = $1`

	req := &models.EnrollmentRequest{}
	err := db.QueryRow(query, id).Scan(
		&req.ID, &req.StudentID, &req.ClassID, &req.Status, &req.Reason,
		&req.CreatedAt, &req.ProcessedAt, &req.ProcessedBy,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// PendingEnrollmentRequests lists unresolved requests oldest-first with
// student and class context for the admin queue.
func (db *DB) PendingEnrollmentRequests() ([]*models.EnrollmentRequest, error) {
	query := `SELECT er.id, er.student_id, er.class_id, er.status, er.reason,
			er.created_at, er.processed_at, er.processed_by,
			u.first_name || ' ' || u.last_name, c.code, c.name
		FROM enrollment_requests er
		JOIN users u ON er.student_id = u.id
		JOIN classes c ON er.class_id = c.id
		WHERE er.status = 'pending'
		ORDER BY er.created_at ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*models.EnrollmentRequest
	for rows.Next() {
		req := &models.EnrollmentRequest{}
		err := rows.Scan(
			&req.ID, &req.StudentID, &req.ClassID, &req.Status, &req.Reason,
			&req.CreatedAt, &req.ProcessedAt, &req.ProcessedBy,
			&req.StudentName, &req.ClassCode, &req.ClassName,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// ApproveEnrollmentRequest resolves a pending request and upserts the
// enrollment in the same transaction; both happen or neither does. It
// reports applied=false when the request was not pending, leaving
// everything untouched.
func (db *DB) ApproveEnrollmentRequest(requestID, adminID string, at time.Time) (bool, error) {
	applied := false
	err := db.withTx(func(tx *sql.Tx) error {
		var studentID, classID string
		err := tx.QueryRow(
			`UPDATE enrollment_requests
			 SET status = 'approved', processed_at = $2, processed_by = $3
			 WHERE id = $1 AND status = 'pending'
			 RETURNING student_id, class_id`,
			requestID, at, adminID,
		).Scan(&studentID, &classID)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}

		_, err = tx.Exec(
			`INSERT INTO student_enrollments (student_id, class_id, status)
			 VALUES ($1, $2, 'enrolled')
			 ON CONFLICT ON CONSTRAINT uniq_enrollment
			 DO UPDATE SET status = 'enrolled', updated_at = NOW()`,
			studentID, classID,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert enrollment: %w", err)
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

// RejectEnrollmentRequest resolves a pending request with no enrollment
// side effect. Re-processing an already resolved request is a no-op.
func (db *DB) RejectEnrollmentRequest(requestID, adminID string, at time.Time) (bool, error) {
	res, err := db.Exec(
		`UPDATE enrollment_requests
		 SET status = 'rejected', processed_at = $2, processed_by = $3
		 WHERE id = $1 AND status = 'pending'`,
		requestID, at, adminID,
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
