package database

import (
	"database/sql"
	"fmt"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
)

func (db *DB) CreateClass(c *models.Class) error {
	query := `INSERT INTO classes (code, name, description, semester, year)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, status, created_at, updated_at`

	err := db.QueryRow(query, c.Code, c.Name, c.Description, c.Semester, c.Year).
		Scan(&c.ID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create class: %w", err)
	}
	return nil
}

func (db *DB) UpdateClass(c *models.Class) (bool, error) {
	query := `UPDATE classes
		SET code = $2, name = $3, description = $4, semester = $5, year = $6,
		    status = $7, updated_at = NOW()
		WHERE id = $1`

	res, err := db.Exec(query, c.ID, c.Code, c.Name, c.Description, c.Semester, c.Year, c.Status)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (db *DB) ClassByID(id string) (*models.Class, error) {
	query := `SELECT id, code, name, description, semester, year, status, created_at, updated_at
		FROM classes WHERE id = $1`

	c := &models.Class{}
	err := db.QueryRow(query, id).Scan(
		&c.ID, &c.Code, &c.Name, &c.Description, &c.Semester, &c.Year, &c.Status,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// AllClasses lists classes with enrolled-student counts.
func (db *DB) AllClasses() ([]*models.Class, error) {
	query := `SELECT c.id, c.code, c.name, c.description, c.semester, c.year, c.status,
			c.created_at, c.updated_at,
			(SELECT COUNT(*) FROM student_enrollments se
			 WHERE se.class_id = c.id AND se.status = 'enrolled') AS student_count
		FROM classes c
		ORDER BY c.code`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		c := &models.Class{}
		err := rows.Scan(
			&c.ID, &c.Code, &c.Name, &c.Description, &c.Semester, &c.Year, &c.Status,
			&c.CreatedAt, &c.UpdatedAt, &c.StudentCount,
		)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

func (db *DB) AssignLecturer(classID, lecturerID string) error {
	_, err := db.Exec(
		`INSERT INTO class_lecturers (class_id, lecturer_id) VALUES ($1, $2)
		 ON CONFLICT (class_id, lecturer_id) DO NOTHING`,
		classID, lecturerID,
	)
	return err
}

func (db *DB) RemoveLecturer(classID, lecturerID string) error {
	_, err := db.Exec(
		`DELETE FROM class_lecturers WHERE class_id = $1 AND lecturer_id = $2`,
		classID, lecturerID,
	)
	return err
}

// LecturerAssignedToClass reports whether the lecturer teaches the class.
func (db *DB) LecturerAssignedToClass(lecturerID, classID string) (bool, error) {
	var exists bool
	err := db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM class_lecturers
		 WHERE lecturer_id = $1 AND class_id = $2)`,
		lecturerID, classID,
	).Scan(&exists)
	return exists, err
}

// ClassesForLecturer lists active classes taught by the lecturer.
func (db *DB) ClassesForLecturer(lecturerID string) ([]*models.Class, error) {
	query := `SELECT c.id, c.code, c.name, c.description, c.semester, c.year, c.status,
			c.created_at, c.updated_at
		FROM classes c
		JOIN class_lecturers cl ON c.id = cl.class_id
		WHERE cl.lecturer_id = $1 AND c.status = 'active'
		ORDER BY c.code`

	rows, err := db.Query(query, lecturerID)
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
