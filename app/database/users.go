package database

import (
	"database/sql"
	"fmt"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
)

const userColumns = `id, user_number, email, password, first_name, last_name, role, photo, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.UserNumber, &u.Email, &u.Password, &u.FirstName, &u.LastName,
		&u.Role, &u.Photo, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (db *DB) CreateUser(u *models.User) error {
	query := `INSERT INTO users (user_number, email, password, first_name, last_name, role, photo)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_active, created_at, updated_at`

	err := db.QueryRow(query,
		u.UserNumber, u.Email, u.Password, u.FirstName, u.LastName, u.Role, u.Photo,
	).Scan(&u.ID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (db *DB) UserByEmail(email string) (*models.User, error) {
	u, err := scanUser(db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (db *DB) UserByID(id string) (*models.User, error) {
	u, err := scanUser(db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (db *DB) UpdateUserPassword(id, hashed string) error {
	_, err := db.Exec(`UPDATE users SET password = $1, updated_at = now() WHERE id = $2`, hashed, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// SetUserActive soft-enables or soft-disables an account. Disabled users
// keep their history but can no longer authenticate.
func (db *DB) SetUserActive(id string, active bool) (bool, error) {
	res, err := db.Exec(`UPDATE users SET is_active = $1, updated_at = now() WHERE id = $2`, active, id)
	if err != nil {
		return false, fmt.Errorf("failed to update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UsersByRole lists active users of one role.
func (db *DB) UsersByRole(role models.Role) ([]*models.User, error) {
	rows, err := db.Query(
		`SELECT `+userColumns+` FROM users WHERE role = $1 AND is_active ORDER BY last_name, first_name`,
		role,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
