package models

import "time"

type User struct {
	ID         string    `json:"id" db:"id"`
	UserNumber string    `json:"user_number" db:"user_number"`
	Email      string    `json:"email" db:"email" validate:"required,email"`
	Password   string    `json:"-" db:"password"`
	FirstName  string    `json:"first_name" db:"first_name" validate:"required"`
	LastName   string    `json:"last_name" db:"last_name" validate:"required"`
	Role       Role      `json:"role" db:"role" validate:"required,oneof=admin lecturer student"`
	Photo      string    `json:"photo,omitempty" db:"photo"`
	IsActive   bool      `json:"is_active" db:"is_active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) Actor() ActorContext {
	return ActorContext{UserID: u.ID, Role: u.Role}
}
