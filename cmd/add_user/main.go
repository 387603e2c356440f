package main

import (
	"flag"
	"log"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/config"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/database"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/routes/auth"
)

// Seeds a user account. Intended for bootstrapping the first admin:
//
//	go run ./cmd/add_user -email admin@example.edu -password secret -role admin
func main() {
	var (
		email      = flag.String("email", "", "email address")
		password   = flag.String("password", "", "password")
		role       = flag.String("role", "student", "role: admin, lecturer or student")
		firstName  = flag.String("first-name", "", "first name")
		lastName   = flag.String("last-name", "", "last name")
		userNumber = flag.String("user-number", "", "student or staff number")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("email and password are required")
	}
	switch models.Role(*role) {
	case models.RoleAdmin, models.RoleLecturer, models.RoleStudent:
	default:
		log.Fatalf("unknown role %q", *role)
	}

	cfg := config.Load()
	db, err := database.New(database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		UserNumber: *userNumber,
		Email:      *email,
		Password:   hashed,
		FirstName:  *firstName,
		LastName:   *lastName,
		Role:       models.Role(*role),
	}
	if err := db.CreateUser(user); err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	log.Printf("created %s user %s (%s)", user.Role, user.Email, user.ID)
}
