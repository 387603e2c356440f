package main

import (
	"flag"
	"log"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/config"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/database"
)

func main() {
	dir := flag.String("dir", "migrations", "directory with migration files")
	flag.Parse()

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

	if err := db.RunMigrations(*dir); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("migrations applied")
}
