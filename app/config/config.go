package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/pkg/logger"
)

type Config struct {
	HTTPAddr  string
	JWTSecret string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Recognition bridge: external script invoked per captured frame.
	RecognitionScript  string
	FaceMatchThreshold float64
	UploadDir          string

	Log logger.Config
}

// Load reads configuration from the environment. A .env file is applied
// first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPAddr:  getEnv("HTTP_ADDR", ":8080"),
		JWTSecret: getEnv("JWT_SECRET", "attendance-backend-dev-secret"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "attendance"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RecognitionScript:  getEnv("RECOGNITION_SCRIPT", "./recognize_face.py"),
		FaceMatchThreshold: getEnvFloat("FACE_MATCH_THRESHOLD", 0.6),
		UploadDir:          getEnv("UPLOAD_DIR", "./uploads"),

		Log: logger.Config{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			Output: getEnv("LOG_OUTPUT", "stdout"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
