package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/config"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/database"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/routes/attendance"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/routes/auth"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/routes/classes"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/routes/enrollment"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/routes/httputil"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/routes/reports"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/routes/sessions"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/routes/settings"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/routes/timetable"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/services"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/pkg/logger"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(&cfg.Log, logger.DefaultServiceName)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.New(database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.RunMigrations("migrations"); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	clock := services.SystemClock()
	materializer := services.NewMaterializer(db, clock, zlog)
	lifecycle := services.NewLifecycle(db, clock, zlog)
	ledger := services.NewAttendanceLedger(db, clock, zlog)
	enrollmentSvc := services.NewEnrollmentService(db, clock, zlog)
	// A threshold stored in system_settings overrides the env default.
	threshold, err := db.SettingFloat("face_recognition_threshold", cfg.FaceMatchThreshold)
	if err != nil {
		zlog.Warn("failed to read recognition threshold setting", zap.Error(err))
		threshold = cfg.FaceMatchThreshold
	}
	recognizer := &services.ScriptRecognizer{Script: cfg.RecognitionScript}
	recognitionSvc := services.NewRecognitionService(recognizer, ledger, threshold, zlog)

	app := fiber.New(fiber.Config{
		AppName:      "attendance-backend",
		ErrorHandler: httputil.ErrorHandler(zlog),
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(fiberlogger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authHandler := auth.NewHandler(db, cfg, zlog)
	auth.SetupAuthRoutes(app, authHandler)
	sessions.SetupSessionRoutes(app, authHandler, sessions.NewHandler(db, materializer, lifecycle, zlog))
	attendance.SetupAttendanceRoutes(app, authHandler, attendance.NewHandler(db, ledger, recognitionSvc, cfg.UploadDir, zlog))
	enrollment.SetupEnrollmentRoutes(app, authHandler, enrollment.NewHandler(db, enrollmentSvc, zlog))
	timetable.SetupTimetableRoutes(app, authHandler, timetable.NewHandler(db, zlog))
	classes.SetupClassRoutes(app, authHandler, classes.NewHandler(db, zlog))
	reports.SetupReportRoutes(app, authHandler, reports.NewHandler(db, zlog))
	settings.SetupSettingsRoutes(app, authHandler, settings.NewHandler(db, zlog))

	zlog.Info("server starting", zap.String("addr", cfg.HTTPAddr))
	if err := app.Listen(cfg.HTTPAddr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
