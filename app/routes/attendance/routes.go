package attendance

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/database"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/routes/auth"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/services"
)

type Handler struct {
	db          *database.DB
	ledger      *services.AttendanceLedger
	recognition *services.RecognitionService
	uploadDir   string
	log         *zap.Logger
}

func NewHandler(db *database.DB, ledger *services.AttendanceLedger, recognition *services.RecognitionService, uploadDir string, log *zap.Logger) *Handler {
	return &Handler{db: db, ledger: ledger, recognition: recognition, uploadDir: uploadDir, log: log}
}

func SetupAttendanceRoutes(app *fiber.App, authHandler *auth.Handler, h *Handler) {
	attendance := app.Group("/api/attendance", authHandler.Middleware)

	staff := auth.RequireRoles(models.RoleAdmin, models.RoleLecturer)

	attendance.Post("/check-in", auth.RequireRoles(models.RoleStudent), h.CheckInAPI)
	attendance.Post("/mark", staff, h.MarkAPI)
	attendance.Post("/recognize", staff, h.RecognizeAPI)
	attendance.Get("/sessions/:id", staff, h.ListForInstanceAPI)
}
