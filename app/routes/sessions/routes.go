package sessions

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/database"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/routes/auth"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/services"
)

type Handler struct {
	db           *database.DB
	materializer *services.Materializer
	lifecycle    *services.Lifecycle
	log          *zap.Logger
}

func NewHandler(db *database.DB, materializer *services.Materializer, lifecycle *services.Lifecycle, log *zap.Logger) *Handler {
	return &Handler{db: db, materializer: materializer, lifecycle: lifecycle, log: log}
}

func SetupSessionRoutes(app *fiber.App, authHandler *auth.Handler, h *Handler) {
	sessions := app.Group("/api/sessions", authHandler.Middleware)

	staff := auth.RequireRoles(models.RoleAdmin, models.RoleLecturer)

	sessions.Get("/today", staff, h.TodayAPI)
	sessions.Get("/active", h.ActiveAPI)
	sessions.Get("/", staff, h.ListAPI)
	sessions.Post("/", staff, h.CreateSingleAPI)
	sessions.Post("/generate", auth.RequireRoles(models.RoleAdmin), h.GenerateRangeAPI)

	sessions.Get("/:id", staff, h.GetAPI)
	sessions.Post("/:id/start", staff, h.StartAPI)
	sessions.Post("/:id/end", staff, h.EndAPI)
	sessions.Post("/:id/cancel", auth.RequireRoles(models.RoleAdmin), h.CancelAPI)
}
