package timetable

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/database"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/routes/auth"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/routes/httputil"
)

type Handler struct {
	db  *database.DB
	log *zap.Logger
}

func NewHandler(db *database.DB, log *zap.Logger) *Handler {
	return &Handler{db: db, log: log}
}

func SetupTimetableRoutes(app *fiber.App, authHandler *auth.Handler, h *Handler) {
	timetable := app.Group("/api/timetable", authHandler.Middleware)

	staff := auth.RequireRoles(models.RoleAdmin, models.RoleLecturer)
	admin := auth.RequireRoles(models.RoleAdmin)

	timetable.Get("/", staff, h.ListAPI)
	timetable.Get("/:id", staff, h.GetAPI)
	timetable.Post("/", admin, h.CreateAPI)
	timetable.Put("/:id", admin, h.UpdateAPI)
	timetable.Delete("/:id", admin, h.CancelAPI)
}

const clockLayout = "15:04"

func validateTimes(ts *models.TimetableSession) error {
	start, err := time.Parse(clockLayout, ts.StartTime)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid start_time, expected HH:MM")
	}
	end, err := time.Parse(clockLayout, ts.EndTime)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid end_time, expected HH:MM")
	}
	if !start.Before(end) {
		return fiber.NewError(fiber.StatusBadRequest, "start_time must be before end_time")
	}
	return nil
}

// ListAPI lists definitions by class, or active definitions by weekday.
func (h *Handler) ListAPI(c *fiber.Ctx) error {
	if classID := c.Query("class_id"); classID != "" {
		sessions, err := h.db.TimetableSessionsByClass(classID)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"timetable_sessions": sessions})
	}

	if day := c.Query("day"); day != "" {
		sessions, err := h.db.ActiveTimetableSessionsForDay(models.DayOfWeek(day))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"timetable_sessions": sessions})
	}

	return fiber.NewError(fiber.StatusBadRequest, "class_id or day is required")
}

func (h *Handler) GetAPI(c *fiber.Ctx) error {
	ts, err := h.db.TimetableSessionByID(c.Params("id"))
	if err != nil {
		return err
	}
	if ts == nil {
		return fiber.NewError(fiber.StatusNotFound, "timetable session not found")
	}
	return c.JSON(fiber.Map{"timetable_session": ts})
}

func (h *Handler) CreateAPI(c *fiber.Ctx) error {
	var ts models.TimetableSession
	if err := httputil.ParseBody(c, &ts); err != nil {
		return err
	}
	if err := validateTimes(&ts); err != nil {
		return err
	}

	class, err := h.db.ClassByID(ts.ClassID)
	if err != nil {
		return err
	}
	if class == nil {
		return fiber.NewError(fiber.StatusNotFound, "class not found")
	}

	userID := auth.UserFromCtx(c).ID
	ts.CreatedBy = &userID
	if err := h.db.CreateTimetableSession(&ts); err != nil {
		return err
	}
	h.log.Info("timetable session created",
		zap.String("class_id", ts.ClassID),
		zap.String("day_of_week", string(ts.DayOfWeek)))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"timetable_session": &ts})
}

func (h *Handler) UpdateAPI(c *fiber.Ctx) error {
	var ts models.TimetableSession
	if err := httputil.ParseBody(c, &ts); err != nil {
		return err
	}
	if err := validateTimes(&ts); err != nil {
		return err
	}
	ts.ID = c.Params("id")

	updated, err := h.db.UpdateTimetableSession(&ts)
	if err != nil {
		return err
	}
	if !updated {
		return fiber.NewError(fiber.StatusNotFound, "timetable session not found")
	}
	return c.JSON(fiber.Map{"timetable_session": &ts})
}

// CancelAPI soft-cancels a recurring definition. Existing instances are
// untouched; the materializer stops deriving new ones.
func (h *Handler) CancelAPI(c *fiber.Ctx) error {
	cancelled, err := h.db.CancelTimetableSession(c.Params("id"))
	if err != nil {
		return err
	}
	if !cancelled {
		return fiber.NewError(fiber.StatusNotFound, "timetable session not found or already cancelled")
	}
	return c.JSON(fiber.Map{"message": "timetable session cancelled"})
}
