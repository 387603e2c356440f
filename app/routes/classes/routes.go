package classes

import (
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

func SetupClassRoutes(app *fiber.App, authHandler *auth.Handler, h *Handler) {
	classes := app.Group("/api/classes", authHandler.Middleware)

	staff := auth.RequireRoles(models.RoleAdmin, models.RoleLecturer)
	admin := auth.RequireRoles(models.RoleAdmin)

	classes.Get("/", h.ListAPI)
	classes.Get("/:id", h.GetAPI)
	classes.Get("/:id/students", staff, h.StudentsAPI)
	classes.Get("/:id/timetable", h.TimetableAPI)

	classes.Post("/", admin, h.CreateAPI)
	classes.Put("/:id", admin, h.UpdateAPI)
	classes.Post("/:id/lecturers", admin, h.AssignLecturerAPI)
	classes.Delete("/:id/lecturers/:lecturerID", admin, h.RemoveLecturerAPI)
}

func (h *Handler) ListAPI(c *fiber.Ctx) error {
	user := auth.UserFromCtx(c)

	var (
		classes []*models.Class
		err     error
	)
	switch user.Role {
	case models.RoleLecturer:
		classes, err = h.db.ClassesForLecturer(user.ID)
	default:
		classes, err = h.db.AllClasses()
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"classes": classes})
}

func (h *Handler) GetAPI(c *fiber.Ctx) error {
	class, err := h.db.ClassByID(c.Params("id"))
	if err != nil {
		return err
	}
	if class == nil {
		return fiber.NewError(fiber.StatusNotFound, "class not found")
	}
	return c.JSON(fiber.Map{"class": class})
}

func (h *Handler) StudentsAPI(c *fiber.Ctx) error {
	students, err := h.db.EnrolledStudents(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"students": students})
}

func (h *Handler) TimetableAPI(c *fiber.Ctx) error {
	sessions, err := h.db.TimetableSessionsByClass(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"timetable_sessions": sessions})
}

func (h *Handler) CreateAPI(c *fiber.Ctx) error {
	var class models.Class
	if err := httputil.ParseBody(c, &class); err != nil {
		return err
	}

	if err := h.db.CreateClass(&class); err != nil {
		return err
	}
	h.log.Info("class created",
		zap.String("class_id", class.ID),
		zap.String("code", class.Code))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"class": &class})
}

func (h *Handler) UpdateAPI(c *fiber.Ctx) error {
	var class models.Class
	if err := httputil.ParseBody(c, &class); err != nil {
		return err
	}
	class.ID = c.Params("id")

	updated, err := h.db.UpdateClass(&class)
	if err != nil {
		return err
	}
	if !updated {
		return fiber.NewError(fiber.StatusNotFound, "class not found")
	}
	return c.JSON(fiber.Map{"class": &class})
}

func (h *Handler) AssignLecturerAPI(c *fiber.Ctx) error {
	type AssignRequest struct {
		LecturerID string `json:"lecturer_id" validate:"required"`
	}

	var req AssignRequest
	if err := httputil.ParseBody(c, &req); err != nil {
		return err
	}

	lecturer, err := h.db.UserByID(req.LecturerID)
	if err != nil {
		return err
	}
	if lecturer == nil || lecturer.Role != models.RoleLecturer {
		return fiber.NewError(fiber.StatusBadRequest, "user is not a lecturer")
	}

	if err := h.db.AssignLecturer(c.Params("id"), req.LecturerID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "lecturer assigned"})
}

func (h *Handler) RemoveLecturerAPI(c *fiber.Ctx) error {
	if err := h.db.RemoveLecturer(c.Params("id"), c.Params("lecturerID")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "lecturer removed"})
}
