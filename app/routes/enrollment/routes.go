package enrollment

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/database"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/routes/auth"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/routes/httputil"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/services"
)

type Handler struct {
	db  *database.DB
	svc *services.EnrollmentService
	log *zap.Logger
}

func NewHandler(db *database.DB, svc *services.EnrollmentService, log *zap.Logger) *Handler {
	return &Handler{db: db, svc: svc, log: log}
}

func SetupEnrollmentRoutes(app *fiber.App, authHandler *auth.Handler, h *Handler) {
	enrollment := app.Group("/api/enrollment", authHandler.Middleware)

	admin := auth.RequireRoles(models.RoleAdmin)

	enrollment.Post("/requests", auth.RequireRoles(models.RoleStudent), h.RequestAPI)
	enrollment.Get("/requests", admin, h.PendingRequestsAPI)
	enrollment.Post("/requests/:id/approve", admin, h.ApproveAPI)
	enrollment.Post("/requests/:id/reject", admin, h.RejectAPI)

	enrollment.Get("/my-classes", auth.RequireRoles(models.RoleStudent), h.MyClassesAPI)
}

func (h *Handler) RequestAPI(c *fiber.Ctx) error {
	type EnrollRequest struct {
		ClassID string `json:"class_id" validate:"required"`
		Reason  string `json:"reason"`
	}

	var req EnrollRequest
	if err := httputil.ParseBody(c, &req); err != nil {
		return err
	}

	if err := h.svc.Request(req.ClassID, req.Reason, auth.ActorFromCtx(c)); err != nil {
		return httputil.ServiceError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "enrollment request filed"})
}

func (h *Handler) PendingRequestsAPI(c *fiber.Ctx) error {
	requests, err := h.db.PendingEnrollmentRequests()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"requests": requests})
}

func (h *Handler) ApproveAPI(c *fiber.Ctx) error {
	if err := h.svc.Approve(c.Params("id"), auth.ActorFromCtx(c)); err != nil {
		return httputil.ServiceError(err)
	}
	return c.JSON(fiber.Map{"message": "request approved"})
}

func (h *Handler) RejectAPI(c *fiber.Ctx) error {
	if err := h.svc.Reject(c.Params("id"), auth.ActorFromCtx(c)); err != nil {
		return httputil.ServiceError(err)
	}
	return c.JSON(fiber.Map{"message": "request rejected"})
}

func (h *Handler) MyClassesAPI(c *fiber.Ctx) error {
	classes, err := h.db.ClassesForStudent(auth.ActorFromCtx(c).UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"classes": classes})
}
