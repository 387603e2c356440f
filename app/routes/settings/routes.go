package settings

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/database"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/routes/auth"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/routes/httputil"
)

const thresholdKey = "face_recognition_threshold"

type Handler struct {
	db  *database.DB
	log *zap.Logger
}

func NewHandler(db *database.DB, log *zap.Logger) *Handler {
	return &Handler{db: db, log: log}
}

func SetupSettingsRoutes(app *fiber.App, authHandler *auth.Handler, h *Handler) {
	settings := app.Group("/api/settings", authHandler.Middleware, auth.RequireRoles(models.RoleAdmin))

	settings.Get("/recognition-threshold", h.GetThresholdAPI)
	settings.Put("/recognition-threshold", h.PutThresholdAPI)
}

func (h *Handler) GetThresholdAPI(c *fiber.Ctx) error {
	value, ok, err := h.db.Setting(thresholdKey)
	if err != nil {
		return err
	}
	if !ok {
		return c.JSON(fiber.Map{"threshold": nil})
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return c.JSON(fiber.Map{"threshold": nil})
	}
	return c.JSON(fiber.Map{"threshold": f})
}

// PutThresholdAPI stores the recognition confidence threshold. The server
// reads it at startup, so a change takes effect on the next restart.
func (h *Handler) PutThresholdAPI(c *fiber.Ctx) error {
	type ThresholdRequest struct {
		Threshold float64 `json:"threshold" validate:"required,gt=0,lte=1"`
	}

	var req ThresholdRequest
	if err := httputil.ParseBody(c, &req); err != nil {
		return err
	}

	if err := h.db.PutSetting(thresholdKey, strconv.FormatFloat(req.Threshold, 'f', -1, 64)); err != nil {
		return err
	}
	h.log.Info("recognition threshold updated", zap.Float64("threshold", req.Threshold))
	return c.JSON(fiber.Map{"threshold": req.Threshold})
}
