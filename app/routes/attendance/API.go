package attendance

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/routes/auth"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/routes/httputil"
)

func (h *Handler) ListForInstanceAPI(c *fiber.Ctx) error {
	records, err := h.db.AttendanceForInstance(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"attendance": records})
}

func (h *Handler) CheckInAPI(c *fiber.Ctx) error {
	type CheckInRequest struct {
		SessionInstanceID string `json:"session_instance_id" validate:"required"`
		Code              string `json:"code"`
	}

	var req CheckInRequest
	if err := httputil.ParseBody(c, &req); err != nil {
		return err
	}

	actor := auth.ActorFromCtx(c)
	rec, err := h.ledger.SelfCheckIn(req.SessionInstanceID, actor.UserID, actor, req.Code)
	if err != nil {
		return httputil.ServiceError(err)
	}
	return c.JSON(fiber.Map{"attendance": rec})
}

func (h *Handler) MarkAPI(c *fiber.Ctx) error {
	type MarkRequest struct {
		SessionInstanceID string `json:"session_instance_id" validate:"required"`
		StudentID         string `json:"student_id" validate:"required"`
		Status            string `json:"status" validate:"required,oneof=present absent late"`
		Notes             string `json:"notes"`
	}

	var req MarkRequest
	if err := httputil.ParseBody(c, &req); err != nil {
		return err
	}

	rec, err := h.ledger.Override(req.SessionInstanceID, req.StudentID,
		models.AttendanceStatus(req.Status), req.Notes, auth.ActorFromCtx(c))
	if err != nil {
		return httputil.ServiceError(err)
	}
	return c.JSON(fiber.Map{"attendance": rec})
}

// RecognizeAPI accepts one captured frame as a multipart upload, runs it
// through the recognition bridge and reports the outcome. A frame with no
// acceptable match is a 200 with matched=false, not an error.
func (h *Handler) RecognizeAPI(c *fiber.Ctx) error {
	instanceID := c.FormValue("session_instance_id")
	if instanceID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session_instance_id is required")
	}
	expected := c.FormValue("expected_student_id")

	file, err := c.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "image file is required")
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return err
	}
	framePath := filepath.Join(h.uploadDir, fmt.Sprintf("frame-%s%s", uuid.NewString(), filepath.Ext(file.Filename)))
	if err := c.SaveFile(file, framePath); err != nil {
		return err
	}
	defer os.Remove(framePath)

	rec, result, err := h.recognition.ProcessFrame(instanceID, framePath, expected)
	if err != nil {
		h.log.Warn("recognition frame failed",
			zap.String("session_instance_id", instanceID),
			zap.Error(err))
		return httputil.ServiceError(err)
	}

	resp := fiber.Map{
		"matched":      rec != nil,
		"result":       result,
		"processed_at": time.Now(),
	}
	if rec != nil {
		resp["attendance"] = rec
	}
	return c.JSON(resp)
}
