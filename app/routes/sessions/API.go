package sessions

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/routes/auth"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/routes/httputil"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/services"
)

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}
	return d, nil
}

// lecturerFilter narrows listings to the lecturer's own classes. Admins
// see everything.
func lecturerFilter(c *fiber.Ctx) string {
	user := auth.UserFromCtx(c)
	if user.Role == models.RoleLecturer {
		return user.ID
	}
	return ""
}

// TodayAPI materializes today's instances on demand and returns them.
// Materialization is best effort; listing proceeds regardless.
func (h *Handler) TodayAPI(c *fiber.Ctx) error {
	h.materializer.EnsureToday()

	today := services.DateOf(time.Now())
	instances, err := h.db.SessionInstancesByDate(today, lecturerFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"sessions": instances})
}

// ActiveAPI lists the in-progress sessions a student can check in to today.
func (h *Handler) ActiveAPI(c *fiber.Ctx) error {
	user := auth.UserFromCtx(c)
	if user.Role != models.RoleStudent {
		return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
	}

	instances, err := h.db.InProgressSessionsForStudent(user.ID, services.DateOf(time.Now()))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"sessions": instances})
}

func (h *Handler) ListAPI(c *fiber.Ctx) error {
	start, err := parseDate(c.Query("start", services.DateOf(time.Now()).Format(dateLayout)))
	if err != nil {
		return err
	}
	end, err := parseDate(c.Query("end", start.Format(dateLayout)))
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fiber.NewError(fiber.StatusBadRequest, "end date before start date")
	}

	status := models.SessionStatus(c.Query("status"))
	instances, err := h.db.SessionInstancesInRange(lecturerFilter(c), start, end, status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"sessions": instances})
}

func (h *Handler) GetAPI(c *fiber.Ctx) error {
	si, err := h.db.SessionInstanceByID(c.Params("id"))
	if err != nil {
		return err
	}
	if si == nil {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	records, err := h.db.AttendanceForInstance(si.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"session":    si,
		"attendance": records,
	})
}

func (h *Handler) CreateSingleAPI(c *fiber.Ctx) error {
	type CreateRequest struct {
		TimetableSessionID string `json:"timetable_session_id" validate:"required"`
		Date               string `json:"date" validate:"required"`
		Notes              string `json:"notes"`
	}

	var req CreateRequest
	if err := httputil.ParseBody(c, &req); err != nil {
		return err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return err
	}

	si, err := h.lifecycle.CreateSingle(req.TimetableSessionID, date, req.Notes, auth.ActorFromCtx(c))
	if err != nil {
		return httputil.ServiceError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session": si})
}

func (h *Handler) GenerateRangeAPI(c *fiber.Ctx) error {
	type GenerateRequest struct {
		TimetableSessionID string `json:"timetable_session_id" validate:"required"`
		StartDate          string `json:"start_date" validate:"required"`
		EndDate            string `json:"end_date" validate:"required"`
	}

	var req GenerateRequest
	if err := httputil.ParseBody(c, &req); err != nil {
		return err
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return err
	}

	created, err := h.materializer.GenerateInstancesForRange(req.TimetableSessionID, start, end, auth.ActorFromCtx(c))
	if err != nil {
		return httputil.ServiceError(err)
	}
	return c.JSON(fiber.Map{"created": created})
}

func (h *Handler) StartAPI(c *fiber.Ctx) error {
	si, err := h.lifecycle.Start(c.Params("id"), auth.ActorFromCtx(c))
	if err != nil {
		return httputil.ServiceError(err)
	}
	return c.JSON(fiber.Map{"session": si})
}

func (h *Handler) EndAPI(c *fiber.Ctx) error {
	si, err := h.lifecycle.End(c.Params("id"), auth.ActorFromCtx(c))
	if err != nil {
		return httputil.ServiceError(err)
	}
	return c.JSON(fiber.Map{"session": si})
}

func (h *Handler) CancelAPI(c *fiber.Ctx) error {
	si, err := h.lifecycle.Cancel(c.Params("id"), auth.ActorFromCtx(c))
	if err != nil {
		return httputil.ServiceError(err)
	}
	return c.JSON(fiber.Map{"session": si})
}
