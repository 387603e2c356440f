package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/database"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/routes/auth"
)

type Handler struct {
	db  *database.DB
	log *zap.Logger
}

func NewHandler(db *database.DB, log *zap.Logger) *Handler {
	return &Handler{db: db, log: log}
}

func SetupReportRoutes(app *fiber.App, authHandler *auth.Handler, h *Handler) {
	reports := app.Group("/api/reports", authHandler.Middleware)

	staff := auth.RequireRoles(models.RoleAdmin, models.RoleLecturer)

	reports.Get("/students/:id", h.StudentReportAPI)
	reports.Get("/classes/:id", staff, h.ClassSummaryAPI)
	reports.Get("/classes/:id/export", staff, h.ClassExportAPI)
}

const dateLayout = "2006-01-02"

// dateRange reads start/end query params, defaulting to the last 90 days.
func dateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	start, err := time.Parse(dateLayout, c.Query("start", now.AddDate(0, 0, -90).Format(dateLayout)))
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid start date, expected YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, c.Query("end", now.Format(dateLayout)))
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid end date, expected YYYY-MM-DD")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "end date before start date")
	}
	return start, end, nil
}

// StudentReportAPI returns per-class attendance totals for one student.
// Students may only read their own report.
func (h *Handler) StudentReportAPI(c *fiber.Ctx) error {
	studentID := c.Params("id")

	user := auth.UserFromCtx(c)
	if user.Role == models.RoleStudent && user.ID != studentID {
		return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
	}

	report, err := h.db.StudentAttendanceReport(studentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"report": report})
}

func (h *Handler) ClassSummaryAPI(c *fiber.Ctx) error {
	start, end, err := dateRange(c)
	if err != nil {
		return err
	}

	summary, err := h.db.ClassAttendanceSummary(c.Params("id"), start, end)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"sessions": summary})
}

// ClassExportAPI streams a class's attendance records as CSV.
func (h *Handler) ClassExportAPI(c *fiber.Ctx) error {
	start, end, err := dateRange(c)
	if err != nil {
		return err
	}

	classID := c.Params("id")
	rows, err := h.db.AttendanceExport(classID, start, end)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"date", "session", "class", "student_number", "first_name", "last_name", "status", "check_in_time", "marked_by"})
	for _, row := range rows {
		checkIn := ""
		if row.CheckInTime != nil {
			checkIn = row.CheckInTime.Format(time.RFC3339)
		}
		record := []string{
			row.SessionDate.Format(dateLayout),
			row.Title,
			row.ClassCode,
			row.UserNumber,
			row.FirstName,
			row.LastName,
			string(row.Status),
			checkIn,
			string(row.MarkedBy),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	h.log.Info("attendance export generated",
		zap.String("class_id", classID),
		zap.Int("rows", len(rows)))

	filename := fmt.Sprintf("attendance-%s-%s.csv", start.Format(dateLayout), end.Format(dateLayout))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(buf.Bytes())
}
