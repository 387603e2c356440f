package httputil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/services"
)

func newTestApp(handler fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	app.Get("/", handler)
	return app
}

func TestServiceErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{services.ErrNotFound, http.StatusNotFound},
		{services.ErrForbidden, http.StatusForbidden},
		{services.ErrInvalidTransition, http.StatusConflict},
		{services.ErrConflict, http.StatusConflict},
		{services.ErrInvalidRange, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", services.ErrInvalidTransition), http.StatusConflict},
		{fmt.Errorf("database exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		app := newTestApp(func(c *fiber.Ctx) error {
			return ServiceError(tc.err)
		})
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		if err != nil {
			t.Fatalf("%v: request failed: %v", tc.err, err)
		}
		if resp.StatusCode != tc.code {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.code, resp.StatusCode)
		}
	}
}

func TestErrorHandlerHidesInternalDetail(t *testing.T) {
	app := newTestApp(func(c *fiber.Ctx) error {
		return fmt.Errorf("password for admin is hunter2")
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	buf := make([]byte, 1024)
	n, _ := resp.Body.Read(buf)
	if strings.Contains(string(buf[:n]), "hunter2") {
		t.Fatal("internal error detail leaked to the client")
	}
}

func TestParseBodyValidation(t *testing.T) {
	type payload struct {
		Email string `json:"email" validate:"required,email"`
	}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	app.Post("/", func(c *fiber.Ctx) error {
		var p payload
		if err := ParseBody(c, &p); err != nil {
			return err
		}
		return c.JSON(p)
	})

	cases := []struct {
		body string
		code int
	}{
		{`{"email":"student@example.edu"}`, http.StatusOK},
		{`{"email":"not-an-email"}`, http.StatusBadRequest},
		{`{`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: request failed: %v", tc.body, err)
		}
		if resp.StatusCode != tc.code {
			t.Fatalf("%s: expected status %d, got %d", tc.body, tc.code, resp.StatusCode)
		}
	}
}
