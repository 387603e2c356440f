package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/routes/httputil"
)

func (h *Handler) LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var req LoginRequest
	if err := httputil.ParseBody(c, &req); err != nil {
		return err
	}

	user, err := h.db.UserByEmail(req.Email)
	if err != nil {
		return err
	}
	if user == nil || !CheckPasswordHash(req.Password, user.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}
	if !user.IsActive {
		return fiber.NewError(fiber.StatusUnauthorized, "account is disabled")
	}

	token, err := GenerateJWT(h.secret, user)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    token,
		Expires:  time.Now().Add(tokenLifetime),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	h.log.Info("user logged in", zap.String("user_id", user.ID))
	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

func (h *Handler) LogoutAPI(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.JSON(fiber.Map{"message": "logged out"})
}

func (h *Handler) MeAPI(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"user": UserFromCtx(c)})
}

func (h *Handler) ChangePasswordAPI(c *fiber.Ctx) error {
	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8"`
	}

	var req ChangePasswordRequest
	if err := httputil.ParseBody(c, &req); err != nil {
		return err
	}

	user := UserFromCtx(c)
	if !CheckPasswordHash(req.CurrentPassword, user.Password) {
		return fiber.NewError(fiber.StatusBadRequest, "current password is incorrect")
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := h.db.UpdateUserPassword(user.ID, hashed); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "password changed"})
}
