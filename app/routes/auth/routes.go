package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/config"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/database"
	"github.com/Somruproy7/Attendance-recording-system-Facial-Recognition--sub000/app/models"
)

type Handler struct {
	db     *database.DB
	secret []byte
	log    *zap.Logger
}

func NewHandler(db *database.DB, cfg *config.Config, log *zap.Logger) *Handler {
	return &Handler{db: db, secret: []byte(cfg.JWTSecret), log: log}
}

func SetupAuthRoutes(app *fiber.App, h *Handler) {
	auth := app.Group("/api/auth")

	auth.Post("/login", h.LoginAPI)
	auth.Post("/logout", h.LogoutAPI)

	auth.Use(h.Middleware)
	auth.Get("/me", h.MeAPI)
	auth.Post("/change-password", h.ChangePasswordAPI)
}

// Middleware validates the JWT from the cookie or Authorization header and
// loads the user into request locals. Disabled accounts are rejected even
// while their token is still valid.
func (h *Handler) Middleware(c *fiber.Ctx) error {
	tokenString := c.Cookies("jwt_token")
	if tokenString == "" {
		header := c.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}
	}
	if tokenString == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "no token found")
	}

	claims, err := ValidateJWT(h.secret, tokenString)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}

	user, err := h.db.UserByID(claims.UserID)
	if err != nil {
		return err
	}
	if user == nil || !user.IsActive {
		return fiber.NewError(fiber.StatusUnauthorized, "account is disabled")
	}

	c.Locals("user", user)
	return c.Next()
}

// RequireRoles guards a route group to the given roles.
func RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := UserFromCtx(c)
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
	}
}

// UserFromCtx returns the authenticated user set by Middleware.
func UserFromCtx(c *fiber.Ctx) *models.User {
	return c.Locals("user").(*models.User)
}

// ActorFromCtx returns the authenticated user as a service-layer actor.
func ActorFromCtx(c *fiber.Ctx) models.ActorContext {
	return UserFromCtx(c).Actor()
}
