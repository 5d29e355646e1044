package middleware

import (
	"strings"

	"Maqal-Backend/domain"
	"Maqal-Backend/internal/api/presenters"
	"Maqal-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		AdminMiddleware() fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	})
}

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		userID, role, err := jwtService.GetUserIDByToken(token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		c.Locals("user_id", userID)
		c.Locals("role", role)
		return c.Next()
	}
}

func (m *middleware) AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role != domain.RoleAdmin {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageUserNotAllowed, domain.ErrUserNotAllowed)
		}
		return c.Next()
	}
}
