package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturador-afip/internal/application/dto"
	"github.com/jhoicas/facturador-afip/pkg/jwt"
)

// Locals keys para el operador autenticado en Fiber.
const (
	LocalSubject = "subject"
	LocalRole    = "role"
)

// AdminMiddleware valida el Bearer Token JWT y exige rol admin.
// Con secret vacío las rutas quedan abiertas (el arranque lo advierte en el log).
func AdminMiddleware(secret string) fiber.Handler {
	if secret == "" {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("MISSING_TOKEN", "Authorization header requerido"))
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("INVALID_TOKEN", "formato: Bearer <token>"))
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("MISSING_TOKEN", "token vacío"))
		}
		subject, role, err := jwt.Parse(secret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("INVALID_TOKEN", "token inválido o expirado"))
		}
		if role != jwt.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.NewError("FORBIDDEN", "se requiere rol admin"))
		}
		c.Locals(LocalSubject, subject)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// GetSubject devuelve el operador del contexto (después del middleware).
func GetSubject(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSubject).(string)
	return s
}
