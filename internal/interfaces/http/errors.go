package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturador-afip/internal/application/dto"
	"github.com/jhoicas/facturador-afip/internal/domain"
)

// errorMapping traduce errores de dominio a estado HTTP y código. El orden importa:
// un timeout también es un error de transporte.
var errorMapping = []struct {
	target error
	status int
	code   string
}{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrIssuerNotConfigured, fiber.StatusUnprocessableEntity, "ISSUER_NOT_CONFIGURED"},
	{domain.ErrInvoiceRejected, fiber.StatusUnprocessableEntity, "REJECTED"},
	{domain.ErrAuthorityErrors, fiber.StatusUnprocessableEntity, "AFIP_ERRORS"},
	{domain.ErrSigning, fiber.StatusInternalServerError, "SIGNING"},
	{domain.ErrRender, fiber.StatusInternalServerError, "RENDER"},
	{domain.ErrTimeout, fiber.StatusGatewayTimeout, "TIMEOUT"},
	{domain.ErrAuthFault, fiber.StatusBadGateway, "AUTH_FAULT"},
	{domain.ErrRemoteFault, fiber.StatusBadGateway, "REMOTE_FAULT"},
	{domain.ErrResponseShape, fiber.StatusBadGateway, "BAD_RESPONSE"},
	{domain.ErrRejectedWithoutReason, fiber.StatusBadGateway, "REJECTED_WITHOUT_REASON"},
	{domain.ErrTransport, fiber.StatusBadGateway, "TRANSPORT"},
}

// MapError devuelve el estado HTTP y el cuerpo de error para err.
func MapError(err error) (int, dto.ErrorResponse) {
	for _, m := range errorMapping {
		if errors.Is(err, m.target) {
			return m.status, dto.NewError(m.code, err.Error())
		}
	}
	return fiber.StatusInternalServerError, dto.NewError("INTERNAL", err.Error())
}

func writeError(c *fiber.Ctx, err error) error {
	status, body := MapError(err)
	return c.Status(status).JSON(body)
}
