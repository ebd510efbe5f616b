package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturador-afip/internal/application/billing"
)

// AdminHandler diagnóstico de configuración, estado de AFIP y caché de credenciales.
type AdminHandler struct {
	uc *billing.StatusUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(uc *billing.StatusUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// Test godoc
// @Summary      Configuración efectiva
// @Description  Emisores, archivos de certificado, URLs de WSAA/WSFE y tamaño de la caché de credenciales.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.ConfigSummary
// @Router       /test [get]
func (h *AdminHandler) Test(c *fiber.Ctx) error {
	return c.JSON(h.uc.Summary())
}

// Estado godoc
// @Summary      Estado de los servidores de AFIP (FEDummy)
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.ServerStatusResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Failure      504  {object}  dto.ErrorResponse
// @Router       /estado [get]
func (h *AdminHandler) Estado(c *fiber.Ctx) error {
	st, err := h.uc.ServerStatus(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(st)
}

// LimpiarCache godoc
// @Summary      Vaciar la caché de credenciales WSAA
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ClearCacheResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /limpiar_cache [post]
func (h *AdminHandler) LimpiarCache(c *fiber.Ctx) error {
	return c.JSON(h.uc.ClearCache(GetSubject(c)))
}
