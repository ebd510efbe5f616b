package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturador-afip/internal/application/billing"
	"github.com/jhoicas/facturador-afip/internal/application/dto"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName   string
	IssueUC   *billing.IssueInvoiceUseCase
	PDFUC     *billing.PDFUseCase
	StatusUC  *billing.StatusUseCase
	JWTSecret string // vacío = /limpiar_cache sin autenticación
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	billingHandler := NewBillingHandler(deps.IssueUC, deps.PDFUC)
	adminHandler := NewAdminHandler(deps.StatusUC)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"servicio": deps.AppName,
			"status":   dto.StatusOK,
			"endpoints": []string{
				"POST /facturar",
				"GET /descargar_pdf/:filename",
				"GET /test",
				"GET /estado",
				"POST /limpiar_cache",
				"GET /health",
				"GET /docs",
			},
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	app.Post("/facturar", billingHandler.Facturar)
	app.Get("/descargar_pdf/:filename", billingHandler.DescargarPDF)

	app.Get("/test", adminHandler.Test)
	app.Get("/estado", adminHandler.Estado)
	app.Post("/limpiar_cache", AdminMiddleware(deps.JWTSecret), adminHandler.LimpiarCache)
}
