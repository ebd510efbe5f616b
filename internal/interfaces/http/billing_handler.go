package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturador-afip/internal/application/billing"
	"github.com/jhoicas/facturador-afip/internal/application/dto"
)

// BillingHandler emisión de comprobantes y descarga de PDF.
type BillingHandler struct {
	issue *billing.IssueInvoiceUseCase
	pdf   *billing.PDFUseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(issue *billing.IssueInvoiceUseCase, pdf *billing.PDFUseCase) *BillingHandler {
	return &BillingHandler{issue: issue, pdf: pdf}
}

// Facturar godoc
// @Summary      Emitir comprobante electrónico
// @Description  Autentica contra WSAA, consulta el último número autorizado, solicita el CAE a WSFEv1 y genera el PDF.
// @Tags         facturacion
// @Accept       json
// @Produce      json
// @Param        body  body      dto.IssueInvoiceRequest  true  "cuit_emisor, cuit_receptor, punto_venta, tipo_cbte, importe, descripcion"
// @Success      200   {object}  dto.IssueInvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Failure      504   {object}  dto.ErrorResponse
// @Router       /facturar [post]
func (h *BillingHandler) Facturar(c *fiber.Ctx) error {
	var in dto.IssueInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido: "+err.Error()))
	}
	data, err := h.issue.Issue(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.IssueInvoiceResponse{Status: dto.StatusOK, Factura: *data})
}

// DescargarPDF godoc
// @Summary      Descargar PDF de un comprobante
// @Tags         facturacion
// @Produce      application/pdf
// @Param        filename  path  string  true  "nombre devuelto en pdf_url"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /descargar_pdf/{filename} [get]
func (h *BillingHandler) DescargarPDF(c *fiber.Ctx) error {
	name := c.Params("filename")
	data, err := h.pdf.Download(name)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(name)
	return c.Send(data)
}
