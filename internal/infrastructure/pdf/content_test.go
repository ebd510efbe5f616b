package pdf_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador-afip/internal/domain"
	"github.com/jhoicas/facturador-afip/internal/domain/entity"
	"github.com/jhoicas/facturador-afip/internal/infrastructure/pdf"
	"github.com/jhoicas/facturador-afip/pkg/afip"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, afip.ArgentinaZone) }

func sampleDocument() entity.InvoiceDocument {
	total := decimal.RequireFromString("1000.00")
	return entity.InvoiceDocument{
		Issuer: entity.Issuer{
			CUIT:              "27239676931",
			RazonSocial:       "DEVRIES MARIA PAULA",
			Domicilio:         "Rodriguez Peña 1789 - Mar Del Plata Sur, Buenos Aires",
			CondicionIVA:      "Responsable Monotributo",
			IngresosBrutos:    "27239676931",
			InicioActividades: "01/01/2021",
		},
		Receiver: entity.Receiver{
			DocTipo:        afip.DocTipoCUIT,
			DocNro:         "30500017704",
			RazonSocial:    "LA SEGUNDA COOPERATIVA LTDA DE SEGUROS GENERALES",
			Domicilio:      "Juan Manuel De Rosas 957 - Rosario Norte, Santa Fe",
			CondicionIVA:   "IVA Responsable Inscripto",
			CondicionIVAID: afip.CondIVAResponsableInscripto,
		},
		Request: entity.InvoiceRequest{
			PtoVta:   2,
			CbteTipo: afip.CbteFacturaC,
			CbteNro:  7,
			Concepto: afip.ConceptoProductos,
			DocTipo:  afip.DocTipoCUIT,
			DocNro:   30500017704,
			Fecha:    day(2026, time.January, 5),
			ImpTotal: total,
			ImpNeto:  total,
		},
		Result: entity.InvoiceResult{
			CbteNro:   7,
			Resultado: entity.ResultadoAprobado,
			CAE:       "74123456789012",
			CAEExpiry: day(2026, time.January, 15),
		},
		Descripcion: "Honorarios profesionales",
	}
}

func field(fields []pdf.Field, label string) string {
	for _, f := range fields {
		if f.Label == label {
			return f.Value
		}
	}
	return ""
}

func TestBuildContent_FacturaC(t *testing.T) {
	c, err := pdf.BuildContent(sampleDocument())
	require.NoError(t, err)

	assert.Equal(t, pdf.BannerOriginal, c.Banner)
	assert.Equal(t, "FACTURA", c.Title)
	assert.Equal(t, "C", c.Letter)
	assert.Equal(t, "COD. 011", c.CodeLabel)
	assert.Equal(t, "00002", field(c.Voucher, "Punto de Venta"))
	assert.Equal(t, "00000007", field(c.Voucher, "Comp. Nro"))
	assert.Equal(t, "05/01/2026", field(c.Voucher, "Fecha de Emisión"))
	assert.Equal(t, "05/01/2026", field(c.Period, "Período Facturado Desde"))
	assert.Equal(t, "05/01/2026", field(c.Period, "Fecha de Vto. para el pago"))
	assert.Equal(t, "30500017704", field(c.Receiver, "CUIT"))
	assert.Equal(t, "IVA Responsable Inscripto", field(c.Receiver, "Condición frente al IVA"))
	assert.Equal(t, "Otra", field(c.Receiver, "Condición de venta"))
	assert.Equal(t, "Honorarios profesionales", c.Item.Descripcion)
	assert.Equal(t, "1,00", c.Item.Cantidad)
	assert.Equal(t, "unidades", c.Item.Unidad)
	assert.Equal(t, "74123456789012", c.CAE)
	assert.Equal(t, "15/01/2026", c.CAEExpiry)
	assert.Equal(t, "2723967693111000274123456789012202601153", c.BarcodeData)
	assert.Empty(t, c.Associated)

	require.Len(t, c.Totals, 3)
	assert.Equal(t, "Subtotal: $", c.Totals[0].Label)
	assert.Equal(t, "Importe Otros Tributos: $", c.Totals[1].Label)
	assert.Equal(t, "Importe Total: $", c.Totals[2].Label)
	assert.Equal(t, c.Totals[0].Value, c.Totals[2].Value)
}

func TestBuildContent_QRPayload(t *testing.T) {
	c, err := pdf.BuildContent(sampleDocument())
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(c.QRURL, afip.QRBaseURL))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(c.QRURL, afip.QRBaseURL))
	require.NoError(t, err)
	assert.Equal(t,
		`{"ver":1,"fecha":"2026-01-05","cuit":27239676931,"ptoVta":2,"tipoCmp":11,"nroCmp":7,"importe":1000.00,"moneda":"PES","ctz":1,"tipoDocRec":80,"nroDocRec":30500017704,"tipoCodAut":"E","codAut":74123456789012}`,
		string(raw))
}

func TestBuildContent_EsDeterminista(t *testing.T) {
	a, err := pdf.BuildContent(sampleDocument())
	require.NoError(t, err)
	b, err := pdf.BuildContent(sampleDocument())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildContent_NotaCreditoReferenciaAsociado(t *testing.T) {
	doc := sampleDocument()
	doc.Request.CbteTipo = afip.CbteNotaCreditoC
	doc.Request.Associated = &entity.AssociatedInvoice{Tipo: afip.CbteFacturaC, PtoVta: 2, Nro: 7, CUIT: "27239676931", Fecha: day(2026, time.January, 5)}

	c, err := pdf.BuildContent(doc)
	require.NoError(t, err)
	assert.Equal(t, "NOTA DE CRÉDITO", c.Title)
	assert.Equal(t, "COD. 013", c.CodeLabel)
	assert.Equal(t, "Comprobante asociado: FACTURA C 00002-00000007 del 05/01/2026", c.Associated)
}

func TestBuildContent_FacturaADiscriminaIVA(t *testing.T) {
	doc := sampleDocument()
	doc.Request.CbteTipo = afip.CbteFacturaA
	doc.Request.ImpTotal = decimal.RequireFromString("1210")
	doc.Request.ImpNeto = decimal.RequireFromString("1000")
	doc.Request.ImpIVA = decimal.RequireFromString("210")
	doc.Request.VAT = []entity.VATLine{{ID: afip.AlicuotaIVA21, BaseImp: doc.Request.ImpNeto, Importe: doc.Request.ImpIVA}}

	c, err := pdf.BuildContent(doc)
	require.NoError(t, err)
	assert.Equal(t, "A", c.Letter)
	labels := make([]string, 0, len(c.Totals))
	for _, f := range c.Totals {
		labels = append(labels, f.Label)
	}
	assert.Equal(t, []string{"Importe Neto Gravado: $", "IVA 21%: $", "Importe Otros Tributos: $", "Importe Total: $"}, labels)
	assert.Equal(t, c.Item.Subtotal, c.Totals[0].Value)
}

func TestBuildContent_ServiciosUsaPeriodo(t *testing.T) {
	doc := sampleDocument()
	doc.Request.Concepto = afip.ConceptoServicios
	doc.Request.FchServDesde = day(2025, time.December, 1)
	doc.Request.FchServHasta = day(2025, time.December, 31)
	doc.Request.FchVtoPago = day(2026, time.January, 20)

	c, err := pdf.BuildContent(doc)
	require.NoError(t, err)
	assert.Equal(t, "01/12/2025", field(c.Period, "Período Facturado Desde"))
	assert.Equal(t, "31/12/2025", field(c.Period, "Hasta"))
	assert.Equal(t, "20/01/2026", field(c.Period, "Fecha de Vto. para el pago"))
}

func TestBuildContent_ReceptorDesconocido(t *testing.T) {
	doc := sampleDocument()
	doc.Receiver = entity.Receiver{DocTipo: afip.DocTipoDNI, DocNro: "23967693"}
	c, err := pdf.BuildContent(doc)
	require.NoError(t, err)
	assert.Equal(t, "23967693", field(c.Receiver, "DNI"))
	assert.Equal(t, "Cliente", field(c.Receiver, "Apellido y Nombre / Razón Social"))
}

func TestBuildContent_Errores(t *testing.T) {
	doc := sampleDocument()
	doc.Request.CbteTipo = 99
	_, err := pdf.BuildContent(doc)
	assert.ErrorIs(t, err, domain.ErrRender)

	doc = sampleDocument()
	doc.Result.CAE = "123"
	_, err = pdf.BuildContent(doc)
	assert.ErrorIs(t, err, domain.ErrRender)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "1.234.567,89", pdf.FormatMoney(decimal.RequireFromString("1234567.891")))
	assert.Equal(t, "0,00", pdf.FormatMoney(decimal.Zero))
}

func TestGenerateInvoicePDF(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator(nil)
	out, err := g.GenerateInvoicePDF(context.Background(), sampleDocument())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestLoadLogo(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/assets/logo.png", []byte{0x89, 'P', 'N', 'G'}, 0o644))

	logo, err := pdf.LoadLogo(fs, "/assets/logo.png")
	require.NoError(t, err)
	require.NotNil(t, logo)
	assert.Len(t, logo.Data, 4)

	logo, err = pdf.LoadLogo(fs, "")
	assert.NoError(t, err)
	assert.Nil(t, logo)

	_, err = pdf.LoadLogo(fs, "/assets/logo.gif")
	assert.Error(t, err)
	_, err = pdf.LoadLogo(fs, "/assets/otro.png")
	assert.Error(t, err)
}
