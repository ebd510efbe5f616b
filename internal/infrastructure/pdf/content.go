package pdf

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/facturador-afip/internal/domain"
	"github.com/jhoicas/facturador-afip/internal/domain/entity"
	"github.com/jhoicas/facturador-afip/pkg/afip"
)

// Leyendas fijas del comprobante.
const (
	BannerOriginal  = "ORIGINAL"
	CondicionVenta  = "Otra"
	AuthorizedLabel = "Comprobante Autorizado"
	Disclaimer      = "Esta Agencia no se responsabiliza por los datos ingresados en el detalle de la operación"
)

// Field par etiqueta/valor impreso.
type Field struct {
	Label string
	Value string
}

// Item única línea de detalle.
type Item struct {
	Codigo      string
	Descripcion string
	Cantidad    string
	Unidad      string
	PrecioUnit  string
	PorcBonif   string
	ImpBonif    string
	Subtotal    string
}

// Content textos visibles del comprobante más el QR y el código de barras.
// Depende solo del documento: mismas entradas, mismo contenido.
type Content struct {
	Banner      string
	Title       string // FACTURA, NOTA DE CRÉDITO...
	Letter      string
	CodeLabel   string // COD. 011
	IssuerName  string
	Issuer      []Field
	Voucher     []Field // punto de venta, número, fecha, CUIT, IIBB, inicio de actividades
	Period      []Field
	Receiver    []Field
	Associated  string
	Item        Item
	Totals      []Field
	CAE         string
	CAEExpiry   string // DD/MM/AAAA
	QRURL       string
	BarcodeData string
}

var printer = message.NewPrinter(language.MustParse("es-AR"))

// FormatMoney formatea con separadores argentinos: 1234567.8 → "1.234.567,80".
func FormatMoney(d decimal.Decimal) string {
	return printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

func formatDate(t time.Time) string { return t.Format("02/01/2006") }

// BuildContent arma los textos del comprobante. Error con domain.ErrRender si el tipo es desconocido
// o si faltan datos para el QR o el código de barras.
func BuildContent(doc entity.InvoiceDocument) (Content, error) {
	req, res := doc.Request, doc.Result
	vt, ok := afip.LookupVoucherType(req.CbteTipo)
	if !ok {
		return Content{}, fmt.Errorf("%w: tipo de comprobante %d", domain.ErrRender, req.CbteTipo)
	}

	qrURL, err := afip.BuildQRURL(afip.QRInput{
		Fecha:      req.Fecha,
		CUIT:       doc.Issuer.CUIT,
		PtoVta:     req.PtoVta,
		TipoCmp:    req.CbteTipo,
		NroCmp:     req.CbteNro,
		Importe:    req.ImpTotal,
		TipoDocRec: req.DocTipo,
		NroDocRec:  req.DocNro,
		CAE:        res.CAE,
	})
	if err != nil {
		return Content{}, fmt.Errorf("%w: %v", domain.ErrRender, err)
	}
	barcode, err := afip.BarcodeDigits(doc.Issuer.CUIT, req.CbteTipo, req.PtoVta, res.CAE, res.CAEExpiry)
	if err != nil {
		return Content{}, fmt.Errorf("%w: %v", domain.ErrRender, err)
	}

	fecha := formatDate(req.Fecha)
	c := Content{
		Banner:     BannerOriginal,
		Title:      vt.Name,
		Letter:     vt.Letter,
		CodeLabel:  vt.CodeLabel(),
		IssuerName: doc.Issuer.RazonSocial,
		Issuer: []Field{
			{"Razón Social", doc.Issuer.RazonSocial},
			{"Domicilio Comercial", doc.Issuer.Domicilio},
			{"Condición frente al IVA", doc.Issuer.CondicionIVA},
		},
		Voucher: []Field{
			{"Punto de Venta", fmt.Sprintf("%05d", req.PtoVta)},
			{"Comp. Nro", fmt.Sprintf("%08d", req.CbteNro)},
			{"Fecha de Emisión", fecha},
			{"CUIT", doc.Issuer.CUIT},
			{"Ingresos Brutos", nonEmpty(doc.Issuer.IngresosBrutos, doc.Issuer.CUIT)},
			{"Fecha de Inicio de Actividades", doc.Issuer.InicioActividades},
		},
		Period: []Field{
			{"Período Facturado Desde", dateOr(req.FchServDesde, fecha)},
			{"Hasta", dateOr(req.FchServHasta, fecha)},
			{"Fecha de Vto. para el pago", dateOr(req.FchVtoPago, fecha)},
		},
		Receiver: []Field{
			{docLabel(doc.Receiver.DocTipo), nonEmpty(doc.Receiver.DocNro, strconv.FormatInt(req.DocNro, 10))},
			{"Apellido y Nombre / Razón Social", nonEmpty(doc.Receiver.RazonSocial, "Cliente")},
			{"Condición frente al IVA", doc.Receiver.CondicionIVA},
			{"Domicilio", doc.Receiver.Domicilio},
			{"Condición de venta", CondicionVenta},
		},
		CAE:         res.CAE,
		CAEExpiry:   formatDate(res.CAEExpiry),
		QRURL:       qrURL,
		BarcodeData: barcode,
	}

	if a := req.Associated; a != nil {
		name := "Comprobante"
		if avt, ok := afip.LookupVoucherType(a.Tipo); ok {
			name = avt.Name + " " + avt.Letter
		}
		c.Associated = fmt.Sprintf("Comprobante asociado: %s %05d-%08d", name, a.PtoVta, a.Nro)
		if !a.Fecha.IsZero() {
			c.Associated += " del " + formatDate(a.Fecha)
		}
	}

	subtotal := req.ImpTotal
	if showsVAT(vt) {
		subtotal = req.ImpNeto.Add(req.ImpOpEx).Add(req.ImpTotConc)
	}
	zero := FormatMoney(decimal.Zero)
	c.Item = Item{
		Descripcion: doc.Descripcion,
		Cantidad:    "1,00",
		Unidad:      "unidades",
		PrecioUnit:  FormatMoney(subtotal),
		PorcBonif:   zero,
		ImpBonif:    zero,
		Subtotal:    FormatMoney(subtotal),
	}
	c.Totals = totals(vt, req)
	return c, nil
}

func totals(vt afip.VoucherType, req entity.InvoiceRequest) []Field {
	if !showsVAT(vt) {
		return []Field{
			{"Subtotal: $", FormatMoney(req.ImpTotal.Sub(req.ImpTrib))},
			{"Importe Otros Tributos: $", FormatMoney(req.ImpTrib)},
			{"Importe Total: $", FormatMoney(req.ImpTotal)},
		}
	}
	out := []Field{{"Importe Neto Gravado: $", FormatMoney(req.ImpNeto)}}
	for _, v := range req.VAT {
		rate, _ := afip.VATRate(v.ID)
		out = append(out, Field{
			Label: fmt.Sprintf("IVA %s%%: $", rate.Mul(decimal.NewFromInt(100)).String()),
			Value: FormatMoney(v.Importe),
		})
	}
	if !req.ImpOpEx.IsZero() {
		out = append(out, Field{"Importe Exento: $", FormatMoney(req.ImpOpEx)})
	}
	return append(out,
		Field{"Importe Otros Tributos: $", FormatMoney(req.ImpTrib)},
		Field{"Importe Total: $", FormatMoney(req.ImpTotal)},
	)
}

// showsVAT los comprobantes A y M detallan neto e IVA; B y C muestran el total con IVA incluido.
func showsVAT(vt afip.VoucherType) bool { return vt.Letter == "A" || vt.Letter == "M" }

func docLabel(docTipo int) string {
	switch docTipo {
	case afip.DocTipoCUIT:
		return "CUIT"
	case afip.DocTipoCUIL:
		return "CUIL"
	case afip.DocTipoDNI:
		return "DNI"
	default:
		return "Doc."
	}
}

func dateOr(t time.Time, fallback string) string {
	if t.IsZero() {
		return fallback
	}
	return formatDate(t)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
