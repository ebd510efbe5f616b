// Package pdf implementa la representación impresa del comprobante electrónico AFIP
// (RG 1415 y RG 4291: código de barras y QR).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                        ORIGINAL                             │
//	│  EMISOR (logo + datos) │ LETRA / COD. │ FACTURA  PV - Nro    │
//	│  PERÍODO: Desde | Hasta | Vto. pago                          │
//	│  RECEPTOR: documento, razón social, IVA, domicilio, venta    │
//	│  TABLA: Código | Producto | Cant | U.Med | P.Unit | Bonif    │
//	│  TOTALES: Subtotal / Otros tributos / Importe total          │
//	│  QR │ CAE + Vto │ Código de barras + leyendas               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/skip2/go-qrcode"
	"github.com/spf13/afero"

	"github.com/jhoicas/facturador-afip/internal/domain"
	"github.com/jhoicas/facturador-afip/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorBlack     = &props.Color{Red: 0, Green: 0, Blue: 0}
	colorGray      = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLightGray = &props.Color{Red: 220, Green: 220, Blue: 220}

	boxed = &props.Cell{BorderType: border.Full, BorderColor: colorBlack, BorderThickness: 0.3}
)

// qrSize lado en píxeles del PNG del QR antes de escalarlo a la celda.
const qrSize = 256

// Logo imagen opcional del emisor.
type Logo struct {
	Data []byte
	Ext  extension.Type
}

// LoadLogo lee un logo PNG o JPG. Una ruta vacía devuelve nil sin error.
func LoadLogo(fs afero.Fs, path string) (*Logo, error) {
	if path == "" {
		return nil, nil
	}
	var ext extension.Type
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		ext = extension.Png
	case ".jpg", ".jpeg":
		ext = extension.Jpg
	default:
		return nil, fmt.Errorf("logo %s: formato no soportado (png o jpg)", path)
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("logo: %w", err)
	}
	return &Logo{Data: data, Ext: ext}, nil
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	logo *Logo
}

// NewMarotoPDFGenerator construye el generador; logo puede ser nil.
func NewMarotoPDFGenerator(logo *Logo) *MarotoPDFGenerator { return &MarotoPDFGenerator{logo: logo} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, doc entity.InvoiceDocument) ([]byte, error) {
	c, err := BuildContent(doc)
	if err != nil {
		return nil, err
	}
	qrPNG, err := qrcode.Encode(c.QRURL, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("%w: qr: %v", domain.ErrRender, err)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(fmt.Sprintf("%s %s %s-%s", c.Title, c.Letter, c.Voucher[0].Value, c.Voucher[1].Value), true).
		WithAuthor(c.IssuerName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(bannerRow(c))
	m.AddRows(line.NewRow(2))
	m.AddRows(headerRow(c, g.logo))
	m.AddRows(line.NewRow(2))
	m.AddRows(periodRow(c))
	m.AddRows(line.NewRow(2))
	m.AddRows(receiverRows(c)...)
	if c.Associated != "" {
		m.AddRows(row.New(7).Add(col.New(12).Add(
			text.New(c.Associated, props.Text{Style: fontstyle.Bold, Size: 8, Top: 2, Left: 2}),
		)))
	}
	m.AddRows(line.NewRow(4))
	m.AddRows(itemHeaderRow(), itemRow(c.Item))
	m.AddRows(line.NewRow(40))
	m.AddRows(totalsRows(c)...)
	m.AddRows(line.NewRow(6))
	m.AddRows(caeRows(c, qrPNG)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRender, err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func bannerRow(c Content) core.Row {
	return row.New(9).WithStyle(boxed).Add(col.New(12).Add(
		text.New(c.Banner, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 2}),
	))
}

// headerRow: emisor (izq), letra + código (centro), datos del comprobante (der).
func headerRow(c Content, logo *Logo) core.Row {
	left := col.New(5)
	top := 1.0
	if logo != nil {
		left.Add(image.NewFromBytes(logo.Data, logo.Ext, props.Rect{Percent: 30, Left: 0, Top: 0}))
		top = 14
	}
	left.Add(text.New(c.IssuerName, props.Text{Style: fontstyle.Bold, Size: 11, Top: top}))
	for i, f := range c.Issuer {
		left.Add(labeled(f, top+7+float64(i)*5))
	}

	letter := col.New(2).WithStyle(boxed).Add(
		text.New(c.Letter, props.Text{Style: fontstyle.Bold, Size: 24, Align: align.Center, Top: 3}),
		text.New(c.CodeLabel, props.Text{Size: 7, Align: align.Center, Top: 16}),
	)

	right := col.New(5).Add(
		text.New(c.Title, props.Text{Style: fontstyle.Bold, Size: 12, Top: 1, Left: 3}),
		text.New(fmt.Sprintf("%s: %s   %s: %s", c.Voucher[0].Label, c.Voucher[0].Value, c.Voucher[1].Label, c.Voucher[1].Value),
			props.Text{Style: fontstyle.Bold, Size: 8, Top: 8, Left: 3}),
	)
	for i, f := range c.Voucher[2:] {
		right.Add(labeledAt(f, 13+float64(i)*5, 3))
	}

	return row.New(38).WithStyle(boxed).Add(left, letter, right)
}

func periodRow(c Content) core.Row {
	r := row.New(8).WithStyle(boxed)
	for _, f := range c.Period {
		r.Add(col.New(4).Add(labeledAt(f, 2, 2)))
	}
	return r
}

func receiverRows(c Content) []core.Row {
	f := c.Receiver
	return []core.Row{
		row.New(6).Add(
			col.New(5).Add(labeledAt(f[0], 1, 2)),
			col.New(7).Add(labeledAt(f[1], 1, 2)),
		),
		row.New(6).Add(
			col.New(5).Add(labeledAt(f[2], 1, 2)),
			col.New(7).Add(labeledAt(f[3], 1, 2)),
		),
		row.New(6).Add(
			col.New(12).Add(labeledAt(f[4], 1, 2)),
		),
	}
}

func itemHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorLightGray, BorderType: border.Full, BorderColor: colorBlack}).Add(
		h("Código", 1, align.Center),
		h("Producto / Servicio", 4, align.Left),
		h("Cantidad", 1, align.Center),
		h("U. Medida", 1, align.Center),
		h("Precio Unit.", 2, align.Right),
		h("% Bonif", 1, align.Center),
		h("Imp. Bonif.", 1, align.Right),
		h("Subtotal", 1, align.Right),
	)
}

func itemRow(it Item) core.Row {
	cell := func(v string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(v, props.Text{Size: 7, Align: a, Top: 2, Left: 1, Right: 1}))
	}
	return row.New(9).Add(
		cell(it.Codigo, 1, align.Center),
		cell(it.Descripcion, 4, align.Left),
		cell(it.Cantidad, 1, align.Center),
		cell(it.Unidad, 1, align.Center),
		cell(it.PrecioUnit, 2, align.Right),
		cell(it.PorcBonif, 1, align.Center),
		cell(it.ImpBonif, 1, align.Right),
		cell(it.Subtotal, 1, align.Right),
	)
}

func totalsRows(c Content) []core.Row {
	rows := make([]core.Row, 0, len(c.Totals))
	for _, f := range c.Totals {
		rows = append(rows, row.New(6).Add(
			col.New(6),
			col.New(4).Add(text.New(f.Label, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1, Right: 2})),
			col.New(2).Add(text.New(f.Value, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// caeRows: QR, CAE con vencimiento, leyendas y código de barras Code128.
func caeRows(c Content, qrPNG []byte) []core.Row {
	return []core.Row{
		row.New(34).Add(
			col.New(3).Add(image.NewFromBytes(qrPNG, extension.Png, props.Rect{Percent: 95, Center: true})),
			col.New(5).Add(
				text.New(AuthorizedLabel, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6, Left: 2}),
				text.New(Disclaimer, props.Text{Size: 6, Top: 14, Left: 2, Color: colorGray}),
			),
			col.New(4).Add(
				labeledAt(Field{"CAE N°", c.CAE}, 6, 2),
				labeledAt(Field{"Fecha de Vto. de CAE", c.CAEExpiry}, 12, 2),
			),
		),
		row.New(16).Add(col.New(8).Add(code.NewBar(c.BarcodeData, props.Barcode{Percent: 100}))),
		row.New(5).Add(col.New(8).Add(
			text.New(c.BarcodeData, props.Text{Size: 7, Align: align.Center, Color: colorGray}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func labeled(f Field, top float64) core.Component { return labeledAt(f, top, 0) }

func labeledAt(f Field, top, left float64) core.Component {
	return text.New(f.Label+": "+f.Value, props.Text{Size: 8, Top: top, Left: left})
}
