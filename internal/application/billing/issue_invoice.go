package billing

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturador-afip/internal/application/dto"
	"github.com/jhoicas/facturador-afip/internal/domain"
	"github.com/jhoicas/facturador-afip/internal/domain/entity"
	"github.com/jhoicas/facturador-afip/pkg/afip"
	"github.com/jhoicas/facturador-afip/pkg/logger"
)

// AttemptState estado de un intento de emisión. Ninguna transición se reintenta automáticamente.
type AttemptState string

const (
	StateUnauthenticated AttemptState = "UNAUTHENTICATED"
	StateAuthenticated   AttemptState = "AUTHENTICATED"
	StateNumberQueried   AttemptState = "NUMBER_QUERIED"
	StateSubmitted       AttemptState = "SUBMITTED"
	StateApproved        AttemptState = "APPROVED"
	StateRejected        AttemptState = "REJECTED"
	StateFailed          AttemptState = "FAILED"
)

type attempt struct {
	state AttemptState
	log   *logger.Logger
}

func (a *attempt) to(next AttemptState) {
	a.log.Info().Str("from", string(a.state)).Str("to", string(next)).Msg("transición de estado")
	a.state = next
}

// finish registra el estado terminal según el tipo de error: rechazo de negocio o falla técnica.
func (a *attempt) finish(err error) error {
	if IsRejection(err) {
		a.log.Warn().Err(err).Msg("comprobante rechazado")
		a.to(StateRejected)
	} else {
		a.log.Error().Err(err).Msg("emisión fallida")
		a.to(StateFailed)
	}
	return err
}

// IsRejection distingue una decisión de AFIP sobre el comprobante de una falla de comunicación.
func IsRejection(err error) bool {
	return errors.Is(err, domain.ErrInvoiceRejected) ||
		errors.Is(err, domain.ErrRejectedWithoutReason) ||
		errors.Is(err, domain.ErrAuthorityErrors)
}

// IssueConfig parámetros del flujo de emisión.
type IssueConfig struct {
	RequestTimeout time.Duration // cubre autenticación y las dos llamadas a WSFE
	PublicPath     string        // prefijo de pdf_url, ej: /descargar_pdf
}

// IssueInvoiceUseCase emite un comprobante: credencial → último número → CAE → PDF.
type IssueInvoiceUseCase struct {
	issuers   *IssuerRegistry
	tokens    *TokenCache
	authority InvoiceAuthority
	receivers ReceiverDirectory
	generator InvoicePDFGenerator
	store     PDFStore
	clock     clockwork.Clock
	cfg       IssueConfig
	log       *logger.Logger
}

// NewIssueInvoiceUseCase construye el caso de uso.
func NewIssueInvoiceUseCase(
	issuers *IssuerRegistry,
	tokens *TokenCache,
	authority InvoiceAuthority,
	receivers ReceiverDirectory,
	generator InvoicePDFGenerator,
	store PDFStore,
	clock clockwork.Clock,
	cfg IssueConfig,
	log *logger.Logger,
) *IssueInvoiceUseCase {
	return &IssueInvoiceUseCase{
		issuers:   issuers,
		tokens:    tokens,
		authority: authority,
		receivers: receivers,
		generator: generator,
		store:     store,
		clock:     clock,
		cfg:       cfg,
		log:       log,
	}
}

// Issue valida la solicitud, resuelve el emisor (sin tocar la red si no existe) y ejecuta el flujo.
// El número de comprobante es siempre el último autorizado + 1. Si el PDF falla, el comprobante
// autorizado se devuelve igual, sin pdf_url.
func (uc *IssueInvoiceUseCase) Issue(ctx context.Context, in dto.IssueInvoiceRequest) (*dto.InvoiceData, error) {
	d, err := uc.buildDraft(in)
	if err != nil {
		return nil, err
	}
	issuer, err := uc.issuers.Resolve(in.CUITEmisor)
	if err != nil {
		return nil, err
	}
	uc.resolveReceiver(&d, in)

	requestID := uuid.NewString()
	a := &attempt{state: StateUnauthenticated, log: uc.log.With("request_id", requestID)}
	a.log.Info().Str("cuit", issuer.CUIT).Int("pto_vta", d.req.PtoVta).Int("tipo_cbte", d.req.CbteTipo).
		Str("importe", d.req.ImpTotal.StringFixed(2)).Msg("emisión iniciada")

	callCtx := ctx
	if uc.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, uc.cfg.RequestTimeout)
		defer cancel()
	}

	cred, err := uc.tokens.GetOrRefresh(callCtx, issuer)
	if err != nil {
		return nil, a.finish(err)
	}
	a.to(StateAuthenticated)

	last, err := uc.authority.LastAuthorized(callCtx, cred, d.req.PtoVta, d.req.CbteTipo)
	if err != nil {
		return nil, a.finish(err)
	}
	a.to(StateNumberQueried)

	req := d.req
	req.CbteNro = last + 1
	req.Fecha = today(uc.clock.Now())
	if req.Concepto != afip.ConceptoProductos {
		req.FchServDesde = orDate(req.FchServDesde, req.Fecha)
		req.FchServHasta = orDate(req.FchServHasta, req.Fecha)
		req.FchVtoPago = orDate(req.FchVtoPago, req.Fecha)
	}
	if req.Associated != nil {
		req.Associated.CUIT = issuer.CUIT
	}

	a.log.Info().Int64("ultimo", last).Int64("cbte_nro", req.CbteNro).Msg("solicitando CAE")
	a.to(StateSubmitted)
	result, err := uc.authority.RequestCAE(callCtx, cred, req)
	if err != nil {
		return nil, a.finish(err)
	}
	a.to(StateApproved)
	a.log.Info().Int64("cbte_nro", req.CbteNro).Str("cae", result.CAE).
		Time("cae_vto", result.CAEExpiry).Msg("comprobante autorizado")

	data := &dto.InvoiceData{
		CbteNro:     req.CbteNro,
		CAE:         result.CAE,
		Vencimiento: result.CAEExpiry.Format(afip.DateLayout),
		PuntoVenta:  req.PtoVta,
		TipoCbte:    req.CbteTipo,
		Fecha:       req.Fecha.Format(afip.DateLayout),
		RequestID:   requestID,
	}
	for _, o := range result.Observations {
		data.Observaciones = append(data.Observaciones, o.String())
	}

	result.CbteNro = req.CbteNro
	doc := entity.InvoiceDocument{
		Issuer:      issuer,
		Receiver:    d.receiver,
		Request:     req,
		Result:      result,
		Descripcion: d.descripcion,
	}
	data.PDFURL = uc.renderPDF(ctx, a.log, d.voucher, doc)
	return data, nil
}

// renderPDF genera y guarda el PDF. Un error aquí nunca invalida el comprobante ya autorizado.
func (uc *IssueInvoiceUseCase) renderPDF(ctx context.Context, log *logger.Logger, vt afip.VoucherType, doc entity.InvoiceDocument) string {
	if uc.generator == nil || uc.store == nil {
		return ""
	}
	pdfBytes, err := uc.generator.GenerateInvoicePDF(ctx, doc)
	if err != nil {
		log.Error().Err(err).Msg("no se pudo generar el PDF; el comprobante quedó autorizado")
		return ""
	}
	name := PDFFileName(vt, doc.Issuer.CUIT, doc.Request.PtoVta, doc.Request.CbteNro)
	if err := uc.store.Save(name, pdfBytes); err != nil {
		log.Error().Err(err).Str("archivo", name).Msg("no se pudo guardar el PDF; el comprobante quedó autorizado")
		return ""
	}
	log.Info().Str("archivo", name).Int("bytes", len(pdfBytes)).Msg("PDF generado")
	return path.Join(uc.cfg.PublicPath, name)
}

// PDFFileName nombre del PDF, ej: factura_27239676931_00002_00000007.pdf.
func PDFFileName(vt afip.VoucherType, cuit string, ptoVta int, nro int64) string {
	return fmt.Sprintf("%s_%s_%05d_%08d.pdf", vt.FilePrefix(), cuit, ptoVta, nro)
}

// ── Validación ────────────────────────────────────────────────────────────────

type draft struct {
	voucher     afip.VoucherType
	req         entity.InvoiceRequest
	receiver    entity.Receiver
	descripcion string
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

// buildDraft valida la solicitud y arma el comprobante sin número ni fecha.
func (uc *IssueInvoiceUseCase) buildDraft(in dto.IssueInvoiceRequest) (draft, error) {
	if afip.OnlyDigits(in.CUITEmisor) == "" {
		return draft{}, invalid("cuit_emisor es obligatorio")
	}
	if in.PuntoVenta <= 0 || in.PuntoVenta > 99998 {
		return draft{}, invalid("punto_venta %d fuera de rango", in.PuntoVenta)
	}
	vt, ok := afip.LookupVoucherType(in.TipoCbte)
	if !ok {
		return draft{}, invalid("tipo_cbte %d no soportado", in.TipoCbte)
	}
	// se valida el importe ya redondeado a centavos: 0.004 se enviaría como 0.00
	total := in.Importe.Round(2)
	if !total.IsPositive() {
		return draft{}, invalid("importe debe ser mayor a cero")
	}
	concepto := in.Concepto
	if concepto == 0 {
		concepto = afip.ConceptoProductos
	}
	if concepto < afip.ConceptoProductos || concepto > afip.ConceptoProductosServicios {
		return draft{}, invalid("concepto %d inválido (1, 2 o 3)", in.Concepto)
	}

	docTipo, docNro, err := receiverDocument(in)
	if err != nil {
		return draft{}, err
	}

	neto, iva, exento, vat, err := splitAmounts(vt, in, total)
	if err != nil {
		return draft{}, err
	}

	req := entity.InvoiceRequest{
		PtoVta:   in.PuntoVenta,
		CbteTipo: in.TipoCbte,
		Concepto: concepto,
		DocTipo:  docTipo,
		DocNro:   docNro,
		ImpTotal: total,
		ImpNeto:  neto,
		ImpOpEx:  exento,
		ImpIVA:   iva,
		VAT:      vat,
		MonID:    afip.MonedaPesos,
		MonCotiz: decimal.NewFromInt(1),
	}

	if concepto != afip.ConceptoProductos {
		for _, f := range []struct {
			raw string
			dst *time.Time
		}{
			{in.FechaServDesde, &req.FchServDesde},
			{in.FechaServHasta, &req.FchServHasta},
			{in.FechaVtoPago, &req.FchVtoPago},
		} {
			if f.raw == "" {
				continue
			}
			t, err := afip.ParseDate(f.raw)
			if err != nil {
				return draft{}, invalid("%v", err)
			}
			*f.dst = t
		}
	}

	if vt.RequiresAssociated() {
		if in.CbteAsocNro <= 0 {
			return draft{}, invalid("cbte_asoc_nro es obligatorio para %s", vt.Name)
		}
		asoc := &entity.AssociatedInvoice{
			Tipo:   in.CbteAsocTipo,
			PtoVta: in.CbteAsocPtoVta,
			Nro:    in.CbteAsocNro,
		}
		if asoc.Tipo == 0 {
			asoc.Tipo = vt.InvoiceCode()
		}
		if _, ok := afip.LookupVoucherType(asoc.Tipo); !ok {
			return draft{}, invalid("cbte_asoc_tipo %d no soportado", asoc.Tipo)
		}
		if asoc.PtoVta == 0 {
			asoc.PtoVta = in.PuntoVenta
		}
		if in.CbteAsocFecha != "" {
			if asoc.Fecha, err = afip.ParseDate(in.CbteAsocFecha); err != nil {
				return draft{}, invalid("%v", err)
			}
		}
		req.Associated = asoc
	}

	if in.CondicionIVAReceptorID != 0 && afip.VATConditionName(in.CondicionIVAReceptorID) == "" {
		return draft{}, invalid("condicion_iva_receptor_id %d desconocida", in.CondicionIVAReceptorID)
	}

	return draft{voucher: vt, req: req, descripcion: in.Descripcion}, nil
}

// resolveReceiver completa los datos visibles del receptor. La condición frente al IVA explícita
// del request tiene prioridad sobre la del directorio.
func (uc *IssueInvoiceUseCase) resolveReceiver(d *draft, in dto.IssueInvoiceRequest) {
	digits := afip.OnlyDigits(in.CUITReceptor)
	receiver, _ := uc.receivers.Lookup(d.req.DocTipo, digits)
	receiver.DocTipo = d.req.DocTipo
	receiver.DocNro = digits
	if in.CondicionIVAReceptorID != 0 {
		receiver.CondicionIVAID = in.CondicionIVAReceptorID
		receiver.CondicionIVA = afip.VATConditionName(in.CondicionIVAReceptorID)
	}
	d.receiver = receiver
	d.req.CondicionIVAReceptorID = receiver.CondicionIVAID
}

// receiverDocument infiere tipo y número de documento: 11 dígitos → CUIT (con dígito verificador), si no DNI.
func receiverDocument(in dto.IssueInvoiceRequest) (int, int64, error) {
	digits := afip.OnlyDigits(in.CUITReceptor)
	docTipo := in.DocTipo
	if docTipo == 0 {
		if digits == "" {
			docTipo = afip.DocTipoConsumidorFinal
		} else {
			docTipo = afip.DocTypeFor(digits)
		}
	}
	switch docTipo {
	case afip.DocTipoConsumidorFinal:
		if digits == "" {
			return docTipo, 0, nil
		}
	case afip.DocTipoCUIT, afip.DocTipoCUIL:
		if err := afip.ValidateCUIT(digits); err != nil {
			return 0, 0, invalid("cuit_receptor: %v", err)
		}
	case afip.DocTipoDNI:
		if len(digits) < 7 || len(digits) > 8 {
			return 0, 0, invalid("DNI del receptor %q inválido", in.CUITReceptor)
		}
	default:
		return 0, 0, invalid("doc_tipo %d no soportado (80, 86, 96 o 99)", docTipo)
	}
	nro, err := afip.ParseDocNumber(digits)
	if err != nil {
		return 0, 0, invalid("%v", err)
	}
	return docTipo, nro, nil
}

// splitAmounts reparte el total en neto, IVA y exento.
// Letra C: neto = total. Letras A/B/M: si no llega importe_neto, el total se considera IVA incluido.
func splitAmounts(vt afip.VoucherType, in dto.IssueInvoiceRequest, total decimal.Decimal) (neto, iva, exento decimal.Decimal, vat []entity.VATLine, err error) {
	zero := decimal.Zero
	if !vt.DiscriminatesVAT() {
		if in.ImporteIVA != nil && !in.ImporteIVA.IsZero() {
			return zero, zero, zero, nil, invalid("los comprobantes %s no discriminan IVA", vt.Letter)
		}
		return total, zero, zero, nil, nil
	}

	alicuota := in.AlicuotaIVAID
	if alicuota == 0 {
		alicuota = afip.AlicuotaIVA21
	}
	rate, ok := afip.VATRate(alicuota)
	if !ok {
		return zero, zero, zero, nil, invalid("alicuota_iva_id %d desconocida", alicuota)
	}

	exento = zero
	if in.ImporteExento != nil {
		exento = in.ImporteExento.Round(2)
	}
	if in.ImporteNeto != nil {
		neto = in.ImporteNeto.Round(2)
		if in.ImporteIVA != nil {
			iva = in.ImporteIVA.Round(2)
		} else {
			iva = neto.Mul(rate).Round(2)
		}
	} else {
		gravado := total.Sub(exento)
		neto = gravado.Div(decimal.NewFromInt(1).Add(rate)).Round(2)
		iva = gravado.Sub(neto)
	}
	if neto.IsNegative() || iva.IsNegative() || exento.IsNegative() {
		return zero, zero, zero, nil, invalid("los importes no pueden ser negativos")
	}
	if sum := neto.Add(iva).Add(exento); !sum.Equal(total) {
		return zero, zero, zero, nil, invalid("importe_neto + importe_iva + importe_exento (%s) no coincide con importe (%s)",
			sum.StringFixed(2), total.StringFixed(2))
	}
	if neto.IsPositive() {
		vat = []entity.VATLine{{ID: alicuota, BaseImp: neto, Importe: iva}}
	}
	return neto, iva, exento, vat, nil
}

func today(now time.Time) time.Time {
	y, m, d := now.In(afip.ArgentinaZone).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, afip.ArgentinaZone)
}

func orDate(t, def time.Time) time.Time {
	if t.IsZero() {
		return def
	}
	return t
}
