package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jhoicas/facturador-afip/internal/application/billing"
	"github.com/jhoicas/facturador-afip/internal/application/billing/mocks"
	"github.com/jhoicas/facturador-afip/internal/application/dto"
	"github.com/jhoicas/facturador-afip/internal/domain"
	"github.com/jhoicas/facturador-afip/internal/domain/entity"
	"github.com/jhoicas/facturador-afip/pkg/afip"
	"github.com/jhoicas/facturador-afip/pkg/logger"
)

type issueFixture struct {
	auth      *mocks.MockAuthenticator
	authority *mocks.MockInvoiceAuthority
	receivers *mocks.MockReceiverDirectory
	generator *mocks.MockInvoicePDFGenerator
	store     *mocks.MockPDFStore
	uc        *billing.IssueInvoiceUseCase
}

var laSegunda = entity.Receiver{
	RazonSocial:    "LA SEGUNDA COOPERATIVA LTDA DE SEGUROS GENERALES",
	Domicilio:      "Juan Manuel De Rosas 957 - Rosario Norte, Santa Fe",
	CondicionIVA:   "IVA Responsable Inscripto",
	CondicionIVAID: afip.CondIVAResponsableInscripto,
}

func newIssueFixture(t *testing.T) *issueFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &issueFixture{
		auth:      mocks.NewMockAuthenticator(ctrl),
		authority: mocks.NewMockInvoiceAuthority(ctrl),
		receivers: mocks.NewMockReceiverDirectory(ctrl),
		generator: mocks.NewMockInvoicePDFGenerator(ctrl),
		store:     mocks.NewMockPDFStore(ctrl),
	}
	registry, err := billing.NewIssuerRegistry([]entity.Issuer{{
		CUIT:         "27239676931",
		RazonSocial:  "EMISORA DE PRUEBA",
		CondicionIVA: "Responsable Monotributo",
	}})
	require.NoError(t, err)

	// 15:00 UTC = 12:00 en Argentina
	clock := clockwork.NewFakeClockAt(time.Date(2026, 1, 5, 15, 0, 0, 0, time.UTC))
	tokens := billing.NewTokenCache(f.auth, clock, 15*time.Minute, logger.Nop())
	f.uc = billing.NewIssueInvoiceUseCase(registry, tokens, f.authority, f.receivers, f.generator, f.store, clock,
		billing.IssueConfig{RequestTimeout: 30 * time.Second, PublicPath: "/descargar_pdf"}, logger.Nop())
	return f
}

func (f *issueFixture) expectLogin() {
	f.auth.EXPECT().Authenticate(gomock.Any(), gomock.Any()).
		Return(entity.Credential{Token: "tok", Sign: "sig", ExpiresAt: time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)}, nil)
}

func approved(cae string) entity.InvoiceResult {
	return entity.InvoiceResult{
		Resultado: entity.ResultadoAprobado,
		CAE:       cae,
		CAEExpiry: time.Date(2026, 1, 15, 0, 0, 0, 0, afip.ArgentinaZone),
	}
}

func scenarioRequest() dto.IssueInvoiceRequest {
	return dto.IssueInvoiceRequest{
		CUITEmisor:   "27239676931",
		CUITReceptor: "30500017704",
		PuntoVenta:   2,
		TipoCbte:     afip.CbteFacturaC,
		Importe:      decimal.RequireFromString("1000.00"),
		Descripcion:  "Honorarios profesionales",
	}
}

func TestIssue_FacturaC_NumeraUltimoMasUno(t *testing.T) {
	f := newIssueFixture(t)
	f.expectLogin()
	f.receivers.EXPECT().Lookup(afip.DocTipoCUIT, "30500017704").Return(laSegunda, true)
	f.authority.EXPECT().LastAuthorized(gomock.Any(), gomock.Any(), 2, afip.CbteFacturaC).
		DoAndReturn(func(ctx context.Context, cred entity.Credential, _, _ int) (int64, error) {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			assert.Equal(t, "tok", cred.Token)
			return 6, nil
		})

	var sent entity.InvoiceRequest
	f.authority.EXPECT().RequestCAE(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ entity.Credential, req entity.InvoiceRequest) (entity.InvoiceResult, error) {
			sent = req
			return approved("74123456789012"), nil
		})

	var doc entity.InvoiceDocument
	f.generator.EXPECT().GenerateInvoicePDF(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d entity.InvoiceDocument) ([]byte, error) {
			doc = d
			return []byte("%PDF-1.3"), nil
		})
	f.store.EXPECT().Save("factura_27239676931_00002_00000007.pdf", []byte("%PDF-1.3")).Return(nil)

	got, err := f.uc.Issue(context.Background(), scenarioRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(7), got.CbteNro)
	assert.Equal(t, "74123456789012", got.CAE)
	assert.Equal(t, "20260115", got.Vencimiento)
	assert.Equal(t, "20260105", got.Fecha)
	assert.Equal(t, "/descargar_pdf/factura_27239676931_00002_00000007.pdf", got.PDFURL)
	assert.NotEmpty(t, got.RequestID)

	assert.Equal(t, int64(7), sent.CbteNro)
	assert.Equal(t, afip.ConceptoProductos, sent.Concepto)
	assert.Equal(t, afip.DocTipoCUIT, sent.DocTipo)
	assert.Equal(t, int64(30500017704), sent.DocNro)
	assert.True(t, sent.ImpTotal.Equal(decimal.NewFromInt(1000)))
	assert.True(t, sent.ImpNeto.Equal(decimal.NewFromInt(1000)))
	assert.True(t, sent.ImpIVA.IsZero())
	assert.Empty(t, sent.VAT)
	assert.Nil(t, sent.Associated)
	assert.Equal(t, afip.CondIVAResponsableInscripto, sent.CondicionIVAReceptorID)
	assert.True(t, sent.FchServDesde.IsZero())

	assert.Equal(t, "LA SEGUNDA COOPERATIVA LTDA DE SEGUROS GENERALES", doc.Receiver.RazonSocial)
	assert.Equal(t, "Honorarios profesionales", doc.Descripcion)
	assert.Equal(t, int64(7), doc.Result.CbteNro)
}

func TestIssue_EmisorDesconocido_SinLlamadasDeRed(t *testing.T) {
	f := newIssueFixture(t)
	in := scenarioRequest()
	in.CUITEmisor = "20111111112"

	_, err := f.uc.Issue(context.Background(), in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIssuerNotConfigured))
}

func TestIssue_LoginRechazado_NoEnviaComprobante(t *testing.T) {
	f := newIssueFixture(t)
	f.receivers.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(laSegunda, true)
	f.auth.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(entity.Credential{},
		&domain.FaultError{Kind: domain.ErrAuthFault, Code: "ns1:coe.notAuthorized", Reason: "Computador no autorizado a acceder al servicio"})

	_, err := f.uc.Issue(context.Background(), scenarioRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAuthFault))
	assert.Contains(t, err.Error(), "no autorizado")
	assert.False(t, billing.IsRejection(err))
}

func TestIssue_Rechazado_NoGeneraPDF(t *testing.T) {
	f := newIssueFixture(t)
	f.expectLogin()
	f.receivers.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(laSegunda, true)
	f.authority.EXPECT().LastAuthorized(gomock.Any(), gomock.Any(), 2, afip.CbteFacturaC).Return(int64(6), nil)
	f.authority.EXPECT().RequestCAE(gomock.Any(), gomock.Any(), gomock.Any()).Return(entity.InvoiceResult{},
		&domain.RejectionError{Observations: []entity.Observation{{Code: 10016, Msg: "El numero o fecha del comprobante no se corresponde con el proximo a autorizar"}}})

	_, err := f.uc.Issue(context.Background(), scenarioRequest())
	require.Error(t, err)

	var rej *domain.RejectionError
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, 10016, rej.Observations[0].Code)
	assert.True(t, billing.IsRejection(err))
}

func TestIssue_RechazoSinMotivo_EsDistinguible(t *testing.T) {
	f := newIssueFixture(t)
	f.expectLogin()
	f.receivers.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(laSegunda, true)
	f.authority.EXPECT().LastAuthorized(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
	f.authority.EXPECT().RequestCAE(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(entity.InvoiceResult{}, domain.ErrRejectedWithoutReason)

	_, err := f.uc.Issue(context.Background(), scenarioRequest())
	assert.ErrorIs(t, err, domain.ErrRejectedWithoutReason)
	assert.NotErrorIs(t, err, domain.ErrInvoiceRejected)
}

func TestIssue_NotaCredito_EnviaComprobanteAsociado(t *testing.T) {
	f := newIssueFixture(t)
	f.expectLogin()
	f.receivers.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(laSegunda, true)
	f.authority.EXPECT().LastAuthorized(gomock.Any(), gomock.Any(), 2, afip.CbteNotaCreditoC).Return(int64(0), nil)

	var sent entity.InvoiceRequest
	f.authority.EXPECT().RequestCAE(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ entity.Credential, req entity.InvoiceRequest) (entity.InvoiceResult, error) {
			sent = req
			return approved("74999999999999"), nil
		})
	f.generator.EXPECT().GenerateInvoicePDF(gomock.Any(), gomock.Any()).Return([]byte("%PDF"), nil)
	f.store.EXPECT().Save("nota_credito_27239676931_00002_00000001.pdf", gomock.Any()).Return(nil)

	in := scenarioRequest()
	in.TipoCbte = afip.CbteNotaCreditoC
	in.CbteAsocNro = 7

	got, err := f.uc.Issue(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.CbteNro)

	require.NotNil(t, sent.Associated)
	assert.Equal(t, afip.CbteFacturaC, sent.Associated.Tipo)
	assert.Equal(t, 2, sent.Associated.PtoVta)
	assert.Equal(t, int64(7), sent.Associated.Nro)
	assert.Equal(t, "27239676931", sent.Associated.CUIT)
}

func TestIssue_FallaPDF_DevuelveComprobanteAutorizado(t *testing.T) {
	f := newIssueFixture(t)
	f.expectLogin()
	f.receivers.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(laSegunda, true)
	f.authority.EXPECT().LastAuthorized(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(6), nil)
	f.authority.EXPECT().RequestCAE(gomock.Any(), gomock.Any(), gomock.Any()).Return(approved("74123456789012"), nil)
	f.generator.EXPECT().GenerateInvoicePDF(gomock.Any(), gomock.Any()).Return(nil, domain.ErrRender)

	got, err := f.uc.Issue(context.Background(), scenarioRequest())
	require.NoError(t, err)
	assert.Equal(t, "74123456789012", got.CAE)
	assert.Empty(t, got.PDFURL)
}

func TestIssue_FacturaB_DiscriminaIVAIncluido(t *testing.T) {
	f := newIssueFixture(t)
	f.expectLogin()
	f.receivers.EXPECT().Lookup(afip.DocTipoDNI, "23967693").
		Return(entity.Receiver{RazonSocial: "Cliente", CondicionIVA: "Consumidor Final", CondicionIVAID: afip.CondIVAConsumidorFinal}, false)
	f.authority.EXPECT().LastAuthorized(gomock.Any(), gomock.Any(), 2, afip.CbteFacturaB).Return(int64(41), nil)

	var sent entity.InvoiceRequest
	f.authority.EXPECT().RequestCAE(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ entity.Credential, req entity.InvoiceRequest) (entity.InvoiceResult, error) {
			sent = req
			return approved("74000000000001"), nil
		})
	f.generator.EXPECT().GenerateInvoicePDF(gomock.Any(), gomock.Any()).Return([]byte("%PDF"), nil)
	f.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	in := scenarioRequest()
	in.TipoCbte = afip.CbteFacturaB
	in.CUITReceptor = "23.967.693"
	in.Importe = decimal.RequireFromString("1210")

	_, err := f.uc.Issue(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, int64(42), sent.CbteNro)
	assert.Equal(t, afip.DocTipoDNI, sent.DocTipo)
	assert.Equal(t, "1000.00", sent.ImpNeto.StringFixed(2))
	assert.Equal(t, "210.00", sent.ImpIVA.StringFixed(2))
	require.Len(t, sent.VAT, 1)
	assert.Equal(t, afip.AlicuotaIVA21, sent.VAT[0].ID)
	assert.Equal(t, afip.CondIVAConsumidorFinal, sent.CondicionIVAReceptorID)
}

func TestIssue_ServiciosCompletaPeriodoConFechaDeEmision(t *testing.T) {
	f := newIssueFixture(t)
	f.expectLogin()
	f.receivers.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(laSegunda, true)
	f.authority.EXPECT().LastAuthorized(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

	var sent entity.InvoiceRequest
	f.authority.EXPECT().RequestCAE(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ entity.Credential, req entity.InvoiceRequest) (entity.InvoiceResult, error) {
			sent = req
			return approved("74000000000002"), nil
		})
	f.generator.EXPECT().GenerateInvoicePDF(gomock.Any(), gomock.Any()).Return([]byte("%PDF"), nil)
	f.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	in := scenarioRequest()
	in.Concepto = afip.ConceptoServicios
	in.FechaServDesde = "2026-01-01"

	_, err := f.uc.Issue(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "20260101", sent.FchServDesde.Format(afip.DateLayout))
	assert.Equal(t, "20260105", sent.FchServHasta.Format(afip.DateLayout))
	assert.Equal(t, "20260105", sent.FchVtoPago.Format(afip.DateLayout))
}

func TestIssue_ValidacionDeEntrada(t *testing.T) {
	neto := decimal.NewFromInt(900)
	tests := []struct {
		name   string
		mutate func(*dto.IssueInvoiceRequest)
	}{
		{"importe cero", func(in *dto.IssueInvoiceRequest) { in.Importe = decimal.Zero }},
		{"importe negativo", func(in *dto.IssueInvoiceRequest) { in.Importe = decimal.NewFromInt(-5) }},
		{"importe que redondea a cero", func(in *dto.IssueInvoiceRequest) { in.Importe = decimal.RequireFromString("0.004") }},
		{"tipo no soportado", func(in *dto.IssueInvoiceRequest) { in.TipoCbte = 99 }},
		{"punto de venta cero", func(in *dto.IssueInvoiceRequest) { in.PuntoVenta = 0 }},
		{"cuit receptor con dígito inválido", func(in *dto.IssueInvoiceRequest) { in.CUITReceptor = "30500017705" }},
		{"concepto inválido", func(in *dto.IssueInvoiceRequest) { in.Concepto = 4 }},
		{"nota de crédito sin asociado", func(in *dto.IssueInvoiceRequest) { in.TipoCbte = afip.CbteNotaCreditoC }},
		{"emisor vacío", func(in *dto.IssueInvoiceRequest) { in.CUITEmisor = "" }},
		{"fecha de servicio inválida", func(in *dto.IssueInvoiceRequest) {
			in.Concepto = afip.ConceptoServicios
			in.FechaServDesde = "31-31-2026"
		}},
		{"suma de importes no coincide", func(in *dto.IssueInvoiceRequest) {
			in.TipoCbte = afip.CbteFacturaA
			in.ImporteNeto = &neto
		}},
		{"letra C con IVA", func(in *dto.IssueInvoiceRequest) { in.ImporteIVA = &neto }},
		{"condición IVA desconocida", func(in *dto.IssueInvoiceRequest) { in.CondicionIVAReceptorID = 3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newIssueFixture(t)
			in := scenarioRequest()
			tt.mutate(&in)

			_, err := f.uc.Issue(context.Background(), in)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestPDFFileName(t *testing.T) {
	vt, _ := afip.LookupVoucherType(afip.CbteFacturaC)
	assert.Equal(t, "factura_27239676931_00002_00000007.pdf", billing.PDFFileName(vt, "27239676931", 2, 7))
}
