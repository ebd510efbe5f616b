package afip

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador-afip/internal/domain"
	"github.com/jhoicas/facturador-afip/internal/domain/entity"
	pkgafip "github.com/jhoicas/facturador-afip/pkg/afip"
	"github.com/jhoicas/facturador-afip/pkg/logger"
)

const (
	actionUltimo    = "http://ar.gov.afip.dif.FEV1/FECompUltimoAutorizado"
	actionSolicitar = "http://ar.gov.afip.dif.FEV1/FECAESolicitar"
	actionDummy     = "http://ar.gov.afip.dif.FEV1/FEDummy"
)

var testCred = entity.Credential{CUIT: "27239676931", Token: "TOKEN", Sign: "SIGN", ExpiresAt: time.Now().Add(time.Hour)}

func newTestWSFE(t *testing.T, fixtures map[string]string) (*WSFEClient, *soapStub) {
	t.Helper()
	stub, srv := newSOAPStub(t, fixtures)
	return NewWSFEClient(srv.URL, srv.Client(), logger.Nop()), stub
}

func facturaC() entity.InvoiceRequest {
	return entity.InvoiceRequest{
		PtoVta:                 2,
		CbteTipo:               pkgafip.CbteFacturaC,
		CbteNro:                7,
		Concepto:               pkgafip.ConceptoServicios,
		DocTipo:                pkgafip.DocTipoCUIT,
		DocNro:                 30500017704,
		Fecha:                  time.Date(2026, 1, 5, 0, 0, 0, 0, pkgafip.ArgentinaZone),
		ImpTotal:               decimal.RequireFromString("1000"),
		ImpNeto:                decimal.RequireFromString("1000"),
		FchServDesde:           time.Date(2026, 1, 1, 0, 0, 0, 0, pkgafip.ArgentinaZone),
		FchServHasta:           time.Date(2026, 1, 31, 0, 0, 0, 0, pkgafip.ArgentinaZone),
		FchVtoPago:             time.Date(2026, 2, 4, 0, 0, 0, 0, pkgafip.ArgentinaZone),
		MonID:                  pkgafip.MonedaPesos,
		CondicionIVAReceptorID: pkgafip.CondIVAResponsableInscripto,
	}
}

func TestWSFEClient_LastAuthorized(t *testing.T) {
	client, stub := newTestWSFE(t, map[string]string{actionUltimo: "wsfe_ultimo.xml"})

	n, err := client.LastAuthorized(context.Background(), testCred, 2, pkgafip.CbteFacturaC)
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)

	reqs := stub.calls(actionUltimo)
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0], `<FECompUltimoAutorizado xmlns="http://ar.gov.afip.dif.FEV1/">`)
	assert.Contains(t, reqs[0], `<Auth><Token>TOKEN</Token><Sign>SIGN</Sign><Cuit>27239676931</Cuit></Auth>`)
	assert.Contains(t, reqs[0], `<PtoVta>2</PtoVta><CbteTipo>11</CbteTipo>`)
}

func TestWSFEClient_LastAuthorized_Errors(t *testing.T) {
	client, _ := newTestWSFE(t, map[string]string{actionUltimo: "wsfe_ultimo_errors.xml"})

	_, err := client.LastAuthorized(context.Background(), testCred, 2, pkgafip.CbteFacturaC)
	var authErr *domain.AuthorityError
	require.True(t, errors.As(err, &authErr))
	require.Len(t, authErr.Errors, 1)
	assert.Equal(t, 600, authErr.Errors[0].Code)
}

func TestWSFEClient_RequestCAE_Aprobado(t *testing.T) {
	client, stub := newTestWSFE(t, map[string]string{actionSolicitar: "wsfe_cae_approved.xml"})

	res, err := client.RequestCAE(context.Background(), testCred, facturaC())
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.CbteNro)
	assert.Equal(t, "74123456789012", res.CAE)
	assert.Equal(t, "20260115", res.CAEExpiry.Format("20060102"))
	assert.True(t, res.Approved())

	reqs := stub.calls(actionSolicitar)
	require.Len(t, reqs, 1)
	body := reqs[0]
	assert.Contains(t, body, `<FeCabReq><CantReg>1</CantReg><PtoVta>2</PtoVta><CbteTipo>11</CbteTipo></FeCabReq>`)
	assert.Contains(t, body, `<CbteDesde>7</CbteDesde><CbteHasta>7</CbteHasta><CbteFch>20260105</CbteFch>`)
	assert.Contains(t, body, `<ImpTotal>1000.00</ImpTotal><ImpTotConc>0.00</ImpTotConc><ImpNeto>1000.00</ImpNeto>`)
	assert.Contains(t, body, `<FchServDesde>20260101</FchServDesde><FchServHasta>20260131</FchServHasta><FchVtoPago>20260204</FchVtoPago>`)
	assert.Contains(t, body, `<MonId>PES</MonId><MonCotiz>1</MonCotiz><CondicionIVAReceptorId>1</CondicionIVAReceptorId>`)
	assert.NotContains(t, body, "<Iva>", "factura C no informa IVA")
	assert.NotContains(t, body, "<CbtesAsoc>")
}

func TestWSFEClient_RequestCAE_NotaCreditoEnviaAsociado(t *testing.T) {
	client, stub := newTestWSFE(t, map[string]string{actionSolicitar: "wsfe_cae_approved.xml"})
	req := facturaC()
	req.CbteTipo = pkgafip.CbteNotaCreditoC
	req.Associated = &entity.AssociatedInvoice{Tipo: pkgafip.CbteFacturaC, PtoVta: 2, Nro: 6, CUIT: "27239676931"}

	_, err := client.RequestCAE(context.Background(), testCred, req)
	require.NoError(t, err)
	body := stub.calls(actionSolicitar)[0]
	assert.Contains(t, body, `<CbtesAsoc><CbteAsoc><Tipo>11</Tipo><PtoVta>2</PtoVta><Nro>6</Nro><Cuit>27239676931</Cuit></CbteAsoc></CbtesAsoc>`)
}

func TestWSFEClient_RequestCAE_ConIVA(t *testing.T) {
	client, stub := newTestWSFE(t, map[string]string{actionSolicitar: "wsfe_cae_approved.xml"})
	req := facturaC()
	req.CbteTipo = pkgafip.CbteFacturaA
	req.ImpTotal = decimal.RequireFromString("1210")
	req.ImpIVA = decimal.RequireFromString("210")
	req.VAT = []entity.VATLine{{ID: pkgafip.AlicuotaIVA21, BaseImp: decimal.RequireFromString("1000"), Importe: decimal.RequireFromString("210")}}

	_, err := client.RequestCAE(context.Background(), testCred, req)
	require.NoError(t, err)
	body := stub.calls(actionSolicitar)[0]
	assert.Contains(t, body, `<Iva><AlicIva><Id>5</Id><BaseImp>1000.00</BaseImp><Importe>210.00</Importe></AlicIva></Iva>`)
}

func TestWSFEClient_RequestCAE_RechazadoConObservaciones(t *testing.T) {
	client, _ := newTestWSFE(t, map[string]string{actionSolicitar: "wsfe_cae_rejected.xml"})

	_, err := client.RequestCAE(context.Background(), testCred, facturaC())
	var rej *domain.RejectionError
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, 10016, rej.Observations[0].Code)
	assert.ErrorIs(t, err, domain.ErrInvoiceRejected)
}

func TestWSFEClient_RequestCAE_RechazadoSinMotivo(t *testing.T) {
	client, _ := newTestWSFE(t, map[string]string{actionSolicitar: "wsfe_cae_no_reason.xml"})

	_, err := client.RequestCAE(context.Background(), testCred, facturaC())
	assert.ErrorIs(t, err, domain.ErrRejectedWithoutReason)
	assert.NotErrorIs(t, err, domain.ErrInvoiceRejected)
}

func TestWSFEClient_RequestCAE_ListaDeErrores(t *testing.T) {
	client, _ := newTestWSFE(t, map[string]string{actionSolicitar: "wsfe_cae_errors.xml"})

	_, err := client.RequestCAE(context.Background(), testCred, facturaC())
	var authErr *domain.AuthorityError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, 10242, authErr.Errors[0].Code)
}

func TestWSFEClient_RequestCAE_SOAPFault(t *testing.T) {
	stub, srv := newSOAPStub(t, map[string]string{actionSolicitar: "wsfe_fault.xml"})
	stub.status = http.StatusInternalServerError
	client := NewWSFEClient(srv.URL, srv.Client(), logger.Nop())

	_, err := client.RequestCAE(context.Background(), testCred, facturaC())
	assert.ErrorIs(t, err, domain.ErrRemoteFault)
}

func TestWSFEClient_RespuestaInesperada(t *testing.T) {
	// FECAESolicitar responde con el cuerpo de otra operación.
	client, _ := newTestWSFE(t, map[string]string{actionSolicitar: "wsfe_dummy.xml"})

	_, err := client.RequestCAE(context.Background(), testCred, facturaC())
	assert.ErrorIs(t, err, domain.ErrResponseShape)
}

func TestWSFEClient_Dummy(t *testing.T) {
	client, _ := newTestWSFE(t, map[string]string{actionDummy: "wsfe_dummy.xml"})

	st, err := client.Dummy(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Healthy())
}

func TestEndpoints(t *testing.T) {
	wsaa, wsfe := Endpoints(EnvProduccion, "", "")
	assert.Equal(t, "https://wsaa.afip.gov.ar/ws/services/LoginCms", wsaa)
	assert.Equal(t, "https://servicios1.afip.gov.ar/wsfev1/service.asmx", wsfe)

	wsaa, wsfe = Endpoints(EnvHomologacion, "", "http://localhost/wsfe")
	assert.Equal(t, "https://wsaahomo.afip.gov.ar/ws/services/LoginCms", wsaa)
	assert.Equal(t, "http://localhost/wsfe", wsfe)
}
