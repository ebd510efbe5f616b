package afip

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturador-afip/internal/domain"
	"github.com/jhoicas/facturador-afip/internal/domain/entity"
	pkgafip "github.com/jhoicas/facturador-afip/pkg/afip"
	"github.com/jhoicas/facturador-afip/pkg/logger"
)

const wsfeNS = "http://ar.gov.afip.dif.FEV1/"

// ── Estructuras de request ────────────────────────────────────────────────────

type feAuth struct {
	Token string `xml:"Token"`
	Sign  string `xml:"Sign"`
	Cuit  int64  `xml:"Cuit"`
}

type feCompUltimoAutorizadoRequest struct {
	XMLName  xml.Name `xml:"FECompUltimoAutorizado"`
	Xmlns    string   `xml:"xmlns,attr"`
	Auth     feAuth   `xml:"Auth"`
	PtoVta   int      `xml:"PtoVta"`
	CbteTipo int      `xml:"CbteTipo"`
}

type feCAESolicitarRequest struct {
	XMLName  xml.Name `xml:"FECAESolicitar"`
	Xmlns    string   `xml:"xmlns,attr"`
	Auth     feAuth   `xml:"Auth"`
	FeCAEReq feCAEReq `xml:"FeCAEReq"`
}

type feCAEReq struct {
	FeCabReq feCabReq `xml:"FeCabReq"`
	FeDetReq feDetReq `xml:"FeDetReq"`
}

type feCabReq struct {
	CantReg  int `xml:"CantReg"`
	PtoVta   int `xml:"PtoVta"`
	CbteTipo int `xml:"CbteTipo"`
}

type feDetReq struct {
	Detalles []feCAEDetRequest `xml:"FECAEDetRequest"`
}

// feCAEDetRequest respeta el orden de la secuencia del WSDL.
type feCAEDetRequest struct {
	Concepto               int          `xml:"Concepto"`
	DocTipo                int          `xml:"DocTipo"`
	DocNro                 int64        `xml:"DocNro"`
	CbteDesde              int64        `xml:"CbteDesde"`
	CbteHasta              int64        `xml:"CbteHasta"`
	CbteFch                string       `xml:"CbteFch"`
	ImpTotal               string       `xml:"ImpTotal"`
	ImpTotConc             string       `xml:"ImpTotConc"`
	ImpNeto                string       `xml:"ImpNeto"`
	ImpOpEx                string       `xml:"ImpOpEx"`
	ImpTrib                string       `xml:"ImpTrib"`
	ImpIVA                 string       `xml:"ImpIVA"`
	FchServDesde           string       `xml:"FchServDesde,omitempty"`
	FchServHasta           string       `xml:"FchServHasta,omitempty"`
	FchVtoPago             string       `xml:"FchVtoPago,omitempty"`
	MonID                  string       `xml:"MonId"`
	MonCotiz               string       `xml:"MonCotiz"`
	CondicionIVAReceptorID int          `xml:"CondicionIVAReceptorId,omitempty"`
	CbtesAsoc              *feCbtesAsoc `xml:"CbtesAsoc,omitempty"`
	Iva                    *feIva       `xml:"Iva,omitempty"`
}

type feCbtesAsoc struct {
	CbteAsoc []feCbteAsoc `xml:"CbteAsoc"`
}

type feCbteAsoc struct {
	Tipo    int    `xml:"Tipo"`
	PtoVta  int    `xml:"PtoVta"`
	Nro     int64  `xml:"Nro"`
	Cuit    string `xml:"Cuit,omitempty"`
	CbteFch string `xml:"CbteFch,omitempty"`
}

type feIva struct {
	AlicIva []feAlicIva `xml:"AlicIva"`
}

type feAlicIva struct {
	ID      int    `xml:"Id"`
	BaseImp string `xml:"BaseImp"`
	Importe string `xml:"Importe"`
}

type feDummyRequest struct {
	XMLName xml.Name `xml:"FEDummy"`
	Xmlns   string   `xml:"xmlns,attr"`
}

// ── Estructuras de response ───────────────────────────────────────────────────

type feCode struct {
	Code int    `xml:"Code"`
	Msg  string `xml:"Msg"`
}

type feErrors struct {
	Err []feCode `xml:"Err"`
}

type feCompUltimoAutorizadoResponse struct {
	XMLName xml.Name `xml:"FECompUltimoAutorizadoResponse"`
	Result  struct {
		PtoVta   int       `xml:"PtoVta"`
		CbteTipo int       `xml:"CbteTipo"`
		CbteNro  int64     `xml:"CbteNro"`
		Errors   *feErrors `xml:"Errors"`
	} `xml:"FECompUltimoAutorizadoResult"`
}

type feCAESolicitarResponse struct {
	XMLName xml.Name `xml:"FECAESolicitarResponse"`
	Result  struct {
		FeCabResp struct {
			Cuit      int64  `xml:"Cuit"`
			PtoVta    int    `xml:"PtoVta"`
			CbteTipo  int    `xml:"CbteTipo"`
			Resultado string `xml:"Resultado"`
		} `xml:"FeCabResp"`
		FeDetResp struct {
			Detalles []feCAEDetResponse `xml:"FECAEDetResponse"`
		} `xml:"FeDetResp"`
		Errors *feErrors `xml:"Errors"`
	} `xml:"FECAESolicitarResult"`
}

type feCAEDetResponse struct {
	CbteDesde     int64  `xml:"CbteDesde"`
	CbteHasta     int64  `xml:"CbteHasta"`
	CbteFch       string `xml:"CbteFch"`
	Resultado     string `xml:"Resultado"`
	Observaciones struct {
		Obs []feCode `xml:"Obs"`
	} `xml:"Observaciones"`
	CAE       string `xml:"CAE"`
	CAEFchVto string `xml:"CAEFchVto"`
}

type feDummyResponse struct {
	XMLName xml.Name `xml:"FEDummyResponse"`
	Result  struct {
		AppServer  string `xml:"AppServer"`
		DbServer   string `xml:"DbServer"`
		AuthServer string `xml:"AuthServer"`
	} `xml:"FEDummyResult"`
}

// ── Cliente ───────────────────────────────────────────────────────────────────

// WSFEClient cliente de factura electrónica WSFEv1.
type WSFEClient struct {
	url  string
	soap *soapTransport
}

// NewWSFEClient crea el cliente para la URL indicada.
func NewWSFEClient(url string, httpClient *http.Client, log *logger.Logger) *WSFEClient {
	return &WSFEClient{url: url, soap: &soapTransport{httpClient: httpClient, log: log}}
}

func soapAction(op string) string { return wsfeNS + op }

func authFrom(cred entity.Credential) (feAuth, error) {
	cuit, err := pkgafip.ParseDocNumber(cred.CUIT)
	if err != nil {
		return feAuth{}, fmt.Errorf("%w: cuit de la credencial: %v", domain.ErrInvalidInput, err)
	}
	return feAuth{Token: cred.Token, Sign: cred.Sign, Cuit: cuit}, nil
}

// LastAuthorized devuelve el último número autorizado para punto de venta y tipo (0 si no hay ninguno).
func (c *WSFEClient) LastAuthorized(ctx context.Context, cred entity.Credential, ptoVta, cbteTipo int) (int64, error) {
	auth, err := authFrom(cred)
	if err != nil {
		return 0, err
	}
	req := feCompUltimoAutorizadoRequest{Xmlns: wsfeNS, Auth: auth, PtoVta: ptoVta, CbteTipo: cbteTipo}
	var resp feCompUltimoAutorizadoResponse
	if err := c.soap.call(ctx, c.url, soapAction("FECompUltimoAutorizado"), req, &resp, domain.ErrRemoteFault); err != nil {
		return 0, err
	}
	if errs := resp.Result.Errors; errs != nil && len(errs.Err) > 0 {
		return 0, &domain.AuthorityError{Op: "FECompUltimoAutorizado", Errors: observations(errs.Err)}
	}
	return resp.Result.CbteNro, nil
}

// RequestCAE solicita el CAE de un comprobante (CantReg = 1, CbteDesde = CbteHasta = req.CbteNro).
func (c *WSFEClient) RequestCAE(ctx context.Context, cred entity.Credential, req entity.InvoiceRequest) (entity.InvoiceResult, error) {
	auth, err := authFrom(cred)
	if err != nil {
		return entity.InvoiceResult{}, err
	}
	body := feCAESolicitarRequest{
		Xmlns: wsfeNS,
		Auth:  auth,
		FeCAEReq: feCAEReq{
			FeCabReq: feCabReq{CantReg: 1, PtoVta: req.PtoVta, CbteTipo: req.CbteTipo},
			FeDetReq: feDetReq{Detalles: []feCAEDetRequest{buildDetail(req)}},
		},
	}
	var resp feCAESolicitarResponse
	if err := c.soap.call(ctx, c.url, soapAction("FECAESolicitar"), body, &resp, domain.ErrRemoteFault); err != nil {
		return entity.InvoiceResult{}, err
	}
	return interpretCAEResponse(req, &resp)
}

// Dummy consulta el estado de los servidores (FEDummy); no requiere autenticación.
func (c *WSFEClient) Dummy(ctx context.Context) (entity.ServerStatus, error) {
	var resp feDummyResponse
	if err := c.soap.call(ctx, c.url, soapAction("FEDummy"), feDummyRequest{Xmlns: wsfeNS}, &resp, domain.ErrRemoteFault); err != nil {
		return entity.ServerStatus{}, err
	}
	return entity.ServerStatus{
		AppServer:  resp.Result.AppServer,
		DbServer:   resp.Result.DbServer,
		AuthServer: resp.Result.AuthServer,
	}, nil
}

func buildDetail(req entity.InvoiceRequest) feCAEDetRequest {
	cotiz := req.MonCotiz
	if cotiz.IsZero() {
		cotiz = decimal.NewFromInt(1)
	}
	monID := req.MonID
	if monID == "" {
		monID = pkgafip.MonedaPesos
	}
	det := feCAEDetRequest{
		Concepto:               req.Concepto,
		DocTipo:                req.DocTipo,
		DocNro:                 req.DocNro,
		CbteDesde:              req.CbteNro,
		CbteHasta:              req.CbteNro,
		CbteFch:                req.Fecha.Format(pkgafip.DateLayout),
		ImpTotal:               amount(req.ImpTotal),
		ImpTotConc:             amount(req.ImpTotConc),
		ImpNeto:                amount(req.ImpNeto),
		ImpOpEx:                amount(req.ImpOpEx),
		ImpTrib:                amount(req.ImpTrib),
		ImpIVA:                 amount(req.ImpIVA),
		MonID:                  monID,
		MonCotiz:               cotiz.String(),
		CondicionIVAReceptorID: req.CondicionIVAReceptorID,
	}
	if req.Concepto != pkgafip.ConceptoProductos {
		det.FchServDesde = dateOrEmpty(req.FchServDesde)
		det.FchServHasta = dateOrEmpty(req.FchServHasta)
		det.FchVtoPago = dateOrEmpty(req.FchVtoPago)
	}
	if a := req.Associated; a != nil {
		det.CbtesAsoc = &feCbtesAsoc{CbteAsoc: []feCbteAsoc{{
			Tipo:    a.Tipo,
			PtoVta:  a.PtoVta,
			Nro:     a.Nro,
			Cuit:    a.CUIT,
			CbteFch: dateOrEmpty(a.Fecha),
		}}}
	}
	if len(req.VAT) > 0 {
		iva := &feIva{}
		for _, l := range req.VAT {
			iva.AlicIva = append(iva.AlicIva, feAlicIva{ID: l.ID, BaseImp: amount(l.BaseImp), Importe: amount(l.Importe)})
		}
		det.Iva = iva
	}
	return det
}

// interpretCAEResponse: aprobado con CAE → resultado; lista Errors → AuthorityError;
// observaciones → RejectionError; nada de lo anterior → ErrRejectedWithoutReason.
func interpretCAEResponse(req entity.InvoiceRequest, resp *feCAESolicitarResponse) (entity.InvoiceResult, error) {
	r := resp.Result
	var authErrs []entity.Observation
	if r.Errors != nil {
		authErrs = observations(r.Errors.Err)
	}
	if len(r.FeDetResp.Detalles) == 0 {
		if len(authErrs) > 0 {
			return entity.InvoiceResult{}, &domain.AuthorityError{Op: "FECAESolicitar", Errors: authErrs}
		}
		return entity.InvoiceResult{}, fmt.Errorf("%w: FECAESolicitar sin FECAEDetResponse", domain.ErrResponseShape)
	}

	det := r.FeDetResp.Detalles[0]
	result := entity.InvoiceResult{
		PtoVta:       req.PtoVta,
		CbteTipo:     req.CbteTipo,
		CbteNro:      req.CbteNro,
		Fecha:        req.Fecha,
		Resultado:    strings.TrimSpace(det.Resultado),
		CAE:          strings.TrimSpace(det.CAE),
		Observations: observations(det.Observaciones.Obs),
	}
	if det.CbteDesde != 0 {
		result.CbteNro = det.CbteDesde
	}

	if result.Approved() {
		vto, err := time.ParseInLocation(pkgafip.DateLayout, strings.TrimSpace(det.CAEFchVto), pkgafip.ArgentinaZone)
		if err != nil {
			return entity.InvoiceResult{}, fmt.Errorf("%w: CAEFchVto %q: %v", domain.ErrResponseShape, det.CAEFchVto, err)
		}
		result.CAEExpiry = vto
		return result, nil
	}
	if len(authErrs) > 0 {
		return entity.InvoiceResult{}, &domain.AuthorityError{Op: "FECAESolicitar", Errors: authErrs}
	}
	if len(result.Observations) > 0 {
		return entity.InvoiceResult{}, &domain.RejectionError{Observations: result.Observations}
	}
	return entity.InvoiceResult{}, fmt.Errorf("%w (Resultado=%q)", domain.ErrRejectedWithoutReason, result.Resultado)
}

func observations(codes []feCode) []entity.Observation {
	if len(codes) == 0 {
		return nil
	}
	out := make([]entity.Observation, 0, len(codes))
	for _, c := range codes {
		out = append(out, entity.Observation{Code: c.Code, Msg: strings.TrimSpace(c.Msg)})
	}
	return out
}

func amount(d decimal.Decimal) string { return d.StringFixed(2) }

func dateOrEmpty(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(pkgafip.DateLayout)
}
