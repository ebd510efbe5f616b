package afip

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/jhoicas/facturador-afip/internal/domain"
	"github.com/jhoicas/facturador-afip/pkg/logger"
)

const (
	soapNS          = "http://schemas.xmlsoap.org/soap/envelope/"
	maxResponseSize = 1 << 20 // 1 MiB
)

// legacyCipherSuites incluye intercambio de claves RSA, que Go ya no ofrece por defecto
// y algunos servidores de AFIP todavía exigen.
var legacyCipherSuites = []uint16{
	tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
	tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA,
	tls.TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA,
	tls.TLS_RSA_WITH_AES_128_GCM_SHA256,
	tls.TLS_RSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_RSA_WITH_AES_128_CBC_SHA,
	tls.TLS_RSA_WITH_AES_256_CBC_SHA,
}

// NewHTTPClient cliente HTTP para los WS de AFIP. Con legacyTLS habilita las suites RSA.
func NewHTTPClient(timeout time.Duration, legacyTLS bool) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if legacyTLS {
		transport.TLSClientConfig = &tls.Config{
			MinVersion:   tls.VersionTLS12,
			CipherSuites: legacyCipherSuites,
		}
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

// ── Estructuras SOAP ──────────────────────────────────────────────────────────

type soapEnvelope struct {
	XMLName xml.Name `xml:"soapenv:Envelope"`
	XmlnsS  string   `xml:"xmlns:soapenv,attr"`
	Header  struct{} `xml:"soapenv:Header"`
	Body    soapBody `xml:"soapenv:Body"`
}

type soapBody struct {
	Content interface{}
}

func (b soapBody) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name.Local = "soapenv:Body"
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := e.Encode(b.Content); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

type soapResponseEnvelope struct {
	Body struct {
		Fault *soapFault `xml:"Fault"`
		Inner []byte     `xml:",innerxml"`
	} `xml:"Body"`
}

type soapFault struct {
	FaultCode   string `xml:"faultcode"`
	FaultString string `xml:"faultstring"`
}

// ── Transporte ────────────────────────────────────────────────────────────────

// soapTransport envía un envelope SOAP 1.1 y decodifica el contenido del Body.
type soapTransport struct {
	httpClient *http.Client
	log        *logger.Logger
}

// call envía body a url y decodifica la respuesta en out.
// Un SOAP fault se devuelve como *domain.FaultError con faultKind.
func (t *soapTransport) call(ctx context.Context, url, action string, body, out interface{}, faultKind error) error {
	payload, err := xml.Marshal(soapEnvelope{XmlnsS: soapNS, Body: soapBody{Content: body}})
	if err != nil {
		return fmt.Errorf("soap: serializar envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(append([]byte(xml.Header), payload...)))
	if err != nil {
		return fmt.Errorf("%w: crear request: %v", domain.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", action)

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return fmt.Errorf("%w: %w: %s: %v", domain.ErrTransport, domain.ErrTimeout, action, err)
		}
		return fmt.Errorf("%w: %s: %v", domain.ErrTransport, action, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		if isTimeout(ctx, err) {
			return fmt.Errorf("%w: %w: leer respuesta: %v", domain.ErrTransport, domain.ErrTimeout, err)
		}
		return fmt.Errorf("%w: leer respuesta: %v", domain.ErrTransport, err)
	}
	t.log.Debug().Str("action", action).Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).Int("bytes", len(raw)).Msg("respuesta SOAP")

	var env soapResponseEnvelope
	if err := xml.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return fmt.Errorf("%w: HTTP %d en %s", domain.ErrTransport, resp.StatusCode, action)
		}
		return fmt.Errorf("%w: envelope SOAP ilegible: %v", domain.ErrResponseShape, err)
	}
	if f := env.Body.Fault; f != nil {
		return &domain.FaultError{Kind: faultKind, Code: f.FaultCode, Reason: f.FaultString}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: HTTP %d en %s", domain.ErrTransport, resp.StatusCode, action)
	}
	if len(bytes.TrimSpace(env.Body.Inner)) == 0 {
		return fmt.Errorf("%w: Body SOAP vacío", domain.ErrResponseShape)
	}
	if err := xml.Unmarshal(env.Body.Inner, out); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrResponseShape, action, err)
	}
	return nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
