package afip

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// QRBaseURL prefijo fijo del código QR (RG 4291); el payload va en el parámetro p.
const QRBaseURL = "https://www.afip.gob.ar/fe/qr/?p="

// QRVersion versión del esquema del QR.
const QRVersion = 1

// QRPayload esquema JSON del QR de comprobantes electrónicos.
// El orden de los campos es el del diseño de AFIP y define los bytes del payload.
type QRPayload struct {
	Ver        int         `json:"ver"`
	Fecha      string      `json:"fecha"` // YYYY-MM-DD
	Cuit       int64       `json:"cuit"`
	PtoVta     int         `json:"ptoVta"`
	TipoCmp    int         `json:"tipoCmp"`
	NroCmp     int64       `json:"nroCmp"`
	Importe    json.Number `json:"importe"`
	Moneda     string      `json:"moneda"`
	Ctz        int         `json:"ctz"`
	TipoDocRec int         `json:"tipoDocRec"`
	NroDocRec  int64       `json:"nroDocRec"`
	TipoCodAut string      `json:"tipoCodAut"`
	CodAut     int64       `json:"codAut"`
}

// QRInput datos del comprobante autorizado necesarios para el QR.
type QRInput struct {
	Fecha      time.Time
	CUIT       string
	PtoVta     int
	TipoCmp    int
	NroCmp     int64
	Importe    decimal.Decimal
	TipoDocRec int
	NroDocRec  int64
	CAE        string
}

// NewQRPayload arma el payload con moneda PES, cotización 1 y código de autorización tipo "E" (CAE).
func NewQRPayload(in QRInput) (QRPayload, error) {
	cuit, err := ParseDocNumber(in.CUIT)
	if err != nil {
		return QRPayload{}, fmt.Errorf("qr: cuit emisor: %w", err)
	}
	cae, err := ParseDocNumber(in.CAE)
	if err != nil {
		return QRPayload{}, fmt.Errorf("qr: cae: %w", err)
	}
	return QRPayload{
		Ver:        QRVersion,
		Fecha:      in.Fecha.Format("2006-01-02"),
		Cuit:       cuit,
		PtoVta:     in.PtoVta,
		TipoCmp:    in.TipoCmp,
		NroCmp:     in.NroCmp,
		Importe:    json.Number(in.Importe.StringFixed(2)),
		Moneda:     MonedaPesos,
		Ctz:        1,
		TipoDocRec: in.TipoDocRec,
		NroDocRec:  in.NroDocRec,
		TipoCodAut: "E",
		CodAut:     cae,
	}, nil
}

// JSON serializa el payload en forma compacta, sin escapar HTML ni salto de línea final.
func (p QRPayload) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// URL devuelve la URL completa que se codifica en la imagen QR.
func (p QRPayload) URL() (string, error) {
	raw, err := p.JSON()
	if err != nil {
		return "", err
	}
	return QRBaseURL + base64.StdEncoding.EncodeToString(raw), nil
}

// BuildQRURL atajo de NewQRPayload + URL.
func BuildQRURL(in QRInput) (string, error) {
	p, err := NewQRPayload(in)
	if err != nil {
		return "", err
	}
	return p.URL()
}
