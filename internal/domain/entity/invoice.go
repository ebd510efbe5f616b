package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Resultados de FECAESolicitar.
const (
	ResultadoAprobado  = "A"
	ResultadoRechazado = "R"
	ResultadoParcial   = "P"
)

// AssociatedInvoice comprobante que una nota de crédito o débito anula o ajusta (CbtesAsoc).
type AssociatedInvoice struct {
	Tipo   int
	PtoVta int
	Nro    int64
	CUIT   string
	Fecha  time.Time // opcional
}

// VATLine alícuota informada en Iva/AlicIva.
type VATLine struct {
	ID      int // 5 = 21%
	BaseImp decimal.Decimal
	Importe decimal.Decimal
}

// InvoiceRequest comprobante a autorizar, ya numerado.
type InvoiceRequest struct {
	PtoVta   int
	CbteTipo int
	CbteNro  int64
	Concepto int
	DocTipo  int
	DocNro   int64
	Fecha    time.Time

	ImpTotal   decimal.Decimal
	ImpTotConc decimal.Decimal // no gravado
	ImpNeto    decimal.Decimal
	ImpOpEx    decimal.Decimal // exento
	ImpTrib    decimal.Decimal
	ImpIVA     decimal.Decimal
	VAT        []VATLine

	// Solo para conceptos de servicios (2 y 3).
	FchServDesde time.Time
	FchServHasta time.Time
	FchVtoPago   time.Time

	MonID                  string
	MonCotiz               decimal.Decimal
	CondicionIVAReceptorID int
	Associated             *AssociatedInvoice
}

// InvoiceResult respuesta de autorización de un comprobante.
type InvoiceResult struct {
	PtoVta       int
	CbteTipo     int
	CbteNro      int64
	Fecha        time.Time
	Resultado    string
	CAE          string
	CAEExpiry    time.Time
	Observations []Observation
}

// Approved indica comprobante aprobado con CAE.
func (r InvoiceResult) Approved() bool {
	return r.Resultado == ResultadoAprobado && r.CAE != ""
}

// ServerStatus estado de los servidores de WSFE (FEDummy).
type ServerStatus struct {
	AppServer  string
	DbServer   string
	AuthServer string
}

// Healthy todos los servidores responden "OK".
func (s ServerStatus) Healthy() bool {
	return s.AppServer == "OK" && s.DbServer == "OK" && s.AuthServer == "OK"
}

// InvoiceDocument datos necesarios para la representación impresa de un comprobante autorizado.
type InvoiceDocument struct {
	Issuer      Issuer
	Receiver    Receiver
	Request     InvoiceRequest
	Result      InvoiceResult
	Descripcion string
}
