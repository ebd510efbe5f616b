package dto

import "github.com/shopspring/decimal"

// IssueInvoiceRequest body para POST /facturar.
// Los importes discriminados solo aplican a comprobantes A/B/M; en letra C el neto es el total.
type IssueInvoiceRequest struct {
	CUITEmisor   string          `json:"cuit_emisor" example:"27239676931"`
	CUITReceptor string          `json:"cuit_receptor" example:"30500017704"` // CUIT o DNI del receptor
	DocTipo      int             `json:"doc_tipo,omitempty"`                  // 80, 86, 96 o 99; vacío = se infiere
	PuntoVenta   int             `json:"punto_venta" example:"2"`
	TipoCbte     int             `json:"tipo_cbte" example:"11"`
	Concepto     int             `json:"concepto,omitempty"` // 1 productos (default), 2 servicios, 3 ambos
	Importe      decimal.Decimal `json:"importe" swaggertype:"number" example:"1000.00"`
	Descripcion  string          `json:"descripcion,omitempty" example:"Honorarios profesionales"`

	ImporteNeto            *decimal.Decimal `json:"importe_neto,omitempty" swaggertype:"number"`
	ImporteIVA             *decimal.Decimal `json:"importe_iva,omitempty" swaggertype:"number"`
	ImporteExento          *decimal.Decimal `json:"importe_exento,omitempty" swaggertype:"number"`
	AlicuotaIVAID          int              `json:"alicuota_iva_id,omitempty"` // 5 = 21% (default)
	CondicionIVAReceptorID int              `json:"condicion_iva_receptor_id,omitempty"`

	// Período facturado (conceptos 2 y 3): AAAAMMDD o AAAA-MM-DD.
	FechaServDesde string `json:"fecha_serv_desde,omitempty"`
	FechaServHasta string `json:"fecha_serv_hasta,omitempty"`
	FechaVtoPago   string `json:"fecha_vto_pago,omitempty"`

	// Comprobante asociado (obligatorio en notas de crédito y débito).
	CbteAsocTipo   int    `json:"cbte_asoc_tipo,omitempty"`
	CbteAsocPtoVta int    `json:"cbte_asoc_pto_vta,omitempty"`
	CbteAsocNro    int64  `json:"cbte_asoc_nro,omitempty"`
	CbteAsocFecha  string `json:"cbte_asoc_fecha,omitempty"`
}

// InvoiceData comprobante autorizado.
type InvoiceData struct {
	CbteNro       int64    `json:"cbte_nro" example:"7"`
	CAE           string   `json:"cae" example:"74123456789012"`
	Vencimiento   string   `json:"vencimiento" example:"20260115"` // AAAAMMDD
	PDFURL        string   `json:"pdf_url,omitempty" example:"/descargar_pdf/factura_27239676931_00002_00000007.pdf"`
	PuntoVenta    int      `json:"punto_venta" example:"2"`
	TipoCbte      int      `json:"tipo_cbte" example:"11"`
	Fecha         string   `json:"fecha" example:"20260105"`
	Observaciones []string `json:"observaciones,omitempty"`
	RequestID     string   `json:"request_id"`
}

// IssueInvoiceResponse respuesta OK de POST /facturar.
type IssueInvoiceResponse struct {
	Status  string      `json:"status" example:"OK"`
	Factura InvoiceData `json:"factura"`
}

// ConfigSummary respuesta de GET /test.
type ConfigSummary struct {
	Status       string          `json:"status"`
	Environment  string          `json:"entorno"`
	WSAAURL      string          `json:"wsaa_url"`
	WSFEURL      string          `json:"wsfe_url"`
	Emisores     []IssuerSummary `json:"emisores"`
	CacheTokens  int             `json:"cache_tokens"`
	CacheEntries []CacheEntry    `json:"cache,omitempty"`
}

// IssuerSummary emisor configurado, sin secretos.
type IssuerSummary struct {
	CUIT        string `json:"cuit"`
	RazonSocial string `json:"razon_social"`
	Certificado string `json:"certificado"`
	Llave       string `json:"llave,omitempty"`
}

// CacheEntry vencimiento de una credencial cacheada.
type CacheEntry struct {
	CUIT      string `json:"cuit"`
	ExpiresAt string `json:"expires_at"`
}

// ServerStatusResponse respuesta de GET /estado (FEDummy).
type ServerStatusResponse struct {
	Status     string `json:"status"`
	AppServer  string `json:"app_server"`
	DbServer   string `json:"db_server"`
	AuthServer string `json:"auth_server"`
}

// ClearCacheResponse respuesta de POST /limpiar_cache.
type ClearCacheResponse struct {
	Status     string `json:"status"`
	Eliminados int    `json:"eliminados"`
	Mensaje    string `json:"mensaje"`
	Operador   string `json:"operador,omitempty"`
}
