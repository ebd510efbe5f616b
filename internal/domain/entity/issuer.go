package entity

// Issuer emisor habilitado: identidad fiscal impresa en el comprobante y sus credenciales.
type Issuer struct {
	CUIT              string
	RazonSocial       string
	Domicilio         string
	CondicionIVA      string // leyenda impresa, ej: "Responsable Monotributo"
	IngresosBrutos    string
	InicioActividades string // DD/MM/AAAA
	CertPath          string // PEM o .p12/.pfx
	KeyPath           string // vacío cuando CertPath es .p12/.pfx
	KeyPassword       string
}

// Receiver receptor del comprobante.
type Receiver struct {
	DocTipo        int
	DocNro         string
	RazonSocial    string
	Domicilio      string
	CondicionIVA   string
	CondicionIVAID int // FEParamGetCondicionIvaReceptor
}
