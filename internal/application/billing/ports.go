package billing

import (
	"context"

	"github.com/jhoicas/facturador-afip/internal/domain/entity"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=ports.go -destination=mocks/ports.go -package=mocks

// Authenticator obtiene una credencial nueva de WSAA para un emisor (ticket → CMS → loginCms).
type Authenticator interface {
	Authenticate(ctx context.Context, issuer entity.Issuer) (entity.Credential, error)
}

// InvoiceAuthority operaciones de WSFEv1 usadas por el flujo de facturación.
type InvoiceAuthority interface {
	LastAuthorized(ctx context.Context, cred entity.Credential, ptoVta, cbteTipo int) (int64, error)
	RequestCAE(ctx context.Context, cred entity.Credential, req entity.InvoiceRequest) (entity.InvoiceResult, error)
	Dummy(ctx context.Context) (entity.ServerStatus, error)
}

// InvoicePDFGenerator genera la representación impresa de un comprobante autorizado.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc entity.InvoiceDocument) ([]byte, error)
}

// PDFStore guarda y recupera los PDF generados por nombre de archivo.
type PDFStore interface {
	Save(name string, data []byte) error
	Open(name string) ([]byte, error)
}

// ReceiverDirectory datos visibles del receptor a partir de su documento.
// Siempre devuelve un receptor; ok es false cuando se usaron los datos genéricos.
type ReceiverDirectory interface {
	Lookup(docTipo int, docNro string) (receiver entity.Receiver, ok bool)
}
