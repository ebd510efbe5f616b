package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/facturador-afip/internal/domain/entity"
)

// Errores de dominio. La capa HTTP los traduce a códigos de estado con errors.Is / errors.As.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	ErrIssuerNotConfigured   = errors.New("emisor no configurado")
	ErrSigning               = errors.New("error al firmar el ticket de acceso")
	ErrAuthFault             = errors.New("WSAA rechazó la autenticación")
	ErrTransport             = errors.New("error de comunicación con AFIP")
	ErrTimeout               = errors.New("tiempo de espera agotado")
	ErrResponseShape         = errors.New("respuesta de AFIP con formato inesperado")
	ErrRemoteFault           = errors.New("AFIP devolvió un SOAP fault")
	ErrAuthorityErrors       = errors.New("AFIP devolvió errores")
	ErrInvoiceRejected       = errors.New("comprobante rechazado por AFIP")
	ErrRejectedWithoutReason = errors.New("comprobante no aprobado y sin observaciones")
	ErrRender                = errors.New("error al generar el PDF")
)

// FaultError SOAP fault de WSAA o WSFE. Kind es ErrAuthFault o ErrRemoteFault.
type FaultError struct {
	Kind   error
	Code   string // faultcode, ej: ns1:coe.notAuthorized
	Reason string // faultstring
}

func (e *FaultError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%v: %s (%s)", e.Kind, e.Reason, e.Code)
}

func (e *FaultError) Unwrap() error { return e.Kind }

// AuthorityError lista Errors/Err devuelta por WSFE para una operación.
type AuthorityError struct {
	Op     string
	Errors []entity.Observation
}

func (e *AuthorityError) Error() string {
	return fmt.Sprintf("%v en %s: %s", ErrAuthorityErrors, e.Op, joinObservations(e.Errors))
}

func (e *AuthorityError) Unwrap() error { return ErrAuthorityErrors }

// RejectionError comprobante con Resultado distinto de A y observaciones del organismo.
type RejectionError struct {
	Observations []entity.Observation
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvoiceRejected, joinObservations(e.Observations))
}

func (e *RejectionError) Unwrap() error { return ErrInvoiceRejected }

func joinObservations(obs []entity.Observation) string {
	parts := make([]string, 0, len(obs))
	for _, o := range obs {
		parts = append(parts, o.String())
	}
	return strings.Join(parts, "; ")
}
