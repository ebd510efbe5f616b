// Package afip contiene catálogos y reglas de la factura electrónica AFIP (WSFEv1, RG 4291 / RG 5616):
// tipos de comprobante, documentos, condiciones frente al IVA, alícuotas, CUIT y código QR.
package afip

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// Tipos de comprobante (FEParamGetTiposCbte)
// =============================================================================

const (
	CbteFacturaA     = 1
	CbteNotaDebitoA  = 2
	CbteNotaCreditoA = 3
	CbteReciboA      = 4
	CbteFacturaB     = 6
	CbteNotaDebitoB  = 7
	CbteNotaCreditoB = 8
	CbteReciboB      = 9
	CbteFacturaC     = 11
	CbteNotaDebitoC  = 12
	CbteNotaCreditoC = 13
	CbteReciboC      = 15
	CbteFacturaM     = 51
	CbteNotaDebitoM  = 52
	CbteNotaCreditoM = 53
)

// VoucherType describe un tipo de comprobante: letra, nombre impreso y clase.
type VoucherType struct {
	Code   int
	Letter string
	Name   string // "FACTURA", "NOTA DE CRÉDITO", "NOTA DE DÉBITO", "RECIBO"
	Credit bool
	Debit  bool
}

var voucherTypes = map[int]VoucherType{
	CbteFacturaA:     {CbteFacturaA, "A", "FACTURA", false, false},
	CbteNotaDebitoA:  {CbteNotaDebitoA, "A", "NOTA DE DÉBITO", false, true},
	CbteNotaCreditoA: {CbteNotaCreditoA, "A", "NOTA DE CRÉDITO", true, false},
	CbteReciboA:      {CbteReciboA, "A", "RECIBO", false, false},
	CbteFacturaB:     {CbteFacturaB, "B", "FACTURA", false, false},
	CbteNotaDebitoB:  {CbteNotaDebitoB, "B", "NOTA DE DÉBITO", false, true},
	CbteNotaCreditoB: {CbteNotaCreditoB, "B", "NOTA DE CRÉDITO", true, false},
	CbteReciboB:      {CbteReciboB, "B", "RECIBO", false, false},
	CbteFacturaC:     {CbteFacturaC, "C", "FACTURA", false, false},
	CbteNotaDebitoC:  {CbteNotaDebitoC, "C", "NOTA DE DÉBITO", false, true},
	CbteNotaCreditoC: {CbteNotaCreditoC, "C", "NOTA DE CRÉDITO", true, false},
	CbteReciboC:      {CbteReciboC, "C", "RECIBO", false, false},
	CbteFacturaM:     {CbteFacturaM, "M", "FACTURA", false, false},
	CbteNotaDebitoM:  {CbteNotaDebitoM, "M", "NOTA DE DÉBITO", false, true},
	CbteNotaCreditoM: {CbteNotaCreditoM, "M", "NOTA DE CRÉDITO", true, false},
}

// LookupVoucherType devuelve el tipo de comprobante o false si el código no está soportado.
func LookupVoucherType(code int) (VoucherType, bool) {
	vt, ok := voucherTypes[code]
	return vt, ok
}

// RequiresAssociated indica si el comprobante debe referenciar a otro (notas de crédito y débito).
func (v VoucherType) RequiresAssociated() bool { return v.Credit || v.Debit }

// DiscriminatesVAT indica si el comprobante informa IVA discriminado (letras A, B y M).
func (v VoucherType) DiscriminatesVAT() bool { return v.Letter != "C" }

// InvoiceCode código de la factura de la misma letra (comprobante asociado por defecto de una nota).
func (v VoucherType) InvoiceCode() int {
	switch v.Letter {
	case "A":
		return CbteFacturaA
	case "B":
		return CbteFacturaB
	case "M":
		return CbteFacturaM
	default:
		return CbteFacturaC
	}
}

// FilePrefix prefijo del nombre de archivo del PDF.
func (v VoucherType) FilePrefix() string {
	switch {
	case v.Credit:
		return "nota_credito"
	case v.Debit:
		return "nota_debito"
	case v.Name == "RECIBO":
		return "recibo"
	default:
		return "factura"
	}
}

// CodeLabel devuelve el código impreso bajo la letra, ej: "COD. 011".
func (v VoucherType) CodeLabel() string { return fmt.Sprintf("COD. %03d", v.Code) }

// =============================================================================
// Tipos de documento del receptor (FEParamGetTiposDoc)
// =============================================================================

const (
	DocTipoCUIT            = 80
	DocTipoCUIL            = 86
	DocTipoDNI             = 96
	DocTipoConsumidorFinal = 99
)

// =============================================================================
// Conceptos (FEParamGetTiposConcepto)
// =============================================================================

const (
	ConceptoProductos          = 1
	ConceptoServicios          = 2
	ConceptoProductosServicios = 3
)

// =============================================================================
// Moneda
// =============================================================================

const (
	MonedaPesos = "PES"
)

// =============================================================================
// Condición frente al IVA del receptor (FEParamGetCondicionIvaReceptor, RG 5616)
// =============================================================================

const (
	CondIVAResponsableInscripto = 1
	CondIVASujetoExento         = 4
	CondIVAConsumidorFinal      = 5
	CondIVAMonotributo          = 6
	CondIVANoCategorizado       = 7
	CondIVAProveedorExterior    = 8
	CondIVAClienteExterior      = 9
	CondIVALiberado             = 10
	CondIVAMonotributoSocial    = 13
	CondIVANoAlcanzado          = 15
)

var vatConditions = map[int]string{
	CondIVAResponsableInscripto: "IVA Responsable Inscripto",
	CondIVASujetoExento:         "IVA Sujeto Exento",
	CondIVAConsumidorFinal:      "Consumidor Final",
	CondIVAMonotributo:          "Responsable Monotributo",
	CondIVANoCategorizado:       "Sujeto No Categorizado",
	CondIVAProveedorExterior:    "Proveedor del Exterior",
	CondIVAClienteExterior:      "Cliente del Exterior",
	CondIVALiberado:             "IVA Liberado - Ley N° 19.640",
	CondIVAMonotributoSocial:    "Monotributista Social",
	CondIVANoAlcanzado:          "IVA No Alcanzado",
}

// VATConditionName devuelve la leyenda de la condición frente al IVA ("" si se desconoce).
func VATConditionName(id int) string { return vatConditions[id] }

// VATConditionID busca el código a partir de la leyenda (0 si no coincide).
func VATConditionID(name string) int {
	for id, n := range vatConditions {
		if n == name {
			return id
		}
	}
	return 0
}

// =============================================================================
// Alícuotas de IVA (FEParamGetTiposIva)
// =============================================================================

const (
	AlicuotaIVA0    = 3
	AlicuotaIVA10_5 = 4
	AlicuotaIVA21   = 5
	AlicuotaIVA27   = 6
	AlicuotaIVA5    = 8
	AlicuotaIVA2_5  = 9
)

var vatRates = map[int]decimal.Decimal{
	AlicuotaIVA0:    decimal.Zero,
	AlicuotaIVA10_5: decimal.RequireFromString("0.105"),
	AlicuotaIVA21:   decimal.RequireFromString("0.21"),
	AlicuotaIVA27:   decimal.RequireFromString("0.27"),
	AlicuotaIVA5:    decimal.RequireFromString("0.05"),
	AlicuotaIVA2_5:  decimal.RequireFromString("0.025"),
}

// VATRate devuelve la tasa de una alícuota (0.21 para el Id 5).
func VATRate(id int) (decimal.Decimal, bool) {
	r, ok := vatRates[id]
	return r, ok
}
