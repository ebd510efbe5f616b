package afip

import (
	"fmt"
	"strconv"
	"unicode"
)

// pesos del dígito verificador del CUIT (módulo 11), aplicados a los 10 primeros dígitos.
var cuitWeights = [10]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

// OnlyDigits elimina guiones, puntos y espacios: "27-23967693-1" → "27239676931".
func OnlyDigits(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return string(out)
}

// ComputeCUITVerificationDigit calcula el dígito verificador para los 10 primeros dígitos.
// Un resto que da 10 no tiene dígito válido: AFIP no asigna esos CUIT.
func ComputeCUITVerificationDigit(cuit string) (int, error) {
	digits := OnlyDigits(cuit)
	if len(digits) < 10 {
		return 0, fmt.Errorf("afip: se requieren 10 dígitos para calcular el verificador, se encontraron %d", len(digits))
	}
	var sum int
	for i := 0; i < 10; i++ {
		sum += int(digits[i]-'0') * cuitWeights[i]
	}
	switch dv := 11 - sum%11; dv {
	case 11:
		return 0, nil
	case 10:
		return 0, fmt.Errorf("afip: CUIT %s sin dígito verificador posible", digits[:10])
	default:
		return dv, nil
	}
}

// ValidateCUIT comprueba longitud (11 dígitos) y dígito verificador.
func ValidateCUIT(cuit string) error {
	digits := OnlyDigits(cuit)
	if len(digits) != 11 {
		return fmt.Errorf("afip: el CUIT debe tener 11 dígitos, se recibieron %d", len(digits))
	}
	expected, err := ComputeCUITVerificationDigit(digits)
	if err != nil {
		return err
	}
	if got := int(digits[10] - '0'); got != expected {
		return fmt.Errorf("afip: dígito verificador del CUIT %s inválido: esperado %d, recibido %d", digits, expected, got)
	}
	return nil
}

// DocTypeFor infiere el tipo de documento del receptor: 11 dígitos → CUIT (80), si no DNI (96).
func DocTypeFor(number string) int {
	if len(OnlyDigits(number)) == 11 {
		return DocTipoCUIT
	}
	return DocTipoDNI
}

// ParseDocNumber convierte el documento (con o sin separadores) a entero.
func ParseDocNumber(number string) (int64, error) {
	digits := OnlyDigits(number)
	if digits == "" {
		return 0, fmt.Errorf("afip: documento vacío")
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("afip: documento %q inválido: %w", number, err)
	}
	return n, nil
}
