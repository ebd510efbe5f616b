package afip

import (
	"fmt"
	"time"
)

// BarcodeDigits arma la cadena del código de barras (RG 1702):
// CUIT(11) + tipo de comprobante(2) + punto de venta(4) + CAE(14) + vencimiento AAAAMMDD(8) + dígito verificador.
func BarcodeDigits(cuit string, tipoCbte, ptoVta int, cae string, vto time.Time) (string, error) {
	c := OnlyDigits(cuit)
	if len(c) != 11 {
		return "", fmt.Errorf("barcode: cuit %q inválido", cuit)
	}
	code := OnlyDigits(cae)
	if len(code) != 14 {
		return "", fmt.Errorf("barcode: cae %q debe tener 14 dígitos", cae)
	}
	base := fmt.Sprintf("%s%02d%04d%s%s", c, tipoCbte, ptoVta, code, vto.Format("20060102"))
	return base + fmt.Sprint(BarcodeCheckDigit(base)), nil
}

// BarcodeCheckDigit dígito verificador módulo 10: impares ×3 + pares, luego (10 - suma%10) % 10.
// Las posiciones se cuentan desde 1.
func BarcodeCheckDigit(digits string) int {
	var odd, even int
	for i := 0; i < len(digits); i++ {
		d := int(digits[i] - '0')
		if i%2 == 0 {
			odd += d
		} else {
			even += d
		}
	}
	sum := odd*3 + even
	return (10 - sum%10) % 10
}
