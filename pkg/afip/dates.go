package afip

import (
	"fmt"
	"strings"
	"time"
)

// ArgentinaZone hora oficial argentina (UTC-3, sin horario de verano).
var ArgentinaZone = time.FixedZone("ART", -3*60*60)

// DateLayout formato de fechas de WSFE (AAAAMMDD).
const DateLayout = "20060102"

// ParseDate acepta AAAAMMDD, AAAA-MM-DD o DD/MM/AAAA y devuelve la fecha en hora argentina.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateLayout, "2006-01-02", "02/01/2006"} {
		if t, err := time.ParseInLocation(layout, s, ArgentinaZone); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("afip: fecha %q inválida (usar AAAAMMDD o AAAA-MM-DD)", s)
}
