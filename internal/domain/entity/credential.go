package entity

import "time"

// Credential token y sign devueltos por WSAA para un emisor.
type Credential struct {
	CUIT      string
	Token     string
	Sign      string
	ExpiresAt time.Time
}

// ValidAt indica si la credencial sigue vigente en now con al menos margin de sobra.
func (c Credential) ValidAt(now time.Time, margin time.Duration) bool {
	return c.Token != "" && c.ExpiresAt.Sub(now) > margin
}
