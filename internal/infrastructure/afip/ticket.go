package afip

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/facturador-afip/internal/domain"
	pkgafip "github.com/jhoicas/facturador-afip/pkg/afip"
)

// ticketTimeLayout formato xsd:dateTime con offset que acepta WSAA.
const ticketTimeLayout = "2006-01-02T15:04:05-07:00"

// maxTicketTTL WSAA no acepta tickets de más de 24 horas.
const maxTicketTTL = 24 * time.Hour

// LoginTicket ticket de requerimiento de acceso (TRA) para WSAA.
type LoginTicket struct {
	UniqueID       int64
	GenerationTime time.Time
	ExpirationTime time.Time
	Service        string
}

// NewLoginTicket arma el TRA: generationTime se atrasa backdate para tolerar relojes
// desfasados y expirationTime vence ttl después de now.
func NewLoginTicket(service string, now time.Time, backdate, ttl time.Duration) (LoginTicket, error) {
	if service == "" {
		return LoginTicket{}, fmt.Errorf("%w: servicio WSAA vacío", domain.ErrInvalidInput)
	}
	if ttl <= 0 || ttl > maxTicketTTL {
		return LoginTicket{}, fmt.Errorf("%w: vigencia del ticket %s fuera de rango (0, 24h]", domain.ErrInvalidInput, ttl)
	}
	if backdate < 0 {
		backdate = 0
	}
	now = now.In(pkgafip.ArgentinaZone)
	return LoginTicket{
		UniqueID:       now.Unix(),
		GenerationTime: now.Add(-backdate),
		ExpirationTime: now.Add(ttl),
		Service:        service,
	}, nil
}

// XML devuelve el TRA canónico (C14N), sin declaración XML, listo para firmar.
func (t LoginTicket) XML() ([]byte, error) {
	doc := etree.NewDocument()
	root := doc.CreateElement("loginTicketRequest")
	root.CreateAttr("version", "1.0")

	header := root.CreateElement("header")
	header.CreateElement("uniqueId").SetText(strconv.FormatInt(t.UniqueID, 10))
	header.CreateElement("generationTime").SetText(t.GenerationTime.Format(ticketTimeLayout))
	header.CreateElement("expirationTime").SetText(t.ExpirationTime.Format(ticketTimeLayout))
	root.CreateElement("service").SetText(t.Service)

	raw, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("ticket: serializar: %w", err)
	}
	canonical, err := c14n.Canonicalize(xml.NewDecoder(bytes.NewReader(raw)))
	if err != nil {
		return nil, fmt.Errorf("ticket: canonicalizar: %w", err)
	}
	return canonical, nil
}
