package billing

import (
	"fmt"
	"sort"

	"github.com/jhoicas/facturador-afip/internal/domain"
	"github.com/jhoicas/facturador-afip/internal/domain/entity"
	"github.com/jhoicas/facturador-afip/pkg/afip"
)

// IssuerRegistry tabla estática de emisores habilitados, indexada por CUIT. Inmutable tras su creación.
type IssuerRegistry struct {
	byCUIT map[string]entity.Issuer
}

// NewIssuerRegistry valida los CUIT y rechaza duplicados.
func NewIssuerRegistry(issuers []entity.Issuer) (*IssuerRegistry, error) {
	r := &IssuerRegistry{byCUIT: make(map[string]entity.Issuer, len(issuers))}
	for _, is := range issuers {
		cuit := afip.OnlyDigits(is.CUIT)
		if err := afip.ValidateCUIT(cuit); err != nil {
			return nil, fmt.Errorf("emisor %q: %w", is.CUIT, err)
		}
		if _, dup := r.byCUIT[cuit]; dup {
			return nil, fmt.Errorf("emisor %s duplicado", cuit)
		}
		is.CUIT = cuit
		r.byCUIT[cuit] = is
	}
	return r, nil
}

// Resolve busca el emisor; si no está configurado devuelve domain.ErrIssuerNotConfigured.
func (r *IssuerRegistry) Resolve(cuit string) (entity.Issuer, error) {
	is, ok := r.byCUIT[afip.OnlyDigits(cuit)]
	if !ok {
		return entity.Issuer{}, fmt.Errorf("%w: CUIT %s", domain.ErrIssuerNotConfigured, cuit)
	}
	return is, nil
}

// CUITs lista ordenada de emisores configurados.
func (r *IssuerRegistry) CUITs() []string {
	out := make([]string, 0, len(r.byCUIT))
	for cuit := range r.byCUIT {
		out = append(out, cuit)
	}
	sort.Strings(out)
	return out
}

// All emisores ordenados por CUIT.
func (r *IssuerRegistry) All() []entity.Issuer {
	out := make([]entity.Issuer, 0, len(r.byCUIT))
	for _, cuit := range r.CUITs() {
		out = append(out, r.byCUIT[cuit])
	}
	return out
}
