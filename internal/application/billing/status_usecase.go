package billing

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jhoicas/facturador-afip/internal/application/dto"
	"github.com/jhoicas/facturador-afip/pkg/logger"
)

// EndpointInfo entorno y URLs efectivas de los servicios AFIP.
type EndpointInfo struct {
	Environment string
	WSAAURL     string
	WSFEURL     string
}

// StatusUseCase operaciones de diagnóstico y administración: /test, /estado y /limpiar_cache.
type StatusUseCase struct {
	issuers   *IssuerRegistry
	tokens    *TokenCache
	authority InvoiceAuthority
	info      EndpointInfo
	log       *logger.Logger
}

// NewStatusUseCase construye el caso de uso.
func NewStatusUseCase(issuers *IssuerRegistry, tokens *TokenCache, authority InvoiceAuthority, info EndpointInfo, log *logger.Logger) *StatusUseCase {
	return &StatusUseCase{issuers: issuers, tokens: tokens, authority: authority, info: info, log: log}
}

// Summary configuración visible sin secretos: emisores, archivos de certificado y URLs.
func (uc *StatusUseCase) Summary() dto.ConfigSummary {
	out := dto.ConfigSummary{
		Status:      dto.StatusOK,
		Environment: uc.info.Environment,
		WSAAURL:     uc.info.WSAAURL,
		WSFEURL:     uc.info.WSFEURL,
		CacheTokens: uc.tokens.Len(),
	}
	for _, is := range uc.issuers.All() {
		s := dto.IssuerSummary{
			CUIT:        is.CUIT,
			RazonSocial: is.RazonSocial,
			Certificado: filepath.Base(is.CertPath),
		}
		if is.KeyPath != "" {
			s.Llave = filepath.Base(is.KeyPath)
		}
		out.Emisores = append(out.Emisores, s)
	}
	for _, e := range uc.tokens.Entries() {
		out.CacheEntries = append(out.CacheEntries, dto.CacheEntry{
			CUIT:      e.CUIT,
			ExpiresAt: e.ExpiresAt.Format(time.RFC3339),
		})
	}
	return out
}

// ServerStatus consulta FEDummy. El estado es "OK" solo si los tres servidores responden OK.
func (uc *StatusUseCase) ServerStatus(ctx context.Context) (*dto.ServerStatusResponse, error) {
	st, err := uc.authority.Dummy(ctx)
	if err != nil {
		return nil, fmt.Errorf("estado WSFE: %w", err)
	}
	status := dto.StatusOK
	if !st.Healthy() {
		status = dto.StatusError
	}
	return &dto.ServerStatusResponse{
		Status:     status,
		AppServer:  st.AppServer,
		DbServer:   st.DbServer,
		AuthServer: st.AuthServer,
	}, nil
}

// ClearCache descarta todas las credenciales; el próximo request de cada emisor vuelve a autenticarse.
// operator es el sujeto del token admin ("" con las rutas abiertas).
func (uc *StatusUseCase) ClearCache(operator string) dto.ClearCacheResponse {
	n := uc.tokens.Clear()
	uc.log.Info().Int("eliminados", n).Str("operador", operator).Msg("caché de credenciales vaciada")
	return dto.ClearCacheResponse{
		Status:     dto.StatusOK,
		Eliminados: n,
		Mensaje:    fmt.Sprintf("se eliminaron %d credenciales", n),
		Operador:   operator,
	}
}
