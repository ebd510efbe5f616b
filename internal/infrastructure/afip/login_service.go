package afip

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jhoicas/facturador-afip/internal/domain/entity"
	"github.com/jhoicas/facturador-afip/pkg/logger"
)

// CredentialLoader carga certificado y llave de un emisor (por defecto LoadCredentials).
type CredentialLoader func(entity.Issuer) (Credentials, error)

// LoginService arma el TRA, lo firma y lo canjea en WSAA por token y sign.
type LoginService struct {
	wsaa     *WSAAClient
	clock    clockwork.Clock
	service  string
	backdate time.Duration
	ttl      time.Duration
	load     CredentialLoader
	log      *logger.Logger
}

// LoginConfig parámetros del ticket de acceso.
type LoginConfig struct {
	Service  string
	Backdate time.Duration
	TTL      time.Duration
}

// NewLoginService crea el servicio. Si load es nil se leen las credenciales del disco.
func NewLoginService(wsaa *WSAAClient, clock clockwork.Clock, cfg LoginConfig, load CredentialLoader, log *logger.Logger) *LoginService {
	if load == nil {
		load = LoadCredentials
	}
	return &LoginService{
		wsaa:     wsaa,
		clock:    clock,
		service:  cfg.Service,
		backdate: cfg.Backdate,
		ttl:      cfg.TTL,
		load:     load,
		log:      log,
	}
}

// Authenticate obtiene una credencial nueva para el emisor. El material firmado nunca se registra en el log.
func (s *LoginService) Authenticate(ctx context.Context, issuer entity.Issuer) (entity.Credential, error) {
	creds, err := s.load(issuer)
	if err != nil {
		return entity.Credential{}, err
	}
	ticket, err := NewLoginTicket(s.service, s.clock.Now(), s.backdate, s.ttl)
	if err != nil {
		return entity.Credential{}, err
	}
	tra, err := ticket.XML()
	if err != nil {
		return entity.Credential{}, err
	}
	cms, err := SignTicket(tra, creds)
	if err != nil {
		return entity.Credential{}, err
	}

	s.log.Debug().Str("cuit", issuer.CUIT).Int64("unique_id", ticket.UniqueID).
		Time("cert_not_after", creds.NotAfter()).Msg("TRA firmado, solicitando loginCms")

	cred, err := s.wsaa.LoginCMS(ctx, cms)
	if err != nil {
		return entity.Credential{}, err
	}
	cred.CUIT = issuer.CUIT
	s.log.Info().Str("cuit", issuer.CUIT).Time("expires_at", cred.ExpiresAt).Msg("token WSAA obtenido")
	return cred, nil
}
