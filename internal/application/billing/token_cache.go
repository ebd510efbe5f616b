package billing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jhoicas/facturador-afip/internal/domain"
	"github.com/jhoicas/facturador-afip/internal/domain/entity"
	"github.com/jhoicas/facturador-afip/pkg/logger"
	"github.com/jhoicas/facturador-afip/pkg/mutex"
)

// CacheEntry vista pública de una credencial cacheada (sin token ni sign).
type CacheEntry struct {
	CUIT      string    `json:"cuit"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenCache credenciales WSAA por emisor. Una credencial se reutiliza mientras le quede
// más de margin de vigencia; la renovación por emisor está serializada.
type TokenCache struct {
	auth    Authenticator
	clock   clockwork.Clock
	margin  time.Duration
	log     *logger.Logger
	mu      sync.RWMutex
	entries map[string]entity.Credential
	locks   mutex.KeyedMutex[string]
}

// NewTokenCache crea la caché vacía.
func NewTokenCache(auth Authenticator, clock clockwork.Clock, margin time.Duration, log *logger.Logger) *TokenCache {
	return &TokenCache{
		auth:    auth,
		clock:   clock,
		margin:  margin,
		log:     log,
		entries: make(map[string]entity.Credential),
	}
}

// GetOrRefresh devuelve la credencial vigente del emisor o autentica una sola vez y la reemplaza.
func (c *TokenCache) GetOrRefresh(ctx context.Context, issuer entity.Issuer) (entity.Credential, error) {
	if cred, ok := c.fresh(issuer.CUIT); ok {
		return cred, nil
	}

	unlock, err := c.locks.LockContext(ctx, issuer.CUIT)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return entity.Credential{}, fmt.Errorf("%w: esperando la renovación de la credencial de %s", domain.ErrTimeout, issuer.CUIT)
		}
		return entity.Credential{}, fmt.Errorf("esperando la renovación de la credencial de %s: %w", issuer.CUIT, err)
	}
	defer unlock()

	// otro request pudo renovarla mientras esperábamos el candado
	if cred, ok := c.fresh(issuer.CUIT); ok {
		return cred, nil
	}

	cred, err := c.auth.Authenticate(ctx, issuer)
	if err != nil {
		return entity.Credential{}, err
	}
	cred.CUIT = issuer.CUIT

	c.mu.Lock()
	c.entries[issuer.CUIT] = cred
	c.mu.Unlock()

	c.log.Info().Str("cuit", issuer.CUIT).Time("expires_at", cred.ExpiresAt).Msg("credencial WSAA renovada")
	return cred, nil
}

func (c *TokenCache) fresh(cuit string) (entity.Credential, bool) {
	c.mu.RLock()
	cred, ok := c.entries[cuit]
	c.mu.RUnlock()
	if !ok || !cred.ValidAt(c.clock.Now(), c.margin) {
		return entity.Credential{}, false
	}
	return cred, true
}

// Clear vacía la caché y devuelve cuántas credenciales se descartaron.
func (c *TokenCache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[string]entity.Credential)
	return n
}

// Len cantidad de credenciales cacheadas (vigentes o no).
func (c *TokenCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Entries vencimientos por emisor, ordenados por CUIT.
func (c *TokenCache) Entries() []CacheEntry {
	c.mu.RLock()
	out := make([]CacheEntry, 0, len(c.entries))
	for cuit, cred := range c.entries {
		out = append(out, CacheEntry{CUIT: cuit, ExpiresAt: cred.ExpiresAt})
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CUIT < out[j].CUIT })
	return out
}
