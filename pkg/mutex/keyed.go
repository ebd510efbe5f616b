// Package mutex ofrece exclusión mutua por clave (un candado por emisor).
package mutex

import (
	"context"
	"sync"
)

type entry struct {
	sem  chan struct{} // capacidad 1: lleno = tomado
	refs int
}

// KeyedMutex serializa el trabajo por clave: claves distintas no se bloquean entre sí.
// Las entradas se liberan cuando nadie las usa. El valor cero está listo para usarse.
type KeyedMutex[K comparable] struct {
	mu    sync.Mutex
	table map[K]*entry
}

// Lock toma el candado de key y devuelve la función que lo libera.
func (m *KeyedMutex[K]) Lock(key K) (unlock func()) {
	unlock, _ = m.LockContext(context.Background(), key)
	return unlock
}

// LockContext como Lock, pero deja de esperar cuando ctx termina y devuelve ctx.Err().
func (m *KeyedMutex[K]) LockContext(ctx context.Context, key K) (unlock func(), err error) {
	e := m.acquire(key)
	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		m.release(key, e)
		return nil, ctx.Err()
	}
	return func() {
		<-e.sem
		m.release(key, e)
	}, nil
}

func (m *KeyedMutex[K]) acquire(key K) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.table == nil {
		m.table = make(map[K]*entry)
	}
	e, ok := m.table[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		m.table[key] = e
	}
	e.refs++
	return e
}

func (m *KeyedMutex[K]) release(key K, e *entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(m.table, key)
	}
}

// Len cantidad de claves con candado tomado o en espera.
func (m *KeyedMutex[K]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.table)
}
