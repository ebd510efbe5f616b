package mutex_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/facturador-afip/pkg/mutex"
)

func TestKeyedMutex_MismaClaveSerializa(t *testing.T) {
	var km mutex.KeyedMutex[string]
	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("27239676931")
			defer unlock()
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxInside)
	assert.Zero(t, km.Len(), "las entradas se liberan al terminar")
}

func TestKeyedMutex_ClavesDistintasNoSeBloquean(t *testing.T) {
	var km mutex.KeyedMutex[string]
	unlockA := km.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := km.Lock("b")
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("la clave b quedó bloqueada por a")
	}
	assert.Equal(t, 1, km.Len())
}

func TestKeyedMutex_LockContext_RespetaDeadline(t *testing.T) {
	var km mutex.KeyedMutex[string]
	unlock := km.Lock("27239676931")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	got, err := km.LockContext(ctx, "27239676931")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, got)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 1, km.Len(), "el que esperaba no deja la entrada retenida")

	unlock()
	assert.Zero(t, km.Len())

	again, err := km.LockContext(context.Background(), "27239676931")
	assert.NoError(t, err)
	again()
}
