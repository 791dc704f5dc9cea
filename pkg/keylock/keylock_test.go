package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyLockSerializesSameKey(t *testing.T) {
	l := New()

	var counter int
	wg := sync.WaitGroup{}
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Lock("user|ethereum|USDC")
			counter++
			l.Unlock("user|ethereum|USDC")
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestKeyLockReleasesEntries(t *testing.T) {
	l := New()
	l.Lock("a")
	l.Unlock("a")

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.locks, 0)
}

func TestKeyLockIndependentKeys(t *testing.T) {
	l := New()
	l.Lock("a")
	// must not block on a different key
	done := make(chan struct{})
	go func() {
		l.Lock("b")
		l.Unlock("b")
		close(done)
	}()
	<-done
	l.Unlock("a")
}
