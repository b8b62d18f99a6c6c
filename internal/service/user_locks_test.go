package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserLocks(t *testing.T) {
	locks := NewUserLocks()

	var (
		wg      sync.WaitGroup
		counter int
	)

	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock := locks.Lock("user-1")
			defer unlock()

			// guarded only by the user lock
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
	assert.Equal(t, 0, locks.size())
}

func TestUserLocksAreIndependent(t *testing.T) {
	locks := NewUserLocks()

	unlockA := locks.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := locks.Lock("b")
		unlock()
		close(done)
	}()

	<-done
	assert.Equal(t, 1, locks.size())
}
