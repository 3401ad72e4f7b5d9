package sync_

import (
	"sync"
	"testing"

	assert_ "github.com/stretchr/testify/assert"
)

var _ Mutexer[int] = NewMutexed(123)
var _ Mutexer[int] = NewRWMutexed(123)

func TestSimple(t *testing.T) {
	assert := assert_.New(t)
	rw := NewRWMutexed(123)
	assert.Equal(123, rw.Get())
	assert.Equal(123, rw.Swap(456))
	assert.Equal(456, rw.Get())
	rw.Set(789)
	_ = rw.RLocked(func(v *int) error {
		assert.Equal(789, *v)
		return nil
	})
}

func TestRace(t *testing.T) {
	assert := assert_.New(t)
	rw := NewRWMutexed(0)
	start := NewEvent()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start.Wait()
			for j := 0; j < 50; j++ {
				_ = rw.Locked(func(v *int) error {
					*v++
					return nil
				})
			}
		}()
		go func() {
			defer wg.Done()
			<-start.Wait()
			for j := 0; j < 50; j++ {
				_ = rw.Get()
			}
		}()
	}

	start.Set()
	wg.Wait()
	assert.Equal(2500, rw.Get())
}
