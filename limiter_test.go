package zha

import (
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"sync"
	"testing"
	"time"
)

func TestLimiter_Do(t *testing.T) {
	t.Run("bounds the number of functions running at once", func(t *testing.T) {
		l := newLimiter(2)
		wg := &sync.WaitGroup{}

		for i := 0; i < 6; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = l.Do(context.Background(), func(context.Context) error {
					time.Sleep(10 * time.Millisecond)
					return nil
				})
			}()
		}

		wg.Wait()

		assert.LessOrEqual(t, l.Peak(), int64(2))
		assert.Equal(t, int64(0), l.InFlight())
	})

	t.Run("returns the error of the function", func(t *testing.T) {
		l := newLimiter(1)
		expected := errors.New("failure")

		assert.ErrorIs(t, l.Do(context.Background(), func(context.Context) error { return expected }), expected)
	})

	t.Run("does not run the function if the context ends while waiting", func(t *testing.T) {
		l := newLimiter(1)

		release := make(chan struct{})
		go func() {
			_ = l.Do(context.Background(), func(context.Context) error {
				<-release
				return nil
			})
		}()

		for l.InFlight() == 0 {
			time.Sleep(time.Millisecond)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		called := false
		err := l.Do(ctx, func(context.Context) error {
			called = true
			return nil
		})

		close(release)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.False(t, called)
	})
}
