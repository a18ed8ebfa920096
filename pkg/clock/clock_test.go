package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/williandearaujo/Gestao-OL-360-sub001/pkg/requestcontext"
)

func TestNowFrom(t *testing.T) {
	pinned := time.Date(2026, 1, 15, 8, 30, 0, 0, time.UTC)
	fixed := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("context instant wins over clock", func(t *testing.T) {
		ctx := requestcontext.WithTime(context.Background(), pinned)
		assert.Equal(t, pinned, NowFrom(ctx, At(fixed)))
	})

	t.Run("clock used when context has no instant", func(t *testing.T) {
		assert.Equal(t, fixed, NowFrom(context.Background(), At(fixed)))
	})

	t.Run("nil clock falls back to wall clock", func(t *testing.T) {
		before := time.Now()
		assert.False(t, NowFrom(context.Background(), nil).Before(before))
	})

	t.Run("func clock is called", func(t *testing.T) {
		calls := 0
		c := Func(func() time.Time {
			calls++
			return fixed
		})
		assert.Equal(t, fixed, NowFrom(context.Background(), c))
		assert.Equal(t, 1, calls)
	})
}

func TestFixedClocksDoNotInterfere(t *testing.T) {
	a := At(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	b := At(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))

	t.Run("a", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 2020, a.Now().Year())
	})
	t.Run("b", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 2030, b.Now().Year())
	})
}
