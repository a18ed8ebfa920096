// Package clock supplies the current instant to temporal computations.
//
// Engine functions take "now" as an argument; the facade obtains it from a
// Clock so tests can pin it and no global time state is shared across calls.
package clock

import (
	"context"
	"time"

	"github.com/williandearaujo/Gestao-OL-360-sub001/pkg/requestcontext"
)

// Clock returns the current instant.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant.
type Fixed struct {
	t time.Time
}

// At returns a Clock pinned to t.
func At(t time.Time) Fixed {
	return Fixed{t: t}
}

func (f Fixed) Now() time.Time { return f.t }

// Func adapts a plain function to Clock.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }

// NowFrom prefers an instant pinned on ctx via requestcontext.WithTime and
// falls back to c. A nil c means the system clock.
func NowFrom(ctx context.Context, c Clock) time.Time {
	if t, ok := requestcontext.Time(ctx); ok {
		return t
	}
	if c == nil {
		return time.Now()
	}
	return c.Now()
}
