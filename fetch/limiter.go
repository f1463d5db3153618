package fetch

import (
	"math/rand"
	"time"
)

// Limiter enforces a fixed base wait plus bounded random jitter between
// requests, to avoid overloading the origin server.
type Limiter struct {
	base   time.Duration
	jitter time.Duration
}

// NewLimiter returns a limiter with the given base delay and jitter bound.
// A zero base disables the wait entirely.
func NewLimiter(base, jitter time.Duration) *Limiter {
	return &Limiter{base: base, jitter: jitter}
}

// Wait blocks for the base delay plus a random slice of the jitter.
func (l *Limiter) Wait() {
	if l == nil || l.base <= 0 {
		return
	}
	delay := l.base
	if l.jitter > 0 {
		delay += time.Duration(rand.Int63n(int64(l.jitter)))
	}
	time.Sleep(delay)
}
