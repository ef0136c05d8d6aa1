package simulator

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the noise source behind every generator in this package.
type Rand interface {
	// Uniform returns a value in [min, max).
	Uniform(min, max float64) float64
	// Int63Range returns an integer in [min, max).
	Int63Range(min, max int64) int64
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// lockedRand wraps *rand.Rand, which is not safe for concurrent use.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand returns a goroutine-safe Rand. A zero seed is replaced by the current time.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Uniform(min, max float64) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return min + l.r.Float64()*(max-min)
}

func (l *lockedRand) Int63Range(min, max int64) int64 {
	if max <= min {
		return min
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return min + l.r.Int63n(max-min)
}
