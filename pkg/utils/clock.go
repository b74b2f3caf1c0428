package utils

import (
	"math/rand/v2"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Clock abstracts time.Now for deterministic tests
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator issues unique string ids
type IDGenerator interface {
	New() string
}

// ObjectIDGenerator issues time-ordered 24-char hex ids
type ObjectIDGenerator struct{}

func (ObjectIDGenerator) New() string { return primitive.NewObjectID().Hex() }

// Random is the subset of *rand.Rand the simulators draw from
type Random interface {
	Float64() float64
	IntN(n int) int
}

// LockedRandom is a PCG source safe for concurrent use
type LockedRandom struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandom seeds a PCG generator. A zero seed picks one from the clock.
func NewRandom(seed uint64) *LockedRandom {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &LockedRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *LockedRandom) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *LockedRandom) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}
