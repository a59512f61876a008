package booking

import (
	"math/rand"
	"sync"
	"time"
)

// RandomSource supplies the draws that decide a simulated provider's answer.
type RandomSource interface {
	Float64() float64
}

type seededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource returns a goroutine-safe source. Seed 0 seeds from the clock.
func NewSeededSource(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &seededSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *seededSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}
