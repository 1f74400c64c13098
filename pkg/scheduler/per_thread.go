package scheduler

import (
	"github.com/df07/go-lighttransport/pkg/core"
)

// PerThread holds one value per worker, created up front so workers never share state
type PerThread[T any] struct {
	values []T
}

// NewPerThread creates a value for each of n workers
func NewPerThread[T any](n int, create func(threadID int) T) *PerThread[T] {
	values := make([]T, n)
	for i := range values {
		values[i] = create(i)
	}
	return &PerThread[T]{values: values}
}

// Get returns the value owned by threadID
func (p *PerThread[T]) Get(threadID int) T {
	return p.values[threadID]
}

// NewSamplers creates one sampler per worker, seeded with seed + threadID.
// A negative seed selects non-deterministic seeding.
func NewSamplers(n int, seed int64) *PerThread[core.Sampler] {
	return NewPerThread(n, func(threadID int) core.Sampler {
		if seed < 0 {
			return core.NewEntropySampler()
		}
		return core.NewSeededSampler(seed + int64(threadID))
	})
}
