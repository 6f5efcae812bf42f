package core

import (
	"math/rand"
)

// Sampler provides uniform random deviates for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	// Get1D returns a uniform value in [0, 1)
	Get1D() float64
	// Range returns a uniform value in [minVal, maxVal)
	Range(minVal, maxVal float64) float64
}

// RandomSampler wraps a standard Go random generator. It is not safe for concurrent use.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with a deterministic seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Range returns a random float64 in [minVal, maxVal)
func (r *RandomSampler) Range(minVal, maxVal float64) float64 {
	return minVal + (maxVal-minVal)*r.random.Float64()
}

// RandomVec3 returns a vector with each component uniform in [0, 1)
func RandomVec3(sampler Sampler) Vec3 {
	return NewVec3(sampler.Get1D(), sampler.Get1D(), sampler.Get1D())
}

// RandomVec3InRange returns a vector with each component uniform in [minVal, maxVal)
func RandomVec3InRange(sampler Sampler, minVal, maxVal float64) Vec3 {
	return NewVec3(
		sampler.Range(minVal, maxVal),
		sampler.Range(minVal, maxVal),
		sampler.Range(minVal, maxVal),
	)
}

// RandomInUnitSphere generates a random point strictly inside the unit ball
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		// Generate random point in [-1,1]^3 cube
		p := RandomVec3InRange(sampler, -1, 1)
		// Accept if inside unit sphere
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}
