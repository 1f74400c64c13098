package core

import (
	"math"
	"math/rand"
	"sort"
	"time"
)

// Sampler provides random numbers for rendering algorithms.
// Each worker owns exactly one sampler; implementations are not safe for concurrent use.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler draws uniform numbers from a math/rand generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler seeded with the given value
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// NewEntropySampler creates a sampler seeded from the wall clock
func NewEntropySampler() *RandomSampler {
	return NewSeededSampler(time.Now().UnixNano())
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns a pair of uniform numbers in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	x := r.random.Float64()
	return NewVec2(x, r.random.Float64())
}

// SampleCosineHemisphere returns a cosine-weighted direction in the local frame (z up).
// The projected solid angle density of the result is 1/pi.
func SampleCosineHemisphere(sample Vec2) Vec3 {
	d := SamplePointInUnitDisk(sample)
	z := SafeSqrt(1 - d.X*d.X - d.Y*d.Y)
	return NewVec3(d.X, d.Y, z)
}

// SampleOnUnitSphere maps u to a uniformly distributed unit vector (density 1/4pi)
func SampleOnUnitSphere(u Vec2) Vec3 {
	z := 1 - 2*u.X
	r := SafeSqrt(1 - z*z)
	sin, cos := math.Sincos(2 * math.Pi * u.Y)
	return NewVec3(r*cos, r*sin, z)
}

// SamplePointInUnitDisk maps u to a uniform point of the unit disk in the z=0 plane
// with Shirley's concentric mapping
func SamplePointInUnitDisk(u Vec2) Vec3 {
	a, b := 2*u.X-1, 2*u.Y-1
	if a == 0 && b == 0 {
		return Vec3{}
	}
	r, theta := b, math.Pi/2-math.Pi/4*(a/b)
	if math.Abs(a) > math.Abs(b) {
		r, theta = a, math.Pi/4*(b/a)
	}
	sin, cos := math.Sincos(theta)
	return NewVec3(r*cos, r*sin, 0)
}

// SampleUniformTriangle returns barycentric coordinates (b1, b2) uniformly distributed on a triangle
func SampleUniformTriangle(sample Vec2) (float64, float64) {
	s := math.Sqrt(math.Max(0, sample.X))
	return 1 - s, sample.Y * s
}

// Dist1D is a piecewise-constant discrete distribution
type Dist1D struct {
	cdf []float64
}

// Add appends an entry with the given (unnormalized) weight
func (d *Dist1D) Add(weight float64) {
	if len(d.cdf) == 0 {
		d.cdf = append(d.cdf, 0)
	}
	d.cdf = append(d.cdf, d.cdf[len(d.cdf)-1]+weight)
}

// Normalize rescales the cumulative weights to sum to one
func (d *Dist1D) Normalize() {
	if len(d.cdf) == 0 {
		return
	}
	total := d.cdf[len(d.cdf)-1]
	if total == 0 {
		return
	}
	for i := range d.cdf {
		d.cdf[i] /= total
	}
}

// Len returns the number of entries
func (d *Dist1D) Len() int {
	if len(d.cdf) == 0 {
		return 0
	}
	return len(d.cdf) - 1
}

// Sample returns an index distributed according to the weights
func (d *Dist1D) Sample(u float64) int {
	i := sort.SearchFloat64s(d.cdf, u)
	// SearchFloat64s returns the first cdf >= u; entry i-1 owns (cdf[i-1], cdf[i]]
	i = max(0, min(i-1, d.Len()-1))
	for i < d.Len()-1 && d.cdf[i+1] <= u {
		i++
	}
	return i
}

// Pmf returns the probability of selecting index i
func (d *Dist1D) Pmf(i int) float64 {
	if i < 0 || i >= d.Len() {
		return 0
	}
	return d.cdf[i+1] - d.cdf[i]
}
