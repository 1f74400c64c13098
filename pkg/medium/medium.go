package medium

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/phase"
)

// DistanceSample is the result of free-flight sampling along a ray.
// When Medium is false the ray reached the end of the segment.
// Weight is the transmittance-weighted contribution divided by the (implicit) density.
type DistanceSample struct {
	P      core.Vec3
	Medium bool
	Weight core.Vec3
}

// Medium is a participating medium. Rays must have normalized directions.
type Medium interface {
	// SampleDistance samples a scattering event on [tMin, tMax]
	SampleDistance(rng core.Sampler, ray core.Ray, tMin, tMax float64) (DistanceSample, bool)

	// EvalTransmittance estimates the transmittance over [tMin, tMax]
	EvalTransmittance(rng core.Sampler, ray core.Ray, tMin, tMax float64) core.Vec3

	// Phase returns the phase function at scattering events
	Phase() phase.Phase
}

// Homogeneous is a medium with constant extinction
type Homogeneous struct {
	SigmaT float64   // Extinction coefficient
	Albedo core.Vec3 // Scattering albedo sigma_s / sigma_t
	phase  phase.Phase
}

// NewHomogeneous creates a homogeneous medium
func NewHomogeneous(sigmaT float64, albedo core.Vec3, ph phase.Phase) *Homogeneous {
	return &Homogeneous{SigmaT: sigmaT, Albedo: albedo, phase: ph}
}

// SampleDistance samples an exponential free flight
func (m *Homogeneous) SampleDistance(rng core.Sampler, ray core.Ray, tMin, tMax float64) (DistanceSample, bool) {
	if m.SigmaT > 0 {
		t := tMin - math.Log(1-rng.Get1D())/m.SigmaT
		if t < tMax {
			return DistanceSample{P: ray.At(t), Medium: true, Weight: m.Albedo}, true
		}
	}
	return DistanceSample{P: ray.At(tMax), Weight: core.Splat(1)}, true
}

// EvalTransmittance returns exp(-sigma_t * d)
func (m *Homogeneous) EvalTransmittance(_ core.Sampler, _ core.Ray, tMin, tMax float64) core.Vec3 {
	return core.Splat(math.Exp(-m.SigmaT * (tMax - tMin)))
}

// Phase returns the phase function
func (m *Homogeneous) Phase() phase.Phase {
	return m.phase
}
