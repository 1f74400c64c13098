package medium

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/phase"
)

// Heterogeneous is a medium whose extinction is Scale times a volume's density.
// Free flights use delta tracking and transmittance uses ratio tracking, both
// against the volume's maximum density as majorant.
type Heterogeneous struct {
	Volume Volume
	Scale  float64
	Albedo core.Vec3
	phase  phase.Phase
}

// NewHeterogeneous creates a heterogeneous medium
func NewHeterogeneous(volume Volume, scale float64, albedo core.Vec3, ph phase.Phase) *Heterogeneous {
	return &Heterogeneous{Volume: volume, Scale: scale, Albedo: albedo, phase: ph}
}

// clip restricts [tMin, tMax] to the part of the ray inside the volume bound
func (m *Heterogeneous) clip(ray core.Ray, tMin, tMax float64) (float64, float64, bool) {
	t0, t1, ok := m.Volume.Bound().Clip(ray, tMin, tMax)
	return t0, t1, ok && t0 < t1
}

func (m *Heterogeneous) majorant() float64 {
	return m.Scale * m.Volume.MaxDensity()
}

// SampleDistance samples a real collision with delta tracking
func (m *Heterogeneous) SampleDistance(rng core.Sampler, ray core.Ray, tMin, tMax float64) (DistanceSample, bool) {
	surface := DistanceSample{P: ray.At(tMax), Weight: core.Splat(1)}
	sigmaMax := m.majorant()
	if sigmaMax <= 0 {
		return surface, true
	}
	t0, t1, ok := m.clip(ray, tMin, tMax)
	if !ok {
		return surface, true
	}

	t := t0
	for {
		t -= math.Log(1-rng.Get1D()) / sigmaMax
		if t >= t1 {
			return surface, true
		}
		p := ray.At(t)
		if rng.Get1D()*sigmaMax < m.Scale*m.Volume.Density(p) {
			return DistanceSample{P: p, Medium: true, Weight: m.Albedo}, true
		}
	}
}

// EvalTransmittance estimates transmittance with ratio tracking
func (m *Heterogeneous) EvalTransmittance(rng core.Sampler, ray core.Ray, tMin, tMax float64) core.Vec3 {
	sigmaMax := m.majorant()
	if sigmaMax <= 0 {
		return core.Splat(1)
	}
	t0, t1, ok := m.clip(ray, tMin, tMax)
	if !ok {
		return core.Splat(1)
	}

	tr := 1.0
	t := t0
	for {
		t -= math.Log(1-rng.Get1D()) / sigmaMax
		if t >= t1 {
			break
		}
		tr *= 1 - m.Scale*m.Volume.Density(ray.At(t))/sigmaMax
		if tr <= 0 {
			return core.Vec3{}
		}
	}
	return core.Splat(tr)
}

// Phase returns the phase function
func (m *Heterogeneous) Phase() phase.Phase {
	return m.phase
}
