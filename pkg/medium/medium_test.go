package medium

import (
	"math"
	"testing"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/phase"
)

func unitBox() core.AABB {
	return core.NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))
}

func TestHomogeneousTransmittance(t *testing.T) {
	tests := []struct {
		sigmaT, d float64
	}{
		{0, 5},
		{0.5, 2},
		{2, 0.25},
	}
	ray := core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0))
	for _, tt := range tests {
		m := NewHomogeneous(tt.sigmaT, core.Splat(0.8), phase.NewIsotropic())
		got := m.EvalTransmittance(nil, ray, 0, tt.d)
		if want := math.Exp(-tt.sigmaT * tt.d); math.Abs(got.X-want) > 1e-12 {
			t.Errorf("sigma=%f d=%f: Tr = %f, want %f", tt.sigmaT, tt.d, got.X, want)
		}
	}
}

func TestHomogeneousSampleDistance(t *testing.T) {
	m := NewHomogeneous(1, core.NewVec3(0.9, 0.5, 0.1), phase.NewIsotropic())
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))
	rng := core.NewSeededSampler(21)

	const n = 50000
	events := 0
	for i := 0; i < n; i++ {
		s, ok := m.SampleDistance(rng, ray, 0, 1)
		if !ok {
			t.Fatal("SampleDistance failed")
		}
		if s.Medium {
			events++
			if s.P.Y < 0 || s.P.Y >= 1 {
				t.Fatalf("medium event at %v outside the segment", s.P)
			}
			if s.Weight != m.Albedo {
				t.Fatalf("medium event weight %v, want albedo", s.Weight)
			}
		} else if s.Weight != core.Splat(1) {
			t.Fatalf("surface weight %v, want 1", s.Weight)
		}
	}
	want := 1 - math.Exp(-1)
	if got := float64(events) / n; math.Abs(got-want) > 0.01 {
		t.Errorf("scattering probability %f, want %f", got, want)
	}
}

func TestVacuumNeverScatters(t *testing.T) {
	m := NewHomogeneous(0, core.Splat(1), phase.NewIsotropic())
	rng := core.NewSeededSampler(22)
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))
	for i := 0; i < 100; i++ {
		s, _ := m.SampleDistance(rng, ray, 0, core.Inf)
		if s.Medium {
			t.Fatal("vacuum produced a medium event")
		}
	}
}

func TestHeterogeneousMatchesClosedForm(t *testing.T) {
	const sigma = 0.75
	m := NewHeterogeneous(NewConstantVolume(unitBox(), 1), sigma, core.Splat(1), phase.NewIsotropic())
	// The ray crosses 2 units of the box out of a 10 unit segment
	ray := core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0))
	rng := core.NewSeededSampler(23)
	want := math.Exp(-sigma * 2)

	const n = 40000
	sumTr := 0.0
	events := 0
	for i := 0; i < n; i++ {
		sumTr += m.EvalTransmittance(rng, ray, 0, 10).X
		s, _ := m.SampleDistance(rng, ray, 0, 10)
		if s.Medium {
			events++
			if s.P.X < -1 || s.P.X > 1 {
				t.Fatalf("collision at %v outside the volume", s.P)
			}
		}
	}
	if got := sumTr / n; math.Abs(got-want) > 0.015 {
		t.Errorf("ratio tracking Tr = %f, want %f", got, want)
	}
	if got := 1 - float64(events)/n; math.Abs(got-want) > 0.015 {
		t.Errorf("delta tracking escape probability = %f, want %f", got, want)
	}
}

func TestHeterogeneousGridTransmittance(t *testing.T) {
	// Two voxels along x hold the same density so the field is constant at 0.5
	grid, err := NewGridVolume(unitBox(), 2, 1, 1, []float64{0.5, 0.5})
	if err != nil {
		t.Fatal(err)
	}
	// Majorant from a denser voxel elsewhere forces null collisions
	grid.maxDensity = 2
	m := NewHeterogeneous(grid, 1, core.Splat(1), phase.NewIsotropic())
	ray := core.NewRay(core.NewVec3(0, -3, 0), core.NewVec3(0, 1, 0))
	rng := core.NewSeededSampler(24)

	const n = 40000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += m.EvalTransmittance(rng, ray, 0, 6).X
	}
	want := math.Exp(-0.5 * 2)
	if got := sum / n; math.Abs(got-want) > 0.01 {
		t.Errorf("Tr = %f, want %f", got, want)
	}
}

func TestHeterogeneousMissesBound(t *testing.T) {
	m := NewHeterogeneous(NewConstantVolume(unitBox(), 1), 10, core.Splat(1), phase.NewIsotropic())
	ray := core.NewRay(core.NewVec3(-5, 3, 0), core.NewVec3(1, 0, 0))
	rng := core.NewSeededSampler(25)
	if tr := m.EvalTransmittance(rng, ray, 0, 10); tr != core.Splat(1) {
		t.Errorf("Tr = %v, want 1 for a ray missing the volume", tr)
	}
	if s, _ := m.SampleDistance(rng, ray, 0, 10); s.Medium {
		t.Error("ray missing the volume should not scatter")
	}
}

func TestGridVolumeDensity(t *testing.T) {
	grid, err := NewGridVolume(unitBox(), 2, 1, 1, []float64{1, 3})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		p    core.Vec3
		want float64
	}{
		{core.NewVec3(-0.5, 0, 0), 1},
		{core.NewVec3(0.5, 0, 0), 3},
		{core.NewVec3(0, 0, 0), 2},
		{core.NewVec3(-0.9, 0.9, -0.9), 1},
		{core.NewVec3(2, 0, 0), 0},
	}
	for _, tt := range tests {
		if got := grid.Density(tt.p); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Density(%v) = %f, want %f", tt.p, got, tt.want)
		}
	}
	if grid.MaxDensity() != 3 {
		t.Errorf("MaxDensity = %f, want 3", grid.MaxDensity())
	}
}

func TestNewGridVolumeErrors(t *testing.T) {
	if _, err := NewGridVolume(unitBox(), 2, 2, 2, []float64{1}); err == nil {
		t.Error("expected error for mismatched data length")
	}
	if _, err := NewGridVolume(unitBox(), 0, 1, 1, nil); err == nil {
		t.Error("expected error for empty resolution")
	}
	if _, err := NewGridVolume(unitBox(), 1, 1, 1, []float64{-1}); err == nil {
		t.Error("expected error for negative density")
	}
}
