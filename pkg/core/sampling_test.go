package core

import (
	"math"
	"testing"
)

func TestSampleCosineHemisphere(t *testing.T) {
	sampler := NewSeededSampler(42)

	// E[cos] under a cosine-weighted density is 2/3
	const n = 200000
	sum := 0.0
	for i := 0; i < n; i++ {
		d := SampleCosineHemisphere(sampler.Get2D())
		if d.Z < 0 {
			t.Fatalf("direction %v below the hemisphere", d)
		}
		if math.Abs(d.Length()-1) > 1e-9 {
			t.Fatalf("direction %v is not normalized", d)
		}
		sum += d.Z
	}

	mean := sum / n
	if math.Abs(mean-2.0/3.0) > 0.01 {
		t.Errorf("mean cosine %v, expected 2/3", mean)
	}
}

func TestSampleOnUnitSphere(t *testing.T) {
	sampler := NewSeededSampler(7)
	var sum Vec3
	const n = 100000
	for i := 0; i < n; i++ {
		d := SampleOnUnitSphere(sampler.Get2D())
		if math.Abs(d.Length()-1) > 1e-9 {
			t.Fatalf("direction %v is not normalized", d)
		}
		sum = sum.Add(d)
	}
	if sum.Divide(n).Length() > 0.02 {
		t.Errorf("uniform sphere samples should average to zero, got %v", sum.Divide(n))
	}
}

func TestDist1D(t *testing.T) {
	var d Dist1D
	d.Add(1)
	d.Add(0)
	d.Add(3)
	d.Normalize()

	if d.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", d.Len())
	}

	pmfs := []float64{0.25, 0, 0.75}
	for i, expected := range pmfs {
		if math.Abs(d.Pmf(i)-expected) > 1e-12 {
			t.Errorf("Pmf(%d) = %v, expected %v", i, d.Pmf(i), expected)
		}
	}

	tests := []struct {
		u        float64
		expected int
	}{
		{0.0, 0},
		{0.1, 0},
		{0.3, 2},
		{0.99, 2},
	}
	for _, tt := range tests {
		if got := d.Sample(tt.u); got != tt.expected {
			t.Errorf("Sample(%v) = %d, expected %d", tt.u, got, tt.expected)
		}
	}
}
