package core

import (
	"math"
	"testing"
)

func TestBalanceHeuristic_Symmetric(t *testing.T) {
	tests := []struct {
		name   string
		pf, pg float64
	}{
		{"equal densities", 0.5, 0.5},
		{"one dominant", 10.0, 0.1},
		{"one zero", 0.0, 3.0},
		{"tiny densities", 1e-12, 3e-12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum := BalanceHeuristic(tt.pf, tt.pg) + BalanceHeuristic(tt.pg, tt.pf)
			if math.Abs(sum-1) > 1e-12 {
				t.Errorf("weights sum to %v, expected 1", sum)
			}
		})
	}

	if w := BalanceHeuristic(0, 0); w != 0 {
		t.Errorf("expected 0 for two zero densities, got %v", w)
	}
}

func TestOrthonormalBasis(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 0, 1),
		NewVec3(0, 0, -1),
		NewVec3(1, 0, 0),
		NewVec3(1, 2, 3).Normalize(),
		NewVec3(-0.3, 0.1, -0.9).Normalize(),
	}

	for _, n := range normals {
		u, v := OrthonormalBasis(n)
		const tolerance = 1e-9
		if math.Abs(u.Length()-1) > tolerance || math.Abs(v.Length()-1) > tolerance {
			t.Errorf("basis for %v is not unit length: %v %v", n, u, v)
		}
		if math.Abs(u.Dot(v)) > tolerance || math.Abs(u.Dot(n)) > tolerance || math.Abs(v.Dot(n)) > tolerance {
			t.Errorf("basis for %v is not orthogonal: %v %v", n, u, v)
		}
	}
}

func TestReflectRefract(t *testing.T) {
	n := NewVec3(0, 0, 1)
	wi := NewVec3(1, 0, 1).Normalize()

	r := Reflect(wi, n)
	expected := NewVec3(-1, 0, 1).Normalize()
	if r.Subtract(expected).Length() > 1e-9 {
		t.Errorf("reflect: expected %v, got %v", expected, r)
	}

	// Matching indices pass straight through
	wt, ok := Refract(wi, n, 1.0)
	if !ok {
		t.Fatal("unexpected total internal reflection")
	}
	if wt.Subtract(wi.Negate()).Length() > 1e-9 {
		t.Errorf("refract with eta=1: expected %v, got %v", wi.Negate(), wt)
	}

	// Grazing angle from the dense side
	grazing := NewVec3(1, 0, 0.1).Normalize()
	if _, ok := Refract(grazing, n, 1.5); ok {
		t.Error("expected total internal reflection")
	}
}

func TestSafeSqrt(t *testing.T) {
	if SafeSqrt(-1e-9) != 0 {
		t.Error("negative input should clamp to zero")
	}
	if math.Abs(SafeSqrt(4)-2) > 1e-12 {
		t.Error("sqrt(4) should be 2")
	}
}
