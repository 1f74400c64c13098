package core

import (
	"math"
	"testing"
)

func TestAABB_Clip(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	tests := []struct {
		name   string
		ray    Ray
		t0, t1 float64
		hit    bool
	}{
		{"through center", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), 4, 6, true},
		{"from inside", NewRay(Vec3{}, NewVec3(1, 0, 0)), 0, 1, true},
		{"parallel outside", NewRay(NewVec3(2, 0, -5), NewVec3(0, 0, 1)), 0, 0, false},
		{"pointing away", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)), 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t0, t1, ok := box.Clip(tt.ray, 0, math.Inf(1))
			if ok != tt.hit {
				t.Fatalf("Clip hit = %v, want %v", ok, tt.hit)
			}
			if ok && (math.Abs(t0-tt.t0) > 1e-12 || math.Abs(t1-tt.t1) > 1e-12) {
				t.Errorf("Clip = [%v, %v], want [%v, %v]", t0, t1, tt.t0, tt.t1)
			}
			if box.Hit(tt.ray, 0, math.Inf(1)) != tt.hit {
				t.Errorf("Hit disagrees with Clip")
			}
		})
	}
}

func TestAABB_FromPoints(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(1, 5, -2), NewVec3(-3, 2, 0), NewVec3(0, 0, 4))
	if box.Min != NewVec3(-3, 0, -2) || box.Max != NewVec3(1, 5, 4) {
		t.Errorf("unexpected bounds %v %v", box.Min, box.Max)
	}
	if box.LongestAxis() != 2 {
		t.Errorf("LongestAxis = %d, want 2", box.LongestAxis())
	}
	if c := box.Center(); c != NewVec3(-1, 2.5, 1) {
		t.Errorf("Center = %v", c)
	}
}
