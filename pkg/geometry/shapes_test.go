package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-lighttransport/pkg/core"
)

func TestSphere_Hit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name           string
		origin         core.Vec3
		direction      core.Vec3
		hit            bool
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{
			name:      "miss",
			origin:    core.NewVec3(2, 0, 0),
			direction: core.NewVec3(0, 1, 0),
		},
		{
			name:           "outside hit",
			origin:         core.NewVec3(0, 0, 2),
			direction:      core.NewVec3(0, 0, -1),
			hit:            true,
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "inside hit keeps outward normal",
			origin:         core.NewVec3(0, 0, 0),
			direction:      core.NewVec3(0, 0, 1),
			hit:            true,
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := sphere.Hit(core.NewRay(tt.origin, tt.direction), 1e-4, 1000)
			if ok != tt.hit {
				t.Fatalf("expected hit=%v, got %v", tt.hit, ok)
			}
			if !ok {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("expected t=%f, got %f", tt.expectedT, hit.T)
			}
			if hit.Geom.N.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("expected normal %v, got %v", tt.expectedNormal, hit.Geom.N)
			}
		})
	}
}

func TestQuad_Hit(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0))

	if hit, ok := quad.Hit(core.NewRay(core.NewVec3(1, 1, 1), core.NewVec3(0, 0, -1)), 1e-4, 100); !ok {
		t.Error("expected hit through the middle")
	} else if math.Abs(hit.Geom.UV.X-0.5) > 1e-9 || math.Abs(hit.Geom.UV.Y-0.5) > 1e-9 {
		t.Errorf("expected uv (0.5, 0.5), got %v", hit.Geom.UV)
	}

	if _, ok := quad.Hit(core.NewRay(core.NewVec3(3, 1, 1), core.NewVec3(0, 0, -1)), 1e-4, 100); ok {
		t.Error("expected miss outside the quad")
	}

	if _, ok := quad.Hit(core.NewRay(core.NewVec3(1, 1, 1), core.NewVec3(1, 0, 0)), 1e-4, 100); ok {
		t.Error("expected miss for a parallel ray")
	}

	if math.Abs(quad.Area()-4) > 1e-12 {
		t.Errorf("expected area 4, got %v", quad.Area())
	}
}

func TestTriangle_Hit(t *testing.T) {
	tri := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0))

	hit, ok := tri.Hit(core.NewRay(core.NewVec3(0.2, 0.2, 1), core.NewVec3(0, 0, -1)), 1e-4, 100)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(hit.T-1) > 1e-9 {
		t.Errorf("expected t=1, got %v", hit.T)
	}
	if hit.Geom.N.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("expected +z normal, got %v", hit.Geom.N)
	}

	if _, ok := tri.Hit(core.NewRay(core.NewVec3(0.8, 0.8, 1), core.NewVec3(0, 0, -1)), 1e-4, 100); ok {
		t.Error("expected miss beyond the hypotenuse")
	}

	if math.Abs(tri.Area()-0.5) > 1e-12 {
		t.Errorf("expected area 0.5, got %v", tri.Area())
	}
}

func TestSamplePointsLieOnShapes(t *testing.T) {
	sampler := core.NewSeededSampler(3)
	shapes := map[string]Sampleable{
		"sphere":   NewSphere(core.NewVec3(1, 2, 3), 0.5),
		"quad":     NewQuad(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1)),
		"triangle": NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1)),
		"cube":     NewCube(core.TranslateScale(core.NewVec3(0, 0, 5), 2)),
	}

	for name, shape := range shapes {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 100; i++ {
				geom := shape.SamplePoint(sampler.Get2D(), sampler.Get1D())
				// Shoot a ray back along the normal and expect to hit the sampled point
				origin := geom.P.Add(geom.N.Multiply(0.01))
				hit, ok := shape.Hit(core.NewRay(origin, geom.N.Negate()), 0, 1)
				if !ok {
					t.Fatalf("sampled point %v not found by a ray along its normal", geom.P)
				}
				if hit.Geom.P.Subtract(geom.P).Length() > 1e-6 {
					t.Fatalf("expected hit at %v, got %v", geom.P, hit.Geom.P)
				}
			}
		})
	}
}

func TestTriangleMesh_Errors(t *testing.T) {
	vertices := []core.Vec3{{}, {X: 1}, {Y: 1}}
	if _, err := NewTriangleMesh(vertices, []int{0, 1}, core.IdentityTransform()); err == nil {
		t.Error("expected error for incomplete face list")
	}
	if _, err := NewTriangleMesh(vertices, []int{0, 1, 3}, core.IdentityTransform()); err == nil {
		t.Error("expected error for out of range index")
	}
}

func TestCube_Area(t *testing.T) {
	cube := NewCube(core.TranslateScale(core.Vec3{}, 2))
	if math.Abs(cube.Area()-24) > 1e-9 {
		t.Errorf("expected area 24, got %v", cube.Area())
	}
	if cube.TriangleCount() != 12 {
		t.Errorf("expected 12 triangles, got %d", cube.TriangleCount())
	}
}
