package camera

import (
	"math"
	"testing"

	"github.com/df07/go-lighttransport/pkg/core"
)

func testCamera() *Pinhole {
	return NewPinhole(CameraConfig{
		Center: core.NewVec3(0, 1, 3),
		LookAt: core.NewVec3(0, 1, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   45,
	})
}

func TestPinholeForward(t *testing.T) {
	forward := testCamera().Forward()
	expected := core.NewVec3(0, 0, -1)
	if forward.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected forward direction %v, got %v", expected, forward)
	}
}

func TestPinholeRasterRoundTrip(t *testing.T) {
	cam := testCamera()
	for _, aspect := range []float64{1, 16.0 / 9.0, 0.5} {
		for i := 1; i < 10; i++ {
			for j := 1; j < 10; j++ {
				rp := core.NewVec2(float64(i)/10, float64(j)/10)
				ray := cam.PrimaryRay(rp, aspect)
				got, ok := cam.RasterPosition(ray.Direction, aspect)
				if !ok {
					t.Fatalf("aspect %f: raster position of %v not found", aspect, rp)
				}
				if math.Abs(got.X-rp.X) > 1e-9 || math.Abs(got.Y-rp.Y) > 1e-9 {
					t.Fatalf("aspect %f: round trip %v -> %v", aspect, rp, got)
				}
			}
		}
	}
}

func TestPinholeRasterOrientation(t *testing.T) {
	cam := testCamera()
	top := cam.PrimaryRay(core.NewVec2(0.5, 0.1), 1)
	if top.Direction.Y <= 0 {
		t.Errorf("small raster y should look up, got %v", top.Direction)
	}
	left := cam.PrimaryRay(core.NewVec2(0.1, 0.5), 1)
	if left.Direction.X >= 0 {
		t.Errorf("small raster x should look left, got %v", left.Direction)
	}
}

func TestPinholeOutsideFrustum(t *testing.T) {
	cam := testCamera()
	tests := []struct {
		name string
		wo   core.Vec3
	}{
		{"behind", core.NewVec3(0, 0, 1)},
		{"sideways", core.NewVec3(1, 0, 0)},
		{"outside fov", core.NewVec3(0, 1, -1).Normalize()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := cam.RasterPosition(tt.wo, 1); ok {
				t.Error("expected no raster position")
			}
			if cam.PdfDirection(tt.wo, 1) != 0 || !cam.Eval(tt.wo, 1).IsZero() {
				t.Error("expected zero pdf and importance")
			}
		})
	}
}

func TestPinholePdfDirection(t *testing.T) {
	cam := testCamera()
	tf := math.Tan(math.Pi / 8)
	center := cam.Forward()
	if got, want := cam.PdfDirection(center, 2), 1/(8*tf*tf); math.Abs(got-want) > 1e-9 {
		t.Errorf("pdf at image center = %f, want %f", got, want)
	}

	// Density falls off with cos^3 away from the axis
	rp := core.NewVec2(0.9, 0.9)
	wo := cam.PrimaryRay(rp, 1).Direction
	cos := wo.Dot(center)
	want := 1 / (4 * tf * tf * cos * cos * cos)
	if got := cam.PdfDirection(wo, 1); math.Abs(got-want) > 1e-9 {
		t.Errorf("off-axis pdf = %f, want %f", got, want)
	}
}

func TestPinholeSampleDirectionWindow(t *testing.T) {
	cam := testCamera()
	rng := core.NewSeededSampler(7)
	window := Window{X: 0.25, Y: 0.5, W: 0.25, H: 0.25}
	for i := 0; i < 500; i++ {
		s, ok := cam.SampleDirection(rng, window, 1.5)
		if !ok {
			t.Fatal("SampleDirection failed")
		}
		rp, ok := cam.RasterPosition(s.Wo, 1.5)
		if !ok {
			t.Fatal("sampled direction outside the image")
		}
		if rp.X < window.X-1e-9 || rp.X > window.X+window.W+1e-9 || rp.Y < window.Y-1e-9 || rp.Y > window.Y+window.H+1e-9 {
			t.Fatalf("raster position %v outside window %v", rp, window)
		}
		if s.Weight != core.Splat(1) {
			t.Fatalf("weight = %v, want 1", s.Weight)
		}
	}
}

func TestPinholeSampleDirect(t *testing.T) {
	cam := testCamera()
	geom := core.MakeOnSurfaceFlat(core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1))
	s, ok := cam.SampleDirect(geom, 1)
	if !ok {
		t.Fatal("SampleDirect failed")
	}
	if s.Wo.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-9 {
		t.Errorf("wo = %v, want towards the point", s.Wo)
	}
	// We * G, G = 1/9 at distance 3
	want := cam.PdfDirection(s.Wo, 1) / 9
	if math.Abs(s.Weight.X-want) > 1e-12 {
		t.Errorf("weight = %v, want %f", s.Weight, want)
	}

	behind := core.MakeOnSurfaceFlat(core.NewVec3(0, 1, 6), core.NewVec3(0, 0, 1))
	if _, ok := cam.SampleDirect(behind, 1); ok {
		t.Error("points behind the camera cannot be connected")
	}
}
