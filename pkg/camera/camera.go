package camera

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// Window is a rectangle on the image plane in raster coordinates.
// Raster coordinates span [0,1]^2 with (0,0) at the top-left corner of the image.
type Window struct {
	X, Y, W, H float64
}

// FullWindow covers the whole image
var FullWindow = Window{X: 0, Y: 0, W: 1, H: 1}

// Camera generates primary rays and measures importance.
// Directional densities are in solid angle at the (degenerated) eye point and
// always refer to sampling over the whole image, regardless of any window.
type Camera interface {
	// PrimaryRay returns the ray through raster position rp
	PrimaryRay(rp core.Vec2, aspect float64) core.Ray

	// RasterPosition is the inverse of PrimaryRay
	RasterPosition(wo core.Vec3, aspect float64) (core.Vec2, bool)

	SamplePosition() core.PositionSample
	SampleDirection(rng core.Sampler, window Window, aspect float64) (core.DirectionSample, bool)
	PdfDirection(wo core.Vec3, aspect float64) float64

	SampleDirect(geom core.PointGeometry, aspect float64) (core.EndpointSample, bool)
	PdfDirect(geom, geomE core.PointGeometry, wo core.Vec3) float64

	// Eval returns the importance emitted along wo
	Eval(wo core.Vec3, aspect float64) core.Vec3
}

// CameraConfig contains camera configuration parameters
type CameraConfig struct {
	Center core.Vec3 // Camera position
	LookAt core.Vec3 // Point the camera is looking at
	Up     core.Vec3 // Up direction
	VFov   float64   // Vertical field of view in degrees
}

// Pinhole is an ideal pinhole camera
type Pinhole struct {
	config CameraConfig

	eye   core.Vec3
	right core.Vec3
	up    core.Vec3
	back  core.Vec3
	tf    float64 // tan(vfov/2)
}

// NewPinhole creates a pinhole camera from the given configuration
func NewPinhole(config CameraConfig) *Pinhole {
	right, up, back := core.LookAt(config.Center, config.LookAt, config.Up)
	return &Pinhole{
		config: config,
		eye:    config.Center,
		right:  right,
		up:     up,
		back:   back,
		tf:     math.Tan(config.VFov * math.Pi / 360),
	}
}

// Config returns the camera configuration
func (c *Pinhole) Config() CameraConfig {
	return c.config
}

// PrimaryRay returns the ray through raster position rp
func (c *Pinhole) PrimaryRay(rp core.Vec2, aspect float64) core.Ray {
	x := (2*rp.X - 1) * c.tf * aspect
	y := (1 - 2*rp.Y) * c.tf
	d := c.right.Multiply(x).Add(c.up.Multiply(y)).Subtract(c.back).Normalize()
	return core.NewRay(c.eye, d)
}

// local returns wo projected onto the image plane at unit distance
func (c *Pinhole) local(wo core.Vec3, aspect float64) (float64, float64, float64, bool) {
	z := -wo.Dot(c.back)
	if z <= 0 {
		return 0, 0, 0, false
	}
	x := wo.Dot(c.right) / z / (c.tf * aspect)
	y := wo.Dot(c.up) / z / c.tf
	if x < -1 || x > 1 || y < -1 || y > 1 {
		return 0, 0, 0, false
	}
	return x, y, z, true
}

// RasterPosition returns the raster position of direction wo
func (c *Pinhole) RasterPosition(wo core.Vec3, aspect float64) (core.Vec2, bool) {
	x, y, _, ok := c.local(wo, aspect)
	if !ok {
		return core.Vec2{}, false
	}
	return core.NewVec2((x+1)/2, (1-y)/2), true
}

// SamplePosition returns the eye
func (c *Pinhole) SamplePosition() core.PositionSample {
	return core.PositionSample{Geom: core.MakeDegenerated(c.eye), Weight: core.Splat(1)}
}

// SampleDirection samples a direction through a uniform raster position inside window
func (c *Pinhole) SampleDirection(rng core.Sampler, window Window, aspect float64) (core.DirectionSample, bool) {
	u := rng.Get2D()
	rp := core.NewVec2(window.X+u.X*window.W, window.Y+u.Y*window.H)
	return core.DirectionSample{
		Comp:   core.CompDontCare,
		Wo:     c.PrimaryRay(rp, aspect).Direction,
		Weight: core.Splat(1),
	}, true
}

// PdfDirection returns the solid angle density of uniform sampling over the whole image
func (c *Pinhole) PdfDirection(wo core.Vec3, aspect float64) float64 {
	_, _, z, ok := c.local(wo, aspect)
	if !ok {
		return 0
	}
	area := 4 * c.tf * c.tf * aspect
	return 1 / (area * z * z * z)
}

// Eval returns the importance, which equals the whole-image direction density
func (c *Pinhole) Eval(wo core.Vec3, aspect float64) core.Vec3 {
	return core.Splat(c.PdfDirection(wo, aspect))
}

// SampleDirect connects geom to the eye
func (c *Pinhole) SampleDirect(geom core.PointGeometry, aspect float64) (core.EndpointSample, bool) {
	geomE := core.MakeDegenerated(c.eye)
	toGeom := geom.P.Subtract(c.eye)
	if toGeom.LengthSquared() == 0 {
		return core.EndpointSample{}, false
	}
	wo := toGeom.Normalize()
	we := c.Eval(wo, aspect)
	if we.IsZero() {
		return core.EndpointSample{}, false
	}
	pdf := c.PdfDirect(geom, geomE, wo)
	if pdf == 0 {
		return core.EndpointSample{}, false
	}
	return core.EndpointSample{Geom: geomE, Comp: core.CompDontCare, Wo: wo, Weight: we.Divide(pdf)}, true
}

// PdfDirect returns 1/G for the fixed eye position
func (c *Pinhole) PdfDirect(geom, geomE core.PointGeometry, _ core.Vec3) float64 {
	g := core.GeometryTerm(geom, geomE)
	if g == 0 {
		return 0
	}
	return 1 / g
}

// Forward returns the viewing direction
func (c *Pinhole) Forward() core.Vec3 {
	return c.back.Negate()
}
