package lights

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/geometry"
)

// AreaLight is a one-sided diffuse emitter attached to a sampleable shape.
// Light leaves the side the shape normal points to.
type AreaLight struct {
	Shape geometry.Sampleable
	Ke    core.Vec3
	invA  float64
}

// NewAreaLight creates an area light over shape with radiance ke
func NewAreaLight(shape geometry.Sampleable, ke core.Vec3) *AreaLight {
	return &AreaLight{Shape: shape, Ke: ke, invA: 1 / shape.Area()}
}

// SampleRay samples a uniform point and a cosine-weighted direction
func (l *AreaLight) SampleRay(rng core.Sampler) (core.EndpointSample, bool) {
	ps, _ := l.SamplePosition(rng)
	ds, ok := l.SampleDirection(rng, ps.Geom)
	if !ok {
		return core.EndpointSample{}, false
	}
	return core.EndpointSample{
		Geom:   ps.Geom,
		Comp:   core.CompDontCare,
		Wo:     ds.Wo,
		Weight: ps.Weight.MultiplyVec(ds.Weight),
	}, true
}

// SamplePosition samples a point uniformly by area
func (l *AreaLight) SamplePosition(rng core.Sampler) (core.PositionSample, bool) {
	geom := l.Shape.SamplePoint(rng.Get2D(), rng.Get1D())
	return core.PositionSample{Geom: geom, Weight: core.Splat(1 / l.invA)}, true
}

// SampleDirection samples a cosine-weighted direction on the emitting side
func (l *AreaLight) SampleDirection(rng core.Sampler, geomL core.PointGeometry) (core.DirectionSample, bool) {
	u, v := core.OrthonormalBasis(geomL.N)
	wo := core.ToWorld(core.SampleCosineHemisphere(rng.Get2D()), u, v, geomL.N)
	return core.DirectionSample{
		Comp:   core.CompDontCare,
		Wo:     wo,
		Weight: l.Ke.Multiply(math.Pi),
	}, true
}

// PdfDirection returns the projected solid angle density of SampleDirection
func (l *AreaLight) PdfDirection(geomL core.PointGeometry, wo core.Vec3) float64 {
	if wo.Dot(geomL.N) <= 0 {
		return 0
	}
	return 1 / math.Pi
}

// SampleDirect samples a point on the shape uniformly by area
func (l *AreaLight) SampleDirect(rng core.Sampler, geom core.PointGeometry) (core.EndpointSample, bool) {
	geomL := l.Shape.SamplePoint(rng.Get2D(), rng.Get1D())
	toGeom := geom.P.Subtract(geomL.P)
	if toGeom.LengthSquared() == 0 {
		return core.EndpointSample{}, false
	}
	wo := toGeom.Normalize()

	le := l.Eval(geomL, wo, false)
	if le.IsZero() {
		return core.EndpointSample{}, false
	}
	pdf := l.PdfDirect(geom, geomL, wo)
	if pdf == 0 {
		return core.EndpointSample{}, false
	}
	return core.EndpointSample{
		Geom:   geomL,
		Comp:   core.CompDontCare,
		Wo:     wo,
		Weight: le.Divide(pdf),
	}, true
}

// PdfDirect converts the area density 1/A into projected solid angle at geom
func (l *AreaLight) PdfDirect(geom, geomL core.PointGeometry, _ core.Vec3) float64 {
	g := core.GeometryTerm(geom, geomL)
	if g == 0 {
		return 0
	}
	return l.invA / g
}

// Eval returns Ke on the emitting side
func (l *AreaLight) Eval(geomL core.PointGeometry, wo core.Vec3, _ bool) core.Vec3 {
	if wo.Dot(geomL.N) <= 0 {
		return core.Vec3{}
	}
	return l.Ke
}

// IsSpecular is false
func (l *AreaLight) IsSpecular() bool { return false }

// IsEnvironment is false
func (l *AreaLight) IsEnvironment() bool { return false }
