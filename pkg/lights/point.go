package lights

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// PointLight is an isotropic point emitter with intensity Le
type PointLight struct {
	Position core.Vec3
	Le       core.Vec3
}

// NewPointLight creates a point light
func NewPointLight(position, le core.Vec3) *PointLight {
	return &PointLight{Position: position, Le: le}
}

// SampleRay samples a uniform direction from the light position
func (l *PointLight) SampleRay(rng core.Sampler) (core.EndpointSample, bool) {
	ps, _ := l.SamplePosition(rng)
	ds, _ := l.SampleDirection(rng, ps.Geom)
	return core.EndpointSample{Geom: ps.Geom, Comp: core.CompDontCare, Wo: ds.Wo, Weight: ds.Weight}, true
}

// SamplePosition returns the light position
func (l *PointLight) SamplePosition(core.Sampler) (core.PositionSample, bool) {
	return core.PositionSample{Geom: core.MakeDegenerated(l.Position), Weight: core.Splat(1)}, true
}

// SampleDirection samples a uniform direction
func (l *PointLight) SampleDirection(rng core.Sampler, _ core.PointGeometry) (core.DirectionSample, bool) {
	return core.DirectionSample{
		Comp:   core.CompDontCare,
		Wo:     core.SampleOnUnitSphere(rng.Get2D()),
		Weight: l.Le.Multiply(4 * math.Pi),
	}, true
}

// PdfDirection returns the uniform sphere density
func (l *PointLight) PdfDirection(core.PointGeometry, core.Vec3) float64 {
	return 1 / (4 * math.Pi)
}

// SampleDirect connects geom to the light position
func (l *PointLight) SampleDirect(_ core.Sampler, geom core.PointGeometry) (core.EndpointSample, bool) {
	geomL := core.MakeDegenerated(l.Position)
	toGeom := geom.P.Subtract(l.Position)
	if toGeom.LengthSquared() == 0 {
		return core.EndpointSample{}, false
	}
	wo := toGeom.Normalize()
	pdf := l.PdfDirect(geom, geomL, wo)
	if pdf == 0 {
		return core.EndpointSample{}, false
	}
	return core.EndpointSample{
		Geom:   geomL,
		Comp:   core.CompDontCare,
		Wo:     wo,
		Weight: l.Le.Divide(pdf),
	}, true
}

// PdfDirect returns 1/G for the fixed light position
func (l *PointLight) PdfDirect(geom, geomL core.PointGeometry, _ core.Vec3) float64 {
	g := core.GeometryTerm(geom, geomL)
	if g == 0 {
		return 0
	}
	return 1 / g
}

// Eval returns the intensity in every direction
func (l *PointLight) Eval(core.PointGeometry, core.Vec3, bool) core.Vec3 {
	return l.Le
}

// IsSpecular is false
func (l *PointLight) IsSpecular() bool { return false }

// IsEnvironment is false
func (l *PointLight) IsEnvironment() bool { return false }
