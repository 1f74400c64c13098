package lights

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// EnvConstLight is a constant environment surrounding the scene
type EnvConstLight struct {
	Le core.Vec3

	worldCenter core.Vec3
	worldRadius float64
}

// NewEnvConstLight creates a constant environment light
func NewEnvConstLight(le core.Vec3) *EnvConstLight {
	return &EnvConstLight{Le: le}
}

// Preprocess stores the scene bounding sphere
func (l *EnvConstLight) Preprocess(worldCenter core.Vec3, worldRadius float64) error {
	l.worldCenter = worldCenter
	l.worldRadius = worldRadius
	return nil
}

// SampleRay samples a uniform direction and an origin on the disk covering the scene
func (l *EnvConstLight) SampleRay(rng core.Sampler) (core.EndpointSample, bool) {
	if l.worldRadius <= 0 {
		return core.EndpointSample{}, false
	}
	wo := core.SampleOnUnitSphere(rng.Get2D())
	origin, area := diskSample(rng.Get2D(), wo, l.worldCenter, l.worldRadius)
	return core.EndpointSample{
		Geom:   core.MakeDegenerated(origin),
		Comp:   core.CompDontCare,
		Wo:     wo,
		Weight: l.Le.Multiply(4 * math.Pi * area),
	}, true
}

// SamplePosition is unsupported; position and direction are not separable
func (l *EnvConstLight) SamplePosition(core.Sampler) (core.PositionSample, bool) {
	return core.PositionSample{}, false
}

// SampleDirection is unsupported; see SamplePosition
func (l *EnvConstLight) SampleDirection(core.Sampler, core.PointGeometry) (core.DirectionSample, bool) {
	return core.DirectionSample{}, false
}

// PdfDirection is zero
func (l *EnvConstLight) PdfDirection(core.PointGeometry, core.Vec3) float64 {
	return 0
}

// SampleDirect samples a uniform direction on the sphere around geom
func (l *EnvConstLight) SampleDirect(rng core.Sampler, geom core.PointGeometry) (core.EndpointSample, bool) {
	d := core.SampleOnUnitSphere(rng.Get2D())
	wo := d.Negate()
	pdf := l.PdfDirect(geom, core.PointGeometry{}, wo)
	if pdf == 0 {
		return core.EndpointSample{}, false
	}
	return core.EndpointSample{
		Geom:   core.MakeInfinite(wo),
		Comp:   core.CompDontCare,
		Wo:     wo,
		Weight: l.Le.Divide(pdf),
	}, true
}

// PdfDirect returns the uniform sphere density in projected solid angle at geom
func (l *EnvConstLight) PdfDirect(geom, _ core.PointGeometry, wo core.Vec3) float64 {
	return core.ConvertSAToProjSA(1/(4*math.Pi), geom, wo.Negate())
}

// Eval returns Le for every direction
func (l *EnvConstLight) Eval(core.PointGeometry, core.Vec3, bool) core.Vec3 {
	return l.Le
}

// IsSpecular is false
func (l *EnvConstLight) IsSpecular() bool { return false }

// IsEnvironment is true
func (l *EnvConstLight) IsEnvironment() bool { return true }
