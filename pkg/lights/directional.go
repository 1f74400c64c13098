package lights

import (
	"github.com/df07/go-lighttransport/pkg/core"
)

// DirectionalLight emits parallel rays travelling along Direction.
// It needs the scene bounds before emission rays can be sampled.
type DirectionalLight struct {
	Direction core.Vec3
	Le        core.Vec3

	worldCenter core.Vec3
	worldRadius float64
}

// NewDirectionalLight creates a directional light; direction is the direction light travels
func NewDirectionalLight(direction, le core.Vec3) *DirectionalLight {
	return &DirectionalLight{Direction: direction.Normalize(), Le: le}
}

// Preprocess stores the scene bounding sphere
func (l *DirectionalLight) Preprocess(worldCenter core.Vec3, worldRadius float64) error {
	l.worldCenter = worldCenter
	l.worldRadius = worldRadius
	return nil
}

// SampleRay samples a ray entering the scene bounds along Direction
func (l *DirectionalLight) SampleRay(rng core.Sampler) (core.EndpointSample, bool) {
	ps, ok := l.SamplePosition(rng)
	if !ok {
		return core.EndpointSample{}, false
	}
	return core.EndpointSample{
		Geom:   ps.Geom,
		Comp:   core.CompDontCare,
		Wo:     l.Direction,
		Weight: ps.Weight.MultiplyVec(l.Le),
	}, true
}

// SamplePosition samples a point on the disk covering the scene bounds
func (l *DirectionalLight) SamplePosition(rng core.Sampler) (core.PositionSample, bool) {
	if l.worldRadius <= 0 {
		return core.PositionSample{}, false
	}
	origin, area := diskSample(rng.Get2D(), l.Direction, l.worldCenter, l.worldRadius)
	return core.PositionSample{Geom: core.MakeDegenerated(origin), Weight: core.Splat(area)}, true
}

// SampleDirection always returns Direction
func (l *DirectionalLight) SampleDirection(core.Sampler, core.PointGeometry) (core.DirectionSample, bool) {
	return core.DirectionSample{Comp: core.CompDontCare, Wo: l.Direction, Weight: l.Le}, true
}

// PdfDirection is zero for a delta direction
func (l *DirectionalLight) PdfDirection(core.PointGeometry, core.Vec3) float64 {
	return 0
}

// SampleDirect returns the point at infinity the light arrives from
func (l *DirectionalLight) SampleDirect(_ core.Sampler, geom core.PointGeometry) (core.EndpointSample, bool) {
	pdf := l.PdfDirect(geom, core.PointGeometry{}, l.Direction)
	if pdf == 0 {
		return core.EndpointSample{}, false
	}
	return core.EndpointSample{
		Geom:   core.MakeInfinite(l.Direction),
		Comp:   core.CompDontCare,
		Wo:     l.Direction,
		Weight: l.Le.Divide(pdf),
	}, true
}

// PdfDirect converts the unit solid angle selection into projected solid angle at geom
func (l *DirectionalLight) PdfDirect(geom, _ core.PointGeometry, wo core.Vec3) float64 {
	return core.ConvertSAToProjSA(1, geom, wo)
}

// Eval returns Le only when delta evaluation is requested
func (l *DirectionalLight) Eval(_ core.PointGeometry, _ core.Vec3, evalDelta bool) core.Vec3 {
	if !evalDelta {
		return core.Vec3{}
	}
	return l.Le
}

// IsSpecular is true
func (l *DirectionalLight) IsSpecular() bool { return true }

// IsEnvironment is false; escaping rays never hit a delta direction
func (l *DirectionalLight) IsEnvironment() bool { return false }
