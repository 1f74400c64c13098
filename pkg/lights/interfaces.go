package lights

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// Light is an emitter.
//
// Direct sampling (SampleDirect/PdfDirect) picks a point on the light as seen from a
// receiver; its density is in projected solid angle at the receiver (solid angle when the
// receiver is degenerated). Emission sampling (SampleRay, SamplePosition, SampleDirection)
// draws rays leaving the light and is a different distribution; the two must not be mixed.
// Wo always points away from the light.
type Light interface {
	SampleRay(rng core.Sampler) (core.EndpointSample, bool)
	SamplePosition(rng core.Sampler) (core.PositionSample, bool)
	SampleDirection(rng core.Sampler, geomL core.PointGeometry) (core.DirectionSample, bool)
	PdfDirection(geomL core.PointGeometry, wo core.Vec3) float64

	SampleDirect(rng core.Sampler, geom core.PointGeometry) (core.EndpointSample, bool)
	PdfDirect(geom, geomL core.PointGeometry, wo core.Vec3) float64

	// Eval returns the emitted radiance leaving geomL in direction wo
	Eval(geomL core.PointGeometry, wo core.Vec3, evalDelta bool) core.Vec3

	// IsSpecular reports whether the emission is a Dirac distribution in direction
	IsSpecular() bool

	// IsEnvironment reports whether rays escaping the scene hit this light
	IsEnvironment() bool
}

// Preprocessor is implemented by lights that need the scene bounds
type Preprocessor interface {
	Preprocess(worldCenter core.Vec3, worldRadius float64) error
}

// diskSample samples a point on the disk of the scene's bounding sphere facing direction d,
// pushed back one radius so rays along d cover the whole scene. Returns the origin and the
// disk area.
func diskSample(u core.Vec2, d, center core.Vec3, radius float64) (core.Vec3, float64) {
	a, b := core.OrthonormalBasis(d)
	p := core.SamplePointInUnitDisk(u)
	origin := center.Subtract(d.Multiply(radius)).
		Add(a.Multiply(p.X * radius)).
		Add(b.Multiply(p.Y * radius))
	return origin, math.Pi * radius * radius
}
