package phase

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// Phase is a phase function of a participating medium.
// Medium points are degenerated, so densities are in solid angle.
// wi and wo both point away from the scattering point.
type Phase interface {
	SampleDirection(u core.Vec2, wi core.Vec3) (core.DirectionSample, bool)
	PdfDirection(wi, wo core.Vec3) float64
	Eval(wi, wo core.Vec3) core.Vec3
}

const inv4Pi = 1 / (4 * math.Pi)

// Isotropic scatters uniformly in all directions
type Isotropic struct{}

// NewIsotropic creates an isotropic phase function
func NewIsotropic() *Isotropic {
	return &Isotropic{}
}

func (p *Isotropic) SampleDirection(u core.Vec2, _ core.Vec3) (core.DirectionSample, bool) {
	return core.DirectionSample{Comp: core.CompDontCare, Wo: core.SampleOnUnitSphere(u), Weight: core.Splat(1)}, true
}

func (p *Isotropic) PdfDirection(_, _ core.Vec3) float64 {
	return inv4Pi
}

func (p *Isotropic) Eval(_, _ core.Vec3) core.Vec3 {
	return core.Splat(inv4Pi)
}

// HenyeyGreenstein is the Henyey-Greenstein phase function with asymmetry G in (-1, 1).
// Positive G favors forward scattering.
type HenyeyGreenstein struct {
	G float64
}

// NewHenyeyGreenstein creates a Henyey-Greenstein phase function
func NewHenyeyGreenstein(g float64) *HenyeyGreenstein {
	if g <= -1 || g >= 1 {
		panic("phase: asymmetry must be in (-1, 1)")
	}
	return &HenyeyGreenstein{G: g}
}

// value evaluates the phase function for the cosine between the propagation directions
func (p *HenyeyGreenstein) value(cosTheta float64) float64 {
	g := p.G
	denom := 1 + g*g - 2*g*cosTheta
	return inv4Pi * (1 - g*g) / (denom * math.Sqrt(denom))
}

func (p *HenyeyGreenstein) SampleDirection(u core.Vec2, wi core.Vec3) (core.DirectionSample, bool) {
	g := p.G
	var cosTheta float64
	if math.Abs(g) < 1e-3 {
		cosTheta = 1 - 2*u.X
	} else {
		sq := (1 - g*g) / (1 - g + 2*g*u.X)
		cosTheta = (1 + g*g - sq*sq) / (2 * g)
	}
	cosTheta = math.Max(-1, math.Min(1, cosTheta))
	sinTheta := core.SafeSqrt(1 - cosTheta*cosTheta)
	phi := 2 * math.Pi * u.Y

	// Light propagates along -wi before scattering
	d := wi.Negate()
	a, b := core.OrthonormalBasis(d)
	wo := core.ToWorld(core.NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta), a, b, d)
	return core.DirectionSample{Comp: core.CompDontCare, Wo: wo, Weight: core.Splat(1)}, true
}

func (p *HenyeyGreenstein) PdfDirection(wi, wo core.Vec3) float64 {
	return p.value(-wi.Dot(wo))
}

func (p *HenyeyGreenstein) Eval(wi, wo core.Vec3) core.Vec3 {
	return core.Splat(p.value(-wi.Dot(wo)))
}
