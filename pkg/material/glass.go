package material

import (
	"github.com/df07/go-lighttransport/pkg/core"
)

// Glass components
const (
	GlassReflect = 0
	GlassRefract = 1
)

// Glass is a smooth dielectric that reflects or refracts according to Fresnel
type Glass struct {
	Ni float64 // Index of refraction of the interior
}

// NewGlass creates a glass material
func NewGlass(ni float64) *Glass {
	return &Glass{Ni: ni}
}

// SampleDirection chooses reflection or refraction with probability given by Schlick's
// approximation. Refracted radiance is scaled by the squared ratio of indices.
func (g *Glass) SampleDirection(rng core.Sampler, geom core.PointGeometry, wi core.Vec3, comp int) (core.DirectionSample, bool) {
	entering := wi.Dot(geom.N) > 0
	n := geom.N
	eta := g.Ni // incident / transmitted
	if entering {
		eta = 1 / g.Ni
	} else {
		n = n.Negate()
	}

	cosI := wi.Dot(n)
	wt, ok := core.Refract(wi, n, eta)
	fr := 1.0
	if ok {
		r0 := (1 - g.Ni) / (1 + g.Ni)
		fr = schlick(core.Splat(r0*r0), cosI).X
	}

	reflect := comp == GlassReflect
	if comp == core.CompDontCare {
		reflect = rng.Get1D() < fr
	} else if comp == GlassRefract && !ok {
		return core.DirectionSample{}, false
	}

	if reflect {
		return core.DirectionSample{
			Comp:   GlassReflect,
			Wo:     core.Reflect(wi, n),
			Weight: core.Splat(1),
		}, true
	}
	return core.DirectionSample{
		Comp:   GlassRefract,
		Wo:     wt,
		Weight: core.Splat(eta * eta),
	}, true
}

// PdfDirection is zero unless the delta lobe is requested
func (g *Glass) PdfDirection(_ core.PointGeometry, _ int, _, _ core.Vec3, evalDelta bool) float64 {
	if evalDelta {
		return 1
	}
	return 0
}

// Eval is zero unless the delta lobe is requested
func (g *Glass) Eval(_ core.PointGeometry, _ int, _, _ core.Vec3, evalDelta bool) core.Vec3 {
	if evalDelta {
		return core.Splat(1)
	}
	return core.Vec3{}
}

// IsSpecular is always true
func (g *Glass) IsSpecular(core.PointGeometry, int) bool {
	return true
}

// Reflectance is not defined for glass
func (g *Glass) Reflectance(core.PointGeometry, int) (core.Vec3, bool) {
	return core.Vec3{}, false
}
