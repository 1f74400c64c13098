package material

import (
	"github.com/df07/go-lighttransport/pkg/core"
)

// Material describes how light scatters at a surface point.
//
// Directions wi and wo both point away from the surface. Densities are in projected
// solid angle measure. Eval and PdfDirection are conditional on the component comp
// having been selected; SampleDirection folds the selection probability into the weight
// when comp is core.CompDontCare.
//
// For specular (Dirac) components PdfDirection and Eval return 0 unless evalDelta is
// set, in which case they return the mass of the delta lobe assuming wo is its direction.
type Material interface {
	SampleDirection(rng core.Sampler, geom core.PointGeometry, wi core.Vec3, comp int) (core.DirectionSample, bool)
	PdfDirection(geom core.PointGeometry, comp int, wi, wo core.Vec3, evalDelta bool) float64
	Eval(geom core.PointGeometry, comp int, wi, wo core.Vec3, evalDelta bool) core.Vec3
	IsSpecular(geom core.PointGeometry, comp int) bool
	Reflectance(geom core.PointGeometry, comp int) (core.Vec3, bool)
}

// ComponentSampler is implemented by materials with more than one component
type ComponentSampler interface {
	SampleComponent(u float64, geom core.PointGeometry, wi core.Vec3) core.ComponentSample
}

// SampleComponent selects a component of m. Single-lobe materials return core.CompDontCare.
func SampleComponent(m Material, u float64, geom core.PointGeometry, wi core.Vec3) core.ComponentSample {
	if cs, ok := m.(ComponentSampler); ok {
		return cs.SampleComponent(u, geom, wi)
	}
	return core.ComponentSample{Comp: core.CompDontCare, Weight: core.Splat(1)}
}

// schlick evaluates Schlick's Fresnel approximation
func schlick(f0 core.Vec3, cosine float64) core.Vec3 {
	c := max(0, min(1, 1-cosine))
	c5 := c * c * c * c * c
	return f0.Add(core.Splat(1).Subtract(f0).Multiply(c5))
}
