package material

import (
	"github.com/df07/go-lighttransport/pkg/core"
)

// Mirror is a perfect specular reflector
type Mirror struct{}

// NewMirror creates a mirror material
func NewMirror() *Mirror {
	return &Mirror{}
}

// SampleDirection reflects wi about the shading normal
func (m *Mirror) SampleDirection(_ core.Sampler, geom core.PointGeometry, wi core.Vec3, _ int) (core.DirectionSample, bool) {
	n, _, _ := geom.OrthonormalBasisTwosided(wi)
	return core.DirectionSample{
		Comp:   core.CompDontCare,
		Wo:     core.Reflect(wi, n),
		Weight: core.Splat(1),
	}, true
}

// PdfDirection is zero unless the delta lobe is requested
func (m *Mirror) PdfDirection(_ core.PointGeometry, _ int, _, _ core.Vec3, evalDelta bool) float64 {
	if evalDelta {
		return 1
	}
	return 0
}

// Eval is zero unless the delta lobe is requested
func (m *Mirror) Eval(_ core.PointGeometry, _ int, _, _ core.Vec3, evalDelta bool) core.Vec3 {
	if evalDelta {
		return core.Splat(1)
	}
	return core.Vec3{}
}

// IsSpecular is always true
func (m *Mirror) IsSpecular(core.PointGeometry, int) bool {
	return true
}

// Reflectance is not defined for mirrors
func (m *Mirror) Reflectance(core.PointGeometry, int) (core.Vec3, bool) {
	return core.Vec3{}, false
}

// Mask lets light pass straight through, used for cut-outs
type Mask struct{}

// NewMask creates a mask material
func NewMask() *Mask {
	return &Mask{}
}

// SampleDirection continues the path in the direction of travel
func (m *Mask) SampleDirection(_ core.Sampler, _ core.PointGeometry, wi core.Vec3, _ int) (core.DirectionSample, bool) {
	return core.DirectionSample{
		Comp:   core.CompDontCare,
		Wo:     wi.Negate(),
		Weight: core.Splat(1),
	}, true
}

// PdfDirection is zero unless the delta lobe is requested
func (m *Mask) PdfDirection(_ core.PointGeometry, _ int, _, _ core.Vec3, evalDelta bool) float64 {
	if evalDelta {
		return 1
	}
	return 0
}

// Eval is zero unless the delta lobe is requested
func (m *Mask) Eval(_ core.PointGeometry, _ int, _, _ core.Vec3, evalDelta bool) core.Vec3 {
	if evalDelta {
		return core.Splat(1)
	}
	return core.Vec3{}
}

// IsSpecular is always true
func (m *Mask) IsSpecular(core.PointGeometry, int) bool {
	return true
}

// Reflectance is not defined for masks
func (m *Mask) Reflectance(core.PointGeometry, int) (core.Vec3, bool) {
	return core.Vec3{}, false
}
