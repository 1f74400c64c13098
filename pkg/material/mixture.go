package material

import (
	"github.com/df07/go-lighttransport/pkg/core"
)

// Mixture components
const (
	MixtureDiffuse = 0
	MixtureGlossy  = 1
	MixtureAlpha   = 2
)

// Mixture combines a diffuse lobe, a glossy lobe and an alpha cut-out.
//
// With probability 1-Alpha the surface is transparent. Otherwise one of the two
// reflective lobes is chosen with probability proportional to its maximum reflectance,
// and both sampling and density evaluation use the same selection probabilities, so
// Eval and PdfDirection for either reflective component are the selection-weighted sums.
type Mixture struct {
	Diffuse *Diffuse
	Glossy  *Glossy
	Alpha   float64
}

// NewMixture creates a mixture of a diffuse and a glossy lobe with the given coverage
func NewMixture(kd ColorSource, ks core.Vec3, ax, ay, alpha float64) *Mixture {
	return &Mixture{
		Diffuse: NewDiffuseTextured(kd),
		Glossy:  NewGlossy(ks, ax, ay),
		Alpha:   max(0, min(1, alpha)),
	}
}

// diffuseSelection returns the probability of choosing the diffuse lobe
func (m *Mixture) diffuseSelection(geom core.PointGeometry) float64 {
	maxD := m.Diffuse.albedo(geom).MaxComponent()
	maxG := m.Glossy.Ks.MaxComponent()
	if maxD == 0 && maxG == 0 {
		return 1
	}
	return maxD / (maxD + maxG)
}

// SampleComponent selects the alpha cut-out or one of the reflective lobes
func (m *Mixture) SampleComponent(u float64, geom core.PointGeometry, _ core.Vec3) core.ComponentSample {
	one := core.Splat(1)
	if u >= m.Alpha {
		return core.ComponentSample{Comp: MixtureAlpha, Weight: one}
	}
	if u/m.Alpha < m.diffuseSelection(geom) {
		return core.ComponentSample{Comp: MixtureDiffuse, Weight: one}
	}
	return core.ComponentSample{Comp: MixtureGlossy, Weight: one}
}

// SampleDirection samples the given component, or selects one first when comp is CompDontCare
func (m *Mixture) SampleDirection(rng core.Sampler, geom core.PointGeometry, wi core.Vec3, comp int) (core.DirectionSample, bool) {
	if comp == core.CompDontCare {
		comp = m.SampleComponent(rng.Get1D(), geom, wi).Comp
	}

	if comp == MixtureAlpha {
		return core.DirectionSample{Comp: MixtureAlpha, Wo: wi.Negate(), Weight: core.Splat(1)}, true
	}

	var s core.DirectionSample
	var ok bool
	if comp == MixtureDiffuse {
		s, ok = m.Diffuse.SampleDirection(rng, geom, wi, core.CompDontCare)
	} else {
		s, ok = m.Glossy.SampleDirection(rng, geom, wi, core.CompDontCare)
	}
	if !ok {
		return core.DirectionSample{}, false
	}

	pdf := m.PdfDirection(geom, comp, wi, s.Wo, false)
	if pdf == 0 {
		return core.DirectionSample{}, false
	}
	f := m.Eval(geom, comp, wi, s.Wo, false)
	if f.IsZero() {
		return core.DirectionSample{}, false
	}
	return core.DirectionSample{Comp: comp, Wo: s.Wo, Weight: f.Divide(pdf)}, true
}

// PdfDirection evaluates the selection-weighted density of the reflective lobes
func (m *Mixture) PdfDirection(geom core.PointGeometry, comp int, wi, wo core.Vec3, evalDelta bool) float64 {
	if comp == MixtureAlpha {
		if evalDelta {
			return 1
		}
		return 0
	}
	if geom.Opposite(wi, wo) {
		return 0
	}
	pD := m.diffuseSelection(geom)
	pdf := 0.0
	if pD > 0 {
		pdf += pD * m.Diffuse.PdfDirection(geom, core.CompDontCare, wi, wo, false)
	}
	if pD < 1 {
		pdf += (1 - pD) * m.Glossy.PdfDirection(geom, core.CompDontCare, wi, wo, false)
	}
	return pdf
}

// Eval evaluates the sum of the selectable reflective lobes, or the cut-out for MixtureAlpha
func (m *Mixture) Eval(geom core.PointGeometry, comp int, wi, wo core.Vec3, evalDelta bool) core.Vec3 {
	if comp == MixtureAlpha {
		if evalDelta {
			return core.Splat(1)
		}
		return core.Vec3{}
	}
	if geom.Opposite(wi, wo) {
		return core.Vec3{}
	}
	// Lobes that can never be selected do not contribute
	pD := m.diffuseSelection(geom)
	var f core.Vec3
	if pD > 0 {
		f = f.Add(m.Diffuse.Eval(geom, core.CompDontCare, wi, wo, false))
	}
	if pD < 1 {
		f = f.Add(m.Glossy.Eval(geom, core.CompDontCare, wi, wo, false))
	}
	return f
}

// IsSpecular is true only for the cut-out component
func (m *Mixture) IsSpecular(_ core.PointGeometry, comp int) bool {
	return comp == MixtureAlpha
}

// Reflectance returns the diffuse albedo
func (m *Mixture) Reflectance(geom core.PointGeometry, _ int) (core.Vec3, bool) {
	return m.Diffuse.albedo(geom), true
}
