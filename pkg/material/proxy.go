package material

import (
	"github.com/df07/go-lighttransport/pkg/core"
)

// Proxy forwards every query to a referenced material so primitives can share one instance
type Proxy struct {
	Ref Material
}

// NewProxy creates a proxy for ref
func NewProxy(ref Material) *Proxy {
	return &Proxy{Ref: ref}
}

func (p *Proxy) SampleDirection(rng core.Sampler, geom core.PointGeometry, wi core.Vec3, comp int) (core.DirectionSample, bool) {
	return p.Ref.SampleDirection(rng, geom, wi, comp)
}

func (p *Proxy) PdfDirection(geom core.PointGeometry, comp int, wi, wo core.Vec3, evalDelta bool) float64 {
	return p.Ref.PdfDirection(geom, comp, wi, wo, evalDelta)
}

func (p *Proxy) Eval(geom core.PointGeometry, comp int, wi, wo core.Vec3, evalDelta bool) core.Vec3 {
	return p.Ref.Eval(geom, comp, wi, wo, evalDelta)
}

func (p *Proxy) IsSpecular(geom core.PointGeometry, comp int) bool {
	return p.Ref.IsSpecular(geom, comp)
}

func (p *Proxy) Reflectance(geom core.PointGeometry, comp int) (core.Vec3, bool) {
	return p.Ref.Reflectance(geom, comp)
}

// SampleComponent forwards to the referenced material
func (p *Proxy) SampleComponent(u float64, geom core.PointGeometry, wi core.Vec3) core.ComponentSample {
	return SampleComponent(p.Ref, u, geom, wi)
}
