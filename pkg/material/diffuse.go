package material

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// Diffuse is a Lambertian reflector
type Diffuse struct {
	Kd ColorSource
}

// NewDiffuse creates a diffuse material with a constant albedo
func NewDiffuse(albedo core.Vec3) *Diffuse {
	return &Diffuse{Kd: NewSolidColor(albedo)}
}

// NewDiffuseTextured creates a diffuse material with a spatially varying albedo
func NewDiffuseTextured(kd ColorSource) *Diffuse {
	return &Diffuse{Kd: kd}
}

func (d *Diffuse) albedo(geom core.PointGeometry) core.Vec3 {
	return d.Kd.Evaluate(geom.UV, geom.P)
}

// SampleDirection samples a cosine-weighted direction on the side of wi
func (d *Diffuse) SampleDirection(rng core.Sampler, geom core.PointGeometry, wi core.Vec3, _ int) (core.DirectionSample, bool) {
	n, u, v := geom.OrthonormalBasisTwosided(wi)
	wo := core.ToWorld(core.SampleCosineHemisphere(rng.Get2D()), u, v, n)
	if wo.Dot(n) <= 0 {
		return core.DirectionSample{}, false
	}
	return core.DirectionSample{
		Comp:   core.CompDontCare,
		Wo:     wo,
		Weight: d.albedo(geom),
	}, true
}

// PdfDirection returns 1/pi on the side of wi
func (d *Diffuse) PdfDirection(geom core.PointGeometry, _ int, wi, wo core.Vec3, _ bool) float64 {
	if geom.Opposite(wi, wo) {
		return 0
	}
	return 1 / math.Pi
}

// Eval returns albedo/pi on the side of wi
func (d *Diffuse) Eval(geom core.PointGeometry, _ int, wi, wo core.Vec3, _ bool) core.Vec3 {
	if geom.Opposite(wi, wo) {
		return core.Vec3{}
	}
	return d.albedo(geom).Multiply(1 / math.Pi)
}

// IsSpecular is always false
func (d *Diffuse) IsSpecular(core.PointGeometry, int) bool {
	return false
}

// Reflectance returns the albedo
func (d *Diffuse) Reflectance(geom core.PointGeometry, _ int) (core.Vec3, bool) {
	return d.albedo(geom), true
}
