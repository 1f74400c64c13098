package material

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// Glossy is an anisotropic GGX microfacet reflector with Schlick Fresnel
type Glossy struct {
	Ks     core.Vec3 // Specular reflectance at normal incidence
	Ax, Ay float64   // Roughness along the two tangent directions
}

// NewGlossy creates a glossy material
func NewGlossy(ks core.Vec3, ax, ay float64) *Glossy {
	return &Glossy{Ks: ks, Ax: max(ax, 1e-4), Ay: max(ay, 1e-4)}
}

// ndf evaluates the GGX normal distribution for a local half vector
func (g *Glossy) ndf(h core.Vec3) float64 {
	if h.Z <= 0 {
		return 0
	}
	e := h.X*h.X/(g.Ax*g.Ax) + h.Y*h.Y/(g.Ay*g.Ay) + h.Z*h.Z
	return 1 / (math.Pi * g.Ax * g.Ay * e * e)
}

// smithG1 evaluates the masking function for a local direction
func (g *Glossy) smithG1(w core.Vec3) float64 {
	if w.Z <= 0 {
		return 0
	}
	a2tan2 := (w.X*w.X*g.Ax*g.Ax + w.Y*w.Y*g.Ay*g.Ay) / (w.Z * w.Z)
	lambda := (-1 + math.Sqrt(1+a2tan2)) / 2
	return 1 / (1 + lambda)
}

// SampleDirection samples a GGX half vector and reflects wi about it
func (g *Glossy) SampleDirection(rng core.Sampler, geom core.PointGeometry, wi core.Vec3, comp int) (core.DirectionSample, bool) {
	n, u, v := geom.OrthonormalBasisTwosided(wi)
	wiL := core.ToLocal(wi, u, v, n)
	if wiL.Z <= 0 {
		return core.DirectionSample{}, false
	}

	s := rng.Get2D()
	phi := math.Atan2(g.Ay*math.Sin(2*math.Pi*s.Y), g.Ax*math.Cos(2*math.Pi*s.Y))
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)
	invA2 := cosPhi*cosPhi/(g.Ax*g.Ax) + sinPhi*sinPhi/(g.Ay*g.Ay)
	tan2 := s.X / ((1 - s.X) * invA2)
	cosTheta := 1 / math.Sqrt(1+tan2)
	sinTheta := core.SafeSqrt(1 - cosTheta*cosTheta)
	h := core.NewVec3(sinTheta*cosPhi, sinTheta*sinPhi, cosTheta)

	woL := core.Reflect(wiL, h)
	if woL.Z <= 0 {
		return core.DirectionSample{}, false
	}
	wo := core.ToWorld(woL, u, v, n)

	pdf := g.PdfDirection(geom, comp, wi, wo, false)
	if pdf == 0 {
		return core.DirectionSample{}, false
	}
	return core.DirectionSample{
		Comp:   core.CompDontCare,
		Wo:     wo,
		Weight: g.Eval(geom, comp, wi, wo, false).Divide(pdf),
	}, true
}

// PdfDirection returns the density of reflecting wi into wo
func (g *Glossy) PdfDirection(geom core.PointGeometry, _ int, wi, wo core.Vec3, _ bool) float64 {
	if geom.Opposite(wi, wo) {
		return 0
	}
	n, u, v := geom.OrthonormalBasisTwosided(wi)
	wiL := core.ToLocal(wi, u, v, n)
	woL := core.ToLocal(wo, u, v, n)
	if wiL.Z <= 0 || woL.Z <= 0 {
		return 0
	}
	h := wiL.Add(woL).Normalize()
	return g.ndf(h) * h.Z / (4 * woL.Dot(h) * woL.Z)
}

// Eval evaluates the microfacet BRDF
func (g *Glossy) Eval(geom core.PointGeometry, _ int, wi, wo core.Vec3, _ bool) core.Vec3 {
	if geom.Opposite(wi, wo) {
		return core.Vec3{}
	}
	n, u, v := geom.OrthonormalBasisTwosided(wi)
	wiL := core.ToLocal(wi, u, v, n)
	woL := core.ToLocal(wo, u, v, n)
	if wiL.Z <= 0 || woL.Z <= 0 {
		return core.Vec3{}
	}
	h := wiL.Add(woL).Normalize()
	d := g.ndf(h)
	gg := g.smithG1(wiL) * g.smithG1(woL)
	f := schlick(g.Ks, wiL.Dot(h))
	return f.Multiply(d * gg / (4 * wiL.Z * woL.Z))
}

// IsSpecular is always false
func (g *Glossy) IsSpecular(core.PointGeometry, int) bool {
	return false
}

// Reflectance returns the normal incidence reflectance
func (g *Glossy) Reflectance(core.PointGeometry, int) (core.Vec3, bool) {
	return g.Ks, true
}
