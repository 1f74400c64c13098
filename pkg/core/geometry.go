package core

import "math"

// PointGeometry describes a point where light interacts with the scene.
//
// A regular point lies on a surface and carries normals. A degenerated point has
// zero measure (point lights, pinhole cameras, points inside media) and directions
// around it are measured in solid angle. An infinite point represents a direction
// at infinity; only Wo is meaningful and P must never be used as a ray origin.
type PointGeometry struct {
	P           Vec3 // Position
	N           Vec3 // Shading normal
	GN          Vec3 // Geometric normal
	UV          Vec2 // Texture coordinates
	Wo          Vec3 // Direction towards the point, for infinite points
	Degenerated bool
	Infinite    bool
}

// MakeOnSurface creates a regular surface point
func MakeOnSurface(p, n, gn Vec3, uv Vec2) PointGeometry {
	return PointGeometry{P: p, N: n, GN: gn, UV: uv}
}

// MakeOnSurfaceFlat creates a regular surface point whose shading normal equals the geometric normal
func MakeOnSurfaceFlat(p, n Vec3) PointGeometry {
	return PointGeometry{P: p, N: n, GN: n}
}

// MakeDegenerated creates a zero-measure point
func MakeDegenerated(p Vec3) PointGeometry {
	return PointGeometry{P: p, Degenerated: true}
}

// MakeInfinite creates a point at infinity. wo is the direction of travel of light
// arriving from that point, i.e. the negated direction towards it.
func MakeInfinite(wo Vec3) PointGeometry {
	return PointGeometry{Wo: wo, Infinite: true}
}

// Opposite reports whether wi and wo are on opposite sides of the surface
func (g PointGeometry) Opposite(wi, wo Vec3) bool {
	if g.Degenerated || g.Infinite {
		return false
	}
	return wi.Dot(g.N)*wo.Dot(g.N) <= 0
}

// OrthonormalBasisTwosided returns a shading frame (n, u, v) where n is flipped towards wi
func (g PointGeometry) OrthonormalBasisTwosided(wi Vec3) (Vec3, Vec3, Vec3) {
	n := g.N
	if wi.Dot(g.N) < 0 {
		n = n.Negate()
	}
	u, v := OrthonormalBasis(n)
	return n, u, v
}

// CosineTo returns |cos| between the shading normal and d, or 1 for degenerated points
func (g PointGeometry) CosineTo(d Vec3) float64 {
	if g.Degenerated {
		return 1
	}
	return math.Abs(g.N.Dot(d))
}

// GeometryTerm evaluates the geometry term between two finite points
func GeometryTerm(s1, s2 PointGeometry) float64 {
	v := s2.P.Subtract(s1.P)
	l2 := v.LengthSquared()
	if l2 == 0 {
		return 0
	}
	d := v.Divide(math.Sqrt(l2))
	return s1.CosineTo(d) * s2.CosineTo(d.Negate()) / l2
}

// ConvertSAToProjSA converts a solid angle density at geom into projected solid angle
func ConvertSAToProjSA(pdfSA float64, geom PointGeometry, d Vec3) float64 {
	if geom.Degenerated {
		return pdfSA
	}
	c := math.Abs(geom.N.Dot(d))
	if c == 0 {
		return 0
	}
	return pdfSA / c
}
