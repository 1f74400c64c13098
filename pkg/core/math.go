package core

import "math"

const (
	// Inf is used as the far bound of unbounded ray queries
	Inf = 1e10

	// Eps is the relative epsilon used to offset ray bounds
	Eps = 1e-4
)

// SafeSqrt returns sqrt(max(0, v))
func SafeSqrt(v float64) float64 {
	return math.Sqrt(math.Max(0, v))
}

// BalanceHeuristic returns the MIS weight of strategy f competing with strategy g.
// Returns 0 when both densities are zero.
func BalanceHeuristic(pf, pg float64) float64 {
	if pf == 0 && pg == 0 {
		return 0
	}
	return pf / (pf + pg)
}

// Reflect reflects w about the normal n (both pointing away from the surface)
func Reflect(w, n Vec3) Vec3 {
	return n.Multiply(2 * w.Dot(n)).Subtract(w)
}

// Refract refracts wi (pointing away from the surface) through a surface with normal n
// on the side of wi. eta is the ratio of indices of refraction (incident / transmitted).
// Returns false on total internal reflection.
func Refract(wi, n Vec3, eta float64) (Vec3, bool) {
	cosI := wi.Dot(n)
	cos2T := 1 - eta*eta*(1-cosI*cosI)
	if cos2T <= 0 {
		return Vec3{}, false
	}
	return n.Multiply(eta*cosI - math.Sqrt(cos2T)).Subtract(wi.Multiply(eta)), true
}

// OrthonormalBasis builds a tangent frame (u, v) around the unit vector n.
// Uses the branchless construction of Duff et al.
func OrthonormalBasis(n Vec3) (Vec3, Vec3) {
	s := math.Copysign(1, n.Z)
	a := -1 / (s + n.Z)
	b := n.X * n.Y * a
	u := NewVec3(1+s*n.X*n.X*a, s*b, -s*n.X)
	v := NewVec3(b, s+n.Y*n.Y*a, -n.Y)
	return u, v
}

// ToWorld maps a local direction (x, y, z) in the frame (u, v, n) to world space
func ToWorld(local, u, v, n Vec3) Vec3 {
	return u.Multiply(local.X).Add(v.Multiply(local.Y)).Add(n.Multiply(local.Z))
}

// ToLocal maps a world direction into the frame (u, v, n)
func ToLocal(w, u, v, n Vec3) Vec3 {
	return NewVec3(w.Dot(u), w.Dot(v), w.Dot(n))
}
