package geometry

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// Sphere represents a sphere shape.
// A negative radius flips the normals inward, for hollow shells seen from inside.
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a sphere; see Sphere for negative radii
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

// Hit returns the closest intersection in (tMin, tMax)
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (Hit, bool) {
	// |o + t d - c|^2 = r^2 with half the linear coefficient
	oc := ray.Origin.Subtract(s.Center)
	dd := ray.Direction.LengthSquared()
	b := oc.Dot(ray.Direction)
	disc := b*b - dd*(oc.LengthSquared()-s.Radius*s.Radius)
	if disc < 0 {
		return Hit{}, false
	}
	sq := math.Sqrt(disc)
	t := (-b - sq) / dd
	if t <= tMin || t >= tMax {
		if t = (-b + sq) / dd; t <= tMin || t >= tMax {
			return Hit{}, false
		}
	}

	p := ray.At(t)
	n := p.Subtract(s.Center).Divide(s.Radius)
	return Hit{T: t, Geom: core.MakeOnSurface(p, n, n, sphereUV(n))}, true
}

// BoundingBox returns the box around the sphere
func (s *Sphere) BoundingBox() core.AABB {
	r := core.Splat(math.Abs(s.Radius))
	return core.NewAABB(s.Center.Subtract(r), s.Center.Add(r))
}

// Area returns the surface area of the sphere
func (s *Sphere) Area() float64 {
	return 4 * math.Pi * s.Radius * s.Radius
}

// SamplePoint samples a point uniformly on the sphere surface
func (s *Sphere) SamplePoint(u core.Vec2, _ float64) core.PointGeometry {
	d := core.SampleOnUnitSphere(u)
	p := s.Center.Add(d.Multiply(s.Radius))
	n := p.Subtract(s.Center).Divide(s.Radius)
	return core.MakeOnSurface(p, n, n, sphereUV(n))
}

func sphereUV(n core.Vec3) core.Vec2 {
	theta := math.Acos(max(-1, min(1, -n.Y)))
	phi := math.Atan2(-n.Z, n.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}
