package geometry

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// Quad represents a parallelogram defined by a corner and two edge vectors.
// The normal is U × V.
type Quad struct {
	Corner core.Vec3
	U      core.Vec3
	V      core.Vec3
	Normal core.Vec3
	d      float64   // Plane equation constant: n·p = d
	w      core.Vec3 // Cached n / (n·(u×v)) for planar coordinates
	area   float64
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()
	return &Quad{
		Corner: corner,
		U:      u,
		V:      v,
		Normal: normal,
		d:      normal.Dot(corner),
		w:      cross.Divide(cross.Dot(cross)),
		area:   cross.Length(),
	}
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (Hit, bool) {
	denominator := ray.Direction.Dot(q.Normal)

	// Ray parallel to the plane
	if math.Abs(denominator) < 1e-12 {
		return Hit{}, false
	}

	t := (q.d - ray.Origin.Dot(q.Normal)) / denominator
	if t <= tMin || t >= tMax {
		return Hit{}, false
	}

	p := ray.At(t)
	planar := p.Subtract(q.Corner)
	alpha := q.w.Dot(planar.Cross(q.V))
	beta := q.w.Dot(q.U.Cross(planar))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return Hit{}, false
	}

	return Hit{T: t, Geom: core.MakeOnSurface(p, q.Normal, q.Normal, core.NewVec2(alpha, beta))}, true
}

// BoundingBox returns the bounds of the quad, padded along flat axes
func (q *Quad) BoundingBox() core.AABB {
	p1 := q.Corner
	p2 := q.Corner.Add(q.U)
	p3 := q.Corner.Add(q.V)
	p4 := q.Corner.Add(q.U).Add(q.V)
	box := core.NewAABBFromPoints(p1, p2, p3, p4)
	const padding = 1e-4
	box.Min = box.Min.Subtract(core.Splat(padding))
	box.Max = box.Max.Add(core.Splat(padding))
	return box
}

// Area returns the area of the quad
func (q *Quad) Area() float64 {
	return q.area
}

// SamplePoint samples a point uniformly on the quad
func (q *Quad) SamplePoint(u core.Vec2, _ float64) core.PointGeometry {
	p := q.Corner.Add(q.U.Multiply(u.X)).Add(q.V.Multiply(u.Y))
	return core.MakeOnSurface(p, q.Normal, q.Normal, u)
}
