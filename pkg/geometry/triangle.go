package geometry

import (
	"github.com/df07/go-lighttransport/pkg/core"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3
	normal     core.Vec3
	area       float64
	bbox       core.AABB
}

// NewTriangle creates a new triangle from three vertices; the normal follows the winding order
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	cross := v1.Subtract(v0).Cross(v2.Subtract(v0))
	return &Triangle{
		V0:     v0,
		V1:     v1,
		V2:     v2,
		normal: cross.Normalize(),
		area:   0.5 * cross.Length(),
		bbox:   core.NewAABBFromPoints(v0, v1, v2),
	}
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (Hit, bool) {
	const epsilon = 1e-12

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in the plane of the triangle
	if a > -epsilon && a < epsilon {
		return Hit{}, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return Hit{}, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return Hit{}, false
	}

	tHit := f * edge2.Dot(q)
	if tHit <= tMin || tHit >= tMax {
		return Hit{}, false
	}

	p := ray.At(tHit)
	return Hit{T: tHit, Geom: core.MakeOnSurface(p, t.normal, t.normal, core.NewVec2(u, v))}, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Area returns the area of the triangle
func (t *Triangle) Area() float64 {
	return t.area
}

// SamplePoint samples a point uniformly on the triangle
func (t *Triangle) SamplePoint(u core.Vec2, _ float64) core.PointGeometry {
	b1, b2 := core.SampleUniformTriangle(u)
	p := t.V0.Multiply(1 - b1 - b2).Add(t.V1.Multiply(b1)).Add(t.V2.Multiply(b2))
	return core.MakeOnSurface(p, t.normal, t.normal, core.NewVec2(b1, b2))
}
