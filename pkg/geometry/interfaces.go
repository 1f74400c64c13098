package geometry

import (
	"github.com/df07/go-lighttransport/pkg/core"
)

// Hit is the result of a ray-shape intersection.
// Geom carries the outward (unflipped) normals of the shape.
type Hit struct {
	T    float64
	Geom core.PointGeometry
}

// Shape is anything a ray can hit
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (Hit, bool)
	BoundingBox() core.AABB
}

// Sampleable is a shape that supports uniform area sampling, used by area lights
type Sampleable interface {
	Shape

	// Area returns the total surface area
	Area() float64

	// SamplePoint returns a point distributed uniformly by area.
	// uc selects among sub-shapes when the shape is composite.
	SamplePoint(u core.Vec2, uc float64) core.PointGeometry
}
