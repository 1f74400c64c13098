package geometry

import (
	"fmt"

	"github.com/df07/go-lighttransport/pkg/core"
)

// TriangleMesh represents a collection of triangles with an internal BVH
type TriangleMesh struct {
	triangles []*Triangle
	bvh       *BVH
	bbox      core.AABB
	areaDist  core.Dist1D
	area      float64
}

// NewTriangleMesh creates a mesh from vertices and face indices, placing it with the
// given transform. Each group of 3 indices forms a triangle.
func NewTriangleMesh(vertices []core.Vec3, faces []int, transform core.Transform) (*TriangleMesh, error) {
	if len(faces) == 0 || len(faces)%3 != 0 {
		return nil, fmt.Errorf("geometry: face indices must be a non-zero multiple of 3, got %d", len(faces))
	}

	world := make([]core.Vec3, len(vertices))
	for i, v := range vertices {
		world[i] = transform.Point(v)
	}

	mesh := &TriangleMesh{}
	shapes := make([]Shape, 0, len(faces)/3)
	for i := 0; i < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]
		for _, idx := range []int{i0, i1, i2} {
			if idx < 0 || idx >= len(world) {
				return nil, fmt.Errorf("geometry: face index %d out of bounds", idx)
			}
		}

		tri := NewTriangle(world[i0], world[i1], world[i2])
		mesh.triangles = append(mesh.triangles, tri)
		shapes = append(shapes, tri)
		mesh.areaDist.Add(tri.Area())
		mesh.area += tri.Area()

		if len(mesh.triangles) == 1 {
			mesh.bbox = tri.BoundingBox()
		} else {
			mesh.bbox = mesh.bbox.Union(tri.BoundingBox())
		}
	}
	mesh.areaDist.Normalize()
	mesh.bvh = NewBVH(shapes)

	return mesh, nil
}

// NewCube creates an axis-aligned unit cube [-0.5, 0.5]^3 placed by the transform,
// with outward facing triangles
func NewCube(transform core.Transform) *TriangleMesh {
	vertices := []core.Vec3{
		{X: -0.5, Y: -0.5, Z: -0.5}, {X: 0.5, Y: -0.5, Z: -0.5},
		{X: 0.5, Y: 0.5, Z: -0.5}, {X: -0.5, Y: 0.5, Z: -0.5},
		{X: -0.5, Y: -0.5, Z: 0.5}, {X: 0.5, Y: -0.5, Z: 0.5},
		{X: 0.5, Y: 0.5, Z: 0.5}, {X: -0.5, Y: 0.5, Z: 0.5},
	}
	faces := []int{
		0, 2, 1, 0, 3, 2, // -z
		4, 5, 6, 4, 6, 7, // +z
		0, 1, 5, 0, 5, 4, // -y
		3, 7, 6, 3, 6, 2, // +y
		0, 4, 7, 0, 7, 3, // -x
		1, 2, 6, 1, 6, 5, // +x
	}
	mesh, err := NewTriangleMesh(vertices, faces, transform)
	if err != nil {
		panic(err)
	}
	return mesh
}

// Hit tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (Hit, bool) {
	hit, _, ok := tm.bvh.Hit(ray, tMin, tMax)
	return hit, ok
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bbox
}

// Area returns the total area of the mesh
func (tm *TriangleMesh) Area() float64 {
	return tm.area
}

// SamplePoint selects a triangle proportionally to its area and samples a point on it
func (tm *TriangleMesh) SamplePoint(u core.Vec2, uc float64) core.PointGeometry {
	i := tm.areaDist.Sample(uc)
	return tm.triangles[i].SamplePoint(u, 0)
}

// TriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}
