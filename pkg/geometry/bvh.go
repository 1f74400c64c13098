package geometry

import (
	"sort"

	"github.com/df07/go-lighttransport/pkg/core"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Items       []int // Shape indices for leaf nodes (nil for internal nodes)
}

// BVH is a Bounding Volume Hierarchy over a fixed list of shapes.
// Hits report the index of the shape in the list passed to NewBVH.
type BVH struct {
	Root   *BVHNode
	shapes []Shape
}

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 8

// NewBVH constructs a BVH from a slice of shapes
func NewBVH(shapes []Shape) *BVH {
	bvh := &BVH{shapes: shapes}
	if len(shapes) == 0 {
		return bvh
	}

	items := make([]int, len(shapes))
	centers := make([]core.Vec3, len(shapes))
	for i, shape := range shapes {
		items[i] = i
		centers[i] = shape.BoundingBox().Center()
	}
	bvh.Root = bvh.build(items, centers)
	return bvh
}

// build recursively splits items at the median of the longest axis
func (bvh *BVH) build(items []int, centers []core.Vec3) *BVHNode {
	box := bvh.shapes[items[0]].BoundingBox()
	for _, i := range items[1:] {
		box = box.Union(bvh.shapes[i].BoundingBox())
	}

	if len(items) <= leafThreshold {
		return &BVHNode{BoundingBox: box, Items: items}
	}

	axis := box.LongestAxis()
	sort.Slice(items, func(a, b int) bool {
		return centers[items[a]].Component(axis) < centers[items[b]].Component(axis)
	})

	mid := len(items) / 2
	return &BVHNode{
		BoundingBox: box,
		Left:        bvh.build(items[:mid], centers),
		Right:       bvh.build(items[mid:], centers),
	}
}

// Hit returns the closest intersection in (tMin, tMax) and the index of the shape hit
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (Hit, int, bool) {
	if bvh.Root == nil {
		return Hit{}, -1, false
	}
	return bvh.hitNode(bvh.Root, ray, tMin, tMax)
}

func (bvh *BVH) hitNode(node *BVHNode, ray core.Ray, tMin, tMax float64) (Hit, int, bool) {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return Hit{}, -1, false
	}

	var closest Hit
	closestIndex := -1
	closestSoFar := tMax

	if node.Items != nil {
		for _, i := range node.Items {
			if hit, ok := bvh.shapes[i].Hit(ray, tMin, closestSoFar); ok {
				closest, closestIndex, closestSoFar = hit, i, hit.T
			}
		}
		return closest, closestIndex, closestIndex >= 0
	}

	for _, child := range [2]*BVHNode{node.Left, node.Right} {
		if child == nil {
			continue
		}
		if hit, i, ok := bvh.hitNode(child, ray, tMin, closestSoFar); ok {
			closest, closestIndex, closestSoFar = hit, i, hit.T
		}
	}
	return closest, closestIndex, closestIndex >= 0
}

// Depth returns the maximum depth of the tree
func (bvh *BVH) Depth() int {
	var depth func(node *BVHNode) int
	depth = func(node *BVHNode) int {
		if node == nil {
			return 0
		}
		return 1 + max(depth(node.Left), depth(node.Right))
	}
	return depth(bvh.Root)
}
