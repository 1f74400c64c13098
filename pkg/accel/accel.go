// Package accel provides acceleration structures for ray-scene intersection.
package accel

import (
	"fmt"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/geometry"
)

// Hit is an intersection found by an accelerator
type Hit struct {
	geometry.Hit
	Index int // Index of the shape in the list passed to Build
}

// Accel finds the closest intersection of a ray with a set of shapes.
// Build must complete before concurrent Intersect calls.
type Accel interface {
	Build(shapes []geometry.Shape) error
	Intersect(ray core.Ray, tMin, tMax float64) (Hit, bool)
	Built() bool
}

// New creates an accelerator by name: "bvh" or "naive"
func New(name string) (Accel, error) {
	switch name {
	case "", "bvh":
		return &BVH{}, nil
	case "naive":
		return &Naive{}, nil
	default:
		return nil, fmt.Errorf("accel: unknown accelerator %q", name)
	}
}

// BVH is an accelerator backed by a median-split bounding volume hierarchy
type BVH struct {
	bvh *geometry.BVH
}

// Build constructs the hierarchy
func (b *BVH) Build(shapes []geometry.Shape) error {
	b.bvh = geometry.NewBVH(shapes)
	return nil
}

// Intersect returns the closest hit in (tMin, tMax)
func (b *BVH) Intersect(ray core.Ray, tMin, tMax float64) (Hit, bool) {
	if b.bvh == nil {
		return Hit{}, false
	}
	hit, index, ok := b.bvh.Hit(ray, tMin, tMax)
	return Hit{Hit: hit, Index: index}, ok
}

// Built reports whether Build was called
func (b *BVH) Built() bool {
	return b.bvh != nil
}

// Naive tests every shape; used as a reference for the BVH
type Naive struct {
	shapes []geometry.Shape
	built  bool
}

// Build stores the shape list
func (n *Naive) Build(shapes []geometry.Shape) error {
	n.shapes = shapes
	n.built = true
	return nil
}

// Intersect returns the closest hit in (tMin, tMax)
func (n *Naive) Intersect(ray core.Ray, tMin, tMax float64) (Hit, bool) {
	var closest Hit
	found := false
	for i, s := range n.shapes {
		if hit, ok := s.Hit(ray, tMin, tMax); ok {
			tMax = hit.T
			closest = Hit{Hit: hit, Index: i}
			found = true
		}
	}
	return closest, found
}

// Built reports whether Build was called
func (n *Naive) Built() bool {
	return n.built
}
