package material

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns color at given UV coordinates and 3D point
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides a uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(core.Vec2, core.Vec3) core.Vec3 {
	return s.Color
}

// Checkerboard alternates two colors on a UV grid
type Checkerboard struct {
	Color1, Color2 core.Vec3
	Scale          float64 // Number of checks per unit of UV
}

// NewCheckerboard creates a checkerboard color source
func NewCheckerboard(color1, color2 core.Vec3, scale float64) *Checkerboard {
	return &Checkerboard{Color1: color1, Color2: color2, Scale: scale}
}

// Evaluate returns the color of the check containing uv
func (c *Checkerboard) Evaluate(uv core.Vec2, _ core.Vec3) core.Vec3 {
	x := int(math.Floor(uv.X * c.Scale))
	y := int(math.Floor(uv.Y * c.Scale))
	if (x+y)%2 == 0 {
		return c.Color1
	}
	return c.Color2
}
