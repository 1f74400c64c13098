package medium

import (
	"fmt"
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// Volume is a scalar density field
type Volume interface {
	Density(p core.Vec3) float64
	MaxDensity() float64
	Bound() core.AABB
}

// ConstantVolume has the same density everywhere inside its bound
type ConstantVolume struct {
	bound   core.AABB
	density float64
}

// NewConstantVolume creates a constant volume
func NewConstantVolume(bound core.AABB, density float64) *ConstantVolume {
	return &ConstantVolume{bound: bound, density: density}
}

func (v *ConstantVolume) Density(core.Vec3) float64 { return v.density }
func (v *ConstantVolume) MaxDensity() float64       { return v.density }
func (v *ConstantVolume) Bound() core.AABB          { return v.bound }

// GridVolume is a voxel grid with trilinear interpolation of the cell-centered samples
type GridVolume struct {
	bound      core.AABB
	nx, ny, nz int
	data       []float64
	maxDensity float64
}

// NewGridVolume creates a grid volume; data is indexed as x + nx*(y + ny*z)
func NewGridVolume(bound core.AABB, nx, ny, nz int, data []float64) (*GridVolume, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, fmt.Errorf("medium: invalid grid resolution %dx%dx%d", nx, ny, nz)
	}
	if len(data) != nx*ny*nz {
		return nil, fmt.Errorf("medium: grid has %d values, expected %d", len(data), nx*ny*nz)
	}
	maxDensity := 0.0
	for _, d := range data {
		if d < 0 {
			return nil, fmt.Errorf("medium: negative density %f", d)
		}
		maxDensity = math.Max(maxDensity, d)
	}
	return &GridVolume{bound: bound, nx: nx, ny: ny, nz: nz, data: data, maxDensity: maxDensity}, nil
}

func (v *GridVolume) at(x, y, z int) float64 {
	x = clampInt(x, 0, v.nx-1)
	y = clampInt(y, 0, v.ny-1)
	z = clampInt(z, 0, v.nz-1)
	return v.data[x+v.nx*(y+v.ny*z)]
}

// Density returns the interpolated density, zero outside the bound
func (v *GridVolume) Density(p core.Vec3) float64 {
	size := v.bound.Size()
	local := p.Subtract(v.bound.Min)
	fx := local.X/size.X*float64(v.nx) - 0.5
	fy := local.Y/size.Y*float64(v.ny) - 0.5
	fz := local.Z/size.Z*float64(v.nz) - 0.5
	if fx < -0.5 || fy < -0.5 || fz < -0.5 || fx > float64(v.nx)-0.5 || fy > float64(v.ny)-0.5 || fz > float64(v.nz)-0.5 {
		return 0
	}

	x0, y0, z0 := int(math.Floor(fx)), int(math.Floor(fy)), int(math.Floor(fz))
	dx, dy, dz := fx-float64(x0), fy-float64(y0), fz-float64(z0)
	lerp := func(a, b, t float64) float64 { return a*(1-t) + b*t }

	c00 := lerp(v.at(x0, y0, z0), v.at(x0+1, y0, z0), dx)
	c10 := lerp(v.at(x0, y0+1, z0), v.at(x0+1, y0+1, z0), dx)
	c01 := lerp(v.at(x0, y0, z0+1), v.at(x0+1, y0, z0+1), dx)
	c11 := lerp(v.at(x0, y0+1, z0+1), v.at(x0+1, y0+1, z0+1), dx)
	return lerp(lerp(c00, c10, dy), lerp(c01, c11, dy), dz)
}

func (v *GridVolume) MaxDensity() float64 { return v.maxDensity }
func (v *GridVolume) Bound() core.AABB    { return v.bound }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
