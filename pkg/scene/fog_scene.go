package scene

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/accel"
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/geometry"
	"github.com/df07/go-lighttransport/pkg/material"
	"github.com/df07/go-lighttransport/pkg/medium"
	"github.com/df07/go-lighttransport/pkg/phase"
)

// NewFoggyCornellScene creates a Cornell box filled with homogeneous forward-scattering fog
func NewFoggyCornellScene() *Scene {
	s := New("fog", &accel.BVH{})
	addCornellBox(s)
	s.AddPrimitive(Primitive{
		Shape:    geometry.NewSphere(core.NewVec3(278, 120, 278), 120),
		Material: material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73)),
	})
	s.AddPrimitive(Primitive{Medium: medium.NewHomogeneous(0.0015, core.Splat(0.9), phase.NewHenyeyGreenstein(0.3))})
	return s
}

// NewSmokeCornellScene creates a Cornell box with a puff of heterogeneous smoke in a
// thin haze
func NewSmokeCornellScene() *Scene {
	s := New("smoke", &accel.BVH{})
	addCornellBox(s)

	bound := core.NewAABB(core.NewVec3(128, 60, 128), core.NewVec3(428, 360, 428))
	s.AddPrimitive(Primitive{Medium: medium.NewHeterogeneous(smokePuff(bound, 24), 0.02, core.Splat(0.8), phase.NewIsotropic())})
	s.AddPrimitive(Primitive{Medium: medium.NewHomogeneous(0.0005, core.Splat(0.9), phase.NewIsotropic())})
	return s
}

// smokePuff builds a grid with a smooth spherical falloff
func smokePuff(bound core.AABB, res int) medium.Volume {
	data := make([]float64, res*res*res)
	for z := 0; z < res; z++ {
		for y := 0; y < res; y++ {
			for x := 0; x < res; x++ {
				// Cell center in [-1,1]^3
				px := (float64(x)+0.5)/float64(res)*2 - 1
				py := (float64(y)+0.5)/float64(res)*2 - 1
				pz := (float64(z)+0.5)/float64(res)*2 - 1
				r := math.Sqrt(px*px + py*py + pz*pz)
				data[x+res*(y+res*z)] = math.Max(0, 1-r) * (0.75 + 0.25*math.Sin(6*px)*math.Cos(5*pz))
			}
		}
	}
	volume, err := medium.NewGridVolume(bound, res, res, res, data)
	if err != nil {
		// Resolution and data are consistent by construction
		panic(err)
	}
	return volume
}
