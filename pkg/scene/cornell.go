package scene

import (
	"github.com/df07/go-lighttransport/pkg/accel"
	"github.com/df07/go-lighttransport/pkg/camera"
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/geometry"
	"github.com/df07/go-lighttransport/pkg/lights"
	"github.com/df07/go-lighttransport/pkg/material"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

// NewCornellScene creates a classic Cornell box scene with quad walls and area lighting
func NewCornellScene() *Scene {
	s := New("cornell", &accel.BVH{})
	addCornellBox(s)

	// Tall block (white, rotated), shared through a proxy
	white := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73))
	block := geometry.NewCube(core.TRS(
		core.NewVec3(368, 165, 351),
		core.NewVec3(0, 1, 0), 15,
		core.NewVec3(165, 330, 165),
	))
	s.AddPrimitive(Primitive{Shape: block, Material: material.NewProxy(white)})

	// Glossy plastic sphere (diffuse base with a glossy coat)
	plastic := material.NewMixture(
		material.NewSolidColor(core.NewVec3(0.2, 0.3, 0.7)),
		core.NewVec3(0.04, 0.04, 0.04), 0.15, 0.15, 1,
	)
	s.AddPrimitive(Primitive{Shape: geometry.NewSphere(core.NewVec3(185, 82.5, 169), 82.5), Material: plastic})

	// Glass sphere resting on the floor near the front
	s.AddPrimitive(Primitive{Shape: geometry.NewSphere(core.NewVec3(400, 60, 120), 60), Material: material.NewGlass(1.5)})

	return s
}

// addCornellBox adds the walls, the ceiling light and the camera
func addCornellBox(s *Scene) {
	s.AddPrimitive(Primitive{Camera: camera.NewPinhole(camera.CameraConfig{
		Center: core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt: core.NewVec3(278, 278, 0),    // Look at the center of the box
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
	})})

	white := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15))

	walls := []struct {
		corner, u, v core.Vec3
		mat          material.Material
	}{
		// Floor - XZ plane at y=0
		{core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white},
		// Ceiling - XZ plane at y=boxSize
		{core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white},
		// Back wall - XY plane at z=boxSize
		{core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), white},
		// Left wall - YZ plane at x=0
		{core.NewVec3(0, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0), red},
		// Right wall - YZ plane at x=boxSize
		{core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), green},
	}
	for _, w := range walls {
		s.AddPrimitive(Primitive{Shape: geometry.NewQuad(w.corner, w.u, w.v), Material: w.mat})
	}

	// Ceiling light, slightly below the ceiling and facing down
	lightSize := 130.0
	lightOffset := (boxSize - lightSize) / 2.0
	quad := geometry.NewQuad(
		core.NewVec3(lightOffset, boxSize-1, lightOffset),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
	)
	s.AddPrimitive(Primitive{
		Shape:    quad,
		Material: material.NewDiffuse(core.NewVec3(0.78, 0.78, 0.78)),
		Light:    lights.NewAreaLight(quad, core.NewVec3(15, 15, 15)),
	})
}
