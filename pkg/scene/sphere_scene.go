package scene

import (
	"github.com/df07/go-lighttransport/pkg/accel"
	"github.com/df07/go-lighttransport/pkg/camera"
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/geometry"
	"github.com/df07/go-lighttransport/pkg/lights"
	"github.com/df07/go-lighttransport/pkg/material"
)

// NewLitSphereScene creates a single diffuse unit sphere at the origin lit by a point light
func NewLitSphereScene() *Scene {
	s := New("sphere", &accel.BVH{})
	s.AddPrimitive(Primitive{Camera: camera.NewPinhole(camera.CameraConfig{
		Center: core.NewVec3(0, 0, 4),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40,
	})})
	s.AddPrimitive(Primitive{
		Shape:    geometry.NewSphere(core.NewVec3(0, 0, 0), 1),
		Material: material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.8)),
	})
	s.AddPrimitive(Primitive{Light: lights.NewPointLight(core.NewVec3(3, 3, 3), core.Splat(20))})
	return s
}
