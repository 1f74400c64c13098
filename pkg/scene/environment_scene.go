package scene

import (
	"github.com/df07/go-lighttransport/pkg/accel"
	"github.com/df07/go-lighttransport/pkg/camera"
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/geometry"
	"github.com/df07/go-lighttransport/pkg/lights"
	"github.com/df07/go-lighttransport/pkg/material"
)

// NewEnvironmentScene creates spheres on a checkerboard ground under a constant sky and a sun
func NewEnvironmentScene() *Scene {
	s := New("environment", &accel.BVH{})
	s.AddPrimitive(Primitive{Camera: camera.NewPinhole(camera.CameraConfig{
		Center: core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt: core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
	})})

	checker := material.NewCheckerboard(core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.2, 0.2, 0.2), 40)
	ground := geometry.NewQuad(core.NewVec3(-10, 0, -10), core.NewVec3(20, 0, 0), core.NewVec3(0, 0, 20))
	s.AddPrimitive(Primitive{Shape: ground, Material: material.NewDiffuseTextured(checker)})

	gold := material.NewGlossy(core.NewVec3(0.8, 0.6, 0.2), 0.3, 0.1)
	s.AddPrimitive(Primitive{Shape: geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5), Material: material.NewMirror()})
	s.AddPrimitive(Primitive{Shape: geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5), Material: material.NewDiffuse(core.NewVec3(0.65, 0.25, 0.2))})
	s.AddPrimitive(Primitive{Shape: geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5), Material: gold})

	// A leaf-like cutout: a quad with half coverage in front of the spheres
	cutout := material.NewMixture(material.NewSolidColor(core.NewVec3(0.1, 0.6, 0.1)), core.Vec3{}, 0.5, 0.5, 0.5)
	s.AddPrimitive(Primitive{
		Shape:    geometry.NewQuad(core.NewVec3(0.3, 0, -0.3), core.NewVec3(0.4, 0, 0), core.NewVec3(0, 0.6, 0)),
		Material: cutout,
	})

	s.AddPrimitive(Primitive{Light: lights.NewEnvConstLight(core.NewVec3(0.5, 0.7, 1.0))})
	s.AddPrimitive(Primitive{Light: lights.NewDirectionalLight(core.NewVec3(-1, -2, -1), core.Splat(3))})
	return s
}
