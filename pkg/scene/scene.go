// Package scene implements the query interface between integrators and the scene contents.
package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-lighttransport/pkg/accel"
	"github.com/df07/go-lighttransport/pkg/camera"
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/geometry"
	"github.com/df07/go-lighttransport/pkg/lights"
	"github.com/df07/go-lighttransport/pkg/log"
	"github.com/df07/go-lighttransport/pkg/material"
	"github.com/df07/go-lighttransport/pkg/medium"
)

var logger = log.New("scene")

// Primitive bundles the capabilities of one scene element.
// Any field may be nil; a primitive without a shape is never hit by rays.
type Primitive struct {
	Shape    geometry.Shape
	Material material.Material
	Light    lights.Light
	Camera   camera.Camera
	Medium   medium.Medium
}

// Scene holds primitives and the structures derived from them by Build.
// After Build a scene is read-only and safe for concurrent queries.
type Scene struct {
	Name string

	primitives []Primitive
	accel      accel.Accel

	shapePrims  []int // accelerator shape index -> primitive index
	lightPrims  []int
	cameraPrim  int
	envPrim     int
	mediumPrims []int
	worldCenter core.Vec3
	worldRadius float64
	built       bool
}

// New creates an empty scene intersected with the given accelerator
func New(name string, a accel.Accel) *Scene {
	return &Scene{Name: name, accel: a, cameraPrim: -1, envPrim: -1}
}

// SetAccel replaces the accelerator; the scene must be built again
func (s *Scene) SetAccel(a accel.Accel) {
	s.accel = a
	s.built = false
}

// AddPrimitive appends a primitive and returns its index
func (s *Scene) AddPrimitive(p Primitive) int {
	s.primitives = append(s.primitives, p)
	s.built = false
	return len(s.primitives) - 1
}

// Primitive returns the primitive at index i
func (s *Scene) Primitive(i int) Primitive {
	return s.primitives[i]
}

// NumPrimitives returns the number of primitives
func (s *Scene) NumPrimitives() int {
	return len(s.primitives)
}

// NumLights returns the number of light primitives
func (s *Scene) NumLights() int {
	return len(s.lightPrims)
}

// Bounds returns the bounding sphere of the finite geometry
func (s *Scene) Bounds() (core.Vec3, float64) {
	return s.worldCenter, s.worldRadius
}

// Build constructs the accelerator and the light tables. Calling it again is a no-op.
func (s *Scene) Build() error {
	if s.built {
		return nil
	}
	if err := s.RequirePrimitive(); err != nil {
		return err
	}
	if err := s.RequireAccel(); err != nil {
		return err
	}

	s.shapePrims = s.shapePrims[:0]
	s.lightPrims = s.lightPrims[:0]
	s.mediumPrims = s.mediumPrims[:0]
	s.cameraPrim, s.envPrim = -1, -1

	var shapes []geometry.Shape
	var bounds core.AABB
	for i, p := range s.primitives {
		if p.Shape != nil {
			bbox := p.Shape.BoundingBox()
			if len(shapes) == 0 {
				bounds = bbox
			} else {
				bounds = bounds.Union(bbox)
			}
			shapes = append(shapes, p.Shape)
			s.shapePrims = append(s.shapePrims, i)
		}
		if p.Light != nil {
			s.lightPrims = append(s.lightPrims, i)
			if p.Light.IsEnvironment() {
				if s.envPrim >= 0 {
					return fmt.Errorf("scene: primitives %d and %d are both environment lights", s.envPrim, i)
				}
				s.envPrim = i
			}
		}
		if p.Camera != nil {
			if s.cameraPrim >= 0 {
				return fmt.Errorf("scene: primitives %d and %d are both cameras", s.cameraPrim, i)
			}
			s.cameraPrim = i
		}
		if p.Medium != nil {
			s.mediumPrims = append(s.mediumPrims, i)
		}
	}

	if err := s.accel.Build(shapes); err != nil {
		return fmt.Errorf("scene: failed to build accelerator: %w", err)
	}

	// Bounding sphere of the finite geometry, used by infinite lights
	s.worldCenter, s.worldRadius = core.Vec3{}, 0
	if len(shapes) > 0 {
		s.worldCenter = bounds.Center()
		s.worldRadius = bounds.Max.Subtract(s.worldCenter).Length()
	}
	for _, i := range s.lightPrims {
		if pre, ok := s.primitives[i].Light.(lights.Preprocessor); ok {
			if err := pre.Preprocess(s.worldCenter, s.worldRadius); err != nil {
				return fmt.Errorf("scene: failed to preprocess light %d: %w", i, err)
			}
		}
	}

	s.built = true
	logger.Infof("Built scene %q: %d primitives, %d shapes, %d lights, camera=%t, environment=%t, %d media",
		s.Name, len(s.primitives), len(shapes), len(s.lightPrims), s.cameraPrim >= 0, s.envPrim >= 0, len(s.mediumPrims))
	return nil
}

// RequirePrimitive fails when the scene is empty
func (s *Scene) RequirePrimitive() error {
	if len(s.primitives) == 0 {
		return ErrMissingPrimitive
	}
	return nil
}

// RequireCamera fails when the built scene has no camera
func (s *Scene) RequireCamera() error {
	if !s.built {
		return ErrNotBuilt
	}
	if s.cameraPrim < 0 {
		return ErrMissingCamera
	}
	return nil
}

// RequireLight fails when the built scene has no light
func (s *Scene) RequireLight() error {
	if !s.built {
		return ErrNotBuilt
	}
	if len(s.lightPrims) == 0 {
		return ErrMissingLight
	}
	return nil
}

// RequireAccel fails when no accelerator is set
func (s *Scene) RequireAccel() error {
	if s.accel == nil {
		return ErrMissingAccel
	}
	return nil
}

// RequireRenderable checks every precondition of rendering with a camera path integrator
func (s *Scene) RequireRenderable() error {
	for _, check := range []func() error{s.RequirePrimitive, s.RequireAccel, s.RequireCamera, s.RequireLight} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// AsType re-interprets sp as an endpoint of type t on the same primitive
func (s *Scene) AsType(sp SceneInteraction, t InteractionType) (SceneInteraction, error) {
	if sp.Primitive < 0 || sp.Primitive >= len(s.primitives) {
		return SceneInteraction{}, fmt.Errorf("scene: interaction has no primitive")
	}
	p := s.primitives[sp.Primitive]
	switch t {
	case LightEndpoint, EnvironmentEndpoint:
		if p.Light == nil {
			return SceneInteraction{}, fmt.Errorf("primitive %d: %w", sp.Primitive, ErrNotLight)
		}
		if p.Light.IsEnvironment() {
			return NewEnvironmentEndpoint(sp.Primitive, sp.Geom), nil
		}
		return NewLightEndpoint(sp.Primitive, sp.Geom), nil
	case CameraEndpoint:
		if p.Camera == nil {
			return SceneInteraction{}, fmt.Errorf("primitive %d: %w", sp.Primitive, ErrNotCamera)
		}
		return NewCameraEndpoint(sp.Primitive, sp.Geom, sp.Window, sp.Aspect), nil
	default:
		return SceneInteraction{}, fmt.Errorf("scene: cannot convert to %s interaction", t)
	}
}

// Intersect returns the closest interaction along ray. When nothing is hit and the
// scene has an environment light, the environment endpoint is returned.
func (s *Scene) Intersect(ray core.Ray, tMin, tMax float64) (SceneInteraction, bool) {
	hit, ok := s.accel.Intersect(ray, tMin, tMax)
	if !ok {
		if s.envPrim >= 0 {
			return NewEnvironmentEndpoint(s.envPrim, core.MakeInfinite(ray.Direction.Negate())), true
		}
		return SceneInteraction{}, false
	}
	return NewSurfaceInteraction(s.shapePrims[hit.Index], hit.Geom), true
}

// segment returns the ray from the finite point of the pair towards the other one,
// and the distance to it (core.Inf for infinite targets)
func segment(sp1, sp2 SceneInteraction) (core.Ray, float64, bool) {
	g1, g2 := sp1.Geom, sp2.Geom
	if g1.Infinite && g2.Infinite {
		return core.Ray{}, 0, false
	}
	if g1.Infinite {
		g1, g2 = g2, g1
	}
	if g2.Infinite {
		return core.NewRay(g1.P, g2.Wo.Negate()), core.Inf, true
	}
	d := g2.P.Subtract(g1.P)
	dist := d.Length()
	if dist == 0 || math.IsNaN(dist) {
		return core.Ray{}, 0, false
	}
	return core.NewRay(g1.P, d.Divide(dist)), dist, true
}

// Visible reports whether nothing occludes the segment between sp1 and sp2
func (s *Scene) Visible(sp1, sp2 SceneInteraction) bool {
	ray, dist, ok := segment(sp1, sp2)
	if !ok {
		return false
	}
	_, hit := s.accel.Intersect(ray, core.Eps, dist*(1-core.Eps))
	return !hit
}

// EvalTransmittance returns the transmittance between sp1 and sp2, zero when occluded.
// Media overlap freely, so the transmittance is the product over all of them.
func (s *Scene) EvalTransmittance(rng core.Sampler, sp1, sp2 SceneInteraction) core.Vec3 {
	if !s.Visible(sp1, sp2) {
		return core.Vec3{}
	}
	tr := core.Splat(1)
	if len(s.mediumPrims) == 0 {
		return tr
	}
	ray, dist, _ := segment(sp1, sp2)
	for _, i := range s.mediumPrims {
		tr = tr.MultiplyVec(s.primitives[i].Medium.EvalTransmittance(rng, ray, 0, dist))
		if tr.IsZero() {
			break
		}
	}
	return tr
}

// IsLight reports whether the primitive of sp emits light
func (s *Scene) IsLight(sp SceneInteraction) bool {
	return sp.Primitive >= 0 && s.primitives[sp.Primitive].Light != nil
}

// IsCamera reports whether the primitive of sp is the camera
func (s *Scene) IsCamera(sp SceneInteraction) bool {
	return sp.Primitive >= 0 && s.primitives[sp.Primitive].Camera != nil
}

// IsSpecular reports whether component comp at sp is a Dirac distribution
func (s *Scene) IsSpecular(sp SceneInteraction, comp int) bool {
	switch sp.Type {
	case SurfaceInteraction:
		if m := s.primitives[sp.Primitive].Material; m != nil {
			return m.IsSpecular(sp.Geom, comp)
		}
	case LightEndpoint, EnvironmentEndpoint:
		if sp.Primitive >= 0 {
			return s.primitives[sp.Primitive].Light.IsSpecular()
		}
	}
	return false
}

// Reflectance returns the reflectance of the material at sp, if it has one
func (s *Scene) Reflectance(sp SceneInteraction, comp int) (core.Vec3, bool) {
	if sp.Type != SurfaceInteraction {
		return core.Vec3{}, false
	}
	m := s.primitives[sp.Primitive].Material
	if m == nil {
		return core.Vec3{}, false
	}
	return m.Reflectance(sp.Geom, comp)
}

func (s *Scene) camera() camera.Camera {
	return s.primitives[s.cameraPrim].Camera
}

// RasterPosition returns the raster position of a direction leaving the camera
func (s *Scene) RasterPosition(wo core.Vec3, aspect float64) (core.Vec2, bool) {
	return s.camera().RasterPosition(wo, aspect)
}

// PrimaryRay returns the camera ray through raster position rp
func (s *Scene) PrimaryRay(rp core.Vec2, aspect float64) core.Ray {
	return s.camera().PrimaryRay(rp, aspect)
}
