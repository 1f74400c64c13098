package scene

import (
	"github.com/df07/go-lighttransport/pkg/camera"
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/material"
	"github.com/df07/go-lighttransport/pkg/medium"
)

// selectLight picks a light primitive uniformly. Returns the primitive index and 1/pmf.
func (s *Scene) selectLight(u float64) (int, float64, bool) {
	n := len(s.lightPrims)
	if n == 0 {
		return -1, 0, false
	}
	i := min(int(u*float64(n)), n-1)
	return s.lightPrims[i], float64(n), true
}

// lightEndpoint wraps a sampled light position as the right interaction variant
func (s *Scene) lightEndpoint(prim int, geom core.PointGeometry) SceneInteraction {
	if s.primitives[prim].Light.IsEnvironment() {
		return NewEnvironmentEndpoint(prim, geom)
	}
	return NewLightEndpoint(prim, geom)
}

// SampleRay samples the next interaction point and outgoing direction from sp.
// For terminators wi is ignored and a primary ray is sampled from the endpoint.
func (s *Scene) SampleRay(rng core.Sampler, sp SceneInteraction, wi core.Vec3) (RaySample, bool) {
	var rs RaySample
	switch sp.Terminator {
	case CameraTerminator:
		cam := s.camera()
		ps := cam.SamplePosition()
		ds, ok := cam.SampleDirection(rng, sp.Window, sp.Aspect)
		if !ok {
			return RaySample{}, false
		}
		rs = RaySample{
			SP:     NewCameraEndpoint(s.cameraPrim, ps.Geom, sp.Window, sp.Aspect),
			Comp:   ds.Comp,
			Wo:     ds.Wo,
			Weight: ps.Weight.MultiplyVec(ds.Weight),
		}
	case LightTerminator:
		prim, invPmf, ok := s.selectLight(rng.Get1D())
		if !ok {
			return RaySample{}, false
		}
		es, ok := s.primitives[prim].Light.SampleRay(rng)
		if !ok {
			return RaySample{}, false
		}
		rs = RaySample{SP: s.lightEndpoint(prim, es.Geom), Comp: es.Comp, Wo: es.Wo, Weight: es.Weight.Multiply(invPmf)}
	default:
		ds, ok := s.SampleDirection(rng, sp, core.CompDontCare, wi)
		if !ok {
			return RaySample{}, false
		}
		rs = RaySample{SP: sp, Comp: ds.Comp, Wo: ds.Wo, Weight: ds.Weight}
	}
	if rs.Weight.IsZero() {
		return RaySample{}, false
	}
	return rs, true
}

// SampleDirection samples an outgoing direction from a sampled interaction.
// Densities are in projected solid angle for regular points and solid angle for
// degenerated points.
func (s *Scene) SampleDirection(rng core.Sampler, sp SceneInteraction, comp int, wi core.Vec3) (core.DirectionSample, bool) {
	if sp.Primitive < 0 {
		return core.DirectionSample{}, false
	}
	p := s.primitives[sp.Primitive]
	var ds core.DirectionSample
	var ok bool
	switch sp.Type {
	case SurfaceInteraction:
		if p.Material == nil {
			return core.DirectionSample{}, false
		}
		ds, ok = p.Material.SampleDirection(rng, sp.Geom, wi, comp)
	case MediumInteraction:
		ds, ok = p.Medium.Phase().SampleDirection(rng.Get2D(), wi)
	case CameraEndpoint:
		ds, ok = p.Camera.SampleDirection(rng, sp.Window, sp.Aspect)
	case LightEndpoint:
		ds, ok = p.Light.SampleDirection(rng, sp.Geom)
	default:
		return core.DirectionSample{}, false
	}
	if !ok || ds.Weight.IsZero() || !ds.Weight.IsFinite() {
		return core.DirectionSample{}, false
	}
	return ds, true
}

// PdfDirection evaluates the density of SampleDirection
func (s *Scene) PdfDirection(sp SceneInteraction, comp int, wi, wo core.Vec3) float64 {
	if sp.Primitive < 0 {
		return 0
	}
	p := s.primitives[sp.Primitive]
	switch sp.Type {
	case SurfaceInteraction:
		if p.Material == nil {
			return 0
		}
		return p.Material.PdfDirection(sp.Geom, comp, wi, wo, false)
	case MediumInteraction:
		return p.Medium.Phase().PdfDirection(wi, wo)
	case CameraEndpoint:
		return p.Camera.PdfDirection(wo, sp.Aspect)
	case LightEndpoint:
		return p.Light.PdfDirection(sp.Geom, wo)
	}
	return 0
}

// SamplePosition samples the position of a terminator's endpoint
func (s *Scene) SamplePosition(rng core.Sampler, sp SceneInteraction) (PositionSample, bool) {
	switch sp.Terminator {
	case CameraTerminator:
		ps := s.camera().SamplePosition()
		return PositionSample{SP: NewCameraEndpoint(s.cameraPrim, ps.Geom, sp.Window, sp.Aspect), Weight: ps.Weight}, true
	case LightTerminator:
		prim, invPmf, ok := s.selectLight(rng.Get1D())
		if !ok {
			return PositionSample{}, false
		}
		ps, ok := s.primitives[prim].Light.SamplePosition(rng)
		if !ok {
			return PositionSample{}, false
		}
		return PositionSample{SP: s.lightEndpoint(prim, ps.Geom), Weight: ps.Weight.Multiply(invPmf)}, true
	}
	return PositionSample{}, false
}

// SampleComponent selects the component used at sp
func (s *Scene) SampleComponent(rng core.Sampler, sp SceneInteraction, wi core.Vec3) core.ComponentSample {
	if sp.Type == SurfaceInteraction {
		if m := s.primitives[sp.Primitive].Material; m != nil {
			return material.SampleComponent(m, rng.Get1D(), sp.Geom, wi)
		}
	}
	return core.ComponentSample{Comp: core.CompDontCare, Weight: core.Splat(1)}
}

// SampleDirectLight samples a light uniformly and a point on it as seen from sp.
// Wo points from the light towards sp.
func (s *Scene) SampleDirectLight(rng core.Sampler, sp SceneInteraction) (RaySample, bool) {
	prim, invPmf, ok := s.selectLight(rng.Get1D())
	if !ok {
		return RaySample{}, false
	}
	es, ok := s.primitives[prim].Light.SampleDirect(rng, sp.Geom)
	if !ok || es.Weight.IsZero() {
		return RaySample{}, false
	}
	return RaySample{SP: s.lightEndpoint(prim, es.Geom), Comp: es.Comp, Wo: es.Wo, Weight: es.Weight.Multiply(invPmf)}, true
}

// SampleDirectCamera connects sp to the camera. Wo points from the camera towards sp.
func (s *Scene) SampleDirectCamera(sp SceneInteraction, window camera.Window, aspect float64) (RaySample, bool) {
	if s.cameraPrim < 0 {
		return RaySample{}, false
	}
	es, ok := s.camera().SampleDirect(sp.Geom, aspect)
	if !ok || es.Weight.IsZero() {
		return RaySample{}, false
	}
	return RaySample{SP: NewCameraEndpoint(s.cameraPrim, es.Geom, window, aspect), Comp: es.Comp, Wo: es.Wo, Weight: es.Weight}, true
}

// PdfDirect evaluates the density of sampling spE from sp with SampleDirectLight or
// SampleDirectCamera. wo points from spE towards sp.
func (s *Scene) PdfDirect(sp, spE SceneInteraction, _ int, wo core.Vec3) float64 {
	if spE.Primitive < 0 {
		return 0
	}
	p := s.primitives[spE.Primitive]
	if spE.Type == CameraEndpoint {
		if p.Camera == nil {
			return 0
		}
		return p.Camera.PdfDirect(sp.Geom, spE.Geom, wo)
	}
	if p.Light == nil {
		return 0
	}
	return p.Light.PdfDirect(sp.Geom, spE.Geom, wo) / float64(len(s.lightPrims))
}

// SampleDistance samples the next interaction along wo from sp: either a scattering
// event in one of the scene media or the next surface. Every medium samples its own
// free flight and the nearest event wins.
func (s *Scene) SampleDistance(rng core.Sampler, sp SceneInteraction, wo core.Vec3) (DistanceSample, bool) {
	ray := core.NewRay(sp.Geom.P, wo)
	hit, ok := s.Intersect(ray, core.Eps, core.Inf)
	dist := core.Inf
	if ok && !hit.Geom.Infinite {
		dist = hit.Geom.P.Subtract(sp.Geom.P).Length()
	}

	weight := core.Splat(1)
	nearest, nearestPrim := dist, -1
	var event medium.DistanceSample
	for _, i := range s.mediumPrims {
		ds, dok := s.primitives[i].Medium.SampleDistance(rng, ray, 0, dist)
		if !dok {
			return DistanceSample{}, false
		}
		if !ds.Medium {
			weight = weight.MultiplyVec(ds.Weight)
			continue
		}
		if t := ds.P.Subtract(ray.Origin).Length(); t < nearest {
			nearest, nearestPrim, event = t, i, ds
		}
	}
	if nearestPrim >= 0 {
		return DistanceSample{SP: NewMediumInteraction(nearestPrim, core.MakeDegenerated(event.P)), Weight: event.Weight}, true
	}
	if !ok {
		return DistanceSample{}, false
	}
	return DistanceSample{SP: hit, Weight: weight}, true
}

// EvalContrb evaluates the BSDF, phase function, importance or luminance at sp
// depending on its type
func (s *Scene) EvalContrb(sp SceneInteraction, comp int, wi, wo core.Vec3) core.Vec3 {
	if sp.Primitive < 0 {
		return core.Vec3{}
	}
	p := s.primitives[sp.Primitive]
	switch sp.Type {
	case SurfaceInteraction:
		if p.Material == nil {
			return core.Vec3{}
		}
		return p.Material.Eval(sp.Geom, comp, wi, wo, false)
	case MediumInteraction:
		return p.Medium.Phase().Eval(wi, wo)
	case CameraEndpoint:
		return p.Camera.Eval(wo, sp.Aspect)
	case LightEndpoint, EnvironmentEndpoint:
		return p.Light.Eval(sp.Geom, wo, false)
	}
	return core.Vec3{}
}

// EvalContrbEndpoint evaluates luminance or importance at sp even when sp was
// obtained as an ordinary surface hit
func (s *Scene) EvalContrbEndpoint(sp SceneInteraction, wo core.Vec3) core.Vec3 {
	if sp.Primitive < 0 {
		return core.Vec3{}
	}
	p := s.primitives[sp.Primitive]
	if p.Light != nil {
		return p.Light.Eval(sp.Geom, wo, false)
	}
	if p.Camera != nil {
		return p.Camera.Eval(wo, sp.Aspect)
	}
	return core.Vec3{}
}
