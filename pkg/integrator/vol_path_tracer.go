package integrator

import (
	"context"
	"fmt"

	"github.com/df07/go-lighttransport/pkg/camera"
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/film"
	"github.com/df07/go-lighttransport/pkg/scene"
	"github.com/df07/go-lighttransport/pkg/scheduler"
)

// VolPathTracerConfig contains the volumetric path tracer parameters
type VolPathTracerConfig struct {
	MaxVerts int     // Maximum number of path vertices, including the camera
	RRProb   float64 // Lower bound of the Russian roulette termination probability
	Naive    bool    // Disable next event estimation
	Seed     int64   // Base seed for the per-worker samplers, entropy when negative
}

// DefaultVolPathTracerConfig returns the default volumetric path tracer parameters
func DefaultVolPathTracerConfig() VolPathTracerConfig {
	return VolPathTracerConfig{
		MaxVerts: 100,
		RRProb:   0.2,
		Seed:     42,
	}
}

// rrMinVerts is the number of vertices before Russian roulette starts
const rrMinVerts = 5

// VolPathTracer is a path tracer that also scatters in participating media.
// Samples always cover the whole image.
type VolPathTracer struct {
	config VolPathTracerConfig
}

// NewVolPathTracer creates a volumetric path tracer
func NewVolPathTracer(config VolPathTracerConfig) (*VolPathTracer, error) {
	if config.MaxVerts < 2 {
		return nil, fmt.Errorf("%w: max verts %d", ErrInvalidConfig, config.MaxVerts)
	}
	if config.RRProb < 0 || config.RRProb >= 1 {
		return nil, fmt.Errorf("%w: rr prob %g", ErrInvalidConfig, config.RRProb)
	}
	return &VolPathTracer{config: config}, nil
}

// Config returns the volumetric path tracer parameters
func (vpt *VolPathTracer) Config() VolPathTracerConfig {
	return vpt.config
}

// Render traces one path per scheduled sample and normalizes the film
func (vpt *VolPathTracer) Render(ctx context.Context, s *scene.Scene, f film.Film, sched scheduler.Scheduler) (int64, error) {
	if err := s.RequireRenderable(); err != nil {
		return 0, err
	}
	f.Clear()
	samplers := scheduler.NewSamplers(sched.NumWorkers(), vpt.config.Seed)

	logger.Debugf("volumetric path tracer: naive=%v max verts=%d", vpt.config.Naive, vpt.config.MaxVerts)

	processed, err := sched.Run(ctx, func(_, _ int64, threadID int) {
		vpt.samplePath(samplers.Get(threadID), s, f)
	})
	rescale(f, processed)
	return processed, err
}

// samplePath traces one path from the camera, sampling each vertex in two stages:
// the component first, then the direction.
func (vpt *VolPathTracer) samplePath(rng core.Sampler, s *scene.Scene, f film.Film) {
	aspect := f.Aspect()
	ps, ok := s.SamplePosition(rng, scene.NewCameraTerminator(camera.FullWindow, aspect))
	if !ok {
		return
	}
	sp := ps.SP
	cs := s.SampleComponent(rng, sp, core.Vec3{})
	comp := cs.Comp
	throughput := ps.Weight.MultiplyVec(cs.Weight)
	var wi core.Vec3
	var rp core.Vec2

	for numVerts := 1; numVerts < vpt.config.MaxVerts; numVerts++ {
		nee := !vpt.config.Naive && !s.IsSpecular(sp, comp)
		if nee {
			vpt.directLight(rng, s, f, sp, comp, wi, throughput, rp, numVerts == 1)
		}

		ds, ok := s.SampleDirection(rng, sp, comp, wi)
		if !ok {
			return
		}
		if numVerts == 1 {
			if rp, ok = s.RasterPosition(ds.Wo, aspect); !ok {
				return
			}
		}

		dist, ok := s.SampleDistance(rng, sp, ds.Wo)
		if !ok {
			return
		}
		throughput = throughput.MultiplyVec(ds.Weight).MultiplyVec(dist.Weight)

		if !nee && s.IsLight(dist.SP) {
			le := s.EvalContrbEndpoint(dist.SP, ds.Wo.Negate())
			f.Splat(rp, throughput.MultiplyVec(le))
		}
		if dist.SP.Geom.Infinite || throughput.IsZero() {
			return
		}

		if numVerts > rrMinVerts {
			c, survived := russianRoulette(rng.Get1D(), vpt.config.RRProb, throughput)
			if !survived {
				return
			}
			throughput = throughput.Multiply(c)
		}

		wi = ds.Wo.Negate()
		sp = dist.SP
		cs = s.SampleComponent(rng, sp, wi)
		comp = cs.Comp
		throughput = throughput.MultiplyVec(cs.Weight)
	}
}

// directLight connects sp to a sampled light through the medium
func (vpt *VolPathTracer) directLight(rng core.Sampler, s *scene.Scene, f film.Film, sp scene.SceneInteraction, comp int, wi, throughput core.Vec3, rp core.Vec2, fromCamera bool) {
	sL, ok := s.SampleDirectLight(rng, sp)
	if !ok {
		return
	}
	wo := sL.Wo.Negate()
	fs := s.EvalContrb(sp, comp, wi, wo)
	if fs.IsZero() {
		return
	}
	tr := s.EvalTransmittance(rng, sp, sL.SP)
	if tr.IsZero() {
		return
	}
	if fromCamera {
		if rp, ok = s.RasterPosition(wo, f.Aspect()); !ok {
			return
		}
	}
	f.Splat(rp, throughput.MultiplyVec(tr).MultiplyVec(fs).MultiplyVec(sL.Weight))
}
