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

// PathTracerConfig contains the path tracer parameters
type PathTracerConfig struct {
	MaxLength  int        // Maximum number of path edges
	Mode       Mode       // How emission is gathered
	SampleMode SampleMode // Per-pixel or whole-image sampling

	// Russian roulette starts once a path is longer than this.
	// Set it to MaxLength or more to disable termination.
	RussianRouletteMinLength int

	Seed int64 // Base seed for the per-worker samplers, entropy when negative
}

// DefaultPathTracerConfig returns the default path tracer parameters
func DefaultPathTracerConfig() PathTracerConfig {
	return PathTracerConfig{
		MaxLength:                20,
		Mode:                     ModeMIS,
		SampleMode:               SamplePixel,
		RussianRouletteMinLength: 3,
		Seed:                     42,
	}
}

// rrMinProb is the lower bound of the termination probability
const rrMinProb = 0.2

// PathTracer is a unidirectional path tracer from the camera
type PathTracer struct {
	config PathTracerConfig
}

// NewPathTracer creates a path tracer
func NewPathTracer(config PathTracerConfig) (*PathTracer, error) {
	if config.MaxLength < 1 {
		return nil, fmt.Errorf("%w: max length %d", ErrInvalidConfig, config.MaxLength)
	}
	if config.Mode < ModeNaive || config.Mode > ModeMIS {
		return nil, fmt.Errorf("%w: %v", ErrUnknownMode, config.Mode)
	}
	if config.SampleMode != SamplePixel && config.SampleMode != SampleImage {
		return nil, fmt.Errorf("%w: %v", ErrUnknownSampleMode, config.SampleMode)
	}
	return &PathTracer{config: config}, nil
}

// Config returns the path tracer parameters
func (pt *PathTracer) Config() PathTracerConfig {
	return pt.config
}

// Render traces one path per scheduled sample and normalizes the film.
// In pixel mode the scheduler's work index selects the pixel; in image mode it is ignored.
func (pt *PathTracer) Render(ctx context.Context, s *scene.Scene, f film.Film, sched scheduler.Scheduler) (int64, error) {
	if err := s.RequireRenderable(); err != nil {
		return 0, err
	}
	f.Clear()
	samplers := scheduler.NewSamplers(sched.NumWorkers(), pt.config.Seed)
	w, h := f.Size()
	numPixels := int64(w * h)

	logger.Debugf("path tracer: mode=%v sample=%v max length=%d", pt.config.Mode, pt.config.SampleMode, pt.config.MaxLength)

	processed, err := sched.Run(ctx, func(index, _ int64, threadID int) {
		window := camera.FullWindow
		if pt.config.SampleMode == SamplePixel {
			pixel := index % numPixels
			x, y := pixel%int64(w), pixel/int64(w)
			window = camera.Window{
				X: float64(x) / float64(w),
				Y: float64(y) / float64(h),
				W: 1 / float64(w),
				H: 1 / float64(h),
			}
		}
		pt.samplePath(samplers.Get(threadID), s, f, window)
	})
	if pt.config.SampleMode == SamplePixel {
		rescalePixels(f, sched, processed)
	} else {
		rescale(f, processed)
	}
	return processed, err
}

// samplePath traces one path from the camera through window and splats its contributions
func (pt *PathTracer) samplePath(rng core.Sampler, s *scene.Scene, f film.Film, window camera.Window) {
	aspect := f.Aspect()
	sp := scene.NewCameraTerminator(window, aspect)
	throughput := core.Splat(1)
	var wi core.Vec3
	var rp core.Vec2

	for length := 0; length < pt.config.MaxLength; length++ {
		rs, ok := s.SampleRay(rng, sp, wi)
		if !ok {
			return
		}
		if length == 0 {
			if rp, ok = s.RasterPosition(rs.Wo, aspect); !ok {
				return
			}
			sp = rs.SP
		}

		// Next event estimation from the camera is only useful when samples are not
		// tied to a pixel
		nee := pt.config.Mode != ModeNaive && !s.IsSpecular(sp, rs.Comp) &&
			(pt.config.SampleMode == SampleImage || length > 0)
		if nee {
			pt.directLight(rng, s, f, sp, rs.Comp, wi, throughput, rp, length == 0)
		}

		hit, ok := s.Intersect(rs.Ray(), core.Eps, core.Inf)
		if !ok {
			return
		}
		throughput = throughput.MultiplyVec(rs.Weight)

		if s.IsLight(hit) && (pt.config.Mode != ModeNEE || !nee) {
			le := s.EvalContrbEndpoint(hit, rs.Wo.Negate())
			if !le.IsZero() {
				misw := 1.0
				if pt.config.Mode == ModeMIS && nee {
					misw = core.BalanceHeuristic(
						s.PdfDirection(sp, rs.Comp, wi, rs.Wo),
						s.PdfDirect(sp, hit, core.CompDontCare, rs.Wo.Negate()),
					)
				}
				f.Splat(rp, throughput.MultiplyVec(le).Multiply(misw))
			}
		}
		if hit.Geom.Infinite {
			return
		}

		if length > pt.config.RussianRouletteMinLength {
			c, survived := russianRoulette(rng.Get1D(), rrMinProb, throughput)
			if !survived {
				return
			}
			throughput = throughput.Multiply(c)
		}

		wi = rs.Wo.Negate()
		sp = hit
	}
}

// directLight samples a light from sp and splats the unoccluded contribution
func (pt *PathTracer) directLight(rng core.Sampler, s *scene.Scene, f film.Film, sp scene.SceneInteraction, comp int, wi, throughput core.Vec3, rp core.Vec2, fromCamera bool) {
	sL, ok := s.SampleDirectLight(rng, sp)
	if !ok || !s.Visible(sp, sL.SP) {
		return
	}
	wo := sL.Wo.Negate()
	fs := s.EvalContrb(sp, comp, wi, wo)
	if fs.IsZero() {
		return
	}

	misw := 1.0
	if pt.config.Mode == ModeMIS && !sL.SP.Geom.Degenerated && !s.IsSpecular(sL.SP, sL.Comp) {
		misw = core.BalanceHeuristic(
			s.PdfDirect(sp, sL.SP, sL.Comp, sL.Wo),
			s.PdfDirection(sp, comp, wi, wo),
		)
	}

	if fromCamera {
		if rp, ok = s.RasterPosition(wo, f.Aspect()); !ok {
			return
		}
	}
	f.Splat(rp, throughput.MultiplyVec(fs).MultiplyVec(sL.Weight).Multiply(misw))
}
