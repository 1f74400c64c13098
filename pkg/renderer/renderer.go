// Package renderer wires a scene, an integrator, a scheduler and a film into a render.
package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-lighttransport/pkg/accel"
	"github.com/df07/go-lighttransport/pkg/film"
	"github.com/df07/go-lighttransport/pkg/integrator"
	"github.com/df07/go-lighttransport/pkg/log"
	"github.com/df07/go-lighttransport/pkg/scene"
	"github.com/df07/go-lighttransport/pkg/scheduler"
)

var logger = log.New("renderer")

// Result is a finished render, or the partial one of a cancelled render
type Result struct {
	Film  *film.RGBFilm
	Stats Stats
}

// Render loads the named preset scene and renders it
func Render(ctx context.Context, sceneName string, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	s, err := scene.Load(sceneName)
	if err != nil {
		return nil, err
	}
	return RenderScene(ctx, s, opts)
}

// RenderScene builds s with the configured accelerator and renders it.
// When ctx is cancelled during rendering the partial, normalized result is returned
// together with the context error.
func RenderScene(ctx context.Context, s *scene.Scene, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	a, err := accel.New(opts.Accel)
	if err != nil {
		return nil, err
	}
	s.SetAccel(a)

	start := time.Now()
	if err := s.Build(); err != nil {
		return nil, fmt.Errorf("building scene %q: %w", s.Name, err)
	}
	buildTime := time.Since(start)

	integ, err := newIntegrator(opts)
	if err != nil {
		return nil, err
	}
	sched := newScheduler(opts)
	f := film.NewRGBFilm(opts.Width, opts.Height)

	logger.Infof("rendering %q: %dx%d, %d spp, renderer=%s mode=%s sample=%s max length=%d, %d workers",
		s.Name, opts.Width, opts.Height, opts.SamplesPerPixel, opts.Renderer, opts.Mode, opts.SampleMode,
		opts.MaxLength, sched.NumWorkers())

	start = time.Now()
	processed, err := integ.Render(ctx, s, f, sched)
	elapsed := time.Since(start)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("rendering scene %q: %w", s.Name, err)
	}

	res := &Result{
		Film: f,
		Stats: Stats{
			Scene:      s.Name,
			Options:    opts,
			Workers:    sched.NumWorkers(),
			Samples:    processed,
			BuildTime:  buildTime,
			RenderTime: elapsed,
			Film:       f.Stats(),
		},
	}
	if err != nil {
		logger.Warningf("render of %q stopped after %d samples: %v", s.Name, processed, err)
		return res, fmt.Errorf("rendering scene %q: %w", s.Name, err)
	}
	logger.Infof("rendered %d samples in %s", processed, elapsed)
	return res, nil
}

// newIntegrator creates the integrator selected by opts
func newIntegrator(opts Options) (integrator.Integrator, error) {
	switch opts.Renderer {
	case RendererPT:
		mode, err := integrator.ParseMode(opts.Mode)
		if err != nil {
			return nil, err
		}
		sampleMode, err := integrator.ParseSampleMode(opts.SampleMode)
		if err != nil {
			return nil, err
		}
		return integrator.NewPathTracer(integrator.PathTracerConfig{
			MaxLength:                opts.MaxLength,
			Mode:                     mode,
			SampleMode:               sampleMode,
			RussianRouletteMinLength: opts.RussianRouletteMinLength,
			Seed:                     opts.Seed,
		})
	case RendererVolPT, RendererVolPTNaive:
		cfg := integrator.DefaultVolPathTracerConfig()
		cfg.MaxVerts = opts.MaxLength + 1
		cfg.Naive = opts.Renderer == RendererVolPTNaive
		cfg.Seed = opts.Seed
		return integrator.NewVolPathTracer(cfg)
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidRenderer, opts.Renderer)
}

// newScheduler creates a per-pixel or whole-image scheduler for opts
func newScheduler(opts Options) scheduler.Scheduler {
	cfg := scheduler.Config{NumWorkers: opts.NumWorkers}
	if opts.wholeImage() {
		return scheduler.NewSPI(int64(opts.Width)*int64(opts.Height)*int64(opts.SamplesPerPixel), cfg)
	}
	return scheduler.NewSPP(opts.Width, opts.Height, int64(opts.SamplesPerPixel), cfg)
}
