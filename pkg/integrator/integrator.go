// Package integrator implements Monte Carlo estimators of the measurement equation.
package integrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/film"
	"github.com/df07/go-lighttransport/pkg/log"
	"github.com/df07/go-lighttransport/pkg/scene"
	"github.com/df07/go-lighttransport/pkg/scheduler"
)

var logger = log.New("integrator")

var (
	ErrUnknownMode       = errors.New("integrator: unknown mode")
	ErrUnknownSampleMode = errors.New("integrator: unknown sample mode")
	ErrInvalidConfig     = errors.New("integrator: invalid config")
)

// Integrator renders a scene into a film using a scheduler.
// Render returns the number of processed samples.
type Integrator interface {
	Render(ctx context.Context, s *scene.Scene, f film.Film, sched scheduler.Scheduler) (int64, error)
}

// Mode selects how a path tracer gathers light at each vertex
type Mode int

const (
	ModeNaive Mode = iota // only emission found by directional sampling
	ModeNEE               // only next event estimation where possible
	ModeMIS               // both, combined with the balance heuristic
)

func (m Mode) String() string {
	switch m {
	case ModeNaive:
		return "naive"
	case ModeNEE:
		return "nee"
	case ModeMIS:
		return "mis"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses "naive", "nee" or "mis"
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "naive":
		return ModeNaive, nil
	case "nee":
		return ModeNEE, nil
	case "mis":
		return ModeMIS, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// SampleMode selects whether samples are drawn per pixel or over the whole image
type SampleMode int

const (
	SamplePixel SampleMode = iota
	SampleImage
)

func (m SampleMode) String() string {
	switch m {
	case SamplePixel:
		return "pixel"
	case SampleImage:
		return "image"
	}
	return fmt.Sprintf("SampleMode(%d)", int(m))
}

// ParseSampleMode parses "pixel" or "image"
func ParseSampleMode(s string) (SampleMode, error) {
	switch strings.ToLower(s) {
	case "pixel":
		return SamplePixel, nil
	case "image":
		return SampleImage, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSampleMode, s)
}

// rescale normalizes the film after a run of processed samples spread over the whole image
func rescale(f film.Film, processed int64) {
	if processed == 0 {
		return
	}
	w, h := f.Size()
	f.Rescale(float64(w*h) / float64(processed))
}

// rescalePixels normalizes a film whose pixels were sampled independently. A pixel
// scheduler completes each pixel it visits, so dividing by the samples per pixel keeps
// finished pixels correct after a cancelled run.
func rescalePixels(f film.Film, sched scheduler.Scheduler, processed int64) {
	if ps, ok := sched.(scheduler.PixelScheduler); ok && ps.PixelSamples() > 0 {
		if processed > 0 {
			f.Rescale(1 / float64(ps.PixelSamples()))
		}
		return
	}
	rescale(f, processed)
}

// russianRoulette decides whether a path survives. It returns false when the path is
// terminated, otherwise the factor compensating for the termination probability.
func russianRoulette(u, minProb float64, throughput core.Vec3) (float64, bool) {
	q := max(minProb, 1-throughput.MaxComponent())
	if q >= 1 || u < q {
		return 0, false
	}
	return 1 / (1 - q), true
}
