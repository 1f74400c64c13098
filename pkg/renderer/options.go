package renderer

import (
	"errors"
	"fmt"

	"github.com/df07/go-lighttransport/pkg/integrator"
)

var (
	ErrInvalidSize      = errors.New("renderer: invalid frame size")
	ErrInvalidSamples   = errors.New("renderer: invalid sample count")
	ErrInvalidMaxLength = errors.New("renderer: invalid max path length")
	ErrInvalidRenderer  = errors.New("renderer: unknown renderer")
)

// Renderer names accepted by Options.Renderer
const (
	RendererPT         = "pt"
	RendererVolPT      = "volpt"
	RendererVolPTNaive = "volpt-naive"
)

// Options configures a render
type Options struct {
	// Frame dims.
	Width  int
	Height int

	// Samples per pixel. Whole-image samplers take Width*Height*SamplesPerPixel samples.
	SamplesPerPixel int

	// Maximum number of path edges.
	MaxLength int

	// Path length after which russian roulette may terminate paths.
	// Values >= MaxLength disable it.
	RussianRouletteMinLength int

	Renderer   string // pt, volpt or volpt-naive
	Mode       string // naive, nee or mis; path tracer only
	SampleMode string // pixel or image; path tracer only
	Accel      string // bvh or naive

	Seed       int64 // Negative for non-deterministic sampling
	NumWorkers int   // 0 uses every CPU
}

// DefaultOptions returns the default render options
func DefaultOptions() Options {
	return Options{
		Width:                    256,
		Height:                   256,
		SamplesPerPixel:          16,
		MaxLength:                20,
		RussianRouletteMinLength: 3,
		Renderer:                 RendererPT,
		Mode:                     integrator.ModeMIS.String(),
		SampleMode:               integrator.SamplePixel.String(),
		Accel:                    "bvh",
		Seed:                     42,
	}
}

// Validate checks the options before any work is done
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, o.Width, o.Height)
	}
	if o.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSamples, o.SamplesPerPixel)
	}
	if o.MaxLength <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxLength, o.MaxLength)
	}
	switch o.Renderer {
	case RendererPT:
		if _, err := integrator.ParseMode(o.Mode); err != nil {
			return err
		}
		if _, err := integrator.ParseSampleMode(o.SampleMode); err != nil {
			return err
		}
	case RendererVolPT, RendererVolPTNaive:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRenderer, o.Renderer)
	}
	return nil
}

// wholeImage reports whether samples are spread over the whole image instead of per pixel
func (o Options) wholeImage() bool {
	if o.Renderer != RendererPT {
		return true
	}
	m, err := integrator.ParseSampleMode(o.SampleMode)
	return err == nil && m == integrator.SampleImage
}
