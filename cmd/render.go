// Package cmd implements the command line actions.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-lighttransport/pkg/renderer"
	"github.com/urfave/cli"
)

// RenderFlags are the flags of the render command
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene, s",
		Value: "cornell",
		Usage: "built-in scene to render (see the scenes command)",
	},
	cli.IntFlag{
		Name:  "width",
		Value: renderer.DefaultOptions().Width,
		Usage: "frame width",
	},
	cli.IntFlag{
		Name:  "height",
		Value: renderer.DefaultOptions().Height,
		Usage: "frame height",
	},
	cli.IntFlag{
		Name:  "spp",
		Value: renderer.DefaultOptions().SamplesPerPixel,
		Usage: "samples per pixel",
	},
	cli.IntFlag{
		Name:  "max-length",
		Value: renderer.DefaultOptions().MaxLength,
		Usage: "maximum number of path edges",
	},
	cli.IntFlag{
		Name:  "rr-length",
		Value: renderer.DefaultOptions().RussianRouletteMinLength,
		Usage: "path length after which russian roulette is applied; >= max-length disables it",
	},
	cli.StringFlag{
		Name:  "renderer",
		Value: renderer.RendererPT,
		Usage: "integrator: pt, volpt or volpt-naive",
	},
	cli.StringFlag{
		Name:  "mode",
		Value: renderer.DefaultOptions().Mode,
		Usage: "path tracer light gathering: naive, nee or mis",
	},
	cli.StringFlag{
		Name:  "sample-mode",
		Value: renderer.DefaultOptions().SampleMode,
		Usage: "path tracer sampling: pixel or image",
	},
	cli.StringFlag{
		Name:  "accel",
		Value: renderer.DefaultOptions().Accel,
		Usage: "intersection accelerator: bvh or naive",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: renderer.DefaultOptions().Seed,
		Usage: "random seed; negative for non-deterministic sampling",
	},
	cli.IntFlag{
		Name:  "workers",
		Value: 0,
		Usage: "number of render workers; 0 uses every CPU",
	},
	cli.StringFlag{
		Name:  "out, o",
		Usage: "image filename; defaults to output/<scene>/render_<timestamp>.png",
	},
	cli.BoolFlag{
		Name:  "pfm",
		Usage: "also write the raw radiance as a PFM file next to the image",
	},
	cli.BoolFlag{
		Name:  "zstd",
		Usage: "compress the PFM file with zstd",
	},
}

// optionsFromFlags fills render options from the command line
func optionsFromFlags(ctx *cli.Context) renderer.Options {
	return renderer.Options{
		Width:                    ctx.Int("width"),
		Height:                   ctx.Int("height"),
		SamplesPerPixel:          ctx.Int("spp"),
		MaxLength:                ctx.Int("max-length"),
		RussianRouletteMinLength: ctx.Int("rr-length"),
		Renderer:                 ctx.String("renderer"),
		Mode:                     ctx.String("mode"),
		SampleMode:               ctx.String("sample-mode"),
		Accel:                    ctx.String("accel"),
		Seed:                     ctx.Int64("seed"),
		NumWorkers:               ctx.Int("workers"),
	}
}

// RenderFrame renders a single frame of a built-in scene.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := optionsFromFlags(ctx)
	if err := opts.Validate(); err != nil {
		return err
	}
	sceneName := ctx.String("scene")

	out := ctx.String("out")
	if out == "" {
		out = defaultOutputPath(sceneName, time.Now())
	}
	paths := []string{out}
	if ctx.Bool("pfm") {
		paths = append(paths, pfmPath(out, ctx.Bool("zstd")))
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return renderFrame(runCtx, sceneName, opts, paths)
}

// renderFrame renders the scene and writes the film to every path. An interrupted
// render still writes the frame it has so far before reporting the interruption.
func renderFrame(ctx context.Context, sceneName string, opts renderer.Options, paths []string) error {
	res, err := renderer.Render(ctx, sceneName, opts)
	if err != nil && (res == nil || !errors.Is(err, context.Canceled)) {
		return err
	}
	if err != nil {
		logger.Warningf("render interrupted, saving the partial frame")
	}
	res.Stats.Log()

	for _, p := range paths {
		if werr := writeFilm(res, p); werr != nil {
			return werr
		}
	}
	return err
}

func writeFilm(res *renderer.Result, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	start := time.Now()
	if err := res.Film.Save(path); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s in %d ms", path, time.Since(start).Milliseconds())
	return nil
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.png
func defaultOutputPath(sceneName string, now time.Time) string {
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

// pfmPath replaces the extension of the image path with .pfm or .pfm.zst
func pfmPath(imagePath string, compressed bool) string {
	p := strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + ".pfm"
	if compressed {
		p += ".zst"
	}
	return p
}
