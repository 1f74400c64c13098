package renderer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-lighttransport/pkg/integrator"
	"github.com/df07/go-lighttransport/pkg/scene"
)

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Width = 8
	opts.Height = 6
	opts.SamplesPerPixel = 2
	opts.MaxLength = 4
	opts.NumWorkers = 2
	return opts
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(o *Options)
		wantErr error
	}{
		{"defaults", func(o *Options) {}, nil},
		{"zero width", func(o *Options) { o.Width = 0 }, ErrInvalidSize},
		{"negative height", func(o *Options) { o.Height = -1 }, ErrInvalidSize},
		{"no samples", func(o *Options) { o.SamplesPerPixel = 0 }, ErrInvalidSamples},
		{"no max length", func(o *Options) { o.MaxLength = 0 }, ErrInvalidMaxLength},
		{"unknown renderer", func(o *Options) { o.Renderer = "bdpt" }, ErrInvalidRenderer},
		{"unknown mode", func(o *Options) { o.Mode = "always" }, integrator.ErrUnknownMode},
		{"unknown sample mode", func(o *Options) { o.SampleMode = "tile" }, integrator.ErrUnknownSampleMode},
		{"volpt ignores mode", func(o *Options) { o.Renderer = RendererVolPT; o.Mode = "always" }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			err := opts.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewScheduler(t *testing.T) {
	tests := []struct {
		renderer   string
		sampleMode string
		wholeImage bool
	}{
		{RendererPT, "pixel", false},
		{RendererPT, "image", true},
		{RendererVolPT, "pixel", true},
		{RendererVolPTNaive, "pixel", true},
	}
	for _, tt := range tests {
		opts := smallOptions()
		opts.Renderer = tt.renderer
		opts.SampleMode = tt.sampleMode
		if got := opts.wholeImage(); got != tt.wholeImage {
			t.Errorf("%s/%s: wholeImage = %v, want %v", tt.renderer, tt.sampleMode, got, tt.wholeImage)
		}
		if n := newScheduler(opts).NumWorkers(); n != 2 {
			t.Errorf("NumWorkers = %d, want 2", n)
		}
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name       string
		renderer   string
		sampleMode string
	}{
		{"pt pixel", RendererPT, "pixel"},
		{"pt image", RendererPT, "image"},
		{"volpt", RendererVolPT, "pixel"},
		{"volpt naive", RendererVolPTNaive, "pixel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := smallOptions()
			opts.Renderer = tt.renderer
			opts.SampleMode = tt.sampleMode
			res, err := Render(context.Background(), "sphere", opts)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if res.Stats.Samples != 8*6*2 {
				t.Errorf("processed %d samples, want %d", res.Stats.Samples, 8*6*2)
			}
			if w, h := res.Film.Size(); w != 8 || h != 6 {
				t.Errorf("film size %dx%d", w, h)
			}
			if res.Stats.Film.NonFinite != 0 {
				t.Errorf("%d non-finite pixels", res.Stats.Film.NonFinite)
			}
		})
	}
}

func TestRender_Errors(t *testing.T) {
	opts := smallOptions()
	if _, err := Render(context.Background(), "teapot", opts); !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("expected ErrUnknownScene, got %v", err)
	}

	opts.Accel = "kdtree"
	if _, err := Render(context.Background(), "sphere", opts); err == nil {
		t.Error("expected an error for an unknown accelerator")
	}

	opts = smallOptions()
	opts.Width = 0
	if _, err := Render(context.Background(), "sphere", opts); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Render(ctx, "sphere", smallOptions())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if res == nil || res.Film == nil {
		t.Fatal("a cancelled render should still return its film")
	}
	if res.Stats.Samples != 0 {
		t.Errorf("cancelled render processed %d samples", res.Stats.Samples)
	}
}

func TestStats_Table(t *testing.T) {
	st := Stats{
		Scene:      "cornell",
		Options:    smallOptions(),
		Workers:    4,
		Samples:    1000,
		RenderTime: 2 * time.Second,
	}
	if got := st.SamplesPerSecond(); got != 500 {
		t.Errorf("SamplesPerSecond = %v, want 500", got)
	}
	table := st.Table()
	for _, want := range []string{"cornell", "mis/pixel", "8x6", "1000", "500"} {
		if !strings.Contains(table, want) {
			t.Errorf("table is missing %q:\n%s", want, table)
		}
	}
	if (Stats{}).SamplesPerSecond() != 0 {
		t.Error("expected zero throughput without render time")
	}
}
