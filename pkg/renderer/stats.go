package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/df07/go-lighttransport/pkg/film"
	"github.com/olekukonko/tablewriter"
)

// Stats contains statistics about a finished render
type Stats struct {
	Scene      string
	Options    Options
	Workers    int
	Samples    int64         // Processed samples
	BuildTime  time.Duration // Accelerator build and light preprocessing
	RenderTime time.Duration
	Film       film.Stats
}

// SamplesPerSecond returns the sampling throughput of the render
func (s Stats) SamplesPerSecond() float64 {
	if s.RenderTime <= 0 {
		return 0
	}
	return float64(s.Samples) / s.RenderTime.Seconds()
}

// Table formats the statistics as a text table
func (s Stats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Renderer", "Mode", "Size", "Samples", "Mean", "Max lum", "Build time", "Render time"})
	table.Append([]string{
		s.Scene,
		s.Options.Renderer,
		s.mode(),
		fmt.Sprintf("%dx%d", s.Options.Width, s.Options.Height),
		fmt.Sprintf("%d", s.Samples),
		fmt.Sprintf("%.4f %.4f %.4f", s.Film.Mean.X, s.Film.Mean.Y, s.Film.Mean.Z),
		fmt.Sprintf("%.4f", s.Film.MaxLum),
		s.BuildTime.String(),
		s.RenderTime.String(),
	})
	table.SetFooter([]string{"", "", "", "", "", "", fmt.Sprintf("%d workers", s.Workers), "samples/s", fmt.Sprintf("%.0f", s.SamplesPerSecond())})
	table.Render()
	return buf.String()
}

// Log prints the statistics table
func (s Stats) Log() {
	logger.Noticef("render statistics\n%s", s.Table())
	if s.Film.NonFinite > 0 {
		logger.Warningf("%d pixels have non-finite values", s.Film.NonFinite)
	}
}

func (s Stats) mode() string {
	if s.Options.Renderer != RendererPT {
		return "-"
	}
	return s.Options.Mode + "/" + s.Options.SampleMode
}
