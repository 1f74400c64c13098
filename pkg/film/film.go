// Package film accumulates path contributions into an image.
package film

import (
	"image"
	"image/color"
	"math"
	"sync/atomic"

	"github.com/df07/go-lighttransport/pkg/core"
)

// Film is the image accumulator integrators splat into.
// Splat must be safe for concurrent use; the other methods are not.
type Film interface {
	Clear()
	Size() (int, int)
	Aspect() float64
	Splat(rp core.Vec2, c core.Vec3)
	Rescale(s float64)
}

// RGBFilm stores one RGB accumulator per pixel.
// Values are float64 bits updated with compare-and-swap so concurrent splats to
// the same pixel accumulate instead of overwriting each other.
type RGBFilm struct {
	width, height int
	data          []uint64
	splats        atomic.Int64
}

// NewRGBFilm creates a black film of the given size
func NewRGBFilm(width, height int) *RGBFilm {
	return &RGBFilm{width: width, height: height, data: make([]uint64, 3*width*height)}
}

// Clear resets every pixel to black
func (f *RGBFilm) Clear() {
	clear(f.data)
	f.splats.Store(0)
}

// Size returns the width and height in pixels
func (f *RGBFilm) Size() (int, int) {
	return f.width, f.height
}

// Aspect returns width / height
func (f *RGBFilm) Aspect() float64 {
	return float64(f.width) / float64(f.height)
}

// Splat adds c to the pixel containing raster position rp.
// Contributions with NaN or infinite components are dropped.
func (f *RGBFilm) Splat(rp core.Vec2, c core.Vec3) {
	if !c.IsFinite() {
		return
	}
	x := min(max(int(rp.X*float64(f.width)), 0), f.width-1)
	y := min(max(int(rp.Y*float64(f.height)), 0), f.height-1)
	i := 3 * (y*f.width + x)
	atomicAdd(&f.data[i], c.X)
	atomicAdd(&f.data[i+1], c.Y)
	atomicAdd(&f.data[i+2], c.Z)
	f.splats.Add(1)
}

func atomicAdd(addr *uint64, v float64) {
	if v == 0 {
		return
	}
	for {
		old := atomic.LoadUint64(addr)
		sum := math.Float64bits(math.Float64frombits(old) + v)
		if atomic.CompareAndSwapUint64(addr, old, sum) {
			return
		}
	}
}

// Rescale multiplies every pixel by s
func (f *RGBFilm) Rescale(s float64) {
	for i, bits := range f.data {
		f.data[i] = math.Float64bits(math.Float64frombits(bits) * s)
	}
}

// Pixel returns the accumulated value of pixel (x, y), (0, 0) being the top-left pixel
func (f *RGBFilm) Pixel(x, y int) core.Vec3 {
	i := 3 * (y*f.width + x)
	return core.NewVec3(
		math.Float64frombits(atomic.LoadUint64(&f.data[i])),
		math.Float64frombits(atomic.LoadUint64(&f.data[i+1])),
		math.Float64frombits(atomic.LoadUint64(&f.data[i+2])),
	)
}

// Stats summarizes the film contents
type Stats struct {
	Splats    int64
	Mean      core.Vec3
	MaxLum    float64
	NonFinite int
}

// Stats computes summary statistics over all pixels
func (f *RGBFilm) Stats() Stats {
	st := Stats{Splats: f.splats.Load()}
	var sum core.Vec3
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			p := f.Pixel(x, y)
			if !p.IsFinite() {
				st.NonFinite++
				continue
			}
			sum = sum.Add(p)
			st.MaxLum = math.Max(st.MaxLum, p.Luminance())
		}
	}
	if n := f.width * f.height; n > 0 {
		st.Mean = sum.Divide(float64(n))
	}
	return st
}

// Image returns the film as an 8-bit image with gamma 2 encoding
func (f *RGBFilm) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			img.SetRGBA(x, y, toRGBA(f.Pixel(x, y)))
		}
	}
	return img
}

// toRGBA converts a linear color to RGBA with clamping and gamma correction
func toRGBA(c core.Vec3) color.RGBA {
	c = c.Clamp(0, math.MaxFloat64).GammaCorrect(2.0).Clamp(0, 1)
	return color.RGBA{
		R: uint8(255 * c.X),
		G: uint8(255 * c.Y),
		B: uint8(255 * c.Z),
		A: 255,
	}
}
