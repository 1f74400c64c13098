package film

import (
	"bytes"
	"image/png"
	"math"
	"sync"
	"testing"

	"github.com/df07/go-lighttransport/pkg/core"
)

func TestSizeAndAspect(t *testing.T) {
	f := NewRGBFilm(320, 240)
	w, h := f.Size()
	if w != 320 || h != 240 {
		t.Errorf("Size = %dx%d, want 320x240", w, h)
	}
	if got := f.Aspect(); math.Abs(got-4.0/3.0) > 1e-12 {
		t.Errorf("Aspect = %f, want 4/3", got)
	}
}

func TestConcurrentSplats(t *testing.T) {
	f := NewRGBFilm(4, 4)
	const workers = 16
	const perWorker = 2000

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				// Every worker hits the same pixel and one of its own
				f.Splat(core.NewVec2(0.1, 0.1), core.NewVec3(1, 2, 3))
				f.Splat(core.NewVec2(0.9, 0.9), core.Splat(0.5))
			}
		}()
	}
	wg.Wait()

	want := float64(workers * perWorker)
	if got := f.Pixel(0, 0); got != core.NewVec3(want, 2*want, 3*want) {
		t.Errorf("shared pixel = %v, want %v", got, core.NewVec3(want, 2*want, 3*want))
	}
	if got := f.Pixel(3, 3); got != core.Splat(want/2) {
		t.Errorf("corner pixel = %v, want %v", got, want/2)
	}
	if got := f.Stats().Splats; got != 2*workers*perWorker {
		t.Errorf("splat count = %d, want %d", got, 2*workers*perWorker)
	}
}

func TestSplatPositions(t *testing.T) {
	f := NewRGBFilm(10, 5)
	tests := []struct {
		rp   core.Vec2
		x, y int
	}{
		{core.NewVec2(0, 0), 0, 0},
		{core.NewVec2(0.55, 0.5), 5, 2},
		{core.NewVec2(1, 1), 9, 4},
		{core.NewVec2(-0.1, 1.5), 0, 4},
	}
	for _, tt := range tests {
		f.Clear()
		f.Splat(tt.rp, core.Splat(1))
		if got := f.Pixel(tt.x, tt.y); got != core.Splat(1) {
			t.Errorf("Splat(%v) did not land in pixel (%d, %d)", tt.rp, tt.x, tt.y)
		}
	}
}

func TestSplatDropsNonFinite(t *testing.T) {
	f := NewRGBFilm(2, 2)
	f.Splat(core.NewVec2(0.2, 0.2), core.NewVec3(math.NaN(), 0, 0))
	f.Splat(core.NewVec2(0.2, 0.2), core.NewVec3(math.Inf(1), 0, 0))
	if got := f.Pixel(0, 0); !got.IsZero() {
		t.Errorf("pixel = %v, want black", got)
	}
}

func TestRescaleAndClear(t *testing.T) {
	f := NewRGBFilm(2, 1)
	f.Splat(core.NewVec2(0.25, 0.5), core.NewVec3(2, 4, 8))
	f.Rescale(0.25)
	if got := f.Pixel(0, 0); got != core.NewVec3(0.5, 1, 2) {
		t.Errorf("rescaled pixel = %v", got)
	}
	if got := f.Stats().Mean; got != core.NewVec3(0.25, 0.5, 1) {
		t.Errorf("mean = %v", got)
	}
	f.Clear()
	if got := f.Pixel(0, 0); !got.IsZero() {
		t.Errorf("pixel after Clear = %v", got)
	}
}

func TestPFMRoundTrip(t *testing.T) {
	f := NewRGBFilm(3, 2)
	f.Splat(core.NewVec2(0.1, 0.1), core.NewVec3(0.25, 0.5, 0.75))
	f.Splat(core.NewVec2(0.9, 0.9), core.NewVec3(10, 20, 30))

	for _, compressed := range []bool{false, true} {
		var buf bytes.Buffer
		write := f.WritePFM
		if compressed {
			write = f.WritePFMCompressed
		}
		if err := write(&buf); err != nil {
			t.Fatalf("compressed=%t: write failed: %v", compressed, err)
		}
		got, err := ReadPFM(&buf, compressed)
		if err != nil {
			t.Fatalf("compressed=%t: read failed: %v", compressed, err)
		}
		for y := 0; y < 2; y++ {
			for x := 0; x < 3; x++ {
				if got.Pixel(x, y) != f.Pixel(x, y) {
					t.Errorf("compressed=%t: pixel (%d, %d) = %v, want %v", compressed, x, y, got.Pixel(x, y), f.Pixel(x, y))
				}
			}
		}
	}
}

func TestWritePNG(t *testing.T) {
	f := NewRGBFilm(8, 4)
	f.Splat(core.NewVec2(0.01, 0.01), core.Splat(0.25))
	f.Splat(core.NewVec2(0.99, 0.99), core.Splat(4))

	var buf bytes.Buffer
	if err := f.WritePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Fatalf("decoded size %v", b)
	}
	// sqrt(0.25) = 0.5
	if r, _, _, _ := img.At(0, 0).RGBA(); r>>8 != 127 {
		t.Errorf("gamma corrected value = %d, want 127", r>>8)
	}
	if r, _, _, _ := img.At(7, 3).RGBA(); r>>8 != 255 {
		t.Errorf("clamped value = %d, want 255", r>>8)
	}
}
