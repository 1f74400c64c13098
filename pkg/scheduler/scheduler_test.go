package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestSPPVisitsEveryPixel(t *testing.T) {
	const w, h, spp = 7, 5, 3
	s := NewSPP(w, h, spp, Config{NumWorkers: 4, ChunkSize: 2})

	var mu sync.Mutex
	visits := make(map[int64]int)
	samples := make(map[int64]bool)
	processed, err := s.Run(context.Background(), func(index, sampleIndex int64, threadID int) {
		if threadID < 0 || threadID >= 4 {
			t.Errorf("thread id %d out of range", threadID)
		}
		mu.Lock()
		visits[index]++
		samples[sampleIndex] = true
		mu.Unlock()
	})
	if err != nil {
		t.Fatal(err)
	}
	if processed != w*h*spp {
		t.Errorf("processed = %d, want %d", processed, w*h*spp)
	}
	if len(visits) != w*h {
		t.Errorf("visited %d pixels, want %d", len(visits), w*h)
	}
	for pixel, n := range visits {
		if n != spp {
			t.Errorf("pixel %d visited %d times, want %d", pixel, n, spp)
		}
	}
	if len(samples) != w*h*spp {
		t.Errorf("got %d distinct sample indices, want %d", len(samples), w*h*spp)
	}
}

func TestSPIIndexEqualsSampleIndex(t *testing.T) {
	s := NewSPI(10000, Config{NumWorkers: 3, ChunkSize: 100})
	var count, mismatched atomic.Int64
	processed, err := s.Run(context.Background(), func(index, sampleIndex int64, _ int) {
		count.Add(1)
		if index != sampleIndex {
			mismatched.Add(1)
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	if processed != 10000 || count.Load() != 10000 {
		t.Errorf("processed = %d, callbacks = %d, want 10000", processed, count.Load())
	}
	if mismatched.Load() != 0 {
		t.Errorf("%d samples had index != sampleIndex", mismatched.Load())
	}
}

func TestCancellation(t *testing.T) {
	s := NewSPI(1_000_000, Config{NumWorkers: 2, ChunkSize: 10})
	ctx, cancel := context.WithCancel(context.Background())

	var count atomic.Int64
	processed, err := s.Run(ctx, func(_, _ int64, _ int) {
		if count.Add(1) == 1000 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if processed >= 1_000_000 {
		t.Errorf("processed = %d, expected cancellation to stop early", processed)
	}
	if processed != count.Load() {
		t.Errorf("processed = %d but %d callbacks ran", processed, count.Load())
	}
}

func TestDefaultWorkers(t *testing.T) {
	if n := NewSPI(1, Config{}).NumWorkers(); n <= 0 {
		t.Errorf("NumWorkers = %d, want > 0", n)
	}
}

func TestPerThreadSamplersAreDeterministic(t *testing.T) {
	a := NewSamplers(3, 42)
	b := NewSamplers(3, 42)
	for id := 0; id < 3; id++ {
		if a.Get(id).Get1D() != b.Get(id).Get1D() {
			t.Errorf("thread %d samplers differ for the same seed", id)
		}
	}
	if NewSamplers(2, 42).Get(0).Get1D() == NewSamplers(2, 42).Get(1).Get1D() {
		t.Error("threads should use different seeds")
	}
}

func TestSPPCancellationCompletesPixels(t *testing.T) {
	const spp = 4
	s := NewSPP(100, 100, spp, Config{NumWorkers: 2, ChunkSize: 1})
	var _ PixelScheduler = s
	if s.PixelSamples() != spp {
		t.Errorf("PixelSamples = %d, want %d", s.PixelSamples(), spp)
	}

	ctx, cancel := context.WithCancel(context.Background())
	counts := make([]atomic.Int64, 100*100)
	var calls atomic.Int64
	processed, err := s.Run(ctx, func(pixel, _ int64, _ int) {
		counts[pixel].Add(1)
		if calls.Add(1) == 50 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}

	var visited int64
	for i := range counts {
		switch c := counts[i].Load(); c {
		case 0:
		case spp:
			visited++
		default:
			t.Fatalf("pixel %d got %d samples, want 0 or %d", i, c, spp)
		}
	}
	if processed != visited*spp {
		t.Errorf("processed = %d, want %d for %d finished pixels", processed, visited*spp, visited)
	}
}
