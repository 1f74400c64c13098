// Package scheduler distributes per-sample work over a pool of worker goroutines.
package scheduler

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/df07/go-lighttransport/pkg/log"
)

var logger = log.New("scheduler")

// ProcessFunc processes one sample. index is the work unit (a pixel for SPP, the sample
// itself for SPI), sampleIndex is the global sample number and threadID identifies the
// worker, in [0, NumWorkers).
type ProcessFunc func(index, sampleIndex int64, threadID int)

// Scheduler runs a ProcessFunc over all samples and returns how many were processed.
// The count is only returned after every worker has finished. When ctx is cancelled
// no new chunks are issued and the partial count is returned with ctx.Err().
type Scheduler interface {
	Run(ctx context.Context, process ProcessFunc) (int64, error)
	NumWorkers() int
}

// PixelScheduler is implemented by schedulers that take a fixed number of samples in
// every pixel they visit, so a pixel is either complete or untouched.
type PixelScheduler interface {
	Scheduler
	PixelSamples() int64
}

// Config configures the worker pool
type Config struct {
	NumWorkers int   // Number of workers, runtime.NumCPU() when <= 0
	ChunkSize  int64 // Work units handed to a worker at once
}

func (c Config) workers() int {
	if c.NumWorkers <= 0 {
		return runtime.NumCPU()
	}
	return c.NumWorkers
}

// chunk is a half-open range of work units
type chunk struct {
	start, end int64
}

// runPool hands out [0, units) in chunks. work processes one unit and returns the
// number of samples it took.
func runPool(ctx context.Context, numWorkers int, units, chunkSize int64, work func(unit int64, threadID int) int64) (int64, error) {
	if chunkSize <= 0 {
		chunkSize = 1
	}
	tasks := make(chan chunk, numWorkers)
	var processed atomic.Int64
	var wg sync.WaitGroup

	for id := 0; id < numWorkers; id++ {
		wg.Add(1)
		go func(threadID int) {
			defer wg.Done()
			for c := range tasks {
				n := int64(0)
				for u := c.start; u < c.end; u++ {
					n += work(u, threadID)
				}
				processed.Add(n)
			}
		}(id)
	}

	var err error
issue:
	for start := int64(0); start < units; start += chunkSize {
		if err = ctx.Err(); err != nil {
			break
		}
		c := chunk{start: start, end: min(start+chunkSize, units)}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break issue
		case tasks <- c:
		}
	}
	close(tasks)
	wg.Wait()
	return processed.Load(), err
}

// SPP visits every pixel SamplesPerPixel times. Units are pixels; all samples of a
// pixel are taken by the same worker.
type SPP struct {
	NumPixels       int64
	SamplesPerPixel int64
	Config          Config
}

// NewSPP creates a samples-per-pixel scheduler for a width x height image
func NewSPP(width, height int, spp int64, config Config) *SPP {
	return &SPP{NumPixels: int64(width) * int64(height), SamplesPerPixel: spp, Config: config}
}

// NumWorkers returns the size of the worker pool
func (s *SPP) NumWorkers() int {
	return s.Config.workers()
}

// PixelSamples returns the number of samples taken in each pixel
func (s *SPP) PixelSamples() int64 {
	return s.SamplesPerPixel
}

// Run processes every sample of every pixel
func (s *SPP) Run(ctx context.Context, process ProcessFunc) (int64, error) {
	workers := s.NumWorkers()
	chunkSize := s.Config.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 64
	}
	logger.Debugf("Scheduling %d pixels x %d samples over %d workers", s.NumPixels, s.SamplesPerPixel, workers)
	return runPool(ctx, workers, s.NumPixels, chunkSize, func(pixel int64, threadID int) int64 {
		for i := int64(0); i < s.SamplesPerPixel; i++ {
			process(pixel, pixel*s.SamplesPerPixel+i, threadID)
		}
		return s.SamplesPerPixel
	})
}

// SPI takes NumSamples samples over the whole image; each sample is its own unit
type SPI struct {
	NumSamples int64
	Config     Config
}

// NewSPI creates a samples-per-image scheduler
func NewSPI(numSamples int64, config Config) *SPI {
	return &SPI{NumSamples: numSamples, Config: config}
}

// NumWorkers returns the size of the worker pool
func (s *SPI) NumWorkers() int {
	return s.Config.workers()
}

// Run processes NumSamples samples
func (s *SPI) Run(ctx context.Context, process ProcessFunc) (int64, error) {
	workers := s.NumWorkers()
	chunkSize := s.Config.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 4096
	}
	logger.Debugf("Scheduling %d samples over %d workers", s.NumSamples, workers)
	return runPool(ctx, workers, s.NumSamples, chunkSize, func(sample int64, threadID int) int64 {
		process(sample, sample, threadID)
		return 1
	})
}
