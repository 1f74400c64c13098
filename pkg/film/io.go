package film

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image/png"
	"io"
	"math"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// WritePNG encodes the gamma-corrected film as PNG
func (f *RGBFilm) WritePNG(w io.Writer) error {
	return png.Encode(w, f.Image())
}

// WritePFM writes the linear film as a little-endian Portable Float Map.
// PFM stores rows bottom to top.
func (f *RGBFilm) WritePFM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "PF\n%d %d\n-1.0\n", f.width, f.height); err != nil {
		return err
	}
	row := make([]byte, 12*f.width)
	for y := f.height - 1; y >= 0; y-- {
		for x := 0; x < f.width; x++ {
			p := f.Pixel(x, y)
			binary.LittleEndian.PutUint32(row[12*x:], math.Float32bits(float32(p.X)))
			binary.LittleEndian.PutUint32(row[12*x+4:], math.Float32bits(float32(p.Y)))
			binary.LittleEndian.PutUint32(row[12*x+8:], math.Float32bits(float32(p.Z)))
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WritePFMCompressed writes the PFM stream through a zstd encoder
func (f *RGBFilm) WritePFMCompressed(w io.Writer) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("film: failed to create zstd encoder: %w", err)
	}
	if err := f.WritePFM(enc); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Save writes the film to path, choosing the format from the extension:
// .png, .pfm or .pfm.zst
func (f *RGBFilm) Save(path string) (err error) {
	var write func(io.Writer) error
	switch {
	case strings.HasSuffix(path, ".pfm.zst"):
		write = f.WritePFMCompressed
	case strings.HasSuffix(path, ".pfm"):
		write = f.WritePFM
	case strings.HasSuffix(path, ".png"):
		write = f.WritePNG
	default:
		return fmt.Errorf("film: unsupported output format %q", path)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("film: failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return write(file)
}

// ReadPFM decodes a little-endian PFM stream, optionally zstd-compressed
func ReadPFM(r io.Reader, compressed bool) (*RGBFilm, error) {
	if compressed {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("film: failed to create zstd decoder: %w", err)
		}
		defer dec.Close()
		r = dec
	}
	br := bufio.NewReader(r)

	var magic string
	var width, height int
	var scale float64
	if _, err := fmt.Fscan(br, &magic, &width, &height, &scale); err != nil {
		return nil, fmt.Errorf("film: invalid PFM header: %w", err)
	}
	if magic != "PF" || width <= 0 || height <= 0 || scale >= 0 {
		return nil, fmt.Errorf("film: unsupported PFM header %s %d %d %f", magic, width, height, scale)
	}
	// Single whitespace byte after the scale
	if _, err := br.ReadByte(); err != nil {
		return nil, err
	}

	f := NewRGBFilm(width, height)
	row := make([]byte, 12*width)
	for y := height - 1; y >= 0; y-- {
		if _, err := io.ReadFull(br, row); err != nil {
			return nil, fmt.Errorf("film: truncated PFM data: %w", err)
		}
		for x := 0; x < width; x++ {
			i := 3 * (y*width + x)
			for c := 0; c < 3; c++ {
				v := math.Float32frombits(binary.LittleEndian.Uint32(row[12*x+4*c:]))
				f.data[i+c] = math.Float64bits(float64(v))
			}
		}
	}
	return f, nil
}
